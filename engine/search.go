package engine

import (
	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// =============================================================================
// PRUNING DEPTH LIMITS AND MARGINS
// =============================================================================
const (
	snpDepth   = 3 // max depth for static null move pruning
	razorDepth = 4 // max depth for razoring
	futDepth   = 6 // max depth for futility pruning

	// eval is needed for pruning decisions up to this depth
	selectiveDepth = futDepth
)

var razorMargin = [5]int{0, 300, 360, 420, 480}
var futMargin = [7]int{0, 100, 160, 220, 280, 340, 400}

// search is the fail-soft negamax node searcher. The returned score may
// lie outside (alpha, beta); under an abort it unwinds with 0 once the
// root depth is past 1.
func (w *worker) search(ply, alpha, beta, depth int, wasNull bool, lastMove gm.Move, lastCaptSq int, pv *PVLine) int {

	// QUIESCENCE SEARCH ENTRY POINT

	if depth <= 0 {
		return w.quiesceChecks(ply, alpha, beta, pv)
	}

	// EARLY EXIT AND NODE INITIALIZATION

	eng := w.eng
	eng.nodes.Add(1)
	w.slowdown()
	if eng.mustStop() && w.rootDepth > 1 {
		return 0
	}
	if ply > 0 {
		pv.Clear()
		if w.isDraw() {
			return w.drawScore()
		}
	}

	isPV := alpha != beta-1

	// MATE DISTANCE PRUNING

	if ply > 0 {
		checkmatingScore := Mate - ply
		if checkmatingScore < beta {
			beta = checkmatingScore
			if alpha >= checkmatingScore {
				return alpha
			}
		}
		checkmatedScore := -Mate + ply
		if checkmatedScore > alpha {
			alpha = checkmatedScore
			if beta <= checkmatedScore {
				return beta
			}
		}
	}

	// RETRIEVE MOVE FROM TRANSPOSITION TABLE

	key := w.board.Hash()
	var ttMove gm.Move
	var ttScore int
	if eng.tt.Retrieve(key, &ttMove, &ttScore, alpha, beta, depth, ply) {
		if ttScore >= beta {
			w.updateHistory(lastMove, ttMove, depth, ply)
		}
		if !isPV {
			return ttScore
		}
	}

	// SAFEGUARD AGAINST REACHING MAX PLY LIMIT

	if ply >= MaxPly-1 {
		return w.evaluate()
	}

	flCheck := w.board.OurKingInCheck()

	// CAN WE PRUNE THIS NODE?

	flPrunable := !flCheck && !isPV && alpha > -MaxEval && beta < MaxEval

	// GET EVAL SCORE IF NEEDED FOR PRUNING/REDUCTION DECISIONS

	eval := 0
	if flPrunable && (!wasNull || depth <= selectiveDepth) {
		eval = w.evaluate()
	}

	// BETA PRUNING / STATIC NULL MOVE

	if flPrunable && depth <= snpDepth && !wasNull {
		sc := eval - 120*depth
		if sc > beta {
			return sc
		}
	}

	// NULL MOVE

	didNull := false
	refSq := -1
	if depth > 1 && !wasNull && flPrunable && w.mayNull() && eval >= beta {
		didNull = true

		// null move depth reduction - modified Stockfish formula
		newDepth := depth - (823+67*depth)/256 - Min(3, (eval-beta)/200)

		// omit the null search when the hash table already proves that a
		// normal search to the same depth stays below beta
		skipNull := false
		var nullMove gm.Move
		var nullScore int
		if eng.tt.Retrieve(key, &nullMove, &nullScore, alpha, beta, newDepth, ply) && nullScore < beta {
			skipNull = true
		}

		if !skipNull {
			var newPV PVLine
			var score int
			unmake := w.doNull()
			if newDepth <= 0 {
				score = -w.quiesceChecks(ply+1, -beta, -beta+1, &newPV)
			} else {
				score = -w.search(ply+1, -beta, -beta+1, newDepth, true, 0, -1, &newPV)
			}

			// location of the piece whose capture refuted the null move;
			// its escape is prioritised in the move ordering
			var nullRefutation gm.Move
			if eng.tt.RetrieveMove(w.board.Hash(), &nullRefutation) && nullRefutation != 0 {
				refSq = int(nullRefutation.To())
			}

			unmake()
			if eng.mustStop() && w.rootDepth > 1 {
				return 0
			}

			// do not return unproved mate scores
			if score >= MaxEval {
				score = beta
			}

			if score >= beta {
				// verification search
				if newDepth > 6 {
					score = w.search(ply, alpha, beta, depth-5, true, lastMove, lastCaptSq, pv)
				}
				if eng.mustStop() && w.rootDepth > 1 {
					return 0
				}
				if score >= beta {
					return score
				}
			}
		}
	}

	// RAZORING

	if flPrunable && ttMove == 0 && !wasNull && !w.sideHasSeventhRankPawn() && depth <= razorDepth {
		threshold := beta - razorMargin[depth]
		if eval < threshold {
			score := w.quiesceChecks(ply, alpha, beta, pv)
			if score < threshold {
				return score
			}
		}
	}

	// INTERNAL ITERATIVE DEEPENING

	if isPV && !flCheck && ttMove == 0 && depth > 6 {
		w.search(ply, alpha, beta, depth-2, false, 0, lastCaptSq, pv)
		eng.tt.RetrieveMove(key, &ttMove)
	}

	// PREPARE FOR MAIN SEARCH

	best := -Inf
	flFutility := false
	mvTried := 0
	quietTried := 0
	var quietsPlayed [MaxMoves]gm.Move
	var childPV PVLine

	mp := w.initMoves(ttMove, w.refutationFor(lastMove), refSq, ply)

	// MAIN LOOP

	for {
		move, mvType := mp.nextMove()
		if move == 0 {
			break
		}

		// SET FUTILITY PRUNING FLAG
		// before the first applicable move is tried

		if mvType == mvNormal && quietTried == 0 && flPrunable && depth <= futDepth {
			if eval+futMargin[depth] < beta {
				flFutility = true
			}
		}

		// MAKE MOVE

		mvHistScore := w.historyScore(move)
		lastCapt := -1
		if w.board.PieceAt(move.To()) != gm.NoPiece {
			lastCapt = int(move.To())
		}

		unmake := w.doMove(move)
		if unmake == nil {
			continue
		}

		// GATHER INFO ABOUT THE MOVE

		mvTried++
		if ply == 0 && mvTried > 1 {
			w.flRootChoice = true
		}
		if mvType == mvNormal {
			if quietTried < MaxMoves {
				quietsPlayed[quietTried] = move
			}
			quietTried++
		}
		if ply == 0 && !eng.Par.ShutUp && depth > 16 && eng.Par.Threads == 1 {
			w.displayCurrmove(move, mvTried)
		}

		// SET NEW SEARCH DEPTH

		newDepth := depth - 1
		childCheck := w.board.OurKingInCheck()

		// EXTENSIONS

		// 1. check extension, applied in pv nodes or at low depth

		if childCheck && (isPV || depth < 8) {
			newDepth++
		}

		// 2. recapture extension in pv-nodes

		if isPV && int(move.To()) == lastCaptSq {
			newDepth++
		}

		// 3. pawn to 7th rank extension at the tips of the pv-line

		if isPV && depth < 6 &&
			w.board.PieceAt(move.To()).Type() == gm.PieceTypePawn &&
			PositionBB[move.To()]&(rank2BB|rank7BB) != 0 {
			newDepth++
		}

		// FUTILITY PRUNING

		if flFutility && !childCheck && mvHistScore < eng.Par.HistLimit &&
			mvType == mvNormal && mvTried > 1 {
			unmake()
			continue
		}

		// LATE MOVE PRUNING

		if flPrunable && depth <= 3 && quietTried > 3*depth && !childCheck &&
			mvHistScore < eng.Par.HistLimit && mvType == mvNormal {
			unmake()
			continue
		}

		// set the flag responsible for increasing the reduction: the null
		// move failed here, yet the opponent still has a standing threat

		sherwinFlag := false
		if didNull && depth > 2 && !childCheck {
			var scratch PVLine
			qScore := w.quiesceChecks(ply, -beta, -beta+1, &scratch)
			if qScore >= beta {
				sherwinFlag = true
			}
		}

		// LMR 1: NORMAL MOVES

		reduction := 0
		pvIdx := 0
		if isPV {
			pvIdx = 1
		}

		if depth > 2 && mvTried > 3 && !flCheck && !childCheck &&
			lmrTable[pvIdx][Min(depth, MaxPly-1)][Min(mvTried, MaxMoves-1)] > 0 &&
			mvType == mvNormal && mvHistScore < eng.Par.HistLimit &&
			move.Flags() != gm.FlagCastle {

			reduction = lmrTable[pvIdx][Min(depth, MaxPly-1)][Min(mvTried, MaxMoves-1)]

			if sherwinFlag && newDepth-reduction >= 2 {
				reduction++
			}

			// increase reduction on a bad history score

			if mvHistScore < 0 && newDepth-reduction >= 2 {
				reduction++
			}

			newDepth -= reduction
		}

		// LMR 2: MARGINAL REDUCTION OF BAD CAPTURES

		if depth > 2 && mvTried > 6 && alpha > -MaxEval && beta < MaxEval &&
			!flCheck && !childCheck && mvType == mvBadCapture && !isPV {
			reduction = 1
			newDepth -= reduction
		}

		// PRINCIPAL VARIATION SEARCH, with one bounded re-search when a
		// reduced move improves alpha

		var score int
		for {
			if best == -Inf {
				score = -w.search(ply+1, -beta, -alpha, newDepth, false, move, lastCapt, &childPV)
			} else {
				score = -w.search(ply+1, -alpha-1, -alpha, newDepth, false, move, lastCapt, &childPV)
				if !eng.mustStop() && score > alpha && score < beta {
					score = -w.search(ply+1, -beta, -alpha, newDepth, false, move, lastCapt, &childPV)
				}
			}

			// don't reduce a move that scored above alpha

			if score > alpha && reduction > 0 {
				newDepth += reduction
				reduction = 0
				continue
			}
			break
		}

		// UNDO MOVE

		unmake()
		if eng.mustStop() && w.rootDepth > 1 {
			return 0
		}

		// BETA CUTOFF

		if score >= beta {
			if !flCheck {
				w.updateHistory(lastMove, move, depth, ply)
				for i := 0; i < Min(quietTried, MaxMoves); i++ {
					if quietsPlayed[i] != move {
						w.decreaseHistory(quietsPlayed[i], depth)
					}
				}
			}
			eng.tt.Store(key, move, score, boundLower, depth, ply)

			// at the root, change the best move and show the new pv

			if ply == 0 {
				pv.BuildPv(&childPV, move)
				w.displayPv(score, pv)
			}

			return score
		}

		// NEW BEST MOVE

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				pv.BuildPv(&childPV, move)
				if ply == 0 {
					w.displayPv(score, pv)
				}
			}
		}
	}

	// RETURN CORRECT CHECKMATE/STALEMATE SCORE

	if best == -Inf {
		if flCheck {
			return -Mate + ply
		}
		return w.drawScore()
	}

	// SAVE RESULT IN THE TRANSPOSITION TABLE

	if len(pv.Moves) > 0 {
		if !flCheck {
			w.updateHistory(lastMove, pv.Moves[0], depth, ply)
			for i := 0; i < Min(quietTried, MaxMoves); i++ {
				if quietsPlayed[i] != pv.Moves[0] {
					w.decreaseHistory(quietsPlayed[i], depth)
				}
			}
		}
		eng.tt.Store(key, pv.Moves[0], best, boundExact, depth, ply)
	} else {
		eng.tt.Store(key, 0, best, boundUpper, depth, ply)
	}

	return best
}
