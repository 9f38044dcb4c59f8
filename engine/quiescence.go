package engine

import (
	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// quiesceChecks is the leaf search: fail-soft quiescence over captures
// and promotions, widened with quiet checking moves on its first ply, and
// full evasion sets while in check.
func (w *worker) quiesceChecks(ply, alpha, beta int, pv *PVLine) int {
	return w.quiesce(ply, alpha, beta, 0, pv)
}

func (w *worker) quiesce(ply, alpha, beta, qdepth int, pv *PVLine) int {
	w.eng.nodes.Add(1)
	w.slowdown()
	if w.eng.mustStop() && w.rootDepth > 1 {
		return 0
	}

	pv.Clear()
	if w.isDraw() {
		return w.drawScore()
	}
	if ply >= MaxPly-1 {
		return w.evaluate()
	}

	inCheck := w.board.OurKingInCheck()

	best := -Inf
	if !inCheck {
		standpat := w.evaluate()
		if standpat >= beta {
			return standpat
		}
		best = standpat
		if standpat > alpha {
			alpha = standpat
		}
	}

	moves := w.quiesceMoves(inCheck, qdepth)
	if inCheck && len(moves.moves) == 0 {
		return -Mate + ply
	}

	var childPV PVLine
	for {
		move, _ := moves.nextMove()
		if move == 0 {
			break
		}

		// losing captures don't restore a failing standpat
		if !inCheck && move.CapturedPiece() != gm.NoPiece &&
			move.PromotionPiece() == gm.NoPiece && see(&w.board, move) < 0 {
			continue
		}

		unmake := w.doMove(move)
		if unmake == nil {
			continue
		}

		score := -w.quiesce(ply+1, -beta, -alpha, qdepth+1, &childPV)
		unmake()

		if w.eng.mustStop() && w.rootDepth > 1 {
			return 0
		}

		if score > best {
			best = score
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
			pv.BuildPv(&childPV, move)
		}
	}

	return best
}

// quiesceMoves builds the staged list for a quiescence node: evasions in
// check, otherwise captures plus (on the first quiescence ply) quiet
// checking moves.
func (w *worker) quiesceMoves(inCheck bool, qdepth int) movePicker {
	var legal []gm.Move
	if inCheck {
		legal = w.board.GenerateLegalMoves()
	} else {
		legal = w.board.GenerateCaptures()
		if qdepth == 0 {
			for _, move := range w.board.GenerateChecks() {
				if move.CapturedPiece() == gm.NoPiece && move.PromotionPiece() == gm.NoPiece {
					legal = append(legal, move)
				}
			}
		}
	}

	mp := movePicker{moves: make([]scoredMove, 0, len(legal))}
	for _, move := range legal {
		var score int32
		kind := uint8(mvNormal)
		victim := move.CapturedPiece().Type()
		attacker := move.MovedPiece().Type()

		if move.PromotionPiece() != gm.NoPiece {
			score = captureBand + mvvLva[victim][attacker] + int32(SeePieceValue[move.PromotionPiece().Type()])
			kind = mvCapture
		} else if move.CapturedPiece() != gm.NoPiece {
			score = captureBand + mvvLva[victim][attacker]
			kind = mvCapture
		}
		mp.moves = append(mp.moves, scoredMove{move: move, score: score, kind: kind})
	}
	return mp
}
