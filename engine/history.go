package engine

import (
	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// History buckets saturate at histMax (= 4 * default HistLimit); once any
// bucket hits the bound the whole table is halved, so values age instead
// of overflowing.
const histMax = 4 * 4096

func isQuiet(move gm.Move) bool {
	return move.CapturedPiece() == gm.NoPiece && move.PromotionPiece() == gm.NoPiece
}

// updateHistory rewards a quiet move that caused a cutoff: depth-scaled
// history bonus, refutation slot against the previous move, killer slot
// for this ply.
func (w *worker) updateHistory(lastMove, goodMove gm.Move, depth, ply int) {
	if goodMove == 0 || !isQuiet(goodMove) {
		return
	}

	piece := w.board.PieceAt(goodMove.From())
	w.history[piece][goodMove.To()] += depth * depth
	if w.history[piece][goodMove.To()] > histMax {
		w.halveHistory()
	}

	if lastMove != 0 {
		w.refutation[lastMove.From()][lastMove.To()] = goodMove
	}

	if ply <= MaxPly {
		w.insertKiller(goodMove, ply)
	}
}

// decreaseHistory penalizes a quiet move that was tried before the cutoff,
// symmetrically bounded with the bonus.
func (w *worker) decreaseHistory(move gm.Move, depth int) {
	if !isQuiet(move) {
		return
	}
	piece := w.board.PieceAt(move.From())
	w.history[piece][move.To()] -= depth * depth
	if w.history[piece][move.To()] < -histMax {
		w.halveHistory()
	}
}

func (w *worker) halveHistory() {
	for p := range w.history {
		for sq := range w.history[p] {
			w.history[p][sq] /= 2
		}
	}
}

// ageHist decays the tables before each root search so stale scores stop
// dominating the ordering.
func (w *worker) ageHist() {
	w.halveHistory()
	for i := range w.killers {
		w.killers[i][0] = 0
		w.killers[i][1] = 0
	}
}

func (w *worker) clearHistory() {
	for p := range w.history {
		for sq := range w.history[p] {
			w.history[p][sq] = 0
		}
	}
	for from := range w.refutation {
		for to := range w.refutation[from] {
			w.refutation[from][to] = 0
		}
	}
	for i := range w.killers {
		w.killers[i][0] = 0
		w.killers[i][1] = 0
	}
}

func (w *worker) insertKiller(move gm.Move, ply int) {
	if ply >= len(w.killers) {
		return
	}
	if move != w.killers[ply][0] {
		w.killers[ply][1] = w.killers[ply][0]
		w.killers[ply][0] = move
	}
}

// refutationFor returns the counter-move recorded against lastMove.
func (w *worker) refutationFor(lastMove gm.Move) gm.Move {
	if lastMove == 0 {
		return 0
	}
	return w.refutation[lastMove.From()][lastMove.To()]
}

func (w *worker) historyScore(move gm.Move) int {
	return w.history[w.board.PieceAt(move.From())][move.To()]
}
