package engine

import (
	"math/bits"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

const fiftyMoveLimit = 100

// repState is one entry of the per-worker repetition stack: the game
// history plus every position of the current search path.
type repState struct {
	hash   uint64
	rule50 int
}

// resetRep rebuilds the stack from the game history; the last element must
// describe the root position.
func (w *worker) resetRep(gameHist []uint64) {
	w.rep = w.rep[:0]
	for _, h := range gameHist {
		w.rep = append(w.rep, repState{hash: h})
	}
	if n := len(w.rep); n > 0 {
		w.rep[n-1].rule50 = w.board.HalfmoveClock()
	}
	w.rootIndex = len(w.rep) - 1
}

func (w *worker) pushRep() {
	w.rep = append(w.rep, repState{
		hash:   w.board.Hash(),
		rule50: w.board.HalfmoveClock(),
	})
}

func (w *worker) popRep() {
	if len(w.rep) > 0 {
		w.rep = w.rep[:len(w.rep)-1]
	}
}

// doMove applies a legal move and tracks it on the repetition stack. The
// returned closure restores both; nil is returned for an illegal move.
func (w *worker) doMove(move gm.Move) func() {
	ok, st := w.board.MakeMove(move)
	if !ok {
		return nil
	}
	w.pushRep()
	return func() {
		w.popRep()
		w.board.UnmakeMove(move, st)
	}
}

func (w *worker) doNull() func() {
	st := w.board.MakeNullMove()
	w.pushRep()
	return func() {
		w.popRep()
		w.board.UnmakeNullMove(st)
	}
}

// isDraw covers the fifty-move rule, repetitions and dead material. A
// single repetition inside the search tree counts; positions before the
// root need to repeat twice.
func (w *worker) isDraw() bool {
	if len(w.rep) == 0 {
		return false
	}
	curr := w.rep[len(w.rep)-1]
	if curr.rule50 >= fiftyMoveLimit {
		return true
	}
	if w.insufficientMaterial() {
		return true
	}

	count := 0
	start := len(w.rep) - 1 - curr.rule50
	if start < 0 {
		start = 0
	}
	for i := len(w.rep) - 2; i >= start; i-- {
		if w.rep[i].hash != curr.hash {
			continue
		}
		count++
		if count >= 2 || i >= w.rootIndex {
			return true
		}
	}
	return false
}

func (w *worker) insufficientMaterial() bool {
	white := w.board.WhiteBitboards()
	black := w.board.BlackBitboards()
	if white.Pawns|black.Pawns|white.Rooks|black.Rooks|white.Queens|black.Queens != 0 {
		return false
	}
	minors := white.Knights | white.Bishops | black.Knights | black.Bishops
	return bits.OnesCount64(minors) <= 1
}

// drawScore folds the contempt setting in: draws are worth -DrawScore for
// the engine's own side and +DrawScore for the opponent.
func (w *worker) drawScore() int {
	if w.board.SideToMove() == w.eng.rootSide {
		return -w.eng.Par.DrawScore
	}
	return w.eng.Par.DrawScore
}

// mayNull forbids the null move when the side to move has nothing but king
// and pawns, the classic zugzwang guard.
func (w *worker) mayNull() bool {
	var bb gm.Bitboards
	if w.board.SideToMove() == gm.White {
		bb = w.board.WhiteBitboards()
	} else {
		bb = w.board.BlackBitboards()
	}
	return bb.Knights|bb.Bishops|bb.Rooks|bb.Queens != 0
}

// sideHasSeventhRankPawn reports a pawn of the side to move on its
// relative seventh rank (one step from promotion).
func (w *worker) sideHasSeventhRankPawn() bool {
	if w.board.SideToMove() == gm.White {
		return w.board.WhiteBitboards().Pawns&rank7BB != 0
	}
	return w.board.BlackBitboards().Pawns&rank2BB != 0
}
