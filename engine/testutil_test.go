package engine

import (
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// newTestWorker builds a single-threaded engine around the FEN and hands
// back its worker, ready for direct search calls.
func newTestWorker(t *testing.T, fen string) (*Engine, *worker) {
	t.Helper()
	board, err := gm.ParseFEN(fen)
	if err != nil {
		t.Fatalf("parse FEN %q: %v", fen, err)
	}

	e := NewEngine()
	e.Par.ShutUp = true
	e.SetPosition(*board, []uint64{board.Hash()})
	e.Prepare()
	e.rootSide = board.SideToMove()
	e.tt.IncGen()

	w := e.workers[0]
	w.board = *board
	w.resetRep(e.gameHist)
	return e, w
}

func square(coord string) gm.Square {
	if len(coord) != 2 {
		panic("invalid coordinate")
	}
	file := int(coord[0] - 'a')
	rank := int(coord[1] - '1')
	return gm.Square(rank*8 + file)
}

func findMove(t *testing.T, b *gm.Board, moveStr string) gm.Move {
	t.Helper()
	for _, mv := range b.GenerateLegalMoves() {
		if mv.String() == moveStr {
			return mv
		}
	}
	t.Fatalf("move %s not legal in %s", moveStr, b.ToFEN())
	return 0
}
