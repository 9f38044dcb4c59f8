package engine

import (
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// stubEval returns a fixed score from White's point of view, so a search
// from a White root sees exactly +score at every leaf.
type stubEval struct {
	score int
	calls int
}

func (s *stubEval) Evaluate(b *gm.Board) int {
	s.calls++
	if b.SideToMove() == gm.White {
		return s.score
	}
	return -s.score
}

func TestAspirationWindowContainsStableScore(t *testing.T) {
	e, w := newTestWorker(t, gm.FENStartPos)
	e.SetEvaluator(&stubEval{score: 50})
	w.rootDepth = 8

	score := w.widen(8, 50)
	if score != 50 {
		t.Fatalf("expected the first aspiration window to contain 50, got %d", score)
	}
}

func TestAspirationWidensOnFailHigh(t *testing.T) {
	e, w := newTestWorker(t, gm.FENStartPos)
	stub := &stubEval{score: 400}
	e.SetEvaluator(stub)
	w.rootDepth = 8

	// the previous iteration scored 50; every window up to margin 256
	// fails high, then the full-window fallback must settle on 400
	score := w.widen(8, 50)
	if score != 400 {
		t.Fatalf("expected the full-window fallback to return 400, got %d", score)
	}
}

func TestMateScoreStopsIteration(t *testing.T) {
	board, err := gm.ParseFEN(foolsMateFEN)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine()
	e.Par.ShutUp = true
	e.Par.SearchDepth = MaxPly
	e.SetPosition(*board, []uint64{board.Hash()})

	move := e.Think() // must stop on the proven mate well before MaxPly
	if move.String() != "d8h4" {
		t.Fatalf("expected d8h4, got %s", move.String())
	}
	if e.DepthReached() >= 10 {
		t.Fatalf("iteration did not stop on a proven mate, reached depth %d", e.DepthReached())
	}
}

func TestSingleReplyStopsEarly(t *testing.T) {
	// the black king has exactly one legal move
	board, err := gm.ParseFEN("k7/8/1R6/2R5/8/8/8/4K3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine()
	e.Par.ShutUp = true
	e.Par.SearchDepth = 30
	e.SetPosition(*board, []uint64{board.Hash()})

	move := e.Think()
	if move == 0 {
		t.Fatalf("expected the single reply as best move")
	}
	if e.DepthReached() > 9 {
		t.Fatalf("single-reply search should stop around depth 8, reached %d", e.DepthReached())
	}
}
