package engine

import (
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// Fool's mate position, Black to move and mate with Qh4#.
const foolsMateFEN = "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2"

func TestMateInOne(t *testing.T) {
	_, w := newTestWorker(t, foolsMateFEN)
	w.rootDepth = 2

	var pv PVLine
	score := w.search(0, -Inf, Inf, 2, false, 0, -1, &pv)

	if score != Mate-1 {
		t.Fatalf("expected mate score %d, got %d", Mate-1, score)
	}
	if len(pv.Moves) == 0 || pv.Moves[0].String() != "d8h4" {
		t.Fatalf("expected pv to start with d8h4, got %q", pv.String())
	}
}

func TestMateInOneThroughDriver(t *testing.T) {
	board, err := gm.ParseFEN(foolsMateFEN)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine()
	e.Par.ShutUp = true
	e.Par.SearchDepth = 4
	e.SetPosition(*board, []uint64{board.Hash()})

	move := e.Think()
	if move.String() != "d8h4" {
		t.Fatalf("expected bestmove d8h4, got %s", move.String())
	}
}

func TestStalemateReturnsDrawScore(t *testing.T) {
	_, w := newTestWorker(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	w.rootDepth = 1

	var pv PVLine
	score := w.search(0, -Inf, Inf, 1, false, 0, -1, &pv)

	if score != 0 {
		t.Fatalf("expected stalemate score 0, got %d", score)
	}
	if len(pv.Moves) != 0 {
		t.Fatalf("expected empty pv on stalemate, got %q", pv.String())
	}
}

func TestInsufficientMaterialIsDraw(t *testing.T) {
	_, w := newTestWorker(t, "8/8/8/4k3/8/8/4K3/8 w - - 0 1")
	w.rootDepth = 5

	var pv PVLine
	score := w.search(0, -Inf, Inf, 5, false, 0, -1, &pv)

	if score != 0 {
		t.Fatalf("expected draw score 0 with bare kings, got %d", score)
	}
}

func TestCheckmatedSideScore(t *testing.T) {
	// back-rank mate already delivered, White to move and mated
	_, w := newTestWorker(t, "6k1/5ppp/8/8/8/8/5PPP/r5K1 w - - 0 1")
	w.rootDepth = 1

	var pv PVLine
	score := w.search(0, -Inf, Inf, 1, false, 0, -1, &pv)

	if score != -Mate {
		t.Fatalf("expected checkmated score %d, got %d", -Mate, score)
	}
}

func TestScoreInsideMateEnvelope(t *testing.T) {
	_, w := newTestWorker(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	w.rootDepth = 4

	var pv PVLine
	score := w.search(0, -Inf, Inf, 4, false, 0, -1, &pv)

	if score < -Mate || score > Mate {
		t.Fatalf("score %d outside mate envelope", score)
	}
	if len(pv.Moves) == 0 {
		t.Fatalf("expected a pv at a full-window root search")
	}

	legal := false
	for _, mv := range w.board.GenerateLegalMoves() {
		if mv == pv.Moves[0] {
			legal = true
			break
		}
	}
	if !legal {
		t.Fatalf("pv head %s is not legal at the root", pv.Moves[0].String())
	}
}

func TestNodeCapAbortsSearch(t *testing.T) {
	board, err := gm.ParseFEN(gm.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}

	e := NewEngine()
	e.Par.ShutUp = true
	e.Par.SearchDepth = MaxPly
	e.Par.MoveNodes = 10000
	e.Par.Threads = 2
	e.SetPosition(*board, []uint64{board.Hash()})

	move := e.Think() // must terminate, not deadlock
	if move == 0 {
		t.Fatalf("expected a best move from the aborted search")
	}
	if e.DepthReached() < 1 {
		t.Fatalf("expected at least one completed iteration, got %d", e.DepthReached())
	}

	legal := false
	for _, mv := range board.GenerateLegalMoves() {
		if mv == move {
			legal = true
			break
		}
	}
	if !legal {
		t.Fatalf("aborted search returned illegal move %s", move.String())
	}
}

func TestDepthReachedMonotonic(t *testing.T) {
	board, _ := gm.ParseFEN(gm.FENStartPos)
	e := NewEngine()
	e.Par.ShutUp = true
	e.Par.SearchDepth = 6
	e.SetPosition(*board, []uint64{board.Hash()})

	e.Think()
	first := e.DepthReached()
	if first < 1 {
		t.Fatalf("no depth completed")
	}

	e.raiseDepthReached(first - 1)
	if e.DepthReached() != first {
		t.Fatalf("depthReached shrank from %d to %d", first, e.DepthReached())
	}
}
