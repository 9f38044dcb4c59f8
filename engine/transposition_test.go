package engine

import (
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

func testMove() gm.Move {
	return gm.NewMove(square("e2"), square("e4"), gm.WhitePawn, gm.NoPiece, gm.NoPiece, gm.FlagNone)
}

func TestTTStoreRetrieveRoundTrip(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0xDEADBEEFCAFE1234)
	stored := testMove()

	tt.Store(key, stored, 123, boundExact, 8, 0)

	var move gm.Move
	var score int
	if !tt.Retrieve(key, &move, &score, -Inf, Inf, 8, 0) {
		t.Fatalf("expected exact entry to be retrievable")
	}
	if score != 123 {
		t.Fatalf("score round trip failed: got %d", score)
	}
	if move != stored {
		t.Fatalf("move round trip failed: got %s", move.String())
	}
}

func TestTTDepthGateStillYieldsMove(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x1111222233334444)
	stored := testMove()

	tt.Store(key, stored, 50, boundExact, 4, 0)

	var move gm.Move
	var score int
	if tt.Retrieve(key, &move, &score, -Inf, Inf, 9, 0) {
		t.Fatalf("entry of depth 4 must not satisfy a depth 9 probe")
	}
	if move != stored {
		t.Fatalf("failed probe must still export the stored move for ordering")
	}

	var ordering gm.Move
	if !tt.RetrieveMove(key, &ordering) || ordering != stored {
		t.Fatalf("RetrieveMove failed after depth-gated probe")
	}
}

func TestTTBoundGating(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x5555666677778888)

	tt.Store(key, testMove(), 50, boundLower, 6, 0)

	var move gm.Move
	var score int
	// lower bound proves a cutoff only against beta <= score
	if !tt.Retrieve(key, &move, &score, 0, 40, 6, 0) {
		t.Fatalf("lower bound 50 should cut off at beta 40")
	}
	if score != 50 {
		t.Fatalf("expected fail-soft score 50, got %d", score)
	}
	if tt.Retrieve(key, &move, &score, 0, 60, 6, 0) {
		t.Fatalf("lower bound 50 must not cut off at beta 60")
	}

	tt.Store(key, 0, -30, boundUpper, 7, 0)
	if !tt.Retrieve(key, &move, &score, -20, 100, 7, 0) {
		t.Fatalf("upper bound -30 should cut off at alpha -20")
	}
	if tt.Retrieve(key, &move, &score, -40, 100, 7, 0) {
		t.Fatalf("upper bound -30 must not cut off at alpha -40")
	}
}

func TestTTMateNormalization(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x9999AAAABBBBCCCC)

	// mate at ply 4, two plies below a node at ply 2
	tt.Store(key, testMove(), Mate-4, boundExact, 10, 2)

	var move gm.Move
	var score int
	if !tt.Retrieve(key, &move, &score, -Inf, Inf, 10, 6) {
		t.Fatalf("expected mate entry to be retrievable")
	}
	// stored node-relative as Mate-2, renormalized to the probing ply
	if score != Mate-8 {
		t.Fatalf("expected renormalized mate score %d, got %d", Mate-8, score)
	}

	tt.Store(key, testMove(), -Mate+6, boundExact, 10, 3)
	if !tt.Retrieve(key, &move, &score, -Inf, Inf, 10, 3) {
		t.Fatalf("expected mated entry to be retrievable")
	}
	if score != -Mate+6 {
		t.Fatalf("same-ply mated score must round trip, got %d", score)
	}
}

func TestTTClear(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x0123456789ABCDEF)
	tt.Store(key, testMove(), 77, boundExact, 5, 0)

	gen := tt.gen
	tt.Clear()
	if tt.gen == gen {
		t.Fatalf("Clear must bump the generation")
	}

	var move gm.Move
	var score int
	if tt.Retrieve(key, &move, &score, -Inf, Inf, 1, 0) {
		t.Fatalf("cleared table must not hit")
	}
}

func TestTTSameKeyDeeperWins(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x7777000011112222)

	tt.Store(key, testMove(), 10, boundLower, 8, 0)
	tt.Store(key, testMove(), 99, boundLower, 3, 0) // shallower, must not supersede

	var move gm.Move
	var score int
	if !tt.Retrieve(key, &move, &score, 0, 5, 8, 0) {
		t.Fatalf("deep entry should survive a shallow overwrite")
	}
	if score != 10 {
		t.Fatalf("expected the deep entry's score 10, got %d", score)
	}
}
