package main

import (
	"fmt"
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"

	"github.com/dualword/OpenTal/engine"
)

func BenchmarkStartposSearch(b *testing.B) {
	board, err := gm.ParseFEN(gm.FENStartPos)
	if err != nil {
		b.Fatal(err)
	}

	eng := engine.NewEngine()
	eng.Par.ShutUp = true
	eng.Par.SearchDepth = 8

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.NewGame()
		eng.SetPosition(*board, []uint64{board.Hash()})
		bestmove := eng.Think()
		if bestmove == 0 {
			b.Fatal("no best move")
		}
	}
	fmt.Println("nodes", eng.Nodes())
}

func TestGoCommandParsing(t *testing.T) {
	limits := parseGo([]string{"wtime", "60000", "btime", "55000", "winc", "1000", "binc", "900", "movestogo", "20"})
	if limits.WhiteTime != 60000 || limits.BlackTime != 55000 {
		t.Fatalf("clock parsing failed: %+v", limits)
	}
	if limits.WhiteInc != 1000 || limits.BlackInc != 900 || limits.MovesToGo != 20 {
		t.Fatalf("increment parsing failed: %+v", limits)
	}

	limits = parseGo([]string{"infinite"})
	if !limits.Infinite {
		t.Fatalf("infinite flag lost")
	}

	th := engine.NewTimeHandler(30)
	if th.MoveTimeMs(limits, true) != -1 {
		t.Fatalf("infinite must map to an unlimited move time")
	}
}

func TestPositionCommandReplaysMoves(t *testing.T) {
	board, _ := gm.ParseFEN(gm.FENStartPos)
	hist := []uint64{board.Hash()}

	board, hist = parsePosition(
		[]string{"position", "startpos", "moves", "e2e4", "e7e5", "g1f3"},
		board, hist)

	if len(hist) != 4 {
		t.Fatalf("expected 4 hashes in the game history, got %d", len(hist))
	}
	if board.SideToMove() != gm.Black {
		t.Fatalf("expected Black to move after three half-moves")
	}
	if hist[len(hist)-1] != board.Hash() {
		t.Fatalf("history tail must be the current position")
	}
}
