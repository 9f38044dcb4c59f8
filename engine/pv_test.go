package engine

import (
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

func TestBuildPvRoundTrip(t *testing.T) {
	m1 := gm.NewMove(square("e2"), square("e4"), gm.WhitePawn, gm.NoPiece, gm.NoPiece, gm.FlagNone)
	m2 := gm.NewMove(square("e7"), square("e5"), gm.BlackPawn, gm.NoPiece, gm.NoPiece, gm.FlagNone)
	m3 := gm.NewMove(square("g1"), square("f3"), gm.WhiteKnight, gm.NoPiece, gm.NoPiece, gm.FlagNone)

	child := PVLine{Moves: []gm.Move{m2, m3}}
	var parent PVLine
	parent.BuildPv(&child, m1)

	if parent.GetPVMove() != m1 {
		t.Fatalf("pv head must be the prepended move")
	}
	if len(parent.Moves) != 3 || parent.Moves[1] != m2 || parent.Moves[2] != m3 {
		t.Fatalf("pv tail must equal the child line, got %q", parent.String())
	}
}

func TestBuildPvOverwritesOldLine(t *testing.T) {
	m1 := gm.NewMove(square("d2"), square("d4"), gm.WhitePawn, gm.NoPiece, gm.NoPiece, gm.FlagNone)
	stale := gm.NewMove(square("a2"), square("a3"), gm.WhitePawn, gm.NoPiece, gm.NoPiece, gm.FlagNone)

	parent := PVLine{Moves: []gm.Move{stale, stale, stale}}
	var child PVLine
	parent.BuildPv(&child, m1)

	if len(parent.Moves) != 1 || parent.Moves[0] != m1 {
		t.Fatalf("BuildPv must replace the previous line, got %q", parent.String())
	}
}

func TestPVClone(t *testing.T) {
	m1 := gm.NewMove(square("e2"), square("e4"), gm.WhitePawn, gm.NoPiece, gm.NoPiece, gm.FlagNone)
	pv := PVLine{Moves: []gm.Move{m1}}

	cloned := pv.Clone()
	pv.Clear()

	if len(cloned.Moves) != 1 || cloned.Moves[0] != m1 {
		t.Fatalf("clone must be independent of the source line")
	}
}
