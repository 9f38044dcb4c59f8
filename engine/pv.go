package engine

import (
	"fmt"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// PVLine is the principal variation collected at a node.
type PVLine struct {
	Moves []gm.Move
}

func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// BuildPv prepends move to the child's line, producing this node's line.
func (pv *PVLine) BuildPv(child *PVLine, move gm.Move) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

func (pv *PVLine) Clone() PVLine {
	cloned := make([]gm.Move, len(pv.Moves))
	copy(cloned, pv.Moves)
	return PVLine{Moves: cloned}
}

// GetPVMove returns the head of the line, or the zero move when empty.
func (pv *PVLine) GetPVMove() gm.Move {
	if len(pv.Moves) == 0 {
		return gm.Move(0)
	}
	return pv.Moves[0]
}

func (pv *PVLine) String() (theMoves string) {
	for _, move := range pv.Moves {
		theMoves += " "
		theMoves += move.String()
	}
	return theMoves
}

// displayPv emits the standard UCI info line for the current root score.
// Threads that lag behind the globally reached depth stay silent.
func (w *worker) displayPv(score int, pv *PVLine) {
	if w.eng.Par.ShutUp {
		return
	}
	if w.rootDepth < int(w.eng.depthReached.Load()) {
		return
	}

	elapsed := w.eng.elapsedMs()
	nodes := w.eng.nodes.Load()
	var nps int64
	if elapsed > 0 {
		nps = nodes * 1000 / elapsed
	}

	kind := "mate"
	value := score
	if score < -MaxEval {
		value = (-Mate - score) / 2
	} else if score > MaxEval {
		value = (Mate - score + 1) / 2
	} else {
		kind = "cp"
	}

	fmt.Printf("info depth %d time %d nodes %d nps %d score %s %d pv%s\n",
		w.rootDepth, elapsed, nodes, nps, kind, value, pv.String())
}

func (w *worker) displayCurrmove(move gm.Move, tried int) {
	fmt.Printf("info currmove %s currmovenumber %d\n", move.String(), tried)
}
