package engine

import (
	"fmt"
)

// think runs one worker's full search for the current root position:
// history aging, then iterative deepening.
func (w *worker) think() {
	w.rootPV.Clear()
	w.bestPV.Clear()
	w.bestScore = 0
	w.flRootChoice = false
	w.dpCompleted = 0
	w.ageHist()
	w.iterate()
}

// iterate performs the iterative deepening loop. Lazy SMP works best with
// some depth variance, so every other worker starts one ply deeper.
func (w *worker) iterate() {
	eng := w.eng
	curVal := 0
	offset := w.id & 1

	for w.rootDepth = 1 + offset; w.rootDepth <= eng.Par.SearchDepth; w.rootDepth++ {

		// A worker lagging too far behind the rest is unlikely to
		// contribute at this depth; skip the iteration.

		if int(eng.depthReached.Load()) > w.dpCompleted+1 {
			w.dpCompleted++
			continue
		}

		if !eng.Par.ShutUp {
			fmt.Printf("info depth %d\n", w.rootDepth)
		}

		curVal = w.widen(w.rootDepth, curVal)

		if eng.mustStop() {
			break
		}

		// authoritative only now: the iteration completed without abort

		w.bestPV = w.rootPV.Clone()
		w.bestScore = curVal

		// shorten the search when there is only one root move available

		if w.rootDepth >= 8 && !w.flRootChoice {
			w.dpCompleted = w.rootDepth
			break
		}

		// abort on a proven mate: no deeper iteration can improve it

		if curVal > MaxEval || curVal < -MaxEval {
			maxMateDepth := ((Mate-abs(curVal)+1+1)*4 + 2) / 3 // rounded up
			if maxMateDepth <= w.rootDepth {
				w.dpCompleted = w.rootDepth
				break
			}
		}

		w.dpCompleted = w.rootDepth
		eng.raiseDepthReached(w.dpCompleted)
	}
}

// widen is the aspiration search, progressively doubling the window
// around the previous score until the result is contained (based on
// Senpai 1.0).
func (w *worker) widen(depth, lastScore int) int {
	eng := w.eng
	curVal := lastScore

	if depth > 6 && abs(lastScore) <= MaxEval {
		for margin := 8; margin < 500; margin *= 2 {
			alpha := lastScore - margin
			beta := lastScore + margin
			curVal = w.search(0, alpha, beta, depth, false, 0, -1, &w.rootPV)
			if eng.mustStop() {
				return curVal
			}
			if curVal > alpha && curVal < beta {
				return curVal // finished within the window
			}
			if curVal > MaxEval || curVal < -MaxEval {
				break // verify mate searching with infinite bounds
			}
		}
	}

	return w.search(0, -Inf, Inf, depth, false, 0, -1, &w.rootPV)
}
