package engine

import (
	"strings"
	"time"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"golang.org/x/sync/errgroup"
)

// Prepare sizes the transposition table and the worker pool to the
// current parameters. Cheap when nothing changed.
func (e *Engine) Prepare() {
	if e.Par.Threads < 1 {
		e.Par.Threads = 1
	}
	if e.tt == nil || e.tt.SizeMB() != e.Par.Hash {
		e.tt = NewTransTable(e.Par.Hash)
	}
	if len(e.workers) != e.Par.Threads {
		e.workers = make([]*worker, e.Par.Threads)
		for i := range e.workers {
			e.workers[i] = newWorker(i, e)
		}
	}
}

// Think runs the full search for the installed position and returns the
// best move found. It blocks until every worker has come home; UCI info
// lines are emitted along the way unless ShutUp is set.
func (e *Engine) Think() gm.Move {
	e.Prepare()

	if e.shouldClear {
		e.tt.Clear()
		for _, w := range e.workers {
			w.clearHistory()
		}
		e.shouldClear = false
	}

	e.startTime = time.Now()
	e.moveTime = e.Par.MoveTime
	e.nodes.Store(0)
	e.abortSearch.Store(false)
	e.stopWorkers.Store(false)
	e.depthReached.Store(0)
	e.rootSide = e.rootBoard.SideToMove()
	e.tt.IncGen()

	for _, w := range e.workers {
		w.board = e.rootBoard
		w.evaluator = e.eval
		w.resetRep(e.gameHist)
	}

	// the controller polls the clock and pending input while the workers
	// are multi-threaded; a single worker polls from Slowdown instead
	tickerDone := make(chan struct{})
	if e.Par.Threads > 1 {
		go func() {
			ticker := time.NewTicker(10 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-tickerDone:
					return
				case <-ticker.C:
					e.CheckTimeout()
				}
			}
		}()
	}

	var g errgroup.Group
	for _, w := range e.workers {
		w := w
		g.Go(func() error {
			w.think()
			// the first finished worker ends the fixed-depth search for
			// everyone; distinct from the user abort on purpose
			e.stopWorkers.Store(true)
			return nil
		})
	}
	g.Wait()
	close(tickerDone)

	move := e.bestWorker().bestPV.GetPVMove()
	if move == 0 {
		// never stand on an empty move while the position still has one
		board := e.rootBoard
		if legal := board.GenerateLegalMoves(); len(legal) > 0 {
			move = legal[0]
		}
	}
	return move
}

// bestWorker picks the worker whose completed iteration went deepest.
func (e *Engine) bestWorker() *worker {
	best := e.workers[0]
	for _, w := range e.workers[1:] {
		if len(w.bestPV.Moves) == 0 {
			continue
		}
		if len(best.bestPV.Moves) == 0 || w.dpCompleted > best.dpCompleted {
			best = w
		}
	}
	return best
}

// DepthReached reports the deepest fully completed iteration across all
// workers of the last (or running) search.
func (e *Engine) DepthReached() int {
	return int(e.depthReached.Load())
}

// Nodes reports the shared node counter.
func (e *Engine) Nodes() int64 {
	return e.nodes.Load()
}

// Stop requests a cooperative abort of the running search.
func (e *Engine) Stop() {
	e.abortSearch.Store(true)
}

// CheckTimeout drains pending UCI input and enforces the move clock.
func (e *Engine) CheckTimeout() {
	for {
		select {
		case line := <-e.input:
			switch strings.TrimSpace(line) {
			case "stop":
				e.abortSearch.Store(true)
			case "quit":
				e.abortSearch.Store(true)
				e.quitting.Store(true)
			case "ponderhit":
				e.pondering.Store(false)
			}
			continue
		default:
		}
		break
	}

	if !e.pondering.Load() && e.moveTime >= 0 && e.elapsedMs() >= e.moveTime {
		e.abortSearch.Store(true)
	}
}

// SetPondering flips the ponder state before a search starts.
func (e *Engine) SetPondering(on bool) {
	e.pondering.Store(on)
}

// slowdown is the in-search polling point: node cap, NPS throttling for
// weak levels, and (single-threaded) the timeout check every 2048 nodes.
func (w *worker) slowdown() {
	eng := w.eng

	if eng.Par.MoveNodes > 0 && eng.nodes.Load() >= eng.Par.MoveNodes {
		eng.abortSearch.Store(true)
	}

	if eng.Par.NpsLimit > 0 && w.rootDepth > 1 {
		for {
			elapsed := eng.elapsedMs() + 1
			nps := eng.nodes.Load() * 1000 / elapsed
			if nps <= int64(eng.Par.NpsLimit) {
				break
			}
			time.Sleep(10 * time.Millisecond)
			if !eng.pondering.Load() && eng.moveTime >= 0 && eng.elapsedMs() >= eng.moveTime {
				eng.abortSearch.Store(true)
				return
			}
		}
	}

	if eng.Par.Threads == 1 && eng.nodes.Load()&2047 == 0 && w.rootDepth > 1 {
		eng.CheckTimeout()
	}
}
