package engine

import (
	"sync/atomic"
	"time"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxPly   = 64
	MaxMoves = 256

	Inf     = 32767
	Mate    = 32000
	MaxEval = 29000
)

// Params holds every UCI-configurable knob the search reads.
type Params struct {
	SearchDepth  int
	MoveTime     int64 // ms; -1 means unlimited
	MoveNodes    int64 // 0 means unlimited
	NpsLimit     int   // 0 means unlimited
	HistLimit    int
	DrawScore    int // contempt, from the engine's point of view
	MoveOverhead int // ms reserved for IO jitter
	Hash         int // MB
	Threads      int
	ShutUp       bool
	Ponder       bool
}

func NewParams() Params {
	return Params{
		SearchDepth:  MaxPly,
		MoveTime:     -1,
		HistLimit:    4096,
		MoveOverhead: 30,
		Hash:         16,
		Threads:      1,
	}
}

// Engine owns the state shared between search workers: the transposition
// table and the process-wide counters/flags. Everything else (history,
// killers, PV, repetition stack) lives on the workers.
type Engine struct {
	Par Params

	tt   *TransTable
	eval Evaluator

	rootBoard gm.Board
	gameHist  []uint64
	rootSide  gm.Color

	workers []*worker

	nodes        atomic.Int64
	abortSearch  atomic.Bool
	stopWorkers  atomic.Bool // set when the first worker finishes; distinct from a user abort
	depthReached atomic.Int32
	pondering    atomic.Bool
	quitting     atomic.Bool
	shouldClear  bool

	input     chan string
	startTime time.Time
	moveTime  int64 // ms; -1 means unlimited
}

func NewEngine() *Engine {
	return &Engine{
		Par:      NewParams(),
		eval:     NewEvalService(),
		moveTime: -1,
		input:    make(chan string, 16),
	}
}

// SetEvaluator swaps the static evaluator (the default is the built-in
// material+PST service).
func (e *Engine) SetEvaluator(ev Evaluator) {
	e.eval = ev
	for _, w := range e.workers {
		w.evaluator = ev
	}
}

// SetPosition installs the root position together with the Zobrist keys of
// the positions already played in the game, oldest first and ending with
// the root itself.
func (e *Engine) SetPosition(b gm.Board, history []uint64) {
	e.rootBoard = b
	e.gameHist = append(e.gameHist[:0], history...)
	if len(e.gameHist) == 0 {
		e.gameHist = append(e.gameHist, b.Hash())
	}
}

// PostInput hands a UCI line observed during an active search to the
// controller; CheckTimeout drains them.
func (e *Engine) PostInput(line string) {
	select {
	case e.input <- line:
	default:
	}
}

// Quitting reports whether "quit" arrived while searching.
func (e *Engine) Quitting() bool { return e.quitting.Load() }

// NewGame schedules a table/history wipe before the next search.
func (e *Engine) NewGame() { e.shouldClear = true }

func (e *Engine) mustStop() bool {
	return e.abortSearch.Load() || e.stopWorkers.Load()
}

func (e *Engine) elapsedMs() int64 {
	return time.Since(e.startTime).Milliseconds()
}

func (e *Engine) raiseDepthReached(d int) {
	for {
		cur := e.depthReached.Load()
		if int32(d) <= cur || e.depthReached.CompareAndSwap(cur, int32(d)) {
			return
		}
	}
}

// worker is one Lazy SMP search thread. Histories, killers and the PV are
// private; only the TT and the Engine counters are shared.
type worker struct {
	id  int
	eng *Engine

	board     gm.Board
	evaluator Evaluator

	rep       []repState
	rootIndex int

	history    [16][64]int
	refutation [64][64]gm.Move
	killers    [MaxPly + 1][2]gm.Move

	rootDepth    int
	dpCompleted  int
	flRootChoice bool

	rootPV    PVLine
	bestPV    PVLine
	bestScore int
}

func newWorker(id int, e *Engine) *worker {
	return &worker{
		id:        id,
		eng:       e,
		evaluator: e.eval,
		rep:       make([]repState, 0, 512),
	}
}
