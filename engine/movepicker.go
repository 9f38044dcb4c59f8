package engine

import (
	"fmt"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// Move kinds reported by the picker; the searcher gates its quiet-move
// prunings on mvNormal and its bad-capture reduction on mvBadCapture.
const (
	mvHash = iota
	mvCapture
	mvKiller
	mvRefutation
	mvNormal
	mvBadCapture
)

// Ordering bands. Quiet moves score inside (-histMax, histMax), far below
// the killer band; losing captures sit below every quiet.
const (
	hashBand    int32 = 1 << 26
	captureBand int32 = 1 << 24
	killerBand  int32 = 1 << 22
	refutBand   int32 = 1 << 21
	badCaptBand int32 = -(1 << 24)

	escapeBonus int32 = 1 << 15
)

// Most Valuable Victim - Least Valuable Aggressor; used to score captures
var mvvLva = [7][7]int32{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim Pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim Knight
	{0, 34, 33, 32, 31, 30, 0}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim Rook
	{0, 54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King
}

type scoredMove struct {
	move  gm.Move
	score int32
	kind  uint8
}

// movePicker serves the legal moves of a node lazily, best score first:
// hash move, winning/equal captures, killers, the refutation of the last
// move, quiets by history (escapes from escSq boosted), losing captures.
type movePicker struct {
	moves []scoredMove
	index int
}

func (w *worker) initMoves(ttMove, refut gm.Move, escSq, ply int) movePicker {
	legal := w.board.GenerateLegalMoves()
	mp := movePicker{moves: make([]scoredMove, 0, len(legal))}

	for _, move := range legal {
		var score int32
		var kind uint8

		isCapture := move.CapturedPiece() != gm.NoPiece
		isPromotion := move.PromotionPiece() != gm.NoPiece

		switch {
		case move == ttMove:
			score, kind = hashBand, mvHash
		case isCapture || isPromotion:
			victim := move.CapturedPiece().Type()
			attacker := move.MovedPiece().Type()
			if isPromotion || see(&w.board, move) >= 0 {
				score = captureBand + mvvLva[victim][attacker]
				if isPromotion {
					score += int32(SeePieceValue[move.PromotionPiece().Type()])
				}
				kind = mvCapture
			} else {
				score, kind = badCaptBand+mvvLva[victim][attacker], mvBadCapture
			}
		case ply <= MaxPly && move == w.killers[ply][0]:
			score, kind = killerBand+1, mvKiller
		case ply <= MaxPly && move == w.killers[ply][1]:
			score, kind = killerBand, mvKiller
		case move == refut:
			score, kind = refutBand, mvRefutation
		default:
			score = int32(w.historyScore(move))
			if escSq >= 0 && int(move.From()) == escSq {
				score += escapeBonus
			}
			kind = mvNormal
		}

		mp.moves = append(mp.moves, scoredMove{move: move, score: score, kind: kind})
	}
	return mp
}

// nextMove selection-sorts the next best move into place and returns it,
// or the zero move when exhausted.
func (mp *movePicker) nextMove() (gm.Move, uint8) {
	if mp.index >= len(mp.moves) {
		return 0, mvNormal
	}

	bestIndex := mp.index
	for i := mp.index + 1; i < len(mp.moves); i++ {
		if mp.moves[i].score > mp.moves[bestIndex].score {
			bestIndex = i
		}
	}
	mp.moves[mp.index], mp.moves[bestIndex] = mp.moves[bestIndex], mp.moves[mp.index]

	picked := mp.moves[mp.index]
	mp.index++
	return picked.move, picked.kind
}

// DumpRootOrdering prints the scored root moves, best first. Debug helper
// behind the "moveordering" console command.
func (e *Engine) DumpRootOrdering() {
	e.Prepare()
	w := e.workers[0]
	w.board = e.rootBoard
	w.resetRep(e.gameHist)

	var ttMove gm.Move
	e.tt.RetrieveMove(w.board.Hash(), &ttMove)
	mp := w.initMoves(ttMove, 0, -1, 0)

	fmt.Println("info string root move ordering")
	for i := 1; ; i++ {
		move, kind := mp.nextMove()
		if move == 0 {
			break
		}
		fmt.Printf("info string #%d %s score=%d kind=%d\n", i, move.String(), mp.moves[mp.index-1].score, kind)
	}
}
