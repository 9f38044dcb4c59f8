package engine

import (
	"math/bits"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
)

// Evaluator is the static evaluation contract: a side-to-move relative
// score in centipawns, bounded by MaxEval.
type Evaluator interface {
	Evaluate(b *gm.Board) int
}

// Tapered piece values, middlegame and endgame.
var pieceValueMG = [7]int{0, 82, 337, 365, 477, 1025, 0}
var pieceValueEG = [7]int{0, 94, 281, 297, 512, 936, 0}

var phaseWeight = [7]int{0, 0, 1, 1, 2, 4, 0}

const totalPhase = 24

// Small square bonuses, white point of view, a1 = index 0.
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingPSTMG = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var kingPSTEG = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

var pstMG = [7]*[64]int{
	gm.PieceTypePawn:   &pawnPST,
	gm.PieceTypeKnight: &knightPST,
	gm.PieceTypeBishop: &bishopPST,
	gm.PieceTypeRook:   &rookPST,
	gm.PieceTypeQueen:  &queenPST,
	gm.PieceTypeKing:   &kingPSTMG,
}

var pstEG = [7]*[64]int{
	gm.PieceTypePawn:   &pawnPST,
	gm.PieceTypeKnight: &knightPST,
	gm.PieceTypeBishop: &bishopPST,
	gm.PieceTypeRook:   &rookPST,
	gm.PieceTypeQueen:  &queenPST,
	gm.PieceTypeKing:   &kingPSTEG,
}

// EvalService is the default evaluator: tapered material plus square
// tables. It is intentionally compact; the search only needs the §6
// contract, not a competitive evaluation.
type EvalService struct{}

func NewEvalService() *EvalService { return &EvalService{} }

func (es *EvalService) Evaluate(b *gm.Board) int {
	var mg, eg, phase int

	for _, side := range [2]gm.Color{gm.White, gm.Black} {
		sign := 1
		if side == gm.Black {
			sign = -1
		}
		bb := b.Bitboards(side)
		for _, set := range [6]struct {
			pieces uint64
			tp     gm.PieceType
		}{
			{bb.Pawns, gm.PieceTypePawn},
			{bb.Knights, gm.PieceTypeKnight},
			{bb.Bishops, gm.PieceTypeBishop},
			{bb.Rooks, gm.PieceTypeRook},
			{bb.Queens, gm.PieceTypeQueen},
			{bb.Kings, gm.PieceTypeKing},
		} {
			for x := set.pieces; x != 0; x &= x - 1 {
				sq := bits.TrailingZeros64(x)
				psq := sq
				if side == gm.Black {
					psq = sq ^ 56
				}
				mg += sign * (pieceValueMG[set.tp] + pstMG[set.tp][psq])
				eg += sign * (pieceValueEG[set.tp] + pstEG[set.tp][psq])
				phase += phaseWeight[set.tp]
			}
		}
	}

	if phase > totalPhase {
		phase = totalPhase
	}
	score := (mg*phase + eg*(totalPhase-phase)) / totalPhase

	if b.SideToMove() == gm.Black {
		score = -score
	}
	return Clamp(score, -MaxEval+1, MaxEval-1)
}

func (w *worker) evaluate() int {
	return w.evaluator.Evaluate(&w.board)
}
