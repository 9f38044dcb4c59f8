package engine

import (
	"math/bits"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
)

var SeePieceValue = [7]int{
	gm.PieceTypePawn:   100,
	gm.PieceTypeKnight: 300,
	gm.PieceTypeBishop: 300,
	gm.PieceTypeRook:   500,
	gm.PieceTypeQueen:  900,
	gm.PieceTypeKing:   5000,
}

// see runs the swap algorithm for a capture: the balance of the exchange
// sequence on the target square, assuming both sides keep capturing with
// their least valuable attacker while it pays off.
func see(b *gm.Board, move gm.Move) int {
	var gain [32]int
	depth := 0
	whiteToMove := b.SideToMove() == gm.White

	initSquare := uint8(move.From())
	targetSquare := uint8(move.To())

	white := b.WhiteBitboards()
	black := b.BlackBitboards()
	attadef := attackersToSquare(targetSquare, white, black, true) |
		attackersToSquare(targetSquare, black, white, false)

	targetPiece := b.PieceAt(move.To()).Type()
	attacker := b.PieceAt(move.From()).Type()

	// en passant arrives with an empty target square
	if targetPiece == gm.PieceTypeNone {
		targetPiece = gm.PieceTypePawn
	}

	attackerBB := PositionBB[initSquare]
	gain[depth] = SeePieceValue[targetPiece]

	side := !whiteToMove
	for attackerBB != 0 {
		depth++
		gain[depth] = SeePieceValue[attacker] - gain[depth-1]

		// both continuations lose material, no point trading further
		if Max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		attadef ^= attackerBB
		attackerBB, attacker = closestAttacker(b, attadef, side, targetSquare)
		side = !side
	}

	for x := depth - 1; x > 0; x-- {
		gain[x-1] = -Max(-gain[x-1], gain[x])
	}
	return gain[0]
}

// attackersToSquare collects the pieces of one side hitting the target
// square, xraying through own sliders and the pawns that attack it.
func attackersToSquare(targetSquare uint8, usBB, enemyBB gm.Bitboards, whiteSide bool) uint64 {
	orthogonalXray := dragontoothmg.CalculateRookMoveBitboard(targetSquare,
		(usBB.All&^(usBB.Rooks|usBB.Queens))|(enemyBB.All&^(enemyBB.Rooks|enemyBB.Queens))) &
		^(usBB.All &^ (usBB.Rooks | usBB.Queens | enemyBB.Rooks | enemyBB.Queens))

	var attackBB uint64
	var pawnBB uint64
	targetBB := PositionBB[targetSquare]

	for x := usBB.Pawns; x != 0; x &= x - 1 {
		bb := PositionBB[bits.TrailingZeros64(x)]
		east, west := pawnCaptureBitboards(bb, whiteSide)
		if (east|west)&targetBB != 0 {
			attackBB |= bb
			pawnBB |= bb
		}
	}

	diagonalXray := dragontoothmg.CalculateBishopMoveBitboard(targetSquare,
		(usBB.All&^(usBB.Bishops|usBB.Queens|pawnBB))|enemyBB.All) &
		^(usBB.All &^ (usBB.Bishops | usBB.Queens))

	hitPieces := attackBB | orthogonalXray&(usBB.Rooks|usBB.Queens)
	hitPieces |= diagonalXray & (usBB.Bishops | usBB.Queens)
	hitPieces |= knightMasks[targetSquare] & usBB.Knights
	hitPieces |= kingMasks[targetSquare] & usBB.Kings

	return hitPieces
}

// closestAttacker picks the least valuable remaining attacker of the
// moving side from attadef.
func closestAttacker(b *gm.Board, attadef uint64, whiteSide bool, targetSquare uint8) (uint64, gm.PieceType) {
	var usBB gm.Bitboards
	if whiteSide {
		usBB = b.WhiteBitboards()
	} else {
		usBB = b.BlackBitboards()
	}

	diagonal := dragontoothmg.CalculateBishopMoveBitboard(targetSquare, attadef) &
		^(usBB.All &^ (usBB.Bishops | usBB.Queens)) & attadef
	orthogonal := dragontoothmg.CalculateRookMoveBitboard(targetSquare, attadef) &
		^(usBB.All &^ (usBB.Rooks | usBB.Queens)) & attadef

	east, west := pawnCaptureBitboards(PositionBB[targetSquare], !whiteSide)
	hitPieces := (east | west | diagonal | orthogonal |
		knightMasks[targetSquare]&usBB.Knights |
		kingMasks[targetSquare]&usBB.Kings) & attadef

	return minAttacker(hitPieces, usBB)
}

func minAttacker(attadef uint64, bb gm.Bitboards) (uint64, gm.PieceType) {
	var subset uint64
	var piece gm.PieceType

	switch {
	case attadef&bb.Pawns != 0:
		subset, piece = attadef&bb.Pawns, gm.PieceTypePawn
	case attadef&bb.Knights != 0:
		subset, piece = attadef&bb.Knights, gm.PieceTypeKnight
	case attadef&bb.Bishops != 0:
		subset, piece = attadef&bb.Bishops, gm.PieceTypeBishop
	case attadef&bb.Rooks != 0:
		subset, piece = attadef&bb.Rooks, gm.PieceTypeRook
	case attadef&bb.Queens != 0:
		subset, piece = attadef&bb.Queens, gm.PieceTypeQueen
	case attadef&bb.Kings != 0:
		subset, piece = attadef&bb.Kings, gm.PieceTypeKing
	}

	if subset != 0 {
		return PositionBB[bits.TrailingZeros64(subset)], piece
	}
	return 0, piece
}
