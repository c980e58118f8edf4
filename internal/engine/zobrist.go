package engine

import "math/rand"

// Zobrist tables, initialized once at package init with deterministic
// pseudo-random values (fixed seed) so the same position always hashes
// the same way across runs - the teacher's own convention in
// zobrist.go's init().
var (
	// zobristPiece[colorIdx*16+classIdx][square] - piece-class-color
	// contribution, independent of heroic status (heroic is a separate
	// XOR term per §3: "Zobrist hash equals the XOR over (piece-class,
	// color, square), plus side-to-move key, plus heroic key per heroic
	// square").
	zobristPiece [2 * 16][256]uint64

	zobristSideToMove uint64

	// zobristHeroic[square] is XORed in for every heroic occupied square.
	zobristHeroic [256]uint64

	// zobristDeployActive is XORed in while a deploy session is active,
	// so the repetition/cache key distinguishes "mid-deploy" from
	// "same board, no deploy" per §4.6/§9 ("a position with an active
	// deploy is not equal to a position without one even if their
	// boards match").
	zobristDeployActive uint64
)

func init() {
	rng := rand.New(rand.NewSource(0xC07EE711))

	for idx := range zobristPiece {
		for sq := range zobristPiece[idx] {
			zobristPiece[idx][sq] = rng.Uint64()
		}
	}
	zobristSideToMove = rng.Uint64()
	for sq := range zobristHeroic {
		zobristHeroic[sq] = rng.Uint64()
	}
	zobristDeployActive = rng.Uint64()
}

func pieceZobristIndex(color Color, class PieceClass) int {
	return int(color)*16 + int(class)
}

// hashPieceAt returns the piece-class-color (not heroic) contribution
// for placing p at sq.
func hashPieceAt(p Piece, sq Square) uint64 {
	if p.IsEmpty() {
		return 0
	}
	return zobristPiece[pieceZobristIndex(p.Color(), p.Class())][sq]
}

// hashHeroicAt returns the heroic contribution for sq, or 0 if p is not
// heroic.
func hashHeroicAt(p Piece, sq Square) uint64 {
	if p.IsEmpty() || !p.Heroic() {
		return 0
	}
	return zobristHeroic[sq]
}
