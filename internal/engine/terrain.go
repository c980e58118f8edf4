package engine

// Terrain masks, precomputed once at package init and never mutated.
//
// Water is files a, b and c plus the four river-extension squares
// d6/d7/e6/e7; Land is files c..k minus those four river squares. The
// mixed zone (squares in both masks) is therefore file c alone: the
// river-extension squares are water only. File c is the lane a Navy
// piece can share with land units.
var (
	WaterMask BitSet256
	LandMask  BitSet256
	MixedMask BitSet256
)

// riverExtensionSquares are the four squares where the river interrupts
// the land mass (files d, e at ranks 6, 7).
var riverExtensionSquares = [4]Square{
	mustSquare(3, 5), // d6
	mustSquare(3, 6), // d7
	mustSquare(4, 5), // e6
	mustSquare(4, 6), // e7
}

func mustSquare(file, rank int) Square {
	sq := NewSquare(file, rank)
	if sq == NoSquare {
		panic("terrain: square out of range")
	}
	return sq
}

func init() {
	for file := 0; file < NumFiles; file++ {
		for rank := 0; rank < NumRanks; rank++ {
			sq := NewSquare(file, rank)
			if file <= 2 { // a, b, c
				WaterMask.Set(sq)
			}
			if file >= 2 { // c..k
				LandMask.Set(sq)
			}
		}
	}
	for _, sq := range riverExtensionSquares {
		WaterMask.Set(sq)
		LandMask.Clear(sq)
	}
	MixedMask = WaterMask.Intersect(LandMask)
}

// terrainOK reports whether class may occupy sq, per §3: Navy requires
// water, a non-Navy non-AirForce carrier requires land, AirForce is
// exempt from terrain entirely.
func terrainOK(class PieceClass, sq Square) bool {
	switch class {
	case AirForce:
		return true
	case Navy:
		return WaterMask.Has(sq)
	default:
		return LandMask.Has(sq)
	}
}
