package engine

import (
	"github.com/mnoyd/cotulenh-engine/internal/assert"
)

// Position is the board's Position Store: the single source of truth
// for what sits on each square, plus derived bit-sets and the Zobrist
// hash, all updated in lock-step on every Place/Remove. It has no
// upward reference to the Stack Manager, Move Generator, or Game
// Controller - those are built on top of a read-only handle to it, per
// the spec's §9 design note on inverting the reference graph.
//
// Position knows nothing about "carrying": a carrier square is marked
// via SetCarrier by whoever owns composition (the Stack Manager,
// coordinated by the Game Controller); Position only ever stores the
// carrier's own flat Piece at that square.
type Position struct {
	squares     [256]Piece
	classSets   [12]BitSet256 // indexed by PieceClass; index 0 (NoClass) unused
	colorSets   [2]BitSet256
	occupancy   BitSet256
	carrierSet  BitSet256
	heroicSet   BitSet256
	commanderSq [2]Square

	sideToMove    Color
	halfMoveClock int
	fullMoveNum   int
	zobrist       uint64
}

// NewPosition returns an empty position, Red to move, move counters at
// their starting values (half-move 0, full-move 1).
func NewPosition() *Position {
	p := &Position{
		sideToMove:  Red,
		fullMoveNum: 1,
	}
	p.commanderSq[Red] = NoSquare
	p.commanderSq[Blue] = NoSquare
	return p
}

// PieceAt returns the piece at sq (EmptyPiece if none or sq invalid).
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return EmptyPiece
	}
	return p.squares[sq]
}

// Occupancy returns the aggregate occupancy bit-set.
func (p *Position) Occupancy() BitSet256 { return p.occupancy }

// ColorSet returns the bit-set of squares occupied by c's pieces.
func (p *Position) ColorSet(c Color) BitSet256 { return p.colorSets[c] }

// ClassSet returns the bit-set of squares whose occupant (any color) is
// of class cls.
func (p *Position) ClassSet(cls PieceClass) BitSet256 { return p.classSets[cls] }

// CarrierSet returns the bit-set of squares holding a stack carrier.
func (p *Position) CarrierSet() BitSet256 { return p.carrierSet }

// HeroicSet returns the bit-set of squares whose occupant is heroic.
func (p *Position) HeroicSet() BitSet256 { return p.heroicSet }

// CommanderSquare returns c's commander's square, or NoSquare if
// captured/absent.
func (p *Position) CommanderSquare(c Color) Square { return p.commanderSq[c] }

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.sideToMove }

// HalfMoveClock returns the half-move clock (fifty-move rule counter).
func (p *Position) HalfMoveClock() int { return p.halfMoveClock }

// FullMoveNumber returns the full-move counter.
func (p *Position) FullMoveNumber() int { return p.fullMoveNum }

// Zobrist returns the incrementally maintained board hash: XOR over
// (piece-class, color, square) plus the side-to-move key plus a heroic
// key per heroic square, per §3.
func (p *Position) Zobrist() uint64 { return p.zobrist }

// Place puts piece at sq. Fails with ErrTerrainMismatch if the piece's
// class cannot occupy sq's terrain, ErrCommanderUnique if this would be
// a second commander of that color, or ErrOccupied if sq already holds
// a piece.
func (p *Position) Place(piece Piece, sq Square) error {
	if !sq.IsValid() {
		return &ParseError{Kind: "square", Token: sq.String(), Err: ErrParse}
	}
	if !p.squares[sq].IsEmpty() {
		return ErrOccupied
	}
	if !terrainOK(piece.Class(), sq) {
		return &TerrainMismatchError{Square: sq, Class: piece.Class()}
	}
	if piece.Class() == Commander && p.commanderSq[piece.Color()].IsValid() {
		return ErrCommanderUnique
	}

	p.squares[sq] = piece
	p.classSets[piece.Class()].Set(sq)
	p.colorSets[piece.Color()].Set(sq)
	p.occupancy.Set(sq)
	if piece.Heroic() {
		p.heroicSet.Set(sq)
	}
	if piece.Class() == Commander {
		p.commanderSq[piece.Color()] = sq
	}
	p.zobrist ^= hashPieceAt(piece, sq)
	p.zobrist ^= hashHeroicAt(piece, sq)

	if assert.DEBUG {
		assert.Assert(p.checkInvariants(), "Position.Place: invariants violated after placing %v at %v", piece, sq)
	}
	return nil
}

// Remove clears sq and returns the piece that was there (EmptyPiece if
// none).
func (p *Position) Remove(sq Square) Piece {
	if !sq.IsValid() {
		return EmptyPiece
	}
	piece := p.squares[sq]
	if piece.IsEmpty() {
		return EmptyPiece
	}

	p.zobrist ^= hashPieceAt(piece, sq)
	p.zobrist ^= hashHeroicAt(piece, sq)

	p.squares[sq] = EmptyPiece
	p.classSets[piece.Class()].Clear(sq)
	p.colorSets[piece.Color()].Clear(sq)
	p.occupancy.Clear(sq)
	p.heroicSet.Clear(sq)
	p.carrierSet.Clear(sq)
	if piece.Class() == Commander && p.commanderSq[piece.Color()] == sq {
		p.commanderSq[piece.Color()] = NoSquare
	}

	if assert.DEBUG {
		assert.Assert(p.checkInvariants(), "Position.Remove: invariants violated after removing from %v", sq)
	}
	return piece
}

// SetHeroic sets or clears the heroic flag for the piece at sq,
// keeping the mailbox, heroic bit-set, and Zobrist hash consistent.
// It is a no-op if sq is empty or already at the requested flag.
func (p *Position) SetHeroic(sq Square, heroic bool) {
	piece := p.squares[sq]
	if piece.IsEmpty() || piece.Heroic() == heroic {
		return
	}
	p.zobrist ^= hashHeroicAt(piece, sq) // remove old contribution (must be present since flag is flipping)
	piece = piece.WithHeroic(heroic)
	p.squares[sq] = piece
	if heroic {
		p.heroicSet.Set(sq)
	} else {
		p.heroicSet.Clear(sq)
	}
	p.zobrist ^= hashHeroicAt(piece, sq)
}

// SetCarrier marks or unmarks sq as holding a stack carrier. Owned by
// the Stack Manager via the Game Controller; Position itself does not
// validate composition.
func (p *Position) SetCarrier(sq Square, isCarrier bool) {
	if isCarrier {
		p.carrierSet.Set(sq)
	} else {
		p.carrierSet.Clear(sq)
	}
}

// SetSideToMove sets the color to move and updates the Zobrist
// side-to-move term.
func (p *Position) SetSideToMove(c Color) {
	if p.sideToMove == c {
		return
	}
	p.sideToMove = c
	p.zobrist ^= zobristSideToMove
}

// SetHalfMoveClock sets the half-move (fifty-move rule) counter.
func (p *Position) SetHalfMoveClock(n int) { p.halfMoveClock = n }

// SetFullMoveNumber sets the full-move counter.
func (p *Position) SetFullMoveNumber(n int) { p.fullMoveNum = n }

// Clone returns a deep, independent copy. Position holds only
// fixed-size arrays and value types, so this is a single struct copy -
// cheap enough for legality filtering's apply/undo-via-copy pattern if
// a caller prefers it over the action log.
func (p *Position) Clone() *Position {
	cp := *p
	return &cp
}

// checkInvariants re-derives every bit-set from the mailbox and
// compares; used only under assert.DEBUG. See §3 Position invariants
// and §8 testable property 5 (zobrist == recompute_zobrist()).
func (p *Position) checkInvariants() bool {
	var wantOccupancy, wantRed, wantBlue, wantHeroic BitSet256
	var wantClass [12]BitSet256
	commanders := map[Color]int{}

	for sq := 0; sq < 256; sq++ {
		piece := p.squares[sq]
		if piece.IsEmpty() {
			continue
		}
		s := Square(sq)
		if !s.IsValid() {
			return false
		}
		wantOccupancy.Set(s)
		if piece.Color() == Red {
			wantRed.Set(s)
		} else {
			wantBlue.Set(s)
		}
		wantClass[piece.Class()].Set(s)
		if piece.Heroic() {
			wantHeroic.Set(s)
		}
		if piece.Class() == Commander {
			commanders[piece.Color()]++
			if p.commanderSq[piece.Color()] != s {
				return false
			}
		}
		if !terrainOK(piece.Class(), s) && piece.Class() != AirForce {
			return false
		}
	}
	if commanders[Red] > 1 || commanders[Blue] > 1 {
		return false
	}
	if wantOccupancy != p.occupancy || wantRed != p.colorSets[Red] || wantBlue != p.colorSets[Blue] {
		return false
	}
	if wantHeroic != p.heroicSet {
		return false
	}
	for cls := PieceClass(1); cls <= Headquarter; cls++ {
		if wantClass[cls] != p.classSets[cls] {
			return false
		}
	}
	if p.carrierSet.Subtract(p.occupancy).Count() != 0 {
		return false
	}
	return p.zobrist == p.recomputeZobrist()
}

// recomputeZobrist rebuilds the hash from scratch for audit purposes.
func (p *Position) recomputeZobrist() uint64 {
	var h uint64
	for sq := 0; sq < 256; sq++ {
		piece := p.squares[sq]
		if piece.IsEmpty() {
			continue
		}
		s := Square(sq)
		h ^= hashPieceAt(piece, s)
		h ^= hashHeroicAt(piece, s)
	}
	if p.sideToMove == Blue {
		h ^= zobristSideToMove
	}
	return h
}
