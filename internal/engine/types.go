// Package engine implements the CoTuLenh core game engine: board
// primitives, position store, stack manager, air-defense map, move
// generator, deploy-session controller, and game controller. It is
// consumed by a UI or AI search that owns none of this state; the
// package performs no rendering, no persistence, and no search.
package engine

import "fmt"

// Color identifies a side. Red moves first.
type Color uint8

const (
	Red Color = iota
	Blue
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	if c == Red {
		return Blue
	}
	return Red
}

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "blue"
}

// PieceClass identifies one of the 11 CoTuLenh piece classes.
type PieceClass uint8

const (
	NoClass PieceClass = iota
	Commander
	Infantry
	Tank
	Militia
	Engineer
	Artillery
	AntiAir
	Missile
	AirForce
	Navy
	Headquarter
)

// classLetters gives each class its SAN/FEN letter, uppercased. Color
// case (Red upper, Blue lower) is applied by callers.
var classLetters = map[PieceClass]byte{
	Commander:   'C',
	Infantry:    'I',
	Tank:        'T',
	Militia:     'M',
	Engineer:    'E',
	Artillery:   'A',
	AntiAir:     'G',
	Missile:     'S',
	AirForce:    'F',
	Navy:        'N',
	Headquarter: 'H',
}

var letterClasses = func() map[byte]PieceClass {
	m := make(map[byte]PieceClass, len(classLetters))
	for c, l := range classLetters {
		m[l] = c
	}
	return m
}()

// Letter returns the uppercase FEN/SAN letter for the class, or 0 if c
// is not a valid piece class.
func (c PieceClass) Letter() byte {
	return classLetters[c]
}

// ClassFromLetter resolves a FEN/SAN letter (either case) to a
// PieceClass. ok is false for unrecognized letters.
func ClassFromLetter(b byte) (PieceClass, bool) {
	if b >= 'a' && b <= 'z' {
		b = b - 'a' + 'A'
	}
	cls, ok := letterClasses[b]
	return cls, ok
}

func (c PieceClass) String() string {
	switch c {
	case Commander:
		return "Commander"
	case Infantry:
		return "Infantry"
	case Tank:
		return "Tank"
	case Militia:
		return "Militia"
	case Engineer:
		return "Engineer"
	case Artillery:
		return "Artillery"
	case AntiAir:
		return "AntiAir"
	case Missile:
		return "Missile"
	case AirForce:
		return "AirForce"
	case Navy:
		return "Navy"
	case Headquarter:
		return "Headquarter"
	default:
		return "None"
	}
}

// Piece is a flat, 8-bit encoding of a single unit: color, heroic flag,
// and class. It never carries a "carrying" list directly - composite
// stacks are owned by the Stack Manager's side table, keyed by square,
// so the common case (a non-stack square) pays no memory cost for an
// empty carrying slice.
//
//	bit 7:    color  (0 = Red, 1 = Blue)
//	bit 6:    heroic
//	bits 0-3: class
type Piece uint8

const (
	pieceColorBit  = 7
	pieceHeroicBit = 6
	pieceClassMask = 0x0F
)

// NewPiece builds a Piece from its components.
func NewPiece(color Color, class PieceClass, heroic bool) Piece {
	p := Piece(class) & pieceClassMask
	if color == Blue {
		p |= 1 << pieceColorBit
	}
	if heroic {
		p |= 1 << pieceHeroicBit
	}
	return p
}

// EmptyPiece is the zero value: NoClass, Red, not heroic. IsEmpty is
// the correct way to test for "no piece here."
var EmptyPiece Piece

// Color returns the piece's color.
func (p Piece) Color() Color {
	if p&(1<<pieceColorBit) != 0 {
		return Blue
	}
	return Red
}

// Class returns the piece's class.
func (p Piece) Class() PieceClass {
	return PieceClass(p & pieceClassMask)
}

// Heroic reports whether the piece carries the heroic flag.
func (p Piece) Heroic() bool {
	return p&(1<<pieceHeroicBit) != 0
}

// WithHeroic returns a copy of p with the heroic flag set to heroic.
func (p Piece) WithHeroic(heroic bool) Piece {
	if heroic {
		return p | (1 << pieceHeroicBit)
	}
	return p &^ (1 << pieceHeroicBit)
}

// IsEmpty reports whether the piece represents "no piece" (NoClass).
func (p Piece) IsEmpty() bool {
	return p.Class() == NoClass
}

// Letter returns the piece's FEN/SAN letter, cased by color.
func (p Piece) Letter() byte {
	l := p.Class().Letter()
	if p.Color() == Blue {
		l = l - 'A' + 'a'
	}
	return l
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	h := ""
	if p.Heroic() {
		h = "+"
	}
	return fmt.Sprintf("%s%c", h, p.Letter())
}

// Board dimensions. Files a..k map to 0..10 (11 files); ranks 1..12 map
// to 0..11 (12 ranks).
const (
	NumFiles = 11
	NumRanks = 12

	// boardStride is the padded row width used for the Square index
	// (0x88-style padding per the spec glossary): Square = rank*boardStride + file.
	// 16 is chosen so boundary checks use a plain shift/mask instead of a
	// multiply; the classic single-bitmask 0x88 trick does not apply
	// verbatim here because 11 files need 4 bits, not 3, so validity is
	// still two explicit range comparisons (see Square.IsValid).
	boardStride = 16
)

// Square is a padded-index board coordinate: Square = rank*16 + file.
// Not every byte value is a valid square; use IsValid or the NoSquare
// sentinel to test.
type Square uint8

// NoSquare is the invalid/absent square sentinel.
const NoSquare Square = 0xFF

// NewSquare builds a Square from 0-based file and rank. Returns
// NoSquare if file or rank is out of range.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= NumFiles || rank < 0 || rank >= NumRanks {
		return NoSquare
	}
	return Square(rank*boardStride + file)
}

// File returns the 0-based file (0=a .. 10=k).
func (s Square) File() int {
	return int(s) & 0x0F
}

// Rank returns the 0-based rank (0=rank1 .. 11=rank12).
func (s Square) Rank() int {
	return int(s) >> 4
}

// IsValid reports whether s addresses a real board square.
func (s Square) IsValid() bool {
	if s == NoSquare {
		return false
	}
	return s.File() < NumFiles && s.Rank() < NumRanks
}

// String returns algebraic notation, e.g. "c3", "k12", or "-" for an
// invalid square.
func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	file := rune('a' + s.File())
	return fmt.Sprintf("%c%d", file, s.Rank()+1)
}

// ParseSquare parses algebraic notation ("a1".."k12") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) < 2 || len(s) > 3 {
		return NoSquare, fmt.Errorf("%w: invalid square %q", ErrParse, s)
	}
	file := int(s[0] - 'a')
	if file < 0 || file >= NumFiles {
		return NoSquare, fmt.Errorf("%w: invalid file in square %q", ErrParse, s)
	}
	rankNum := 0
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return NoSquare, fmt.Errorf("%w: invalid rank in square %q", ErrParse, s)
		}
		rankNum = rankNum*10 + int(c-'0')
	}
	rank := rankNum - 1
	if rank < 0 || rank >= NumRanks {
		return NoSquare, fmt.Errorf("%w: rank out of range in square %q", ErrParse, s)
	}
	return NewSquare(file, rank), nil
}

// direction is a (file, rank) step.
type direction struct{ df, dr int }

var (
	dirN  = direction{0, 1}
	dirS  = direction{0, -1}
	dirE  = direction{1, 0}
	dirW  = direction{-1, 0}
	dirNE = direction{1, 1}
	dirNW = direction{-1, 1}
	dirSE = direction{1, -1}
	dirSW = direction{-1, -1}
)

var orthogonalDirs = [4]direction{dirN, dirS, dirE, dirW}
var diagonalDirs = [4]direction{dirNE, dirNW, dirSE, dirSW}
var allDirs = [8]direction{dirN, dirS, dirE, dirW, dirNE, dirNW, dirSE, dirSW}

// step applies d to s, returning NoSquare if the result falls outside
// the board.
func (s Square) step(d direction) Square {
	f := s.File() + d.df
	r := s.Rank() + d.dr
	return NewSquare(f, r)
}
