package engine

import "testing"

func TestPositionPlaceAndPieceAt(t *testing.T) {
	p := NewPosition()
	sq := NewSquare(4, 4)
	piece := NewPiece(Red, Infantry, false)
	if err := p.Place(piece, sq); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if got := p.PieceAt(sq); got != piece {
		t.Errorf("PieceAt(%v) = %v, want %v", sq, got, piece)
	}
	if !p.Occupancy().Has(sq) {
		t.Error("Occupancy should have sq set")
	}
	if !p.ColorSet(Red).Has(sq) {
		t.Error("ColorSet(Red) should have sq set")
	}
	if !p.ClassSet(Infantry).Has(sq) {
		t.Error("ClassSet(Infantry) should have sq set")
	}
}

func TestPositionPlaceRejectsOccupied(t *testing.T) {
	p := NewPosition()
	sq := NewSquare(4, 4)
	if err := p.Place(NewPiece(Red, Infantry, false), sq); err != nil {
		t.Fatalf("first Place: %v", err)
	}
	if err := p.Place(NewPiece(Blue, Tank, false), sq); err == nil {
		t.Error("second Place on occupied square should fail")
	}
}

func TestPositionPlaceRejectsTerrainMismatch(t *testing.T) {
	p := NewPosition()
	pureWater := NewSquare(0, 4)
	if err := p.Place(NewPiece(Red, Tank, false), pureWater); err == nil {
		t.Error("Tank on pure water should fail terrain check")
	}
}

func TestPositionPlaceRejectsSecondCommander(t *testing.T) {
	p := NewPosition()
	if err := p.Place(NewPiece(Red, Commander, false), NewSquare(6, 0)); err != nil {
		t.Fatalf("first Commander Place: %v", err)
	}
	if err := p.Place(NewPiece(Red, Commander, false), NewSquare(6, 1)); err == nil {
		t.Error("second Red Commander should fail")
	}
	if err := p.Place(NewPiece(Blue, Commander, false), NewSquare(6, 11)); err != nil {
		t.Errorf("Blue Commander should still be allowed: %v", err)
	}
}

func TestPositionRemoveClearsCommanderSquare(t *testing.T) {
	p := NewPosition()
	sq := NewSquare(6, 0)
	if err := p.Place(NewPiece(Red, Commander, false), sq); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if p.CommanderSquare(Red) != sq {
		t.Fatalf("CommanderSquare(Red) = %v, want %v", p.CommanderSquare(Red), sq)
	}
	p.Remove(sq)
	if p.CommanderSquare(Red) != NoSquare {
		t.Errorf("CommanderSquare(Red) after removal = %v, want NoSquare", p.CommanderSquare(Red))
	}
}

func TestPositionCloneIsIndependent(t *testing.T) {
	p := NewPosition()
	sq := NewSquare(4, 4)
	if err := p.Place(NewPiece(Red, Infantry, false), sq); err != nil {
		t.Fatalf("Place: %v", err)
	}
	cp := p.Clone()
	cp.Remove(sq)
	if p.PieceAt(sq).IsEmpty() {
		t.Error("mutating clone should not affect original")
	}
	if !cp.PieceAt(sq).IsEmpty() {
		t.Error("clone should reflect its own mutation")
	}
}

func TestPositionCheckInvariants(t *testing.T) {
	p := NewPosition()
	if err := p.Place(NewPiece(Red, Commander, false), NewSquare(6, 0)); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := p.Place(NewPiece(Blue, Navy, true), NewSquare(0, 4)); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if !p.checkInvariants() {
		t.Error("checkInvariants() = false on a well-formed position")
	}
}
