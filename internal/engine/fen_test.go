package engine

import (
	"testing"

	"github.com/mnoyd/cotulenh-engine/internal/engineconfig"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return NewGame(engineconfig.DefaultConfig())
}

func TestFENLoadStartingPositionRoundTrip(t *testing.T) {
	g := newTestGame(t)
	if got := g.FEN(); got != startingFEN {
		t.Errorf("FEN() = %q, want %q", got, startingFEN)
	}
}

func TestFENLoadRejectsWrongRankCount(t *testing.T) {
	g := newTestGame(t)
	bad := "6c4/1n2fh1hf2 r - - 0 1"
	if err := g.Load(bad); err == nil {
		t.Error("Load should reject a placement with the wrong number of ranks")
	}
}

func TestFENLoadRejectsBadColumnCount(t *testing.T) {
	g := newTestGame(t)
	bad := "5c4/1n2fh1hf2/3a2s2a1/2n1gt1tg2/2ie2m2ei/11/11/2IE2M2EI/2N1GT1TG2/3A2S2A1/1N2fh1hf2/6C4 r - - 0 1"
	if err := g.Load(bad); err == nil {
		t.Error("Load should reject a rank segment whose columns don't sum to 11")
	}
}

func TestFENLoadRejectsUnmatchedParen(t *testing.T) {
	g := newTestGame(t)
	bad := "6c4/1n2fh1hf2/3a2s2a1/2n1gt1tg2/2ie2m2ei/11/11/2IE2M2EI/2N1GT1TG2/3A2S2A1/1N2(fh1hf2/6C4 r - - 0 1"
	if err := g.Load(bad); err == nil {
		t.Error("Load should reject an unmatched '(' in a rank segment")
	}
}

func TestFENStackNotationRoundTrip(t *testing.T) {
	g := newTestGame(t)
	empty := "11/11/11/11/11/11/11/11/11/11/11/11 r - - 0 1"
	if err := g.Load(empty); err != nil {
		t.Fatalf("Load(empty): %v", err)
	}
	navy := NewPiece(Red, Navy, false)
	tank := NewPiece(Red, Tank, false)
	sq := NewSquare(2, 2)
	if err := g.Put(navy, sq); err != nil {
		t.Fatalf("Put navy: %v", err)
	}
	if _, err := g.sm.CreateStack(navy, []Piece{tank}, sq); err != nil {
		t.Fatalf("CreateStack: %v", err)
	}
	g.pos.SetCarrier(sq, true)

	fen := g.FEN()
	g2 := newTestGame(t)
	if err := g2.Load(fen); err != nil {
		t.Fatalf("Load(%q): %v", fen, err)
	}
	stack, ok := g2.StackAt(sq)
	if !ok {
		t.Fatal("round-tripped FEN should preserve the stack")
	}
	if stack.Carrier.Class() != Navy || len(stack.Carried) != 1 || stack.Carried[0].Class() != Tank {
		t.Errorf("round-tripped stack = %+v, want Navy carrying Tank", stack)
	}
}

func TestFENHeroicPrefixRoundTrip(t *testing.T) {
	g := newTestGame(t)
	empty := "11/11/11/11/11/11/11/11/11/11/11/11 r - - 0 1"
	if err := g.Load(empty); err != nil {
		t.Fatalf("Load(empty): %v", err)
	}
	sq := NewSquare(5, 5)
	if err := g.Put(NewPiece(Red, Tank, true), sq); err != nil {
		t.Fatalf("Put: %v", err)
	}
	fen := g.FEN()
	g2 := newTestGame(t)
	if err := g2.Load(fen); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !g2.PieceAt(sq).Heroic() {
		t.Error("heroic flag should survive a FEN round trip")
	}
}
