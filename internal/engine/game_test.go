package engine

import (
	"testing"

	"github.com/mnoyd/cotulenh-engine/internal/engineconfig"
)

// blankGame returns a game with an empty board so scenarios can place
// only the pieces they need.
func blankGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(engineconfig.DefaultConfig())
	if err := g.Load("11/11/11/11/11/11/11/11/11/11/11/11 r - - 0 1"); err != nil {
		t.Fatalf("Load(empty): %v", err)
	}
	return g
}

// Scenario 1: starting position is self-consistent.
func TestGameStartingPositionSelfConsistent(t *testing.T) {
	g := NewGame(engineconfig.DefaultConfig())
	if got := g.FEN(); got != startingFEN {
		t.Fatalf("FEN() = %q, want canonical starting FEN", got)
	}
	if g.Turn() != Red {
		t.Errorf("Turn() = %v, want Red", g.Turn())
	}
	if g.InCheck() {
		t.Error("starting position should not be check")
	}
	if g.Result() != ResultOngoing {
		t.Errorf("Result() = %v, want ResultOngoing", g.Result())
	}
	mv1 := g.Moves(MoveFilter{LegalOnly: true})
	if len(mv1) == 0 {
		t.Fatal("starting position should have legal moves")
	}
	mv2 := g.Moves(MoveFilter{LegalOnly: true})
	if len(mv1) != len(mv2) {
		t.Errorf("Moves() not stable across repeated calls: %d vs %d", len(mv1), len(mv2))
	}
}

// Scenario 2: flying-general capture ends the game.
func TestGameFlyingGeneralCapture(t *testing.T) {
	g := blankGame(t)
	redCmd := NewPiece(Red, Commander, false)
	blueCmd := NewPiece(Blue, Commander, false)
	g1, _ := ParseSquare("g1")
	g12, _ := ParseSquare("g12")
	if err := g.Put(redCmd, g1); err != nil {
		t.Fatalf("Put red commander: %v", err)
	}
	if err := g.Put(blueCmd, g12); err != nil {
		t.Fatalf("Put blue commander: %v", err)
	}

	if _, err := g.Move("Cxg12"); err != nil {
		t.Fatalf("Move(Cxg12): %v", err)
	}
	if g.Result() != ResultRedWins {
		t.Errorf("Result() = %v, want ResultRedWins", g.Result())
	}
	if g.PieceAt(g12) != redCmd {
		t.Errorf("g12 should hold the red commander after flying-general capture")
	}
	if g.pos.CommanderSquare(Blue).IsValid() {
		t.Error("blue commander should be gone from the board")
	}
}

// Scenario 3: stack deploy + recombine, then triple-undo restoration.
func TestGameDeploySessionRecombineAndUndo(t *testing.T) {
	g := blankGame(t)
	redCmd := NewPiece(Red, Commander, false)
	blueCmd := NewPiece(Blue, Commander, false)
	k1, _ := ParseSquare("k1")
	j12, _ := ParseSquare("j12")
	if err := g.Put(redCmd, k1); err != nil {
		t.Fatalf("Put red commander: %v", err)
	}
	if err := g.Put(blueCmd, j12); err != nil {
		t.Fatalf("Put blue commander: %v", err)
	}

	navy := NewPiece(Red, Navy, false)
	airforce := NewPiece(Red, AirForce, false)
	tank := NewPiece(Red, Tank, false)
	c3, _ := ParseSquare("c3")
	if err := g.Put(navy, c3); err != nil {
		t.Fatalf("Put navy: %v", err)
	}
	if _, err := g.sm.CreateStack(navy, []Piece{airforce, tank}, c3); err != nil {
		t.Fatalf("CreateStack: %v", err)
	}
	g.pos.SetCarrier(c3, true)
	g.ad.Recompute(g.pos, g.sm)
	g.cache.invalidate()

	if _, err := g.StartDeploy("Nc5"); err != nil {
		t.Fatalf("StartDeploy(Nc5): %v", err)
	}
	if g.deploy == nil || g.deploy.Phase != DeployActive {
		t.Fatal("deploy session should be active after StartDeploy")
	}

	if _, err := g.DeployMove("Fd4"); err != nil {
		t.Fatalf("DeployMove(Fd4): %v", err)
	}

	if _, err := g.DeployMove("Tc5"); err != nil {
		t.Fatalf("DeployMove(Tc5): %v", err)
	}
	// Tc5 recombines with the Navy deposited there, exhausting the
	// session's remaining members, so it should auto-commit.
	if g.deploy != nil {
		t.Fatalf("session should auto-commit once every member has departed, got phase %v", g.deploy.Phase)
	}

	c5, _ := ParseSquare("c5")
	d4, _ := ParseSquare("d4")
	stack, ok := g.StackAt(c5)
	if !ok || stack.Carrier.Class() != Navy || len(stack.Carried) != 1 || stack.Carried[0].Class() != Tank {
		t.Fatalf("c5 should hold Navy carrying Tank, got %+v (ok=%v)", stack, ok)
	}
	if g.PieceAt(d4).Class() != AirForce {
		t.Errorf("d4 should hold the deployed AirForce, got %v", g.PieceAt(d4))
	}
	if !g.PieceAt(c3).IsEmpty() {
		t.Errorf("c3 should be empty after the full deploy, got %v", g.PieceAt(c3))
	}
	if g.Turn() != Blue {
		t.Errorf("turn should have passed to Blue after commit, got %v", g.Turn())
	}

	// First undo: removes the Tc5 recombine, restoring the active session.
	if _, ok := g.Undo(); !ok {
		t.Fatal("first Undo should succeed")
	}
	if g.deploy == nil || g.deploy.Phase != DeployActive {
		t.Fatal("first undo should restore the active deploy session")
	}
	if g.PieceAt(d4).Class() != AirForce {
		t.Error("AirForce at d4 should survive the first undo")
	}
	if _, ok := g.StackAt(c5); ok {
		t.Error("c5 should no longer carry a stack after undoing the recombine")
	}

	// Second undo: removes the Fd4 sub-move.
	if _, ok := g.Undo(); !ok {
		t.Fatal("second Undo should succeed")
	}
	if !g.PieceAt(d4).IsEmpty() {
		t.Error("d4 should be empty after undoing the AirForce deploy")
	}

	// Third undo: removes the session-opening Nc5, restoring (NFT) at c3.
	if _, ok := g.Undo(); !ok {
		t.Fatal("third Undo should succeed")
	}
	if g.deploy != nil {
		t.Error("no deploy session should remain once its opening move is undone")
	}
	origStack, ok := g.StackAt(c3)
	if !ok || origStack.Carrier.Class() != Navy || len(origStack.Carried) != 2 {
		t.Fatalf("c3 should hold the original 3-piece stack, got %+v (ok=%v)", origStack, ok)
	}
}

// Scenario 4: Navy forced into a stay capture against a land unit
// sitting on a mixed-zone square.
func TestGameNavyForcedStayCapture(t *testing.T) {
	g := blankGame(t)
	redCmd := NewPiece(Red, Commander, false)
	blueCmd := NewPiece(Blue, Commander, false)
	k1, _ := ParseSquare("k1")
	j12, _ := ParseSquare("j12")
	if err := g.Put(redCmd, k1); err != nil {
		t.Fatalf("Put red commander: %v", err)
	}
	if err := g.Put(blueCmd, j12); err != nil {
		t.Fatalf("Put blue commander: %v", err)
	}

	navy := NewPiece(Red, Navy, false)
	infantry := NewPiece(Blue, Infantry, false)
	b6, _ := ParseSquare("b6")
	c6, _ := ParseSquare("c6")
	if err := g.Put(navy, b6); err != nil {
		t.Fatalf("Put navy: %v", err)
	}
	if err := g.Put(infantry, c6); err != nil {
		t.Fatalf("Put infantry: %v", err)
	}

	moves := g.Moves(MoveFilter{HasSquare: true, Square: b6, LegalOnly: true})
	var stayCapture, normalCapture bool
	for _, mv := range moves {
		if mv.To != c6 {
			continue
		}
		if mv.Flags.has(FlagStayCapture) {
			stayCapture = true
		} else if mv.Flags.has(FlagCapture) {
			normalCapture = true
		}
	}
	if !stayCapture {
		t.Fatal("b6 Navy should have a stay capture onto c6")
	}
	if normalCapture {
		t.Fatal("b6 Navy should not have a normal capture onto c6 (Navy can't occupy a land unit's square)")
	}

	mv, err := g.Move("N_c6")
	if err != nil {
		t.Fatalf("Move(N_c6): %v", err)
	}
	if !mv.Flags.has(FlagStayCapture) {
		t.Fatalf("resolved move should carry FlagStayCapture, got %v", mv.Flags)
	}
	if g.PieceAt(b6).Class() != Navy {
		t.Error("Navy should remain on b6 after a stay capture")
	}
	if !g.PieceAt(c6).IsEmpty() {
		t.Error("Blue infantry should be removed from c6")
	}
}

// Scenario 5: heroic promotion on a move that threatens the enemy
// Commander, reversible on undo.
func TestGameHeroicPromotionAndUndo(t *testing.T) {
	g := blankGame(t)
	redCmd := NewPiece(Red, Commander, false)
	blueCmd := NewPiece(Blue, Commander, false)
	d1, _ := ParseSquare("d1")
	if err := g.Put(redCmd, d1); err != nil {
		t.Fatalf("Put red commander: %v", err)
	}
	// g5 sits 2 squares (Tank's capture range) east of e5, the square
	// the tank is about to move to.
	g5, _ := ParseSquare("g5")
	if err := g.Put(blueCmd, g5); err != nil {
		t.Fatalf("Put blue commander: %v", err)
	}

	tank := NewPiece(Red, Tank, false)
	e4, _ := ParseSquare("e4")
	if err := g.Put(tank, e4); err != nil {
		t.Fatalf("Put tank: %v", err)
	}

	e5, _ := ParseSquare("e5")
	if _, err := g.Move("Te5"); err != nil {
		t.Fatalf("Move(Te5): %v", err)
	}
	if !g.PieceAt(e5).Heroic() {
		t.Fatal("tank should become heroic after reaching a capture line to the enemy commander")
	}
	fen := g.FEN()
	if !containsHeroicTank(fen) {
		t.Errorf("FEN() should show a heroic tank, got %q", fen)
	}

	if _, ok := g.Undo(); !ok {
		t.Fatal("Undo should succeed")
	}
	if g.PieceAt(e5).Heroic() {
		t.Error("e5 should be empty (not heroic) after undo")
	}
	if g.PieceAt(e4).Heroic() {
		t.Error("heroic flag should be cleared from the tank back at e4 after undo")
	}
}

func containsHeroicTank(fen string) bool {
	for i := 0; i+1 < len(fen); i++ {
		if fen[i] == '+' && fen[i+1] == 'T' {
			return true
		}
	}
	return false
}

// A deploy sub-move that would strand an incompatible class on a
// terrain it can't occupy must never be offered as legal (spec's
// deploy-generation rule: "forbid the move").
func TestGameDeploySubMoveRejectedWhenRemainderInvalid(t *testing.T) {
	g := blankGame(t)
	redCmd := NewPiece(Red, Commander, false)
	blueCmd := NewPiece(Blue, Commander, false)
	k1, _ := ParseSquare("k1")
	j12, _ := ParseSquare("j12")
	if err := g.Put(redCmd, k1); err != nil {
		t.Fatalf("Put red commander: %v", err)
	}
	if err := g.Put(blueCmd, j12); err != nil {
		t.Fatalf("Put blue commander: %v", err)
	}

	navy := NewPiece(Red, Navy, false)
	militia := NewPiece(Red, Militia, false)
	a5, _ := ParseSquare("a5") // pure water, not the mixed zone
	if MixedMask.Has(a5) {
		t.Fatalf("test assumption broken: %v expected to be pure water", a5)
	}
	if err := g.Put(navy, a5); err != nil {
		t.Fatalf("Put navy: %v", err)
	}
	if _, err := g.sm.CreateStack(navy, []Piece{militia}, a5); err != nil {
		t.Fatalf("CreateStack: %v", err)
	}
	g.pos.SetCarrier(a5, true)
	g.ad.Recompute(g.pos, g.sm)
	g.cache.invalidate()

	// Navy departing a5 alone (as a deploy sub-move, not a whole-stack
	// move) would strand the Militia on pure water, which Militia can
	// never occupy; StartDeploy must reject it.
	if _, err := g.StartDeploy("Nb5"); err == nil {
		t.Fatal("StartDeploy(Nb5) should fail: it would strand the Militia on pure water")
	}
}

// Scenario 6: threefold repetition by pure shuffling from the start.
// The canonical starting FEN has no Infantry on the e-file, so this
// shuffles the c-file Infantry pair (c5/c8) one step and back, twice,
// the same oscillation shape as the spec's own worked example.
func TestGameThreefoldRepetitionDraw(t *testing.T) {
	g := NewGame(engineconfig.DefaultConfig())
	moves := []string{"Ic6", "ic7", "Ic5", "ic8", "Ic6", "ic7", "Ic5", "ic8"}
	for _, spec := range moves {
		if _, err := g.Move(spec); err != nil {
			t.Fatalf("Move(%q): %v", spec, err)
		}
	}
	if !g.IsGameOver() {
		t.Fatal("game should be over by threefold repetition")
	}
	if g.Result() != ResultDraw {
		t.Errorf("Result() = %v, want ResultDraw", g.Result())
	}
	if g.DrawReasonString() != "draw by repetition" {
		t.Errorf("DrawReasonString() = %q, want %q", g.DrawReasonString(), "draw by repetition")
	}
	key := g.repetitionKey()
	if g.repCount[key] != 3 {
		t.Errorf("repCount[terminal key] = %d, want 3", g.repCount[key])
	}
}
