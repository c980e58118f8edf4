package engine

import "testing"

func TestNewDeploySessionTracksRemaining(t *testing.T) {
	origin := NewSquare(2, 2)
	s := newDeploySession(origin, Red, "fen", []PieceClass{Navy, AirForce, Tank})
	if s.Phase != DeployActive {
		t.Errorf("Phase = %v, want DeployActive", s.Phase)
	}
	remaining := s.Remaining()
	if len(remaining) != 3 {
		t.Fatalf("Remaining() = %v, want 3 classes", remaining)
	}
}

func TestRecordSubMoveNarrowsRemaining(t *testing.T) {
	origin := NewSquare(2, 2)
	s := newDeploySession(origin, Red, "fen", []PieceClass{Navy, AirForce, Tank})
	if auto := s.recordSubMove(AirForce, NewSquare(3, 4)); auto {
		t.Error("recordSubMove should not auto-commit while members remain")
	}
	remaining := s.Remaining()
	if len(remaining) != 2 {
		t.Fatalf("Remaining() = %v, want 2 classes after one departs", remaining)
	}
	for _, c := range remaining {
		if c == AirForce {
			t.Error("AirForce should no longer be in Remaining()")
		}
	}
}

func TestRecordSubMoveAutoCommitsWhenExhausted(t *testing.T) {
	origin := NewSquare(2, 2)
	s := newDeploySession(origin, Red, "fen", []PieceClass{Navy})
	auto := s.recordSubMove(Navy, NewSquare(3, 4))
	if !auto {
		t.Error("recordSubMove should signal auto-commit when no members remain")
	}
}

func TestDeploySessionRestrictionRecombineSquares(t *testing.T) {
	origin := NewSquare(2, 2)
	dest := NewSquare(4, 4)
	s := newDeploySession(origin, Red, "fen", []PieceClass{Navy, AirForce})
	s.recordSubMove(AirForce, dest)
	restrict := s.restriction()
	if restrict.origin != origin {
		t.Errorf("restriction.origin = %v, want %v", restrict.origin, origin)
	}
	if !restrict.recombineSquares[dest] {
		t.Error("recombineSquares should include the session's own earlier destination")
	}
	other := NewSquare(5, 5)
	if restrict.recombineSquares[other] {
		t.Error("recombineSquares should not include squares outside this session's history")
	}
	if !restrict.activeOnly {
		t.Error("restriction built from an active session should set activeOnly")
	}
}

func TestValidateRemainingTerrainRejectsNavyOnLand(t *testing.T) {
	landOnly := NewSquare(6, 4) // pure land
	if err := validateRemainingTerrain(landOnly, []PieceClass{Navy}); err == nil {
		t.Error("a Navy member stranded on pure land should be rejected")
	}
	if err := validateRemainingTerrain(landOnly, []PieceClass{Tank}); err != nil {
		t.Errorf("Tank on land should be valid, got %v", err)
	}
}

func TestRemainingAfterExcludesDepartingClass(t *testing.T) {
	origin := NewSquare(2, 2)
	s := newDeploySession(origin, Red, "fen", []PieceClass{Navy, AirForce, Tank})
	after := s.remainingAfter(AirForce)
	if len(after) != 2 {
		t.Fatalf("remainingAfter(AirForce) = %v, want 2 classes", after)
	}
	for _, c := range after {
		if c == AirForce {
			t.Error("remainingAfter should exclude the departing class")
		}
	}
	// The session itself is untouched: a hypothetical check, not a commit.
	if len(s.Remaining()) != 3 {
		t.Error("remainingAfter should not mutate the session's actual remaining set")
	}
}
