package engine

import "errors"

// Error kinds per the spec's §7 classification. Callers should use
// errors.Is against these sentinels, or errors.As against the typed
// errors below for structured detail.
var (
	// ErrParse marks a malformed FEN/SAN/LAN token.
	ErrParse = errors.New("parse error")
	// ErrIllegalMove marks a well-formed move absent from the current
	// legal-move set.
	ErrIllegalMove = errors.New("illegal move")
	// ErrAmbiguousMove marks a SAN/LAN token matching more than one
	// legal move.
	ErrAmbiguousMove = errors.New("ambiguous move")
	// ErrInvalidComposition marks a stack creation/extension that
	// violates the carrier composition table.
	ErrInvalidComposition = errors.New("invalid stack composition")
	// ErrTerrainMismatch marks a placement or movement forbidden by the
	// terrain masks.
	ErrTerrainMismatch = errors.New("terrain mismatch")
	// ErrCommanderUnique marks an attempt to place a second commander
	// of the same color.
	ErrCommanderUnique = errors.New("commander already exists for color")
	// ErrOccupied marks a placement onto a non-empty square.
	ErrOccupied = errors.New("square occupied")
	// ErrDeployState marks an invalid deploy-session transition: commit
	// or cancel without an active session, a non-deploy move during an
	// active session, or a deploy move outside the session's origin or
	// remaining members.
	ErrDeployState = errors.New("invalid deploy session transition")
)

// ParseError carries the raw token that failed to parse, alongside the
// wrapped ErrParse sentinel.
type ParseError struct {
	Kind  string // "fen", "san", "lan", "square", "move-request"
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return e.Kind + " parse error: " + e.Token + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return ErrParse }

// InvalidCompositionError names the carrier/carried pair that was
// rejected.
type InvalidCompositionError struct {
	Carrier PieceClass
	Carried PieceClass
}

func (e *InvalidCompositionError) Error() string {
	return "cannot carry " + e.Carried.String() + " aboard " + e.Carrier.String()
}

func (e *InvalidCompositionError) Unwrap() error { return ErrInvalidComposition }

// TerrainMismatchError names the square and piece class that violate
// terrain.
type TerrainMismatchError struct {
	Square Square
	Class  PieceClass
}

func (e *TerrainMismatchError) Error() string {
	return e.Class.String() + " cannot occupy " + e.Square.String()
}

func (e *TerrainMismatchError) Unwrap() error { return ErrTerrainMismatch }

// DeployStateError describes why a deploy-session transition is
// invalid.
type DeployStateError struct {
	Reason string
}

func (e *DeployStateError) Error() string { return "deploy session: " + e.Reason }

func (e *DeployStateError) Unwrap() error { return ErrDeployState }
