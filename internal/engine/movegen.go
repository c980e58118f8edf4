package engine

// MoveGenerator enumerates pseudo-legal moves against a read-only view
// of the Position Store, Stack Manager, and Air-Defense Map. It never
// mutates what it iterates over, per the spec's leaves-have-no-upward-
// references design note: the Game Controller is the only mutator.
type MoveGenerator struct {
	pos *Position
	sm  *StackManager
	ad  *AirDefenseMap
}

// NewMoveGenerator builds a generator over the given (read-only) state.
func NewMoveGenerator(pos *Position, sm *StackManager, ad *AirDefenseMap) *MoveGenerator {
	return &MoveGenerator{pos: pos, sm: sm, ad: ad}
}

// deployRestriction narrows generation to the members of a stack still
// present at origin, and suppresses the AirForce Stay-capture
// alternative per §4.5.
type deployRestriction struct {
	origin          Square
	remaining       map[PieceClass]bool
	activeOnly      bool
	recombineSquares map[Square]bool
}

// allowsCombineAt reports whether a combination move may land on sq:
// unrestricted outside a deploy session, and restricted to squares the
// session itself deposited into while one is active, per §4.5.
func allowsCombineAt(restrict *deployRestriction, sq Square) bool {
	if restrict == nil {
		return true
	}
	return restrict.recombineSquares[sq]
}

// Generate enumerates pseudo-legal moves for color. If restrict is
// non-nil, generation is limited to deploy-session semantics: only
// members named in restrict.remaining, originating at restrict.origin.
func (g *MoveGenerator) Generate(color Color, restrict *deployRestriction) []Move {
	var moves []Move
	if restrict != nil {
		for cls := range restrict.remaining {
			piece := NewPiece(color, cls, g.pieceHeroicAt(restrict.origin, cls))
			for _, mv := range g.movesForPieceAt(restrict.origin, piece, restrict) {
				mv.Flags |= FlagDeploy
				moves = append(moves, mv)
			}
		}
		return moves
	}

	for _, sq := range g.pos.ColorSet(color).Squares() {
		piece := g.pos.PieceAt(sq)
		moves = append(moves, g.movesForPieceAt(sq, piece, nil)...)
	}
	return moves
}

// pieceHeroicAt looks up whether the named class, if present as a
// carried member of the stack at sq (or as the square's own occupant),
// is heroic - used only for deploy-restricted generation where the
// mover might be a carried sub-piece rather than the square's flat
// Piece.
func (g *MoveGenerator) pieceHeroicAt(sq Square, cls PieceClass) bool {
	if occ := g.pos.PieceAt(sq); occ.Class() == cls {
		return occ.Heroic()
	}
	if stack, ok := g.sm.StackAt(sq); ok {
		for _, c := range stack.Carried {
			if c.Class() == cls {
				return c.Heroic()
			}
		}
	}
	return false
}

// movesForPieceAt generates every pseudo-legal move for piece sitting
// at sq (a stack moves as its carrier; see §4.4's "Stack movement").
func (g *MoveGenerator) movesForPieceAt(sq Square, piece Piece, restrict *deployRestriction) []Move {
	cls := piece.Class()
	if cls == Headquarter && !piece.Heroic() {
		return nil // immobile until heroic
	}
	if cls == Commander {
		return g.commanderMoves(sq, piece, restrict)
	}

	profile, ok := profiles[cls]
	if !ok {
		return nil
	}
	if cls == Headquarter && piece.Heroic() {
		profile = profiles[Militia] // heroic Headquarter moves as Militia, per §4.4
	}

	dirs := directionsFor(profile, piece.Heroic())
	moveRange, captureRange := effectiveRanges(cls, profile, piece.Heroic())

	var moves []Move
	for _, d := range dirs {
		moves = append(moves, g.slideDirection(sq, piece, d, moveRange, captureRange, profile, restrict)...)
	}
	if cls == Missile {
		moves = append(moves, g.missileMoves(sq, piece, restrict)...)
	}
	return moves
}

// directionsFor returns the set of directions a class may use, folding
// in the heroic-grants-diagonal rule.
func directionsFor(p movementProfile, heroic bool) []direction {
	switch {
	case p.diagonal:
		return allDirs[:]
	case heroic && p.heroicDiagonal:
		return allDirs[:]
	default:
		return orthogonalDirs[:]
	}
}

// effectiveRanges applies the heroic range bonus. Missile is handled
// separately (missileMoves) since its bonus is orthogonal/diagonal
// asymmetric rather than a flat add.
func effectiveRanges(cls PieceClass, p movementProfile, heroic bool) (moveRange, captureRange int) {
	moveRange, captureRange = p.moveRange, p.captureRange
	if heroic {
		moveRange += p.heroicMoveBonus
		captureRange += p.heroicMoveBonus
	}
	return
}

// slideDirection walks from sq along d, emitting move/capture/
// combination records up to range squares, honoring blocking rules.
// Missile is excluded (handled by missileMoves, which calls walk
// directly with tailored ranges per orthogonal/diagonal).
func (g *MoveGenerator) slideDirection(sq Square, piece Piece, d direction, moveRange, captureRange int, profile movementProfile, restrict *deployRestriction) []Move {
	if piece.Class() == Missile {
		return nil
	}
	return g.walk(sq, piece, d, moveRange, captureRange, profile.blockedMove, profile.blockedCapture, restrict)
}

// walk is the shared ray-walking primitive used by every sliding class
// plus Missile's per-axis call.
func (g *MoveGenerator) walk(sq Square, piece Piece, d direction, moveRange, captureRange int, blockedMove, blockedCapture bool, restrict *deployRestriction) []Move {
	var moves []Move
	cur := sq
	maxRange := moveRange
	if captureRange > maxRange {
		maxRange = captureRange
	}
	blockedAt := -1 // step index (1-based) of first occupied square, -1 if none yet

	for step := 1; step <= maxRange; step++ {
		next := cur.step(d)
		if next == NoSquare {
			break
		}
		occ := g.pos.PieceAt(next)

		if occ.IsEmpty() {
			if step <= moveRange && (blockedAt == -1 || !blockedMove) {
				if g.landingOK(piece, next) {
					moves = append(moves, Move{From: sq, To: next, Mover: piece, Flags: FlagNormal})
				}
			}
			cur = next
			continue
		}

		// occupied: either enemy (capture candidates) or friendly (combination candidate)
		if occ.Color() == piece.Color() {
			if step <= moveRange && (blockedAt == -1 || !blockedMove) && CanCombine(piece, occ) && allowsCombineAt(restrict, next) {
				moves = append(moves, Move{From: sq, To: next, Mover: piece, CombinedWith: occ, Flags: FlagCombination})
			}
		} else {
			reach := captureRange
			if piece.Class() == Navy {
				reach = navyCaptureRange(piece.Heroic(), occ.Class() == Navy)
			}
			if step <= reach && (blockedAt == -1 || !blockedCapture) {
				moves = append(moves, g.captureMoves(sq, next, piece, occ, restrict)...)
			}
		}

		if blockedAt == -1 {
			blockedAt = step
		}
		if blockedMove && blockedCapture {
			break // nothing further on this ray can matter
		}
		cur = next
	}
	return moves
}

// landingOK applies terrain plus, for AirForce, the air-defense
// passage restriction on plain (non-capturing) movement.
func (g *MoveGenerator) landingOK(piece Piece, to Square) bool {
	if !terrainOK(piece.Class(), to) {
		return false
	}
	if piece.Class() == AirForce && g.ad != nil && g.ad.IsDefended(to, piece.Color().Opponent()) {
		return false
	}
	return true
}

// airForceKamikazeEligible reports whether an AirForce capturing target
// at `to` should generate a Suicide-capture alternative. Per Open
// Question 3 (DESIGN.md), the spec leaves the triggering condition for
// this flag undecided and asks implementations to either gate it
// behind a clearly documented predicate or leave it unreachable until
// domain clarification; this always returns false, leaving Suicide
// generation off while keeping the flag, parser, and applier wired;
// only the flag's SAN separator is unit-tested.
func airForceKamikazeEligible(g *MoveGenerator, piece, target Piece, to Square) bool {
	return false
}

// captureMoves builds the capture-modality alternatives for piece
// capturing target at `to`, per §4.4's Normal/Stay/Suicide rules.
func (g *MoveGenerator) captureMoves(from, to Square, piece, target Piece, restrict *deployRestriction) []Move {
	var out []Move
	canLand := terrainOK(piece.Class(), to)

	if airForceKamikazeEligible(g, piece, target, to) {
		out = append(out, Move{From: from, To: to, Mover: piece, Captured: target, Flags: FlagCapture | FlagSuicideCapture})
		return out
	}

	// Navy capturing a land unit standing on a mixed-zone square (the
	// c-file) still can't occupy it: canLand is true there
	// because the square is also Water, but the square is physically
	// held by ground forces, so Navy bombards rather than boards.
	navyVsLandUnit := piece.Class() == Navy && target.Class() != Navy && target.Class() != AirForce

	waterOnly := WaterMask.Has(to) && !MixedMask.Has(to)
	forceStay := !canLand || navyVsLandUnit || (piece.Class() == AirForce && target.Class() == Navy && waterOnly)

	if forceStay {
		out = append(out, Move{From: from, To: to, Mover: piece, Captured: target, Flags: FlagCapture | FlagStayCapture})
		return out
	}

	out = append(out, Move{From: from, To: to, Mover: piece, Captured: target, Flags: FlagCapture})
	if piece.Class() == AirForce && (restrict == nil || !restrict.activeOnly) {
		out = append(out, Move{From: from, To: to, Mover: piece, Captured: target, Flags: FlagCapture | FlagStayCapture})
	}
	return out
}

// missileMoves generates Missile's asymmetric orthogonal/diagonal reach
// (§4.4: "2 orthogonal + 1 diagonal"; heroic "3 orth + 2 diag").
func (g *MoveGenerator) missileMoves(sq Square, piece Piece, restrict *deployRestriction) []Move {
	orth, diag := missileRanges(piece.Heroic())
	var moves []Move
	for _, d := range orthogonalDirs {
		moves = append(moves, g.walk(sq, piece, d, orth, orth, true, false, restrict)...)
	}
	for _, d := range diagonalDirs {
		moves = append(moves, g.walk(sq, piece, d, diag, diag, true, false, restrict)...)
	}
	return moves
}

// commanderMoves handles the Commander's unlimited orthogonal slide,
// heroic diagonal step, and the flying-general capture.
func (g *MoveGenerator) commanderMoves(sq Square, piece Piece, restrict *deployRestriction) []Move {
	var moves []Move
	dirs := orthogonalDirs[:]
	for _, d := range dirs {
		cur := sq
		for {
			next := cur.step(d)
			if next == NoSquare {
				break
			}
			occ := g.pos.PieceAt(next)
			if occ.IsEmpty() {
				if g.landingOK(piece, next) {
					moves = append(moves, Move{From: sq, To: next, Mover: piece, Flags: FlagNormal})
				}
				cur = next
				continue
			}
			if occ.Color() == piece.Color() {
				if CanCombine(piece, occ) && allowsCombineAt(restrict, next) {
					moves = append(moves, Move{From: sq, To: next, Mover: piece, CombinedWith: occ, Flags: FlagCombination})
				}
			} else if dist := chebyshevOrtho(sq, next); dist == 1 {
				moves = append(moves, Move{From: sq, To: next, Mover: piece, Captured: occ, Flags: FlagCapture})
			}
			break
		}
	}

	if piece.Heroic() {
		for _, d := range diagonalDirs {
			next := sq.step(d)
			if next == NoSquare {
				continue
			}
			occ := g.pos.PieceAt(next)
			if occ.IsEmpty() {
				if g.landingOK(piece, next) {
					moves = append(moves, Move{From: sq, To: next, Mover: piece, Flags: FlagNormal})
				}
			} else if occ.Color() != piece.Color() {
				moves = append(moves, Move{From: sq, To: next, Mover: piece, Captured: occ, Flags: FlagCapture})
			} else if CanCombine(piece, occ) && allowsCombineAt(restrict, next) {
				moves = append(moves, Move{From: sq, To: next, Mover: piece, CombinedWith: occ, Flags: FlagCombination})
			}
		}
	}

	if enemy := g.pos.CommanderSquare(piece.Color().Opponent()); enemy.IsValid() {
		if clearOrthogonalLine(g.pos, sq, enemy) {
			moves = append(moves, Move{From: sq, To: enemy, Mover: piece, Captured: g.pos.PieceAt(enemy), Flags: FlagCapture})
		}
	}
	return moves
}

func chebyshevOrtho(a, b Square) int {
	df := a.File() - b.File()
	dr := a.Rank() - b.Rank()
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	return df + dr
}

// clearOrthogonalLine reports whether a and b share a rank or file with
// no occupied square strictly between them - the flying-general
// precondition.
func clearOrthogonalLine(pos *Position, a, b Square) bool {
	var d direction
	switch {
	case a.File() == b.File() && a.Rank() != b.Rank():
		if b.Rank() > a.Rank() {
			d = dirN
		} else {
			d = dirS
		}
	case a.Rank() == b.Rank() && a.File() != b.File():
		if b.File() > a.File() {
			d = dirE
		} else {
			d = dirW
		}
	default:
		return false
	}
	cur := a.step(d)
	for cur != NoSquare && cur != b {
		if !pos.PieceAt(cur).IsEmpty() {
			return false
		}
		cur = cur.step(d)
	}
	return cur == b
}

// IsSquareAttacked reports whether any piece of attacker could capture
// on sq, per its own range/blocking profile - the primitive the
// legality filter (commander safety) and Commander's "may not enter
// check" rule both rest on. Computed directly from range/geometry
// rather than by filtering move-generation output, since sq may be
// empty (e.g. a candidate destination) and ordinary capture generation
// only fires against an occupied square.
func (g *MoveGenerator) IsSquareAttacked(sq Square, attacker Color) bool {
	for _, from := range g.pos.ColorSet(attacker).Squares() {
		if g.attackReaches(from, g.pos.PieceAt(from), sq) {
			return true
		}
	}
	return false
}

// attackReaches reports whether piece, sitting at from, threatens sq
// with a capture: sq must lie along one of the piece's legal
// directions, within its capture range, with blocking honored per
// class (shoot-over classes ignore intervening pieces).
func (g *MoveGenerator) attackReaches(from Square, piece Piece, sq Square) bool {
	cls := piece.Class()
	if cls == Headquarter && !piece.Heroic() {
		return false
	}
	d, dist, ok := directionAndDistance(from, sq)
	if !ok {
		return false
	}

	profile := profiles[cls]
	if cls == Headquarter && piece.Heroic() {
		profile = profiles[Militia]
	}

	if cls == Commander {
		dirs := directionsFor(profile, piece.Heroic())
		if dist == 1 && containsDir(dirs, d) {
			return !blockedBetween(g.pos, from, sq, d, dist)
		}
		if isOrthogonalDir(d) && g.pos.PieceAt(sq).Class() == Commander {
			return !blockedBetween(g.pos, from, sq, d, dist)
		}
		return false
	}

	dirs := directionsFor(profile, piece.Heroic())
	if !containsDir(dirs, d) {
		return false
	}

	captureRange := profile.captureRange
	if piece.Heroic() {
		captureRange += profile.heroicMoveBonus
	}
	switch cls {
	case Missile:
		orth, diag := missileRanges(piece.Heroic())
		if isOrthogonalDir(d) {
			captureRange = orth
		} else {
			captureRange = diag
		}
	case Navy:
		captureRange = navyCaptureRange(piece.Heroic(), g.pos.PieceAt(sq).Class() == Navy)
	}
	if dist > captureRange {
		return false
	}
	if profile.blockedCapture && blockedBetween(g.pos, from, sq, d, dist) {
		return false
	}
	return true
}

// directionAndDistance resolves the principal direction and distance
// from a to b, or ok=false if they don't share a rank, file, or
// diagonal.
func directionAndDistance(a, b Square) (direction, int, bool) {
	df := b.File() - a.File()
	dr := b.Rank() - a.Rank()
	switch {
	case df == 0 && dr == 0:
		return direction{}, 0, false
	case df == 0:
		if dr > 0 {
			return dirN, dr, true
		}
		return dirS, -dr, true
	case dr == 0:
		if df > 0 {
			return dirE, df, true
		}
		return dirW, -df, true
	case df == dr:
		if df > 0 {
			return dirNE, df, true
		}
		return dirSW, -df, true
	case df == -dr:
		if df > 0 {
			return dirSE, df, true
		}
		return dirNW, -df, true
	default:
		return direction{}, 0, false
	}
}

func containsDir(dirs []direction, d direction) bool {
	for _, c := range dirs {
		if c == d {
			return true
		}
	}
	return false
}

func isOrthogonalDir(d direction) bool {
	return d.df == 0 || d.dr == 0
}

// blockedBetween reports whether any square strictly between a and b
// (exclusive) along d is occupied.
func blockedBetween(pos *Position, a, b Square, d direction, dist int) bool {
	cur := a
	for i := 1; i < dist; i++ {
		cur = cur.step(d)
		if !pos.PieceAt(cur).IsEmpty() {
			return true
		}
	}
	return false
}
