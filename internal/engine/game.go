package engine

import (
	logging "github.com/op/go-logging"

	"github.com/mnoyd/cotulenh-engine/internal/assert"
	"github.com/mnoyd/cotulenh-engine/internal/cotulenhlog"
	"github.com/mnoyd/cotulenh-engine/internal/engineconfig"
)

// Result is the outcome of a finished game. ResultOngoing is returned
// while play continues.
type Result int

const (
	ResultOngoing Result = iota
	ResultRedWins
	ResultBlueWins
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultRedWins:
		return "red wins"
	case ResultBlueWins:
		return "blue wins"
	case ResultDraw:
		return "draw"
	default:
		return "*"
	}
}

// DrawReason names why a draw Result was reached.
type DrawReason int

const (
	DrawNone DrawReason = iota
	DrawStalemate
	DrawFiftyMove
	DrawRepetition
)

func (d DrawReason) String() string {
	switch d {
	case DrawStalemate:
		return "stalemate"
	case DrawFiftyMove:
		return "fifty-move rule"
	case DrawRepetition:
		return "draw by repetition"
	default:
		return ""
	}
}

// MoveFilter narrows the Moves query per §4.6's query surface. Zero
// value matches everything legal-filtered off; set HasSquare/HasClass
// to scope to a square or piece class.
type MoveFilter struct {
	Square    Square
	HasSquare bool
	Class     PieceClass
	HasClass  bool
	LegalOnly bool
}

// historyEntry is one completed move's undo record: the atomic action
// log plus whatever deploy-session transition it caused.
type historyEntry struct {
	move        Move
	log         actionLog
	prevDeploy  *DeploySession
	repKeyAdded bool
	repKey      uint64
}

// Game is the Game Controller: the only component in the package that
// mutates state. It composes the Position Store, Stack Manager, Air-
// Defense Map, and (while one is active) a Deploy Session, plus the
// move cache and logger. A Game is not safe for concurrent mutation;
// see §5.
type Game struct {
	pos    *Position
	sm     *StackManager
	ad     *AirDefenseMap
	deploy *DeploySession

	cache *moveCache
	cfg   engineconfig.Config
	log   *logging.Logger

	hist     []historyEntry
	repCount map[uint64]int
	drawFlag DrawReason
}

// startingFEN is the canonical opening position (§8 scenario 1).
const startingFEN = "6c4/1n2fh1hf2/3a2s2a1/2n1gt1tg2/2ie2m2ei/11/11/2IE2M2EI/2N1GT1TG2/3A2S2A1/1N2fh1hf2/6C4 r - - 0 1"

// NewGame returns a game at the canonical starting position, using
// cfg's tunables (move-cache capacity, log level).
func NewGame(cfg engineconfig.Config) *Game {
	g := &Game{
		pos:      NewPosition(),
		sm:       NewStackManager(),
		ad:       NewAirDefenseMap(),
		cache:    newMoveCache(cfg.MoveCacheCapacity),
		cfg:      cfg,
		log:      cotulenhlog.New("engine", cotulenhlog.ParseLevel(cfg.LogLevel)),
		repCount: make(map[uint64]int),
	}
	if err := g.Load(startingFEN); err != nil {
		g.log.Errorf("loading canonical starting position: %v", err)
	}
	return g
}

func (g *Game) generator() *MoveGenerator {
	return NewMoveGenerator(g.pos, g.sm, g.ad)
}

// Turn returns the color to move.
func (g *Game) Turn() Color { return g.pos.SideToMove() }

// PieceAt passes through to the Position Store.
func (g *Game) PieceAt(sq Square) Piece { return g.pos.PieceAt(sq) }

// StackAt passes through to the Stack Manager.
func (g *Game) StackAt(sq Square) (*Stack, bool) { return g.sm.StackAt(sq) }

// DeploySessionSnapshot returns the active deploy session, or nil.
func (g *Game) DeploySessionSnapshot() *DeploySession { return g.deploy }

// InCheck reports whether the side to move's Commander is attacked.
func (g *Game) InCheck() bool {
	return g.commanderAttacked(g.Turn())
}

func (g *Game) commanderAttacked(c Color) bool {
	sq := g.pos.CommanderSquare(c)
	if !sq.IsValid() {
		return false
	}
	return g.generator().IsSquareAttacked(sq, c.Opponent())
}

// repetitionKey folds the deploy-session fingerprint into the Zobrist
// hash so a mid-deploy position never collides with the same board at
// rest, per §4.6/§9.
func (g *Game) repetitionKey() uint64 {
	h := g.pos.Zobrist()
	if g.deploy != nil && g.deploy.Phase == DeployActive {
		h ^= zobristDeployActive
	}
	return h
}

// Moves returns the legal moves matching filter. During an active
// deploy session, generation is restricted to §4.5 semantics
// regardless of filter.Square.
func (g *Game) Moves(filter MoveFilter) []Move {
	key := moveCacheKey{
		fen:       g.FEN(),
		square:    filter.Square,
		hasSquare: filter.HasSquare,
		class:     filter.Class,
		hasClass:  filter.HasClass,
		legal:     filter.LegalOnly,
	}
	if cached, ok := g.cache.get(key); ok {
		return cached
	}

	var pseudo []Move
	if g.deploy != nil && g.deploy.Phase == DeployActive {
		pseudo = g.generator().Generate(g.deploy.TurnColor, g.deploy.restriction())
	} else {
		pseudo = g.generator().Generate(g.Turn(), nil)
	}

	out := make([]Move, 0, len(pseudo))
	for _, mv := range pseudo {
		if filter.HasSquare && mv.From != filter.Square {
			continue
		}
		if filter.HasClass && mv.Mover.Class() != filter.Class {
			continue
		}
		if filter.LegalOnly && !g.isLegal(mv) {
			continue
		}
		out = append(out, mv)
	}
	g.cache.put(key, out)
	return out
}

// isLegal applies mv speculatively and checks the mover's own Commander
// is neither captured nor attacked afterward (which also subsumes
// flying-general exposure, since a Commander attacking along a clear
// line is just another attacker in IsSquareAttacked).
func (g *Game) isLegal(mv Move) bool {
	color := mv.Mover.Color()
	if g.deploy != nil && g.deploy.Phase == DeployActive && mv.Flags.has(FlagDeploy) {
		if validateRemainingTerrain(g.deploy.Origin, g.deploy.remainingAfter(mv.Mover.Class())) != nil {
			return false
		}
	}
	var log actionLog
	if err := g.execute(mv, &log, g.deploy != nil || mv.Flags.has(FlagDeploy)); err != nil {
		log.undo(g.pos, g.sm)
		return false
	}
	sq := g.pos.CommanderSquare(color)
	safe := sq.IsValid() && !g.generator().IsSquareAttacked(sq, color.Opponent())
	log.undo(g.pos, g.sm)
	return safe
}

// Move resolves spec (SAN/LAN) against the current legal-move set and
// applies it.
func (g *Game) Move(spec string) (Move, error) {
	mv, err := g.resolveSAN(spec, false)
	if err != nil {
		return Move{}, err
	}
	if err := g.apply(mv); err != nil {
		return Move{}, err
	}
	return mv, nil
}

// resolveSAN matches spec against Moves(), requiring deploy-session
// membership when forDeploy is true.
func (g *Game) resolveSAN(spec string, forDeploy bool) (Move, error) {
	candidates := g.Moves(MoveFilter{LegalOnly: true})
	var matches []Move
	for _, mv := range candidates {
		if sanMatches(spec, mv) {
			matches = append(matches, mv)
		}
	}
	if len(matches) == 0 {
		return Move{}, &ParseError{Kind: "san", Token: spec, Err: ErrIllegalMove}
	}
	if len(matches) > 1 {
		return Move{}, &ParseError{Kind: "san", Token: spec, Err: ErrAmbiguousMove}
	}
	return matches[0], nil
}

// apply is the common path for Move() and DeployMove(): execute the
// atomic actions, push history, run post-move bookkeeping.
func (g *Game) apply(mv Move) error {
	var entry historyEntry
	entry.move = mv
	// Clone, not alias: recordSubMove/commitDeploySessionLocked mutate
	// g.deploy in place later in this same call, which would otherwise
	// silently corrupt the "previous" snapshot Undo needs.
	entry.prevDeploy = g.deploy.Clone()

	wasDeploy := g.deploy != nil
	startsDeploy := !wasDeploy && mv.Flags.has(FlagDeploy)
	prevSide, prevHalf, prevFull := g.pos.SideToMove(), g.pos.HalfMoveClock(), g.pos.FullMoveNumber()

	// A session-starting move still splits one piece off a stack, even
	// though g.deploy is nil until startDeploySessionFor below runs -
	// capture the pre-move composition now, before execute() reshapes
	// the origin square.
	var originClasses []PieceClass
	if startsDeploy {
		originClasses = classesAt(g.pos, g.sm, mv.From)
	}

	if err := g.execute(mv, &entry.log, wasDeploy || startsDeploy); err != nil {
		return err
	}
	heroicBefore := g.pos.HeroicSet()

	if startsDeploy {
		g.startDeploySessionFor(mv, originClasses)
	} else if wasDeploy {
		g.advanceDeploySession(mv)
	}

	if g.deploy == nil || g.deploy.Phase != DeployActive {
		g.promoteHeroicsAfterMove(mv.Mover.Color())
		g.updateCountersAfterMove(mv)
		g.pos.SetSideToMove(mv.Mover.Color().Opponent())
		g.pushRepetition(&entry)
	}
	// Promotions, counters and side to move above bypass the action log;
	// record their inverses so Undo restores them too.
	for _, sq := range g.pos.HeroicSet().Subtract(heroicBefore).Squares() {
		entry.log.actions = append(entry.log.actions, action{kind: actionMarkHeroic, sq: sq})
	}
	entry.log.actions = append(entry.log.actions,
		action{kind: actionSideToMove, prevColor: prevSide},
		action{kind: actionHalfMoveClock, prevInt: prevHalf},
		action{kind: actionFullMoveNumber, prevInt: prevFull})

	g.hist = append(g.hist, entry)
	g.ad.Recompute(g.pos, g.sm)
	g.cache.invalidate()
	g.log.Debugf("applied move %+v", mv)
	return nil
}

func (g *Game) pushRepetition(entry *historyEntry) {
	key := g.repetitionKey()
	g.repCount[key]++
	entry.repKeyAdded = true
	entry.repKey = key
}

// execute runs the atomic actions for mv against pos/sm, logging every
// step onto log for exact undo. It does not touch side-to-move,
// counters, or heroic promotion - apply()'s caller decides whether
// those apply (they don't, mid-deploy).
func (g *Game) execute(mv Move, log *actionLog, duringDeploy bool) error {
	switch {
	case mv.Flags.has(FlagCombination):
		return g.executeCombination(mv, log, duringDeploy)
	default:
		return g.executeSimple(mv, log, duringDeploy)
	}
}

// executeSimple handles Normal/Stay/Suicide moves (capturing or not),
// including stack-as-unit relocation and deploy sub-moves.
func (g *Game) executeSimple(mv Move, log *actionLog, duringDeploy bool) error {
	if mv.Flags.has(FlagStayCapture) {
		log.applyRemove(g.pos, mv.To)
		if stack, ok := g.sm.StackAt(mv.To); ok {
			_ = stack
			log.applyDissolveStack(g.sm, mv.To)
		}
		return nil
	}
	if mv.Flags.has(FlagSuicideCapture) {
		log.applyRemove(g.pos, mv.To)
		if _, ok := g.sm.StackAt(mv.To); ok {
			log.applyDissolveStack(g.sm, mv.To)
		}
		log.applyRemove(g.pos, mv.From)
		if _, ok := g.sm.StackAt(mv.From); ok {
			log.applyDissolveStack(g.sm, mv.From)
		}
		return nil
	}

	if mv.IsCapture() {
		log.applyRemove(g.pos, mv.To)
		if _, ok := g.sm.StackAt(mv.To); ok {
			log.applyDissolveStack(g.sm, mv.To)
		}
	}

	if duringDeploy {
		return g.executeDeploySubMove(mv, log)
	}

	stack, hadStack := g.sm.StackAt(mv.From)
	log.applyRemove(g.pos, mv.From)
	if err := log.applyPlace(g.pos, mv.Mover, mv.To); err != nil {
		return err
	}
	if hadStack {
		log.applyDissolveStack(g.sm, mv.From)
		if _, err := log.applyCreateStack(g.sm, stack.Carrier, stack.Carried, mv.To); err != nil {
			return err
		}
		log.applySetCarrier(g.pos, mv.To)
	}
	return nil
}

// executeDeploySubMove moves one member out of the session's origin
// stack to mv.To, re-deriving a carrier for whatever remains at origin
// (per scenario 3: departing the carrier promotes a remaining member
// that can carry the rest).
func (g *Game) executeDeploySubMove(mv Move, log *actionLog) error {
	origin := mv.From
	stack, hasStack := g.sm.StackAt(origin)
	cls := mv.Mover.Class()

	if hasStack && stack.Carrier.Class() == cls {
		remaining := append([]Piece{}, stack.Carried...)
		log.applyDissolveStack(g.sm, origin)
		log.applyRemove(g.pos, origin)
		if err := log.applyPlace(g.pos, mv.Mover, mv.To); err != nil {
			return err
		}
		if len(remaining) == 1 {
			if err := log.applyPlace(g.pos, remaining[0], origin); err != nil {
				return err
			}
			return nil
		}
		if len(remaining) > 1 {
			carrierIdx, ok := findCarrier(remaining)
			if !ok {
				return &DeployStateError{Reason: "no remaining member of " + origin.String() + " can carry the rest"}
			}
			newCarrier := remaining[carrierIdx]
			carried := append(append([]Piece{}, remaining[:carrierIdx]...), remaining[carrierIdx+1:]...)
			if err := log.applyPlace(g.pos, newCarrier, origin); err != nil {
				return err
			}
			if _, err := log.applyCreateStack(g.sm, newCarrier, carried, origin); err != nil {
				return err
			}
			log.applySetCarrier(g.pos, origin)
		}
		return nil
	}

	if hasStack {
		if _, ok := log.applyRemoveFromStack(g.sm, origin, cls); !ok {
			return &DeployStateError{Reason: "class not present in stack at " + origin.String()}
		}
		if _, stillStack := g.sm.StackAt(origin); !stillStack {
			log.applyClearCarrier(g.pos, origin)
		}
	} else {
		log.applyRemove(g.pos, origin)
	}
	return log.applyPlace(g.pos, mv.Mover, mv.To)
}

// findCarrier picks the first piece among candidates that can carry
// every other candidate, per the composition table.
func findCarrier(candidates []Piece) (int, bool) {
	for i, c := range candidates {
		ok := true
		for j, other := range candidates {
			if i == j {
				continue
			}
			if !CanCarry(c.Class(), other.Class()) {
				ok = false
				break
			}
		}
		if ok {
			return i, true
		}
	}
	return 0, false
}

// executeCombination absorbs mv.Mover into (or with) the piece at
// mv.To, per §4.4's combination rule.
func (g *Game) executeCombination(mv Move, log *actionLog, duringDeploy bool) error {
	origin := mv.From
	mover := mv.Mover
	target := mv.CombinedWith

	if duringDeploy {
		stack, hasStack := g.sm.StackAt(origin)
		if hasStack && stack.Carrier.Class() != mover.Class() {
			log.applyRemoveFromStack(g.sm, origin, mover.Class())
		} else {
			log.applyRemove(g.pos, origin)
		}
	} else {
		if stack, hadStack := g.sm.StackAt(origin); hadStack {
			log.applyDissolveStack(g.sm, origin)
			_ = stack
		}
		log.applyRemove(g.pos, origin)
	}

	if existingStack, ok := g.sm.StackAt(mv.To); ok {
		if err := log.applyAddToStack(g.sm, mv.To, mover); err != nil {
			return err
		}
		_ = existingStack
		return nil
	}

	var carrier, carried Piece
	switch {
	case CanCarry(target.Class(), mover.Class()):
		carrier, carried = target, mover
	case duringDeploy && g.deploy != nil:
		return &DeployStateError{Reason: "recombine onto " + mv.To.String() + " would replace the carrier deposited there"}
	case CanCarry(mover.Class(), target.Class()):
		carrier, carried = mover, target
	default:
		return &InvalidCompositionError{Carrier: mover.Class(), Carried: target.Class()}
	}

	log.applyRemove(g.pos, mv.To)
	if err := log.applyPlace(g.pos, carrier, mv.To); err != nil {
		return err
	}
	if _, err := log.applyCreateStack(g.sm, carrier, []Piece{carried}, mv.To); err != nil {
		return err
	}
	log.applySetCarrier(g.pos, mv.To)
	return nil
}

// promoteHeroicsAfterMove scans every piece of color for a capture
// line reaching the enemy Commander, per §4.6 step 3.
func (g *Game) promoteHeroicsAfterMove(color Color) {
	enemySq := g.pos.CommanderSquare(color.Opponent())
	if !enemySq.IsValid() {
		return
	}
	gen := g.generator()
	for _, sq := range g.pos.ColorSet(color).Squares() {
		piece := g.pos.PieceAt(sq)
		if piece.Heroic() {
			continue
		}
		if gen.attackReaches(sq, piece, enemySq) {
			g.pos.SetHeroic(sq, true)
		}
	}
}

func (g *Game) updateCountersAfterMove(mv Move) {
	if mv.IsCapture() || mv.Mover.Class() == Commander {
		g.pos.SetHalfMoveClock(0)
	} else {
		g.pos.SetHalfMoveClock(g.pos.HalfMoveClock() + 1)
	}
	if mv.Mover.Color() == Blue {
		g.pos.SetFullMoveNumber(g.pos.FullMoveNumber() + 1)
	}
}

// Undo reverts the last applied move (or deploy sub-move), restoring
// the board, heroic flags, side to move, move counters, the prior
// deploy-session pointer and repetition count.
func (g *Game) Undo() (*Move, bool) {
	if len(g.hist) == 0 {
		return nil, false
	}
	entry := g.hist[len(g.hist)-1]
	g.hist = g.hist[:len(g.hist)-1]

	if entry.repKeyAdded {
		g.repCount[entry.repKey]--
		if g.repCount[entry.repKey] <= 0 {
			delete(g.repCount, entry.repKey)
		}
	}
	entry.log.undo(g.pos, g.sm)
	g.deploy = entry.prevDeploy
	g.ad.Recompute(g.pos, g.sm)
	g.cache.invalidate()
	mv := entry.move
	return &mv, true
}

// StartDeploy begins a deploy session by generating and applying the
// first sub-move; the session activates as a side effect of apply()
// when the resolved move carries FlagDeploy.
func (g *Game) StartDeploy(spec string) (Move, error) {
	if g.deploy != nil {
		return Move{}, &DeployStateError{Reason: "a deploy session is already active"}
	}
	mv, err := g.resolveSAN(spec, false)
	if err != nil {
		return Move{}, err
	}
	if remainder := remainderAfterDeparture(g.pos, g.sm, mv.From, mv.Mover.Class()); remainder != nil {
		if err := validateRemainingTerrain(mv.From, remainder); err != nil {
			return Move{}, err
		}
	}
	mv.Flags |= FlagDeploy
	if err := g.apply(mv); err != nil {
		return Move{}, err
	}
	return mv, nil
}

// remainderAfterDeparture reports which classes would still sit at sq
// if cls (the carrier or a carried member) departs, or nil if sq
// doesn't currently hold a stack - used to pre-validate the first
// sub-move of a deploy session before it commits to FlagDeploy.
func remainderAfterDeparture(pos *Position, sm *StackManager, sq Square, cls PieceClass) []PieceClass {
	stack, ok := sm.StackAt(sq)
	if !ok {
		return nil
	}
	var out []PieceClass
	if stack.Carrier.Class() != cls {
		out = append(out, stack.Carrier.Class())
	}
	for _, c := range stack.Carried {
		if c.Class() != cls {
			out = append(out, c.Class())
		}
	}
	return out
}

// classesAt snapshots every class sitting at sq: the carrier and
// carried members of a stack, or the single flat occupant.
func classesAt(pos *Position, sm *StackManager, sq Square) []PieceClass {
	if stack, ok := sm.StackAt(sq); ok {
		classes := []PieceClass{stack.Carrier.Class()}
		for _, c := range stack.Carried {
			classes = append(classes, c.Class())
		}
		return classes
	}
	if occ := pos.PieceAt(sq); !occ.IsEmpty() {
		return []PieceClass{occ.Class()}
	}
	return nil
}

func (g *Game) startDeploySessionFor(mv Move, classes []PieceClass) {
	startFEN := g.FEN()
	g.deploy = newDeploySession(mv.From, mv.Mover.Color(), startFEN, classes)
	g.deploy.recordSubMove(mv.Mover.Class(), mv.To)
}

// DeployMove plays the next sub-move of an active deploy session.
func (g *Game) DeployMove(spec string) (Move, error) {
	if g.deploy == nil || g.deploy.Phase != DeployActive {
		return Move{}, &DeployStateError{Reason: "no active deploy session"}
	}
	mv, err := g.resolveSAN(spec, true)
	if err != nil {
		return Move{}, err
	}
	if err := g.apply(mv); err != nil {
		return Move{}, err
	}
	return mv, nil
}

func (g *Game) advanceDeploySession(mv Move) {
	auto := g.deploy.recordSubMove(mv.Mover.Class(), mv.To)
	if assert.DEBUG {
		err := validateRemainingTerrain(g.deploy.Origin, g.deploy.Remaining())
		assert.Assert(err == nil, "advanceDeploySession: isLegal should have rejected a sub-move leaving an invalid remainder: %v", err)
	}
	if auto {
		g.commitDeploySessionLocked()
	}
}

// CommitDeploySession ends the session; turn passes.
func (g *Game) CommitDeploySession() error {
	if g.deploy == nil || g.deploy.Phase != DeployActive {
		return &DeployStateError{Reason: "no active deploy session"}
	}
	g.commitDeploySessionLocked()
	return nil
}

func (g *Game) commitDeploySessionLocked() {
	g.deploy.Phase = DeployCommitted
	color := g.deploy.TurnColor
	g.promoteHeroicsAfterMove(color)
	g.pos.SetHalfMoveClock(g.pos.HalfMoveClock() + 1)
	if color == Blue {
		g.pos.SetFullMoveNumber(g.pos.FullMoveNumber() + 1)
	}
	g.pos.SetSideToMove(color.Opponent())
	key := g.repetitionKey()
	g.repCount[key]++
	g.deploy = nil
	g.cache.invalidate()
}

// CancelDeploySession undoes every sub-move played this session,
// restoring start_fen exactly, and leaves the turn with the same
// player.
func (g *Game) CancelDeploySession() error {
	if g.deploy == nil || g.deploy.Phase != DeployActive {
		return &DeployStateError{Reason: "no active deploy session"}
	}
	for len(g.hist) > 0 {
		entry := g.hist[len(g.hist)-1]
		isSessionMove := entry.prevDeploy == nil || entry.prevDeploy.Origin == g.deploy.Origin
		if !isSessionMove {
			break
		}
		g.hist = g.hist[:len(g.hist)-1]
		entry.log.undo(g.pos, g.sm)
		prevWasThisSession := entry.prevDeploy != nil && entry.prevDeploy.Origin == g.deploy.Origin
		if !prevWasThisSession {
			g.deploy = nil
			break
		}
		g.deploy = entry.prevDeploy
	}
	g.cache.invalidate()
	return nil
}

// IsGameOver reports whether the position is terminal.
func (g *Game) IsGameOver() bool {
	return g.Result() != ResultOngoing
}

// Result computes the game-end state per §4.6.
func (g *Game) Result() Result {
	if sq := g.pos.CommanderSquare(g.Turn()); !sq.IsValid() {
		return g.Turn().Opponent().winsResult()
	}
	if sq := g.pos.CommanderSquare(g.Turn().Opponent()); !sq.IsValid() {
		return g.Turn().winsResult()
	}
	if len(g.Moves(MoveFilter{LegalOnly: true})) == 0 {
		if g.InCheck() {
			return g.Turn().Opponent().winsResult()
		}
		g.drawFlag = DrawStalemate
		return ResultDraw
	}
	if g.pos.HalfMoveClock() >= 100 {
		g.drawFlag = DrawFiftyMove
		return ResultDraw
	}
	if g.repCount[g.repetitionKey()] >= 3 {
		g.drawFlag = DrawRepetition
		return ResultDraw
	}
	return ResultOngoing
}

// DrawReasonString names why Result() returned ResultDraw, or "" if
// the game isn't a draw.
func (g *Game) DrawReasonString() string {
	if g.Result() != ResultDraw {
		return ""
	}
	return g.drawFlag.String()
}

func (c Color) winsResult() Result {
	if c == Red {
		return ResultRedWins
	}
	return ResultBlueWins
}

// History returns every move applied so far, oldest first.
func (g *Game) History() []Move {
	out := make([]Move, len(g.hist))
	for i, e := range g.hist {
		out[i] = e.move
	}
	return out
}

// Put places piece at sq directly (bypassing move generation);
// intended for test and position-setup use, per §5's put/remove
// contract.
func (g *Game) Put(piece Piece, sq Square) error {
	if err := g.pos.Place(piece, sq); err != nil {
		return err
	}
	g.cache.invalidate()
	return nil
}

// Remove clears sq directly.
func (g *Game) Remove(sq Square) Piece {
	p := g.pos.Remove(sq)
	g.cache.invalidate()
	return p
}

