package engine

// actionKind enumerates the atomic action log entries from which every
// applied move (and its exact inverse) is built, per §4.6.
type actionKind int

const (
	actionRemove actionKind = iota
	actionPlace
	actionMarkHeroic
	actionClearHeroic
	actionSetCarrier
	actionClearCarrier
	actionSideToMove
	actionHalfMoveClock
	actionFullMoveNumber
	actionDeploySessionBefore
	actionStackCreate
	actionStackDissolve
	actionStackAdd
	actionStackRemove
)

// action is one entry in the log a committed move (or deploy sub-move)
// produces. Only the fields relevant to Kind are populated.
type action struct {
	kind actionKind

	sq    Square
	piece Piece // for actionPlace: piece placed; for actionRemove: piece that was removed (recorded for undo)

	prevColor Color
	prevInt   int

	prevSession *DeploySession

	stackCarrier Piece      // actionStackCreate/actionStackDissolve: the stack's carrier
	stackCarried []Piece    // actionStackCreate/actionStackDissolve: the stack's carried set
	stackClass   PieceClass // actionStackAdd/actionStackRemove: the class added/removed
	stackPiece   Piece      // actionStackAdd/actionStackRemove: the piece added/removed
}

// actionLog accumulates actions for one applied move (or one deploy
// sub-move) so it can be undone exactly without re-deriving state from
// a serialized snapshot.
type actionLog struct {
	actions []action
}

func (l *actionLog) reset() { l.actions = l.actions[:0] }

// apply* helpers both mutate state and append the action needed to
// invert that mutation. execute() makes every board and stack change
// of a move through them.

func (l *actionLog) applyRemove(pos *Position, sq Square) Piece {
	piece := pos.Remove(sq)
	l.actions = append(l.actions, action{kind: actionRemove, sq: sq, piece: piece})
	return piece
}

func (l *actionLog) applyPlace(pos *Position, piece Piece, sq Square) error {
	if err := pos.Place(piece, sq); err != nil {
		return err
	}
	l.actions = append(l.actions, action{kind: actionPlace, sq: sq, piece: piece})
	return nil
}

func (l *actionLog) applyMarkHeroic(pos *Position, sq Square) {
	if pos.PieceAt(sq).Heroic() {
		return
	}
	pos.SetHeroic(sq, true)
	l.actions = append(l.actions, action{kind: actionMarkHeroic, sq: sq})
}

func (l *actionLog) applyClearHeroic(pos *Position, sq Square) {
	if !pos.PieceAt(sq).Heroic() {
		return
	}
	pos.SetHeroic(sq, false)
	l.actions = append(l.actions, action{kind: actionClearHeroic, sq: sq})
}

func (l *actionLog) applySetCarrier(pos *Position, sq Square) {
	pos.SetCarrier(sq, true)
	l.actions = append(l.actions, action{kind: actionSetCarrier, sq: sq})
}

func (l *actionLog) applyClearCarrier(pos *Position, sq Square) {
	pos.SetCarrier(sq, false)
	l.actions = append(l.actions, action{kind: actionClearCarrier, sq: sq})
}

func (l *actionLog) applySideToMove(pos *Position, c Color) {
	prev := pos.SideToMove()
	if prev == c {
		return
	}
	pos.SetSideToMove(c)
	l.actions = append(l.actions, action{kind: actionSideToMove, prevColor: prev})
}

func (l *actionLog) applyHalfMoveClock(pos *Position, n int) {
	prev := pos.HalfMoveClock()
	pos.SetHalfMoveClock(n)
	l.actions = append(l.actions, action{kind: actionHalfMoveClock, prevInt: prev})
}

func (l *actionLog) applyFullMoveNumber(pos *Position, n int) {
	prev := pos.FullMoveNumber()
	pos.SetFullMoveNumber(n)
	l.actions = append(l.actions, action{kind: actionFullMoveNumber, prevInt: prev})
}

func (l *actionLog) applyCreateStack(sm *StackManager, carrier Piece, carried []Piece, sq Square) (*Stack, error) {
	s, err := sm.CreateStack(carrier, carried, sq)
	if err != nil {
		return nil, err
	}
	l.actions = append(l.actions, action{kind: actionStackCreate, sq: sq, stackCarrier: carrier, stackCarried: append([]Piece{}, carried...)})
	return s, nil
}

func (l *actionLog) applyDissolveStack(sm *StackManager, sq Square) (*Stack, bool) {
	s, ok := sm.Dissolve(sq)
	if !ok {
		return nil, false
	}
	l.actions = append(l.actions, action{kind: actionStackDissolve, sq: sq, stackCarrier: s.Carrier, stackCarried: append([]Piece{}, s.Carried...)})
	return s, true
}

func (l *actionLog) applyAddToStack(sm *StackManager, sq Square, piece Piece) error {
	if err := sm.AddToStack(sq, piece); err != nil {
		return err
	}
	l.actions = append(l.actions, action{kind: actionStackAdd, sq: sq, stackClass: piece.Class(), stackPiece: piece})
	return nil
}

func (l *actionLog) applyRemoveFromStack(sm *StackManager, sq Square, cls PieceClass) (Piece, bool) {
	piece, ok := sm.RemoveFromStack(sq, cls)
	if !ok {
		return EmptyPiece, false
	}
	l.actions = append(l.actions, action{kind: actionStackRemove, sq: sq, stackClass: cls, stackPiece: piece})
	return piece, true
}

// undo runs every recorded action's inverse in reverse order, restoring
// pos and sm to their pre-apply state without ever serializing the
// whole board, per §4.6.
func (l *actionLog) undo(pos *Position, sm *StackManager) {
	for i := len(l.actions) - 1; i >= 0; i-- {
		a := l.actions[i]
		switch a.kind {
		case actionRemove:
			if !a.piece.IsEmpty() {
				_ = pos.Place(a.piece, a.sq)
			}
		case actionPlace:
			pos.Remove(a.sq)
		case actionMarkHeroic:
			pos.SetHeroic(a.sq, false)
		case actionClearHeroic:
			pos.SetHeroic(a.sq, true)
		case actionSetCarrier:
			pos.SetCarrier(a.sq, false)
		case actionClearCarrier:
			pos.SetCarrier(a.sq, true)
		case actionSideToMove:
			pos.SetSideToMove(a.prevColor)
		case actionHalfMoveClock:
			pos.SetHalfMoveClock(a.prevInt)
		case actionFullMoveNumber:
			pos.SetFullMoveNumber(a.prevInt)
		case actionStackCreate:
			sm.Dissolve(a.sq)
		case actionStackDissolve:
			_, _ = sm.CreateStack(a.stackCarrier, a.stackCarried, a.sq)
		case actionStackAdd:
			sm.RemoveFromStack(a.sq, a.stackClass)
		case actionStackRemove:
			_ = sm.AddToStack(a.sq, a.stackPiece)
		}
	}
	l.reset()
}
