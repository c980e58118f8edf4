package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// FEN returns the extended FEN for the current position, per §6.1:
// placement, active color, "-" "-" (castling/en-passant reserved),
// half-move clock, full-move number, and a DEPLOY suffix while a
// session is active.
func (g *Game) FEN() string {
	var b strings.Builder
	for rank := NumRanks - 1; rank >= 0; rank-- {
		g.writeRankSegment(&b, rank)
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	color := "r"
	if g.pos.SideToMove() == Blue {
		color = "b"
	}
	fmt.Fprintf(&b, " %s - - %d %d", color, g.pos.HalfMoveClock(), g.pos.FullMoveNumber())

	if g.deploy != nil && g.deploy.Phase == DeployActive {
		b.WriteString(" DEPLOY ")
		b.WriteString(g.deploy.Origin.String())
		b.WriteByte(':')
		b.WriteString(g.deploySuffixEntries())
	}
	return b.String()
}

func (g *Game) writeRankSegment(b *strings.Builder, rank int) {
	empties := 0
	flush := func() {
		if empties > 0 {
			fmt.Fprintf(b, "%d", empties)
			empties = 0
		}
	}
	for file := 0; file < NumFiles; file++ {
		sq := NewSquare(file, rank)
		piece := g.pos.PieceAt(sq)
		if piece.IsEmpty() {
			empties++
			continue
		}
		flush()
		if stack, ok := g.sm.StackAt(sq); ok {
			b.WriteByte('(')
			writeFENPiece(b, stack.Carrier)
			for _, c := range stack.Carried {
				writeFENPiece(b, c)
			}
			b.WriteByte(')')
		} else {
			writeFENPiece(b, piece)
		}
	}
	flush()
}

func writeFENPiece(b *strings.Builder, p Piece) {
	if p.Heroic() {
		b.WriteByte('+')
	}
	b.WriteByte(p.Letter())
}

// deploySuffixEntries renders each recorded sub-move as "<Letter><dest>",
// plus a trailing parenthesized snapshot of whatever remains at origin.
func (g *Game) deploySuffixEntries() string {
	var parts []string
	for _, a := range g.deploy.actions {
		parts = append(parts, fmt.Sprintf("%c%s", a.class.Letter(), a.dest.String()))
	}
	remaining := g.deploy.Remaining()
	if len(remaining) > 0 {
		var sb strings.Builder
		sb.WriteByte('(')
		for _, cls := range remaining {
			sb.WriteByte(cls.Letter())
		}
		sb.WriteByte(')')
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, ",")
}

// Load parses an extended FEN and replaces the game's entire state:
// position, stacks, deploy session, history, cache. Rejects malformed
// input per §6.1 (wrong rank count, columns not summing to 11,
// unmatched parens, a stray '+' not followed by a piece, or two
// Commanders of one color).
func (g *Game) Load(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 6 {
		return &ParseError{Kind: "fen", Token: fen, Err: ErrParse}
	}
	placement, active := fields[0], fields[1]
	halfMoveStr, fullMoveStr := fields[4], fields[5]

	ranks := strings.Split(placement, "/")
	if len(ranks) != NumRanks {
		return &ParseError{Kind: "fen", Token: fen, Err: fmt.Errorf("%w: expected %d ranks, got %d", ErrParse, NumRanks, len(ranks))}
	}

	pos := NewPosition()
	sm := NewStackManager()

	for i, rankStr := range ranks {
		rank := NumRanks - 1 - i
		if err := parseRankSegment(rankStr, rank, pos, sm); err != nil {
			return &ParseError{Kind: "fen", Token: fen, Err: err}
		}
	}

	var color Color
	switch active {
	case "r":
		color = Red
	case "b":
		color = Blue
	default:
		return &ParseError{Kind: "fen", Token: fen, Err: fmt.Errorf("%w: bad active color %q", ErrParse, active)}
	}
	pos.SetSideToMove(color)

	halfMove, err := strconv.Atoi(halfMoveStr)
	if err != nil || halfMove < 0 {
		return &ParseError{Kind: "fen", Token: fen, Err: fmt.Errorf("%w: bad halfmove clock %q", ErrParse, halfMoveStr)}
	}
	pos.SetHalfMoveClock(halfMove)

	fullMove, err := strconv.Atoi(fullMoveStr)
	if err != nil || fullMove < 1 {
		return &ParseError{Kind: "fen", Token: fen, Err: fmt.Errorf("%w: bad fullmove number %q", ErrParse, fullMoveStr)}
	}
	pos.SetFullMoveNumber(fullMove)

	g.pos = pos
	g.sm = sm
	g.ad = NewAirDefenseMap()
	g.ad.Recompute(g.pos, g.sm)
	g.deploy = nil
	g.hist = nil
	g.repCount = make(map[uint64]int)
	g.cache.invalidate()

	if len(fields) > 6 && fields[6] == "DEPLOY" {
		if len(fields) < 8 {
			return &ParseError{Kind: "fen", Token: fen, Err: fmt.Errorf("%w: truncated DEPLOY suffix", ErrParse)}
		}
		if err := g.loadDeploySuffix(fields[7]); err != nil {
			return &ParseError{Kind: "fen", Token: fen, Err: err}
		}
	}

	g.repCount[g.repetitionKey()]++
	return nil
}

func (g *Game) loadDeploySuffix(spec string) error {
	colonIdx := strings.IndexByte(spec, ':')
	if colonIdx < 0 {
		return fmt.Errorf("%w: malformed DEPLOY suffix %q", ErrParse, spec)
	}
	originStr, rest := spec[:colonIdx], spec[colonIdx+1:]
	origin, err := ParseSquare(originStr)
	if err != nil {
		return err
	}
	stack, hasStack := g.sm.StackAt(origin)
	var remaining []PieceClass
	if hasStack {
		remaining = append(remaining, stack.Carrier.Class())
		for _, c := range stack.Carried {
			remaining = append(remaining, c.Class())
		}
	} else if occ := g.pos.PieceAt(origin); !occ.IsEmpty() {
		remaining = append(remaining, occ.Class())
	}

	var departed []deployEntry
	entries := strings.Split(rest, ",")
	for _, entry := range entries {
		if entry == "" || entry[0] == '(' {
			continue // remaining-at-origin snapshot; reconstructed from board state itself
		}
		cls, ok := ClassFromLetter(entry[0])
		if !ok {
			return fmt.Errorf("%w: bad DEPLOY entry %q", ErrParse, entry)
		}
		dest, err := ParseSquare(entry[1:])
		if err != nil {
			return err
		}
		departed = append(departed, deployEntry{class: cls, dest: dest})
	}

	allClasses := append([]PieceClass{}, remaining...)
	for _, d := range departed {
		allClasses = append(allClasses, d.class)
	}

	turnColor := Red
	if len(remaining) > 0 {
		turnColor = g.pos.PieceAt(origin).Color()
	} else if len(departed) > 0 {
		turnColor = g.pos.PieceAt(departed[0].dest).Color()
	}

	session := newDeploySession(origin, turnColor, "", allClasses)
	for _, d := range departed {
		session.recordSubMove(d.class, d.dest)
	}
	g.deploy = session
	return nil
}

func parseRankSegment(segment string, rank int, pos *Position, sm *StackManager) error {
	file := 0
	i := 0
	for i < len(segment) {
		c := segment[i]
		switch {
		case c >= '0' && c <= '9':
			n := 0
			for i < len(segment) && segment[i] >= '0' && segment[i] <= '9' {
				n = n*10 + int(segment[i]-'0')
				i++
			}
			file += n
		case c == '(':
			end := strings.IndexByte(segment[i:], ')')
			if end < 0 {
				return fmt.Errorf("%w: unmatched '(' in rank segment %q", ErrParse, segment)
			}
			body := segment[i+1 : i+end]
			pieces, err := parseStackBody(body)
			if err != nil {
				return err
			}
			if len(pieces) == 0 {
				return fmt.Errorf("%w: empty stack in rank segment %q", ErrParse, segment)
			}
			sq := NewSquare(file, rank)
			if err := pos.Place(pieces[0], sq); err != nil {
				return err
			}
			if len(pieces) > 1 {
				if _, err := sm.CreateStack(pieces[0], pieces[1:], sq); err != nil {
					return err
				}
				pos.SetCarrier(sq, true)
			}
			file++
			i += end + 1
		case c == '+':
			if i+1 >= len(segment) {
				return fmt.Errorf("%w: stray '+' in rank segment %q", ErrParse, segment)
			}
			piece, consumed, err := parseFENPiece(segment[i:])
			if err != nil {
				return err
			}
			if err := pos.Place(piece, NewSquare(file, rank)); err != nil {
				return err
			}
			file++
			i += consumed
			continue
		default:
			piece, consumed, err := parseFENPiece(segment[i:])
			if err != nil {
				return err
			}
			if err := pos.Place(piece, NewSquare(file, rank)); err != nil {
				return err
			}
			file++
			i += consumed
			continue
		}
	}
	if file != NumFiles {
		return fmt.Errorf("%w: rank segment %q covers %d columns, want %d", ErrParse, segment, file, NumFiles)
	}
	return nil
}

// parseStackBody parses the inside of a "(...)" stack token: a
// sequence of (possibly heroic-prefixed) piece letters.
func parseStackBody(body string) ([]Piece, error) {
	var pieces []Piece
	i := 0
	for i < len(body) {
		piece, consumed, err := parseFENPiece(body[i:])
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
		i += consumed
	}
	return pieces, nil
}

// parseFENPiece parses one piece token ("+C" or "c") from the front of
// s, returning the piece and bytes consumed.
func parseFENPiece(s string) (Piece, int, error) {
	heroic := false
	i := 0
	if s[0] == '+' {
		heroic = true
		i++
		if i >= len(s) {
			return EmptyPiece, 0, fmt.Errorf("%w: stray '+' with no following piece", ErrParse)
		}
	}
	letter := s[i]
	cls, ok := ClassFromLetter(letter)
	if !ok {
		return EmptyPiece, 0, fmt.Errorf("%w: unrecognized piece letter %q", ErrParse, string(letter))
	}
	color := Red
	if letter >= 'a' && letter <= 'z' {
		color = Blue
	}
	return NewPiece(color, cls, heroic), i + 1, nil
}
