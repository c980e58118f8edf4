package engine

import (
	"fmt"
	"strings"
)

// sanSeparator returns the §6.2 separator token for mv's modality.
func sanSeparator(mv Move) string {
	switch {
	case mv.Flags.has(FlagSuicideCapture):
		return "@"
	case mv.Flags.has(FlagStayCapture):
		return "_"
	case mv.Flags.has(FlagCombination) && mv.IsCapture():
		return "&x"
	case mv.Flags.has(FlagCombination):
		return "&"
	case mv.Flags.has(FlagDeploy) && mv.IsCapture():
		return ">x"
	case mv.Flags.has(FlagDeploy):
		return ">"
	case mv.IsCapture():
		return "x"
	default:
		return ""
	}
}

// SAN renders mv per §6.2, disambiguating against the other currently
// legal moves sharing mv's class and destination.
func (g *Game) SAN(mv Move) string {
	var b strings.Builder
	if mv.Mover.Heroic() {
		b.WriteByte('+')
	}
	b.WriteByte(classLetterForColor(mv.Mover.Class(), mv.Mover.Color()))
	b.WriteString(g.disambiguator(mv))
	b.WriteString(sanSeparator(mv))
	b.WriteString(mv.To.String())
	if mv.Flags.has(FlagCombination) {
		fmt.Fprintf(&b, "(%s)", combinationLetters(mv))
	}
	return b.String()
}

func classLetterForColor(cls PieceClass, c Color) byte {
	l := cls.Letter()
	if c == Blue {
		l = l - 'A' + 'a'
	}
	return l
}

func combinationLetters(mv Move) string {
	classes := []PieceClass{mv.Mover.Class(), mv.CombinedWith.Class()}
	var b strings.Builder
	for _, c := range classes {
		b.WriteByte(c.Letter())
	}
	return b.String()
}

// disambiguator returns the minimal file/rank/square prefix needed to
// distinguish mv from other legal moves of the same class reaching the
// same destination.
func (g *Game) disambiguator(mv Move) string {
	var sameClassSameDest []Move
	for _, other := range g.Moves(MoveFilter{LegalOnly: true}) {
		if other.Mover.Class() == mv.Mover.Class() && other.To == mv.To && other.From != mv.From {
			sameClassSameDest = append(sameClassSameDest, other)
		}
	}
	if len(sameClassSameDest) == 0 {
		return ""
	}
	sameFile := true
	sameRank := true
	for _, other := range sameClassSameDest {
		if other.From.File() == mv.From.File() {
			sameFile = false
		}
		if other.From.Rank() == mv.From.Rank() {
			sameRank = false
		}
	}
	switch {
	case sameFile:
		return string(rune('a' + mv.From.File()))
	case sameRank:
		return fmt.Sprintf("%d", mv.From.Rank()+1)
	default:
		return mv.From.String()
	}
}

// sanToken is the parsed structure of a move token per §6.2, used to
// match user input against the current legal-move list rather than to
// fully round-trip every field.
type sanToken struct {
	heroic        bool
	class         PieceClass
	hasClass      bool
	disambigFile  int // -1 if absent
	disambigRank  int // -1 if absent
	disambigSq    Square
	hasDisambigSq bool
	sep           string
	dest          Square
}

// parseSANToken parses a move token's syntax (not its legality).
func parseSANToken(s string) (sanToken, error) {
	tok := sanToken{disambigFile: -1, disambigRank: -1}
	i := 0
	if i < len(s) && s[i] == '+' {
		tok.heroic = true
		i++
	}
	if i < len(s) {
		if cls, ok := ClassFromLetter(s[i]); ok {
			tok.class = cls
			tok.hasClass = true
			i++
		}
	}

	// Find the separator and destination by scanning from the end: the
	// destination is a trailing square token, optionally preceded by one
	// of the recognized separators and (for combinations) a
	// parenthesized suffix which we strip first.
	rest := s[i:]
	if idx := strings.IndexByte(rest, '('); idx >= 0 {
		rest = rest[:idx]
	}
	rest = strings.TrimRight(rest, "^#")

	sepPositions := []string{">x", "&x", ">", "&", "x", "_", "@"}
	sepFound := ""
	sepIdx := -1
	for _, sep := range sepPositions {
		if idx := strings.LastIndex(rest, sep); idx >= 0 {
			if idx > sepIdx {
				sepIdx = idx
				sepFound = sep
			}
		}
	}

	var disambig, destStr string
	if sepIdx >= 0 {
		disambig = rest[:sepIdx]
		destStr = rest[sepIdx+len(sepFound):]
	} else {
		// No explicit separator: the trailing 2-3 chars are the
		// destination square, anything before is disambiguation.
		destStr = rest
		disambig = ""
		for n := 3; n >= 2; n-- {
			if len(rest) < n {
				continue
			}
			if _, err := ParseSquare(rest[len(rest)-n:]); err == nil {
				destStr = rest[len(rest)-n:]
				disambig = rest[:len(rest)-n]
				break
			}
		}
	}
	tok.sep = sepFound

	dest, err := ParseSquare(destStr)
	if err != nil {
		return tok, &ParseError{Kind: "san", Token: s, Err: ErrParse}
	}
	tok.dest = dest

	switch len(disambig) {
	case 0:
	case 1:
		if disambig[0] >= 'a' && disambig[0] <= 'k' {
			tok.disambigFile = int(disambig[0] - 'a')
		} else if n, convErr := parseRank(disambig); convErr == nil {
			tok.disambigRank = n
		} else {
			return tok, &ParseError{Kind: "san", Token: s, Err: ErrParse}
		}
	default:
		if sq, err := ParseSquare(disambig); err == nil {
			tok.disambigSq = sq
			tok.hasDisambigSq = true
		} else if n, convErr := parseRank(disambig); convErr == nil {
			tok.disambigRank = n
		} else {
			return tok, &ParseError{Kind: "san", Token: s, Err: ErrParse}
		}
	}
	return tok, nil
}

func parseRank(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, ErrParse
		}
		n = n*10 + int(c-'0')
	}
	if n < 1 || n > NumRanks {
		return 0, ErrParse
	}
	return n - 1, nil
}

// sanMatches reports whether spec's parsed token identifies mv among
// the legal-move list: destination and (if given) class/disambiguator
// must agree; the separator, if given, must agree with mv's modality.
func sanMatches(spec string, mv Move) bool {
	tok, err := parseSANToken(spec)
	if err != nil {
		return false
	}
	if tok.dest != mv.To {
		return false
	}
	if tok.hasClass && tok.class != mv.Mover.Class() {
		return false
	}
	if tok.disambigFile >= 0 && tok.disambigFile != mv.From.File() {
		return false
	}
	if tok.disambigRank >= 0 && tok.disambigRank != mv.From.Rank() {
		return false
	}
	if tok.hasDisambigSq && tok.disambigSq != mv.From {
		return false
	}
	if tok.sep != "" && tok.sep != sanSeparator(mv) {
		return false
	}
	return true
}
