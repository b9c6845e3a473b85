package formula

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var textFns map[string]Function

var (
	upperCaser  = cases.Upper(language.Und)
	lowerCaser  = cases.Lower(language.Und)
	properCaser = cases.Title(language.Und)
)

func init() {
	fns := map[string]Function{}
	register(fns, "CONCATENATE", fnConcatenate)
	register(fns, "CONCAT", fnConcatenate)
	register(fns, "LEFT", fnLeft)
	register(fns, "RIGHT", fnRight)
	register(fns, "MID", fnMid)
	register(fns, "LEN", fnLen)
	register(fns, "TRIM", fnTrim)
	register(fns, "UPPER", fnUpper)
	register(fns, "LOWER", fnLower)
	register(fns, "PROPER", fnProper)
	register(fns, "FIND", fnFind)
	register(fns, "SEARCH", fnSearch)
	register(fns, "SUBSTITUTE", fnSubstitute)
	register(fns, "REPLACE", fnReplace)
	register(fns, "REPT", fnRept)
	register(fns, "TEXT", fnText)
	register(fns, "VALUE", fnValue)
	register(fns, "T", fnT)
	register(fns, "CHAR", fnChar)
	register(fns, "CODE", fnCode)
	register(fns, "LENB", fnLenB)
	register(fns, "LEFTB", fnLeftB)
	register(fns, "RIGHTB", fnRightB)
	register(fns, "MIDB", fnMidB)
	register(fns, "FINDB", fnFindB)
	register(fns, "SEARCHB", fnSearchB)
	register(fns, "REPLACEB", fnReplaceB)
	register(fns, "TEXTBEFORE", fnTextBefore)
	register(fns, "TEXTAFTER", fnTextAfter)
	register(fns, "TEXTSPLIT", fnTextSplit)
	register(fns, "VALUETOTEXT", fnValueToText)
	register(fns, "ARRAYTOTEXT", fnArrayToText)
	textFns = fns
}

func fnConcatenate(ctx CalcContext, args []formulaArg) formulaArg {
	flat := flattenArgs(args)
	var sb strings.Builder
	for _, a := range flat {
		t := toText(a)
		if t.isError() {
			return t
		}
		sb.WriteString(t.Text)
	}
	return newTextArg(sb.String())
}

func fnLeft(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	n := 1
	if len(args) == 2 {
		nv := toNumber(args[1])
		if nv.isError() {
			return nv
		}
		n = int(nv.Number)
	}
	r := []rune(t.Text)
	if n < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	if n > len(r) {
		n = len(r)
	}
	return newTextArg(string(r[:n]))
}

func fnRight(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	n := 1
	if len(args) == 2 {
		nv := toNumber(args[1])
		if nv.isError() {
			return nv
		}
		n = int(nv.Number)
	}
	r := []rune(t.Text)
	if n < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	if n > len(r) {
		n = len(r)
	}
	return newTextArg(string(r[len(r)-n:]))
}

func fnMid(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	start := toNumber(args[1])
	if start.isError() {
		return start
	}
	count := toNumber(args[2])
	if count.isError() {
		return count
	}
	if start.Number < 1 || count.Number < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	r := []rune(t.Text)
	s := int(start.Number) - 1
	if s >= len(r) {
		return newTextArg("")
	}
	e := s + int(count.Number)
	if e > len(r) {
		e = len(r)
	}
	return newTextArg(string(r[s:e]))
}

func fnLen(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	return newNumberArg(float64(utf8.RuneCountInString(t.Text)))
}

func fnTrim(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	fields := strings.Fields(t.Text)
	return newTextArg(strings.Join(fields, " "))
}

func fnUpper(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	return newTextArg(upperCaser.String(t.Text))
}

func fnLower(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	return newTextArg(lowerCaser.String(t.Text))
}

func fnProper(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	return newTextArg(properCaser.String(t.Text))
}

// fnFind implements FIND(find_text, within_text[, start=1]) (§4.5.6):
// case-sensitive, no wildcards.
func fnFind(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	find := toText(args[0])
	if find.isError() {
		return find
	}
	within := toText(args[1])
	if within.isError() {
		return within
	}
	start := 1
	if len(args) == 3 {
		s := toNumber(args[2])
		if s.isError() {
			return s
		}
		start = int(s.Number)
	}
	r := []rune(within.Text)
	if start < 1 || start > len(r)+1 {
		return newErrorArg(formulaErrorVALUE)
	}
	idx := strings.Index(string(r[start-1:]), find.Text)
	if idx < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	return newNumberArg(float64(start + utf8.RuneCountInString(string(r[start-1:])[:idx])))
}

// fnSearch implements SEARCH(find_text, within_text[, start=1])
// (§4.5.6): case-insensitive, '*'/'?' wildcards via criteria.go.
func fnSearch(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	find := toText(args[0])
	if find.isError() {
		return find
	}
	within := toText(args[1])
	if within.isError() {
		return within
	}
	start := 1
	if len(args) == 3 {
		s := toNumber(args[2])
		if s.isError() {
			return s
		}
		start = int(s.Number)
	}
	r := []rune(within.Text)
	if start < 1 || start > len(r)+1 {
		return newErrorArg(formulaErrorVALUE)
	}
	re, err := regexp.Compile(wildcardToRegexp(find.Text))
	if err != nil {
		return newErrorArg(formulaErrorVALUE)
	}
	folded := caseFolder.String(string(r[start-1:]))
	loc := re.FindStringIndex(folded)
	if loc == nil {
		return newErrorArg(formulaErrorVALUE)
	}
	runeIdx := utf8.RuneCountInString(folded[:loc[0]])
	return newNumberArg(float64(start + runeIdx))
}

func fnSubstitute(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	text := toText(args[0])
	if text.isError() {
		return text
	}
	oldT := toText(args[1])
	if oldT.isError() {
		return oldT
	}
	newT := toText(args[2])
	if newT.isError() {
		return newT
	}
	if oldT.Text == "" {
		return text
	}
	if len(args) == 3 {
		return newTextArg(strings.ReplaceAll(text.Text, oldT.Text, newT.Text))
	}
	instance := toNumber(args[3])
	if instance.isError() {
		return instance
	}
	n := int(instance.Number)
	if n < 1 {
		return newErrorArg(formulaErrorVALUE)
	}
	count := 0
	var sb strings.Builder
	rest := text.Text
	for {
		idx := strings.Index(rest, oldT.Text)
		if idx < 0 {
			sb.WriteString(rest)
			break
		}
		count++
		if count == n {
			sb.WriteString(rest[:idx])
			sb.WriteString(newT.Text)
			sb.WriteString(rest[idx+len(oldT.Text):])
			rest = ""
			break
		}
		sb.WriteString(rest[:idx+len(oldT.Text)])
		rest = rest[idx+len(oldT.Text):]
	}
	sb.WriteString(rest)
	return newTextArg(sb.String())
}

func fnReplace(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	old := toText(args[0])
	if old.isError() {
		return old
	}
	start := toNumber(args[1])
	if start.isError() {
		return start
	}
	length := toNumber(args[2])
	if length.isError() {
		return length
	}
	newT := toText(args[3])
	if newT.isError() {
		return newT
	}
	if start.Number < 1 || length.Number < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	r := []rune(old.Text)
	s := int(start.Number) - 1
	if s > len(r) {
		s = len(r)
	}
	e := s + int(length.Number)
	if e > len(r) {
		e = len(r)
	}
	return newTextArg(string(r[:s]) + newT.Text + string(r[e:]))
}

func fnRept(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	n := toNumber(args[1])
	if n.isError() {
		return n
	}
	if n.Number < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	return newTextArg(strings.Repeat(t.Text, int(n.Number)))
}

func fnText(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	fmtText := toText(args[1])
	if fmtText.isError() {
		return fmtText
	}
	return FormatValue(args[0], fmtText.Text, ctx.Date1904())
}

func fnValue(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return toNumber(args[0])
}

// fnT implements T(v) (§4.5.6): text passes through, everything else
// becomes an empty string, errors propagate.
func fnT(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	a := args[0].anchor()
	if a.isError() {
		return a
	}
	if a.isText() {
		return a
	}
	return newTextArg("")
}

func fnChar(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	n := toNumber(args[0])
	if n.isError() {
		return n
	}
	code := int(n.Number)
	if code < 1 || code > 255 {
		return newErrorArg(formulaErrorVALUE)
	}
	return newTextArg(string(rune(code)))
}

func fnCode(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	if t.Text == "" {
		return newErrorArg(formulaErrorVALUE)
	}
	r, _ := utf8.DecodeRuneInString(t.Text)
	return newNumberArg(float64(r))
}

// --- byte-text family (§4.5.6): UTF-8 byte indices, 1-based ---

func fnLenB(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	return newNumberArg(float64(len(t.Text)))
}

func fnLeftB(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	n := 1
	if len(args) == 2 {
		nv := toNumber(args[1])
		if nv.isError() {
			return nv
		}
		n = int(nv.Number)
	}
	if n < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	if n > len(t.Text) {
		n = len(t.Text)
	}
	return newTextArg(t.Text[:n])
}

func fnRightB(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	n := 1
	if len(args) == 2 {
		nv := toNumber(args[1])
		if nv.isError() {
			return nv
		}
		n = int(nv.Number)
	}
	if n < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	if n > len(t.Text) {
		n = len(t.Text)
	}
	return newTextArg(t.Text[len(t.Text)-n:])
}

func fnMidB(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	t := toText(args[0])
	if t.isError() {
		return t
	}
	start := toNumber(args[1])
	if start.isError() {
		return start
	}
	count := toNumber(args[2])
	if count.isError() {
		return count
	}
	if start.Number < 1 || count.Number < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	s := int(start.Number) - 1
	if s >= len(t.Text) {
		return newTextArg("")
	}
	e := s + int(count.Number)
	if e > len(t.Text) {
		e = len(t.Text)
	}
	return newTextArg(t.Text[s:e])
}

func fnFindB(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	find := toText(args[0])
	if find.isError() {
		return find
	}
	within := toText(args[1])
	if within.isError() {
		return within
	}
	start := 1
	if len(args) == 3 {
		s := toNumber(args[2])
		if s.isError() {
			return s
		}
		start = int(s.Number)
	}
	if start < 1 || start > len(within.Text)+1 {
		return newErrorArg(formulaErrorVALUE)
	}
	idx := strings.Index(within.Text[start-1:], find.Text)
	if idx < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	return newNumberArg(float64(start + idx))
}

func fnSearchB(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	find := toText(args[0])
	if find.isError() {
		return find
	}
	within := toText(args[1])
	if within.isError() {
		return within
	}
	start := 1
	if len(args) == 3 {
		s := toNumber(args[2])
		if s.isError() {
			return s
		}
		start = int(s.Number)
	}
	if start < 1 || start > len(within.Text)+1 {
		return newErrorArg(formulaErrorVALUE)
	}
	folded := caseFolder.String(within.Text[start-1:])
	idx := strings.Index(folded, caseFolder.String(find.Text))
	if idx < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	return newNumberArg(float64(start + idx))
}

func fnReplaceB(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	old := toText(args[0])
	if old.isError() {
		return old
	}
	start := toNumber(args[1])
	if start.isError() {
		return start
	}
	length := toNumber(args[2])
	if length.isError() {
		return length
	}
	newT := toText(args[3])
	if newT.isError() {
		return newT
	}
	if start.Number < 1 || length.Number < 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	s := int(start.Number) - 1
	if s > len(old.Text) {
		s = len(old.Text)
	}
	e := s + int(length.Number)
	if e > len(old.Text) {
		e = len(old.Text)
	}
	return newTextArg(old.Text[:s] + newT.Text + old.Text[e:])
}

// --- modern text functions (§4.5.6) ---

func textSplitBefore(text, delim string, instance int, matchMode, matchEnd bool) (int, bool) {
	occurrences := []int{}
	haystack := text
	needle := delim
	if matchMode {
		haystack = caseFolder.String(text)
		needle = caseFolder.String(delim)
	}
	pos := 0
	for {
		idx := strings.Index(haystack[pos:], needle)
		if idx < 0 {
			break
		}
		occurrences = append(occurrences, pos+idx)
		pos = pos + idx + 1
		if pos > len(haystack) {
			break
		}
	}
	if instance < 0 {
		idx := len(occurrences) + instance
		if idx < 0 || idx >= len(occurrences) {
			return 0, false
		}
		return occurrences[idx], true
	}
	if instance < 1 || instance > len(occurrences) {
		return 0, false
	}
	return occurrences[instance-1], true
}

func fnTextBefore(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 6); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	text := toText(args[0])
	if text.isError() {
		return text
	}
	delim := toText(args[1])
	if delim.isError() {
		return delim
	}
	instance := 1
	if len(args) > 2 {
		n := toNumber(args[2])
		if n.isError() {
			return n
		}
		instance = int(n.Number)
	}
	matchMode := false
	if len(args) > 3 {
		b := toBoolean(args[3])
		if b.isError() {
			return b
		}
		matchMode = b.Boolean
	}
	idx, ok := textSplitBefore(text.Text, delim.Text, instance, matchMode, false)
	if !ok {
		if len(args) > 5 {
			return args[5]
		}
		return newErrorArg(formulaErrorNA)
	}
	return newTextArg(text.Text[:idx])
}

func fnTextAfter(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 6); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	text := toText(args[0])
	if text.isError() {
		return text
	}
	delim := toText(args[1])
	if delim.isError() {
		return delim
	}
	instance := 1
	if len(args) > 2 {
		n := toNumber(args[2])
		if n.isError() {
			return n
		}
		instance = int(n.Number)
	}
	matchMode := false
	if len(args) > 3 {
		b := toBoolean(args[3])
		if b.isError() {
			return b
		}
		matchMode = b.Boolean
	}
	idx, ok := textSplitBefore(text.Text, delim.Text, instance, matchMode, false)
	if !ok {
		if len(args) > 5 {
			return args[5]
		}
		return newErrorArg(formulaErrorNA)
	}
	return newTextArg(text.Text[idx+len(delim.Text):])
}

// fnTextSplit implements TEXTSPLIT(text, col_delim[, row_delim]) per
// the Open Question 4 decision (full rectangular array result).
func fnTextSplit(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	text := toText(args[0])
	if text.isError() {
		return text
	}
	colDelim := toText(args[1])
	if colDelim.isError() {
		return colDelim
	}
	var rowDelim string
	if len(args) == 3 {
		rd := toText(args[2])
		if rd.isError() {
			return rd
		}
		rowDelim = rd.Text
	}
	var lines []string
	if rowDelim != "" {
		lines = strings.Split(text.Text, rowDelim)
	} else {
		lines = []string{text.Text}
	}
	maxCols := 0
	rows := make([][]string, len(lines))
	for i, line := range lines {
		cells := strings.Split(line, colDelim.Text)
		rows[i] = cells
		if len(cells) > maxCols {
			maxCols = len(cells)
		}
	}
	out := make([][]formulaArg, len(rows))
	for i, cells := range rows {
		row := make([]formulaArg, maxCols)
		for j := 0; j < maxCols; j++ {
			if j < len(cells) {
				row[j] = newTextArg(cells[j])
			} else {
				row[j] = newTextArg("")
			}
		}
		out[i] = row
	}
	return newArrayArg(out)
}

// fnValueToText implements VALUETOTEXT(v[, format=0]) (§4.5.6):
// format 1 quotes strings and prefixes error kinds with nothing extra
// (the kind literal already communicates the error).
func fnValueToText(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := args[0].anchor()
	strict := false
	if len(args) == 2 {
		n := toNumber(args[1])
		if n.isError() {
			return n
		}
		strict = n.Number == 1
	}
	if v.isError() {
		return newTextArg(v.Err)
	}
	if strict && v.isText() {
		return newTextArg("\"" + v.Text + "\"")
	}
	return newTextArg(v.String())
}

// fnArrayToText implements ARRAYTOTEXT(array[, format=0]): row-major
// comma/semicolon-joined rendering with an outer brace per format 1.
func fnArrayToText(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	strict := false
	if len(args) == 2 {
		n := toNumber(args[1])
		if n.isError() {
			return n
		}
		strict = n.Number == 1
	}
	rows := toRows(args[0])
	var rowStrs []string
	for _, row := range rows {
		var cells []string
		for _, c := range row {
			a := c.anchor()
			if strict && a.isText() {
				cells = append(cells, "\""+a.Text+"\"")
			} else if a.isError() {
				cells = append(cells, a.Err)
			} else {
				cells = append(cells, a.String())
			}
		}
		rowStrs = append(rowStrs, strings.Join(cells, ","))
	}
	joined := strings.Join(rowStrs, ";")
	if strict {
		return newTextArg("{" + joined + "}")
	}
	return newTextArg(joined)
}
