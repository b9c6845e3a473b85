package formula

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Worksheet bounds (§3.4, legacy Excel grid size).
const (
	MaxRow = 1048576
	MaxCol = 16384
)

// CellPos is a resolved (row, col) pair, 1-based.
type CellPos struct {
	Row int
	Col int
}

// CellRef is a parsed, normalized cell reference (§4.2): row/col are
// 1-based; RowAbs/ColAbs record whether each axis carried a `$`;
// Sheet is "" when no sheet was qualified.
type CellRef struct {
	Row    int
	Col    int
	RowAbs bool
	ColAbs bool
	Sheet  string
}

var a1Pattern = regexp.MustCompile(`^(?:('(?:[^']|'')+'|[A-Za-z_][A-Za-z0-9_.]*)!)?(\$?)([A-Za-z]{1,3})(\$?)([1-9][0-9]*)$`)

// ColumnNameToNumber converts a base-26 column letter sequence ('A' = 1)
// to its 1-based column number.
func ColumnNameToNumber(name string) (int, error) {
	name = strings.ToUpper(name)
	col := 0
	for _, r := range name {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column name %q", name)
		}
		col = col*26 + int(r-'A'+1)
	}
	if col < 1 || col > MaxCol {
		return 0, fmt.Errorf("column %q out of range", name)
	}
	return col, nil
}

// ColumnNumberToName is the inverse of ColumnNameToNumber.
func ColumnNumberToName(col int) (string, error) {
	if col < 1 || col > MaxCol {
		return "", fmt.Errorf("column %d out of range", col)
	}
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b), nil
}

// unquoteSheet strips a single-quoted sheet name and un-doubles
// embedded single quotes (§4.2).
func unquoteSheet(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
		s = strings.ReplaceAll(s, "''", "'")
	}
	return s
}

// ParseA1 parses an A1-notation reference, optionally sheet-qualified.
// Malformed syntax is reported as a #REF! error arg by the caller (this
// function returns a Go error so callers can choose the Excel error).
func ParseA1(s string) (CellRef, error) {
	m := a1Pattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return CellRef{}, fmt.Errorf("malformed A1 reference %q", s)
	}
	col, err := ColumnNameToNumber(m[3])
	if err != nil {
		return CellRef{}, err
	}
	row, err := strconv.Atoi(m[5])
	if err != nil {
		return CellRef{}, err
	}
	if row < 1 || row > MaxRow {
		return CellRef{}, fmt.Errorf("row %d out of range", row)
	}
	ref := CellRef{
		Row:    row,
		Col:    col,
		RowAbs: m[4] == "$",
		ColAbs: m[2] == "$",
	}
	if m[1] != "" {
		ref.Sheet = unquoteSheet(strings.TrimSuffix(m[1], "!"))
	}
	return ref, nil
}

var r1c1Pattern = regexp.MustCompile(`^(?:('(?:[^']|'')+'|[A-Za-z_][A-Za-z0-9_.]*)!)?R(\[-?[0-9]+\]|-?[0-9]+)?C(\[-?[0-9]+\]|-?[0-9]+)?$`)

// ParseR1C1 parses an R1C1-notation reference. Bracketed offsets are
// relative to current (which may be nil when the reference has no
// relative component); a relative component with current == nil is an
// error, matching §4.2's "#REF! from missing current cell" rule.
func ParseR1C1(s string, current *CellPos) (CellRef, error) {
	m := r1c1Pattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return CellRef{}, fmt.Errorf("malformed R1C1 reference %q", s)
	}
	ref := CellRef{RowAbs: true, ColAbs: true}
	if m[1] != "" {
		ref.Sheet = unquoteSheet(strings.TrimSuffix(m[1], "!"))
	}
	row, rowAbs, err := resolveR1C1Axis(m[2], current != nil, currentRow(current))
	if err != nil {
		return CellRef{}, err
	}
	col, colAbs, err := resolveR1C1Axis(m[3], current != nil, currentCol(current))
	if err != nil {
		return CellRef{}, err
	}
	ref.Row, ref.RowAbs = row, rowAbs
	ref.Col, ref.ColAbs = col, colAbs
	if ref.Row < 1 || ref.Row > MaxRow || ref.Col < 1 || ref.Col > MaxCol {
		return CellRef{}, fmt.Errorf("R1C1 reference out of range")
	}
	return ref, nil
}

func currentRow(c *CellPos) int {
	if c == nil {
		return 0
	}
	return c.Row
}

func currentCol(c *CellPos) int {
	if c == nil {
		return 0
	}
	return c.Col
}

// resolveR1C1Axis resolves one axis ("R..." or "C...") of an R1C1
// token: "" means "same as current" (relative, offset 0); a bracketed
// value is a relative offset from current; an unbracketed value is an
// absolute 1-based index.
func resolveR1C1Axis(token string, haveCurrent bool, current int) (value int, abs bool, err error) {
	if token == "" {
		if !haveCurrent {
			return 0, false, fmt.Errorf("relative R1C1 axis requires a current cell")
		}
		return current, false, nil
	}
	if strings.HasPrefix(token, "[") {
		offset, convErr := strconv.Atoi(strings.Trim(token, "[]"))
		if convErr != nil {
			return 0, false, convErr
		}
		if !haveCurrent {
			return 0, false, fmt.Errorf("relative R1C1 axis requires a current cell")
		}
		return current + offset, false, nil
	}
	abs1, convErr := strconv.Atoi(token)
	if convErr != nil {
		return 0, false, convErr
	}
	return abs1, true, nil
}

// Address implements ADDRESS(row, col, abs_num, a1, sheet) (§4.2).
func Address(row, col, absNum int, a1 bool, sheet string) formulaArg {
	if row < 1 || row > MaxRow || col < 1 || col > MaxCol {
		return newErrorArg(formulaErrorVALUE)
	}
	if absNum < 1 || absNum > 4 {
		return newErrorArg(formulaErrorVALUE)
	}
	colName, err := ColumnNumberToName(col)
	if err != nil {
		return newErrorArg(formulaErrorVALUE)
	}
	var body string
	if a1 {
		colAbs, rowAbs := "", ""
		switch absNum {
		case 1:
			colAbs, rowAbs = "$", "$"
		case 2:
			rowAbs = "$"
		case 3:
			colAbs = "$"
		}
		body = fmt.Sprintf("%s%s%s%d", colAbs, colName, rowAbs, row)
	} else {
		colPart := fmt.Sprintf("C[%d]", col)
		rowPart := fmt.Sprintf("R[%d]", row)
		if absNum == 1 || absNum == 2 {
			rowPart = fmt.Sprintf("R%d", row)
		}
		if absNum == 1 || absNum == 3 {
			colPart = fmt.Sprintf("C%d", col)
		}
		body = rowPart + colPart
	}
	if sheet == "" {
		return newTextArg(body)
	}
	return newTextArg(quoteSheetIfNeeded(sheet) + "!" + body)
}

var identSheetPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// quoteSheetIfNeeded single-quotes sheet names containing spaces or
// other non-identifier characters, doubling embedded single quotes.
func quoteSheetIfNeeded(sheet string) string {
	if identSheetPattern.MatchString(sheet) {
		return sheet
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}
