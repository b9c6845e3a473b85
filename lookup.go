package formula

import (
	"math"
	"sort"
	"strconv"
)

var lookupFns map[string]Function

func init() {
	fns := map[string]Function{}
	register(fns, "OFFSET", fnOffset)
	register(fns, "INDIRECT", fnIndirect)
	register(fns, "ROW", fnRow)
	register(fns, "COLUMN", fnColumn)
	register(fns, "ROWS", fnRows)
	register(fns, "COLUMNS", fnColumns)
	register(fns, "ADDRESS", fnAddress)
	register(fns, "TRANSPOSE", fnTranspose)
	register(fns, "SORT", fnSort)
	register(fns, "FILTER", fnFilter)
	register(fns, "UNIQUE", fnUnique)
	register(fns, "SEQUENCE", fnSequence)
	register(fns, "GROUPBY", fnGroupBy)
	register(fns, "PIVOTBY", fnPivotBy)
	register(fns, "TRIMRANGE", fnTrimRange)
	register(fns, "ANCHORARRAY", fnAnchorArray)
	register(fns, "LOOKUP", fnLookup)
	lookupFns = fns
}

// resolveRefText parses a reference-text argument (A1 notation, the
// representation this model uses in place of a first-class reference
// type per §3.1) relative to ctx's current cell.
func resolveRefText(ctx CalcContext, text string) (CellRef, bool) {
	var cur *CellPos
	if pos, ok := ctx.CurrentCell(); ok {
		cur = &pos
	}
	if ref, err := ParseA1(text); err == nil {
		return ref, true
	}
	if ref, err := ParseR1C1(text, cur); err == nil {
		return ref, true
	}
	return CellRef{}, false
}

// fnOffset implements OFFSET(ref, rows, cols[, height[, width]])
// (§4.5.5): shifts ref by rows/cols and reads the cell there; with a
// height or width above 1 it returns the shifted rectangle as an array,
// whose anchor is its top-left cell, since this value model has no
// first-class reference result type.
func fnOffset(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if !args[0].isText() {
		return newErrorArg(formulaErrorVALUE)
	}
	ref, ok := resolveRefText(ctx, args[0].Text)
	if !ok {
		return newErrorArg(formulaErrorREF)
	}
	rows := toNumber(args[1])
	cols := toNumber(args[2])
	if rows.isError() {
		return rows
	}
	if cols.isError() {
		return cols
	}
	height, width := 1, 1
	if len(args) > 3 {
		h := toNumber(args[3])
		if h.isError() {
			return h
		}
		height = int(math.Trunc(h.Number))
	}
	if len(args) > 4 {
		w := toNumber(args[4])
		if w.isError() {
			return w
		}
		width = int(math.Trunc(w.Number))
	}
	if height < 1 || width < 1 {
		return newErrorArg(formulaErrorREF)
	}
	newRow := ref.Row + int(math.Trunc(rows.Number))
	newCol := ref.Col + int(math.Trunc(cols.Number))
	maxRow, maxCol := ctx.Bounds()
	if newRow < 1 || newCol < 1 || newRow > maxRow || newCol > maxCol {
		return newErrorArg(formulaErrorREF)
	}
	if newRow+height-1 > maxRow || newCol+width-1 > maxCol {
		return newErrorArg(formulaErrorREF)
	}
	sheet := ref.Sheet
	if sheet == "" {
		sheet = ctx.CurrentSheet()
	}
	if height == 1 && width == 1 {
		return ctx.Read(sheet, newRow, newCol)
	}
	rowsOut := make([][]formulaArg, height)
	for r := 0; r < height; r++ {
		row := make([]formulaArg, width)
		for c := 0; c < width; c++ {
			row[c] = ctx.Read(sheet, newRow+r, newCol+c)
		}
		rowsOut[r] = row
	}
	return newArrayArg(rowsOut)
}

// fnIndirect implements INDIRECT(ref_text[, a1=true]) (§4.5.5).
func fnIndirect(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if !args[0].isText() {
		return newErrorArg(formulaErrorVALUE)
	}
	a1 := true
	if len(args) == 2 {
		b := toBoolean(args[1])
		if b.isError() {
			return b
		}
		a1 = b.Boolean
	}
	var cur *CellPos
	if pos, ok := ctx.CurrentCell(); ok {
		cur = &pos
	}
	var ref CellRef
	var err error
	if a1 {
		ref, err = ParseA1(args[0].Text)
	} else {
		ref, err = ParseR1C1(args[0].Text, cur)
	}
	if err != nil {
		return newErrorArg(formulaErrorREF)
	}
	sheet := ref.Sheet
	if sheet == "" {
		sheet = ctx.CurrentSheet()
	}
	return ctx.Read(sheet, ref.Row, ref.Col)
}

func fnRow(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 0, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if len(args) == 0 {
		pos, ok := ctx.CurrentCell()
		if !ok {
			return newErrorArg(formulaErrorVALUE)
		}
		return newNumberArg(float64(pos.Row))
	}
	if !args[0].isText() {
		return newErrorArg(formulaErrorVALUE)
	}
	ref, ok := resolveRefText(ctx, args[0].Text)
	if !ok {
		return newErrorArg(formulaErrorREF)
	}
	return newNumberArg(float64(ref.Row))
}

func fnColumn(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 0, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if len(args) == 0 {
		pos, ok := ctx.CurrentCell()
		if !ok {
			return newErrorArg(formulaErrorVALUE)
		}
		return newNumberArg(float64(pos.Col))
	}
	if !args[0].isText() {
		return newErrorArg(formulaErrorVALUE)
	}
	ref, ok := resolveRefText(ctx, args[0].Text)
	if !ok {
		return newErrorArg(formulaErrorREF)
	}
	return newNumberArg(float64(ref.Col))
}

func fnRows(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if args[0].Type == ArgArray {
		return newNumberArg(float64(args[0].Shape.Rows))
	}
	return newNumberArg(1)
}

func fnColumns(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if args[0].Type == ArgArray {
		return newNumberArg(float64(args[0].Shape.Cols))
	}
	return newNumberArg(1)
}

func fnAddress(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	row := toNumber(args[0])
	col := toNumber(args[1])
	if row.isError() {
		return row
	}
	if col.isError() {
		return col
	}
	absNum, a1 := 1, true
	sheet := ""
	if len(args) > 2 {
		n := toNumber(args[2])
		if n.isError() {
			return n
		}
		absNum = int(math.Trunc(n.Number))
	}
	if len(args) > 3 {
		b := toBoolean(args[3])
		if b.isError() {
			return b
		}
		a1 = b.Boolean
	}
	if len(args) > 4 {
		if !args[4].isText() {
			return newErrorArg(formulaErrorVALUE)
		}
		sheet = args[4].Text
	}
	return Address(int(math.Trunc(row.Number)), int(math.Trunc(col.Number)), absNum, a1, sheet)
}

// fnTranspose implements TRANSPOSE(array) (§4.5.5).
func fnTranspose(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	a := args[0]
	if a.Type != ArgArray {
		return newArrayArg([][]formulaArg{{a}})
	}
	rows, cols := a.Shape.Rows, a.Shape.Cols
	out := make([][]formulaArg, cols)
	for c := 0; c < cols; c++ {
		out[c] = make([]formulaArg, rows)
		for r := 0; r < rows; r++ {
			out[c][r] = a.Array[r][c]
		}
	}
	return newArrayArg(out)
}

func toRows(a formulaArg) [][]formulaArg {
	if a.Type == ArgArray {
		return a.Array
	}
	return [][]formulaArg{{a}}
}

// fnSort implements SORT(array[, sort_index=1[, sort_order=1[,
// by_col=false]]]) (§4.5.5): stable sort on the chosen row/column key.
func fnSort(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rows := toRows(args[0])
	sortIndex, order, byCol := 1, 1, false
	if len(args) > 1 {
		n := toNumber(args[1])
		if n.isError() {
			return n
		}
		sortIndex = int(math.Trunc(n.Number))
	}
	if len(args) > 2 {
		n := toNumber(args[2])
		if n.isError() {
			return n
		}
		order = int(math.Trunc(n.Number))
		if order != 1 && order != -1 {
			return newErrorArg(formulaErrorVALUE)
		}
	}
	if len(args) > 3 {
		b := toBoolean(args[3])
		if b.isError() {
			return b
		}
		byCol = b.Boolean
	}
	if byCol {
		transposed := fnTranspose(ctx, []formulaArg{args[0]})
		sorted := sortRows(toRows(transposed), sortIndex, order)
		return fnTranspose(ctx, []formulaArg{newArrayArg(sorted)})
	}
	return newArrayArg(sortRows(rows, sortIndex, order))
}

func sortRows(rows [][]formulaArg, keyIdx, order int) [][]formulaArg {
	out := append([][]formulaArg(nil), rows...)
	if keyIdx < 1 || len(out) == 0 || keyIdx > len(out[0]) {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i][keyIdx-1].anchor(), out[j][keyIdx-1].anchor()
		less := compareArgs(a, b) < 0
		if order == -1 {
			return !less && compareArgs(a, b) != 0
		}
		return less
	})
	return out
}

// compareArgs orders values by the §3.1 type hierarchy: numbers <
// text < booleans, each compared within its own type.
func compareArgs(a, b formulaArg) int {
	rank := func(t ArgType) int {
		switch t {
		case ArgNumber:
			return 0
		case ArgText:
			return 1
		case ArgBoolean:
			return 2
		default:
			return 3
		}
	}
	ra, rb := rank(a.Type), rank(b.Type)
	if ra != rb {
		return ra - rb
	}
	switch a.Type {
	case ArgNumber:
		switch {
		case a.Number < b.Number:
			return -1
		case a.Number > b.Number:
			return 1
		default:
			return 0
		}
	case ArgText:
		at, bt := caseFolder.String(a.Text), caseFolder.String(b.Text)
		switch {
		case at < bt:
			return -1
		case at > bt:
			return 1
		default:
			return 0
		}
	case ArgBoolean:
		if a.Boolean == b.Boolean {
			return 0
		}
		if !a.Boolean {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// fnFilter implements FILTER(array, include[, if_empty]) (§4.5.5),
// registered error-aware so an empty result can fall back to
// if_empty instead of propagating.
func fnFilter(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if e, found := firstError([]formulaArg{args[0]}); found {
		return e
	}
	rows := toRows(args[0])
	include := toRows(args[1])
	var kept [][]formulaArg
	for i, row := range rows {
		flag := newBooleanArg(false)
		if i < len(include) && len(include[i]) > 0 {
			flag = include[i][0]
		}
		if flag.isError() {
			return flag
		}
		if flag.truthy() {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		if len(args) == 3 {
			return args[2]
		}
		return newErrorArg(formulaErrorCALC)
	}
	return newArrayArg(kept)
}

// fnUnique implements UNIQUE(array[, by_col=false[, occurs_once=false]])
// (§4.5.5), registered error-aware since errors inside the array must
// still participate in row-identity comparisons rather than abort.
func fnUnique(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	byCol, occursOnce := false, false
	if len(args) > 1 {
		b := toBoolean(args[1])
		if b.isError() {
			return b
		}
		byCol = b.Boolean
	}
	if len(args) > 2 {
		b := toBoolean(args[2])
		if b.isError() {
			return b
		}
		occursOnce = b.Boolean
	}
	src := args[0]
	if byCol {
		src = fnTranspose(ctx, []formulaArg{src})
	}
	rows := toRows(src)
	keyOf := func(row []formulaArg) string {
		s := ""
		for _, c := range row {
			a := c.anchor()
			s += a.String() + "\x00" + strconv.Itoa(int(a.Type)) + "\x01"
		}
		return s
	}
	counts := map[string]int{}
	for _, row := range rows {
		counts[keyOf(row)]++
	}
	seen := map[string]bool{}
	var out [][]formulaArg
	for _, row := range rows {
		k := keyOf(row)
		if occursOnce {
			if counts[k] == 1 {
				out = append(out, row)
			}
			continue
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return newErrorArg(formulaErrorCALC)
	}
	result := newArrayArg(out)
	if byCol {
		result = fnTranspose(ctx, []formulaArg{result})
	}
	return result
}

// fnSequence implements SEQUENCE(rows[, cols=1[, start=1[, step=1]]]).
func fnSequence(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rowsN := toNumber(args[0])
	if rowsN.isError() {
		return rowsN
	}
	cols, start, step := 1.0, 1.0, 1.0
	if len(args) > 1 {
		n := toNumber(args[1])
		if n.isError() {
			return n
		}
		cols = n.Number
	}
	if len(args) > 2 {
		n := toNumber(args[2])
		if n.isError() {
			return n
		}
		start = n.Number
	}
	if len(args) > 3 {
		n := toNumber(args[3])
		if n.isError() {
			return n
		}
		step = n.Number
	}
	r, c := int(math.Trunc(rowsN.Number)), int(math.Trunc(cols))
	if r < 1 || c < 1 {
		return newErrorArg(formulaErrorNUM)
	}
	out := make([][]formulaArg, r)
	v := start
	for i := 0; i < r; i++ {
		row := make([]formulaArg, c)
		for j := 0; j < c; j++ {
			row[j] = newNumberArg(v)
			v += step
		}
		out[i] = row
	}
	return newArrayArg(out)
}

// fnGroupBy implements a simplified GROUPBY(group_array, agg_array,
// function) (§4.5.5, §12 supplemented feature): groups rows of
// group_array by value, applying function (1=SUM,2=AVERAGE,3=COUNT,
// 4=MAX,5=MIN; any other code is #VALUE!) to the matching agg_array
// values, emitted in first-seen key order.
func fnGroupBy(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	keys := flattenRange(args[0])
	vals := flattenRange(args[1])
	fn := toNumber(args[2])
	if fn.isError() {
		return fn
	}
	// GROUPBY's codes 1..5 onto aggregationFn's: sum 6, mean 1, count 2,
	// max 3, min 5.
	kind, ok := map[int]int{1: 6, 2: 1, 3: 2, 4: 3, 5: 5}[int(math.Trunc(fn.Number))]
	if !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	if len(keys) != len(vals) || len(keys) == 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	var order []string
	groups := map[string][]float64{}
	labels := map[string]formulaArg{}
	for i, k := range keys {
		ks := k.anchor().String()
		if _, ok := groups[ks]; !ok {
			order = append(order, ks)
			labels[ks] = k.anchor()
		}
		v := toNumber(vals[i])
		if v.isError() {
			return v
		}
		groups[ks] = append(groups[ks], v.Number)
	}
	out := make([][]formulaArg, len(order))
	for i, ks := range order {
		agg := aggregationFn(kind, groups[ks])
		out[i] = []formulaArg{labels[ks], newNumberArg(agg)}
	}
	return newArrayArg(out)
}

// fnPivotBy implements a simplified PIVOTBY(row_array, col_array,
// values_array, function) (§4.5.5, §12 supplemented feature): a
// two-key pivot with aggregationFn reduction, row keys down, column
// keys across, first-seen order on both axes.
func fnPivotBy(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rowKeys := flattenRange(args[0])
	colKeys := flattenRange(args[1])
	vals := flattenRange(args[2])
	fn := toNumber(args[3])
	if fn.isError() {
		return fn
	}
	n := len(rowKeys)
	if n != len(colKeys) || n != len(vals) || n == 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	var rowOrder, colOrder []string
	rowLabel := map[string]formulaArg{}
	colLabel := map[string]formulaArg{}
	seenRow := map[string]bool{}
	seenCol := map[string]bool{}
	cells := map[[2]string][]float64{}
	for i := 0; i < n; i++ {
		rk := rowKeys[i].anchor().String()
		ck := colKeys[i].anchor().String()
		if !seenRow[rk] {
			seenRow[rk] = true
			rowOrder = append(rowOrder, rk)
			rowLabel[rk] = rowKeys[i].anchor()
		}
		if !seenCol[ck] {
			seenCol[ck] = true
			colOrder = append(colOrder, ck)
			colLabel[ck] = colKeys[i].anchor()
		}
		v := toNumber(vals[i])
		if v.isError() {
			return v
		}
		key := [2]string{rk, ck}
		cells[key] = append(cells[key], v.Number)
	}
	out := make([][]formulaArg, len(rowOrder)+1)
	header := make([]formulaArg, len(colOrder)+1)
	header[0] = newTextArg("")
	for j, ck := range colOrder {
		header[j+1] = colLabel[ck]
	}
	out[0] = header
	for i, rk := range rowOrder {
		row := make([]formulaArg, len(colOrder)+1)
		row[0] = rowLabel[rk]
		for j, ck := range colOrder {
			if vs, ok := cells[[2]string{rk, ck}]; ok {
				row[j+1] = newNumberArg(aggregationFn(int(math.Trunc(fn.Number)), vs))
			} else {
				row[j+1] = newEmptyArg()
			}
		}
		out[i+1] = row
	}
	return newArrayArg(out)
}

// fnTrimRange implements TRIMRANGE(array) (§4.5.5, §12 supplemented
// feature): drops leading/trailing all-empty rows and columns.
func fnTrimRange(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rows := toRows(args[0])
	isEmptyRow := func(r []formulaArg) bool {
		for _, c := range r {
			if !c.anchor().isEmpty() {
				return false
			}
		}
		return true
	}
	top, bottom := 0, len(rows)
	for top < bottom && isEmptyRow(rows[top]) {
		top++
	}
	for bottom > top && isEmptyRow(rows[bottom-1]) {
		bottom--
	}
	trimmedRows := rows[top:bottom]
	if len(trimmedRows) == 0 {
		return newErrorArg(formulaErrorCALC)
	}
	cols := len(trimmedRows[0])
	isEmptyCol := func(c int) bool {
		for _, r := range trimmedRows {
			if !r[c].anchor().isEmpty() {
				return false
			}
		}
		return true
	}
	left, right := 0, cols
	for left < right && isEmptyCol(left) {
		left++
	}
	for right > left && isEmptyCol(right-1) {
		right--
	}
	out := make([][]formulaArg, len(trimmedRows))
	for i, r := range trimmedRows {
		out[i] = r[left:right]
	}
	if len(out) == 0 || len(out[0]) == 0 {
		return newErrorArg(formulaErrorCALC)
	}
	return newArrayArg(out)
}

// fnAnchorArray implements ANCHORARRAY(ref) (§4.5.5): with no native
// spilled-range tracking in this model, a reference argument already
// resolved by the caller to an array is passed through unchanged.
func fnAnchorArray(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return args[0]
}

// fnLookup implements legacy LOOKUP (§4.5.5): vector form when given
// (key, vector) or (key, vector, result_vector); binary search assumes
// ascending order per the spec's unsorted-is-unspecified clause.
func fnLookup(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	key := args[0].anchor()
	lookupVec := flattenRange(args[1])
	resultVec := lookupVec
	if len(args) == 3 {
		resultVec = flattenRange(args[2])
	}
	if len(resultVec) != len(lookupVec) {
		return newErrorArg(formulaErrorNA)
	}
	idx := -1
	lo, hi := 0, len(lookupVec)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		c := compareArgs(lookupVec[mid].anchor(), key)
		if c <= 0 {
			idx = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if idx < 0 {
		return newErrorArg(formulaErrorNA)
	}
	return resultVec[idx]
}
