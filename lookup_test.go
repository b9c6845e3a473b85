package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFnOffsetSingleCell(t *testing.T) {
	ctx := NewMapContext()
	ctx.Sheet = "Sheet1"
	ctx.Set("Sheet1", 2, 2, newNumberArg(42))
	got := Execute(ctx, "OFFSET", []formulaArg{newTextArg("A1"), newNumberArg(1), newNumberArg(1)})
	assert.Equal(t, float64(42), got.Number)
}

func TestFnOffsetRectangleReturnsArray(t *testing.T) {
	ctx := NewMapContext()
	ctx.Sheet = "Sheet1"
	got := Execute(ctx, "OFFSET", []formulaArg{newTextArg("A1"), newNumberArg(0), newNumberArg(0), newNumberArg(2), newNumberArg(2)})
	assert.Equal(t, ArgArray, got.Type)
	assert.Equal(t, 2, got.Shape.Rows)
	assert.Equal(t, 2, got.Shape.Cols)
}

func TestFnOffsetOutOfBoundsIsRefError(t *testing.T) {
	ctx := NewMapContext()
	ctx.Sheet = "Sheet1"
	got := Execute(ctx, "OFFSET", []formulaArg{newTextArg("A1"), newNumberArg(-1), newNumberArg(0)})
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorREF, got.Err)
}

func TestFnIndirectReadsCell(t *testing.T) {
	ctx := NewMapContext()
	ctx.Sheet = "Sheet1"
	ctx.Set("Sheet1", 3, 1, newTextArg("hi"))
	got := Execute(ctx, "INDIRECT", []formulaArg{newTextArg("A3")})
	assert.Equal(t, "hi", got.Text)
}

func TestFnRowColumnWithNoArgUsesCurrentCell(t *testing.T) {
	ctx := NewMapContext()
	ctx.Current = &CellPos{Row: 5, Col: 3}
	got := Execute(ctx, "ROW", nil)
	assert.Equal(t, float64(5), got.Number)

	got = Execute(ctx, "COLUMN", nil)
	assert.Equal(t, float64(3), got.Number)
}

func TestFnRowWithRefArg(t *testing.T) {
	got := callMath(t, "ROW", newTextArg("B7"))
	assert.Equal(t, float64(7), got.Number)
}

func TestFnRowsColumns(t *testing.T) {
	arr := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2)}, {newNumberArg(3), newNumberArg(4)}})
	assert.Equal(t, float64(2), callMath(t, "ROWS", arr).Number)
	assert.Equal(t, float64(2), callMath(t, "COLUMNS", arr).Number)
	assert.Equal(t, float64(1), callMath(t, "ROWS", newNumberArg(1)).Number)
}

func TestFnAddressDefaultsAbsolute(t *testing.T) {
	got := callMath(t, "ADDRESS", newNumberArg(1), newNumberArg(1))
	assert.Equal(t, "$A$1", got.Text)
}

func TestFnTranspose(t *testing.T) {
	arr := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2)}})
	got := callMath(t, "TRANSPOSE", arr)
	assert.Equal(t, 2, got.Shape.Rows)
	assert.Equal(t, 1, got.Shape.Cols)
	assert.Equal(t, float64(1), got.Array[0][0].Number)
	assert.Equal(t, float64(2), got.Array[1][0].Number)
}

func TestFnSortAscendingAndDescending(t *testing.T) {
	arr := newArrayArg([][]formulaArg{{newNumberArg(3)}, {newNumberArg(1)}, {newNumberArg(2)}})
	got := callMath(t, "SORT", arr)
	assert.Equal(t, float64(1), got.Array[0][0].Number)
	assert.Equal(t, float64(3), got.Array[2][0].Number)

	got = callMath(t, "SORT", arr, newNumberArg(1), newNumberArg(-1))
	assert.Equal(t, float64(3), got.Array[0][0].Number)
}

func TestFnFilterKeepsTruthyRows(t *testing.T) {
	arr := newArrayArg([][]formulaArg{{newNumberArg(1)}, {newNumberArg(2)}, {newNumberArg(3)}})
	include := newArrayArg([][]formulaArg{{newBooleanArg(true)}, {newBooleanArg(false)}, {newBooleanArg(true)}})
	got := callMath(t, "FILTER", arr, include)
	assert.Equal(t, 2, got.Shape.Rows)
	assert.Equal(t, float64(1), got.Array[0][0].Number)
	assert.Equal(t, float64(3), got.Array[1][0].Number)
}

func TestFnFilterEmptyResultUsesIfEmptyOrCalcError(t *testing.T) {
	arr := newArrayArg([][]formulaArg{{newNumberArg(1)}})
	include := newArrayArg([][]formulaArg{{newBooleanArg(false)}})
	got := callMath(t, "FILTER", arr, include)
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorCALC, got.Err)

	got = callMath(t, "FILTER", arr, include, newTextArg("none"))
	assert.Equal(t, "none", got.Text)
}

func TestFnUniqueDropsDuplicates(t *testing.T) {
	arr := newArrayArg([][]formulaArg{{newNumberArg(1)}, {newNumberArg(1)}, {newNumberArg(2)}})
	got := callMath(t, "UNIQUE", arr)
	assert.Equal(t, 2, got.Shape.Rows)
}

func TestFnUniqueOccursOnce(t *testing.T) {
	arr := newArrayArg([][]formulaArg{{newNumberArg(1)}, {newNumberArg(1)}, {newNumberArg(2)}})
	got := callMath(t, "UNIQUE", arr, newBooleanArg(false), newBooleanArg(true))
	assert.Equal(t, 1, got.Shape.Rows)
	assert.Equal(t, float64(2), got.Array[0][0].Number)
}

func TestFnSequence(t *testing.T) {
	got := callMath(t, "SEQUENCE", newNumberArg(3), newNumberArg(1), newNumberArg(5), newNumberArg(2))
	assert.Equal(t, float64(5), got.Array[0][0].Number)
	assert.Equal(t, float64(7), got.Array[1][0].Number)
	assert.Equal(t, float64(9), got.Array[2][0].Number)
}

func TestFnSequenceRejectsNonPositiveDims(t *testing.T) {
	got := callMath(t, "SEQUENCE", newNumberArg(0))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNUM, got.Err)
}

func TestFnGroupBySumsByKey(t *testing.T) {
	keys := newArrayArg([][]formulaArg{{newTextArg("a"), newTextArg("b"), newTextArg("a")}})
	vals := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2), newNumberArg(3)}})
	got := callMath(t, "GROUPBY", keys, vals, newNumberArg(1))
	assert.Equal(t, 2, got.Shape.Rows)
	assert.Equal(t, "a", got.Array[0][0].Text)
	assert.Equal(t, float64(4), got.Array[0][1].Number)
	assert.Equal(t, "b", got.Array[1][0].Text)
	assert.Equal(t, float64(2), got.Array[1][1].Number)
}

func TestFnTrimRangeDropsEmptyBorders(t *testing.T) {
	arr := newArrayArg([][]formulaArg{
		{newEmptyArg(), newEmptyArg(), newEmptyArg()},
		{newEmptyArg(), newNumberArg(1), newEmptyArg()},
		{newEmptyArg(), newEmptyArg(), newEmptyArg()},
	})
	got := callMath(t, "TRIMRANGE", arr)
	assert.Equal(t, 1, got.Shape.Rows)
	assert.Equal(t, 1, got.Shape.Cols)
	assert.Equal(t, float64(1), got.Array[0][0].Number)
}

func TestFnAnchorArrayPassesThrough(t *testing.T) {
	arr := newArrayArg([][]formulaArg{{newNumberArg(1)}})
	got := callMath(t, "ANCHORARRAY", arr)
	assert.Equal(t, arr.Shape, got.Shape)
}

func TestFnLookupVectorForm(t *testing.T) {
	lookupVec := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2), newNumberArg(3)}})
	resultVec := newArrayArg([][]formulaArg{{newTextArg("a"), newTextArg("b"), newTextArg("c")}})
	got := callMath(t, "LOOKUP", newNumberArg(2), lookupVec, resultVec)
	assert.Equal(t, "b", got.Text)
}

func TestFnLookupNoMatchBelowRangeIsNA(t *testing.T) {
	lookupVec := newArrayArg([][]formulaArg{{newNumberArg(5), newNumberArg(6)}})
	got := callMath(t, "LOOKUP", newNumberArg(1), lookupVec)
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNA, got.Err)
}
