package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapContextSetAndRead(t *testing.T) {
	ctx := NewMapContext()
	ctx.Set("Sheet1", 1, 1, newNumberArg(42))
	assert.Equal(t, newNumberArg(42), ctx.Read("Sheet1", 1, 1))
}

func TestMapContextReadUnsetCellIsEmpty(t *testing.T) {
	ctx := NewMapContext()
	got := ctx.Read("Sheet1", 5, 5)
	assert.True(t, got.isEmpty())
}

func TestMapContextReadUnknownSheetIsEmpty(t *testing.T) {
	ctx := NewMapContext()
	got := ctx.Read("NoSuchSheet", 1, 1)
	assert.True(t, got.isEmpty())
}

func TestMapContextCurrentCell(t *testing.T) {
	ctx := NewMapContext()
	_, ok := ctx.CurrentCell()
	assert.False(t, ok)

	ctx.Current = &CellPos{Row: 3, Col: 4}
	pos, ok := ctx.CurrentCell()
	assert.True(t, ok)
	assert.Equal(t, CellPos{Row: 3, Col: 4}, pos)
}

func TestMapContextIterationLimitDefault(t *testing.T) {
	ctx := NewMapContext()
	ctx.MaxIter = 0
	assert.Equal(t, 100, ctx.IterationLimit())
}

func TestMapContextEntropyDefaultsToZero(t *testing.T) {
	ctx := NewMapContext()
	ctx.Rand = nil
	assert.Equal(t, float64(0), ctx.Entropy())
}

func TestMapContextBounds(t *testing.T) {
	ctx := NewMapContext()
	rows, cols := ctx.Bounds()
	assert.Equal(t, MaxRow, rows)
	assert.Equal(t, MaxCol, cols)
}

func TestMapContextDate1904AlwaysFalse(t *testing.T) {
	ctx := NewMapContext()
	assert.False(t, ctx.Date1904())
}
