package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckArity(t *testing.T) {
	testCases := []struct {
		name    string
		n       int
		min     int
		max     int
		wantErr bool
	}{
		{"within bounds", 2, 1, 3, false},
		{"at min", 1, 1, 3, false},
		{"at max", 3, 1, 3, false},
		{"below min", 0, 1, 3, true},
		{"above max", 4, 1, 3, true},
		{"unbounded max accepts large n", 100, 1, -1, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := checkArity(tc.n, tc.min, tc.max)
			assert.Equal(t, !tc.wantErr, ok)
		})
	}
}

func TestFirstErrorScansPositionally(t *testing.T) {
	args := []formulaArg{newNumberArg(1), newErrorArg(formulaErrorDIV), newErrorArg(formulaErrorNA)}
	got, found := firstError(args)
	assert.True(t, found)
	assert.Equal(t, formulaErrorDIV, got.Err)
}

func TestFirstErrorScansArraysRowMajor(t *testing.T) {
	arr := newArrayArg([][]formulaArg{
		{newNumberArg(1), newNumberArg(2)},
		{newErrorArg(formulaErrorREF), newNumberArg(4)},
	})
	got, found := firstError([]formulaArg{arr})
	assert.True(t, found)
	assert.Equal(t, formulaErrorREF, got.Err)
}

func TestFirstErrorNoneFound(t *testing.T) {
	_, found := firstError([]formulaArg{newNumberArg(1), newTextArg("x")})
	assert.False(t, found)
}

func TestFlattenArgsExpandsArrays(t *testing.T) {
	arr := newArrayArg([][]formulaArg{
		{newNumberArg(1), newNumberArg(2)},
		{newNumberArg(3), newNumberArg(4)},
	})
	flat := flattenArgs([]formulaArg{newNumberArg(0), arr})
	assert.Len(t, flat, 5)
	assert.Equal(t, newNumberArg(0), flat[0])
	assert.Equal(t, newNumberArg(1), flat[1])
	assert.Equal(t, newNumberArg(4), flat[4])
}

func TestExecuteUnknownNameIsNameError(t *testing.T) {
	ctx := NewMapContext()
	got := Execute(ctx, "NOTAREALFUNCTION", nil)
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNAME, got.Err)
}

func TestExecutePropagatesErrorForNonErrorAwareFns(t *testing.T) {
	ctx := NewMapContext()
	got := Execute(ctx, "SUM", []formulaArg{newErrorArg(formulaErrorDIV), newNumberArg(1)})
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorDIV, got.Err)
}

func TestExecuteLooksUpCaseInsensitively(t *testing.T) {
	ctx := NewMapContext()
	got := Execute(ctx, "sum", []formulaArg{newNumberArg(1), newNumberArg(2)})
	assert.False(t, got.isError())
	assert.Equal(t, float64(3), got.Number)
}

func TestIsErrorAwareFnsBypassGenericScan(t *testing.T) {
	ctx := NewMapContext()
	got := Execute(ctx, "IFERROR", []formulaArg{newErrorArg(formulaErrorDIV), newTextArg("fallback")})
	assert.False(t, got.isError())
	assert.Equal(t, "fallback", got.Text)
}
