package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormulaArgPredicates(t *testing.T) {
	testCases := []struct {
		name string
		arg  formulaArg
		want ArgType
	}{
		{"empty", newEmptyArg(), ArgEmpty},
		{"number", newNumberArg(42), ArgNumber},
		{"text", newTextArg("hi"), ArgText},
		{"boolean", newBooleanArg(true), ArgBoolean},
		{"error", newErrorArg(formulaErrorVALUE), ArgError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.arg.Type)
		})
	}
}

func TestFormulaArgTruthy(t *testing.T) {
	testCases := []struct {
		name string
		arg  formulaArg
		want bool
	}{
		{"empty is falsy", newEmptyArg(), false},
		{"zero is falsy", newNumberArg(0), false},
		{"nonzero is truthy", newNumberArg(1), true},
		{"negative is truthy", newNumberArg(-1), true},
		{"empty text is falsy", newTextArg(""), false},
		{"nonempty text is truthy", newTextArg("x"), true},
		{"false is falsy", newBooleanArg(false), false},
		{"true is truthy", newBooleanArg(true), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.arg.truthy())
		})
	}
}

func TestFormulaArgString(t *testing.T) {
	testCases := []struct {
		name string
		arg  formulaArg
		want string
	}{
		{"empty", newEmptyArg(), ""},
		{"integer number", newNumberArg(3), "3"},
		{"fractional number", newNumberArg(3.5), "3.5"},
		{"negative number", newNumberArg(-12), "-12"},
		{"text", newTextArg("abc"), "abc"},
		{"true", newBooleanArg(true), "TRUE"},
		{"false", newBooleanArg(false), "FALSE"},
		{"error", newErrorArg(formulaErrorDIV), "#DIV/0!"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.arg.String())
		})
	}
}

func TestNewArrayArgAnchorAndShape(t *testing.T) {
	rows := [][]formulaArg{
		{newNumberArg(1), newNumberArg(2)},
		{newNumberArg(3), newNumberArg(4)},
	}
	arr := newArrayArg(rows)
	assert.Equal(t, ArgArray, arr.Type)
	assert.Equal(t, Shape{Rows: 2, Cols: 2}, arr.Shape)
	assert.Equal(t, newNumberArg(1), arr.anchor())
	assert.Equal(t, newNumberArg(1), *arr.TopLeft)
}

func TestNewArrayArgRejectsEmptyAndRagged(t *testing.T) {
	assert.True(t, newArrayArg(nil).isError())
	assert.True(t, newArrayArg([][]formulaArg{{}}).isError())
	ragged := [][]formulaArg{
		{newNumberArg(1), newNumberArg(2)},
		{newNumberArg(3)},
	}
	assert.True(t, newArrayArg(ragged).isError())
}

func TestAnchorPassesThroughScalars(t *testing.T) {
	n := newNumberArg(7)
	assert.Equal(t, n, n.anchor())
}
