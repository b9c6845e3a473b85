package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFnAverage(t *testing.T) {
	got := callMath(t, "AVERAGE", newNumberArg(2), newNumberArg(4), newNumberArg(6))
	assert.Equal(t, float64(4), got.Number)

	got = callMath(t, "AVERAGE")
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorDIV, got.Err)
}

func TestNumericSkipIgnoresTextAndBooleans(t *testing.T) {
	got := callMath(t, "AVERAGE", newNumberArg(2), newTextArg("ignored"), newBooleanArg(true), newNumberArg(4))
	assert.Equal(t, float64(3), got.Number)
}

func TestNumericWithAIncludesTextAsZero(t *testing.T) {
	got := callMath(t, "AVERAGEA", newNumberArg(2), newTextArg("ignored"), newBooleanArg(true), newNumberArg(4))
	assert.Equal(t, float64(7)/4, got.Number)
}

func TestFnMinMax(t *testing.T) {
	min := callMath(t, "MIN", newNumberArg(5), newNumberArg(-2), newNumberArg(8))
	assert.Equal(t, float64(-2), min.Number)

	max := callMath(t, "MAX", newNumberArg(5), newNumberArg(-2), newNumberArg(8))
	assert.Equal(t, float64(8), max.Number)
}

func TestFnCountAndCountA(t *testing.T) {
	count := callMath(t, "COUNT", newNumberArg(1), newTextArg("x"), newNumberArg(2))
	assert.Equal(t, float64(2), count.Number)

	countA := callMath(t, "COUNTA", newNumberArg(1), newTextArg("x"), newEmptyArg())
	assert.Equal(t, float64(2), countA.Number)
}

func TestVarianceAndStdevSampleVsPopulation(t *testing.T) {
	nums := []formulaArg{newNumberArg(2), newNumberArg(4), newNumberArg(4), newNumberArg(4), newNumberArg(5), newNumberArg(5), newNumberArg(7), newNumberArg(9)}
	varS := callMath(t, "VAR.S", nums...)
	varP := callMath(t, "VAR.P", nums...)
	assert.InDelta(t, 4.571428571, varS.Number, 1e-6)
	assert.InDelta(t, 4, varP.Number, 1e-6)

	stdevS := callMath(t, "STDEV.S", nums...)
	assert.InDelta(t, 2.138089935, stdevS.Number, 1e-6)
}

func TestVarianceSingleSampleIsDivError(t *testing.T) {
	got := callMath(t, "VAR.S", newNumberArg(1))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorDIV, got.Err)
}

func TestFnMedianOddAndEven(t *testing.T) {
	odd := callMath(t, "MEDIAN", newNumberArg(1), newNumberArg(3), newNumberArg(2))
	assert.Equal(t, float64(2), odd.Number)

	even := callMath(t, "MEDIAN", newNumberArg(1), newNumberArg(2), newNumberArg(3), newNumberArg(4))
	assert.Equal(t, float64(2.5), even.Number)
}

func TestFnModeSngl(t *testing.T) {
	got := callMath(t, "MODE.SNGL", newNumberArg(1), newNumberArg(2), newNumberArg(2), newNumberArg(3))
	assert.Equal(t, float64(2), got.Number)

	got = callMath(t, "MODE.SNGL", newNumberArg(1), newNumberArg(2), newNumberArg(3))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNA, got.Err)
}

func TestFnModeMultReturnsArray(t *testing.T) {
	got := callMath(t, "MODE.MULT", newNumberArg(1), newNumberArg(1), newNumberArg(2), newNumberArg(2), newNumberArg(3))
	assert.Equal(t, ArgArray, got.Type)
	assert.Equal(t, 2, got.Shape.Rows)
}

func TestFnSubtotalDispatchesByCode(t *testing.T) {
	data := []formulaArg{newNumberArg(1), newNumberArg(2), newNumberArg(3)}
	sumArgs := append([]formulaArg{newNumberArg(9)}, data...)
	got := callMath(t, "SUBTOTAL", sumArgs...)
	assert.Equal(t, float64(6), got.Number)

	// code 109 collapses onto 9 (SUM)
	sumArgs109 := append([]formulaArg{newNumberArg(109)}, data...)
	got = callMath(t, "SUBTOTAL", sumArgs109...)
	assert.Equal(t, float64(6), got.Number)
}

func TestFnAggregatePropagatesErrorsWithoutIgnoreOption(t *testing.T) {
	data := []formulaArg{newNumberArg(9), newNumberArg(0), newErrorArg(formulaErrorDIV), newNumberArg(1), newNumberArg(2), newNumberArg(3)}
	got := callMath(t, "AGGREGATE", data...)
	assert.True(t, got.isError())
}

func TestFnAggregateSumIgnoreErrorsOption(t *testing.T) {
	ctx := NewMapContext()
	args := []formulaArg{newNumberArg(9), newNumberArg(6), newErrorArg(formulaErrorDIV), newNumberArg(1), newNumberArg(2)}
	got := Execute(ctx, "AGGREGATE", args)
	assert.False(t, got.isError())
	assert.Equal(t, float64(3), got.Number)
}

func TestFnAggregateQuartileExcCode(t *testing.T) {
	data := []formulaArg{newNumberArg(19), newNumberArg(0),
		newNumberArg(1), newNumberArg(2), newNumberArg(3), newNumberArg(4), newNumberArg(2),
	}
	got := callMath(t, "AGGREGATE", data...)
	assert.False(t, got.isError())
	assert.Equal(t, callMath(t, "QUARTILE.EXC", newNumberArg(1), newNumberArg(2), newNumberArg(3), newNumberArg(4), newNumberArg(2)).Number, got.Number)
}

func TestFnAggregateInvalidCodes(t *testing.T) {
	got := callMath(t, "AGGREGATE", newNumberArg(20), newNumberArg(0), newNumberArg(1))
	assert.True(t, got.isError())

	got = callMath(t, "AGGREGATE", newNumberArg(9), newNumberArg(8), newNumberArg(1))
	assert.True(t, got.isError())
}
