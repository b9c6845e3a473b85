package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCriterionOperators(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		wantOp  string
		wantLit string
	}{
		{"bare literal is equality", "5", "=", "5"},
		{"explicit equals", "=5", "=", "5"},
		{"less than", "<10", "<", "10"},
		{"less or equal", "<=10", "<=", "10"},
		{"greater than", ">10", ">", "10"},
		{"greater or equal", ">=10", ">=", "10"},
		{"not equal", "<>5", "<>", "5"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := parseCriterion(newTextArg(tc.raw))
			assert.Equal(t, tc.wantOp, c.op)
			assert.Equal(t, tc.wantLit, c.literal)
		})
	}
}

func TestCriterionEqualityWildcard(t *testing.T) {
	c := parseCriterion(newTextArg("a*"))
	assert.True(t, c.matches(newTextArg("apple")))
	assert.False(t, c.matches(newTextArg("banana")))
}

func TestCriterionEqualityCaseInsensitive(t *testing.T) {
	c := parseCriterion(newTextArg("Apple"))
	assert.True(t, c.matches(newTextArg("apple")))
}

func TestCriterionNotEqualWildcard(t *testing.T) {
	c := parseCriterion(newTextArg("<>a*"))
	assert.False(t, c.matches(newTextArg("apple")))
	assert.True(t, c.matches(newTextArg("banana")))
}

func TestCriterionOrderedNumericComparison(t *testing.T) {
	c := parseCriterion(newTextArg(">=10"))
	assert.True(t, c.matches(newNumberArg(10)))
	assert.True(t, c.matches(newNumberArg(15)))
	assert.False(t, c.matches(newNumberArg(9)))
}

func TestCriterionOrderedAgainstTextIsFalse(t *testing.T) {
	c := parseCriterion(newTextArg(">5"))
	assert.False(t, c.matches(newTextArg("hello")))
}

func TestCriterionEmptyLiteralMatchesBlank(t *testing.T) {
	c := parseCriterion(newTextArg(""))
	assert.True(t, c.matches(newEmptyArg()))
	assert.False(t, c.matches(newNumberArg(0)))
}

func TestWildcardEscapes(t *testing.T) {
	assert.True(t, matchWildcard("50~*", "50*"))
	assert.False(t, matchWildcard("50~*", "50x"))
}

func TestFnSumIfsSingleCriterion(t *testing.T) {
	sumRange := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2), newNumberArg(3)}})
	keyRange := newArrayArg([][]formulaArg{{newTextArg("a"), newTextArg("b"), newTextArg("a")}})
	got := callMath(t, "SUMIFS", sumRange, keyRange, newTextArg("a"))
	assert.Equal(t, float64(4), got.Number)
}

func TestFnCountIfsMultipleCriteria(t *testing.T) {
	r1 := newArrayArg([][]formulaArg{{newTextArg("a"), newTextArg("a"), newTextArg("b")}})
	r2 := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2), newNumberArg(1)}})
	got := callMath(t, "COUNTIFS", r1, newTextArg("a"), r2, newNumberArg(1))
	assert.Equal(t, float64(1), got.Number)
}

func TestFnAverageIfsNoMatchIsDivError(t *testing.T) {
	valRange := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2)}})
	keyRange := newArrayArg([][]formulaArg{{newTextArg("a"), newTextArg("b")}})
	got := callMath(t, "AVERAGEIFS", valRange, keyRange, newTextArg("z"))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorDIV, got.Err)
}

func TestFnMaxIfsAndMinIfs(t *testing.T) {
	valRange := newArrayArg([][]formulaArg{{newNumberArg(5), newNumberArg(9), newNumberArg(2)}})
	keyRange := newArrayArg([][]formulaArg{{newTextArg("a"), newTextArg("a"), newTextArg("b")}})
	got := callMath(t, "MAXIFS", valRange, keyRange, newTextArg("a"))
	assert.Equal(t, float64(9), got.Number)

	got = callMath(t, "MINIFS", valRange, keyRange, newTextArg("a"))
	assert.Equal(t, float64(5), got.Number)
}

func TestFnSumIfsMismatchedRangeLengthsIsValueError(t *testing.T) {
	sumRange := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2)}})
	keyRange := newArrayArg([][]formulaArg{{newTextArg("a"), newTextArg("b"), newTextArg("c")}})
	got := callMath(t, "SUMIFS", sumRange, keyRange, newTextArg("a"))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorVALUE, got.Err)
}
