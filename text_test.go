package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFnConcatenateFlattensArrays(t *testing.T) {
	arr := newArrayArg([][]formulaArg{{newTextArg("a"), newTextArg("b")}})
	got := callMath(t, "CONCATENATE", arr, newTextArg("c"))
	assert.Equal(t, "abc", got.Text)
}

func TestFnLeftRightDefaultCountIsOne(t *testing.T) {
	got := callMath(t, "LEFT", newTextArg("hello"))
	assert.Equal(t, "h", got.Text)

	got = callMath(t, "RIGHT", newTextArg("hello"), newNumberArg(2))
	assert.Equal(t, "lo", got.Text)
}

func TestFnLeftClampsCountToLength(t *testing.T) {
	got := callMath(t, "LEFT", newTextArg("hi"), newNumberArg(10))
	assert.Equal(t, "hi", got.Text)
}

func TestFnMid(t *testing.T) {
	got := callMath(t, "MID", newTextArg("hello world"), newNumberArg(7), newNumberArg(5))
	assert.Equal(t, "world", got.Text)

	got = callMath(t, "MID", newTextArg("hi"), newNumberArg(10), newNumberArg(3))
	assert.Equal(t, "", got.Text)
}

func TestFnLen(t *testing.T) {
	got := callMath(t, "LEN", newTextArg("héllo"))
	assert.Equal(t, float64(5), got.Number)
}

func TestFnTrimCollapsesWhitespace(t *testing.T) {
	got := callMath(t, "TRIM", newTextArg("  a   b  "))
	assert.Equal(t, "a b", got.Text)
}

func TestFnUpperLowerProper(t *testing.T) {
	assert.Equal(t, "HELLO", callMath(t, "UPPER", newTextArg("hello")).Text)
	assert.Equal(t, "hello", callMath(t, "LOWER", newTextArg("HELLO")).Text)
	assert.Equal(t, "Hello World", callMath(t, "PROPER", newTextArg("hello world")).Text)
}

func TestFnFindCaseSensitiveNoWildcards(t *testing.T) {
	got := callMath(t, "FIND", newTextArg("lo"), newTextArg("hello world"))
	assert.Equal(t, float64(4), got.Number)

	got = callMath(t, "FIND", newTextArg("LO"), newTextArg("hello world"))
	assert.True(t, got.isError())
}

func TestFnSearchCaseInsensitiveWithWildcard(t *testing.T) {
	got := callMath(t, "SEARCH", newTextArg("W*D"), newTextArg("hello world"))
	assert.Equal(t, float64(7), got.Number)
}

func TestFnSubstituteAllVsInstance(t *testing.T) {
	got := callMath(t, "SUBSTITUTE", newTextArg("a-b-c"), newTextArg("-"), newTextArg("_"))
	assert.Equal(t, "a_b_c", got.Text)

	got = callMath(t, "SUBSTITUTE", newTextArg("a-b-c"), newTextArg("-"), newTextArg("_"), newNumberArg(2))
	assert.Equal(t, "a-b_c", got.Text)
}

func TestFnReplace(t *testing.T) {
	got := callMath(t, "REPLACE", newTextArg("hello"), newNumberArg(2), newNumberArg(3), newTextArg("XY"))
	assert.Equal(t, "hXYo", got.Text)
}

func TestFnRept(t *testing.T) {
	got := callMath(t, "REPT", newTextArg("ab"), newNumberArg(3))
	assert.Equal(t, "ababab", got.Text)
}

func TestFnValue(t *testing.T) {
	got := callMath(t, "VALUE", newTextArg("42"))
	assert.Equal(t, float64(42), got.Number)
}

func TestFnTPassesThroughTextOnly(t *testing.T) {
	assert.Equal(t, "hi", callMath(t, "T", newTextArg("hi")).Text)
	assert.Equal(t, "", callMath(t, "T", newNumberArg(5)).Text)
}

func TestFnCharCode(t *testing.T) {
	got := callMath(t, "CHAR", newNumberArg(65))
	assert.Equal(t, "A", got.Text)

	got = callMath(t, "CODE", newTextArg("A"))
	assert.Equal(t, float64(65), got.Number)
}

func TestFnCharOutOfRangeIsValueError(t *testing.T) {
	got := callMath(t, "CHAR", newNumberArg(0))
	assert.True(t, got.isError())
}

func TestFnTextBeforeAndAfter(t *testing.T) {
	got := callMath(t, "TEXTBEFORE", newTextArg("a,b,c"), newTextArg(","))
	assert.Equal(t, "a", got.Text)

	got = callMath(t, "TEXTAFTER", newTextArg("a,b,c"), newTextArg(","), newNumberArg(2))
	assert.Equal(t, "c", got.Text)
}

func TestFnTextBeforeNoMatchReturnsNAOrIfNotFound(t *testing.T) {
	got := callMath(t, "TEXTBEFORE", newTextArg("abc"), newTextArg(","))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNA, got.Err)
}

func TestFnTextSplitProducesRectangularArray(t *testing.T) {
	got := callMath(t, "TEXTSPLIT", newTextArg("a,b;c,d,e"), newTextArg(","), newTextArg(";"))
	assert.Equal(t, ArgArray, got.Type)
	assert.Equal(t, 2, got.Shape.Rows)
	assert.Equal(t, 3, got.Shape.Cols)
	assert.Equal(t, "", got.Array[0][2].Text)
}

func TestFnValueToTextStrictQuotesStrings(t *testing.T) {
	got := callMath(t, "VALUETOTEXT", newTextArg("hi"), newNumberArg(1))
	assert.Equal(t, "\"hi\"", got.Text)

	got = callMath(t, "VALUETOTEXT", newTextArg("hi"))
	assert.Equal(t, "hi", got.Text)
}

func TestFnArrayToTextJoinsRowsAndCols(t *testing.T) {
	arr := newArrayArg([][]formulaArg{
		{newNumberArg(1), newNumberArg(2)},
		{newNumberArg(3), newNumberArg(4)},
	})
	got := callMath(t, "ARRAYTOTEXT", arr)
	assert.Equal(t, "1,2;3,4", got.Text)
}
