package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFnNormDistCumulativeAtMean(t *testing.T) {
	got := callMath(t, "NORM.DIST", newNumberArg(0), newNumberArg(0), newNumberArg(1), newBooleanArg(true))
	assert.InDelta(t, 0.5, got.Number, 1e-9)
}

func TestFnNormDistRejectsNonPositiveSD(t *testing.T) {
	got := callMath(t, "NORM.DIST", newNumberArg(0), newNumberArg(0), newNumberArg(0), newBooleanArg(true))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNUM, got.Err)
}

func TestFnNormDistAndNormInvRoundTrip(t *testing.T) {
	p := callMath(t, "NORM.DIST", newNumberArg(1.5), newNumberArg(0), newNumberArg(1), newBooleanArg(true))
	assert.False(t, p.isError())

	x := callMath(t, "NORM.INV", p, newNumberArg(0), newNumberArg(1))
	assert.False(t, x.isError())
	assert.InDelta(t, 1.5, x.Number, 1e-5)
}

func TestFnNormSDistLegacyAtZero(t *testing.T) {
	got := callMath(t, "NORMSDIST", newNumberArg(0))
	assert.InDelta(t, 0.5, got.Number, 1e-9)
}

func TestFnNormSInvRejectsOutOfRangeP(t *testing.T) {
	got := callMath(t, "NORM.S.INV", newNumberArg(0))
	assert.True(t, got.isError())
	got = callMath(t, "NORM.S.INV", newNumberArg(1))
	assert.True(t, got.isError())
}

func TestFnTDistSymmetricAroundZero(t *testing.T) {
	got := callMath(t, "T.DIST", newNumberArg(0), newNumberArg(10), newBooleanArg(true))
	assert.InDelta(t, 0.5, got.Number, 1e-9)
}

func TestFnTDist2TAndTInv2TRoundTrip(t *testing.T) {
	p := callMath(t, "T.DIST.2T", newNumberArg(2), newNumberArg(10))
	assert.False(t, p.isError())

	x := callMath(t, "T.INV.2T", p, newNumberArg(10))
	assert.False(t, x.isError())
	assert.InDelta(t, 2, x.Number, 1e-4)
}

func TestFnChisqDistCumulativeNonNegative(t *testing.T) {
	got := callMath(t, "CHISQ.DIST", newNumberArg(-1), newNumberArg(2), newBooleanArg(true))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNUM, got.Err)
}

func TestFnChisqDistRTComplementsChisqDist(t *testing.T) {
	cdf := callMath(t, "CHISQ.DIST", newNumberArg(5), newNumberArg(3), newBooleanArg(true))
	rt := callMath(t, "CHISQ.DIST.RT", newNumberArg(5), newNumberArg(3))
	assert.InDelta(t, 1, cdf.Number+rt.Number, 1e-9)
}

func TestFnFDistAtZeroIsZero(t *testing.T) {
	got := callMath(t, "F.DIST", newNumberArg(0), newNumberArg(5), newNumberArg(5), newBooleanArg(true))
	assert.InDelta(t, 0, got.Number, 1e-9)
}

func TestFnBetaDistBoundaryAndInverse(t *testing.T) {
	p := callMath(t, "BETA.DIST", newNumberArg(0.5), newNumberArg(2), newNumberArg(2), newBooleanArg(true))
	assert.False(t, p.isError())

	x := callMath(t, "BETA.INV", p, newNumberArg(2), newNumberArg(2))
	assert.False(t, x.isError())
	assert.InDelta(t, 0.5, x.Number, 1e-4)
}

func TestFnLognormDistRejectsNonPositiveX(t *testing.T) {
	got := callMath(t, "LOGNORM.DIST", newNumberArg(0), newNumberArg(0), newNumberArg(1), newBooleanArg(true))
	assert.True(t, got.isError())
}

func TestFnConfidenceNorm(t *testing.T) {
	got := callMath(t, "CONFIDENCE.NORM", newNumberArg(0.05), newNumberArg(2.5), newNumberArg(50))
	assert.False(t, got.isError())
	assert.Greater(t, got.Number, 0.0)
}

func TestFnConfidenceTRequiresSizeAtLeastTwo(t *testing.T) {
	got := callMath(t, "CONFIDENCE.T", newNumberArg(0.05), newNumberArg(2.5), newNumberArg(1))
	assert.True(t, got.isError())
}
