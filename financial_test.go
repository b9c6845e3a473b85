package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFnPVZeroRate(t *testing.T) {
	got := callMath(t, "PV", newNumberArg(0), newNumberArg(10), newNumberArg(-100))
	assert.InDelta(t, 1000, got.Number, 1e-9)
}

func TestFnFVZeroRate(t *testing.T) {
	got := callMath(t, "FV", newNumberArg(0), newNumberArg(10), newNumberArg(-100))
	assert.InDelta(t, 1000, got.Number, 1e-9)
}

func TestFnPMTZeroRate(t *testing.T) {
	got := callMath(t, "PMT", newNumberArg(0), newNumberArg(10), newNumberArg(1000))
	assert.InDelta(t, -100, got.Number, 1e-9)
}

func TestFnNPERZeroRate(t *testing.T) {
	got := callMath(t, "NPER", newNumberArg(0), newNumberArg(-100), newNumberArg(1000))
	assert.InDelta(t, 10, got.Number, 1e-9)
}

func TestFnNPERZeroRateZeroPaymentIsDivError(t *testing.T) {
	got := callMath(t, "NPER", newNumberArg(0), newNumberArg(0), newNumberArg(1000))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorDIV, got.Err)
}

func TestFnIPMTAndPPMTSumToPMT(t *testing.T) {
	rate, nper, pv := newNumberArg(0.05), newNumberArg(5), newNumberArg(1000)
	pmt := callMath(t, "PMT", rate, nper, pv)
	ipmt := callMath(t, "IPMT", rate, newNumberArg(1), nper, pv)
	ppmt := callMath(t, "PPMT", rate, newNumberArg(1), nper, pv)
	assert.InDelta(t, pmt.Number, ipmt.Number+ppmt.Number, 1e-6)
}

func TestFnIPMTOutOfRangePeriodIsNumError(t *testing.T) {
	got := callMath(t, "IPMT", newNumberArg(0.05), newNumberArg(10), newNumberArg(5), newNumberArg(1000))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNUM, got.Err)
}

func TestFnNPV(t *testing.T) {
	got := callMath(t, "NPV", newNumberArg(0.1), newNumberArg(100), newNumberArg(100))
	assert.InDelta(t, 100/1.1+100/1.21, got.Number, 1e-6)
}

func TestFnIRRKnownCashFlow(t *testing.T) {
	vals := newArrayArg([][]formulaArg{{newNumberArg(-100), newNumberArg(110)}})
	got := callMath(t, "IRR", vals)
	assert.InDelta(t, 0.1, got.Number, 1e-4)
}

func TestFnEffectAndNominalRoundTrip(t *testing.T) {
	effect := callMath(t, "EFFECT", newNumberArg(0.1), newNumberArg(4))
	assert.InDelta(t, 0.103812890625, effect.Number, 1e-9)

	nominal := callMath(t, "NOMINAL", effect, newNumberArg(4))
	assert.InDelta(t, 0.1, nominal.Number, 1e-9)
}

func TestFnSln(t *testing.T) {
	got := callMath(t, "SLN", newNumberArg(1000), newNumberArg(100), newNumberArg(10))
	assert.InDelta(t, 90, got.Number, 1e-9)
}

func TestFnSynd(t *testing.T) {
	got := callMath(t, "SYD", newNumberArg(1000), newNumberArg(100), newNumberArg(10), newNumberArg(1))
	assert.InDelta(t, 163.636364, got.Number, 1e-4)
}

func TestFnDdbFirstPeriod(t *testing.T) {
	got := callMath(t, "DDB", newNumberArg(2400), newNumberArg(300), newNumberArg(10), newNumberArg(1))
	assert.InDelta(t, 480, got.Number, 1e-6)
}

func TestFnFvschedule(t *testing.T) {
	schedule := newArrayArg([][]formulaArg{{newNumberArg(0.1), newNumberArg(0.1)}})
	got := callMath(t, "FVSCHEDULE", newNumberArg(100), schedule)
	assert.InDelta(t, 121, got.Number, 1e-9)
}
