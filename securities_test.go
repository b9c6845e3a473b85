package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFnDollardeAndDollarfrRoundTrip(t *testing.T) {
	de := callMath(t, "DOLLARDE", newNumberArg(1.02), newNumberArg(16))
	assert.InDelta(t, 1.125, de.Number, 1e-9)

	fr := callMath(t, "DOLLARFR", newNumberArg(1.125), newNumberArg(16))
	assert.InDelta(t, 1.02, fr.Number, 1e-9)
}

func TestFnDollardeZeroFractionIsDivError(t *testing.T) {
	got := callMath(t, "DOLLARDE", newNumberArg(1), newNumberArg(0))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorDIV, got.Err)
}

func TestFnPricediscAndDiscAreConsistent(t *testing.T) {
	settle := newNumberArg(44927)
	maturity := newNumberArg(45027) // 100 days later
	discount := newNumberArg(0.05)
	redemption := newNumberArg(100)
	basis := newNumberArg(2)

	price := callMath(t, "PRICEDISC", settle, maturity, discount, redemption, basis)
	assert.InDelta(t, 98.611111, price.Number, 1e-4)

	back := callMath(t, "DISC", settle, maturity, price, redemption, basis)
	assert.InDelta(t, 0.05, back.Number, 1e-6)
}

func TestFnIntrate(t *testing.T) {
	got := callMath(t, "INTRATE", newNumberArg(0), newNumberArg(180), newNumberArg(1000), newNumberArg(1050), newNumberArg(0))
	// basis 0 (30/360 US) counts 178 days from 1899-12-30 to 1900-06-28.
	assert.InDelta(t, 0.05*360/178, got.Number, 1e-9)
}

func TestFnReceived(t *testing.T) {
	got := callMath(t, "RECEIVED", newNumberArg(0), newNumberArg(180), newNumberArg(1000), newNumberArg(0.08), newNumberArg(2))
	assert.InDelta(t, 1041.6667, got.Number, 1e-3)
}

func TestFnTbillpriceAndYield(t *testing.T) {
	price := callMath(t, "TBILLPRICE", newNumberArg(44927), newNumberArg(45027), newNumberArg(0.05))
	assert.InDelta(t, 98.6111, price.Number, 1e-3)

	yield := callMath(t, "TBILLYIELD", newNumberArg(44927), newNumberArg(45027), newNumberArg(98))
	assert.InDelta(t, 0.0734694, yield.Number, 1e-5)
}

func TestFnTbillpriceRejectsLongMaturity(t *testing.T) {
	got := callMath(t, "TBILLPRICE", newNumberArg(0), newNumberArg(400), newNumberArg(0.05))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNUM, got.Err)
}

func TestFnTbilleq(t *testing.T) {
	got := callMath(t, "TBILLEQ", newNumberArg(44927), newNumberArg(45027), newNumberArg(0.05))
	assert.InDelta(t, 0.0514085, got.Number, 1e-5)
}

func TestFnTbilleqRejectsLongMaturity(t *testing.T) {
	got := callMath(t, "TBILLEQ", newNumberArg(0), newNumberArg(200), newNumberArg(0.05))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNUM, got.Err)
}

func TestFnCoupDatesBracketSettlement(t *testing.T) {
	settle := newNumberArg(44927)  // 2023-01-01
	maturity := newNumberArg(45657) // 2024-12-31-ish, several periods later
	freq := newNumberArg(2)

	ncd := callMath(t, "COUPNCD", settle, maturity, freq)
	pcd := callMath(t, "COUPPCD", settle, maturity, freq)
	assert.Greater(t, ncd.Number, settle.Number)
	assert.LessOrEqual(t, pcd.Number, settle.Number)
	assert.Greater(t, ncd.Number, pcd.Number)
}

func TestFnCoupnumPositive(t *testing.T) {
	settle := newNumberArg(44927)
	maturity := newNumberArg(45657)
	got := callMath(t, "COUPNUM", settle, maturity, newNumberArg(2))
	assert.Greater(t, got.Number, float64(0))
}

func TestFnPriceRejectsInvalidFrequency(t *testing.T) {
	got := callMath(t, "PRICE", newNumberArg(44927), newNumberArg(45657), newNumberArg(0.05), newNumberArg(0.06), newNumberArg(100), newNumberArg(3))
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNUM, got.Err)
}
