package formula

import (
	"math"
	"time"
)

var securitiesFns map[string]Function

func init() {
	fns := map[string]Function{}
	register(fns, "DOLLARDE", fnDollarde)
	register(fns, "DOLLARFR", fnDollarfr)
	register(fns, "COUPNCD", fnCoupncd)
	register(fns, "COUPPCD", fnCouppcd)
	register(fns, "COUPNUM", fnCoupnum)
	register(fns, "COUPDAYBS", fnCoupdaybs)
	register(fns, "COUPDAYS", fnCoupdays)
	register(fns, "COUPDAYSNC", fnCoupdaysnc)
	register(fns, "PRICE", fnPrice)
	register(fns, "PRICEDISC", fnPricedisc)
	register(fns, "PRICEMAT", fnPricemat)
	register(fns, "YIELD", fnYield)
	register(fns, "YIELDDISC", fnYielddisc)
	register(fns, "YIELDMAT", fnYieldmat)
	register(fns, "DURATION", fnDuration)
	register(fns, "MDURATION", fnMduration)
	register(fns, "ACCRINT", fnAccrint)
	register(fns, "ACCRINTM", fnAccrintm)
	register(fns, "DISC", fnDisc)
	register(fns, "INTRATE", fnIntrate)
	register(fns, "RECEIVED", fnReceived)
	register(fns, "TBILLEQ", fnTbilleq)
	register(fns, "TBILLPRICE", fnTbillprice)
	register(fns, "TBILLYIELD", fnTbillyield)
	securitiesFns = fns
}

// fnDollarde implements DOLLARDE(fractional_dollar, fraction).
func fnDollarde(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	dollar, fraction := toNumber(args[0]), toNumber(args[1])
	if dollar.isError() {
		return dollar
	}
	if fraction.isError() {
		return fraction
	}
	if fraction.Number < 0 {
		return newErrorArg(formulaErrorNUM)
	}
	frac := math.Trunc(fraction.Number)
	if frac == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	sign := 1.0
	d := dollar.Number
	if d < 0 {
		sign = -1
		d = -d
	}
	intPart := math.Trunc(d)
	decPart := d - intPart
	digits := math.Ceil(math.Log10(frac))
	result := intPart + decPart*math.Pow(10, digits)/frac
	return newNumberArg(sign * result)
}

// fnDollarfr implements DOLLARFR(decimal_dollar, fraction) (inverse
// of DOLLARDE).
func fnDollarfr(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	dollar, fraction := toNumber(args[0]), toNumber(args[1])
	if dollar.isError() {
		return dollar
	}
	if fraction.isError() {
		return fraction
	}
	if fraction.Number < 0 {
		return newErrorArg(formulaErrorNUM)
	}
	frac := math.Trunc(fraction.Number)
	if frac == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	sign := 1.0
	d := dollar.Number
	if d < 0 {
		sign = -1
		d = -d
	}
	intPart := math.Trunc(d)
	decPart := d - intPart
	digits := math.Ceil(math.Log10(frac))
	result := intPart + decPart*frac/math.Pow(10, digits)
	return newNumberArg(sign * result)
}

// couponDates returns the coupon date immediately before and at/after
// settle, stepping by 12/frequency months back from maturity.
func couponDates(settle, maturity time.Time, frequency int) (prev, next time.Time) {
	months := 12 / frequency
	next = maturity
	for !next.After(settle) {
		next = next.AddDate(0, months, 0)
	}
	prev = next.AddDate(0, -months, 0)
	for prev.After(settle) {
		next = prev
		prev = prev.AddDate(0, -months, 0)
	}
	return prev, next
}

func parseCoupArgs(args []formulaArg) (settle, maturity time.Time, frequency int, basis int, errArg formulaArg) {
	settleN, maturityN, freqN := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	for _, a := range []formulaArg{settleN, maturityN, freqN} {
		if a.isError() {
			return settle, maturity, 0, 0, a
		}
	}
	basis = 0
	if len(args) > 3 {
		b := toNumber(args[3])
		if b.isError() {
			return settle, maturity, 0, 0, b
		}
		basis = int(b.Number)
	}
	frequency = int(freqN.Number)
	if frequency != 1 && frequency != 2 && frequency != 4 {
		return settle, maturity, 0, 0, newErrorArg(formulaErrorNUM)
	}
	return serialToTime(settleN.Number), serialToTime(maturityN.Number), frequency, basis, formulaArg{}
}

func fnCoupncd(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settle, maturity, frequency, _, e := parseCoupArgs(args)
	if e.isError() {
		return e
	}
	_, next := couponDates(settle, maturity, frequency)
	return newNumberArg(timeToSerial(next))
}

func fnCouppcd(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settle, maturity, frequency, _, e := parseCoupArgs(args)
	if e.isError() {
		return e
	}
	prev, _ := couponDates(settle, maturity, frequency)
	return newNumberArg(timeToSerial(prev))
}

func fnCoupnum(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settle, maturity, frequency, _, e := parseCoupArgs(args)
	if e.isError() {
		return e
	}
	months := 12 / frequency
	count := 0
	cur := maturity
	for cur.After(settle) {
		cur = cur.AddDate(0, -months, 0)
		count++
	}
	return newNumberArg(float64(count))
}

func fnCoupdaybs(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settle, maturity, frequency, basis, e := parseCoupArgs(args)
	if e.isError() {
		return e
	}
	prev, _ := couponDates(settle, maturity, frequency)
	days := dayCountBetween(prev, settle, basis)
	return newNumberArg(days)
}

func fnCoupdays(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settle, maturity, frequency, basis, e := parseCoupArgs(args)
	if e.isError() {
		return e
	}
	prev, next := couponDates(settle, maturity, frequency)
	if basis == 1 {
		return newNumberArg(dayCountBetween(prev, next, 1))
	}
	if basis == 0 || basis == 4 {
		return newNumberArg(360.0 / float64(frequency))
	}
	return newNumberArg(365.0 / float64(frequency))
}

func fnCoupdaysnc(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settle, maturity, frequency, basis, e := parseCoupArgs(args)
	if e.isError() {
		return e
	}
	_, next := couponDates(settle, maturity, frequency)
	return newNumberArg(dayCountBetween(settle, next, basis))
}

// dayCountBetween returns the day count between two dates under the
// given YEARFRAC basis (0 30/360 US, 1 actual, 2 act/360, 3 act/365,
// 4 30/360 European), reusing fnDays360/fnYearFrac's conventions.
func dayCountBetween(start, end time.Time, basis int) float64 {
	s, e := timeToSerial(start), timeToSerial(end)
	switch basis {
	case 1, 2, 3:
		return e - s
	case 4:
		d := fnDays360(nil, []formulaArg{newNumberArg(s), newNumberArg(e), newBooleanArg(true)})
		return d.Number
	default:
		d := fnDays360(nil, []formulaArg{newNumberArg(s), newNumberArg(e), newBooleanArg(false)})
		return d.Number
	}
}

func yearBasisDays(basis int, frequency int) float64 {
	switch basis {
	case 1:
		return 365.25
	case 2:
		return 360
	case 3:
		return 365
	default:
		return 360
	}
}

// fnPrice implements PRICE(settlement, maturity, rate, yld, redemption,
// frequency[, basis=0]): clean price per 100 face value.
func fnPrice(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 6, 7); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, rate, yld, redemption, freqN := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3]), toNumber(args[4]), toNumber(args[5])
	for _, a := range []formulaArg{settleN, maturityN, rate, yld, redemption, freqN} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) == 7 {
		b := toNumber(args[6])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	frequency := int(freqN.Number)
	if frequency != 1 && frequency != 2 && frequency != 4 {
		return newErrorArg(formulaErrorNUM)
	}
	n := fnCoupnum(ctx, []formulaArg{newNumberArg(settleN.Number), newNumberArg(maturityN.Number), newNumberArg(freqN.Number), newNumberArg(float64(basis))}).Number
	dsc := fnCoupdaybs(ctx, []formulaArg{newNumberArg(settleN.Number), newNumberArg(maturityN.Number), newNumberArg(freqN.Number), newNumberArg(float64(basis))}).Number
	e := fnCoupdays(ctx, []formulaArg{newNumberArg(settleN.Number), newNumberArg(maturityN.Number), newNumberArg(freqN.Number), newNumberArg(float64(basis))}).Number
	couponRate := rate.Number * 100 / float64(frequency)
	y := yld.Number / float64(frequency)
	t := e - dsc
	price := 0.0
	for k := 1.0; k <= n; k++ {
		price += couponRate / math.Pow(1+y, k-1+t/e)
	}
	price += redemption.Number / math.Pow(1+y, n-1+t/e)
	price -= couponRate * dsc / e
	return newNumberArg(price)
}

// fnPricedisc implements PRICEDISC(settlement, maturity, discount,
// redemption[, basis=0]).
func fnPricedisc(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, discount, redemption := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	for _, a := range []formulaArg{settleN, maturityN, discount, redemption} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) == 5 {
		b := toNumber(args[4])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	dsm := dayCountBetween(serialToTime(settleN.Number), serialToTime(maturityN.Number), basis)
	yearDays := yearBasisDays(basis, 1)
	price := redemption.Number * (1 - discount.Number*dsm/yearDays)
	return newNumberArg(price)
}

// fnPricemat implements PRICEMAT(settlement, maturity, issue, rate,
// yld[, basis=0]).
func fnPricemat(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 5, 6); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, issueN, rate, yld := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3]), toNumber(args[4])
	for _, a := range []formulaArg{settleN, maturityN, issueN, rate, yld} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) == 6 {
		b := toNumber(args[5])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	issue, settle, maturity := serialToTime(issueN.Number), serialToTime(settleN.Number), serialToTime(maturityN.Number)
	yearDays := yearBasisDays(basis, 1)
	dim := dayCountBetween(issue, maturity, basis)
	dis := dayCountBetween(issue, settle, basis)
	dsm := dayCountBetween(settle, maturity, basis)
	accrued := 1 + (dim/yearDays)*rate.Number
	price := (accrued / (1 + (dsm/yearDays)*yld.Number)) - (dis/yearDays)*rate.Number*100
	return newNumberArg(price)
}

// fnYield implements YIELD(settlement, maturity, rate, pr, redemption,
// frequency[, basis=0]) via bisection over fnPrice's price(yld)-pr.
func fnYield(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 6, 7); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, rate, pr, redemption, freqN := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3]), toNumber(args[4]), toNumber(args[5])
	for _, a := range []formulaArg{settleN, maturityN, rate, pr, redemption, freqN} {
		if a.isError() {
			return a
		}
	}
	basisArg := newNumberArg(0)
	if len(args) == 7 {
		b := toNumber(args[6])
		if b.isError() {
			return b
		}
		basisArg = b
	}
	f := func(y float64) float64 {
		p := fnPrice(ctx, []formulaArg{settleN, maturityN, rate, newNumberArg(y), redemption, freqN, basisArg})
		return p.Number - pr.Number
	}
	y, ok := bisect(f, -0.9, 10, 200)
	if !ok {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(y)
}

// fnYielddisc implements YIELDDISC(settlement, maturity, pr,
// redemption[, basis=0]).
func fnYielddisc(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, pr, redemption := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	for _, a := range []formulaArg{settleN, maturityN, pr, redemption} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) == 5 {
		b := toNumber(args[4])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	dsm := dayCountBetween(serialToTime(settleN.Number), serialToTime(maturityN.Number), basis)
	yearDays := yearBasisDays(basis, 1)
	if pr.Number == 0 || dsm == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	y := (redemption.Number/pr.Number - 1) * yearDays / dsm
	return newNumberArg(y)
}

// fnYieldmat implements YIELDMAT(settlement, maturity, issue, rate,
// pr[, basis=0]).
func fnYieldmat(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 5, 6); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, issueN, rate, pr := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3]), toNumber(args[4])
	for _, a := range []formulaArg{settleN, maturityN, issueN, rate, pr} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) == 6 {
		b := toNumber(args[5])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	issue, settle, maturity := serialToTime(issueN.Number), serialToTime(settleN.Number), serialToTime(maturityN.Number)
	yearDays := yearBasisDays(basis, 1)
	dim := dayCountBetween(issue, maturity, basis)
	dis := dayCountBetween(issue, settle, basis)
	dsm := dayCountBetween(settle, maturity, basis)
	accrued := 1 + (dim/yearDays)*rate.Number
	paid := 1 + (dis/yearDays)*rate.Number
	if dsm == 0 || paid == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	y := (accrued/(pr.Number/100+dis/yearDays*rate.Number) - 1) * yearDays / dsm
	return newNumberArg(y)
}

// fnDuration implements DURATION(settlement, maturity, coupon, yld,
// frequency[, basis=0]) — Macaulay duration.
func fnDuration(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 5, 6); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, coupon, yld, freqN := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3]), toNumber(args[4])
	for _, a := range []formulaArg{settleN, maturityN, coupon, yld, freqN} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) == 6 {
		b := toNumber(args[5])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	frequency := int(freqN.Number)
	if frequency != 1 && frequency != 2 && frequency != 4 {
		return newErrorArg(formulaErrorNUM)
	}
	n := fnCoupnum(ctx, []formulaArg{settleN, maturityN, freqN, newNumberArg(float64(basis))}).Number
	dsc := fnCoupdaybs(ctx, []formulaArg{settleN, maturityN, freqN, newNumberArg(float64(basis))}).Number
	e := fnCoupdays(ctx, []formulaArg{settleN, maturityN, freqN, newNumberArg(float64(basis))}).Number
	couponRate := coupon.Number * 100 / float64(frequency)
	y := yld.Number / float64(frequency)
	t := e - dsc
	var pvSum, weightedSum float64
	for k := 1.0; k <= n; k++ {
		period := k - 1 + t/e
		cf := couponRate
		if k == n {
			cf += 100
		}
		pv := cf / math.Pow(1+y, period)
		pvSum += pv
		weightedSum += period * pv
	}
	if pvSum == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	duration := weightedSum / pvSum / float64(frequency)
	return newNumberArg(duration)
}

// fnMduration implements MDURATION (Macaulay duration / (1+yld/freq)).
func fnMduration(ctx CalcContext, args []formulaArg) formulaArg {
	dur := fnDuration(ctx, args)
	if dur.isError() {
		return dur
	}
	freqN := toNumber(args[4])
	yld := toNumber(args[3])
	return newNumberArg(dur.Number / (1 + yld.Number/freqN.Number))
}

// fnAccrint implements ACCRINT(issue, first_interest, settlement,
// rate, par, frequency[, basis=0]).
func fnAccrint(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 6, 8); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	issueN, _, settleN, rate, par, freqN := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3]), toNumber(args[4]), toNumber(args[5])
	for _, a := range []formulaArg{issueN, settleN, rate, par, freqN} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) >= 7 {
		b := toNumber(args[6])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	frequency := int(freqN.Number)
	if frequency == 0 {
		frequency = 1
	}
	issue, settle := serialToTime(issueN.Number), serialToTime(settleN.Number)
	days := dayCountBetween(issue, settle, basis)
	yearDays := yearBasisDays(basis, frequency)
	return newNumberArg(par.Number * rate.Number * days / yearDays)
}

// fnAccrintm implements ACCRINTM(issue, settlement, rate, par[,
// basis=0]).
func fnAccrintm(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	issueN, settleN, rate, par := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	for _, a := range []formulaArg{issueN, settleN, rate, par} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) == 5 {
		b := toNumber(args[4])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	issue, settle := serialToTime(issueN.Number), serialToTime(settleN.Number)
	days := dayCountBetween(issue, settle, basis)
	yearDays := yearBasisDays(basis, 1)
	return newNumberArg(par.Number * rate.Number * days / yearDays)
}

// fnDisc implements DISC(settlement, maturity, pr, redemption[,
// basis=0]).
func fnDisc(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, pr, redemption := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	for _, a := range []formulaArg{settleN, maturityN, pr, redemption} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) == 5 {
		b := toNumber(args[4])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	dsm := dayCountBetween(serialToTime(settleN.Number), serialToTime(maturityN.Number), basis)
	yearDays := yearBasisDays(basis, 1)
	if redemption.Number == 0 || dsm == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	disc := (redemption.Number - pr.Number) / redemption.Number * yearDays / dsm
	return newNumberArg(disc)
}

// fnIntrate implements INTRATE(settlement, maturity, investment,
// redemption[, basis=0]).
func fnIntrate(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, investment, redemption := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	for _, a := range []formulaArg{settleN, maturityN, investment, redemption} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) == 5 {
		b := toNumber(args[4])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	dsm := dayCountBetween(serialToTime(settleN.Number), serialToTime(maturityN.Number), basis)
	yearDays := yearBasisDays(basis, 1)
	if investment.Number == 0 || dsm == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	rate := (redemption.Number - investment.Number) / investment.Number * yearDays / dsm
	return newNumberArg(rate)
}

// fnReceived implements RECEIVED(settlement, maturity, investment,
// discount[, basis=0]).
func fnReceived(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, investment, discount := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	for _, a := range []formulaArg{settleN, maturityN, investment, discount} {
		if a.isError() {
			return a
		}
	}
	basis := 0
	if len(args) == 5 {
		b := toNumber(args[4])
		if b.isError() {
			return b
		}
		basis = int(b.Number)
	}
	dsm := dayCountBetween(serialToTime(settleN.Number), serialToTime(maturityN.Number), basis)
	yearDays := yearBasisDays(basis, 1)
	denom := 1 - discount.Number*dsm/yearDays
	if denom == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(investment.Number / denom)
}

// fnTbilleq implements TBILLEQ(settlement, maturity, discount).
func fnTbilleq(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, discount := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	for _, a := range []formulaArg{settleN, maturityN, discount} {
		if a.isError() {
			return a
		}
	}
	dsm := maturityN.Number - settleN.Number
	if dsm > 182 {
		return newErrorArg(formulaErrorNUM)
	}
	denom := 360 - discount.Number*dsm
	if denom == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(365 * discount.Number / denom)
}

// fnTbillprice implements TBILLPRICE(settlement, maturity, discount).
func fnTbillprice(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, discount := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	for _, a := range []formulaArg{settleN, maturityN, discount} {
		if a.isError() {
			return a
		}
	}
	dsm := maturityN.Number - settleN.Number
	if dsm > 364 {
		return newErrorArg(formulaErrorNUM)
	}
	price := 100 * (1 - discount.Number*dsm/360)
	return newNumberArg(price)
}

// fnTbillyield implements TBILLYIELD(settlement, maturity, pr).
func fnTbillyield(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	settleN, maturityN, pr := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	for _, a := range []formulaArg{settleN, maturityN, pr} {
		if a.isError() {
			return a
		}
	}
	dsm := maturityN.Number - settleN.Number
	if dsm > 364 || pr.Number == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	yield := (100 - pr.Number) / pr.Number * 360 / dsm
	return newNumberArg(yield)
}
