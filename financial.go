package formula

import "math"

var financialFns map[string]Function

func init() {
	fns := map[string]Function{}
	register(fns, "PV", fnPV)
	register(fns, "FV", fnFV)
	register(fns, "PMT", fnPMT)
	register(fns, "IPMT", fnIPMT)
	register(fns, "PPMT", fnPPMT)
	register(fns, "NPER", fnNPER)
	register(fns, "RATE", fnRATE)
	register(fns, "NPV", fnNPV)
	register(fns, "IRR", fnIRR)
	register(fns, "MIRR", fnMIRR)
	register(fns, "XNPV", fnXNPV)
	register(fns, "XIRR", fnXIRR)
	register(fns, "EFFECT", fnEffect)
	register(fns, "NOMINAL", fnNominal)
	register(fns, "CUMIPMT", fnCumipmt)
	register(fns, "CUMPRINC", fnCumprinc)
	register(fns, "FVSCHEDULE", fnFvschedule)
	register(fns, "SLN", fnSln)
	register(fns, "SYD", fnSyd)
	register(fns, "DB", fnDb)
	register(fns, "DDB", fnDdb)
	register(fns, "VDB", fnVdb)
	register(fns, "AMORDEGRC", fnAmordegrc)
	register(fns, "AMORLINC", fnAmorlinc)
	financialFns = fns
}

func numArg(args []formulaArg, i int, def float64) formulaArg {
	if i >= len(args) {
		return newNumberArg(def)
	}
	return toNumber(args[i])
}

// payType returns 0 (end of period) unless the 'type' argument is
// nonzero, in which case it returns 1 (beginning of period).
func payType(a formulaArg) float64 {
	if a.Number != 0 {
		return 1
	}
	return 0
}

// fnPV implements PV(rate, nper, pmt[, fv=0][, type=0]) (§4.5.6).
func fnPV(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rate, nper, pmt := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	fv := numArg(args, 3, 0)
	typ := numArg(args, 4, 0)
	for _, a := range []formulaArg{rate, nper, pmt, fv, typ} {
		if a.isError() {
			return a
		}
	}
	r, n, p, f, t := rate.Number, nper.Number, pmt.Number, fv.Number, payType(typ)
	if r == 0 {
		return newNumberArg(-(f + p*n))
	}
	pv := -(f + p*(1+r*t)*((math.Pow(1+r, n)-1)/r)) / math.Pow(1+r, n)
	return newNumberArg(pv)
}

// fnFV implements FV(rate, nper, pmt[, pv=0][, type=0]).
func fnFV(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rate, nper, pmt := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	pv := numArg(args, 3, 0)
	typ := numArg(args, 4, 0)
	for _, a := range []formulaArg{rate, nper, pmt, pv, typ} {
		if a.isError() {
			return a
		}
	}
	r, n, p, v, t := rate.Number, nper.Number, pmt.Number, pv.Number, payType(typ)
	if r == 0 {
		return newNumberArg(-(v + p*n))
	}
	fv := -(v*math.Pow(1+r, n) + p*(1+r*t)*((math.Pow(1+r, n)-1)/r))
	return newNumberArg(fv)
}

// fnPMT implements PMT(rate, nper, pv[, fv=0][, type=0]).
func fnPMT(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rate, nper, pv := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	fv := numArg(args, 3, 0)
	typ := numArg(args, 4, 0)
	for _, a := range []formulaArg{rate, nper, pv, fv, typ} {
		if a.isError() {
			return a
		}
	}
	r, n, v, f, t := rate.Number, nper.Number, pv.Number, fv.Number, payType(typ)
	if r == 0 {
		return newNumberArg(-(v + f) / n)
	}
	pmt := -(f + v*math.Pow(1+r, n)) * r / ((1 + r*t) * (math.Pow(1+r, n) - 1))
	return newNumberArg(pmt)
}

func remainingBalance(rate, nper, pv, fv, typ float64, period float64) float64 {
	pmt := fnPMT(nil, []formulaArg{newNumberArg(rate), newNumberArg(nper), newNumberArg(pv), newNumberArg(fv), newNumberArg(typ)}).Number
	bal := pv
	for i := 1.0; i < period; i++ {
		interest := -bal * rate
		if typ == 1 && i == 1 {
			interest = 0
		}
		principal := pmt - interest
		bal += principal
	}
	return bal
}

// fnIPMT implements IPMT(rate, per, nper, pv[, fv=0][, type=0]).
func fnIPMT(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 6); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rate, per, nper, pv := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	fv := numArg(args, 4, 0)
	typ := numArg(args, 5, 0)
	for _, a := range []formulaArg{rate, per, nper, pv, fv, typ} {
		if a.isError() {
			return a
		}
	}
	r, p, n, v, f, t := rate.Number, per.Number, nper.Number, pv.Number, fv.Number, payType(typ)
	if p < 1 || p > n {
		return newErrorArg(formulaErrorNUM)
	}
	if t == 1 && p == 1 {
		return newNumberArg(0)
	}
	bal := remainingBalance(r, n, v, f, t, p)
	interest := -bal * r
	return newNumberArg(interest)
}

// fnPPMT implements PPMT(rate, per, nper, pv[, fv=0][, type=0]).
func fnPPMT(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 6); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rate, per, nper, pv := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	fv := numArg(args, 4, 0)
	typ := numArg(args, 5, 0)
	for _, a := range []formulaArg{rate, per, nper, pv, fv, typ} {
		if a.isError() {
			return a
		}
	}
	ipmt := fnIPMT(ctx, args)
	if ipmt.isError() {
		return ipmt
	}
	pmt := fnPMT(ctx, []formulaArg{newNumberArg(rate.Number), newNumberArg(nper.Number), newNumberArg(pv.Number), newNumberArg(fv.Number), newNumberArg(typ.Number)})
	return newNumberArg(pmt.Number - ipmt.Number)
}

// fnNPER implements NPER(rate, pmt, pv[, fv=0][, type=0]).
func fnNPER(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rate, pmt, pv := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	fv := numArg(args, 3, 0)
	typ := numArg(args, 4, 0)
	for _, a := range []formulaArg{rate, pmt, pv, fv, typ} {
		if a.isError() {
			return a
		}
	}
	r, p, v, f, t := rate.Number, pmt.Number, pv.Number, fv.Number, payType(typ)
	if r == 0 {
		if p == 0 {
			return newErrorArg(formulaErrorDIV)
		}
		return newNumberArg(-(v + f) / p)
	}
	num := p*(1+r*t)/r - f
	den := v + p*(1+r*t)/r
	if den == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	n := math.Log(num/den) / math.Log(1+r)
	return newNumberArg(n)
}

// fnRATE implements RATE(nper, pmt, pv[, fv=0][, type=0][, guess=0.1])
// via solver.go's shared Newton iteration (§4.5.6).
func fnRATE(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 6); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	nper, pmt, pv := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	fv := numArg(args, 3, 0)
	typ := numArg(args, 4, 0)
	guess := numArg(args, 5, 0.1)
	for _, a := range []formulaArg{nper, pmt, pv, fv, typ, guess} {
		if a.isError() {
			return a
		}
	}
	n, p, v, f, t := nper.Number, pmt.Number, pv.Number, fv.Number, payType(typ)
	f_ := func(r float64) float64 {
		if r == 0 {
			return v + p*n + f
		}
		return v*math.Pow(1+r, n) + p*(1+r*t)*((math.Pow(1+r, n)-1)/r) + f
	}
	df := func(r float64) float64 {
		h := 1e-6
		return (f_(r+h) - f_(r-h)) / (2 * h)
	}
	rate, ok := newton(f_, df, guess.Number, -0.999999, 10, 100)
	if !ok {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(rate)
}

// fnNPV implements NPV(rate, value1, [value2, ...]) (§4.5.6).
func fnNPV(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, -1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rate := toNumber(args[0])
	if rate.isError() {
		return rate
	}
	vals := numericSkip(args[1:])
	sum := 0.0
	for i, v := range vals {
		sum += v / math.Pow(1+rate.Number, float64(i+1))
	}
	return newNumberArg(sum)
}

// fnIRR implements IRR(values[, guess=0.1]) via Newton's method.
func fnIRR(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	vals := numericSkip(args[:1])
	guess := 0.1
	if len(args) == 2 {
		g := toNumber(args[1])
		if g.isError() {
			return g
		}
		guess = g.Number
	}
	if len(vals) < 2 {
		return newErrorArg(formulaErrorNUM)
	}
	f := func(r float64) float64 {
		sum := 0.0
		for i, v := range vals {
			sum += v / math.Pow(1+r, float64(i))
		}
		return sum
	}
	df := func(r float64) float64 {
		h := 1e-6
		return (f(r+h) - f(r-h)) / (2 * h)
	}
	rate, ok := newton(f, df, guess, -0.999999, 10, 100)
	if !ok {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(rate)
}

// fnMIRR implements MIRR(values, finance_rate, reinvest_rate).
func fnMIRR(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	financeRate, reinvestRate := toNumber(args[1]), toNumber(args[2])
	if financeRate.isError() {
		return financeRate
	}
	if reinvestRate.isError() {
		return reinvestRate
	}
	vals := numericSkip(args[:1])
	n := len(vals)
	if n < 2 {
		return newErrorArg(formulaErrorNUM)
	}
	var pvNeg, fvPos float64
	for i, v := range vals {
		if v < 0 {
			pvNeg += v / math.Pow(1+financeRate.Number, float64(i))
		} else if v > 0 {
			fvPos += v * math.Pow(1+reinvestRate.Number, float64(n-1-i))
		}
	}
	if pvNeg == 0 || fvPos == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	mirr := math.Pow(-fvPos/pvNeg, 1/float64(n-1)) - 1
	return newNumberArg(mirr)
}

// fnXNPV implements XNPV(rate, values, dates) (§4.5.6).
func fnXNPV(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	rate := toNumber(args[0])
	if rate.isError() {
		return rate
	}
	vals := numericSkip(flattenArgs(args[1:2]))
	dates := numericSkip(flattenArgs(args[2:3]))
	if len(vals) != len(dates) || len(vals) == 0 {
		return newErrorArg(formulaErrorNUM)
	}
	d0 := dates[0]
	sum := 0.0
	for i, v := range vals {
		sum += v / math.Pow(1+rate.Number, (dates[i]-d0)/365)
	}
	return newNumberArg(sum)
}

// fnXIRR implements XIRR(values, dates[, guess=0.1]).
func fnXIRR(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	vals := numericSkip(flattenArgs(args[0:1]))
	dates := numericSkip(flattenArgs(args[1:2]))
	if len(vals) != len(dates) || len(vals) == 0 {
		return newErrorArg(formulaErrorNUM)
	}
	guess := 0.1
	if len(args) == 3 {
		g := toNumber(args[2])
		if g.isError() {
			return g
		}
		guess = g.Number
	}
	d0 := dates[0]
	f := func(r float64) float64 {
		sum := 0.0
		for i, v := range vals {
			sum += v / math.Pow(1+r, (dates[i]-d0)/365)
		}
		return sum
	}
	df := func(r float64) float64 {
		h := 1e-6
		return (f(r+h) - f(r-h)) / (2 * h)
	}
	rate, ok := newton(f, df, guess, -0.999999, 100, 100)
	if !ok {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(rate)
}

// fnEffect implements EFFECT(nominal_rate, npery).
func fnEffect(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	nominal, npery := toNumber(args[0]), toNumber(args[1])
	if nominal.isError() {
		return nominal
	}
	if npery.isError() {
		return npery
	}
	if npery.Number < 1 {
		return newErrorArg(formulaErrorNUM)
	}
	n := math.Trunc(npery.Number)
	return newNumberArg(math.Pow(1+nominal.Number/n, n) - 1)
}

// fnNominal implements NOMINAL(effect_rate, npery).
func fnNominal(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	effect, npery := toNumber(args[0]), toNumber(args[1])
	if effect.isError() {
		return effect
	}
	if npery.isError() {
		return npery
	}
	if npery.Number < 1 {
		return newErrorArg(formulaErrorNUM)
	}
	n := math.Trunc(npery.Number)
	return newNumberArg((math.Pow(effect.Number+1, 1/n) - 1) * n)
}

// fnCumipmt implements CUMIPMT(rate, nper, pv, start, end, type).
func fnCumipmt(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 6, 6); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	vs := make([]formulaArg, 6)
	for i := range vs {
		vs[i] = toNumber(args[i])
		if vs[i].isError() {
			return vs[i]
		}
	}
	rate, nper, pv, start, end, typ := vs[0].Number, vs[1].Number, vs[2].Number, vs[3].Number, vs[4].Number, vs[5].Number
	if start < 1 || end < start || end > nper {
		return newErrorArg(formulaErrorNUM)
	}
	sum := 0.0
	for p := start; p <= end; p++ {
		ip := fnIPMT(ctx, []formulaArg{newNumberArg(rate), newNumberArg(p), newNumberArg(nper), newNumberArg(pv), newNumberArg(0), newNumberArg(typ)})
		if ip.isError() {
			return ip
		}
		sum += ip.Number
	}
	return newNumberArg(sum)
}

// fnCumprinc implements CUMPRINC(rate, nper, pv, start, end, type).
func fnCumprinc(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 6, 6); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	vs := make([]formulaArg, 6)
	for i := range vs {
		vs[i] = toNumber(args[i])
		if vs[i].isError() {
			return vs[i]
		}
	}
	rate, nper, pv, start, end, typ := vs[0].Number, vs[1].Number, vs[2].Number, vs[3].Number, vs[4].Number, vs[5].Number
	if start < 1 || end < start || end > nper {
		return newErrorArg(formulaErrorNUM)
	}
	sum := 0.0
	for p := start; p <= end; p++ {
		pp := fnPPMT(ctx, []formulaArg{newNumberArg(rate), newNumberArg(p), newNumberArg(nper), newNumberArg(pv), newNumberArg(0), newNumberArg(typ)})
		if pp.isError() {
			return pp
		}
		sum += pp.Number
	}
	return newNumberArg(sum)
}

// fnFvschedule implements FVSCHEDULE(principal, schedule).
func fnFvschedule(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	principal := toNumber(args[0])
	if principal.isError() {
		return principal
	}
	rates := numericSkip(flattenArgs(args[1:2]))
	fv := principal.Number
	for _, r := range rates {
		fv *= 1 + r
	}
	return newNumberArg(fv)
}

// fnSln implements SLN(cost, salvage, life).
func fnSln(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	cost, salvage, life := toNumber(args[0]), toNumber(args[1]), toNumber(args[2])
	for _, a := range []formulaArg{cost, salvage, life} {
		if a.isError() {
			return a
		}
	}
	if life.Number == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg((cost.Number - salvage.Number) / life.Number)
}

// fnSyd implements SYD(cost, salvage, life, per).
func fnSyd(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 4); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	cost, salvage, life, per := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	for _, a := range []formulaArg{cost, salvage, life, per} {
		if a.isError() {
			return a
		}
	}
	if life.Number == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	syd := (cost.Number - salvage.Number) * (life.Number - per.Number + 1) * 2 / (life.Number * (life.Number + 1))
	return newNumberArg(syd)
}

// fnDb implements DB(cost, salvage, life, period[, month=12]) (fixed
// declining balance).
func fnDb(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	cost, salvage, life, period := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	month := numArg(args, 4, 12)
	for _, a := range []formulaArg{cost, salvage, life, period, month} {
		if a.isError() {
			return a
		}
	}
	if cost.Number == 0 || salvage.Number < 0 || life.Number <= 0 {
		return newErrorArg(formulaErrorNUM)
	}
	rate := 1 - math.Pow(salvage.Number/cost.Number, 1/life.Number)
	rate = math.Trunc(rate*1000+0.5) / 1000
	totalDep := 0.0
	var dep float64
	for p := 1.0; p <= period.Number; p++ {
		if p == 1 {
			dep = cost.Number * rate * month.Number / 12
		} else if p == life.Number+1 {
			dep = (cost.Number - totalDep) * rate * (12 - month.Number) / 12
		} else {
			dep = (cost.Number - totalDep) * rate
		}
		totalDep += dep
	}
	return newNumberArg(dep)
}

// fnDdb implements DDB(cost, salvage, life, period[, factor=2])
// (double declining balance).
func fnDdb(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 4, 5); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	cost, salvage, life, period := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3])
	factor := numArg(args, 4, 2)
	for _, a := range []formulaArg{cost, salvage, life, period, factor} {
		if a.isError() {
			return a
		}
	}
	if cost.Number <= 0 || life.Number <= 0 || period.Number < 1 || period.Number > life.Number {
		return newErrorArg(formulaErrorNUM)
	}
	bal := cost.Number
	var dep float64
	for p := 1.0; p <= period.Number; p++ {
		dep = math.Min(bal*factor.Number/life.Number, bal-salvage.Number)
		if dep < 0 {
			dep = 0
		}
		bal -= dep
	}
	return newNumberArg(dep)
}

// fnVdb implements VDB(cost, salvage, life, start, end[, factor=2][,
// no_switch=false]) by summing DDB across whole periods, switching to
// straight-line once it exceeds DDB, unless no_switch is set.
func fnVdb(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 5, 7); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	cost, salvage, life, start, end := toNumber(args[0]), toNumber(args[1]), toNumber(args[2]), toNumber(args[3]), toNumber(args[4])
	factor := numArg(args, 5, 2)
	noSwitch := false
	if len(args) == 7 {
		b := toBoolean(args[6])
		if b.isError() {
			return b
		}
		noSwitch = b.Boolean
	}
	for _, a := range []formulaArg{cost, salvage, life, start, end, factor} {
		if a.isError() {
			return a
		}
	}
	if start.Number < 0 || end.Number < start.Number || end.Number > life.Number {
		return newErrorArg(formulaErrorNUM)
	}
	bal := cost.Number
	sln := func(remainingLife float64) float64 {
		if remainingLife <= 0 {
			return 0
		}
		return (bal - salvage.Number) / remainingLife
	}
	total := 0.0
	period := math.Floor(start.Number)
	for period < end.Number {
		periodEnd := math.Min(period+1, end.Number)
		ddb := math.Min(bal*factor.Number/life.Number, bal-salvage.Number)
		if ddb < 0 {
			ddb = 0
		}
		useDep := ddb
		if !noSwitch {
			straight := sln(life.Number - period)
			if straight > ddb {
				useDep = straight
			}
		}
		segFraction := periodEnd - math.Max(period, start.Number)
		total += useDep * segFraction
		bal -= useDep
		period++
	}
	return newNumberArg(total)
}

// fnAmordegrc implements AMORDEGRC(cost, purchased_date, first_period,
// salvage, period, rate[, basis=0]) — French degressive depreciation.
func fnAmordegrc(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 6, 7); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	cost, salvage, rate, period := toNumber(args[0]), toNumber(args[3]), toNumber(args[5]), toNumber(args[4])
	for _, a := range []formulaArg{cost, salvage, rate, period} {
		if a.isError() {
			return a
		}
	}
	coeff := 1.0
	switch {
	case rate.Number < 0.15:
		coeff = 1.0
	case rate.Number < 0.25:
		coeff = 1.5
	case rate.Number < 0.5:
		coeff = 2.0
	default:
		coeff = 2.5
	}
	adjRate := rate.Number * coeff
	bal := cost.Number
	var dep float64
	for p := 0.0; p <= period.Number; p++ {
		dep = bal * adjRate
		if bal-dep < salvage.Number {
			dep = bal - salvage.Number
		}
		bal -= dep
	}
	return newNumberArg(math.Round(dep))
}

// fnAmorlinc implements AMORLINC(cost, purchased_date, first_period,
// salvage, period, rate[, basis=0]) — French straight-line
// depreciation. It returns cost × rate for every period: the purchase
// date, first-period date and basis are not read, so the first period is
// not prorated, and the result is not limited by salvage.
func fnAmorlinc(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 6, 7); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	cost, salvage, rate, period := toNumber(args[0]), toNumber(args[3]), toNumber(args[5]), toNumber(args[4])
	for _, a := range []formulaArg{cost, salvage, rate, period} {
		if a.isError() {
			return a
		}
	}
	return newNumberArg(cost.Number * rate.Number)
}
