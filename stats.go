package formula

import (
	"math"
	"sort"
)

var statsFns map[string]Function

func init() {
	fns := map[string]Function{}
	register(fns, "LARGE", fnLarge)
	register(fns, "SMALL", fnSmall)
	register(fns, "PERCENTILE", fnPercentile)
	register(fns, "PERCENTILE.INC", fnPercentile)
	register(fns, "QUARTILE", fnQuartile)
	register(fns, "QUARTILE.INC", fnQuartile)
	register(fns, "PERCENTILE.EXC", fnPercentileExc)
	register(fns, "QUARTILE.EXC", fnQuartileExc)
	register(fns, "SLOPE", fnSlope)
	register(fns, "INTERCEPT", fnIntercept)
	register(fns, "CORREL", fnCorrel)
	register(fns, "COVARIANCE.P", fnCovarianceP)
	register(fns, "COVARIANCE.S", fnCovarianceS)
	register(fns, "SKEW", fnSkew)
	register(fns, "KURT", fnKurt)
	register(fns, "FREQUENCY", fnFrequency)
	statsFns = fns
}

func sortedNums(args []formulaArg) []float64 {
	nums := numericSkip(args)
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)
	return sorted
}

// fnLarge implements LARGE(array, k) — the k-th largest value
// (§4.5.3, §8 invariant 5: LARGE(A,1) = MAX(A)).
func fnLarge(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	sorted := sortedNums(args[:len(args)-1])
	k := toNumber(args[len(args)-1])
	if k.isError() {
		return k
	}
	ki := int(math.Trunc(k.Number))
	if ki < 1 || ki > len(sorted) {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(sorted[len(sorted)-ki])
}

// fnSmall implements SMALL(array, k) — the k-th smallest value.
func fnSmall(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	sorted := sortedNums(args[:len(args)-1])
	k := toNumber(args[len(args)-1])
	if k.isError() {
		return k
	}
	ki := int(math.Trunc(k.Number))
	if ki < 1 || ki > len(sorted) {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(sorted[ki-1])
}

// percentileInterp applies linear interpolation between ordered
// observations for a percentile p in [0,1] (§4.5.3).
func percentileInterp(sorted []float64, p float64) (float64, bool) {
	n := len(sorted)
	if n == 0 || p < 0 || p > 1 {
		return 0, false
	}
	if n == 1 {
		return sorted[0], true
	}
	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], true
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), true
}

// percentileExcInterp is PERCENTILE.EXC's exclusive-rank variant: the
// rank formula is p*(n+1) rather than p*(n-1), and p must land strictly
// inside the sample so the 0th and 100th percentiles are undefined.
func percentileExcInterp(sorted []float64, p float64) (float64, bool) {
	n := len(sorted)
	if n == 0 || p <= 0 || p >= 1 {
		return 0, false
	}
	rank := p * float64(n+1)
	if rank < 1 || rank > float64(n) {
		return 0, false
	}
	lo := int(math.Floor(rank)) - 1
	hi := int(math.Ceil(rank)) - 1
	if lo == hi {
		return sorted[lo], true
	}
	frac := rank - math.Floor(rank)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), true
}

func fnPercentileExc(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	sorted := sortedNums(args[:len(args)-1])
	p := toNumber(args[len(args)-1])
	if p.isError() {
		return p
	}
	v, ok := percentileExcInterp(sorted, p.Number)
	if !ok {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(v)
}

func fnQuartileExc(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	sorted := sortedNums(args[:len(args)-1])
	q := toNumber(args[len(args)-1])
	if q.isError() {
		return q
	}
	qi := int(math.Trunc(q.Number))
	if qi < 1 || qi > 3 {
		return newErrorArg(formulaErrorNUM)
	}
	v, ok := percentileExcInterp(sorted, float64(qi)/4)
	if !ok {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(v)
}

func fnPercentile(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	sorted := sortedNums(args[:len(args)-1])
	p := toNumber(args[len(args)-1])
	if p.isError() {
		return p
	}
	v, ok := percentileInterp(sorted, p.Number)
	if !ok {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(v)
}

func fnQuartile(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	sorted := sortedNums(args[:len(args)-1])
	q := toNumber(args[len(args)-1])
	if q.isError() {
		return q
	}
	qi := int(math.Trunc(q.Number))
	if qi < 0 || qi > 4 {
		return newErrorArg(formulaErrorNUM)
	}
	v, ok := percentileInterp(sorted, float64(qi)/4)
	if !ok {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(v)
}

// pairedSamples splits two equal-length flattened ranges into parallel
// x/y slices, required by SLOPE/INTERCEPT/CORREL/COVARIANCE (§4.5.3).
func pairedSamples(a, b formulaArg) ([]float64, []float64, bool) {
	xs := flattenRange(a)
	ys := flattenRange(b)
	if len(xs) != len(ys) || len(xs) == 0 {
		return nil, nil, false
	}
	var xv, yv []float64
	for i := range xs {
		xn, yn := xs[i].anchor(), ys[i].anchor()
		if xn.isNumber() && yn.isNumber() {
			xv = append(xv, xn.Number)
			yv = append(yv, yn.Number)
		}
	}
	return xv, yv, true
}

func meanOf(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func sumSqDev(xs []float64, mean float64) float64 {
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss
}

func sumCrossDev(xs, ys []float64, mx, my float64) float64 {
	sum := 0.0
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum
}

func fnSlope(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	ys, xs, ok := pairedSamples(args[0], args[1])
	if !ok || len(xs) < 2 {
		return newErrorArg(formulaErrorDIV)
	}
	mx, my := meanOf(xs), meanOf(ys)
	ssx := sumSqDev(xs, mx)
	if ssx == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(sumCrossDev(xs, ys, mx, my) / ssx)
}

func fnIntercept(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	ys, xs, ok := pairedSamples(args[0], args[1])
	if !ok || len(xs) < 2 {
		return newErrorArg(formulaErrorDIV)
	}
	mx, my := meanOf(xs), meanOf(ys)
	ssx := sumSqDev(xs, mx)
	if ssx == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	slope := sumCrossDev(xs, ys, mx, my) / ssx
	return newNumberArg(my - slope*mx)
}

func fnCorrel(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	xs, ys, ok := pairedSamples(args[0], args[1])
	if !ok || len(xs) < 2 {
		return newErrorArg(formulaErrorDIV)
	}
	mx, my := meanOf(xs), meanOf(ys)
	ssx, ssy := sumSqDev(xs, mx), sumSqDev(ys, my)
	if ssx == 0 || ssy == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(sumCrossDev(xs, ys, mx, my) / math.Sqrt(ssx*ssy))
}

func fnCovarianceP(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	xs, ys, ok := pairedSamples(args[0], args[1])
	if !ok || len(xs) < 1 {
		return newErrorArg(formulaErrorDIV)
	}
	mx, my := meanOf(xs), meanOf(ys)
	return newNumberArg(sumCrossDev(xs, ys, mx, my) / float64(len(xs)))
}

func fnCovarianceS(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	xs, ys, ok := pairedSamples(args[0], args[1])
	if !ok || len(xs) < 2 {
		return newErrorArg(formulaErrorDIV)
	}
	mx, my := meanOf(xs), meanOf(ys)
	return newNumberArg(sumCrossDev(xs, ys, mx, my) / float64(len(xs)-1))
}

// fnSkew implements SKEW (§4.5.3): sample bias-corrected skewness.
func fnSkew(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericSkip(args)
	n := len(nums)
	if n < 3 {
		return newErrorArg(formulaErrorDIV)
	}
	mean := meanOf(nums)
	sd, ok := variance(nums, true)
	if !ok || sd == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	stdev := math.Sqrt(sd)
	sum := 0.0
	for _, x := range nums {
		d := (x - mean) / stdev
		sum += d * d * d
	}
	nf := float64(n)
	factor := nf / ((nf - 1) * (nf - 2))
	return guardFinite(factor * sum)
}

// fnKurt implements KURT (§4.5.3): excess kurtosis (normal -> 0).
func fnKurt(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericSkip(args)
	n := len(nums)
	if n < 4 {
		return newErrorArg(formulaErrorDIV)
	}
	mean := meanOf(nums)
	sd, ok := variance(nums, true)
	if !ok || sd == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	stdev := math.Sqrt(sd)
	sum := 0.0
	for _, x := range nums {
		d := (x - mean) / stdev
		sum += d * d * d * d
	}
	nf := float64(n)
	term1 := (nf * (nf + 1)) / ((nf - 1) * (nf - 2) * (nf - 3))
	term2 := 3 * (nf - 1) * (nf - 1) / ((nf - 2) * (nf - 3))
	return guardFinite(term1*sum - term2)
}

// fnFrequency implements FREQUENCY(data, bins) (§4.5.3): right-closed
// bins, bins[i-1] < x <= bins[i], with an implicit bins[-1] = -inf.
func fnFrequency(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	data := numericSkip([]formulaArg{args[0]})
	bins := numericSkip([]formulaArg{args[1]})
	sortedBins := append([]float64(nil), bins...)
	sort.Float64s(sortedBins)
	counts := make([]int, len(sortedBins)+1)
	for _, x := range data {
		placed := false
		for i, b := range sortedBins {
			if x <= b {
				counts[i]++
				placed = true
				break
			}
		}
		if !placed {
			counts[len(sortedBins)]++
		}
	}
	rows := make([][]formulaArg, len(counts))
	for i, c := range counts {
		rows[i] = []formulaArg{newNumberArg(float64(c))}
	}
	return newArrayArg(rows)
}
