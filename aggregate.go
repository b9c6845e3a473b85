package formula

import (
	"math"
	"sort"
)

var aggregateFns map[string]Function

func init() {
	fns := map[string]Function{}
	register(fns, "AVERAGE", fnAverage)
	register(fns, "MIN", fnMin)
	register(fns, "MAX", fnMax)
	register(fns, "COUNT", fnCount)
	register(fns, "COUNTA", fnCountA)
	register(fns, "STDEV.S", fnStdevS)
	register(fns, "STDEV.P", fnStdevP)
	register(fns, "VAR.S", fnVarS)
	register(fns, "VAR.P", fnVarP)
	register(fns, "MEDIAN", fnMedian)
	register(fns, "MODE.SNGL", fnModeSngl)
	register(fns, "MODE.MULT", fnModeMult)
	register(fns, "AVERAGEA", fnAverageA)
	register(fns, "MINA", fnMinA)
	register(fns, "MAXA", fnMaxA)
	register(fns, "STDEVA", fnStdevA)
	register(fns, "STDEVPA", fnStdevPA)
	register(fns, "VARA", fnVarA)
	register(fns, "VARPA", fnVarPA)
	register(fns, "SUBTOTAL", fnSubtotal)
	register(fns, "AGGREGATE", fnAggregate)
	aggregateFns = fns
}

// numericSkip coerces the flattened arguments, silently skipping text
// and booleans (§4.5.2 "skip text/booleans silently") as well as
// empty cells.
func numericSkip(args []formulaArg) []float64 {
	flat := flattenArgs(args)
	out := make([]float64, 0, len(flat))
	for _, a := range flat {
		anchor := a.anchor()
		if anchor.isNumber() {
			out = append(out, anchor.Number)
		}
	}
	return out
}

// numericWithA coerces the flattened arguments including text as 0 and
// booleans as 1/0 (the *A family, §4.5.2), skipping only Empty.
func numericWithA(args []formulaArg) []float64 {
	flat := flattenArgs(args)
	out := make([]float64, 0, len(flat))
	for _, a := range flat {
		anchor := a.anchor()
		switch anchor.Type {
		case ArgNumber:
			out = append(out, anchor.Number)
		case ArgBoolean:
			if anchor.Boolean {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		case ArgText:
			out = append(out, 0)
		}
	}
	return out
}

func fnAverage(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericSkip(args)
	if len(nums) == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return newNumberArg(sum / float64(len(nums)))
}

func fnAverageA(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericWithA(args)
	if len(nums) == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return newNumberArg(sum / float64(len(nums)))
}

func fnMin(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericSkip(args)
	if len(nums) == 0 {
		return newNumberArg(0)
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n < m {
			m = n
		}
	}
	return newNumberArg(m)
}

func fnMinA(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericWithA(args)
	if len(nums) == 0 {
		return newNumberArg(0)
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n < m {
			m = n
		}
	}
	return newNumberArg(m)
}

func fnMax(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericSkip(args)
	if len(nums) == 0 {
		return newNumberArg(0)
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n > m {
			m = n
		}
	}
	return newNumberArg(m)
}

func fnMaxA(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericWithA(args)
	if len(nums) == 0 {
		return newNumberArg(0)
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n > m {
			m = n
		}
	}
	return newNumberArg(m)
}

func fnCount(ctx CalcContext, args []formulaArg) formulaArg {
	return newNumberArg(float64(len(numericSkip(args))))
}

func fnCountA(ctx CalcContext, args []formulaArg) formulaArg {
	flat := flattenArgs(args)
	n := 0
	for _, a := range flat {
		if !a.anchor().isEmpty() {
			n++
		}
	}
	return newNumberArg(float64(n))
}

func variance(nums []float64, sample bool) (float64, bool) {
	denom := len(nums)
	if sample {
		denom--
	}
	if denom <= 0 {
		return 0, false
	}
	mean := 0.0
	for _, n := range nums {
		mean += n
	}
	mean /= float64(len(nums))
	ss := 0.0
	for _, n := range nums {
		d := n - mean
		ss += d * d
	}
	return ss / float64(denom), true
}

func fnVarS(ctx CalcContext, args []formulaArg) formulaArg {
	v, ok := variance(numericSkip(args), true)
	if !ok {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(v)
}

func fnVarP(ctx CalcContext, args []formulaArg) formulaArg {
	v, ok := variance(numericSkip(args), false)
	if !ok {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(v)
}

func fnVarA(ctx CalcContext, args []formulaArg) formulaArg {
	v, ok := variance(numericWithA(args), true)
	if !ok {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(v)
}

func fnVarPA(ctx CalcContext, args []formulaArg) formulaArg {
	v, ok := variance(numericWithA(args), false)
	if !ok {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(v)
}

func fnStdevS(ctx CalcContext, args []formulaArg) formulaArg {
	v, ok := variance(numericSkip(args), true)
	if !ok {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(math.Sqrt(v))
}

func fnStdevP(ctx CalcContext, args []formulaArg) formulaArg {
	v, ok := variance(numericSkip(args), false)
	if !ok {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(math.Sqrt(v))
}

func fnStdevA(ctx CalcContext, args []formulaArg) formulaArg {
	v, ok := variance(numericWithA(args), true)
	if !ok {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(math.Sqrt(v))
}

func fnStdevPA(ctx CalcContext, args []formulaArg) formulaArg {
	v, ok := variance(numericWithA(args), false)
	if !ok {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(math.Sqrt(v))
}

func fnMedian(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericSkip(args)
	if len(nums) == 0 {
		return newErrorArg(formulaErrorNUM)
	}
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return newNumberArg(sorted[mid])
	}
	return newNumberArg((sorted[mid-1] + sorted[mid]) / 2)
}

func modeCounts(nums []float64) map[float64]int {
	counts := map[float64]int{}
	for _, n := range nums {
		counts[n]++
	}
	return counts
}

func fnModeSngl(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericSkip(args)
	if len(nums) == 0 {
		return newErrorArg(formulaErrorNA)
	}
	counts := modeCounts(nums)
	best, bestCount := 0.0, 0
	for _, n := range nums {
		if c := counts[n]; c > bestCount {
			best, bestCount = n, c
		}
	}
	if bestCount < 2 {
		return newErrorArg(formulaErrorNA)
	}
	return newNumberArg(best)
}

func fnModeMult(ctx CalcContext, args []formulaArg) formulaArg {
	nums := numericSkip(args)
	if len(nums) == 0 {
		return newErrorArg(formulaErrorNA)
	}
	counts := modeCounts(nums)
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount < 2 {
		return newErrorArg(formulaErrorNA)
	}
	var modes []float64
	seen := map[float64]bool{}
	for _, n := range nums {
		if counts[n] == maxCount && !seen[n] {
			modes = append(modes, n)
			seen[n] = true
		}
	}
	rows := make([][]formulaArg, len(modes))
	for i, m := range modes {
		rows[i] = []formulaArg{newNumberArg(m)}
	}
	return newArrayArg(rows)
}

// fnSubtotal implements SUBTOTAL(code, ...) (§4.5.2); codes 101..111
// collapse onto 1..11 per the DESIGN.md open-question decision.
func fnSubtotal(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, -1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	code := toNumber(args[0])
	if code.isError() {
		return code
	}
	c := int(math.Trunc(code.Number))
	if c > 100 {
		c -= 100
	}
	data := args[1:]
	switch c {
	case 1:
		return fnAverage(ctx, data)
	case 2:
		return fnCount(ctx, data)
	case 3:
		return fnCountA(ctx, data)
	case 4:
		return fnMax(ctx, data)
	case 5:
		return fnMin(ctx, data)
	case 6:
		return fnProduct(ctx, data)
	case 7:
		return fnStdevS(ctx, data)
	case 8:
		return fnStdevP(ctx, data)
	case 9:
		return fnSum(ctx, data)
	case 10:
		return fnVarS(ctx, data)
	case 11:
		return fnVarP(ctx, data)
	default:
		return newErrorArg(formulaErrorVALUE)
	}
}

// fnAggregate implements AGGREGATE(fn, opt, ...) (§4.5.2, §7 item 2).
// This is registered as error-aware (registry.go) so the generic
// positional error scan never runs ahead of the ignore-errors option.
func fnAggregate(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 3, -1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	fnCode := toNumber(args[0])
	if fnCode.isError() {
		return fnCode
	}
	optCode := toNumber(args[1])
	if optCode.isError() {
		return optCode
	}
	fc := int(math.Trunc(fnCode.Number))
	opt := int(math.Trunc(optCode.Number))
	if fc < 1 || fc > 19 || opt < 0 || opt > 7 {
		return newErrorArg(formulaErrorVALUE)
	}
	data := args[2:]
	ignoreErrors := opt == 2 || opt == 3 || opt == 6 || opt == 7
	if !ignoreErrors {
		if e, found := firstError(data); found {
			return e
		}
	} else {
		filtered := make([]formulaArg, 0, len(data))
		for _, a := range flattenArgs(data) {
			if !a.anchor().isError() {
				filtered = append(filtered, a)
			}
		}
		data = filtered
	}
	switch fc {
	case 1:
		return fnAverage(ctx, data)
	case 2:
		return fnCount(ctx, data)
	case 3:
		return fnCountA(ctx, data)
	case 4:
		return fnMax(ctx, data)
	case 5:
		return fnMin(ctx, data)
	case 6:
		return fnProduct(ctx, data)
	case 7:
		return fnStdevS(ctx, data)
	case 8:
		return fnStdevP(ctx, data)
	case 9:
		return fnSum(ctx, data)
	case 10:
		return fnVarS(ctx, data)
	case 11:
		return fnVarP(ctx, data)
	case 12:
		return fnMedian(ctx, data)
	case 13:
		return fnModeSngl(ctx, data)
	case 14:
		return fnLarge(ctx, data)
	case 15:
		return fnSmall(ctx, data)
	case 16:
		return fnPercentile(ctx, data)
	case 17:
		return fnQuartile(ctx, data)
	case 18:
		return fnPercentileExc(ctx, data)
	case 19:
		return fnQuartileExc(ctx, data)
	default:
		return newErrorArg(formulaErrorVALUE)
	}
}
