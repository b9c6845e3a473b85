package formula

import "math"

// Math and Trigonometric functions (§4.5.1). Most functions here carry
// no doc comment: they are mechanical enough that a paragraph of
// rationale would be padding; only the shared helpers and the few
// functions with a non-obvious rule are documented.

func init() {
	fns := map[string]Function{}
	register(fns, "ABS", fnAbs)
	register(fns, "SQRT", fnSqrt)
	register(fns, "EXP", fnExp)
	register(fns, "LN", fnLn)
	register(fns, "LOG", fnLog)
	register(fns, "LOG10", fnLog10)
	register(fns, "SIN", unaryMath(math.Sin))
	register(fns, "COS", unaryMath(math.Cos))
	register(fns, "TAN", unaryMath(math.Tan))
	register(fns, "PI", fnPi)
	register(fns, "INT", fnInt)
	register(fns, "TRUNC", fnTrunc)
	register(fns, "SIGN", fnSign)
	register(fns, "POWER", fnPower)
	register(fns, "SUM", fnSum)
	register(fns, "PRODUCT", fnProduct)
	register(fns, "SUMPRODUCT", fnSumProduct)
	register(fns, "ROUND", fnRound)
	register(fns, "ROUNDUP", fnRoundUp)
	register(fns, "ROUNDDOWN", fnRoundDown)
	register(fns, "MROUND", fnMRound)
	register(fns, "CEILING.MATH", fnCeilingMath)
	register(fns, "FLOOR.MATH", fnFloorMath)
	register(fns, "CEILING.PRECISE", fnCeilingPrecise)
	register(fns, "FLOOR.PRECISE", fnFloorPrecise)
	register(fns, "ISO.CEILING", fnCeilingPrecise)
	register(fns, "MOD", fnMod)
	register(fns, "QUOTIENT", fnQuotient)
	register(fns, "FACT", fnFact)
	register(fns, "FACTDOUBLE", fnFactDouble)
	register(fns, "COMBIN", fnCombin)
	register(fns, "PERMUT", fnPermut)
	register(fns, "COMBINA", fnCombinA)
	register(fns, "GCD", fnGCD)
	register(fns, "LCM", fnLCM)
	register(fns, "EVEN", fnEven)
	register(fns, "ODD", fnOdd)
	register(fns, "RAND", fnRand)
	register(fns, "RANDBETWEEN", fnRandBetween)
	register(fns, "PERCENTOF", fnPercentOf)
	mathFns = fns
}

var mathFns map[string]Function

func unaryMath(f func(float64) float64) Function {
	return func(ctx CalcContext, args []formulaArg) formulaArg {
		if _, ok := checkArity(len(args), 1, 1); !ok {
			return newErrorArg(formulaErrorVALUE)
		}
		v := toNumber(args[0])
		if v.isError() {
			return v
		}
		return newNumberArg(f(v.Number))
	}
}

func fnAbs(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	return newNumberArg(math.Abs(v.Number))
}

func fnSqrt(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	if v.Number < 0 {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(math.Sqrt(v.Number))
}

func fnExp(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	return guardFinite(math.Exp(v.Number))
}

func fnLn(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	if v.Number <= 0 {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(math.Log(v.Number))
}

func fnLog10(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	if v.Number <= 0 {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(math.Log10(v.Number))
}

func fnLog(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	base := 10.0
	if len(args) == 2 {
		b := toNumber(args[1])
		if b.isError() {
			return b
		}
		base = b.Number
	}
	if v.Number <= 0 || base <= 0 || base == 1 {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(math.Log(v.Number) / math.Log(base))
}

func fnPi(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 0, 0); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newNumberArg(math.Pi)
}

func fnInt(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	return newNumberArg(math.Floor(v.Number))
}

func fnTrunc(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	digits := 0.0
	if len(args) == 2 {
		d := toNumber(args[1])
		if d.isError() {
			return d
		}
		digits = math.Trunc(d.Number)
	}
	scale := math.Pow(10, digits)
	return newNumberArg(math.Trunc(v.Number*scale) / scale)
}

func fnSign(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	switch {
	case v.Number > 0:
		return newNumberArg(1)
	case v.Number < 0:
		return newNumberArg(-1)
	default:
		return newNumberArg(0)
	}
}

func fnPower(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	x := toNumber(args[0])
	if x.isError() {
		return x
	}
	y := toNumber(args[1])
	if y.isError() {
		return y
	}
	if x.Number == 0 && y.Number == 0 {
		return newErrorArg(formulaErrorNUM)
	}
	if x.Number == 0 && y.Number < 0 {
		return newErrorArg(formulaErrorDIV)
	}
	return guardFinite(math.Pow(x.Number, y.Number))
}

// guardFinite implements §3.1/§7's "recover from floating point domain
// issues": NaN/Inf intermediates become #NUM!, never a finite-looking
// but meaningless number (§8 invariant 2).
func guardFinite(v float64) formulaArg {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(v)
}

// numericFold coerces each flattened argument with to_number, skipping
// Empty (§4.5.1 "empty skipped"); a non-numeric Text argument
// propagates #VALUE! per SUM/PRODUCT/SUMPRODUCT's stated rule.
func numericFold(args []formulaArg) ([]float64, formulaArg) {
	flat := flattenArgs(args)
	out := make([]float64, 0, len(flat))
	for _, a := range flat {
		if a.anchor().isEmpty() {
			continue
		}
		n := toNumber(a)
		if n.isError() {
			return nil, n
		}
		out = append(out, n.Number)
	}
	return out, formulaArg{}
}

func fnSum(ctx CalcContext, args []formulaArg) formulaArg {
	nums, errArg := numericFold(args)
	if errArg.isError() {
		return errArg
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return newNumberArg(sum)
}

func fnProduct(ctx CalcContext, args []formulaArg) formulaArg {
	nums, errArg := numericFold(args)
	if errArg.isError() {
		return errArg
	}
	product := 1.0
	for _, n := range nums {
		product *= n
	}
	return newNumberArg(product)
}

// fnSumProduct pairs up equal-length flattened ranges positionally and
// sums the products; with one argument it behaves like SUM.
func fnSumProduct(ctx CalcContext, args []formulaArg) formulaArg {
	if len(args) == 0 {
		return newErrorArg(formulaErrorVALUE)
	}
	cols := make([][]formulaArg, len(args))
	n := -1
	for i, a := range args {
		if a.Type == ArgArray {
			flat := flattenArgs([]formulaArg{a})
			cols[i] = flat
		} else {
			cols[i] = []formulaArg{a}
		}
		if n == -1 {
			n = len(cols[i])
		} else if len(cols[i]) != n {
			return newErrorArg(formulaErrorVALUE)
		}
	}
	sum := 0.0
	for row := 0; row < n; row++ {
		product := 1.0
		for _, col := range cols {
			v := toNumber(col[row])
			if v.isError() {
				return v
			}
			product *= v.Number
		}
		sum += product
	}
	return newNumberArg(sum)
}

// roundHalfAwayFromZero rounds to the given number of decimal digits
// using "round half away from zero" (§4.5.1).
func roundHalfAwayFromZero(x float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	if x >= 0 {
		return math.Floor(x*scale+0.5) / scale
	}
	return -math.Floor(-x*scale+0.5) / scale
}

func fnRound(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	d := toNumber(args[1])
	if d.isError() {
		return d
	}
	return newNumberArg(roundHalfAwayFromZero(v.Number, int(math.Trunc(d.Number))))
}

func fnRoundUp(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	d := toNumber(args[1])
	if d.isError() {
		return d
	}
	scale := math.Pow(10, math.Trunc(d.Number))
	if v.Number >= 0 {
		return newNumberArg(math.Ceil(v.Number*scale) / scale)
	}
	return newNumberArg(math.Floor(v.Number*scale) / scale)
}

func fnRoundDown(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	d := toNumber(args[1])
	if d.isError() {
		return d
	}
	scale := math.Pow(10, math.Trunc(d.Number))
	return newNumberArg(math.Trunc(v.Number*scale) / scale)
}

func fnMRound(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	x := toNumber(args[0])
	if x.isError() {
		return x
	}
	m := toNumber(args[1])
	if m.isError() {
		return m
	}
	if m.Number == 0 {
		return newErrorArg(formulaErrorNUM)
	}
	if (x.Number < 0) != (m.Number < 0) && x.Number != 0 {
		return newErrorArg(formulaErrorNUM)
	}
	return newNumberArg(math.Round(x.Number/m.Number) * m.Number)
}

func fnCeilingMath(ctx CalcContext, args []formulaArg) formulaArg {
	return ceilFloorMath(args, true)
}

func fnFloorMath(ctx CalcContext, args []formulaArg) formulaArg {
	return ceilFloorMath(args, false)
}

func ceilFloorMath(args []formulaArg, ceiling bool) formulaArg {
	if _, ok := checkArity(len(args), 1, 3); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	sig := 1.0
	if v.Number < 0 {
		sig = -1
	}
	if len(args) > 1 {
		s := toNumber(args[1])
		if s.isError() {
			return s
		}
		if s.Number != 0 {
			sig = s.Number
		}
	}
	mode := 0.0
	if len(args) > 2 {
		m := toNumber(args[2])
		if m.isError() {
			return m
		}
		mode = m.Number
	}
	sig = math.Abs(sig)
	if sig == 0 {
		return newNumberArg(0)
	}
	n := v.Number / sig
	var rounded float64
	if ceiling {
		rounded = math.Ceil(n)
		if v.Number < 0 && mode == 0 {
			rounded = math.Floor(n)
		}
	} else {
		rounded = math.Floor(n)
		if v.Number < 0 && mode != 0 {
			rounded = math.Ceil(n)
		}
	}
	return newNumberArg(rounded * sig)
}

func fnCeilingPrecise(ctx CalcContext, args []formulaArg) formulaArg {
	return precise(args, true)
}

func fnFloorPrecise(ctx CalcContext, args []formulaArg) formulaArg {
	return precise(args, false)
}

func precise(args []formulaArg, ceiling bool) formulaArg {
	if _, ok := checkArity(len(args), 1, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	sig := 1.0
	if len(args) > 1 {
		s := toNumber(args[1])
		if s.isError() {
			return s
		}
		sig = s.Number
	}
	sig = math.Abs(sig)
	if sig == 0 {
		return newNumberArg(0)
	}
	n := v.Number / sig
	if ceiling {
		return newNumberArg(math.Ceil(n) * sig)
	}
	return newNumberArg(math.Floor(n) * sig)
}

func fnMod(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	x := toNumber(args[0])
	if x.isError() {
		return x
	}
	y := toNumber(args[1])
	if y.isError() {
		return y
	}
	if y.Number == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	r := math.Mod(x.Number, y.Number)
	if r != 0 && (r < 0) != (y.Number < 0) {
		r += y.Number
	}
	return newNumberArg(r)
}

func fnQuotient(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	x := toNumber(args[0])
	if x.isError() {
		return x
	}
	y := toNumber(args[1])
	if y.isError() {
		return y
	}
	if y.Number == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(math.Trunc(x.Number / y.Number))
}

func factorial(n float64) float64 {
	n = math.Trunc(n)
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
	}
	return result
}

func fnFact(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	if v.Number < 0 {
		return newErrorArg(formulaErrorNUM)
	}
	return guardFinite(factorial(v.Number))
}

func fnFactDouble(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	n := math.Trunc(v.Number)
	if n < 0 {
		return newErrorArg(formulaErrorNUM)
	}
	if n == 0 || n == 1 {
		return newNumberArg(1)
	}
	result := 1.0
	for i := n; i > 1; i -= 2 {
		result *= i
	}
	return guardFinite(result)
}

func fnCombin(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	n, k, errArg := truncPair(args)
	if errArg.isError() {
		return errArg
	}
	if n < 0 || k < 0 || k > n {
		return newErrorArg(formulaErrorNUM)
	}
	return guardFinite(factorial(n) / (factorial(k) * factorial(n-k)))
}

func fnPermut(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	n, k, errArg := truncPair(args)
	if errArg.isError() {
		return errArg
	}
	if n < 0 || k < 0 || k > n {
		return newErrorArg(formulaErrorNUM)
	}
	return guardFinite(factorial(n) / factorial(n-k))
}

func fnCombinA(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	n, k, errArg := truncPair(args)
	if errArg.isError() {
		return errArg
	}
	if n < 0 || k < 0 {
		return newErrorArg(formulaErrorNUM)
	}
	return guardFinite(factorial(n+k-1) / (factorial(k) * factorial(n-1)))
}

func truncPair(args []formulaArg) (float64, float64, formulaArg) {
	a := toNumber(args[0])
	if a.isError() {
		return 0, 0, a
	}
	b := toNumber(args[1])
	if b.isError() {
		return 0, 0, b
	}
	return math.Trunc(a.Number), math.Trunc(b.Number), formulaArg{}
}

func gcdTwo(a, b float64) float64 {
	a, b = math.Abs(math.Trunc(a)), math.Abs(math.Trunc(b))
	for b != 0 {
		a, b = b, math.Mod(a, b)
	}
	return a
}

func lcmTwo(a, b float64) float64 {
	a, b = math.Trunc(a), math.Trunc(b)
	if a == 0 || b == 0 {
		return 0
	}
	return math.Abs(a * b / gcdTwo(a, b))
}

func fnGCD(ctx CalcContext, args []formulaArg) formulaArg {
	nums, errArg := variadicNonNegative(args)
	if errArg.isError() {
		return errArg
	}
	cd := nums[0]
	for _, n := range nums[1:] {
		cd = gcdTwo(cd, n)
	}
	return newNumberArg(cd)
}

func fnLCM(ctx CalcContext, args []formulaArg) formulaArg {
	nums, errArg := variadicNonNegative(args)
	if errArg.isError() {
		return errArg
	}
	cm := nums[0]
	for _, n := range nums[1:] {
		cm = lcmTwo(cm, n)
	}
	return guardFinite(cm)
}

func variadicNonNegative(args []formulaArg) ([]float64, formulaArg) {
	flat := flattenArgs(args)
	if len(flat) == 0 {
		return nil, newErrorArg(formulaErrorVALUE)
	}
	nums := make([]float64, 0, len(flat))
	for _, a := range flat {
		if a.anchor().isEmpty() {
			continue
		}
		n := toNumber(a)
		if n.isError() {
			return nil, n
		}
		if n.Number < 0 {
			return nil, newErrorArg(formulaErrorNUM)
		}
		nums = append(nums, n.Number)
	}
	if len(nums) == 0 {
		return nil, newErrorArg(formulaErrorVALUE)
	}
	return nums, formulaArg{}
}

func fnEven(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	if v.Number == 0 {
		return newNumberArg(0)
	}
	sign := 1.0
	n := v.Number
	if n < 0 {
		sign, n = -1, -n
	}
	rounded := math.Ceil(n)
	if math.Mod(rounded, 2) != 0 {
		rounded++
	}
	return newNumberArg(sign * rounded)
}

func fnOdd(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 1, 1); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	v := toNumber(args[0])
	if v.isError() {
		return v
	}
	if v.Number == 0 {
		return newNumberArg(1)
	}
	sign := 1.0
	n := v.Number
	if n < 0 {
		sign, n = -1, -n
	}
	rounded := math.Ceil(n)
	if math.Mod(rounded, 2) == 0 {
		rounded++
	}
	return newNumberArg(sign * rounded)
}

func fnRand(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 0, 0); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	return newNumberArg(ctx.Entropy())
}

func fnRandBetween(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	a := toNumber(args[0])
	if a.isError() {
		return a
	}
	b := toNumber(args[1])
	if b.isError() {
		return b
	}
	lo, hi := math.Ceil(a.Number), math.Floor(b.Number)
	if lo > hi {
		return newErrorArg(formulaErrorNUM)
	}
	span := hi - lo + 1
	return newNumberArg(lo + math.Floor(ctx.Entropy()*span))
}

// PERCENTOF implements subset/total (§4.5.10).
func fnPercentOf(ctx CalcContext, args []formulaArg) formulaArg {
	if _, ok := checkArity(len(args), 2, 2); !ok {
		return newErrorArg(formulaErrorVALUE)
	}
	subset := toNumber(args[0])
	if subset.isError() {
		return subset
	}
	total := toNumber(args[1])
	if total.isError() {
		return total
	}
	if total.Number == 0 {
		return newErrorArg(formulaErrorDIV)
	}
	return newNumberArg(subset.Number / total.Number)
}
