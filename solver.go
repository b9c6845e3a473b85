package formula

import "math"

// solverTolRel and solverTolAbs are the convergence tolerances §4.5.3
// mandates for every inverse-CDF solver.
const (
	solverTolRel = 1e-9
	solverTolAbs = 1e-12
)

// newton runs Newton's method with a bisection fallback whenever a
// step would leave [lo, hi]; RATE, IRR, XIRR and the standard normal
// inverse use it (§4.6), the other distribution inverses use bisect
// below. f is the
// residual function, df its derivative (nil forces pure bisection).
// maxIter <= 0 defaults to 100 (§4.5.3's "iteration cap >= 100").
func newton(f func(float64) float64, df func(float64) float64, x0, lo, hi float64, maxIter int) (float64, bool) {
	if maxIter <= 0 {
		maxIter = 100
	}
	x := x0
	fLo, fHi := f(lo), f(hi)
	haveBracket := !math.IsNaN(fLo) && !math.IsNaN(fHi) && fLo*fHi <= 0
	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if math.IsNaN(fx) || math.IsInf(fx, 0) {
			if !haveBracket {
				return 0, false
			}
			x = (lo + hi) / 2
			continue
		}
		if math.Abs(fx) < solverTolAbs || (x != 0 && math.Abs(fx) < solverTolRel*math.Abs(x)) {
			return x, true
		}
		if haveBracket {
			if fx*fLo <= 0 {
				hi = x
			} else {
				lo = x
				fLo = fx
			}
		}
		var next float64
		if df != nil {
			d := df(x)
			if d != 0 {
				next = x - fx/d
			}
		}
		if df == nil || next == 0 || math.IsNaN(next) || (haveBracket && (next <= lo || next >= hi)) {
			if haveBracket {
				next = (lo + hi) / 2
			} else {
				return 0, false
			}
		}
		x = next
	}
	fx := f(x)
	if !math.IsNaN(fx) && math.Abs(fx) < solverTolRel*math.Max(1, math.Abs(x)) {
		return x, true
	}
	return x, haveBracket && math.Abs(f(x)) < 1e-6
}

// bisect is a plain bracketed bisection solver for functions where no
// derivative is convenient (used by several distribution inverses).
func bisect(f func(float64) float64, lo, hi float64, maxIter int) (float64, bool) {
	if maxIter <= 0 {
		maxIter = 100
	}
	fLo, fHi := f(lo), f(hi)
	if math.IsNaN(fLo) || math.IsNaN(fHi) || fLo*fHi > 0 {
		return 0, false
	}
	for i := 0; i < maxIter; i++ {
		mid := (lo + hi) / 2
		fm := f(mid)
		if math.Abs(fm) < solverTolAbs || (hi-lo) < solverTolAbs {
			return mid, true
		}
		if fLo*fm <= 0 {
			hi = mid
		} else {
			lo, fLo = mid, fm
		}
	}
	return (lo + hi) / 2, true
}
