package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewtonFindsRootOfLinear(t *testing.T) {
	// f(x) = 2x - 4, root at x = 2
	f := func(x float64) float64 { return 2*x - 4 }
	df := func(x float64) float64 { return 2 }
	root, ok := newton(f, df, 0, -100, 100, 0)
	assert.True(t, ok)
	assert.InDelta(t, 2, root, 1e-6)
}

func TestNewtonFindsRootOfQuadraticWithBracket(t *testing.T) {
	// f(x) = x^2 - 4, positive root at x = 2, bracketed in [0, 10]
	f := func(x float64) float64 { return x*x - 4 }
	df := func(x float64) float64 { return 2 * x }
	root, ok := newton(f, df, 5, 0, 10, 0)
	assert.True(t, ok)
	assert.InDelta(t, 2, root, 1e-6)
}

func TestNewtonFallsBackToBisectionWithoutDerivative(t *testing.T) {
	f := func(x float64) float64 { return x*x - 4 }
	root, ok := newton(f, nil, 5, 0, 10, 100)
	assert.True(t, ok)
	assert.InDelta(t, 2, root, 1e-4)
}

func TestBisectFindsRoot(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - 8 }
	root, ok := bisect(f, 0, 10, 100)
	assert.True(t, ok)
	assert.InDelta(t, 2, root, 1e-6)
}

func TestBisectRejectsUnbracketedInterval(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	_, ok := bisect(f, -10, 10, 100)
	assert.False(t, ok)
}

func TestBisectConvergesWithinMaxIter(t *testing.T) {
	f := func(x float64) float64 { return math.Cos(x) }
	root, ok := bisect(f, 0, 3, 100)
	assert.True(t, ok)
	assert.InDelta(t, math.Pi/2, root, 1e-6)
}
