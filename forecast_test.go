package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFnForecastLinear(t *testing.T) {
	ys := newArrayArg([][]formulaArg{{newNumberArg(2), newNumberArg(4), newNumberArg(6), newNumberArg(8)}})
	xs := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2), newNumberArg(3), newNumberArg(4)}})
	got := callMath(t, "FORECAST", newNumberArg(5), ys, xs)
	assert.InDelta(t, 10, got.Number, 1e-9)
}

func TestFnTrendDefaultXsAndNewXs(t *testing.T) {
	ys := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2), newNumberArg(3), newNumberArg(4)}})
	got := callMath(t, "TREND", ys)
	assert.Equal(t, ArgArray, got.Type)
	assert.Equal(t, 4, got.Shape.Rows)
	assert.InDelta(t, 1, got.Array[0][0].Number, 1e-9)
	assert.InDelta(t, 4, got.Array[3][0].Number, 1e-9)
}

func TestFnTrendRequiresAtLeastTwoPoints(t *testing.T) {
	got := callMath(t, "TREND", newNumberArg(1))
	assert.True(t, got.isError())
}

func TestBuildSeriesInfersStepAndFillsGaps(t *testing.T) {
	values := []float64{1, 2, 3, 5}
	timeline := []float64{1, 2, 3, 5} // x=4 is missing
	series, ok := buildSeries(values, timeline, 1, 1)
	assert.True(t, ok)
	assert.Equal(t, float64(1), series.step)
	assert.Len(t, series.y, 5)
	assert.InDelta(t, 4, series.y[3], 1e-9) // linear-filled gap at x=4
}

func TestBuildSeriesRejectsTooFewPoints(t *testing.T) {
	_, ok := buildSeries([]float64{1}, []float64{1}, 1, 1)
	assert.False(t, ok)
}

func TestDetectSeasonalityFindsPeriodicPattern(t *testing.T) {
	y := make([]float64, 0, 12)
	for i := 0; i < 3; i++ {
		y = append(y, 1, 2, 3, 4)
	}
	period := detectSeasonality(y)
	assert.Equal(t, 4, period)
}

func TestDetectSeasonalityNoPatternReturnsZero(t *testing.T) {
	y := []float64{1, 1, 1, 1, 1, 1}
	period := detectSeasonality(y)
	assert.Equal(t, 0, period)
}

func TestFnForecastETSRejectsTargetBeforeSeriesEnd(t *testing.T) {
	values := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2), newNumberArg(3), newNumberArg(4)}})
	timeline := newArrayArg([][]formulaArg{{newNumberArg(1), newNumberArg(2), newNumberArg(3), newNumberArg(4)}})
	got := callMath(t, "FORECAST.ETS", newNumberArg(2), values, timeline)
	assert.True(t, got.isError())
	assert.Equal(t, formulaErrorNA, got.Err)
}

func TestMaeSmapeMaseZeroLength(t *testing.T) {
	assert.Equal(t, float64(0), mae(nil))
	assert.Equal(t, float64(0), smape(nil, nil))
	assert.Equal(t, float64(0), mase([]float64{1}, nil))
}
