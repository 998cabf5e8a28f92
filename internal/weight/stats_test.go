package weight

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func series(values ...float64) []Sample {
	start := day("2024-01-01")
	out := make([]Sample, len(values))
	for i, v := range values {
		out[i] = Sample{Date: start.AddDate(0, 0, i), Value: v, Unit: "kg"}
	}
	return out
}

func TestComputeStats_Example(t *testing.T) {
	got, err := ComputeStats([]Sample{
		{Date: day("2024-01-01"), Value: 80.0},
		{Date: day("2024-01-02"), Value: 79.5},
		{Date: day("2024-01-03"), Value: 79.0},
	})
	require.NoError(t, err)
	assert.Equal(t, Stats{Latest: 79.0, Min: 79.0, Max: 80.0, Avg: 79.5}, got)
}

func TestComputeStats_Empty(t *testing.T) {
	_, err := ComputeStats(nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestComputeStats_SingleSample(t *testing.T) {
	got, err := ComputeStats(series(72.34))
	require.NoError(t, err)
	assert.Equal(t, 72.34, got.Latest)
	assert.Equal(t, 72.34, got.Min)
	assert.Equal(t, 72.34, got.Max)
	assert.Equal(t, 72.3, got.Avg)
}

func TestComputeStats_RoundsHalfAwayFromZero(t *testing.T) {
	got, err := ComputeStats(series(1.25, 1.25))
	require.NoError(t, err)
	assert.Equal(t, 1.3, got.Avg)

	got, err = ComputeStats(series(-1.25, -1.25))
	require.NoError(t, err)
	assert.Equal(t, -1.3, got.Avg)
}

func TestComputeStats_Bounds(t *testing.T) {
	inputs := [][]float64{
		{81.2, 80.9, 82.4, 79.9, 80.0},
		{70},
		{100, 50, 75, 60, 90, 88.8},
		{65.55, 65.56, 65.54},
	}
	for _, vals := range inputs {
		got, err := ComputeStats(series(vals...))
		require.NoError(t, err)
		// Avg is rounded to 0.1 so it may overshoot the extremes by at most 0.05.
		assert.LessOrEqual(t, got.Min, got.Avg+0.05, "%v", vals)
		assert.LessOrEqual(t, got.Avg-0.05, got.Max, "%v", vals)
		assert.Equal(t, vals[len(vals)-1], got.Latest)
	}
}

func TestComputeStats_Idempotent(t *testing.T) {
	in := series(90.1, 89.7, 89.9, 88.4)
	a, err := ComputeStats(in)
	require.NoError(t, err)
	b, err := ComputeStats(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, series(90.1, 89.7, 89.9, 88.4), in, "input must not be mutated")
}

func TestCheckOrder(t *testing.T) {
	assert.NoError(t, CheckOrder(nil))
	assert.NoError(t, CheckOrder(series(1, 2, 3)))

	dup := []Sample{{Date: day("2024-02-01"), Value: 1}, {Date: day("2024-02-01"), Value: 2}}
	assert.NoError(t, CheckOrder(dup), "equal dates are non-decreasing")

	bad := []Sample{
		{Date: day("2024-02-01")},
		{Date: day("2024-02-03")},
		{Date: day("2024-02-02")},
	}
	err := CheckOrder(bad)
	var oerr *OrderError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, 2, oerr.Index)
	assert.Contains(t, err.Error(), "2024-02-02 after 2024-02-03")
}
