package weight

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

// ErrEmptyInput is returned by ComputeStats when there are no samples.
var ErrEmptyInput = errors.New("weight: no samples to summarize")

// avgPlaces is the number of decimal places kept in Stats.Avg.
const avgPlaces = 1

// Stats summarizes a sample sequence.
type Stats struct {
	Latest float64 `json:"latest"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
}

// ComputeStats derives Stats from samples. Latest is the value of the last
// sample as given; Avg is the mean rounded half away from zero to one
// decimal place.
func ComputeStats(samples []Sample) (Stats, error) {
	if len(samples) == 0 {
		return Stats{}, ErrEmptyInput
	}

	data := stats.Float64Data(Values(samples))
	lo, err := stats.Min(data)
	if err != nil {
		return Stats{}, fmt.Errorf("min: %w", err)
	}
	hi, err := stats.Max(data)
	if err != nil {
		return Stats{}, fmt.Errorf("max: %w", err)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Stats{}, fmt.Errorf("mean: %w", err)
	}
	avg, err := stats.Round(mean, avgPlaces)
	if err != nil {
		return Stats{}, fmt.Errorf("round mean: %w", err)
	}

	return Stats{
		Latest: samples[len(samples)-1].Value,
		Min:    lo,
		Max:    hi,
		Avg:    avg,
	}, nil
}
