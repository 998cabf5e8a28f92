package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/Zachkp/portfolio/internal/weight"
)

// weightRecord is one element of the weight endpoint response. Older
// deployments send "value" instead of "weight".
type weightRecord struct {
	Date   string   `json:"date"`
	Weight *float64 `json:"weight"`
	Value  *float64 `json:"value"`
	Unit   string   `json:"unit"`
}

func (r weightRecord) toSample() (weight.Sample, error) {
	d, err := time.Parse(weight.DateLayout, r.Date)
	if err != nil {
		// Accept full timestamps too.
		if d, err = time.Parse(time.RFC3339, r.Date); err != nil {
			return weight.Sample{}, fmt.Errorf("parse date %q: %w", r.Date, err)
		}
		d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}

	var v float64
	switch {
	case r.Weight != nil:
		v = *r.Weight
	case r.Value != nil:
		v = *r.Value
	default:
		return weight.Sample{}, fmt.Errorf("sample %s has no value", r.Date)
	}

	unit := r.Unit
	if unit == "" {
		unit = "kg"
	}
	return weight.Sample{Date: d, Value: v, Unit: unit}, nil
}

// FetchWeights returns the weight samples of the last days days in the
// order the API sent them.
func (c *Client) FetchWeights(ctx context.Context, days int) ([]weight.Sample, error) {
	var records []weightRecord
	if err := c.getJSON(ctx, c.endpoint(c.weightPath, daysQuery(days)), &records); err != nil {
		return nil, err
	}

	samples := make([]weight.Sample, 0, len(records))
	for i, r := range records {
		s, err := r.toSample()
		if err != nil {
			return nil, fmt.Errorf("weight record %d: %w", i, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}
