// Package weight holds body-weight samples and the statistics derived from them.
package weight

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// Sample is one dated measurement.
type Sample struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Unit  string    `json:"unit,omitempty"`
}

// OrderError reports that a sample sequence is not ascending by date.
// It is a data-integrity warning: the samples are still usable as received.
type OrderError struct {
	Index int
	Prev  time.Time
	Next  time.Time
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("samples out of order at index %d: %s after %s",
		e.Index, e.Next.Format(DateLayout), e.Prev.Format(DateLayout))
}

// CheckOrder returns an *OrderError at the first pair whose date decreases.
// Equal dates are allowed.
func CheckOrder(samples []Sample) error {
	for i := 1; i < len(samples); i++ {
		if samples[i].Date.Before(samples[i-1].Date) {
			return &OrderError{Index: i, Prev: samples[i-1].Date, Next: samples[i].Date}
		}
	}
	return nil
}

// Values returns the measurement values in order.
func Values(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}
