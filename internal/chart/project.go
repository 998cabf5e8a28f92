// Package chart turns weight samples into a line-chart projection and renders it.
package chart

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Zachkp/portfolio/internal/weight"
)

// DomainPadding is added below the minimum and above the maximum value.
const DomainPadding = 2.0

// Point is one plotted sample.
type Point struct {
	Index   int       `json:"index"`
	Date    time.Time `json:"date"`
	Value   float64   `json:"value"`
	Label   string    `json:"label"`
	Tooltip string    `json:"tooltip"`
}

// Projection is everything a line chart needs to draw the samples.
type Projection struct {
	Points []Point `json:"points"`
	YMin   float64 `json:"y_min"`
	YMax   float64 `json:"y_max"`
}

// Empty reports whether there is nothing to plot.
func (p Projection) Empty() bool { return len(p.Points) == 0 }

// Project maps samples to chart points in the order given.
func Project(samples []weight.Sample) Projection {
	if len(samples) == 0 {
		return Projection{}
	}

	points := make([]Point, len(samples))
	lo, hi := samples[0].Value, samples[0].Value
	for i, s := range samples {
		points[i] = Point{
			Index:   i,
			Date:    s.Date,
			Value:   s.Value,
			Label:   XTickLabel(s.Date),
			Tooltip: Tooltip(s.Value),
		}
		lo = min(lo, s.Value)
		hi = max(hi, s.Value)
	}

	return Projection{
		Points: points,
		YMin:   lo - DomainPadding,
		YMax:   hi + DomainPadding,
	}
}

// XTickLabel formats a date as month/day with a 1-based month.
func XTickLabel(d time.Time) string {
	return fmt.Sprintf("%d/%d", int(d.Month()), d.Day())
}

// Tooltip formats a value for the hover label.
func Tooltip(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " kg"
}
