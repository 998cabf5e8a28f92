package chart

import (
	"errors"
	"fmt"
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default SVG dimensions.
const (
	DefaultWidth  = 640
	DefaultHeight = 300
)

// ErrNothingToRender is returned by RenderSVG for an empty projection.
var ErrNothingToRender = errors.New("chart: no points to render")

var lineColor = drawing.ColorFromHex("556B2F")

func lineStyle() gochart.Style {
	return gochart.Style{
		StrokeColor: lineColor,
		StrokeWidth: 2,
		DotColor:    lineColor,
		DotWidth:    2,
	}
}

// RenderSVG draws the projection as an SVG line chart.
func (p Projection) RenderSVG(w io.Writer, width, height int) error {
	if p.Empty() {
		return ErrNothingToRender
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	xs := make([]time.Time, len(p.Points))
	ys := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i] = pt.Date
		ys[i] = pt.Value
	}
	// go-chart needs a non-zero x range; stretch a lone point over one day.
	if len(xs) == 1 {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}

	graph := gochart.Chart{
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 14, Left: 16, Right: 12, Bottom: 24}},
		XAxis: gochart.XAxis{
			ValueFormatter: formatTick,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: p.YMin, Max: p.YMax},
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    "weight",
				XValues: xs,
				YValues: ys,
				Style:   lineStyle(),
			},
		},
	}

	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render weight chart: %w", err)
	}
	return nil
}

// formatTick labels x-axis ticks, which go-chart hands over as nanoseconds.
func formatTick(v any) string {
	switch tv := v.(type) {
	case float64:
		return XTickLabel(time.Unix(0, int64(tv)).UTC())
	case time.Time:
		return XTickLabel(tv)
	default:
		return ""
	}
}
