package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/weight"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func samples() []weight.Sample {
	return []weight.Sample{
		{Date: date(2024, time.January, 1), Value: 80.0},
		{Date: date(2024, time.January, 2), Value: 79.5},
		{Date: date(2024, time.February, 10), Value: 79.0},
	}
}

func TestProject(t *testing.T) {
	p := Project(samples())

	require.Len(t, p.Points, 3)
	assert.Equal(t, 77.0, p.YMin)
	assert.Equal(t, 82.0, p.YMax)

	assert.Equal(t, Point{
		Index:   2,
		Date:    date(2024, time.February, 10),
		Value:   79.0,
		Label:   "2/10",
		Tooltip: "79 kg",
	}, p.Points[2])
	assert.Equal(t, "1/2", p.Points[1].Label)
	assert.Equal(t, "79.5 kg", p.Points[1].Tooltip)
}

func TestProject_Idempotent(t *testing.T) {
	in := samples()
	assert.Equal(t, Project(in), Project(in))
}

func TestProject_Empty(t *testing.T) {
	p := Project(nil)
	assert.True(t, p.Empty())
}

func TestXTickLabel(t *testing.T) {
	assert.Equal(t, "12/31", XTickLabel(date(2023, time.December, 31)))
	assert.Equal(t, "3/5", XTickLabel(date(2024, time.March, 5)))
}

func TestTooltip(t *testing.T) {
	assert.Equal(t, "80 kg", Tooltip(80))
	assert.Equal(t, "79.45 kg", Tooltip(79.45))
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Project(samples()).RenderSVG(&buf, 0, 0))
	out := buf.String()
	assert.True(t, strings.Contains(out, "<svg"), "expected svg output")
}

func TestRenderSVG_SinglePoint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Project(samples()[:1]).RenderSVG(&buf, 320, 200))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderSVG_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := Projection{}.RenderSVG(&buf, 0, 0)
	assert.True(t, errors.Is(err, ErrNothingToRender))
}

func TestFormatTick(t *testing.T) {
	d := date(2024, time.July, 4)
	assert.Equal(t, "7/4", formatTick(float64(d.UnixNano())))
	assert.Equal(t, "7/4", formatTick(d))
	assert.Equal(t, "", formatTick("x"))
}
