package chart

import (
	"math"
	"testing"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testArea = Rect{Left: 50, Top: 20, Width: 500, Height: 200}

func kindCount(prims []domain.Primitive, kind domain.PrimitiveKind) int {
	n := 0
	for _, p := range prims {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

func TestLine_Layout(t *testing.T) {
	series := []SeriesPoint{
		{Label: "2025-01", Value: 60},
		{Label: "2025-02", Value: 70},
		{Label: "2025-03", Value: 85},
	}

	prims := Line(series, testArea)

	assert.Equal(t, 3, kindCount(prims, domain.PrimitiveLine), "three gridlines")
	assert.Equal(t, 3, kindCount(prims, domain.PrimitiveCircle))
	assert.Equal(t, 1, kindCount(prims, domain.PrimitivePolyline))

	for _, p := range prims {
		if p.Kind != domain.PrimitivePolyline {
			continue
		}
		require.Len(t, p.Points, 3)
		assert.Equal(t, testArea.Left, p.Points[0].X)
		assert.Equal(t, testArea.Left+testArea.Width, p.Points[2].X)
		// Higher values plot higher on the canvas.
		assert.Greater(t, p.Points[0].Y, p.Points[2].Y)
	}
}

func TestLine_SinglePoint(t *testing.T) {
	prims := Line([]SeriesPoint{{Label: "2025-06", Value: 50}}, testArea)

	assert.Equal(t, 0, kindCount(prims, domain.PrimitivePolyline), "no polyline for a single point")
	assert.Equal(t, 1, kindCount(prims, domain.PrimitiveCircle))

	for _, p := range prims {
		if p.Kind == domain.PrimitiveCircle {
			assert.Equal(t, testArea.Left+testArea.Width/2, p.Center.X, "lone point is centered")
		}
	}
}

func TestLine_ConstantSeriesDoesNotCollapse(t *testing.T) {
	series := []SeriesPoint{
		{Label: "a", Value: 70},
		{Label: "b", Value: 70},
		{Label: "c", Value: 70},
	}

	prims := Line(series, testArea)

	for _, p := range prims {
		for _, pt := range p.Points {
			assert.False(t, math.IsNaN(pt.X) || math.IsNaN(pt.Y))
		}
		assert.False(t, math.IsNaN(p.Center.Y))
	}

	// All points share one y coordinate inside the drawing area.
	var ys []float64
	for _, p := range prims {
		if p.Kind == domain.PrimitiveCircle {
			ys = append(ys, p.Center.Y)
		}
	}
	require.Len(t, ys, 3)
	assert.Equal(t, ys[0], ys[1])
	assert.Equal(t, ys[1], ys[2])
	assert.GreaterOrEqual(t, ys[0], testArea.Top)
	assert.LessOrEqual(t, ys[0], testArea.Top+testArea.Height)
}

func TestLine_GridlinesSpanExtendedDomain(t *testing.T) {
	// Values outside 0-100 stretch the scale instead of clipping.
	prims := Line([]SeriesPoint{{Label: "a", Value: 110}, {Label: "b", Value: 40}}, testArea)

	var labels []string
	for _, p := range prims {
		if p.Kind == domain.PrimitiveText && p.Style == "grid-label" {
			labels = append(labels, p.Text)
		}
	}
	assert.Equal(t, []string{"0", "55", "110"}, labels)
}

func TestLine_Empty(t *testing.T) {
	prims := Line(nil, testArea)
	require.Len(t, prims, 1)
	assert.Equal(t, "no data", prims[0].Text)
}
