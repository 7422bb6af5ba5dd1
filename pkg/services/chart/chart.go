// Package chart maps numeric series to drawable 2-D primitives. All
// functions are pure and stateless: data plus canvas dimensions in,
// geometry out. Rendering and styling live with the renderer.
package chart

import (
	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
)

// Rect is the drawing area a chart lays its geometry into.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// AxisValue is one labeled radar axis value in the 0-100 range.
type AxisValue struct {
	Label string
	Value float64
}

// SeriesPoint is one labeled point of a time-ordered series.
type SeriesPoint struct {
	Label string
	Value float64
}

// ComparisonPair holds the two values compared per category in a
// dual-bar chart.
type ComparisonPair struct {
	Label string
	A     float64
	B     float64
}

func noData(at domain.Point) domain.Primitive {
	return domain.Primitive{
		Kind:   domain.PrimitiveText,
		Pos:    at,
		Text:   "no data",
		Anchor: domain.AnchorMiddle,
		Style:  "placeholder",
	}
}
