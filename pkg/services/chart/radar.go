package chart

import (
	"math"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
)

const (
	radarGridRings   = 4
	radarLabelOffset = 30
)

// Radar lays out a radar chart: a background grid of concentric
// circles, one axis per value, axis labels, and the closed value
// polygon. Axis 0 points straight up; axis i sits at i*(2π/N) - π/2.
// A value v maps to the point center + (v/100)*R along its axis.
func Radar(values []AxisValue, center domain.Point, radius float64) []domain.Primitive {
	if len(values) == 0 {
		return []domain.Primitive{noData(center)}
	}

	n := len(values)
	prims := make([]domain.Primitive, 0, radarGridRings+2*n+1)

	for k := 1; k <= radarGridRings; k++ {
		prims = append(prims, domain.Primitive{
			Kind:   domain.PrimitiveCircle,
			Center: center,
			Radius: radius * float64(k) / radarGridRings,
			Style:  "grid",
		})
	}

	for i, v := range values {
		theta := axisAngle(i, n)
		prims = append(prims, domain.Primitive{
			Kind:  domain.PrimitiveLine,
			From:  center,
			To:    pointAt(center, radius, theta),
			Style: "axis",
		})
		prims = append(prims, domain.Primitive{
			Kind:   domain.PrimitiveText,
			Pos:    pointAt(center, radius+radarLabelOffset, theta),
			Text:   v.Label,
			Anchor: domain.AnchorMiddle,
			Style:  "axis-label",
		})
	}

	// Value polygon, closed back to axis 0.
	points := make([]domain.Point, 0, n+1)
	for i, v := range values {
		points = append(points, pointAt(center, v.Value/100*radius, axisAngle(i, n)))
	}
	points = append(points, points[0])
	prims = append(prims, domain.Primitive{
		Kind:   domain.PrimitivePolygon,
		Points: points,
		Closed: true,
		Style:  "series",
	})

	return prims
}

func axisAngle(i, n int) float64 {
	return float64(i)*(2*math.Pi/float64(n)) - math.Pi/2
}

func pointAt(center domain.Point, r, theta float64) domain.Point {
	return domain.Point{
		X: center.X + r*math.Cos(theta),
		Y: center.Y + r*math.Sin(theta),
	}
}
