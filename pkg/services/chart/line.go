package chart

import (
	"fmt"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
)

// minLineRange keeps a near-constant series from exploding the vertical
// scale: the y-range never drops below this many score points.
const minLineRange = 30

const linePointRadius = 4

// Line lays out a time-series line chart inside area: three horizontal
// gridlines (at min, mid, max), one circle per point, point labels on
// the x axis, and a connecting polyline when there is more than one
// point.
func Line(series []SeriesPoint, area Rect) []domain.Primitive {
	if len(series) == 0 {
		return []domain.Primitive{noData(domain.Point{
			X: area.Left + area.Width/2,
			Y: area.Top + area.Height/2,
		})}
	}

	minV, maxV := 0.0, 100.0
	for _, p := range series {
		if p.Value < minV {
			minV = p.Value
		}
		if p.Value > maxV {
			maxV = p.Value
		}
	}
	rangeV := maxV - minV
	if rangeV < minLineRange {
		rangeV = minLineRange
	}

	x := func(i int) float64 {
		if len(series) == 1 {
			return area.Left + area.Width/2
		}
		return area.Left + float64(i)/float64(len(series)-1)*area.Width
	}
	y := func(v float64) float64 {
		return area.Top + area.Height - (v-minV)/rangeV*area.Height
	}

	prims := make([]domain.Primitive, 0, 2*len(series)+7)

	for _, gv := range []float64{minV, (minV + maxV) / 2, maxV} {
		gy := y(gv)
		prims = append(prims, domain.Primitive{
			Kind:  domain.PrimitiveLine,
			From:  domain.Point{X: area.Left, Y: gy},
			To:    domain.Point{X: area.Left + area.Width, Y: gy},
			Style: "grid",
		})
		prims = append(prims, domain.Primitive{
			Kind:   domain.PrimitiveText,
			Pos:    domain.Point{X: area.Left - 8, Y: gy},
			Text:   fmt.Sprintf("%.0f", gv),
			Anchor: domain.AnchorEnd,
			Style:  "grid-label",
		})
	}

	if len(series) > 1 {
		points := make([]domain.Point, len(series))
		for i, p := range series {
			points[i] = domain.Point{X: x(i), Y: y(p.Value)}
		}
		prims = append(prims, domain.Primitive{
			Kind:   domain.PrimitivePolyline,
			Points: points,
			Style:  "series",
		})
	}

	for i, p := range series {
		prims = append(prims, domain.Primitive{
			Kind:   domain.PrimitiveCircle,
			Center: domain.Point{X: x(i), Y: y(p.Value)},
			Radius: linePointRadius,
			Style:  "point",
		})
		prims = append(prims, domain.Primitive{
			Kind:   domain.PrimitiveText,
			Pos:    domain.Point{X: x(i), Y: area.Top + area.Height + 16},
			Text:   p.Label,
			Anchor: domain.AnchorMiddle,
			Style:  "x-label",
		})
	}

	return prims
}
