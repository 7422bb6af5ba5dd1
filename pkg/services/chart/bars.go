package chart

import (
	"fmt"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
)

const (
	barPairGap    = 6  // between the two bars of one category
	maxBarWidth   = 36 // bars stay readable on wide canvases
	barLabelLift  = 4  // value label offset above a bar
	legendSwatch  = 12
	inlineMinFrac = 0.05 // a zero score still shows a 5% sliver
	inlineBarH    = 10
	inlineOverlayH = 6
)

// DualBar lays out a side-by-side comparison bar chart: per category
// two bars (A and B) scaled against the global maximum, a value label
// above each bar, a category label below, and a single legend block.
func DualBar(pairs []ComparisonPair, legendA, legendB string, area Rect) []domain.Primitive {
	if len(pairs) == 0 {
		return []domain.Primitive{noData(domain.Point{
			X: area.Left + area.Width/2,
			Y: area.Top + area.Height/2,
		})}
	}

	globalMax := 100.0
	for _, p := range pairs {
		if p.A > globalMax {
			globalMax = p.A
		}
		if p.B > globalMax {
			globalMax = p.B
		}
	}

	slot := area.Width / float64(len(pairs))
	barW := (slot - barPairGap) / 2 * 0.7
	if barW > maxBarWidth {
		barW = maxBarWidth
	}

	prims := make([]domain.Primitive, 0, 5*len(pairs)+4)
	prims = append(prims, legend(legendA, legendB, area)...)

	for i, p := range pairs {
		slotLeft := area.Left + float64(i)*slot
		pairLeft := slotLeft + (slot-2*barW-barPairGap)/2

		for j, v := range []float64{p.A, p.B} {
			h := v / globalMax * area.Height
			x := pairLeft + float64(j)*(barW+barPairGap)
			style := "series-a"
			if j == 1 {
				style = "series-b"
			}
			prims = append(prims, domain.Primitive{
				Kind:   domain.PrimitiveRect,
				Pos:    domain.Point{X: x, Y: area.Top + area.Height - h},
				Width:  barW,
				Height: h,
				Style:  style,
			})
			prims = append(prims, domain.Primitive{
				Kind:   domain.PrimitiveText,
				Pos:    domain.Point{X: x + barW/2, Y: area.Top + area.Height - h - barLabelLift},
				Text:   fmt.Sprintf("%.0f", v),
				Anchor: domain.AnchorMiddle,
				Style:  "value-label",
			})
		}

		prims = append(prims, domain.Primitive{
			Kind:   domain.PrimitiveText,
			Pos:    domain.Point{X: slotLeft + slot/2, Y: area.Top + area.Height + 16},
			Text:   p.Label,
			Anchor: domain.AnchorMiddle,
			Style:  "x-label",
		})
	}

	return prims
}

// legend is emitted once per chart, not per category.
func legend(labelA, labelB string, area Rect) []domain.Primitive {
	y := area.Top - 18
	return []domain.Primitive{
		{Kind: domain.PrimitiveRect, Pos: domain.Point{X: area.Left, Y: y}, Width: legendSwatch, Height: legendSwatch, Style: "series-a"},
		{Kind: domain.PrimitiveText, Pos: domain.Point{X: area.Left + legendSwatch + 4, Y: y + legendSwatch - 2}, Text: labelA, Anchor: domain.AnchorStart, Style: "legend"},
		{Kind: domain.PrimitiveRect, Pos: domain.Point{X: area.Left + 110, Y: y}, Width: legendSwatch, Height: legendSwatch, Style: "series-b"},
		{Kind: domain.PrimitiveText, Pos: domain.Point{X: area.Left + 110 + legendSwatch + 4, Y: y + legendSwatch - 2}, Text: labelB, Anchor: domain.AnchorStart, Style: "legend"},
	}
}

// InlineBar lays out the tabular comparison widget: two overlapping
// horizontal segments scaled to value/100 of the row width. Each
// segment keeps a minimum visible width so a zero score still reads as
// a sliver.
func InlineBar(value, comparison float64, origin domain.Point, rowWidth float64) []domain.Primitive {
	w := func(v float64) float64 {
		frac := v / 100
		if frac < inlineMinFrac {
			frac = inlineMinFrac
		}
		if frac > 1 {
			frac = 1
		}
		return frac * rowWidth
	}

	return []domain.Primitive{
		{
			Kind:   domain.PrimitiveRect,
			Pos:    origin,
			Width:  w(value),
			Height: inlineBarH,
			Style:  "series-a",
		},
		{
			Kind:   domain.PrimitiveRect,
			Pos:    domain.Point{X: origin.X, Y: origin.Y + (inlineBarH-inlineOverlayH)/2},
			Width:  w(comparison),
			Height: inlineOverlayH,
			Style:  "series-b",
		},
	}
}
