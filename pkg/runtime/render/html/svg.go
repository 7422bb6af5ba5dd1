package html

import (
	"fmt"
	"strings"

	"github.com/edu-tools/cohort-atlas/pkg/models/domain"
)

// styleClass carries the primitive's style tag into the SVG as a CSS
// class; all visual choices stay with the stylesheet, not the geometry.
func styleClass(p domain.Primitive) string {
	if p.Style == "" {
		return ""
	}
	return fmt.Sprintf(` class="%s"`, escapeXML(p.Style))
}

// chartSVG emits one chart block as inline SVG markup.
func chartSVG(block *domain.ChartBlock) string {
	if block == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		block.Width, block.Height, block.Width, block.Height))
	sb.WriteString("\n")

	for _, p := range block.Primitives {
		switch p.Kind {
		case domain.PrimitivePolyline:
			sb.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none"%s/>`, pointList(p.Points), styleClass(p)))
		case domain.PrimitivePolygon:
			sb.WriteString(fmt.Sprintf(`<polygon points="%s"%s/>`, pointList(p.Points), styleClass(p)))
		case domain.PrimitiveCircle:
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none"%s/>`,
				p.Center.X, p.Center.Y, p.Radius, styleClass(p)))
		case domain.PrimitiveLine:
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"%s/>`,
				p.From.X, p.From.Y, p.To.X, p.To.Y, styleClass(p)))
		case domain.PrimitiveText:
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="%s"%s>%s</text>`,
				p.Pos.X, p.Pos.Y, anchor(p.Anchor), styleClass(p), escapeXML(p.Text)))
		case domain.PrimitiveRect:
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"%s/>`,
				p.Pos.X, p.Pos.Y, p.Width, p.Height, styleClass(p)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func pointList(points []domain.Point) string {
	parts := make([]string, len(points))
	for i, pt := range points {
		parts[i] = fmt.Sprintf("%.1f,%.1f", pt.X, pt.Y)
	}
	return strings.Join(parts, " ")
}

func anchor(a domain.TextAnchor) string {
	if a == "" {
		return string(domain.AnchorStart)
	}
	return string(a)
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
