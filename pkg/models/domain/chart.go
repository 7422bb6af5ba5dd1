package domain

// Point is a 2-D coordinate on the chart canvas.
type Point struct {
	X float64
	Y float64
}

// PrimitiveKind tags the variant carried by a Primitive.
type PrimitiveKind string

const (
	PrimitivePolyline PrimitiveKind = "polyline"
	PrimitivePolygon  PrimitiveKind = "polygon"
	PrimitiveCircle   PrimitiveKind = "circle"
	PrimitiveText     PrimitiveKind = "text"
	PrimitiveLine     PrimitiveKind = "line"
	PrimitiveRect     PrimitiveKind = "rect"
)

// TextAnchor positions text relative to its anchor point.
type TextAnchor string

const (
	AnchorStart  TextAnchor = "start"
	AnchorMiddle TextAnchor = "middle"
	AnchorEnd    TextAnchor = "end"
)

// Primitive is a geometry-only drawable unit. Only the fields relevant
// to Kind are set; Style is an optional tag with no semantics attached.
type Primitive struct {
	Kind   PrimitiveKind
	Points []Point // polyline, polygon
	Closed bool    // polygon only, always true
	Center Point   // circle
	Radius float64 // circle
	From   Point   // line
	To     Point   // line
	Pos    Point   // text, rect origin
	Width  float64 // rect
	Height float64 // rect
	Text   string  // text content
	Anchor TextAnchor
	Style  string
}
