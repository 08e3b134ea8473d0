package editor

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Style describes how a polygon is drawn.
type Style struct {
	Fill         colorful.Color
	FillAlpha    float64
	Outline      bool
	OutlineColor colorful.Color
	OutlineWidth float64
	// Dashed polygons are decoration (selection boundaries) and are not
	// hit-tested by the host.
	Dashed bool
}

// MarkerStyle describes a point marker.
type MarkerStyle struct {
	Color        colorful.Color
	PixelSize    float64
	OutlineColor colorful.Color
	OutlineWidth float64
}

// Styles groups every style the editor hands to the viewer.
type Styles struct {
	Drawing   Style
	Shape     Style
	Boundary  Style
	Handle    MarkerStyle
	Highlight colorful.Color
}

var (
	black = colorful.Color{R: 0, G: 0, B: 0}
	white = colorful.Color{R: 1, G: 1, B: 1}
	red   = colorful.Color{R: 1, G: 0, B: 0}
	green = colorful.Color{R: 0, G: 1, B: 0}
	blue  = colorful.Color{R: 0, G: 0, B: 1}
)

// DefaultStyles returns the stock look: a translucent red polygon while
// drawing, a hollow black-outlined polygon once finished, a blue boundary
// with blue corner handles around the selection, green as highlight.
func DefaultStyles() Styles {
	return Styles{
		Drawing: Style{
			Fill:         red,
			FillAlpha:    0.5,
			Outline:      true,
			OutlineColor: black,
			OutlineWidth: 4,
		},
		Shape: Style{
			Fill:         white,
			FillAlpha:    0,
			Outline:      true,
			OutlineColor: black,
			OutlineWidth: 9,
		},
		Boundary: Style{
			Fill:         red,
			FillAlpha:    0,
			Outline:      true,
			OutlineColor: blue,
			OutlineWidth: 3,
			Dashed:       true,
		},
		Handle: MarkerStyle{
			Color:        white,
			PixelSize:    5,
			OutlineColor: blue,
			OutlineWidth: 3,
		},
		Highlight: green,
	}
}

// VertexBuffer is the authoritative vertex list of a shape. Viewers render
// the buffer itself, so every write is observed live.
type VertexBuffer struct {
	pts []Vertex
}

// NewVertexBuffer returns a buffer holding a copy of pts.
func NewVertexBuffer(pts []Vertex) *VertexBuffer {
	b := &VertexBuffer{}
	b.Set(pts)
	return b
}

func (b *VertexBuffer) Positions() []Vertex { return b.pts }

func (b *VertexBuffer) Len() int { return len(b.pts) }

// Set replaces the contents with a copy of pts.
func (b *VertexBuffer) Set(pts []Vertex) {
	b.pts = append(b.pts[:0:0], pts...)
}

func (b *VertexBuffer) push(v Vertex) { b.pts = append(b.pts, v) }

func (b *VertexBuffer) replaceLast(v Vertex) { b.pts[len(b.pts)-1] = v }

// Shape is a finished polygon known to the editor.
type Shape struct {
	ID       EntityID
	Vertices *VertexBuffer
	Style    Style
}
