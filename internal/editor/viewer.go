package editor

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

// EntityID identifies anything the host viewer renders: polygons and point
// markers. Zero is never a valid id.
type EntityID uint64

// ScreenPoint is a position on the viewer's drawing surface.
type ScreenPoint = r2.Point

// Vertex is a world-space point on or above the globe surface.
type Vertex = r3.Vector

// TagRotateHandle marks point markers placed at a selection's corners.
const TagRotateHandle = "rotatePoint"

// VertexSource supplies a polygon's current vertices. The render layer calls
// Positions every frame instead of keeping a copy, so changes made by the
// editor show up on the next frame.
type VertexSource interface {
	Positions() []Vertex
}

// VertexSourceFunc adapts a function to VertexSource.
type VertexSourceFunc func() []Vertex

func (f VertexSourceFunc) Positions() []Vertex { return f() }

// Viewer is everything the editor needs from the host globe viewer.
type Viewer interface {
	// Unproject intersects the camera ray through p with the globe surface.
	Unproject(p ScreenPoint) (Vertex, bool)
	Project(v Vertex) ScreenPoint
	// PickAt returns the topmost rendered entity under p.
	PickAt(p ScreenPoint) (EntityID, bool)

	AddPolygon(src VertexSource, style Style) EntityID
	AddPointMarker(pos Vertex, style MarkerStyle, tag string) EntityID
	SetPolygonStyle(id EntityID, style Style)
	Remove(id EntityID)

	GeoOf(v Vertex) orb.Point
	WorldOf(lon, lat float64) Vertex

	SetCameraRotationEnabled(enabled bool)
	// SetCrosshair toggles the drawing cursor affordance.
	SetCrosshair(enabled bool)
}
