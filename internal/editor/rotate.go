package editor

import (
	"github.com/paulmach/orb"

	"geodraw/internal/geo"
)

// ComputeRotatedVertices rotates the selection's original vertices about
// pivot by the change in bearing from start to current, both world-space
// pointer positions. The result is always computed from the original
// baseline, never from a previous rotation.
func (e *Editor) ComputeRotatedVertices(pivot orb.Point, start, current Vertex) []Vertex {
	angle := geo.RotationAngle(pivot, e.v.GeoOf(start), e.v.GeoOf(current))
	return e.RotateVertices(e.sel.original, angle, pivot)
}

// RotateVertices rotates lon/lat vertices by angle degrees clockwise about
// pivot and returns them in world space.
func (e *Editor) RotateVertices(original []orb.Point, angle float64, pivot orb.Point) []Vertex {
	rotated := geo.RotatePoints(original, angle, pivot)
	out := make([]Vertex, len(rotated))
	for i, p := range rotated {
		out[i] = e.v.WorldOf(p.Lon(), p.Lat())
	}
	return out
}

func (e *Editor) rotateTo(p ScreenPoint) {
	start, ok := e.v.Unproject(e.drag.start)
	if !ok {
		e.log.Debug("drag started off globe, rotation skipped")
		return
	}
	current, ok := e.v.Unproject(p)
	if !ok {
		return
	}
	e.sel.shape.Vertices.Set(e.ComputeRotatedVertices(e.sel.pivot, start, current))
}
