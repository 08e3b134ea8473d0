package editor

import (
	"github.com/sirupsen/logrus"

	"geodraw/internal/geo"
)

// SelectAt replaces the current selection with the finished shape under p.
// Hitting nothing, or anything that is not a finished shape, leaves the
// selection empty.
func (e *Editor) SelectAt(p ScreenPoint) {
	e.clearSelection()
	if e.mode != ModeSelect {
		return
	}
	id, ok := e.v.PickAt(p)
	if !ok {
		e.log.WithField("screen", p).Debug("nothing picked")
		return
	}
	s, ok := e.shapes[id]
	if !ok {
		e.log.WithField("entity", id).Debug("picked entity is not a shape")
		return
	}
	e.sel.shape = s
	e.sel.boundary = e.v.AddPolygon(VertexSourceFunc(e.boundaryPositions), e.styles.Boundary)
	// place the handles now rather than waiting for the first frame
	e.boundaryPositions()

	pts := s.Vertices.Positions()
	e.sel.original = e.sel.original[:0]
	for _, v := range pts {
		e.sel.original = append(e.sel.original, e.v.GeoOf(v))
	}
	e.sel.pivot = geo.Centroid(e.sel.original)
	e.log.WithFields(logrus.Fields{"shape": id, "pivot": e.sel.pivot}).Info("shape selected")
}

// Deselect tears down the selection boundary and its handles.
func (e *Editor) Deselect() { e.clearSelection() }

func (e *Editor) clearSelection() {
	e.removeHandles()
	if e.sel.boundary != 0 {
		e.v.Remove(e.sel.boundary)
	}
	e.sel = selection{}
}

func (e *Editor) removeHandles() {
	for _, h := range e.sel.handles {
		e.v.Remove(h)
	}
	e.sel.handles = nil
}

// HandleCorners projects vertices to the screen, takes their axis-aligned
// bounding box and unprojects its corners in the order (minX,minY),
// (minX,maxY), (maxX,maxY), (maxX,minY). Corners that miss the globe are
// left out.
func (e *Editor) HandleCorners(vertices []Vertex) []Vertex {
	screen := make([]ScreenPoint, len(vertices))
	for i, v := range vertices {
		screen[i] = e.v.Project(v)
	}
	corners, ok := geo.BoundsCorners(screen)
	if !ok {
		return nil
	}
	out := make([]Vertex, 0, len(corners))
	for _, c := range corners {
		if w, ok := e.v.Unproject(c); ok {
			out = append(out, w)
		}
	}
	return out
}

// boundaryPositions is the live vertex source of the selection boundary. The
// viewer calls it every frame; each call also re-places the rotate handles
// so they follow the boundary. Old handles are removed first.
func (e *Editor) boundaryPositions() []Vertex {
	if e.sel.shape == nil {
		return nil
	}
	corners := e.HandleCorners(e.sel.shape.Vertices.Positions())
	e.removeHandles()
	for _, c := range corners {
		e.sel.handles = append(e.sel.handles, e.v.AddPointMarker(c, e.styles.Handle, TagRotateHandle))
	}
	return corners
}
