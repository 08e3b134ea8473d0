package editor

import (
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

type fakeEntity struct {
	polygon bool
	src     VertexSource
	style   Style
	pos     Vertex
	marker  MarkerStyle
	tag     string
}

// flatViewer maps screen (x, y) to world (x, y, 0) and world (x, y, z) to
// lon/lat (x, y), so geometry in tests can be checked exactly.
type flatViewer struct {
	next     EntityID
	entities map[EntityID]*fakeEntity
	picks    map[ScreenPoint]EntityID
	misses   map[ScreenPoint]bool

	cameraRotation bool
	crosshair      bool
}

func newFlatViewer() *flatViewer {
	return &flatViewer{
		entities:       make(map[EntityID]*fakeEntity),
		picks:          make(map[ScreenPoint]EntityID),
		misses:         make(map[ScreenPoint]bool),
		cameraRotation: true,
	}
}

func (f *flatViewer) Unproject(p ScreenPoint) (Vertex, bool) {
	if f.misses[p] {
		return Vertex{}, false
	}
	return r3.Vector{X: p.X, Y: p.Y}, true
}

func (f *flatViewer) Project(v Vertex) ScreenPoint { return ScreenPoint{X: v.X, Y: v.Y} }

func (f *flatViewer) PickAt(p ScreenPoint) (EntityID, bool) {
	id, ok := f.picks[p]
	if !ok {
		return 0, false
	}
	if _, live := f.entities[id]; !live {
		return 0, false
	}
	return id, true
}

func (f *flatViewer) AddPolygon(src VertexSource, style Style) EntityID {
	f.next++
	f.entities[f.next] = &fakeEntity{polygon: true, src: src, style: style}
	return f.next
}

func (f *flatViewer) AddPointMarker(pos Vertex, style MarkerStyle, tag string) EntityID {
	f.next++
	f.entities[f.next] = &fakeEntity{pos: pos, marker: style, tag: tag}
	return f.next
}

func (f *flatViewer) SetPolygonStyle(id EntityID, style Style) {
	if e, ok := f.entities[id]; ok {
		e.style = style
	}
}

func (f *flatViewer) Remove(id EntityID) { delete(f.entities, id) }

func (f *flatViewer) GeoOf(v Vertex) orb.Point { return orb.Point{v.X, v.Y} }

func (f *flatViewer) WorldOf(lon, lat float64) Vertex { return r3.Vector{X: lon, Y: lat} }

func (f *flatViewer) SetCameraRotationEnabled(enabled bool) { f.cameraRotation = enabled }

func (f *flatViewer) SetCrosshair(enabled bool) { f.crosshair = enabled }

func (f *flatViewer) polygons() []EntityID {
	var out []EntityID
	for id, e := range f.entities {
		if e.polygon {
			out = append(out, id)
		}
	}
	return out
}

func (f *flatViewer) tagged(tag string) []EntityID {
	var out []EntityID
	for id, e := range f.entities {
		if !e.polygon && e.tag == tag {
			out = append(out, id)
		}
	}
	return out
}
