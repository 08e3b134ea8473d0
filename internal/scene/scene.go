// Package scene is the render layer under the editor: an ordered store of
// polygons and point markers that can be drawn frame by frame and hit-tested
// in screen space.
package scene

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"geodraw/internal/editor"
)

// Projector maps world points to the screen.
type Projector interface {
	Project(v r3.Vector) r2.Point
	Visible(v r3.Vector) bool
}

// Kind tells polygons and markers apart.
type Kind int

const (
	KindPolygon Kind = iota
	KindMarker
)

// Entity is one rendered object.
type Entity struct {
	ID   editor.EntityID
	Kind Kind

	Source editor.VertexSource
	Style  editor.Style

	Position r3.Vector
	Marker   editor.MarkerStyle
	Tag      string
}

// Store holds entities in insertion order; later entities draw on top.
type Store struct {
	proj       Projector
	pickRadius float64

	next     editor.EntityID
	entities map[editor.EntityID]*Entity
	order    []editor.EntityID
}

// New returns an empty store. Markers are hit within pickRadius pixels.
func New(proj Projector, pickRadius float64) *Store {
	return &Store{
		proj:       proj,
		pickRadius: pickRadius,
		entities:   make(map[editor.EntityID]*Entity),
	}
}

func (s *Store) add(e *Entity) editor.EntityID {
	s.next++
	e.ID = s.next
	s.entities[e.ID] = e
	s.order = append(s.order, e.ID)
	return e.ID
}

// AddPolygon adds a polygon whose vertices are read from src on every frame.
func (s *Store) AddPolygon(src editor.VertexSource, style editor.Style) editor.EntityID {
	return s.add(&Entity{Kind: KindPolygon, Source: src, Style: style})
}

// AddPointMarker adds a marker at pos.
func (s *Store) AddPointMarker(pos r3.Vector, style editor.MarkerStyle, tag string) editor.EntityID {
	return s.add(&Entity{Kind: KindMarker, Position: pos, Marker: style, Tag: tag})
}

// SetPolygonStyle restyles a polygon. Unknown ids are ignored.
func (s *Store) SetPolygonStyle(id editor.EntityID, style editor.Style) {
	if e, ok := s.entities[id]; ok && e.Kind == KindPolygon {
		e.Style = style
	}
}

// Remove deletes an entity. Unknown ids are ignored.
func (s *Store) Remove(id editor.EntityID) {
	if _, ok := s.entities[id]; !ok {
		return
	}
	delete(s.entities, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get returns an entity by id.
func (s *Store) Get(id editor.EntityID) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Len is the number of live entities.
func (s *Store) Len() int { return len(s.order) }

// ByTag returns the ids of markers carrying tag, bottom first.
func (s *Store) ByTag(tag string) []editor.EntityID {
	var out []editor.EntityID
	for _, id := range s.order {
		if e := s.entities[id]; e.Kind == KindMarker && e.Tag == tag {
			out = append(out, id)
		}
	}
	return out
}

// PolygonItem is a polygon resolved for one frame.
type PolygonItem struct {
	ID        editor.EntityID
	Style     editor.Style
	Positions []r3.Vector
}

// MarkerItem is a marker resolved for one frame.
type MarkerItem struct {
	ID       editor.EntityID
	Style    editor.MarkerStyle
	Position r3.Vector
	Tag      string
}

// Frame is everything to draw, bottom first.
type Frame struct {
	Polygons []PolygonItem
	Markers  []MarkerItem
}

// Frame evaluates every polygon source and collects the markers. Sources may
// add and remove entities while they run (the selection boundary re-places
// its handles), so polygons are resolved first against a snapshot of the
// order and markers are read afterwards.
func (s *Store) Frame() Frame {
	var f Frame
	ids := append([]editor.EntityID(nil), s.order...)
	for _, id := range ids {
		e, ok := s.entities[id]
		if !ok || e.Kind != KindPolygon {
			continue
		}
		pts := e.Source.Positions()
		f.Polygons = append(f.Polygons, PolygonItem{
			ID:        id,
			Style:     e.Style,
			Positions: append([]r3.Vector(nil), pts...),
		})
	}
	for _, id := range s.order {
		e := s.entities[id]
		if e.Kind != KindMarker {
			continue
		}
		f.Markers = append(f.Markers, MarkerItem{ID: id, Style: e.Marker, Position: e.Position, Tag: e.Tag})
	}
	return f
}

// PickAt returns the topmost entity under p. Markers win over polygons so a
// handle on a shape's outline can be grabbed. Dashed polygons are
// decoration and never picked.
func (s *Store) PickAt(p r2.Point) (editor.EntityID, bool) {
	r2max := s.pickRadius * s.pickRadius
	for i := len(s.order) - 1; i >= 0; i-- {
		e := s.entities[s.order[i]]
		if e.Kind != KindMarker || !s.proj.Visible(e.Position) {
			continue
		}
		q := s.proj.Project(e.Position)
		if d := q.Sub(p); d.Dot(d) <= r2max {
			return e.ID, true
		}
	}
	pt := orb.Point{p.X, p.Y}
	for i := len(s.order) - 1; i >= 0; i-- {
		e := s.entities[s.order[i]]
		if e.Kind != KindPolygon || e.Style.Dashed {
			continue
		}
		ring := s.screenRing(e.Source.Positions())
		if len(ring) < 4 {
			continue
		}
		if planar.RingContains(ring, pt) {
			return e.ID, true
		}
	}
	return 0, false
}

// screenRing projects the visible vertices into a closed screen ring.
func (s *Store) screenRing(pts []r3.Vector) orb.Ring {
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, v := range pts {
		if !s.proj.Visible(v) {
			continue
		}
		q := s.proj.Project(v)
		ring = append(ring, orb.Point{q.X, q.Y})
	}
	if len(ring) > 0 && !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	return ring
}
