// Package editor turns pointer events from a globe viewer into polygon edits:
// drawing new polygons point by point, selecting an existing one, rotating it
// by dragging, deleting it and recoloring its outline.
//
// The editor is driven from the host's event loop. None of its methods block
// and none are safe for concurrent use; the host delivers events one at a
// time in the order they happened.
package editor

import (
	"io"
	"sort"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
)

// Mode is the editor's interaction mode.
type Mode int

const (
	ModeDraw Mode = iota
	ModeSelect
)

func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "draw"
	case ModeSelect:
		return "select"
	}
	return "unknown"
}

// drawSession is a polygon under construction. buf holds the committed
// vertices plus, while the pointer moves, one trailing preview vertex.
type drawSession struct {
	active    bool
	buf       *VertexBuffer
	committed int
	preview   EntityID
}

type selection struct {
	shape    *Shape
	boundary EntityID
	handles  []EntityID
	original []orb.Point
	pivot    orb.Point
}

type dragState struct {
	active bool
	start  ScreenPoint
}

// Editor is the interactive shape editor.
type Editor struct {
	v      Viewer
	log    logrus.FieldLogger
	styles Styles

	mode   Mode
	draw   drawSession
	sel    selection
	drag   dragState
	shapes map[EntityID]*Shape
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Editor) { e.log = l }
}

// WithStyles overrides DefaultStyles.
func WithStyles(s Styles) Option {
	return func(e *Editor) { e.styles = s }
}

// New returns an editor in draw mode bound to v.
func New(v Viewer, opts ...Option) *Editor {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	e := &Editor{
		v:      v,
		log:    quiet,
		styles: DefaultStyles(),
		mode:   ModeDraw,
		shapes: make(map[EntityID]*Shape),
	}
	for _, o := range opts {
		o(e)
	}
	e.v.SetCrosshair(true)
	return e
}

// BeginDrawMode switches to draw mode. Any selection is torn down and the
// draw session starts over.
func (e *Editor) BeginDrawMode() {
	e.mode = ModeDraw
	e.clearSelection()
	e.resetDrawSession()
	e.drag = dragState{}
	e.v.SetCrosshair(true)
	e.log.WithField("mode", e.mode).Info("mode switched")
}

// BeginSelectMode switches to select mode. A polygon being drawn is left as
// it is.
func (e *Editor) BeginSelectMode() {
	e.mode = ModeSelect
	e.log.WithField("mode", e.mode).Info("mode switched")
}

// DeleteSelected removes the selected shape and its selection decoration.
func (e *Editor) DeleteSelected() {
	s := e.sel.shape
	if s == nil {
		return
	}
	e.v.Remove(s.ID)
	delete(e.shapes, s.ID)
	e.clearSelection()
	e.drag = dragState{}
	e.log.WithField("shape", s.ID).Info("shape deleted")
}

// RecolorSelected sets the selected shape's outline to the highlight color.
func (e *Editor) RecolorSelected() {
	s := e.sel.shape
	if s == nil || !s.Style.Outline {
		return
	}
	s.Style.OutlineColor = e.styles.Highlight
	e.v.SetPolygonStyle(s.ID, s.Style)
	e.log.WithField("shape", s.ID).Info("shape recolored")
}

// Click handles a single primary-button click.
func (e *Editor) Click(p ScreenPoint) {
	switch e.mode {
	case ModeDraw:
		e.addPoint(p)
	case ModeSelect:
		e.SelectAt(p)
	}
}

// DoubleClick finishes the polygon being drawn, if any.
func (e *Editor) DoubleClick(ScreenPoint) {
	if e.draw.active {
		e.finishDrawing()
	}
}

// PointerDown starts a drag when it lands on a rendered entity in select
// mode. Camera rotation is held off until the matching PointerUp.
func (e *Editor) PointerDown(p ScreenPoint) {
	if e.mode != ModeSelect {
		return
	}
	if _, ok := e.v.PickAt(p); !ok {
		return
	}
	e.drag = dragState{active: true, start: p}
	e.v.SetCameraRotationEnabled(false)
}

// PointerUp ends any drag.
func (e *Editor) PointerUp(ScreenPoint) {
	e.drag = dragState{}
	e.v.SetCameraRotationEnabled(true)
}

// PointerMove moves the drawing preview vertex and rotates the selection
// while dragging.
func (e *Editor) PointerMove(p ScreenPoint) {
	if e.draw.active {
		e.movePreview(p)
	}
	if e.drag.active && e.sel.shape != nil && len(e.sel.original) > 0 {
		e.rotateTo(p)
	}
}

// Mode returns the current mode.
func (e *Editor) Mode() Mode { return e.mode }

// Drawing reports whether a polygon is being drawn.
func (e *Editor) Drawing() bool { return e.draw.active }

// CommittedCount is the number of clicked vertices in the current drawing.
func (e *Editor) CommittedCount() int { return e.draw.committed }

// DrawingVertices returns the current drawing buffer, preview vertex included.
func (e *Editor) DrawingVertices() []Vertex {
	if e.draw.buf == nil {
		return nil
	}
	return e.draw.buf.Positions()
}

// Dragging reports whether a drag is in progress.
func (e *Editor) Dragging() bool { return e.drag.active }

// Shapes returns the finished shapes ordered by id.
func (e *Editor) Shapes() []*Shape {
	out := make([]*Shape, 0, len(e.shapes))
	for _, s := range e.shapes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Shape looks up a finished shape.
func (e *Editor) Shape(id EntityID) (*Shape, bool) {
	s, ok := e.shapes[id]
	return s, ok
}

// Selected returns the selected shape or nil.
func (e *Editor) Selected() *Shape { return e.sel.shape }

// Boundary returns the selection boundary polygon, if one is shown.
func (e *Editor) Boundary() (EntityID, bool) { return e.sel.boundary, e.sel.boundary != 0 }

// Handles returns the rotate handle markers currently rendered.
func (e *Editor) Handles() []EntityID { return append([]EntityID(nil), e.sel.handles...) }

// OriginalGeoVertices is the selection's lon/lat baseline captured at
// selection time.
func (e *Editor) OriginalGeoVertices() []orb.Point {
	return append([]orb.Point(nil), e.sel.original...)
}

// Pivot is the rotation pivot of the selection.
func (e *Editor) Pivot() orb.Point { return e.sel.pivot }
