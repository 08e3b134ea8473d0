package editor

import "github.com/sirupsen/logrus"

// addPoint commits the unprojected click position as the next vertex. The
// first click of a session creates the temporary preview polygon.
func (e *Editor) addPoint(p ScreenPoint) {
	world, ok := e.v.Unproject(p)
	if !ok {
		e.log.WithField("screen", p).Debug("click off globe, no vertex added")
		return
	}
	if e.draw.preview == 0 {
		e.draw.buf = &VertexBuffer{}
		e.draw.preview = e.v.AddPolygon(e.draw.buf, e.styles.Drawing)
	}
	// a trailing preview vertex becomes the committed one
	if e.draw.buf.Len() > e.draw.committed {
		e.draw.buf.replaceLast(world)
	} else {
		e.draw.buf.push(world)
	}
	e.draw.committed++
	e.draw.active = true
}

// movePreview makes the vertex after the committed ones follow the pointer.
func (e *Editor) movePreview(p ScreenPoint) {
	world, ok := e.v.Unproject(p)
	if !ok {
		return
	}
	if e.draw.buf.Len() > e.draw.committed {
		e.draw.buf.replaceLast(world)
	} else {
		e.draw.buf.push(world)
	}
}

// finishDrawing freezes the committed vertices into a new shape and drops the
// preview polygon.
func (e *Editor) finishDrawing() {
	frozen := NewVertexBuffer(e.draw.buf.Positions()[:e.draw.committed])
	id := e.v.AddPolygon(frozen, e.styles.Shape)
	e.shapes[id] = &Shape{ID: id, Vertices: frozen, Style: e.styles.Shape}
	e.resetDrawSession()
	e.log.WithFields(logrus.Fields{"shape": id, "vertices": frozen.Len()}).Info("shape finished")
}

func (e *Editor) resetDrawSession() {
	if e.draw.preview != 0 {
		e.v.Remove(e.draw.preview)
	}
	e.draw = drawSession{}
}
