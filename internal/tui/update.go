package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geodraw/internal/geom"
)

const (
	zoomStep = 1.2
	panStep  = 10.0 // degrees at zoom 1
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showShapes {
			switch msg.String() {
			case "esc", "a":
				m.showShapes = false
				return m, nil
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
			} else {
				m.ed.Deselect()
				m.status = "selection cleared"
			}
		case "d":
			m.ed.BeginDrawMode()
			m.status = "draw: click to add vertices, double-click to finish"
		case "s":
			m.ed.BeginSelectMode()
			m.status = "select: click a shape, drag it to rotate"
		case "x", "delete":
			if m.ed.Selected() == nil {
				m.status = "nothing selected"
				break
			}
			m.ed.DeleteSelected()
			m.status = fmt.Sprintf("deleted  shapes=%d", len(m.ed.Shapes()))
		case "c":
			if m.ed.Selected() == nil {
				m.status = "nothing selected"
				break
			}
			m.ed.RecolorSelected()
			m.status = "recolored"
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "g":
			m.showGraticule = !m.showGraticule
			m.status = fmt.Sprintf("graticule: %v", m.showGraticule)
		case "+", "=":
			m.cam.ZoomBy(zoomStep)
			m.status = fmt.Sprintf("zoom: %.2fx", m.cam.Zoom())
		case "-", "_":
			m.cam.ZoomBy(1 / zoomStep)
			m.status = fmt.Sprintf("zoom: %.2fx", m.cam.Zoom())
		case "tab":
			m.showSidebar = !m.showSidebar
			m.resize()
			if m.showSidebar {
				m.refreshDir()
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			if m.refreshShapes() {
				m.showShapes = true
			}
		case "i":
			m.inspectPopup = m.inspect()
			m.status = "inspect popup"
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.cam.Pan(0, panStep/m.cam.Zoom())
		case "down":
			m.cam.Pan(0, -panStep/m.cam.Zoom())
		case "left":
			m.cam.Pan(-panStep/m.cam.Zoom(), 0)
		case "right":
			m.cam.Pan(panStep/m.cam.Zoom(), 0)
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "paste cancelled"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			m.log.WithError(err).Warn("pasted overlay rejected")
			return m, nil
		}
		m.setOverlay(d, "")
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// updateMouse turns terminal mouse reports into editor pointer events. A
// press and release on the same cell that did not pan the camera is a
// click; a second click on the same cell within the double-click window is a
// double-click.
func (m *Model) updateMouse(msg tea.MouseMsg) {
	l := m.layout()
	cx, cy, in := l.inMap(msg.X, msg.Y)
	m.hovering = in
	if in {
		m.hoverCellX, m.hoverCellY = cx, cy
		m.hoverHasGeo = false
		if v, ok := m.cam.Unproject(cellPoint(cx, cy)); ok {
			g := m.cam.GeoOf(v)
			m.hoverHasGeo = true
			m.hoverLon, m.hoverLat = g.Lon(), g.Lat()
		}
	} else {
		m.hoverHasGeo = false
	}
	sp := cellPoint(cx, cy)
	p := m.ptr

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if in {
			m.cam.ZoomBy(zoomStep)
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if in {
			m.cam.ZoomBy(1 / zoomStep)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !in {
			return
		}
		p.pressed = true
		p.panned = false
		p.pressX, p.pressY = cx, cy
		p.lastX, p.lastY = cx, cy
		m.ed.PointerDown(sp)
	case msg.Action == tea.MouseActionMotion:
		if p.pressed && m.host.cameraRotation && (cx != p.lastX || cy != p.lastY) {
			m.cam.PanPixels(float64((cx-p.lastX)*2), float64((cy-p.lastY)*4))
			p.panned = true
		}
		p.lastX, p.lastY = cx, cy
		if in {
			m.ed.PointerMove(sp)
		}
	case msg.Action == tea.MouseActionRelease:
		if !p.pressed {
			return
		}
		p.pressed = false
		m.ed.PointerUp(sp)
		if p.panned || !in || cx != p.pressX || cy != p.pressY {
			return
		}
		now := m.now()
		if p.hasLastClick && now.Sub(p.lastClick) <= m.doubleClick && p.lastClickX == cx && p.lastClickY == cy {
			p.hasLastClick = false
			wasDrawing := m.ed.Drawing()
			m.ed.DoubleClick(sp)
			if wasDrawing {
				m.status = fmt.Sprintf("shape finished  shapes=%d", len(m.ed.Shapes()))
			}
			return
		}
		p.hasLastClick = true
		p.lastClick = now
		p.lastClickX, p.lastClickY = cx, cy
		m.ed.Click(sp)
	}
}
