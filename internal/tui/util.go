package tui

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is where the map sits on the terminal, in cells.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var l layout
	l.contentH = max(4, m.height-headerHeight-footerHeight)
	l.contentW = max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	l.mapX = sw
	l.mapY = headerHeight
	l.mapW = max(8, l.contentW-sw-1)
	l.mapH = l.contentH
	return l
}

// inMap converts a terminal cell to a map cell.
func (l layout) inMap(x, y int) (int, int, bool) {
	cx, cy := x-l.mapX, y-l.mapY
	return cx, cy, cx >= 0 && cx < l.mapW && cy >= 0 && cy < l.mapH
}

// resize fits the sidebar and the camera viewport to the current layout.
func (m *Model) resize() {
	l := m.layout()
	m.cam.SetViewport(float64(l.mapW*2), float64(l.mapH*4))
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
	}
}
