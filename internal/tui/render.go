package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"

	"geodraw/internal/editor"
	"geodraw/internal/scene"
)

// fillThreshold is the fill opacity below which polygons are drawn hollow;
// braille dots cannot blend.
const fillThreshold = 0.25

// termColor maps a style color onto the terminal. Colors too dark to read on
// the dark background fall back to the base foreground.
func termColor(c colorful.Color) lipgloss.Color {
	if l, _, _ := c.Lab(); l < 0.3 {
		return baseFg
	}
	return lipgloss.Color(c.Hex())
}

// cellPoint is the screen point at the middle of a map cell.
func cellPoint(cx, cy int) editor.ScreenPoint {
	return r2.Point{X: float64(cx*2 + 1), Y: float64(cy*4 + 2)}
}

func micro(p r2.Point) [2]int {
	return [2]int{int(math.Floor(p.X)), int(math.Floor(p.Y))}
}

// projectWorld returns the micro-pixel position of a world point on the near
// hemisphere.
func (m Model) projectWorld(v r3.Vector) ([2]int, bool) {
	if !m.cam.Visible(v) {
		return [2]int{}, false
	}
	return micro(m.cam.Project(v)), true
}

func (m Model) projectGeo(p orb.Point) ([2]int, bool) {
	return m.projectWorld(m.cam.WorldOf(p.Lon(), p.Lat()))
}

// screenPath projects a lon/lat path, splitting it where it crosses onto the
// far side of the globe.
func (m Model) screenPath(pts []orb.Point) [][][2]int {
	var out [][][2]int
	var cur [][2]int
	for _, p := range pts {
		q, ok := m.projectGeo(p)
		if !ok {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, q)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func (b *brailleBuf) polyline(pts [][2]int, closed bool, col lipgloss.Color, dash int) {
	if len(pts) == 1 {
		b.setPixel(pts[0][0], pts[0][1], col)
		return
	}
	for i := 0; i+1 < len(pts); i++ {
		b.drawLineMicro(pts[i][0], pts[i][1], pts[i+1][0], pts[i+1][1], col, dash)
	}
	if closed && len(pts) > 2 {
		a, z := pts[len(pts)-1], pts[0]
		b.drawLineMicro(a[0], a[1], z[0], z[1], col, dash)
	}
}

// fillRing fills a ring with the even-odd rule per micro scanline.
func (b *brailleBuf) fillRing(ring [][2]int, col lipgloss.Color) {
	hMic := b.h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a[1] == c[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], c[1]
			x0, x1 := a[0], c[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				b.setPixel(xMic, yMic, col)
			}
		}
	}
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)

	m.drawDisc(br)
	if m.showGraticule {
		m.drawGraticule(br)
	}
	m.drawOverlay(br)

	f := m.host.Frame()
	for _, p := range f.Polygons {
		m.drawPolygon(br, p)
	}
	for _, mk := range f.Markers {
		m.drawMarker(br, mk)
	}

	if m.hovering && m.host.crosshair {
		br.setGlyph(m.hoverCellX, m.hoverCellY, '┼', accentFg)
	}
	return strings.Join(br.toLines(), "\n")
}

// drawDisc outlines the globe's limb.
func (m Model) drawDisc(br *brailleBuf) {
	r := m.cam.Scale()
	if r <= 0 {
		return
	}
	vw, vh := m.cam.Viewport()
	const steps = 360
	ring := make([][2]int, 0, steps)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		ring = append(ring, micro(r2.Point{X: vw/2 + r*math.Cos(a), Y: vh/2 + r*math.Sin(a)}))
	}
	br.polyline(ring, true, limbFg, 0)
}

// drawGraticule draws meridians and parallels every 30 degrees.
func (m Model) drawGraticule(br *brailleBuf) {
	for lon := -180.0; lon < 180; lon += 30 {
		var pts []orb.Point
		for lat := -90.0; lat <= 90; lat += 2 {
			pts = append(pts, orb.Point{lon, lat})
		}
		for _, seg := range m.screenPath(pts) {
			br.polyline(seg, false, gridFg, 2)
		}
	}
	for lat := -60.0; lat <= 60; lat += 30 {
		var pts []orb.Point
		for lon := -180.0; lon <= 180; lon += 2 {
			pts = append(pts, orb.Point{lon, lat})
		}
		for _, seg := range m.screenPath(pts) {
			br.polyline(seg, false, gridFg, 2)
		}
	}
}

// drawOverlay draws the read-only reference layer.
func (m Model) drawOverlay(br *brailleBuf) {
	if m.showPolys {
		for _, poly := range m.overlay.Polygons {
			for _, ring := range poly {
				for _, seg := range m.screenPath(ring) {
					br.polyline(seg, false, overlayFg, 0)
				}
			}
		}
	}
	if m.showLines {
		for _, ls := range m.overlay.Lines {
			for _, seg := range m.screenPath(ls) {
				br.polyline(seg, false, overlayFg, 0)
			}
		}
	}
	if m.showPoints {
		for _, p := range m.overlay.Points {
			if q, ok := m.projectGeo(p); ok {
				br.setPixel(q[0], q[1], overlayFg)
			}
		}
	}
}

func (m Model) drawPolygon(br *brailleBuf, p scene.PolygonItem) {
	ring := make([][2]int, 0, len(p.Positions))
	for _, v := range p.Positions {
		if q, ok := m.projectWorld(v); ok {
			ring = append(ring, q)
		}
	}
	if len(ring) == 0 {
		return
	}
	if p.Style.FillAlpha >= fillThreshold && len(ring) >= 3 {
		br.fillRing(ring, termColor(p.Style.Fill))
	}
	if !p.Style.Outline {
		return
	}
	dash := 0
	if p.Style.Dashed {
		dash = 3
	}
	col := termColor(p.Style.OutlineColor)
	br.polyline(ring, true, col, dash)
	if p.Style.OutlineWidth >= 6 {
		// heavy outlines get a second pass one micro pixel to the right
		shifted := make([][2]int, len(ring))
		for i, q := range ring {
			shifted[i] = [2]int{q[0] + 1, q[1]}
		}
		br.polyline(shifted, true, col, dash)
	}
}

// drawMarker draws a square Color core sized by PixelSize inside an
// OutlineColor ring one micro pixel wide per 3 px of OutlineWidth.
func (m Model) drawMarker(br *brailleBuf, mk scene.MarkerItem) {
	q, ok := m.projectWorld(mk.Position)
	if !ok {
		return
	}
	core := max(1, int(mk.Style.PixelSize/4))
	ring := int(math.Round(mk.Style.OutlineWidth / 3))
	if ring > 0 {
		br.square(q, core+ring, termColor(mk.Style.OutlineColor))
	}
	br.square(q, core, termColor(mk.Style.Color))
}

func (b *brailleBuf) square(c [2]int, r int, col lipgloss.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			b.setPixel(c[0]+dx, c[1]+dy, col)
		}
	}
}
