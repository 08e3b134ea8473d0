package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type brailleBuf struct {
	w, h  int                // in cells
	m     [][]uint8          // per-cell 8-bit mask
	c     [][]lipgloss.Color // per-cell color, last writer wins
	glyph [][]rune           // per-cell glyph overriding the braille dots
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]lipgloss.Color, h)
	g := make([][]rune, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]lipgloss.Color, w)
		g[i] = make([]rune, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c, glyph: g}
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, col lipgloss.Color) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
	if col != "" {
		b.c[cy][cx] = col
	}
}

// setGlyph puts a whole character into a cell.
func (b *brailleBuf) setGlyph(cx, cy int, r rune, col lipgloss.Color) {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return
	}
	b.glyph[cy][cx] = r
	b.c[cy][cx] = col
}

// drawLineMicro draws a line on the microgrid using Bresenham. A dash > 0
// leaves gaps of dash pixels between dashes of the same length.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, col lipgloss.Color, dash int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for step := 0; ; step++ {
		if dash <= 0 || (step/dash)%2 == 0 {
			b.setPixel(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// toLines renders the buffer, coloring runs of cells that share a color.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		var runCol lipgloss.Color
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(runCol).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			r := ' '
			switch {
			case b.glyph[y][x] != 0:
				r = b.glyph[y][x]
			case b.m[y][x] != 0:
				r = rune(0x2800 + int(b.m[y][x]))
			}
			col := b.c[y][x]
			if r == ' ' {
				col = ""
			}
			if col != runCol {
				flush()
				runCol = col
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
