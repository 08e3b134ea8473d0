package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/paulmach/orb"

	"geodraw/internal/editor"
	"geodraw/internal/geo"
	"geodraw/internal/geom"
)

// geoVertices returns a shape's vertices as lon/lat.
func (m Model) geoVertices(s *editor.Shape) []orb.Point {
	pos := s.Vertices.Positions()
	out := make([]orb.Point, len(pos))
	for i, v := range pos {
		out[i] = m.host.GeoOf(v)
	}
	return out
}

// refreshShapes rebuilds the shapes table. It reports false when there is
// nothing to list.
func (m *Model) refreshShapes() bool {
	shapes := m.ed.Shapes()
	if len(shapes) == 0 {
		m.status = "no shapes yet"
		return false
	}
	sel := m.ed.Selected()
	rows := make([]table.Row, 0, len(shapes))
	for i, s := range shapes {
		c := geo.Centroid(m.geoVertices(s))
		mark := ""
		if sel != nil && sel.ID == s.ID {
			mark = "*"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			mark,
			fmt.Sprintf("%d", s.ID),
			fmt.Sprintf("%d", s.Vertices.Len()),
			fmt.Sprintf("%.5f", c.Lon()),
			fmt.Sprintf("%.5f", c.Lat()),
			s.Style.OutlineColor.Hex(),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns([]table.Column{
		{Title: "#", Width: 4},
		{Title: "sel", Width: 3},
		{Title: "id", Width: 6},
		{Title: "vertices", Width: 8},
		{Title: "lon", Width: 11},
		{Title: "lat", Width: 11},
		{Title: "outline", Width: 8},
	})
	m.tbl.SetRows(rows)
	return true
}

// inspect describes the selected shape, or the cursor and overlay when
// nothing is selected.
func (m Model) inspect() string {
	if s := m.ed.Selected(); s != nil {
		pts := m.geoVertices(s)
		pivot := m.ed.Pivot()
		return strings.Join([]string{
			fmt.Sprintf("shape: %d", s.ID),
			fmt.Sprintf("vertices: %d", len(pts)),
			fmt.Sprintf("pivot: lon=%.6f lat=%.6f", pivot.Lon(), pivot.Lat()),
			"wkt: " + geom.PolygonWKT(pts),
		}, "\n")
	}
	var meta []string
	if m.hoverHasGeo {
		meta = append(meta, fmt.Sprintf("cursor: lon=%.6f lat=%.6f", m.hoverLon, m.hoverLat))
	}
	c := m.cam.Center()
	meta = append(meta, fmt.Sprintf("center: lon=%.6f lat=%.6f", c.Lon(), c.Lat()))
	if !m.overlay.Empty() {
		name := filepath.Base(m.selPath)
		if m.selPath == "" {
			name = "<pasted>"
		}
		b := m.overlay.Bound
		meta = append(meta,
			fmt.Sprintf("overlay: %s", name),
			fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()),
			fmt.Sprintf("counts: %s", m.overlay.Counts()),
		)
	}
	meta = append(meta, fmt.Sprintf("shapes: %d", len(m.ed.Shapes())))
	return strings.Join(meta, "\n")
}
