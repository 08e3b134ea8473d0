// Package geom loads read-only reference geometry (overlays) drawn beneath
// editable shapes, and encodes shapes as WKT for inspection.
package geom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
)

// ErrEmpty is returned when a source parses but holds no geometry.
var ErrEmpty = errors.New("no geometries found")

// Data is a minimal geometry container for rendering
type Data struct {
	Points   []orb.Point
	Lines    []orb.LineString
	Polygons []orb.Polygon // polygons with rings (first outer, following holes)
	Bound    orb.Bound
}

// Empty reports whether d holds nothing.
func (d Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

// Counts is a short summary for status lines.
func (d Data) Counts() string {
	return fmt.Sprintf("pts=%d ls=%d poly=%d", len(d.Points), len(d.Lines), len(d.Polygons))
}

func (d *Data) extend(b orb.Bound) {
	if d.Empty() {
		d.Bound = b
		return
	}
	d.Bound = d.Bound.Union(b)
}

// Add appends g, flattening multi-geometries and collections.
func (d *Data) Add(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		d.extend(g.Bound())
		d.Points = append(d.Points, g)
	case orb.MultiPoint:
		for _, p := range g {
			d.Add(p)
		}
	case orb.LineString:
		d.extend(g.Bound())
		d.Lines = append(d.Lines, g)
	case orb.MultiLineString:
		for _, ls := range g {
			d.Add(ls)
		}
	case orb.Ring:
		d.Add(orb.Polygon{g})
	case orb.Polygon:
		d.extend(g.Bound())
		d.Polygons = append(d.Polygons, g)
	case orb.MultiPolygon:
		for _, p := range g {
			d.Add(p)
		}
	case orb.Collection:
		for _, c := range g {
			d.Add(c)
		}
	case orb.Bound:
		d.Add(g.ToPolygon())
	}
}

// Load reads an overlay file, picking the format from its extension.
func Load(path string) (Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".wkt":
		b, err := os.ReadFile(path)
		if err != nil {
			return Data{}, err
		}
		return ParseWKT(string(b))
	}
	return Data{}, fmt.Errorf("unsupported file: %s", ext)
}

// Supported reports whether Load understands the file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".csv", ".wkt":
		return true
	}
	return false
}
