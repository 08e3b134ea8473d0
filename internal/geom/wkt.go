package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKT parses one WKT geometry (POINT, MULTIPOINT, LINESTRING,
// MULTILINESTRING, POLYGON, MULTIPOLYGON, GEOMETRYCOLLECTION).
func ParseWKT(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Data{}, fmt.Errorf("wkt: %w", err)
	}
	var d Data
	d.Add(g)
	if d.Empty() {
		return Data{}, fmt.Errorf("wkt: %w", ErrEmpty)
	}
	return d, nil
}

// PolygonWKT encodes an open lon/lat vertex list as a closed WKT polygon.
func PolygonWKT(pts []orb.Point) string {
	if len(pts) == 0 {
		return "POLYGON EMPTY"
	}
	ring := append(orb.Ring(nil), pts...)
	if !ring.Closed() {
		ring = append(ring, pts[0])
	}
	return wkt.MarshalString(orb.Polygon{ring})
}
