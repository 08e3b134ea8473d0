// Package geo holds the geographic math behind shape editing: bearings,
// mean centroids, ring rotation about a pivot and screen-space bounds.
package geo

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	gr2 "gonum.org/v1/gonum/spatial/r2"
)

// Bearing returns the great-circle initial bearing from one lon/lat point to
// another, in degrees clockwise from north, in the range (-180, 180].
func Bearing(from, to orb.Point) float64 {
	b := orbgeo.Bearing(from, to)
	if b <= -180 {
		b += 360
	}
	return b
}

// RotationAngle is the signed change in bearing, seen from pivot, between the
// start and current points. Positive values turn clockwise.
func RotationAngle(pivot, start, current orb.Point) float64 {
	return Bearing(pivot, current) - Bearing(pivot, start)
}

// Centroid is the arithmetic mean of the longitudes and of the latitudes.
// It is not a spherical centroid. An empty slice yields the zero point.
func Centroid(pts []orb.Point) orb.Point {
	if len(pts) == 0 {
		return orb.Point{}
	}
	var lon, lat float64
	for _, p := range pts {
		lon += p.Lon()
		lat += p.Lat()
	}
	n := float64(len(pts))
	return orb.Point{lon / n, lat / n}
}

// CloseRing returns pts as a closed ring (first vertex repeated at the end).
func CloseRing(pts []orb.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(pts)+1)
	ring = append(ring, pts...)
	if len(pts) > 0 {
		ring = append(ring, pts[0])
	}
	return ring
}

// RotateRing rotates every vertex of ring by angle degrees clockwise about
// pivot, treating longitude/latitude as a local plane.
func RotateRing(ring orb.Ring, angle float64, pivot orb.Point) orb.Ring {
	out := make(orb.Ring, len(ring))
	if angle == 0 || math.Mod(angle, 360) == 0 {
		copy(out, ring)
		return out
	}
	rot := gr2.NewRotation(-angle*math.Pi/180, gr2.Vec{X: pivot.Lon(), Y: pivot.Lat()})
	for i, p := range ring {
		v := rot.Rotate(gr2.Vec{X: p.Lon(), Y: p.Lat()})
		out[i] = orb.Point{v.X, v.Y}
	}
	return out
}

// RotatePoints rotates an open vertex list about pivot: the list is closed,
// rotated as a ring, and the duplicated closing vertex is dropped again.
func RotatePoints(pts []orb.Point, angle float64, pivot orb.Point) []orb.Point {
	if len(pts) == 0 {
		return nil
	}
	r := RotateRing(CloseRing(pts), angle, pivot)
	return []orb.Point(r[:len(r)-1])
}

// BoundsCorners returns the corners of the axis-aligned box around pts in the
// order (minX,minY), (minX,maxY), (maxX,maxY), (maxX,minY).
func BoundsCorners(pts []r2.Point) ([4]r2.Point, bool) {
	if len(pts) == 0 {
		return [4]r2.Point{}, false
	}
	b := r2.RectFromPoints(pts...)
	return [4]r2.Point{
		{X: b.X.Lo, Y: b.Y.Lo},
		{X: b.X.Lo, Y: b.Y.Hi},
		{X: b.X.Hi, Y: b.Y.Hi},
		{X: b.X.Hi, Y: b.Y.Lo},
	}, true
}
