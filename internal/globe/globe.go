// Package globe is an orthographic camera looking at a spherical Earth. It
// maps world points (meters, Earth-centered) to screen points and back.
package globe

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// MeanRadius is the mean Earth radius in meters.
const MeanRadius = 6371008.8

// fill is the share of the shorter viewport side the globe disc spans at zoom 1.
const fill = 0.95

// Camera looks at the globe from above (CenterLon, CenterLat).
type Camera struct {
	Radius float64

	centerLon float64
	centerLat float64
	zoom      float64

	w, h float64
}

// New returns a camera over the prime meridian and equator at zoom 1.
func New(radius float64) *Camera {
	if radius <= 0 {
		radius = MeanRadius
	}
	return &Camera{Radius: radius, zoom: 1}
}

// SetViewport sets the screen size in pixels.
func (c *Camera) SetViewport(w, h float64) {
	c.w, c.h = w, h
}

// Viewport returns the screen size in pixels.
func (c *Camera) Viewport() (w, h float64) { return c.w, c.h }

// SetCenter points the camera at lon/lat. Latitude is clamped to the poles,
// longitude wrapped into [-180, 180).
func (c *Camera) SetCenter(lon, lat float64) {
	c.centerLat = math.Max(-90, math.Min(90, lat))
	c.centerLon = wrapLon(lon)
}

// Center returns the lon/lat under the middle of the screen.
func (c *Camera) Center() orb.Point { return orb.Point{c.centerLon, c.centerLat} }

// Pan moves the camera by the given degrees.
func (c *Camera) Pan(dLon, dLat float64) {
	c.SetCenter(c.centerLon+dLon, c.centerLat+dLat)
}

// PanPixels moves the camera so the surface follows a pointer dragged by
// (dx, dy) pixels.
func (c *Camera) PanPixels(dx, dy float64) {
	s := c.Scale()
	if s == 0 {
		return
	}
	deg := 180 / math.Pi / s
	c.Pan(-dx*deg, dy*deg)
}

// Zoom returns the zoom factor.
func (c *Camera) Zoom() float64 { return c.zoom }

// ZoomBy multiplies the zoom factor, keeping it within [0.25, 512].
func (c *Camera) ZoomBy(f float64) {
	c.zoom = math.Max(0.25, math.Min(512, c.zoom*f))
}

// Scale is the on-screen globe radius in pixels.
func (c *Camera) Scale() float64 {
	return math.Min(c.w, c.h) / 2 * fill * c.zoom
}

func (c *Camera) origin() r2.Point { return r2.Point{X: c.w / 2, Y: c.h / 2} }

// basis returns the local east, north and up unit vectors at the center.
func (c *Camera) basis() (east, north, up r3.Vector) {
	lon := c.centerLon * math.Pi / 180
	lat := c.centerLat * math.Pi / 180
	sinLon, cosLon := math.Sincos(lon)
	sinLat, cosLat := math.Sincos(lat)
	east = r3.Vector{X: -sinLon, Y: cosLon}
	north = r3.Vector{X: -sinLat * cosLon, Y: -sinLat * sinLon, Z: cosLat}
	up = r3.Vector{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}
	return east, north, up
}

// Project maps a world point to the screen. Points on the far side of the
// globe project too; use Visible to tell them apart.
func (c *Camera) Project(v r3.Vector) r2.Point {
	east, north, _ := c.basis()
	s := c.Scale() / c.Radius
	o := c.origin()
	return r2.Point{X: o.X + v.Dot(east)*s, Y: o.Y - v.Dot(north)*s}
}

// Visible reports whether v faces the camera.
func (c *Camera) Visible(v r3.Vector) bool {
	_, _, up := c.basis()
	return v.Dot(up) >= 0
}

// Unproject returns the surface point under p, or false off the disc.
func (c *Camera) Unproject(p r2.Point) (r3.Vector, bool) {
	s := c.Scale()
	if s == 0 {
		return r3.Vector{}, false
	}
	o := c.origin()
	nx := (p.X - o.X) / s
	ny := (o.Y - p.Y) / s
	d2 := nx*nx + ny*ny
	if d2 > 1 {
		return r3.Vector{}, false
	}
	east, north, up := c.basis()
	v := east.Mul(nx).Add(north.Mul(ny)).Add(up.Mul(math.Sqrt(1 - d2)))
	return v.Mul(c.Radius), true
}

// GeoOf returns the lon/lat of a world point.
func (c *Camera) GeoOf(v r3.Vector) orb.Point {
	ll := s2.LatLngFromPoint(s2.Point{Vector: v.Normalize()})
	return orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()}
}

// WorldOf returns the surface point at lon/lat.
func (c *Camera) WorldOf(lon, lat float64) r3.Vector {
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	return p.Vector.Mul(c.Radius)
}

func wrapLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
