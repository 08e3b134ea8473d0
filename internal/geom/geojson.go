package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON reads a GeoJSON file: a FeatureCollection, a Feature or a bare
// geometry.
func LoadGeoJSON(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseGeoJSON(b)
}

// ParseGeoJSON decodes GeoJSON bytes into Data.
func ParseGeoJSON(b []byte) (Data, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return Data{}, fmt.Errorf("geojson: %w", err)
	}
	var d Data
	switch head.Type {
	case "":
		return Data{}, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(b)
		if err != nil {
			return Data{}, fmt.Errorf("geojson: %w", err)
		}
		for _, f := range fc.Features {
			if f.Geometry != nil {
				d.Add(f.Geometry)
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(b)
		if err != nil {
			return Data{}, fmt.Errorf("geojson: %w", err)
		}
		if f.Geometry != nil {
			d.Add(f.Geometry)
		}
	default:
		g, err := geojson.UnmarshalGeometry(b)
		if err != nil {
			return Data{}, fmt.Errorf("geojson: %w", err)
		}
		d.Add(g.Geometry())
	}
	if d.Empty() {
		return Data{}, fmt.Errorf("geojson: %w", ErrEmpty)
	}
	return d, nil
}
