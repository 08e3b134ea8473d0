// Package config reads the optional TOML configuration file.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"

	"geodraw/internal/editor"
	"geodraw/internal/globe"
)

type Config struct {
	Globe     Globe  `toml:"globe"`
	Editor    Editor `toml:"editor"`
	Style     Styles `toml:"style"`
	Highlight string `toml:"highlight"`
	Log       Log    `toml:"log"`
}

type Globe struct {
	Radius    float64 `toml:"radius"`
	CenterLon float64 `toml:"center_lon"`
	CenterLat float64 `toml:"center_lat"`
	Zoom      float64 `toml:"zoom"`
}

type Editor struct {
	DoubleClickMS    int     `toml:"double_click_ms"`
	HandlePickRadius float64 `toml:"handle_pick_radius"`
}

// Polygon is a polygon style with hex colors.
type Polygon struct {
	Fill         string  `toml:"fill"`
	FillAlpha    float64 `toml:"fill_alpha"`
	Outline      string  `toml:"outline"`
	OutlineWidth float64 `toml:"outline_width"`
	Dashed       bool    `toml:"dashed"`
}

// Marker is a point marker style with hex colors.
type Marker struct {
	Color        string  `toml:"color"`
	OutlineColor string  `toml:"outline_color"`
	PixelSize    float64 `toml:"pixel_size"`
	OutlineWidth float64 `toml:"outline_width"`
}

type Styles struct {
	Drawing  Polygon `toml:"drawing"`
	Shape    Polygon `toml:"shape"`
	Boundary Polygon `toml:"boundary"`
	Handle   Marker  `toml:"handle"`
}

type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Globe: Globe{Radius: globe.MeanRadius, Zoom: 1},
		Editor: Editor{
			DoubleClickMS:    400,
			HandlePickRadius: 3,
		},
		Style: Styles{
			Drawing:  Polygon{Fill: "#ff0000", FillAlpha: 0.5, Outline: "#000000", OutlineWidth: 4},
			Shape:    Polygon{Fill: "#ffffff", FillAlpha: 0, Outline: "#000000", OutlineWidth: 9},
			Boundary: Polygon{Fill: "#ff0000", FillAlpha: 0, Outline: "#0000ff", OutlineWidth: 3, Dashed: true},
			Handle:   Marker{Color: "#ffffff", OutlineColor: "#0000ff", PixelSize: 5, OutlineWidth: 3},
		},
		Highlight: "#00ff00",
		Log:       Log{Level: "info"},
	}
}

// Load decodes path over the defaults. Unknown keys are an error so typos
// do not go unnoticed.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks ranges that would make the viewer unusable.
func (c Config) Validate() error {
	if c.Globe.Radius <= 0 {
		return fmt.Errorf("globe.radius must be positive, got %g", c.Globe.Radius)
	}
	if c.Globe.Zoom <= 0 {
		return fmt.Errorf("globe.zoom must be positive, got %g", c.Globe.Zoom)
	}
	if c.Globe.CenterLat < -90 || c.Globe.CenterLat > 90 {
		return fmt.Errorf("globe.center_lat out of range: %g", c.Globe.CenterLat)
	}
	if c.Editor.DoubleClickMS <= 0 {
		return fmt.Errorf("editor.double_click_ms must be positive, got %d", c.Editor.DoubleClickMS)
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	_, err := c.EditorStyles()
	return err
}

// EditorStyles converts the hex styles to editor styles.
func (c Config) EditorStyles() (editor.Styles, error) {
	var s editor.Styles
	var err error
	if s.Drawing, err = c.Style.Drawing.style("style.drawing"); err != nil {
		return editor.Styles{}, err
	}
	if s.Shape, err = c.Style.Shape.style("style.shape"); err != nil {
		return editor.Styles{}, err
	}
	if s.Boundary, err = c.Style.Boundary.style("style.boundary"); err != nil {
		return editor.Styles{}, err
	}
	if s.Handle, err = c.Style.Handle.style("style.handle"); err != nil {
		return editor.Styles{}, err
	}
	if s.Highlight, err = parseColor("highlight", c.Highlight); err != nil {
		return editor.Styles{}, err
	}
	return s, nil
}

func (p Polygon) style(key string) (editor.Style, error) {
	fill, err := parseColor(key+".fill", p.Fill)
	if err != nil {
		return editor.Style{}, err
	}
	st := editor.Style{
		Fill:         fill,
		FillAlpha:    p.FillAlpha,
		OutlineWidth: p.OutlineWidth,
		Dashed:       p.Dashed,
	}
	if p.Outline != "" {
		if st.OutlineColor, err = parseColor(key+".outline", p.Outline); err != nil {
			return editor.Style{}, err
		}
		st.Outline = true
	}
	return st, nil
}

func (m Marker) style(key string) (editor.MarkerStyle, error) {
	col, err := parseColor(key+".color", m.Color)
	if err != nil {
		return editor.MarkerStyle{}, err
	}
	outline, err := parseColor(key+".outline_color", m.OutlineColor)
	if err != nil {
		return editor.MarkerStyle{}, err
	}
	return editor.MarkerStyle{
		Color:        col,
		PixelSize:    m.PixelSize,
		OutlineColor: outline,
		OutlineWidth: m.OutlineWidth,
	}, nil
}

func parseColor(key, hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}
