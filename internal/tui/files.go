package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geodraw/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no overlay files in current directory"
	}
}

// loadPath replaces the overlay with the contents of p.
func (m *Model) loadPath(p string) {
	d, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.WithError(err).WithField("path", p).Warn("overlay not loaded")
		return
	}
	m.setOverlay(d, p)
}

// setOverlay installs d as the overlay and points the camera at it.
func (m *Model) setOverlay(d geom.Data, path string) {
	m.overlay = d
	m.selPath = path
	m.showPolys = len(d.Polygons) > 0 || m.showPolys
	m.showLines = len(d.Lines) > 0 || m.showLines
	m.showPoints = len(d.Points) > 0 || m.showPoints
	c := d.Bound.Center()
	m.cam.SetCenter(c.Lon(), c.Lat())
	name := filepath.Base(path)
	if path == "" {
		name = "pasted WKT"
	}
	m.status = "overlay: " + name + "  counts: " + d.Counts()
	m.log.WithField("source", name).WithField("counts", d.Counts()).Info("overlay loaded")
}
