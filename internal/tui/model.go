package tui

import (
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"geodraw/internal/config"
	"geodraw/internal/editor"
	"geodraw/internal/geom"
	"geodraw/internal/globe"
)

// pointer tracks the left button between press and release so releases can
// be turned into clicks and double-clicks.
type pointer struct {
	pressed      bool
	pressX       int
	pressY       int
	lastX        int
	lastY        int
	panned       bool
	lastClick    time.Time
	lastClickX   int
	lastClickY   int
	hasLastClick bool
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	log         logrus.FieldLogger
	doubleClick time.Duration
	now         func() time.Time

	cam  *globe.Camera
	host *host
	ed   *editor.Editor
	ptr  *pointer

	// File explorer
	cwd     string
	l       list.Model
	selPath string

	// Overlay data
	overlay geom.Data

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints    bool
	showLines     bool
	showPolys     bool
	showGraticule bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// shapes table
	showShapes bool
	tbl        table.Model
}

// New builds the model from cfg. The editor starts in draw mode.
func New(cfg config.Config, log logrus.FieldLogger) (Model, error) {
	styles, err := cfg.EditorStyles()
	if err != nil {
		return Model{}, err
	}
	cam := globe.New(cfg.Globe.Radius)
	cam.SetCenter(cfg.Globe.CenterLon, cfg.Globe.CenterLat)
	cam.ZoomBy(cfg.Globe.Zoom)
	h := newHost(cam, cfg.Editor.HandlePickRadius)

	m := Model{
		helpVisible:   true,
		status:        "geodraw ready",
		log:           log,
		doubleClick:   time.Duration(cfg.Editor.DoubleClickMS) * time.Millisecond,
		now:           time.Now,
		cam:           cam,
		host:          h,
		ed:            editor.New(h, editor.WithLogger(log), editor.WithStyles(styles)),
		ptr:           &pointer{},
		showPoints:    true,
		showLines:     true,
		showPolys:     true,
		showGraticule: true,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Overlays"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT overlay here (POINT, LINESTRING, POLYGON, MULTI*). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// shapes table setup
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m, nil
}

// NewWithOverlay preloads an overlay file at launch.
func NewWithOverlay(cfg config.Config, log logrus.FieldLogger, path string) (Model, error) {
	m, err := New(cfg, log)
	if err != nil {
		return Model{}, err
	}
	m.loadPath(path)
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }
