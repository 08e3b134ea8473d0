package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	// Header
	header := titleStyle.Render(" geodraw ─ polygons on a terminal globe ")
	header = lipgloss.NewStyle().Width(l.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showShapes:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(l.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(l.mapH-2, 20))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(l.mapW)
		m.ta.SetHeight(min(l.mapH, 12))
		mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.renderMap(l.mapW, l.mapH))
	}

	// Build inspect popup box (center-left overlay, not in map column)
	popup := ""
	if m.inspectPopup != "" && !m.showShapes {
		maxPopupW := max(20, min(64, l.contentW/2))
		box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MaxWidth(maxPopupW).Render(m.inspectPopup)
		popup = lipgloss.Place(l.contentW, l.contentH, lipgloss.Left, lipgloss.Center, box)
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer / help
	mode := modeStyle.Render(m.ed.Mode().String())
	status := dimStyle.Render(" " + m.statusLine() + " ")
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, mode, status)
	spacerW := max(0, l.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(l.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))
	footer = lipgloss.JoinVertical(lipgloss.Left, footer, m.renderHelp())

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(l.contentW).Height(m.height).Render(ui)
}

// statusLine is the last status message plus drawing and selection state.
func (m Model) statusLine() string {
	parts := []string{m.status}
	if m.ed.Drawing() {
		parts = append(parts, fmt.Sprintf("drawing: %d vertices", m.ed.CommittedCount()))
	}
	if s := m.ed.Selected(); s != nil {
		sel := fmt.Sprintf("selected: #%d", s.ID)
		if m.ed.Dragging() {
			sel += " (rotating)"
		}
		parts = append(parts, sel)
	}
	parts = append(parts, fmt.Sprintf("shapes: %d", len(m.ed.Shapes())))
	return strings.Join(parts, "  │  ")
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"d draw",
		"s select",
		"x delete",
		"c recolor",
		"i inspect",
		"a shapes",
		"↑↓←→ pan",
		"+/- zoom",
		"Tab overlays",
		"p paste",
		"1/2/3 layers",
		"g grid",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
