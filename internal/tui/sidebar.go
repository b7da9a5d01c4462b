package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/confwiz/internal/tui/theme"
	"github.com/mattn/go-runewidth"
)

// sidebarItem is one section button.
type sidebarItem struct {
	name    string
	enabled bool
}

// Sidebar lists the sections. Sections past the current progress are drawn
// disabled and ignore clicks.
type Sidebar struct {
	items   []sidebarItem
	current int
	area    uv.Rectangle
	// firstRow is the screen row of the first item in the last draw.
	firstRow int
}

// NewSidebar creates a sidebar for the named sections.
func NewSidebar(names []string) *Sidebar {
	items := make([]sidebarItem, len(names))
	for i, name := range names {
		items[i] = sidebarItem{name: name, enabled: i == 0}
	}
	return &Sidebar{items: items}
}

// SetEnabled updates the affordance of section i.
func (s *Sidebar) SetEnabled(i int, enabled bool) {
	if i >= 0 && i < len(s.items) {
		s.items[i].enabled = enabled
	}
}

// Enabled reports whether section i can be selected.
func (s *Sidebar) Enabled(i int) bool {
	return i >= 0 && i < len(s.items) && s.items[i].enabled
}

// SetCurrent marks section i as the one on screen.
func (s *Sidebar) SetCurrent(i int) {
	s.current = i
}

// Name returns the name of section i.
func (s *Sidebar) Name(i int) string {
	if i < 0 || i >= len(s.items) {
		return ""
	}
	return s.items[i].name
}

// Len returns the number of sections.
func (s *Sidebar) Len() int { return len(s.items) }

// Progress is the share of sections already behind the current one.
func (s *Sidebar) Progress() float64 {
	if len(s.items) == 0 {
		return 0
	}
	return float64(s.current) / float64(len(s.items))
}

// Render builds the sidebar content for the given width.
func (s *Sidebar) Render(width int) string {
	st := theme.Current().S()
	inner := max(width-2, 4)

	lines := []string{st.PanelTitle.UnsetMarginBottom().Render("Sections"), ""}
	for i, item := range s.items {
		marker := " "
		switch {
		case i < s.current:
			marker = "✓"
		case i == s.current:
			marker = "›"
		}
		label := fmt.Sprintf("%s %d %s", marker, i+1, item.name)
		label = runewidth.Truncate(label, inner-1, "…")
		label = runewidth.FillRight(label, inner-1)

		switch {
		case i == s.current:
			label = st.SidebarActive.Render(label)
		case !item.enabled:
			label = st.SidebarDisabled.Render(label)
		default:
			label = st.SidebarItem.Render(label)
		}
		lines = append(lines, label)
	}
	lines = append(lines, "", s.renderProgress(inner))
	return strings.Join(lines, "\n")
}

// renderProgress draws a bar that shades from the primary to the success color.
func (s *Sidebar) renderProgress(width int) string {
	t := theme.Current()
	filled := int(s.Progress() * float64(width))
	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			c := theme.InterpolateColor(t.Primary, t.Success, float64(i)/float64(max(width-1, 1)))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("━"))
			continue
		}
		b.WriteString(t.S().Muted.Render("─"))
	}
	return " " + b.String()
}

// Draw renders the sidebar into area.
func (s *Sidebar) Draw(scr uv.Screen, area uv.Rectangle) {
	s.area = area
	s.firstRow = area.Min.Y + 2
	if area.Dx() == 0 || area.Dy() == 0 {
		return
	}
	content := s.Render(area.Dx() - 1)
	uv.NewStyledString(content).Draw(scr, uv.Rectangle{
		Min: area.Min,
		Max: uv.Position{X: area.Max.X - 1, Y: area.Max.Y},
	})
	DrawVerticalDivider(scr, uv.Rectangle{
		Min: uv.Position{X: area.Max.X - 1, Y: area.Min.Y},
		Max: area.Max,
	}, theme.Current().S().Muted)
}

// SectionAt maps a click to a section index. Disabled sections are not
// reported.
func (s *Sidebar) SectionAt(x, y int) (int, bool) {
	if !inRect(s.area, x, y) {
		return 0, false
	}
	i := y - s.firstRow
	if !s.Enabled(i) {
		return 0, false
	}
	return i, true
}
