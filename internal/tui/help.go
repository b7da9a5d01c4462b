package tui

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/confwiz/internal/tui/steps"
	"github.com/mark3labs/confwiz/internal/tui/theme"
)

// HelpPanel shows the current step's help as rendered markdown.
type HelpPanel struct {
	viewport viewport.Model
	markdown string
	width    int
}

// NewHelpPanel creates an empty help panel.
func NewHelpPanel() *HelpPanel {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(4),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return &HelpPanel{viewport: vp, width: 60}
}

// SetContent replaces the markdown and scrolls to the top.
func (h *HelpPanel) SetContent(markdown string) {
	h.markdown = markdown
	h.render()
	h.viewport.GotoTop()
}

// Content returns the raw markdown.
func (h *HelpPanel) Content() string { return h.markdown }

func (h *HelpPanel) render() {
	h.viewport.SetContent(steps.RenderMarkdown(h.markdown, h.width))
}

// SetSize sizes the panel including its border.
func (h *HelpPanel) SetSize(width, height int) {
	// Border (2) plus horizontal padding (2).
	inner := max(width-4, 10)
	h.viewport.SetWidth(inner)
	h.viewport.SetHeight(max(height-2, 1))
	if inner != h.width {
		h.width = inner
		h.render()
	}
}

// Update scrolls on mouse wheel.
func (h *HelpPanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return cmd
}

// Draw renders the panel into area.
func (h *HelpPanel) Draw(scr uv.Screen, area uv.Rectangle) {
	if area.Dy() == 0 {
		return
	}
	s := theme.Current().S()
	box := s.HelpPanel.
		Width(area.Dx()).
		Height(area.Dy()).
		Render(h.viewport.View())
	uv.NewStyledString(box).Draw(scr, area)
}
