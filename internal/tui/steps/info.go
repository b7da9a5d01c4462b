package steps

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/confwiz/internal/wizard"
)

// Info shows a block of markdown. It is always complete.
type Info struct {
	wizard.BaseContent

	title    string
	body     string
	viewport viewport.Model
	width    int

	// width the body was last rendered at
	renderedAt int
}

// NewInfo creates an info step.
func NewInfo(title, body, help string) *Info {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(10),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	i := &Info{
		BaseContent: wizard.BaseContent{Help: help},
		title:       title,
		body:        body,
		viewport:    vp,
		width:       60,
	}
	i.render()
	return i
}

// Title returns the step heading.
func (i *Info) Title() string { return i.title }

func (i *Info) render() {
	if i.renderedAt == i.width {
		return
	}
	i.viewport.SetContent(RenderMarkdown(i.body, i.width))
	i.renderedAt = i.width
}

// SetSize updates the viewport and re-renders the body for the new width.
func (i *Info) SetSize(width, height int) {
	i.width = width
	i.viewport.SetWidth(width)
	if height < 3 {
		height = 3
	}
	i.viewport.SetHeight(height)
	i.render()
}

// Update scrolls the body.
func (i *Info) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.viewport, cmd = i.viewport.Update(msg)
	return cmd
}

// View renders the body.
func (i *Info) View() string {
	return i.viewport.View()
}

// Focus is a no-op; info steps take no input.
func (i *Info) Focus() tea.Cmd { return nil }

// Blur is a no-op.
func (i *Info) Blur() {}
