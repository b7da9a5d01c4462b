package steps

import (
	"fmt"
	"path/filepath"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/tui/theme"
	"github.com/mark3labs/confwiz/internal/wizard"
)

// Preview is the file a commit would write.
type Preview struct {
	Path    string
	Format  string
	Content string
	// Previous is the current content of Path, empty when the file is new.
	Previous string
}

// Diff returns the unified diff from Previous to Content.
func (p Preview) Diff() string {
	return answers.Diff(p.Previous, p.Content, filepath.Base(p.Path))
}

// PreviewFunc renders the would-be output.
type PreviewFunc func() (Preview, error)

// Review shows the rendered output before the commit.
type Review struct {
	wizard.BaseContent

	title    string
	preview  PreviewFunc
	current  Preview
	err      error
	showDiff bool
	viewport viewport.Model
	width    int

	status    string
	statusErr bool
}

// NewReview creates a review step.
func NewReview(title, help string, preview PreviewFunc) *Review {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(10),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &Review{
		BaseContent: wizard.BaseContent{Help: help},
		title:       title,
		preview:     preview,
		viewport:    vp,
		width:       60,
	}
}

// Title returns the heading.
func (r *Review) Title() string { return r.title }

// Preview returns the last computed preview.
func (r *Review) Preview() (Preview, error) { return r.current, r.err }

// OnEnter recomputes the preview.
func (r *Review) OnEnter() {
	r.status = ""
	r.showDiff = false
	r.refresh()
}

func (r *Review) refresh() {
	if r.preview == nil {
		r.err = fmt.Errorf("nothing to preview")
	} else {
		r.current, r.err = r.preview()
	}
	r.renderContent()
}

func (r *Review) renderContent() {
	switch {
	case r.err != nil:
		r.viewport.SetContent(errorLine(r.err.Error()))
	case r.showDiff:
		diff := r.current.Diff()
		if diff == "" {
			r.viewport.SetContent(theme.Current().S().Muted.Render("No changes against the existing file."))
		} else {
			r.viewport.SetContent(colorizeDiff(diff))
		}
	default:
		r.viewport.SetContent(syntaxHighlight(r.current.Content, r.current.Path))
	}
	r.viewport.GotoTop()
}

// IsComplete reports whether the output rendered.
func (r *Review) IsComplete() bool { return r.err == nil }

// Validate returns the render error, if any.
func (r *Review) Validate() error { return r.err }

// SetSize resizes the viewport.
func (r *Review) SetSize(width, height int) {
	r.width = width
	r.viewport.SetWidth(width)
	h := height - 4
	if h < 3 {
		h = 3
	}
	r.viewport.SetHeight(h)
}

// Update handles diff toggling, copying and scrolling.
func (r *Review) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "d":
			r.showDiff = !r.showDiff
			r.renderContent()
			return nil
		case "ctrl+y":
			r.copy()
			return nil
		case "ctrl+r":
			r.refresh()
			return nil
		}
	}
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return cmd
}

func (r *Review) copy() {
	if r.err != nil {
		return
	}
	if err := copyToClipboard(r.current.Content); err != nil {
		r.status, r.statusErr = "copy failed: "+err.Error(), true
		return
	}
	r.status, r.statusErr = "copied to clipboard", false
}

// View renders the target path, the content or diff and the hint bar.
func (r *Review) View() string {
	s := theme.Current().S()

	header := s.Muted.Render("writes ") + r.current.Path
	if r.current.Previous == "" && r.err == nil {
		header += s.Muted.Render(" (new file)")
	}
	mode := "diff"
	if r.showDiff {
		mode = "content"
	}

	parts := []string{ansi.Truncate(header, r.width, "…"), "", r.viewport.View(), ""}
	switch {
	case r.status == "":
	case r.statusErr:
		parts = append(parts, s.ErrorText.Render(r.status))
	default:
		parts = append(parts, s.SuccessText.Render(r.status))
	}
	parts = append(parts, RenderHintBar("↑↓", "scroll", "d", mode, "ctrl+y", "copy", "enter", "commit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Focus is a no-op.
func (r *Review) Focus() tea.Cmd { return nil }

// Blur is a no-op.
func (r *Review) Blur() {}
