// Package steps implements the concrete step kinds of a wizard. Every kind is
// wizard content (completion, validation, help) and a TUI widget at once.
package steps

import (
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/confwiz/internal/wizard"
)

// Widget is the presentation half of a step. The TUI sizes it, moves focus to
// it when its step is displayed and forwards messages to it.
type Widget interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Focus() tea.Cmd
	Blur()
}

// KeyConsumer is implemented by widgets that need a key the TUI would
// otherwise treat as navigation, such as enter in a multi-line editor.
type KeyConsumer interface {
	ConsumesKey(msg tea.KeyPressMsg) bool
}

// Step is a wizard content that can also be drawn.
type Step interface {
	wizard.Content
	Widget
}

// Title is implemented by steps that carry a heading.
type Title interface {
	Title() string
}

var (
	_ Step = (*Info)(nil)
	_ Step = (*Text)(nil)
	_ Step = (*Toggle)(nil)
	_ Step = (*Choice)(nil)
	_ Step = (*Editor)(nil)
	_ Step = (*Review)(nil)
)
