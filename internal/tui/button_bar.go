package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/confwiz/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// ButtonID identifies a nav button for click handling.
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonBack
	ButtonNext
	ButtonHelp
)

// Button represents a single button in the button bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

type buttonSpan struct {
	id         ButtonID
	start, end int
}

// ButtonBar renders a centered row of buttons and remembers where each one
// landed so clicks can be mapped back.
type ButtonBar struct {
	buttons []Button
	width   int
	spans   []buttonSpan
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetButtons replaces the buttons.
func (b *ButtonBar) SetButtons(buttons []Button) {
	b.buttons = buttons
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	b.spans = b.spans[:0]
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	rendered := make([]string, 0, len(b.buttons))
	total := 0
	for _, btn := range b.buttons {
		var r string
		switch btn.State {
		case ButtonDisabled:
			r = s.ButtonDisabled.Render(btn.Label)
		case ButtonFocused:
			r = s.ButtonFocused.Render(btn.Label)
		default: // ButtonNormal
			r = s.ButtonNormal.Render(btn.Label)
		}
		rendered = append(rendered, r)
		total += lipgloss.Width(r)
	}

	left := max((b.width-total)/2, 0)
	x := left
	for i, r := range rendered {
		w := lipgloss.Width(r)
		b.spans = append(b.spans, buttonSpan{id: b.buttons[i].ID, start: x, end: x + w})
		x += w
	}

	return strings.Repeat(" ", left) + strings.Join(rendered, "")
}

// ButtonAt returns the button under column x of the last render. Disabled
// buttons are reported as ButtonNone.
func (b *ButtonBar) ButtonAt(x int) ButtonID {
	for i, span := range b.spans {
		if x >= span.start && x < span.end {
			if b.buttons[i].State == ButtonDisabled {
				return ButtonNone
			}
			return span.id
		}
	}
	return ButtonNone
}

// NavButtons creates the Back / Next-or-Finish / Help set.
// nextEnabled: whether Next button is enabled (false if step incomplete)
// last: whether Next commits, which relabels it "Finish"
func NavButtons(nextEnabled, last, helpVisible bool) []Button {
	nextState := ButtonFocused
	if !nextEnabled {
		nextState = ButtonDisabled
	}
	nextLabel := "Next →"
	if last {
		nextLabel = "Finish ✓"
	}
	helpLabel := "Help"
	if helpVisible {
		helpLabel = "Hide help"
	}

	return []Button{
		{ID: ButtonBack, Label: "← Back", State: ButtonNormal},
		{ID: ButtonNext, Label: nextLabel, State: nextState},
		{ID: ButtonHelp, Label: helpLabel, State: ButtonNormal},
	}
}
