package steps

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/tui/theme"
	"github.com/mark3labs/confwiz/internal/wizard"
)

// TextOptions configures a Text step.
type TextOptions struct {
	Key         string
	Label       string
	Placeholder string
	Default     string
	Help        string
	// Pattern, when set, must match non-empty values.
	Pattern string
	// Error replaces the message shown when Pattern does not match.
	Error    string
	Required bool
	Secret   bool
}

// Text is a single-line input bound to one answer key.
type Text struct {
	wizard.BaseContent

	opts    TextOptions
	pattern *regexp.Regexp
	store   *answers.Store
	input   textinput.Model
	width   int
	focused bool
}

// NewText creates a text step. The initial value is the stored answer when
// there is one, else the default.
func NewText(store *answers.Store, opts TextOptions) (*Text, error) {
	var pattern *regexp.Regexp
	if opts.Pattern != "" {
		p, err := regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern for %s: %w", opts.Key, err)
		}
		pattern = p
	}

	input := textinput.New()
	input.Placeholder = opts.Placeholder
	input.Prompt = ""
	if opts.Secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
	}
	input.SetStyles(inputStyles())
	input.SetWidth(50)

	t := &Text{
		BaseContent: wizard.BaseContent{Help: opts.Help},
		opts:        opts,
		pattern:     pattern,
		store:       store,
		input:       input,
		width:       60,
	}

	value := opts.Default
	if _, ok := store.Get(opts.Key); ok {
		value = store.String(opts.Key)
	}
	t.setValue(value)
	return t, nil
}

func inputStyles() textinput.Styles {
	th := theme.Current()
	return textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(th.Tertiary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(th.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(th.BgOverlay)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(th.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
}

// Title returns the input label.
func (t *Text) Title() string { return t.opts.Label }

// Key returns the answer key.
func (t *Text) Key() string { return t.opts.Key }

// Value returns the current input, trimmed.
func (t *Text) Value() string { return strings.TrimSpace(t.input.Value()) }

// SetValue replaces the input and the stored answer.
func (t *Text) SetValue(v string) { t.setValue(v) }

func (t *Text) setValue(v string) {
	t.input.SetValue(v)
	t.sync()
}

func (t *Text) sync() {
	t.store.Set(t.opts.Key, t.Value())
}

// IsComplete reports whether a required value is present.
func (t *Text) IsComplete() bool {
	return !t.opts.Required || t.Value() != ""
}

// Validate checks the required flag and the pattern.
func (t *Text) Validate() error {
	v := t.Value()
	if v == "" {
		if t.opts.Required {
			return fmt.Errorf("%s is required", t.label())
		}
		return nil
	}
	if t.pattern != nil && !t.pattern.MatchString(v) {
		if t.opts.Error != "" {
			return errors.New(t.opts.Error)
		}
		return fmt.Errorf("%s must match %s", t.label(), t.pattern)
	}
	return nil
}

func (t *Text) label() string {
	if t.opts.Label != "" {
		return t.opts.Label
	}
	return t.opts.Key
}

// Reset restores the default value.
func (t *Text) Reset() { t.setValue(t.opts.Default) }

// SetSize updates the input width.
func (t *Text) SetSize(width, _ int) {
	t.width = width
	w := width - 4
	if w > 70 {
		w = 70
	}
	if w < 10 {
		w = 10
	}
	t.input.SetWidth(w)
}

// Update forwards messages to the input and stores the result.
func (t *Text) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	t.sync()
	return cmd
}

// View renders the label, the input box and a pattern hint.
func (t *Text) View() string {
	s := theme.Current().S()

	box := s.InputBox
	if t.focused {
		box = s.InputBoxFocused
	}

	parts := []string{
		s.Label.Render(t.label()),
		box.Render(t.input.View()),
	}
	if t.Value() != "" {
		if err := t.Validate(); err != nil {
			parts = append(parts, errorLine(err.Error()))
		}
	}
	if t.opts.Required {
		parts = append(parts, s.Muted.Render("required"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Focus focuses the input.
func (t *Text) Focus() tea.Cmd {
	t.focused = true
	return t.input.Focus()
}

// Blur blurs the input.
func (t *Text) Blur() {
	t.focused = false
	t.input.Blur()
}
