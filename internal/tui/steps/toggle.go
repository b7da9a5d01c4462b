package steps

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/tui/theme"
	"github.com/mark3labs/confwiz/internal/wizard"
)

// ToggleOptions configures a Toggle step.
type ToggleOptions struct {
	Key     string
	Label   string
	Default bool
	Help    string
}

// Toggle is a checkbox. Its target steps are enabled while it is checked and
// disabled while it is not.
type Toggle struct {
	wizard.BaseContent

	opts    ToggleOptions
	store   *answers.Store
	checked bool
	targets []*wizard.Step
	focused bool
}

// NewToggle creates a toggle step, initialised from the stored answer when
// there is one.
func NewToggle(store *answers.Store, opts ToggleOptions) *Toggle {
	t := &Toggle{
		BaseContent: wizard.BaseContent{Help: opts.Help},
		opts:        opts,
		store:       store,
		checked:     opts.Default,
	}
	if _, ok := store.Get(opts.Key); ok {
		t.checked = store.Bool(opts.Key)
	}
	t.apply()
	return t
}

// Title returns the checkbox label.
func (t *Toggle) Title() string { return t.opts.Label }

// Key returns the answer key.
func (t *Toggle) Key() string { return t.opts.Key }

// Checked reports the checkbox state.
func (t *Toggle) Checked() bool { return t.checked }

// SetTargets binds the steps this toggle enables and applies the current state.
func (t *Toggle) SetTargets(targets []*wizard.Step) {
	t.targets = targets
	t.apply()
}

// Targets returns the bound steps.
func (t *Toggle) Targets() []*wizard.Step { return t.targets }

// Set changes the checkbox state.
func (t *Toggle) Set(checked bool) {
	t.checked = checked
	t.apply()
}

func (t *Toggle) apply() {
	t.store.Set(t.opts.Key, t.checked)
	for _, target := range t.targets {
		target.SetDisabled(!t.checked)
	}
}

// Reset restores the default state and re-applies it to the targets.
func (t *Toggle) Reset() { t.Set(t.opts.Default) }

// SetSize is a no-op; the checkbox is one line.
func (t *Toggle) SetSize(int, int) {}

// Update flips the checkbox on space or x.
func (t *Toggle) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "space", "x":
			t.Set(!t.checked)
		case "y":
			t.Set(true)
		case "n":
			t.Set(false)
		}
	}
	return nil
}

// View renders the checkbox.
func (t *Toggle) View() string {
	s := theme.Current().S()
	box := "[ ]"
	if t.checked {
		box = "[x]"
	}
	line := box + " " + t.opts.Label
	if t.focused {
		line = s.Selected.Render(line)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		line,
		"",
		RenderHintBar("space", "toggle"),
	)
}

// Focus marks the checkbox focused.
func (t *Toggle) Focus() tea.Cmd {
	t.focused = true
	return nil
}

// Blur clears focus.
func (t *Toggle) Blur() { t.focused = false }
