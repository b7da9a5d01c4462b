package steps

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/tui/theme"
	"github.com/mark3labs/confwiz/internal/wizard"
)

// ChoiceOptions configures a Choice step.
type ChoiceOptions struct {
	Key     string
	Label   string
	Options []string
	Default string
	Help    string
}

// Choice selects one value from a fixed list.
type Choice struct {
	wizard.BaseContent

	opts     ChoiceOptions
	store    *answers.Store
	selected int
	focused  bool
}

// NewChoice creates a choice step. The stored answer wins over the default
// when it names one of the options.
func NewChoice(store *answers.Store, opts ChoiceOptions) *Choice {
	c := &Choice{
		BaseContent: wizard.BaseContent{Help: opts.Help},
		opts:        opts,
		store:       store,
	}
	c.selected = c.indexOf(opts.Default)
	if i := c.indexOf(store.String(opts.Key)); i >= 0 {
		c.selected = i
	}
	if c.selected < 0 {
		c.selected = 0
	}
	c.sync()
	return c
}

func (c *Choice) indexOf(v string) int {
	for i, o := range c.opts.Options {
		if o == v {
			return i
		}
	}
	return -1
}

func (c *Choice) sync() {
	if len(c.opts.Options) == 0 {
		return
	}
	c.store.Set(c.opts.Key, c.opts.Options[c.selected])
}

// Title returns the label.
func (c *Choice) Title() string { return c.opts.Label }

// Key returns the answer key.
func (c *Choice) Key() string { return c.opts.Key }

// Value returns the selected option.
func (c *Choice) Value() string {
	if len(c.opts.Options) == 0 {
		return ""
	}
	return c.opts.Options[c.selected]
}

// Select picks the option named v.
func (c *Choice) Select(v string) error {
	i := c.indexOf(v)
	if i < 0 {
		return fmt.Errorf("%q is not one of %s", v, strings.Join(c.opts.Options, ", "))
	}
	c.selected = i
	c.sync()
	return nil
}

// IsComplete reports whether there is anything to choose from.
func (c *Choice) IsComplete() bool { return len(c.opts.Options) > 0 }

// Reset restores the default option.
func (c *Choice) Reset() {
	c.selected = c.indexOf(c.opts.Default)
	if c.selected < 0 {
		c.selected = 0
	}
	c.sync()
}

// SetSize is a no-op.
func (c *Choice) SetSize(int, int) {}

// Update moves the selection.
func (c *Choice) Update(msg tea.Msg) tea.Cmd {
	kp, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.opts.Options) == 0 {
		return nil
	}
	switch kp.String() {
	case "up", "k":
		if c.selected > 0 {
			c.selected--
		}
	case "down", "j":
		if c.selected < len(c.opts.Options)-1 {
			c.selected++
		}
	case "home":
		c.selected = 0
	case "end":
		c.selected = len(c.opts.Options) - 1
	}
	c.sync()
	return nil
}

// View renders the option list.
func (c *Choice) View() string {
	s := theme.Current().S()
	lines := []string{s.Label.Render(c.opts.Label)}
	for i, o := range c.opts.Options {
		if i == c.selected {
			marker := "● " + o
			if c.focused {
				marker = s.Selected.Render(marker)
			}
			lines = append(lines, marker)
			continue
		}
		lines = append(lines, s.Muted.Render("○ "+o))
	}
	lines = append(lines, "", RenderHintBar("↑↓", "select"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Focus marks the list focused.
func (c *Choice) Focus() tea.Cmd {
	c.focused = true
	return nil
}

// Blur clears focus.
func (c *Choice) Blur() { c.focused = false }
