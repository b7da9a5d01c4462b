package steps

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/logger"
	"github.com/mark3labs/confwiz/internal/tui/theme"
	"github.com/mark3labs/confwiz/internal/wizard"
)

// EditorOptions configures an Editor step.
type EditorOptions struct {
	Key      string
	Label    string
	Default  string
	Help     string
	Required bool
	// Extension names the temp file handed to $EDITOR, for its syntax mode.
	Extension string
}

// EditorFinishedMsg carries the content written by the external editor.
type EditorFinishedMsg struct {
	editor  *Editor
	Content string
	Err     error
}

// Editor is a multi-line value edited in place or in $EDITOR.
type Editor struct {
	wizard.BaseContent

	opts     EditorOptions
	store    *answers.Store
	textarea textarea.Model
	tmpFile  string
	err      string
	focused  bool
}

var openEditorKey = key.NewBinding(key.WithKeys("ctrl+e"))

// NewEditor creates an editor step.
func NewEditor(store *answers.Store, opts EditorOptions) *Editor {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetWidth(60)
	ta.SetHeight(8)

	th := theme.Current()
	styles := textarea.DefaultDarkStyles()
	styles.Cursor.Color = lipgloss.Color(th.Secondary)
	styles.Cursor.Shape = tea.CursorBlock
	styles.Cursor.Blink = true
	ta.SetStyles(styles)

	e := &Editor{
		BaseContent: wizard.BaseContent{Help: opts.Help},
		opts:        opts,
		store:       store,
		textarea:    ta,
	}
	value := opts.Default
	if _, ok := store.Get(opts.Key); ok {
		value = store.String(opts.Key)
	}
	e.setValue(value)
	return e
}

// Title returns the label.
func (e *Editor) Title() string { return e.opts.Label }

// Key returns the answer key.
func (e *Editor) Key() string { return e.opts.Key }

// Value returns the current text.
func (e *Editor) Value() string { return e.textarea.Value() }

func (e *Editor) setValue(v string) {
	e.textarea.SetValue(v)
	e.sync()
}

func (e *Editor) sync() {
	e.store.Set(e.opts.Key, e.textarea.Value())
}

// IsComplete reports whether a required value is present.
func (e *Editor) IsComplete() bool {
	return !e.opts.Required || strings.TrimSpace(e.Value()) != ""
}

// Validate rejects an empty required value.
func (e *Editor) Validate() error {
	if !e.IsComplete() {
		return fmt.Errorf("%s is required", e.opts.Label)
	}
	return nil
}

// Reset restores the default text.
func (e *Editor) Reset() { e.setValue(e.opts.Default) }

// ConsumesKey keeps enter inside the text area.
func (e *Editor) ConsumesKey(msg tea.KeyPressMsg) bool {
	return msg.String() == "enter"
}

// SetSize resizes the text area, leaving room for the label and hints.
func (e *Editor) SetSize(width, height int) {
	w := width - 4
	if w < 20 {
		w = 20
	}
	e.textarea.SetWidth(w)
	h := height - 5
	if h < 3 {
		h = 3
	}
	if h > 20 {
		h = 20
	}
	e.textarea.SetHeight(h)
}

// Update handles the external editor round trip and forwards everything else
// to the text area.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if key.Matches(msg, openEditorKey) {
			return e.openEditor()
		}
	case EditorFinishedMsg:
		if msg.editor != e {
			return nil
		}
		e.cleanup()
		if msg.Err != nil {
			e.err = msg.Err.Error()
			return nil
		}
		e.err = ""
		e.setValue(strings.TrimRight(msg.Content, "\n"))
		return nil
	}

	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	e.sync()
	return cmd
}

func (e *Editor) cleanup() {
	if e.tmpFile != "" {
		_ = os.Remove(e.tmpFile)
		e.tmpFile = ""
	}
}

// openEditor writes the value to a temp file and suspends the program on $EDITOR.
func (e *Editor) openEditor() tea.Cmd {
	ext := e.opts.Extension
	if ext == "" {
		ext = ".txt"
	}
	tmpfile, err := os.CreateTemp("", "confwiz_*"+ext)
	if err != nil {
		e.err = fmt.Sprintf("creating temp file: %v", err)
		return nil
	}
	if _, err := tmpfile.WriteString(e.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		e.err = fmt.Sprintf("writing temp file: %v", err)
		return nil
	}
	_ = tmpfile.Close()
	e.tmpFile = tmpfile.Name()

	cmd, err := editor.Command("confwiz", tmpfile.Name())
	if err != nil {
		e.cleanup()
		e.err = fmt.Sprintf("no editor available: %v", err)
		return nil
	}

	path := tmpfile.Name()
	logger.Debug("Opening external editor on %s", path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return EditorFinishedMsg{editor: e, Err: err}
		}
		content, err := os.ReadFile(path)
		return EditorFinishedMsg{editor: e, Content: string(content), Err: err}
	})
}

// View renders the label, the text area and hints.
func (e *Editor) View() string {
	s := theme.Current().S()
	box := s.InputBox
	if e.focused {
		box = s.InputBoxFocused
	}
	parts := []string{
		s.Label.Render(e.opts.Label),
		box.Render(e.textarea.View()),
	}
	if e.err != "" {
		parts = append(parts, errorLine(e.err))
	}
	parts = append(parts, RenderHintBar("ctrl+e", "open $EDITOR", "ctrl+n", "next"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Focus focuses the text area.
func (e *Editor) Focus() tea.Cmd {
	e.focused = true
	return e.textarea.Focus()
}

// Blur blurs the text area.
func (e *Editor) Blur() {
	e.focused = false
	e.textarea.Blur()
}
