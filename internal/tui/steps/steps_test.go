package steps

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.Writer.Profile = colorprofile.Ascii
}

func typeText(w Widget, s string) {
	for _, r := range s {
		w.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(w Widget, k string) {
	switch k {
	case "space":
		w.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	case "up":
		w.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	case "down":
		w.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	case "enter":
		w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	default:
		w.Update(tea.KeyPressMsg{Code: rune(k[0]), Text: k})
	}
}

func TestText_RequiredAndPattern(t *testing.T) {
	store := answers.New()
	txt, err := NewText(store, TextOptions{
		Key:      "reporting.url",
		Label:    "Collector URL",
		Pattern:  `^https?://`,
		Error:    "URL must start with http:// or https://",
		Required: true,
	})
	require.NoError(t, err)

	assert.False(t, txt.IsComplete())
	assert.EqualError(t, txt.Validate(), "Collector URL is required")

	txt.Focus()
	typeText(txt, "ftp://x")
	assert.True(t, txt.IsComplete())
	assert.EqualError(t, txt.Validate(), "URL must start with http:// or https://")
	assert.Equal(t, "ftp://x", store.String("reporting.url"), "typing writes through to the store")

	txt.SetValue("https://collector.example.com")
	assert.NoError(t, txt.Validate())
}

func TestText_DefaultPatternMessage(t *testing.T) {
	txt, err := NewText(answers.New(), TextOptions{Key: "port", Pattern: `^[0-9]+$`})
	require.NoError(t, err)

	assert.NoError(t, txt.Validate(), "optional empty value skips the pattern")
	txt.SetValue("eighty")
	assert.EqualError(t, txt.Validate(), "port must match ^[0-9]+$")
}

func TestText_BadPattern(t *testing.T) {
	_, err := NewText(answers.New(), TextOptions{Key: "k", Pattern: "("})
	require.Error(t, err)
}

func TestText_PrefillAndReset(t *testing.T) {
	store := answers.New()
	store.Set("profile", "prod")

	txt, err := NewText(store, TextOptions{Key: "profile", Label: "Profile", Default: "default"})
	require.NoError(t, err)
	assert.Equal(t, "prod", txt.Value(), "stored answer wins over the default")

	var r wizard.Resetter = txt
	r.Reset()
	assert.Equal(t, "default", txt.Value())
	assert.Equal(t, "default", store.String("profile"))
}

func TestText_SecretIsMasked(t *testing.T) {
	txt, err := NewText(answers.New(), TextOptions{Key: "token", Label: "Token", Secret: true, Default: "hunter2"})
	require.NoError(t, err)
	txt.Focus()

	assert.NotContains(t, ansi.Strip(txt.View()), "hunter2")
	assert.Equal(t, "hunter2", txt.Value())
}

func TestToggle_DrivesTargets(t *testing.T) {
	store := answers.New()
	sec := wizard.NewSection("Reporting")
	_, err := sec.AddStep("enable", nil, false)
	require.NoError(t, err)
	target, err := sec.AddStep("url", nil, false)
	require.NoError(t, err)

	tg := NewToggle(store, ToggleOptions{Key: "reporting.enabled", Label: "Enable reporting"})
	tg.SetTargets([]*wizard.Step{target})
	assert.True(t, target.Disabled(), "unchecked toggle disables its targets")
	assert.Equal(t, false, mustGet(t, store, "reporting.enabled"))

	press(tg, "space")
	assert.True(t, tg.Checked())
	assert.False(t, target.Disabled())
	assert.Contains(t, ansi.Strip(tg.View()), "[x] Enable reporting")

	press(tg, "n")
	assert.False(t, tg.Checked())
	press(tg, "y")
	assert.True(t, tg.Checked())

	tg.Reset()
	assert.False(t, tg.Checked())
	assert.True(t, target.Disabled(), "reset re-applies the default to targets")
}

func TestToggle_Prefill(t *testing.T) {
	store := answers.New()
	store.Set("tls", true)
	tg := NewToggle(store, ToggleOptions{Key: "tls", Default: false})
	assert.True(t, tg.Checked())
}

func TestChoice(t *testing.T) {
	store := answers.New()
	c := NewChoice(store, ChoiceOptions{
		Key:     "output.format",
		Label:   "Log format",
		Options: []string{"json", "text", "logfmt"},
		Default: "text",
	})
	assert.Equal(t, "text", c.Value())
	assert.Equal(t, "text", store.String("output.format"))

	press(c, "down")
	press(c, "down")
	assert.Equal(t, "logfmt", c.Value())
	press(c, "up")
	press(c, "up")
	press(c, "up")
	assert.Equal(t, "json", c.Value(), "selection clamps at the top")

	require.Error(t, c.Select("xml"))
	require.NoError(t, c.Select("logfmt"))
	assert.Equal(t, "logfmt", store.String("output.format"))

	c.Reset()
	assert.Equal(t, "text", c.Value())

	assert.False(t, NewChoice(answers.New(), ChoiceOptions{Key: "x"}).IsComplete())
}

func TestChoice_KeyNavigation(t *testing.T) {
	store := answers.New()
	c := NewChoice(store, ChoiceOptions{Key: "level", Options: []string{"info", "debug", "error"}})

	press(c, "j")
	assert.Equal(t, "debug", c.Value())
	press(c, "k")
	assert.Equal(t, "info", c.Value())

	c.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	assert.Equal(t, "error", store.String("level"))
	c.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	assert.Equal(t, "info", store.String("level"))

	c.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Equal(t, "info", c.Value(), "non-key messages leave the selection alone")
}

func TestChoice_PrefillIgnoresUnknown(t *testing.T) {
	store := answers.New()
	store.Set("level", "verbose")
	c := NewChoice(store, ChoiceOptions{Key: "level", Options: []string{"info", "debug"}})
	assert.Equal(t, "info", c.Value())
}

func TestEditor(t *testing.T) {
	store := answers.New()
	e := NewEditor(store, EditorOptions{Key: "notes", Label: "Notes", Required: true})

	assert.True(t, e.ConsumesKey(tea.KeyPressMsg{Code: tea.KeyEnter}))
	assert.False(t, e.ConsumesKey(tea.KeyPressMsg{Code: tea.KeyEscape}))
	assert.EqualError(t, e.Validate(), "Notes is required")

	e.Update(EditorFinishedMsg{editor: e, Content: "line one\nline two\n"})
	assert.Equal(t, "line one\nline two", e.Value())
	assert.Equal(t, "line one\nline two", store.String("notes"))
	assert.NoError(t, e.Validate())

	other := NewEditor(answers.New(), EditorOptions{Key: "other"})
	e.Update(EditorFinishedMsg{editor: other, Content: "ignored"})
	assert.Equal(t, "line one\nline two", e.Value(), "messages for another editor are ignored")

	e.Update(EditorFinishedMsg{editor: e, Err: errors.New("editor crashed")})
	assert.Contains(t, ansi.Strip(e.View()), "editor crashed")

	e.Reset()
	assert.Empty(t, e.Value())
}

func TestReview(t *testing.T) {
	var fail error
	preview := func() (Preview, error) {
		if fail != nil {
			return Preview{}, fail
		}
		return Preview{
			Path:     "out/prod.yaml",
			Format:   "yaml",
			Content:  "a: 2\n",
			Previous: "a: 1\n",
		}, nil
	}
	r := NewReview("Review", "", preview)
	r.SetSize(80, 20)

	r.OnEnter()
	require.NoError(t, r.Validate())
	assert.True(t, r.IsComplete())
	assert.Contains(t, ansi.Strip(r.View()), "out/prod.yaml")
	assert.Contains(t, ansi.Strip(r.View()), "a: 2")

	press(r, "d")
	view := ansi.Strip(r.View())
	assert.Contains(t, view, "-a: 1")
	assert.Contains(t, view, "+a: 2")

	fail = errors.New(`key "a" holds a value and also has nested keys`)
	r.OnEnter()
	assert.False(t, r.IsComplete())
	assert.ErrorIs(t, r.Validate(), fail)
}

func TestReview_Copy(t *testing.T) {
	var copied string
	origSystem, origOSC := clipboardWriteAll, clipboardWriteOSC52
	t.Cleanup(func() { clipboardWriteAll, clipboardWriteOSC52 = origSystem, origOSC })

	clipboardWriteAll = func(s string) error { copied = s; return nil }
	r := NewReview("Review", "", func() (Preview, error) {
		return Preview{Path: "x.toml", Content: "a = 1\n"}, nil
	})
	r.OnEnter()
	r.Update(tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl})
	assert.Equal(t, "a = 1\n", copied)
	assert.Contains(t, ansi.Strip(r.View()), "copied to clipboard")

	clipboardWriteAll = func(string) error { return errors.New("no display") }
	clipboardWriteOSC52 = func(string) error { return errors.New("dumb terminal") }
	r.Update(tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl})
	assert.Contains(t, ansi.Strip(r.View()), "copy failed")
}

func TestInfo(t *testing.T) {
	i := NewInfo("Welcome", "# Hello\n\nThis wizard writes **agent** config.", "")
	i.SetSize(60, 10)

	assert.True(t, i.IsComplete())
	assert.NoError(t, i.Validate())
	assert.Equal(t, wizard.DefaultHelpText, i.HelpText())
	assert.Contains(t, ansi.Strip(i.View()), "Hello")
}

func TestRenderHintBar(t *testing.T) {
	assert.Equal(t, "a one • b two", ansi.Strip(RenderHintBar("a", "one", "b", "two")))
	assert.Empty(t, RenderHintBar("odd"))
}

func TestWriteOSC52Sequence(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")
	var b strings.Builder
	require.NoError(t, writeOSC52Sequence(&b, "hi"))
	assert.Contains(t, b.String(), "]52;c;aGk=")
}

func mustGet(t *testing.T, s *answers.Store, key string) any {
	t.Helper()
	v, ok := s.Get(key)
	require.True(t, ok, "missing %s", key)
	return v
}
