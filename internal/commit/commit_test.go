package commit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/definition"
	"github.com/mark3labs/confwiz/internal/history"
	"github.com/mark3labs/confwiz/internal/hooks"
	"github.com/mark3labs/confwiz/internal/tui/steps"
	"github.com/mark3labs/confwiz/internal/tui/testfixtures"
	"github.com/mark3labs/confwiz/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	entries []history.Entry
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, e history.Entry) (history.Entry, error) {
	if f.err != nil {
		return history.Entry{}, f.err
	}
	e.ID = "entry"
	e.Sequence = uint64(len(f.entries) + 1)
	f.entries = append(f.entries, e)
	return e, nil
}

func sampleStore() *answers.Store {
	s := answers.New()
	s.Set("profile", "Prod East")
	s.Set("reporting.enabled", false)
	s.Set("reporting.url", "https://example.com")
	s.Set("log.level", "debug")
	return s
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	c := New(context.Background(), Options{
		Store:      sampleStore(),
		ProfileKey: "profile",
		OutputDir:  dir,
		Disabled:   func() []string { return []string{"reporting.url"} },
	})

	p, err := c.Preview()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prod-east.yaml"), p.Path)
	assert.Equal(t, answers.FormatYAML, p.Format)
	assert.Contains(t, p.Content, "profile: Prod East")
	assert.Contains(t, p.Content, "level: debug")
	assert.NotContains(t, p.Content, "example.com")
	assert.Empty(t, p.Previous)
}

func TestPreview_TOMLAndCustomName(t *testing.T) {
	dir := t.TempDir()
	c := New(context.Background(), Options{
		Store:      sampleStore(),
		ProfileKey: "profile",
		Format:     answers.FormatTOML,
		OutputDir:  dir,
		OutputName: "agent-{{slug}}{{ext}}",
	})

	p, err := c.Preview()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "agent-prod-east.toml"), p.Path)
	assert.Contains(t, p.Content, "[log]")
}

func TestPreview_NoProfile(t *testing.T) {
	c := New(context.Background(), Options{Store: answers.New(), OutputDir: t.TempDir()})
	path, err := c.Path()
	require.NoError(t, err)
	assert.Equal(t, "default.yaml", filepath.Base(path))
}

func TestPreview_BadOutputName(t *testing.T) {
	c := New(context.Background(), Options{Store: sampleStore(), OutputName: "{{host}}.yaml"})
	_, err := c.Preview()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown placeholder")
}

func TestCommit_WritesAndDiffs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := sampleStore()
	rec := &fakeRecorder{}
	c := New(context.Background(), Options{
		Store:      store,
		ProfileKey: "profile",
		OutputDir:  dir,
		History:    rec,
	})

	require.NoError(t, c.Commit())
	path := filepath.Join(dir, "prod-east.yaml")
	assert.Equal(t, path, c.Written())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "profile: Prod East")

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "prod-east", rec.entries[0].Profile)
	assert.Equal(t, path, rec.entries[0].Path)
	assert.Equal(t, string(data), rec.entries[0].Content)
	assert.Equal(t, uint64(1), c.Entry().Sequence)

	store.Set("log.level", "error")
	p, err := c.Preview()
	require.NoError(t, err)
	assert.Equal(t, string(data), p.Previous)
	diff := p.Diff()
	assert.Contains(t, diff, "-  level: debug")
	assert.Contains(t, diff, "+  level: error")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestCommit_HistoryFailure(t *testing.T) {
	c := New(context.Background(), Options{
		Store:     sampleStore(),
		OutputDir: t.TempDir(),
		History:   &fakeRecorder{err: errors.New("stream offline")},
	})
	err := c.Commit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not record history: stream offline")
}

func TestCommit_PostCommitHook(t *testing.T) {
	dir := t.TempDir()
	hookCfg := func(command string) *hooks.Config {
		return &hooks.Config{Hooks: hooks.HooksConfig{PostCommit: &hooks.HookConfig{Command: command}}}
	}

	t.Run("sees the written file", func(t *testing.T) {
		c := New(context.Background(), Options{
			Store:      sampleStore(),
			ProfileKey: "profile",
			OutputDir:  dir,
			WorkDir:    dir,
			Hooks:      hookCfg("test -f {{output}} && test {{slug}} = prod-east"),
		})
		require.NoError(t, c.Commit())
	})

	t.Run("failure rejects the commit", func(t *testing.T) {
		c := New(context.Background(), Options{
			Store:     sampleStore(),
			OutputDir: dir,
			WorkDir:   dir,
			Hooks:     hookCfg("echo validation failed >&2; exit 3"),
		})
		err := c.Commit()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "post-commit hook failed")
		assert.Contains(t, err.Error(), "validation failed")
	})
}

type recordingSurface struct {
	finished bool
	messages []string
}

func (s *recordingSurface) DisplayStep(*wizard.Step) {}
func (s *recordingSurface) ShowBlockingMessage(text string, _ *wizard.Step) {
	s.messages = append(s.messages, text)
}
func (s *recordingSurface) CloseWizard()                {}
func (s *recordingSurface) WizardFinished()             { s.finished = true }
func (s *recordingSurface) SetSectionEnabled(int, bool) {}
func (s *recordingSurface) SetForwardEnabled(bool)      {}

// runToEnd fills the required profile and presses next until the commit runs.
func runToEnd(t *testing.T, w *wizard.Wizard) error {
	t.Helper()
	w.Open()
	for i := 0; i < 20; i++ {
		if text, ok := w.CurrentStep().Content().(*steps.Text); ok && w.CurrentStep().Name() == "profile" {
			text.SetValue("prod")
		}
		atReview := w.CurrentStep().Name() == "review"
		err := w.Next()
		if atReview {
			return err
		}
		require.NoError(t, err)
	}
	t.Fatal("wizard never reached the review step")
	return nil
}

func TestCommit_ThroughWizard(t *testing.T) {
	def, err := definition.Parse([]byte(testfixtures.DefinitionYAML))
	require.NoError(t, err)
	dir := t.TempDir()
	store := answers.New()

	var w *wizard.Wizard
	c := New(context.Background(), Options{
		Store:      store,
		ProfileKey: def.ProfileKey,
		OutputDir:  dir,
		WorkDir:    dir,
		Hooks: &hooks.Config{Hooks: hooks.HooksConfig{
			PostCommit: &hooks.HookConfig{Command: "test -f allow"},
		}},
		Disabled: func() []string { return definition.DisabledKeys(w) },
	})
	w, err = definition.Build(def, definition.Options{Store: store, Commit: c.Commit, Preview: c.Preview})
	require.NoError(t, err)
	surface := &recordingSurface{}
	w.SetSurface(surface)

	// The hook rejects the first attempt: the wizard stays on the review step.
	var commitErr *wizard.CommitError
	require.ErrorAs(t, runToEnd(t, w), &commitErr)
	assert.Equal(t, "review", w.CurrentStep().Name())
	require.NotEmpty(t, surface.messages)
	assert.Contains(t, surface.messages[len(surface.messages)-1], "post-commit hook failed")
	assert.False(t, surface.finished)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "allow"), nil, 0644))
	require.NoError(t, w.Next())
	assert.True(t, surface.finished)
	assert.Equal(t, w.FirstStep(), w.CurrentStep())

	data, err := os.ReadFile(filepath.Join(dir, "prod.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "profile: prod")
	assert.NotContains(t, string(data), "url:", "disabled steps are left out")
	assert.Contains(t, string(data), "enabled: false")
}
