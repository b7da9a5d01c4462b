package hooks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)
	require.Nil(t, cfg, "missing file means no hooks")

	content := `version: 1
hooks:
  post_commit:
    command: "cat {{output}}"
    timeout: 5
  update:
    command: "echo updating"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err = LoadConfig(dir, "")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Version)
	require.NotNil(t, cfg.Hooks.PostCommit)
	assert.Equal(t, "cat {{output}}", cfg.Hooks.PostCommit.Command)
	assert.Equal(t, 5, cfg.Hooks.PostCommit.Timeout)
	require.NotNil(t, cfg.Hooks.Update)
	assert.Equal(t, 0, cfg.Hooks.Update.Timeout)
}

func TestLoadConfig_CustomPathAndBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hooks.yml"), []byte("hooks: [oops"), 0644))

	_, err := LoadConfig(dir, "hooks.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse hooks config")
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	vars := Variables{Profile: "prod", Output: "chalk.yaml", Format: "yaml"}

	tests := []struct {
		name       string
		hook       *HookConfig
		wantOutput string
		wantErr    bool
	}{
		{name: "nil hook", hook: nil},
		{name: "empty command", hook: &HookConfig{Command: "  "}},
		{
			name:       "expands variables",
			hook:       &HookConfig{Command: "echo {{profile}} {{output}} {{format}}"},
			wantOutput: "prod chalk.yaml yaml\n",
		},
		{
			name:       "stderr appended",
			hook:       &HookConfig{Command: "echo out; echo warn >&2"},
			wantOutput: "out\n\n[stderr]\nwarn\n",
		},
		{
			name:       "non-zero exit",
			hook:       &HookConfig{Command: "echo partial; exit 3"},
			wantOutput: "partial\n",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Execute(ctx, tt.hook, dir, vars)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutput, res.Output)
			assert.Equal(t, !tt.wantErr, res.OK())
		})
	}
}

func TestExecute_RunsInWorkDir(t *testing.T) {
	dir := t.TempDir()
	res, err := Execute(context.Background(), &HookConfig{Command: "touch marker"}, dir, Variables{})
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.FileExists(t, filepath.Join(dir, "marker"))
}

func TestExecute_Timeout(t *testing.T) {
	res, err := Execute(context.Background(), &HookConfig{Command: "sleep 5", Timeout: 1}, t.TempDir(), Variables{})
	require.NoError(t, err)
	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, ErrTimeout))
}

func TestExecute_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Execute(ctx, &HookConfig{Command: "echo never"}, t.TempDir(), Variables{})
	require.ErrorIs(t, err, context.Canceled)
}
