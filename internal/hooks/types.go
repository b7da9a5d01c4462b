package hooks

import "github.com/mark3labs/confwiz/internal/template"

// Config is the top-level configuration loaded from .confwiz.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig contains all hook configurations.
type HooksConfig struct {
	// PostCommit runs after the output file is written. A failure rejects the commit.
	PostCommit *HookConfig `yaml:"post_commit"`
	// Update is the self-update command run by `confwiz update`.
	Update *HookConfig `yaml:"update"`
}

// HookConfig defines a single hook's configuration.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout"` // seconds, default 30
}

// DefaultTimeout is the default timeout for hook execution in seconds.
const DefaultTimeout = 30

// Variables holds the placeholders expanded in hook commands.
type Variables = template.Variables

// Result is the outcome of one hook run.
type Result struct {
	// Output holds stdout, followed by stderr when there was any.
	Output string
	// Err is set when the command exited non-zero or timed out.
	Err error
}

// OK reports whether the hook command succeeded.
func (r Result) OK() bool { return r.Err == nil }
