// Package commit writes the wizard's answers once every section is done.
package commit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/history"
	"github.com/mark3labs/confwiz/internal/hooks"
	"github.com/mark3labs/confwiz/internal/logger"
	"github.com/mark3labs/confwiz/internal/template"
	"github.com/mark3labs/confwiz/internal/tui/steps"
)

// Recorder stores committed files. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
}

// Options configures a Committer.
type Options struct {
	Store      *answers.Store
	ProfileKey string
	Format     string
	OutputDir  string
	OutputName string
	// WorkDir is where hooks run.
	WorkDir string

	// History and Hooks are optional.
	History Recorder
	Hooks   *hooks.Config
	// Disabled returns the answer keys left out of the output.
	Disabled func() []string
}

// Committer renders, writes and records the output file.
type Committer struct {
	ctx  context.Context
	opts Options

	written string
	entry   history.Entry
}

// New creates a committer. ctx bounds history writes and hook runs.
func New(ctx context.Context, opts Options) *Committer {
	if opts.Store == nil {
		opts.Store = answers.New()
	}
	if opts.Format == "" {
		opts.Format = answers.FormatYAML
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return &Committer{ctx: ctx, opts: opts}
}

// Profile returns the profile answer.
func (c *Committer) Profile() string {
	if c.opts.ProfileKey == "" {
		return ""
	}
	return strings.TrimSpace(c.opts.Store.String(c.opts.ProfileKey))
}

func (c *Committer) vars() template.Variables {
	return template.Variables{
		Profile: c.Profile(),
		Format:  c.opts.Format,
		Ext:     answers.Extension(c.opts.Format),
	}
}

// Path returns where the output file goes.
func (c *Committer) Path() (string, error) {
	name, err := template.FileName(c.opts.OutputName, c.vars())
	if err != nil {
		return "", err
	}
	return filepath.Join(c.opts.OutputDir, name), nil
}

// Output returns the answers that end up in the file.
func (c *Committer) Output() *answers.Store {
	var drop []string
	if c.opts.Disabled != nil {
		drop = c.opts.Disabled()
	}
	return c.opts.Store.Prune(drop)
}

// Preview renders the file without writing it.
func (c *Committer) Preview() (steps.Preview, error) {
	path, err := c.Path()
	if err != nil {
		return steps.Preview{}, err
	}
	data, err := c.Output().Marshal(c.opts.Format)
	if err != nil {
		return steps.Preview{}, fmt.Errorf("rendering %s: %w", c.opts.Format, err)
	}

	p := steps.Preview{Path: path, Format: c.opts.Format, Content: string(data)}
	prev, err := os.ReadFile(path)
	switch {
	case err == nil:
		p.Previous = string(prev)
	case !errors.Is(err, os.ErrNotExist):
		return steps.Preview{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return p, nil
}

// Commit writes the file, records it and runs the post-commit hook. Its
// error message is shown to the user as is.
func (c *Committer) Commit() error {
	p, err := c.Preview()
	if err != nil {
		return err
	}
	if err := writeFile(p.Path, []byte(p.Content)); err != nil {
		return fmt.Errorf("could not write %s: %w", p.Path, err)
	}
	c.written = p.Path
	logger.Info("Wrote %s (%d bytes)", p.Path, len(p.Content))

	if c.opts.History != nil {
		entry, err := c.opts.History.Record(c.ctx, history.Entry{
			Profile: c.vars().Slug(),
			Format:  p.Format,
			Path:    p.Path,
			Content: p.Content,
		})
		if err != nil {
			return fmt.Errorf("could not record history: %w", err)
		}
		c.entry = entry
		logger.Debug("Recorded history entry %s (seq %d)", entry.ID, entry.Sequence)
	}

	if c.opts.Hooks != nil && c.opts.Hooks.Hooks.PostCommit != nil {
		vars := c.vars()
		vars.Output = p.Path
		res, err := hooks.Execute(c.ctx, c.opts.Hooks.Hooks.PostCommit, c.opts.WorkDir, vars)
		if err != nil {
			return fmt.Errorf("post-commit hook: %w", err)
		}
		if !res.OK() {
			logger.Warn("Post-commit hook failed: %v", res.Err)
			msg := fmt.Sprintf("post-commit hook failed: %v", res.Err)
			if out := strings.TrimSpace(res.Output); out != "" {
				msg += "\n\n" + out
			}
			return errors.New(msg)
		}
	}
	return nil
}

// Written returns the path of the last file written, if any.
func (c *Committer) Written() string { return c.written }

// Entry returns the last recorded history entry.
func (c *Committer) Entry() history.Entry { return c.entry }

// writeFile replaces path through a rename so readers never see a partial file.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
