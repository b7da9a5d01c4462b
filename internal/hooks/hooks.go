package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/confwiz/internal/logger"
	"github.com/mark3labs/confwiz/internal/template"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the default name of the hooks configuration file.
const ConfigFileName = ".confwiz.hooks.yml"

// ErrTimeout is reported in Result.Err when a hook runs past its timeout.
var ErrTimeout = errors.New("hook timed out")

// LoadConfig loads the hooks configuration at path. A relative path is
// resolved against workDir, and an empty path means ConfigFileName.
// Returns nil if the config file doesn't exist (hooks are optional).
func LoadConfig(workDir, path string) (*Config, error) {
	if path == "" {
		path = ConfigFileName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No hooks config found at %s", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config: %w", err)
	}

	logger.Debug("Loaded hooks config from %s (version: %d)", path, cfg.Version)
	return &cfg, nil
}

// Execute runs a hook command through sh -c with the hook's timeout.
// Template variables ({{profile}}, {{output}}, {{format}}) are expanded first.
// Command failures land in Result.Err; the returned error is only set when
// ctx itself is done.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (Result, error) {
	if hook == nil || strings.TrimSpace(hook.Command) == "" {
		return Result{}, nil
	}

	command := template.Render(hook.Command, vars)
	logger.Debug("Executing hook command: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		output += "\n[stderr]\n" + stderr.String()
	}

	if execCtx.Err() == context.DeadlineExceeded {
		logger.Warn("Hook command timed out after %ds: %s", timeout, command)
		return Result{Output: output, Err: fmt.Errorf("%w after %ds", ErrTimeout, timeout)}, nil
	}
	if err != nil {
		logger.Warn("Hook command failed: %v", err)
		return Result{Output: output, Err: fmt.Errorf("hook command failed: %w", err)}, nil
	}

	logger.Debug("Hook executed successfully, output length: %d bytes", len(output))
	return Result{Output: output}, nil
}
