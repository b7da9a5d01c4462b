package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/commit"
	"github.com/mark3labs/confwiz/internal/config"
	"github.com/mark3labs/confwiz/internal/definition"
	"github.com/mark3labs/confwiz/internal/history"
	"github.com/mark3labs/confwiz/internal/hooks"
	"github.com/mark3labs/confwiz/internal/logger"
	"github.com/mark3labs/confwiz/internal/state"
	"github.com/mark3labs/confwiz/internal/tui"
	"github.com/mark3labs/confwiz/internal/wizard"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var runFlags struct {
	edit       string
	definition string
	format     string
	outputDir  string
	outputName string
	dataDir    string
	history    bool
	hooksFile  string
	logLevel   string
	logFile    string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the configuration wizard",
	Long: `Start the configuration wizard.

The wizard reads its sections and steps from the definition file, or uses the
built-in definition when none is configured. Pass --edit to start from the
answers of an existing output file.`,
	Args: cobra.NoArgs,
	RunE: runWizard,
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&runFlags.edit, "edit", "e", "", "Prefill answers from an existing YAML or TOML file")
	fs.StringVarP(&runFlags.definition, "definition", "d", "", "Wizard definition file (default: built-in)")
	fs.StringVarP(&runFlags.format, "format", "f", "", "Output format: yaml or toml")
	fs.StringVarP(&runFlags.outputDir, "output-dir", "o", "", "Directory the output file is written to")
	fs.StringVar(&runFlags.outputName, "output-name", "", "Output file name template, e.g. {{slug}}{{ext}}")
	fs.StringVar(&runFlags.dataDir, "data-dir", "", "Directory for history and UI state")
	fs.BoolVar(&runFlags.history, "history", true, "Record committed files in the history store")
	fs.StringVar(&runFlags.hooksFile, "hooks-file", "", "Hooks configuration file")
	fs.StringVar(&runFlags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&runFlags.logFile, "log-file", "", "Write logs to this file")
}

func init() {
	addRunFlags(runCmd.Flags())
	addRunFlags(rootCmd.Flags())
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFlags(cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("confwiz needs an interactive terminal\n\nRun it from a terminal, not through a pipe")
	}

	def, err := definition.Load(cfg.Definition)
	if err != nil {
		return err
	}

	store := answers.New()
	if runFlags.edit != "" {
		prev, err := answers.Load(runFlags.edit)
		if err != nil {
			return fmt.Errorf("loading answers to edit: %w", err)
		}
		store.Merge(prev)
		logger.Info("Prefilled %d answers from %s", prev.Len(), runFlags.edit)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	hooksCfg, err := hooks.LoadConfig(wd, cfg.HooksFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var recorder commit.Recorder
	if cfg.History {
		hist, err := history.Open(ctx, cfg.DataDir)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer func() {
			if err := hist.Close(); err != nil {
				logger.Warn("Closing history: %v", err)
			}
		}()
		recorder = hist
	}

	var w *wizard.Wizard
	committer := commit.New(ctx, commit.Options{
		Store:      store,
		ProfileKey: def.ProfileKey,
		Format:     cfg.Format,
		OutputDir:  cfg.OutputDir,
		OutputName: cfg.OutputName,
		WorkDir:    wd,
		History:    recorder,
		Hooks:      hooksCfg,
		Disabled:   func() []string { return definition.DisabledKeys(w) },
	})
	w, err = definition.Build(def, definition.Options{
		Store:   store,
		Commit:  committer.Commit,
		Preview: committer.Preview,
	})
	if err != nil {
		return err
	}

	outcome, err := tui.Run(ctx, w, os.Stdout, tui.Options{Title: def.Name, DataDir: cfg.DataDir})
	if err != nil {
		return err
	}
	logger.Info("Wizard ended: %s", outcome)
	return report(ctx, cmd, outcome, committer, cfg.DataDir)
}

// report prints how the wizard ended and remembers the committed profile.
func report(ctx context.Context, cmd *cobra.Command, outcome tui.Outcome, c *commit.Committer, dataDir string) error {
	out := cmd.OutOrStdout()
	switch outcome {
	case tui.OutcomeFinished:
		fmt.Fprintf(out, "Wrote %s\n", c.Written())
		if e := c.Entry(); e.ID != "" {
			fmt.Fprintf(out, "Recorded as %s #%d\n", e.Profile, e.Sequence)
		}
		if dataDir != "" {
			ui := state.Load(dataDir)
			ui.LastProfile = c.Entry().Profile
			if ui.LastProfile == "" {
				ui.LastProfile = c.Profile()
			}
			if err := state.Save(dataDir, ui); err != nil {
				logger.Warn("Saving UI state: %v", err)
			}
		}
	case tui.OutcomeClosed:
		fmt.Fprintln(out, "Wizard closed, nothing written.")
	default:
		if ctx.Err() != nil {
			fmt.Fprintln(out, "Interrupted, nothing written.")
			return nil
		}
		fmt.Fprintln(out, "Aborted, nothing written.")
	}
	return nil
}
