package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/config"
	"github.com/mark3labs/confwiz/internal/history"
	"github.com/mark3labs/confwiz/internal/state"
	"github.com/spf13/cobra"
)

var historyFlags struct {
	json    bool
	diff    bool
	last    bool
	show    uint64
	dataDir string
}

var historyCmd = &cobra.Command{
	Use:   "history [profile]",
	Short: "List committed configurations",
	Long: `List the configurations recorded by earlier commits.

Without a profile every profile is listed. --last picks the profile of the
most recent wizard run, --show prints one entry and --diff shows what the
newest commit of a profile changed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyFlags.json, "json", false, "Print entries as JSON")
	historyCmd.Flags().BoolVar(&historyFlags.diff, "diff", false, "Diff the newest entry against the one before it")
	historyCmd.Flags().BoolVar(&historyFlags.last, "last", false, "Use the profile of the last wizard run")
	historyCmd.Flags().Uint64Var(&historyFlags.show, "show", 0, "Print the content of the entry with this sequence number")
	historyCmd.Flags().StringVar(&historyFlags.dataDir, "data-dir", "", "Directory for history and UI state")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFlags(cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.DataDir == "" {
		return errors.New("data_dir is not set")
	}

	profile := ""
	switch {
	case len(args) == 1:
		profile = args[0]
	case historyFlags.last:
		profile = state.Load(cfg.DataDir).LastProfile
		if profile == "" {
			return errors.New("no wizard run has been committed yet")
		}
	}
	if historyFlags.diff && profile == "" {
		return errors.New("--diff needs a profile")
	}

	ctx := cmd.Context()
	store, err := history.Open(ctx, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List(ctx, profile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case historyFlags.show != 0:
		for _, e := range entries {
			if e.Sequence == historyFlags.show {
				fmt.Fprint(out, e.Content)
				return nil
			}
		}
		return fmt.Errorf("no history entry with sequence %d", historyFlags.show)
	case historyFlags.diff:
		return printDiff(out, profile, entries)
	case historyFlags.json:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling history: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No history recorded.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "#%-4d %s  %-16s %s (%d bytes)\n",
			e.Sequence, e.Timestamp.Format("2006-01-02 15:04:05"), e.Profile, e.Path, len(e.Content))
	}
	return nil
}

func printDiff(out io.Writer, profile string, entries []history.Entry) error {
	switch len(entries) {
	case 0:
		return fmt.Errorf("no history for profile %q", profile)
	case 1:
		fmt.Fprintf(out, "Only one commit recorded for %s.\n", profile)
		return nil
	}
	prev, last := entries[len(entries)-2], entries[len(entries)-1]
	diff := answers.Diff(prev.Content, last.Content, last.Path)
	if diff == "" {
		fmt.Fprintln(out, "No changes.")
		return nil
	}
	fmt.Fprint(out, diff)
	return nil
}
