package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/confwiz/internal/answers"
	"github.com/mark3labs/confwiz/internal/config"
	"github.com/mark3labs/confwiz/internal/hooks"
	"github.com/mark3labs/confwiz/internal/logger"
	"github.com/mark3labs/confwiz/internal/template"
	"github.com/spf13/cobra"
)

var updateFlags struct {
	hooksFile string
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run the configured update command",
	Long: `Run the update hook from the hooks configuration.

The command runs through sh -c in the current directory and may use the
{{format}} and {{ext}} placeholders.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateFlags.hooksFile, "hooks-file", "", "Hooks configuration file")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFlags(cmd.Flags())
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	hooksCfg, err := hooks.LoadConfig(wd, cfg.HooksFile)
	if err != nil {
		return err
	}
	if hooksCfg == nil || hooksCfg.Hooks.Update == nil {
		return fmt.Errorf("no update hook configured\n\nAdd hooks.update.command to %s", cfg.HooksFile)
	}

	vars := template.Variables{Format: cfg.Format, Ext: answers.Extension(cfg.Format)}
	res, err := hooks.Execute(cmd.Context(), hooksCfg.Hooks.Update, wd, vars)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output := strings.TrimSpace(res.Output); output != "" {
		fmt.Fprintln(out, output)
	}
	if !res.OK() {
		logger.Warn("Update hook failed: %v", res.Err)
		return fmt.Errorf("update failed: %w", res.Err)
	}
	fmt.Fprintln(out, "Update finished.")
	return nil
}
