package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/confwiz/internal/config"
	"github.com/mark3labs/confwiz/internal/definition"
	"github.com/spf13/cobra"
)

var initFlags struct {
	project    bool
	force      bool
	definition string
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a confwiz configuration file",
	Long: `Create a confwiz configuration file with sensible defaults.

By default, creates a global config at ~/.config/confwiz/confwiz.yml.
Use --project to create a project-local config in the current directory, and
--definition to also write the built-in wizard definition there for editing.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	initCmd.Flags().BoolVarP(&initFlags.force, "force", "f", false, "Overwrite existing files")
	initCmd.Flags().StringVarP(&initFlags.definition, "definition", "d", "", "Also write the built-in definition to this path")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if initFlags.project {
		targetPath = config.ProjectPath()
	}

	if !initFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Defaults()
	if initFlags.definition != "" {
		if !initFlags.force && fileExists(initFlags.definition) {
			return fmt.Errorf("definition file already exists at %s\n\nUse --force to overwrite", initFlags.definition)
		}
		if err := os.WriteFile(initFlags.definition, definition.DefaultSource(), 0644); err != nil {
			return fmt.Errorf("failed to write definition: %w", err)
		}
		cfg.Definition = initFlags.definition
	}

	var err error
	if initFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n", targetPath)
	if cfg.Definition != "" {
		fmt.Fprintf(out, "Definition written to: %s\n", cfg.Definition)
	}
	fmt.Fprintln(out, "\nRun 'confwiz' to start the wizard.")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
