package main

import (
	"fmt"
	"io"

	"github.com/mark3labs/confwiz/internal/definition"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [definition]",
	Short: "Validate a wizard definition",
	Long: `Validate a wizard definition and print its sections.

Without an argument the built-in definition is checked. Every problem is
reported, not just the first one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	def, err := definition.Load(path)
	if err != nil {
		return err
	}
	// Build catches what only shows up once toggles are bound.
	if _, err := definition.Build(def, definition.Options{}); err != nil {
		return fmt.Errorf("definition cannot be built: %w", err)
	}
	printSummary(cmd.OutOrStdout(), path, def)
	return nil
}

func printSummary(out io.Writer, path string, def *definition.Definition) {
	if path == "" {
		path = "built-in definition"
	}
	fmt.Fprintf(out, "%s: ok\n\n%s (profile key %q)\n", path, def.Name, def.ProfileKey)
	for i, sec := range def.Sections {
		fmt.Fprintf(out, "  %d. %s\n", i+1, sec.Name)
		for _, st := range sec.Steps {
			line := fmt.Sprintf("     - %s [%s]", st.Name, st.Kind)
			if st.Key != "" {
				line += " " + st.Key
			}
			if len(st.Enables) > 0 {
				line += fmt.Sprintf(" enables %v", st.Enables)
			}
			fmt.Fprintln(out, line)
		}
	}
}
