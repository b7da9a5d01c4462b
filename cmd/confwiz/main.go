package main

import (
	"context"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/mark3labs/confwiz/internal/logger"
	"github.com/mark3labs/confwiz/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▀ █▀█ █▄ █ █▀▀ █ █ █ █ ▀█"
	logoText2 = "█▄▄ █▄█ █ ▀█ █▀  ▀▄▀▄▀ █ █▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "confwiz",
	Short: "Section-based configuration wizard for the terminal",
	Args:  cobra.NoArgs,
	RunE:  runWizard,
}

// gradient colors each rune of s between from and to.
func gradient(s, from, to string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	var b strings.Builder
	for i, r := range runes {
		c := theme.InterpolateColor(from, to, float64(i)/float64(len(runes)-1))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(r)))
	}
	return b.String()
}

func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := gradient(logoText1, t.Primary, t.Secondary)
	line2 := gradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

confwiz walks you through a configuration one section at a time and writes
the answers as a YAML or TOML file. Sections unlock as you complete them,
toggles switch dependent steps on and off, and the final review shows what
will change before anything is written.

Every commit can be recorded in an embedded history store and followed by a
post-commit hook.`

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(updateCmd)
}
