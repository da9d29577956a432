// Package cli wires the shiplog commands: changelog generation, watch mode,
// and build information.
package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/shiplog/internal/errors"
	"github.com/spf13/cobra"
)

// Command group IDs for help output.
const (
	GroupCore     = "core"
	GroupInternal = "internal"
)

var (
	configFlag string
	plainFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "shiplog",
	Short: "Generate a changelog from git history",
	Long: `shiplog builds a changelog from your repository's commit history.

Commits are grouped into releases by tag, classified by subject markers
([Feature], [Bug], [Enhancement], [Deprecate], [Remove]), filtered, and
ordered so that breaking changes always surface first. The result renders
as Markdown, YAML, JSON, or a colorized terminal preview.`,
	Example: `  shiplog generate                         # write CHANGELOG.md
  shiplog generate --unreleased            # include commits since the last tag
  shiplog generate --format terminal       # preview in the terminal
  shiplog generate --include-branch 2.x    # merge releases from another branch
  shiplog generate --watch                 # regenerate on ref changes`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupInternal, Title: "Internal Commands:"},
	)
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default .shiplog.yml)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output (no colors, no spinner)")
}

// Execute runs the root command, printing structured errors to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := errors.AsCLIError(err)
	if cliErr == nil {
		return ExitGenerationFailed
	}
	switch cliErr.Category {
	case errors.Argument:
		return ExitInvalidArguments
	case errors.Configuration:
		return ExitInvalidConfig
	case errors.Prerequisite:
		return ExitMissingPrerequisite
	default:
		return ExitGenerationFailed
	}
}
