// Package cli implements the airmd command line with Cobra.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the airmd command tree writing rendered output to
// stdout.
func NewRootCommand(stdout io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "airmd",
		Short: "Render Markdown documents with airmd flavors",
		Long: `airmd renders Markdown into HTML using the standard, prose, live or
highlighted flavor. Live documents execute air-live code blocks.

Usage:
  airmd render <path> [flags]`,
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")

	root.AddCommand(newRenderCommand(&configPath))
	return root
}
