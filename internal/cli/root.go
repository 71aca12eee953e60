// Package cli wires the docullim command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docullim [flags] <patterns...>",
		Short: "Generate docstrings for Python code marked with @docullim",
		Long: `Docullim scans Python files for functions and classes marked with the
@docullim decorator, generates documentation for each one with an LLM, and
prints a JSON report of unit name to annotation text.

Generated annotations are cached under .docullim/ keyed by the unit's
doc-stripped source and prompt template, so unchanged code never triggers a
second generation call. With --write the annotation is also inserted as the
unit's docstring, leaving the rest of the file byte-identical.`,
		Args:          cobra.MinimumNArgs(1),
		RunE:          RunGenerate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringP("config", "c", "", "Path to JSON config file (default: docullim.json)")
	rootCmd.Flags().StringP("model", "m", "", "Override model name from config")
	rootCmd.Flags().BoolP("reset-cache", "r", false, "Reset cache and generate fresh docs")
	rootCmd.Flags().IntP("concurrency", "n", 0, "Max files processed concurrently (default: from config)")
	rootCmd.Flags().BoolP("write", "w", false, "Update source files with generated docstrings")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("docullim %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
