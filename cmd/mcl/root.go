package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mcl",
	Short: "Ganymede MCL - configuration language toolchain",
	Long: `Ganymede MCL is a toolchain for MCL configuration documents.

MCL is a small property-list language of strings, dictionaries, and arrays
with a single canonical rendering. The toolchain provides:
  - Canonical formatting (fmt)
  - Syntax validation with precise error locations (lint)
  - Conversion to and from YAML (convert)
  - Key-path lookups for scripting (get)
  - Live reload watching with snapshot history (watch)

For more information, visit: https://github.com/mercator-hq/ganymede`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
