package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/cli"
	"mercator-hq/ganymede/pkg/mcl"
)

var fmtFlags struct {
	write bool
	check bool
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Rewrite MCL documents in canonical form",
	Long: `Rewrite MCL documents in canonical form.

Canonical form sorts dictionary keys, quotes strings only where the grammar
requires it, and uses a fixed layout, so two documents with the same content
always render identically.

Examples:
  # Print the canonical form to stdout
  mcl fmt config.mcl

  # Rewrite files in place
  mcl fmt --write config.mcl extra.mcl

  # Exit non-zero if any file is not canonical (for CI)
  mcl fmt --check config.mcl`,
	Args: cobra.MinimumNArgs(1),
	RunE: formatFiles,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtFlags.write, "write", "w", false, "rewrite files in place")
	fmtCmd.Flags().BoolVar(&fmtFlags.check, "check", false, "exit non-zero if any file is not canonical")
}

func formatFiles(cmd *cobra.Command, args []string) error {
	notCanonical := 0

	for _, path := range args {
		doc, err := mcl.Parse(path)
		if err != nil {
			return cli.NewCommandError("fmt", err)
		}

		canonical, err := mcl.Format(doc)
		if err != nil {
			return cli.NewCommandError("fmt", err)
		}

		original, err := os.ReadFile(path)
		if err != nil {
			return cli.NewCommandError("fmt", err)
		}

		switch {
		case fmtFlags.check:
			if string(original) != canonical+"\n" {
				fmt.Println(path)
				notCanonical++
			}
		case fmtFlags.write:
			if string(original) != canonical+"\n" {
				if err := os.WriteFile(path, []byte(canonical+"\n"), 0o644); err != nil {
					return cli.NewCommandError("fmt", err)
				}
			}
		default:
			fmt.Println(canonical)
		}
	}

	if notCanonical > 0 {
		return cli.NewCommandError("fmt", fmt.Errorf("%d file(s) not in canonical form", notCanonical))
	}
	return nil
}
