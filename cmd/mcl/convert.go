package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/cli"
	"mercator-hq/ganymede/pkg/mcl"
	"mercator-hq/ganymede/pkg/mcl/convert"
)

var convertFlags struct {
	to     string
	output string
}

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert between MCL and YAML",
	Long: `Convert a document between MCL and YAML.

The source format is inferred from the file extension (.mcl or .yaml/.yml)
unless --to pins the target format explicitly. Every scalar crosses the
boundary as a string; MCL has no number or boolean types.

Examples:
  # MCL to YAML on stdout
  mcl convert --to yaml config.mcl

  # YAML to canonical MCL, written to a file
  mcl convert --to mcl --output config.mcl config.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: convertDocument,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFlags.to, "to", "", "target format: mcl, yaml")
	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "output file (default stdout)")
}

func convertDocument(cmd *cobra.Command, args []string) error {
	path := args[0]

	target := convertFlags.to
	if target == "" {
		// Infer from the source extension: convert to the other format.
		if strings.HasSuffix(path, ".mcl") {
			target = "yaml"
		} else {
			target = "mcl"
		}
	}

	var out string
	switch target {
	case "yaml":
		doc, err := mcl.Parse(path)
		if err != nil {
			return cli.NewCommandError("convert", err)
		}
		data, err := convert.ToYAML(doc)
		if err != nil {
			return cli.NewCommandError("convert", err)
		}
		out = string(data)

	case "mcl":
		data, err := os.ReadFile(path)
		if err != nil {
			return cli.NewCommandError("convert", err)
		}
		doc, err := convert.FromYAML(data, path)
		if err != nil {
			return cli.NewCommandError("convert", err)
		}
		text, err := mcl.Format(doc)
		if err != nil {
			return cli.NewCommandError("convert", err)
		}
		out = text + "\n"

	default:
		return fmt.Errorf("unknown target format %q (want mcl or yaml)", target)
	}

	if convertFlags.output != "" {
		return os.WriteFile(convertFlags.output, []byte(out), 0o644)
	}
	fmt.Print(out)
	return nil
}
