package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/cli"
	"mercator-hq/ganymede/pkg/mcl"
	"mercator-hq/ganymede/pkg/mcl/value"
)

var getCmd = &cobra.Command{
	Use:   "get [file] [key-path]",
	Short: "Look up a value by key path",
	Long: `Look up a value in an MCL document by dotted key path.

Dictionary entries are addressed by key, array elements by zero-based
index. String results print as raw text; dictionaries and arrays print
in canonical MCL form.

Examples:
  mcl get config.mcl server.port
  mcl get config.mcl upstreams.0.host`,
	Args: cobra.ExactArgs(2),
	RunE: getValue,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func getValue(cmd *cobra.Command, args []string) error {
	doc, err := mcl.Parse(args[0])
	if err != nil {
		return cli.NewCommandError("get", err)
	}

	v, err := lookupPath(doc, args[1])
	if err != nil {
		return cli.NewCommandError("get", err)
	}

	if text, ok := v.Text(); ok {
		fmt.Println(text)
		return nil
	}

	canonical, err := mcl.Format(v)
	if err != nil {
		return cli.NewCommandError("get", err)
	}
	fmt.Println(canonical)
	return nil
}

// lookupPath walks a dotted key path through dictionaries and arrays.
func lookupPath(v *value.Value, path string) (*value.Value, error) {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch cur.Kind() {
		case value.KindDict:
			next, ok := cur.DictGet(seg)
			if !ok {
				return nil, fmt.Errorf("key %q not found", seg)
			}
			cur = next

		case value.KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return nil, fmt.Errorf("array index %q is not a number", seg)
			}
			next, ok := cur.ArrayAt(idx)
			if !ok {
				return nil, fmt.Errorf("array index %d out of range (len %d)", idx, cur.ArrayLen())
			}
			cur = next

		default:
			return nil, fmt.Errorf("cannot descend into string value at %q", seg)
		}
	}
	return cur, nil
}
