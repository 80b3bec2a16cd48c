package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/cli"
	"mercator-hq/ganymede/pkg/mcl/errors"
	"mercator-hq/ganymede/pkg/mcl/parser"
)

var lintFlags struct {
	file     string
	dir      string
	format   string
	maxDepth int
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate MCL documents",
	Long: `Validate MCL documents for syntax errors.

The lint command parses each document and reports every problem with its
exact line and column:
  - Unterminated quoted strings
  - Misplaced or missing separators
  - Duplicate dictionary keys
  - Trailing content after the document

Examples:
  # Lint single file
  mcl lint --file config.mcl

  # Lint directory
  mcl lint --dir conf/

  # JSON output for CI/CD
  mcl lint --file config.mcl --format json`,
	RunE: lintDocuments,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "document to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of .mcl documents")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
	lintCmd.Flags().IntVar(&lintFlags.maxDepth, "max-depth", 0, "override the maximum nesting depth")
}

func lintDocuments(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string

	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}

	if lintFlags.dir != "" {
		matches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.mcl"))
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return fmt.Errorf("no documents found")
	}

	results := make([]ValidationResult, 0, len(files))

	for _, file := range files {
		results = append(results, validateDocument(file))
	}

	if lintFlags.format == "json" {
		return outputJSON(results)
	}
	return outputText(results)
}

// ValidationResult represents the validation result for a single document.
type ValidationResult struct {
	File   string            `json:"file"`
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func validateDocument(path string) ValidationResult {
	result := ValidationResult{
		File:  path,
		Valid: true,
	}

	p := parser.NewParser()
	if lintFlags.maxDepth > 0 {
		p.WithMaxDepth(lintFlags.maxDepth)
	}

	_, err := p.Parse(path)
	if err != nil {
		result.Valid = false

		if errList, ok := err.(*errors.ErrorList); ok {
			for _, e := range errList.Errors {
				result.Errors = append(result.Errors, toValidationError(e))
			}
		} else if mclErr, ok := err.(*errors.Error); ok {
			result.Errors = append(result.Errors, toValidationError(mclErr))
		} else {
			result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
		}
	}

	return result
}

func toValidationError(e *errors.Error) ValidationError {
	return ValidationError{
		Line:       e.Location.Line,
		Column:     e.Location.Column,
		Message:    e.Message,
		Type:       string(e.Type),
		Suggestion: e.Suggestion,
	}
}

func outputText(results []ValidationResult) error {
	totalErrors := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if len(result.Errors) == 0 {
			fmt.Println("✓ Syntax valid")
		}

		for _, err := range result.Errors {
			fmt.Printf("✗ Error: %s", err.Message)
			if err.Line > 0 {
				fmt.Printf(" (line %d", err.Line)
				if err.Column > 0 {
					fmt.Printf(", col %d", err.Column)
				}
				fmt.Print(")")
			}
			if err.Type != "" {
				fmt.Printf(" [%s]", err.Type)
			}
			fmt.Println()
			if err.Suggestion != "" {
				fmt.Printf("  suggestion: %s\n", err.Suggestion)
			}
			totalErrors++
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d error(s) in %d file(s)\n", totalErrors, len(results))

	if totalErrors > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}

	return nil
}

func outputJSON(results []ValidationResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}
