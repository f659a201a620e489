package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/reposql/internal/engine"
	"github.com/leapstack-labs/reposql/pkg/ddl/builtin"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Dialect    string
	Properties bool
	Depth      int
	Summary    bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse DDL files into a parse tree",
		Long: `Parse one or more DDL files and print the resulting parse tree.

Without arguments, or with "-", the document is read from stdin. The dialect
is taken from a "-- dialect: <name>" pragma when present, otherwise every
configured dialect scores the text and the highest keyword count wins.`,
		Example: `  # Parse a file, letting reposql pick the dialect
  reposql parse schema.sql

  # Force the Oracle grammar and show node properties
  reposql parse --dialect oracle --props schema.sql

  # Parse stdin and emit JSON
  cat schema.sql | reposql parse -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "Force a dialect instead of detecting it")
	cmd.Flags().BoolVar(&opts.Properties, "props", false, "Show node properties in the tree")
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "Limit tree depth (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Print only the summary, not the tree")
	_ = cmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return builtin.IDs(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 0 {
		args = []string{"-"}
	}

	ctx := cmd.Context()
	var results []*engine.Result
	for _, path := range args {
		source, text, err := readDocument(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		res, err := cc.Engine.Parse(ctx, engine.Request{Source: source, Text: text, Dialect: opts.Dialect})
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	var structured any = results
	if len(results) == 1 {
		structured = results[0]
	}
	done, err := cc.Renderer.Structured(structured)
	if err != nil {
		return err
	}
	if !done {
		ro := renderOptions{Tree: !opts.Summary, Properties: opts.Properties, Depth: opts.Depth}
		for _, res := range results {
			if err := renderResult(cc.Renderer, res, ro); err != nil {
				return err
			}
		}
	}

	return parseFailures(results)
}

var errParseFailed = errors.New("parse failed")

// parseFailures returns an error naming how many documents failed.
func parseFailures(results []*engine.Result) error {
	failed := 0
	var first error
	for _, res := range results {
		if res.Success {
			continue
		}
		failed++
		if first == nil {
			first = res.Err
			if first == nil {
				first = errParseFailed
			}
		}
	}
	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		return fmt.Errorf("%s: %w", results[0].Source, first)
	default:
		return fmt.Errorf("%d of %d documents failed to parse: %w", failed, len(results), first)
	}
}
