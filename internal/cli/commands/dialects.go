package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "dialects",
		Aliases: []string{"ls"},
		Short:   "List configured dialects",
		Long: `List the configured dialects in priority order with their pragma
aliases, keyword counts and the statements each one recognises.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

func runDialects(cmd *cobra.Command) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	infos := cc.Engine.Dialects()
	if done, err := cc.Renderer.Structured(infos); done || err != nil {
		return err
	}

	rows := make([][]any, 0, len(infos))
	for _, d := range infos {
		rows = append(rows, []any{d.ID, strings.Join(d.Pragmas, ", "), d.Keywords, len(d.Statements)})
	}
	cc.Renderer.Table([]string{"Dialect", "Pragmas", "Keywords", "Statements"}, rows)
	return nil
}
