package commands

import (
	"time"

	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded parse runs",
		Long: `List recent parse runs from the history database, newest first,
or show a single run by id.`,
		Example: `  reposql history
  reposql history --limit 5
  reposql history 0b6c2f3e-2a61-4f8e-9a3e-4c1d3c9d8c11`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runHistoryShow(cmd, args[0])
			}
			return runHistoryList(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to list")

	return cmd
}

func runHistoryList(cmd *cobra.Command, opts *HistoryOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	runs, err := cc.Engine.History(cmd.Context(), opts.Limit)
	if err != nil {
		return err
	}
	if done, err := cc.Renderer.Structured(runs); done || err != nil {
		return err
	}

	rows := make([][]any, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []any{
			shortID(run.ID),
			run.Source,
			run.ParserID,
			run.Success,
			run.Statements,
			time.Duration(run.DurationMS) * time.Millisecond,
			run.CreatedAt.Local().Format(time.DateTime),
		})
	}
	cc.Renderer.Table([]string{"ID", "Source", "Dialect", "OK", "Statements", "Duration", "Created"}, rows)
	return nil
}

func runHistoryShow(cmd *cobra.Command, id string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	run, err := cc.Engine.Run(cmd.Context(), id)
	if err != nil {
		return err
	}
	if done, err := cc.Renderer.Structured(run); done || err != nil {
		return err
	}

	r := cc.Renderer
	r.Println(r.FormatHeader("Run " + run.ID))
	r.Println(r.FormatKeyValue("source", run.Source))
	r.Println(r.FormatKeyValue("content hash", run.ContentHash))
	r.Println(r.FormatKeyValue("dialect", run.ParserID))
	r.Println(r.FormatKeyValue("success", run.Success))
	if run.Error != "" {
		r.Println(r.FormatKeyValue("error", run.Error))
	}
	r.Println(r.FormatKeyValue("statements", run.Statements))
	r.Println(r.FormatKeyValue("duration", time.Duration(run.DurationMS)*time.Millisecond))
	r.Println(r.FormatKeyValue("created", run.CreatedAt.Format(time.RFC3339)))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
