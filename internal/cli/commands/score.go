package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/reposql/pkg/ddl"
)

// NewScoreCommand creates the score command.
func NewScoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "score [file]",
		Short: "Show per-dialect keyword scores for a document",
		Long: `Count how many of each dialect's registered keywords appear in a document.

The dialect with the highest count is the one parse would pick when the
document has no dialect pragma. Ties go to the dialect listed first.`,
		Example: `  reposql score schema.sql
  reposql score --dialects postgres,oracle schema.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args)
		},
	}
}

// scoreReport is the structured form of the score command's output.
type scoreReport struct {
	Source string      `json:"source" yaml:"source"`
	Best   string      `json:"best" yaml:"best"`
	Scores []ddl.Score `json:"scores" yaml:"scores"`
}

func runScore(cmd *cobra.Command, args []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	source, text, err := readDocument(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	scores := cc.Engine.Score(text)
	report := scoreReport{Source: source, Best: bestScore(scores), Scores: scores}
	if done, err := cc.Renderer.Structured(report); done || err != nil {
		return err
	}

	r := cc.Renderer
	r.Println(r.FormatHeader(source))
	rows := make([][]any, 0, len(scores))
	for _, s := range scores {
		mark := ""
		if s.ParserID == report.Best {
			mark = "*"
		}
		rows = append(rows, []any{s.ParserID, s.Keywords, mark})
	}
	r.Table([]string{"Dialect", "Keywords", "Best"}, rows)
	return nil
}

// bestScore returns the first candidate with the highest non-zero count.
func bestScore(scores []ddl.Score) string {
	best, top := "", 0
	for _, s := range scores {
		if s.Keywords > top {
			best, top = s.ParserID, s.Keywords
		}
	}
	return best
}
