package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/leapstack-labs/reposql/internal/cli/output"
	"github.com/leapstack-labs/reposql/internal/engine"
)

// renderOptions controls how a parse result is printed.
type renderOptions struct {
	Tree       bool
	Properties bool
	Depth      int
}

// selectionLabel explains how the parser of res was chosen.
func selectionLabel(res *engine.Result) string {
	switch {
	case res.Forced:
		return "forced"
	case res.SelfIdentity:
		return "pragma"
	}
	for _, s := range res.Scores {
		if s.ParserID == res.ParserID {
			return fmt.Sprintf("%d keywords", s.Keywords)
		}
	}
	return "score"
}

// renderResult prints one parse result in text or markdown mode.
func renderResult(r *output.Renderer, res *engine.Result, opts renderOptions) error {
	styles := r.Styles()
	r.Println(r.FormatHeader(res.Source))

	if res.ParserID == "" {
		r.Println(r.FormatKeyValue("dialect", "none"))
	} else {
		r.Println(r.FormatKeyValue("dialect", fmt.Sprintf("%s (%s)", res.ParserID, selectionLabel(res))))
	}
	r.Println(r.FormatKeyValue("statements", res.Statements))
	if len(res.Problems) > 0 {
		r.Println(r.FormatKeyValue("problems", len(res.Problems)))
	}
	if res.Previous != nil {
		r.Println(r.FormatKeyValue("previous run", fmt.Sprintf("%s (%s, %s)",
			res.Previous.ID, res.Previous.ParserID, res.Previous.CreatedAt.Format(time.RFC3339))))
	}

	status := styles.Success.Render("ok")
	if !res.Success {
		status = styles.Error.Render("failed")
	}
	r.Println(r.FormatKeyValue("status", status))
	if res.Error != "" {
		r.Println(r.FormatKeyValue("error", res.Error))
	}

	for _, p := range res.Problems {
		r.Printf("  %s %d:%d %s\n", problemStyle(r, p.Level), p.Line, p.Column, p.Message)
	}

	if opts.Tree && res.Tree != nil {
		r.Println()
		if err := r.RenderTree(res.Tree, output.TreeOptions{Properties: opts.Properties, MaxDepth: opts.Depth}); err != nil {
			return err
		}
	}
	r.Println()
	return nil
}

func problemStyle(r *output.Renderer, level string) string {
	if strings.EqualFold(level, "ERROR") {
		return r.Styles().Error.Render(level)
	}
	return r.Styles().Warning.Render(level)
}

// readDocument returns the text of path, or of stdin for "-".
func readDocument(path string, stdin io.Reader) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "stdin", string(data), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // user supplied document path
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return path, string(data), nil
}
