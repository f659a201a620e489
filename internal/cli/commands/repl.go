package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/reposql/internal/cli/output"
	"github.com/leapstack-labs/reposql/internal/engine"
	"github.com/leapstack-labs/reposql/pkg/ddl/builtin"
)

const (
	replPrompt             = "reposql> "
	replContinuationPrompt = "    ...> "
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse DDL interactively",
		Long: `Start an interactive session that parses DDL as you type.

Statements accumulate until a line ends with ";" or a line holds a single
"/". Type .help for session commands.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	historyFile := ""
	if path := cc.Cfg.HistoryPath(); path != "" && path != ":memory:" {
		historyFile = filepath.Join(filepath.Dir(path), "repl_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reposql DDL REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	session := newREPLSession(cc.Engine, cc.Renderer)
	ctx := cmd.Context()
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(session.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if session.handleLine(ctx, line) {
			break
		}
		rl.SetPrompt(session.prompt())
	}
	return nil
}

// replSession holds the state of one interactive session.
type replSession struct {
	engine   *engine.Engine
	renderer *output.Renderer
	dialect  string
	props    bool
	buf      strings.Builder
	last     string
}

func newREPLSession(eng *engine.Engine, r *output.Renderer) *replSession {
	return &replSession{engine: eng, renderer: r}
}

func (s *replSession) prompt() string {
	if s.buf.Len() > 0 {
		return replContinuationPrompt
	}
	return replPrompt
}

func (s *replSession) reset() { s.buf.Reset() }

// handleLine processes one input line and reports whether to quit.
func (s *replSession) handleLine(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		if s.buf.Len() > 0 {
			s.buf.WriteString("\n")
		}
		return false
	}

	if s.buf.Len() == 0 && strings.HasPrefix(trimmed, ".") {
		return s.dotCommand(ctx, trimmed)
	}

	s.buf.WriteString(line)
	s.buf.WriteString("\n")
	if !strings.HasSuffix(trimmed, ";") && trimmed != "/" {
		return false
	}

	text := s.buf.String()
	s.buf.Reset()
	s.last = text
	s.parse(ctx, text)
	return false
}

func (s *replSession) parse(ctx context.Context, text string) {
	res, err := s.engine.Parse(ctx, engine.Request{Source: "repl", Text: text, Dialect: s.dialect})
	if err != nil {
		s.renderer.Warnf("Error: %v", err)
		return
	}
	if done, err := s.renderer.Structured(res); done {
		if err != nil {
			s.renderer.Warnf("Error: %v", err)
		}
		return
	}
	if err := renderResult(s.renderer, res, renderOptions{Tree: true, Properties: s.props}); err != nil {
		s.renderer.Warnf("Error: %v", err)
	}
}

func (s *replSession) dotCommand(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	r := s.renderer

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".dialect":
		if len(parts) < 2 {
			current := s.dialect
			if current == "" {
				current = "auto"
			}
			r.Println(r.FormatKeyValue("dialect", current))
			return false
		}
		name := parts[1]
		if strings.EqualFold(name, "auto") {
			s.dialect = ""
			r.Println(r.FormatKeyValue("dialect", "auto"))
			return false
		}
		g, ok := builtin.Lookup(name)
		if !ok {
			r.Warnf("Unknown dialect %q (available: %s)", name, strings.Join(builtin.IDs(), ", "))
			return false
		}
		s.dialect = g.ID()
		r.Println(r.FormatKeyValue("dialect", s.dialect))

	case ".dialects":
		rows := [][]any{}
		for _, d := range s.engine.Dialects() {
			rows = append(rows, []any{d.ID, strings.Join(d.Pragmas, ", "), d.Keywords})
		}
		r.Table([]string{"Dialect", "Pragmas", "Keywords"}, rows)

	case ".scores":
		if s.last == "" {
			r.Warnf("Nothing parsed yet")
			return false
		}
		rows := [][]any{}
		for _, sc := range s.engine.Score(s.last) {
			rows = append(rows, []any{sc.ParserID, sc.Keywords})
		}
		r.Table([]string{"Dialect", "Keywords"}, rows)

	case ".props":
		s.props = !s.props
		r.Println(r.FormatKeyValue("properties", s.props))

	case ".history":
		limit := 10
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n <= 0 {
				r.Warnf("Usage: .history [n]")
				return false
			}
			limit = n
		}
		runs, err := s.engine.History(ctx, limit)
		if err != nil {
			r.Warnf("Error: %v", err)
			return false
		}
		rows := make([][]any, 0, len(runs))
		for _, run := range runs {
			rows = append(rows, []any{shortID(run.ID), run.Source, run.ParserID, run.Success, run.Statements})
		}
		r.Table([]string{"ID", "Source", "Dialect", "OK", "Statements"}, rows)

	default:
		r.Warnf("Unknown command: %s (type .help for commands)", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .dialect [name]   Show or force the dialect (.dialect auto to detect)
  .dialects         List configured dialects
  .scores           Show keyword scores for the last document
  .props            Toggle node properties in the tree
  .history [n]      Show recent parse runs
  .quit / .exit     Exit the REPL

Tips:
  - Statements are parsed when a line ends with a semicolon (;)
  - A line holding a single / ends a PL/SQL block
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter completes dot-commands and dialect names.
func newREPLCompleter() *readline.PrefixCompleter {
	dialects := []readline.PrefixCompleterInterface{readline.PcItem("auto")}
	for _, id := range builtin.IDs() {
		dialects = append(dialects, readline.PcItem(strings.ToLower(id)))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".dialects"),
		readline.PcItem(".scores"),
		readline.PcItem(".props"),
		readline.PcItem(".history"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
