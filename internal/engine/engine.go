// Package engine ties dialect selection, parsing and parse history together
// for the CLI and the HTTP API.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/leapstack-labs/reposql/internal/state"
	"github.com/leapstack-labs/reposql/pkg/ddl"
	"github.com/leapstack-labs/reposql/pkg/ddl/builtin"
)

// ErrUnknownDialect is returned when a forced dialect is not built in.
var ErrUnknownDialect = errors.New("unknown dialect")

// ErrHistoryDisabled is returned by history lookups when no state store is
// configured.
var ErrHistoryDisabled = errors.New("parse history is disabled")

// Engine parses DDL documents and records each parse.
type Engine struct {
	parsers *ddl.Parsers
	store   state.Store
	logger  *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Dialects lists candidate dialects in priority order. Empty means every
	// built-in dialect in its default order.
	Dialects []string
	// ParallelScoring scores candidates concurrently.
	ParallelScoring bool
	// StatePath is the SQLite history database. Empty disables history.
	StatePath string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Request is one document to parse.
type Request struct {
	Source  string // file name, "stdin" or "api"
	Text    string
	Dialect string // forces a dialect when set
}

// Problem is a warning or error recorded in a parse tree.
type Problem struct {
	Level   string `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// Result is the outcome of parsing one document.
type Result struct {
	RunID        string          `json:"runId,omitempty" yaml:"runId,omitempty"`
	Source       string          `json:"source" yaml:"source"`
	ContentHash  string          `json:"contentHash" yaml:"contentHash"`
	ParserID     string          `json:"parserId" yaml:"parserId"`
	SelfIdentity bool            `json:"selfIdentified" yaml:"selfIdentified"`
	Forced       bool            `json:"forced,omitempty" yaml:"forced,omitempty"`
	Scores       []ddl.Score     `json:"scores,omitempty" yaml:"scores,omitempty"`
	Success      bool            `json:"success" yaml:"success"`
	Error        string          `json:"error,omitempty" yaml:"error,omitempty"`
	Statements   int             `json:"statements" yaml:"statements"`
	Problems     []Problem       `json:"problems,omitempty" yaml:"problems,omitempty"`
	Duration     time.Duration   `json:"-" yaml:"-"`
	Previous     *state.ParseRun `json:"previous,omitempty" yaml:"previous,omitempty"`
	Tree         *ddl.Node       `json:"tree,omitempty" yaml:"tree,omitempty"`
	Err          error           `json:"-" yaml:"-"`
}

// DialectInfo describes a configured dialect.
type DialectInfo struct {
	ID         string   `json:"id" yaml:"id"`
	Pragmas    []string `json:"pragmas" yaml:"pragmas"`
	Keywords   int      `json:"keywords" yaml:"keywords"`
	Statements []string `json:"statements" yaml:"statements"`
}

// New creates an engine. The history store is opened and migrated when
// cfg.StatePath is set.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	candidates := builtin.Parsers()
	if len(cfg.Dialects) > 0 {
		var err error
		if candidates, err = builtin.Select(cfg.Dialects); err != nil {
			return nil, err
		}
	}

	var store state.Store
	if cfg.StatePath != "" {
		s, err := openStore(cfg.StatePath, logger)
		if err != nil {
			return nil, err
		}
		store = s
	}

	return NewWithStore(candidates, store, cfg.ParallelScoring, logger), nil
}

// NewWithStore creates an engine over explicit candidates and an optional
// store.
func NewWithStore(candidates []ddl.Parser, store state.Store, parallel bool, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		parsers: ddl.NewParsers(candidates,
			ddl.WithLogger(logger),
			ddl.WithParallelScoring(parallel)),
		store:  store,
		logger: logger,
	}
}

func openStore(path string, logger *slog.Logger) (*state.SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(path); err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate state store: %w", err)
	}
	return store, nil
}

// Close releases the history store.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// Parsers returns the dispatcher.
func (e *Engine) Parsers() *ddl.Parsers { return e.parsers }

// HasHistory reports whether parses are recorded.
func (e *Engine) HasHistory() bool { return e.store != nil }

// Dialects describes the configured candidates in priority order.
func (e *Engine) Dialects() []DialectInfo {
	var out []DialectInfo
	for _, p := range e.parsers.Candidates() {
		info := DialectInfo{ID: p.ID()}
		if g, ok := p.(*ddl.Grammar); ok {
			info.Pragmas = g.Pragmas()
			info.Keywords = len(g.Keywords())
			info.Statements = g.StatementPhrases()
		}
		out = append(out, info)
	}
	return out
}

// Score reports each candidate's keyword count for text.
func (e *Engine) Score(text string) []ddl.Score {
	return e.parsers.Scores(text)
}

// Parse parses req and records the run. Parse failures are reported on the
// result; the returned error is for an unknown forced dialect or a
// cancelled context.
func (e *Engine) Parse(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Source: req.Source, ContentHash: state.ContentHash(req.Text)}
	root := ddl.NewStatementsRoot()
	start := time.Now()

	var ok bool
	var err error
	if req.Dialect != "" {
		g, found := builtin.Lookup(req.Dialect)
		if !found {
			return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownDialect, req.Dialect, builtin.IDs())
		}
		res.Forced = true
		ok, err = e.parsers.ParseWith(g, req.Text, root)
	} else {
		var sel *ddl.Selection
		sel, err = e.parsers.Select(req.Text)
		if err == nil {
			res.SelfIdentity = sel.SelfIdentity
			res.Scores = sel.Scores
			ok, err = e.parsers.ParseSelection(sel, root)
		}
	}
	res.Duration = time.Since(start)

	res.ParserID = root.PropertyString(ddl.PropParserID)
	if res.ParserID != "" {
		res.Tree = root
		res.Statements, res.Problems = summarize(root)
	}
	res.Success = ok && err == nil
	if err != nil {
		res.Err = err
		res.Error = err.Error()
	}

	e.logger.Debug("parsed document",
		slog.String("source", req.Source),
		slog.String("parser", res.ParserID),
		slog.Bool("success", res.Success),
		slog.Int("statements", res.Statements),
		slog.Duration("duration", res.Duration))

	e.record(ctx, res)
	return res, nil
}

// record stores res, remembering the previous run of the same content.
// History failures never fail a parse.
func (e *Engine) record(ctx context.Context, res *Result) {
	if e.store == nil {
		return
	}
	if prev, err := e.store.LatestByHash(ctx, res.ContentHash); err == nil {
		res.Previous = prev
	} else if !errors.Is(err, state.ErrRunNotFound) {
		e.logger.Warn("history lookup failed", slog.String("error", err.Error()))
	}

	run := &state.ParseRun{
		Source:      res.Source,
		ContentHash: res.ContentHash,
		ParserID:    res.ParserID,
		Success:     res.Success,
		Error:       res.Error,
		Statements:  res.Statements,
		DurationMS:  res.Duration.Milliseconds(),
	}
	if err := e.store.RecordRun(ctx, run); err != nil {
		e.logger.Warn("failed to record parse run", slog.String("error", err.Error()))
		return
	}
	res.RunID = run.ID
}

func summarize(root *ddl.Node) (int, []Problem) {
	statements := 0
	var problems []Problem
	for _, c := range root.Children() {
		if !c.Is(ddl.TypeProblem) {
			statements++
			continue
		}
		problems = append(problems, Problem{
			Level:   c.PropertyString(ddl.PropProblemLevel),
			Message: c.PropertyString(ddl.PropMessage),
			Line:    intProperty(c, ddl.PropProblemLine),
			Column:  intProperty(c, ddl.PropProblemColumn),
		})
	}
	return statements, problems
}

func intProperty(n *ddl.Node, name string) int {
	v, _ := n.Property(name)
	if i, ok := v.(int64); ok {
		return int(i)
	}
	return 0
}

// History returns recent parse runs, newest first.
func (e *Engine) History(ctx context.Context, limit int) ([]*state.ParseRun, error) {
	if e.store == nil {
		return nil, ErrHistoryDisabled
	}
	return e.store.ListRuns(ctx, limit)
}

// Run returns one recorded parse run.
func (e *Engine) Run(ctx context.Context, id string) (*state.ParseRun, error) {
	if e.store == nil {
		return nil, ErrHistoryDisabled
	}
	return e.store.GetRun(ctx, id)
}
