package ddl

import (
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Score is one candidate's keyword count during dialect selection.
type Score struct {
	ParserID string `json:"parserId"`
	Keywords int    `json:"keywords"`
}

// Selection describes how a parser was chosen for an input.
type Selection struct {
	Parser       Parser
	SelfIdentity bool    // chosen by IsType
	Scores       []Score // candidate scores when chosen heuristically
	stream       *Stream
}

// Option configures Parsers.
type Option func(*Parsers)

// WithLogger sets the logger used for selection decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parsers) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithParallelScoring scores candidates concurrently. Ties are still
// resolved by candidate order.
func WithParallelScoring(enabled bool) Option {
	return func(p *Parsers) { p.parallel = enabled }
}

// Parsers selects a dialect parser for DDL text and runs it.
type Parsers struct {
	parsers  []Parser
	logger   *slog.Logger
	parallel bool
}

// NewParsers creates a dispatcher over candidates in priority order. The
// slice is copied; an empty list makes every parse fail with
// ErrNoApplicableDialect.
func NewParsers(candidates []Parser, opts ...Option) *Parsers {
	p := &Parsers{
		parsers: slices.Clone(candidates),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Candidates returns the configured parsers in priority order.
func (p *Parsers) Candidates() []Parser { return slices.Clone(p.parsers) }

// Parse parses text into a new statements container. The root is returned
// whenever a dialect was chosen, together with any parse error; it is nil
// only when no dialect applies.
func (p *Parsers) Parse(text string) (*Node, error) {
	root := NewStatementsRoot()
	if _, err := p.ParseInto(text, root); err != nil {
		if !root.HasProperty(PropParserID) {
			return nil, err
		}
		return root, err
	}
	return root, nil
}

// ParseInto parses text into an existing root and reports whether every
// statement parsed. The root's provenance is set to the chosen dialect
// even when parsing fails.
func (p *Parsers) ParseInto(text string, root *Node) (bool, error) {
	sel, err := p.Select(text)
	if err != nil {
		return false, err
	}
	return p.ParseSelection(sel, root)
}

// ParseSelection parses with the parser and stream chosen by Select. A
// selection can be parsed only once.
func (p *Parsers) ParseSelection(sel *Selection, root *Node) (bool, error) {
	if sel.stream == nil {
		return false, errSelectionUsed
	}
	s := sel.stream
	sel.stream = nil
	return p.run(sel.Parser, s, root)
}

// ParseWith parses text with a specific parser, bypassing selection.
func (p *Parsers) ParseWith(parser Parser, text string, root *Node) (bool, error) {
	s := NewStream(text)
	parser.RegisterWords(s)
	s.Start()
	return p.run(parser, s, root)
}

func (p *Parsers) run(parser Parser, s *Stream, root *Node) (bool, error) {
	root.SetProperty(PropParserID, parser.ID())
	ok, err := parser.Parse(s, root)
	if err != nil {
		p.logger.Debug("parse failed", slog.String("parser", parser.ID()), slog.String("error", err.Error()))
		return false, err
	}
	return ok, nil
}

// Select chooses the parser for text. A parser whose IsType accepts the
// text wins outright, in priority order. Otherwise every candidate scores a
// fresh stream and the strictly highest keyword count wins, the earlier
// candidate winning ties.
func (p *Parsers) Select(text string) (*Selection, error) {
	for _, parser := range p.parsers {
		id, ok := safeID(parser)
		if ok && safeIsType(parser, text) {
			s := NewStream(text)
			safeScore(parser, s)
			if !s.Started() {
				s.Start()
			}
			p.logger.Debug("dialect identified", slog.String("parser", id))
			return &Selection{Parser: parser, SelfIdentity: true, stream: s}, nil
		}
	}

	streams, scores := p.score(text)
	best := -1
	for i, sc := range scores {
		if sc.Keywords > 0 && (best < 0 || sc.Keywords > scores[best].Keywords) {
			best = i
		}
	}
	if best < 0 {
		return nil, &ParseError{
			Pos:     noDialectPos,
			Message: fmt.Sprintf("no valid parser found among %d candidates", len(p.parsers)),
			Err:     ErrNoApplicableDialect,
		}
	}
	s := streams[best]
	s.Rewind()
	p.logger.Debug("dialect selected by keywords",
		slog.String("parser", scores[best].ParserID),
		slog.Int("keywords", scores[best].Keywords))
	return &Selection{Parser: p.parsers[best], Scores: scores, stream: s}, nil
}

// Scores reports every candidate's keyword count for text, in candidate
// order.
func (p *Parsers) Scores(text string) []Score {
	_, scores := p.score(text)
	return scores
}

func (p *Parsers) score(text string) ([]*Stream, []Score) {
	streams := make([]*Stream, len(p.parsers))
	scores := make([]Score, len(p.parsers))
	eval := func(i int) {
		s := NewStream(text)
		streams[i] = s
		id, ok := safeID(p.parsers[i])
		if !ok {
			return
		}
		scores[i] = Score{ParserID: id, Keywords: safeScore(p.parsers[i], s)}
	}
	if !p.parallel {
		for i := range p.parsers {
			eval(i)
		}
		return streams, scores
	}
	var g errgroup.Group
	for i := range p.parsers {
		g.Go(func() error {
			eval(i)
			return nil
		})
	}
	_ = g.Wait()
	return streams, scores
}
