package ddl

import (
	"strings"

	"github.com/leapstack-labs/reposql/pkg/token"
)

// Parser is implemented by every dialect grammar.
type Parser interface {
	// ID returns the stable dialect identifier recorded as provenance.
	ID() string
	// IsType reports whether text identifies itself as this dialect.
	// It must not fail on malformed input.
	IsType(text string) bool
	// RegisterWords declares the dialect's keywords and statement starts.
	RegisterWords(s *Stream)
	// NumberOfKeywords returns how many tokens of a started stream are
	// keywords of this dialect.
	NumberOfKeywords(s *Stream) int
	// Parse consumes s and appends statements to root. It reports false
	// when some statement could not be parsed but parsing recovered.
	Parse(s *Stream, root *Node) (bool, error)
}

// DialectPragma returns the dialect named by a leading comment of the form
// "-- dialect: name" or "/* dialect: name */". Only comments before the
// first token are considered. The returned name is as written.
func DialectPragma(text string) (string, bool) {
	l := NewLexer(text)
	first := l.NextToken()
	for _, c := range l.Comments {
		if first.Kind != token.EOF && c.Span.Start.Offset > first.Pos.Offset {
			break
		}
		body := c.Body()
		key, value, ok := strings.Cut(body, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "dialect") {
			continue
		}
		if fields := strings.Fields(value); len(fields) > 0 {
			return fields[0], true
		}
	}
	return "", false
}

// safeIsType calls p.IsType, treating a panic as "not this dialect".
func safeIsType(p Parser, text string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return p.IsType(text)
}

// safeID returns p's id, or false when ID panics.
func safeID(p Parser) (id string, ok bool) {
	defer func() {
		if recover() != nil {
			id, ok = "", false
		}
	}()
	return p.ID(), true
}

// safeScore registers p's words into s, starts it and returns p's keyword
// count. Any panic scores zero.
func safeScore(p Parser, s *Stream) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	p.RegisterWords(s)
	s.Start()
	return max(p.NumberOfKeywords(s), 0)
}
