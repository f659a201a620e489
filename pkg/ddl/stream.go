package ddl

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/reposql/pkg/token"
)

// Stream is a rewindable, position-tracked sequence of classified tokens.
//
// Keyword classification depends on the words registered before Start, so
// tokenization is eager: Start lexes the whole input once, classifies every
// word, and positions the cursor on the first token. Comments are kept aside
// and never appear in the logical stream.
type Stream struct {
	text     string
	caser    cases.Caser
	keywords map[string]struct{}
	starts   [][]string

	tokens   []token.Token // logical tokens, ending with EOF
	comments []*token.Comment
	cursor   int
	started  bool
}

// NewStream creates an unstarted stream over text.
func NewStream(text string) *Stream {
	return &Stream{
		text:     text,
		caser:    cases.Upper(language.Und),
		keywords: make(map[string]struct{}),
	}
}

// fold normalizes a word for case-insensitive comparison.
func (s *Stream) fold(word string) string {
	return s.caser.String(word)
}

// Text returns the input the stream was created with.
func (s *Stream) Text() string { return s.text }

// RegisterKeywords declares words that tokenize as Keyword. Registration
// after Start takes effect on the next Start.
func (s *Stream) RegisterKeywords(words ...string) {
	for _, w := range words {
		for _, part := range strings.Fields(w) {
			s.keywords[s.fold(part)] = struct{}{}
		}
	}
}

// IsKeyword reports whether word has been registered.
func (s *Stream) IsKeyword(word string) bool {
	_, ok := s.keywords[s.fold(word)]
	return ok
}

// RegisterStatementStart declares a phrase that begins a statement, such as
// "CREATE", "TABLE". Its words are also registered as keywords.
func (s *Stream) RegisterStatementStart(phrase ...string) {
	if len(phrase) == 0 {
		return
	}
	folded := make([]string, len(phrase))
	for i, w := range phrase {
		folded[i] = s.fold(w)
	}
	s.starts = append(s.starts, folded)
	s.RegisterKeywords(phrase...)
}

// Start tokenizes the whole input and moves the cursor to the first token.
// Calling Start again re-tokenizes with the currently registered words.
func (s *Stream) Start() {
	raw, comments := Tokenize(s.text)
	for i := range raw {
		if raw[i].Kind == token.Identifier {
			if _, ok := s.keywords[s.fold(raw[i].Text)]; ok {
				raw[i].Kind = token.Keyword
			}
		}
	}
	s.tokens = raw
	s.comments = comments
	s.cursor = 0
	s.started = true
}

// Started reports whether Start has been called.
func (s *Stream) Started() bool { return s.started }

// Rewind moves the cursor back to the first token without re-tokenizing.
func (s *Stream) Rewind() {
	if !s.started {
		s.Start()
		return
	}
	s.cursor = 0
}

// KeywordCount returns the number of tokens classified as keywords.
func (s *Stream) KeywordCount() int {
	n := 0
	for _, t := range s.tokens {
		if t.Kind == token.Keyword {
			n++
		}
	}
	return n
}

// Tokens returns a copy of the logical tokens, EOF included.
func (s *Stream) Tokens() []token.Token {
	return append([]token.Token(nil), s.tokens...)
}

// Comments returns the comments found during tokenization.
func (s *Stream) Comments() []*token.Comment { return s.comments }

// HasNext reports whether a non-EOF token remains.
func (s *Stream) HasNext() bool {
	return s.Peek().Kind != token.EOF
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() token.Token { return s.PeekAt(0) }

// PeekAt returns the token n positions ahead of the cursor, or EOF.
func (s *Stream) PeekAt(n int) token.Token {
	if !s.started {
		s.Start()
	}
	i := s.cursor + n
	if i < 0 || i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

// Previous returns the most recently consumed token, or EOF at the start.
func (s *Stream) Previous() token.Token {
	if s.cursor == 0 {
		return token.Token{Kind: token.EOF, Pos: s.Position(), End: s.Position()}
	}
	return s.PeekAt(-1)
}

// Next consumes and returns the next token. At the end it keeps returning
// EOF without advancing.
func (s *Stream) Next() token.Token {
	t := s.Peek()
	if t.Kind != token.EOF {
		s.cursor++
	}
	return t
}

// Position returns the position of the next token.
func (s *Stream) Position() token.Position { return s.Peek().Pos }

// Mark returns the cursor so it can be restored with Reset.
func (s *Stream) Mark() int { return s.cursor }

// Reset restores a cursor returned by Mark.
func (s *Stream) Reset(mark int) {
	if mark < 0 {
		mark = 0
	}
	if mark >= len(s.tokens) {
		mark = len(s.tokens) - 1
	}
	s.cursor = mark
}

// matches reports whether t matches word. Words match unquoted words
// case-insensitively; symbols and terminators match their exact text.
func (s *Stream) matches(t token.Token, word string) bool {
	switch t.Kind {
	case token.Keyword, token.Identifier:
		return s.fold(t.Text) == s.fold(word)
	case token.Symbol, token.Terminator:
		return t.Text == word
	default:
		return false
	}
}

// Matches reports whether the next tokens match words in order.
func (s *Stream) Matches(words ...string) bool {
	for i, w := range words {
		if !s.matches(s.PeekAt(i), w) {
			return false
		}
	}
	return len(words) > 0
}

// MatchesAny reports whether the next token matches any of words.
func (s *Stream) MatchesAny(words ...string) bool {
	for _, w := range words {
		if s.Matches(w) {
			return true
		}
	}
	return false
}

// CanConsume consumes the next tokens if they match words in order.
func (s *Stream) CanConsume(words ...string) bool {
	if !s.Matches(words...) {
		return false
	}
	s.cursor += len(words)
	return true
}

// Consume consumes each of words in order or fails at the first mismatch.
func (s *Stream) Consume(words ...string) error {
	for _, w := range words {
		if !s.CanConsume(w) {
			return s.unexpected(fmt.Sprintf("%q", w))
		}
	}
	return nil
}

// unexpected builds an error for the next token.
func (s *Stream) unexpected(expected string) *ParseError {
	t := s.Peek()
	if t.Kind == token.EOF {
		return newParseError(t.Pos, errUnexpectedEOF, expected)
	}
	return newParseError(t.Pos, errUnexpectedToken, t, expected)
}

// AtStatementStart reports whether a registered statement phrase begins at
// the cursor.
func (s *Stream) AtStatementStart() bool {
	for _, phrase := range s.starts {
		if s.Matches(phrase...) {
			return true
		}
	}
	return false
}

// Slice returns the raw input between two byte offsets, clamped to the input.
func (s *Stream) Slice(from, to int) string {
	from = max(0, min(from, len(s.text)))
	to = max(from, min(to, len(s.text)))
	return s.text[from:to]
}
