package ddl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/reposql/pkg/token"
)

// multiSymbols are the operators lexed as a single Symbol token.
var multiSymbols = []string{"<=", ">=", "<>", "!=", "||", "::", ":=", "=>"}

// Lexer tokenizes DDL input. Words are emitted as Identifier tokens; keyword
// classification happens later in the Stream once dialect words are known.
// The lexer never fails: unterminated literals run to the end of the input
// and unknown characters become single-character symbols.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	// Comments collected during lexing
	Comments []*token.Comment
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	tok := token.Token{Pos: pos}

	switch {
	case l.atEOF():
		tok.Kind = token.EOF
		tok.End = pos
		return tok
	case l.ch == ';':
		tok.Kind = token.Terminator
		tok.Text = ";"
		l.readChar()
	case l.ch == '\'':
		tok.Kind = token.String
		tok.Text = l.readQuoted('\'')
	case l.ch == '"':
		tok.Kind = token.QuotedIdentifier
		tok.Text = l.readQuoted('"')
	case l.ch == '$':
		if body, ok := l.readDollarQuoted(); ok {
			tok.Kind = token.String
			tok.Text = body
		} else {
			tok.Kind = token.Symbol
			tok.Text = "$"
			l.readChar()
		}
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		tok.Kind = token.Number
		tok.Text = l.readNumber()
	case l.isWordStart():
		tok.Kind = token.Identifier
		tok.Text = l.readWord()
	default:
		tok.Kind = token.Symbol
		tok.Text = l.readSymbol()
	}
	tok.End = l.currentPos()
	return tok
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		// Skip whitespace
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' {
			l.readChar()
		}

		// Collect line comment (-- ...)
		if l.ch == '-' && l.peekChar() == '-' {
			l.collectLineComment()
			continue
		}

		// Collect block comment (/* ... */)
		if l.ch == '/' && l.peekChar() == '*' {
			l.collectBlockComment()
			continue
		}

		break
	}
}

// collectLineComment collects a line comment.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	// Consume until end of line
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.LineComment,
		Text: strings.TrimRight(l.input[startOffset:l.pos], "\r"),
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// collectBlockComment collects a block comment.
func (l *Lexer) collectBlockComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	l.readChar() // skip '/'
	l.readChar() // skip '*'

	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip '*'
			l.readChar() // skip '/'
			break
		}
		l.readChar()
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// readQuoted reads a literal delimited by quote, collapsing doubled quotes:
// 'it''s' -> it's
func (l *Lexer) readQuoted(quote byte) string {
	l.readChar() // skip opening quote

	var result strings.Builder
	for !l.atEOF() {
		if l.ch == quote {
			if l.peekChar() == quote {
				result.WriteByte(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			break
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
	return result.String()
}

// readDollarQuoted reads a $tag$...$tag$ string. It reports false, without
// consuming anything, when the input at '$' does not open such a string.
func (l *Lexer) readDollarQuoted() (string, bool) {
	rest := l.input[l.pos+1:]
	end := strings.IndexByte(rest, '$')
	if end < 0 {
		return "", false
	}
	tag := rest[:end]
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		if !(isLetter(c) || c == '_' || (i > 0 && isDigit(c))) {
			return "", false
		}
	}
	delim := "$" + tag + "$"
	bodyStart := l.pos + len(delim)
	body, stop := l.input[bodyStart:], len(l.input)
	if closeAt := strings.Index(l.input[bodyStart:], delim); closeAt >= 0 {
		body = l.input[bodyStart : bodyStart+closeAt]
		stop = bodyStart + closeAt + len(delim)
	}
	for l.pos < stop {
		l.readChar()
	}
	return body, true
}

// readNumber reads a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() string {
	start := l.pos

	// Read integer part
	for isDigit(l.ch) {
		l.readChar()
	}

	// Read decimal part
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Read exponent part (e.g., 1e10, 1E-5)
	if (l.ch == 'e' || l.ch == 'E') && (isDigit(l.peekChar()) || l.peekChar() == '+' || l.peekChar() == '-') {
		l.readChar() // skip 'e' or 'E'
		if l.ch == '+' || l.ch == '-' {
			l.readChar() // skip sign
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[start:l.pos]
}

func (l *Lexer) isWordStart() bool {
	if l.ch < utf8.RuneSelf {
		return isLetter(l.ch) || l.ch == '_'
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return unicode.IsLetter(r)
}

// readWord reads an unquoted word. Words may contain $ and # after the first
// character, as Oracle and Postgres identifiers do.
func (l *Lexer) readWord() string {
	start := l.pos
	for !l.atEOF() {
		switch {
		case isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '$' || l.ch == '#':
			l.readChar()
		case l.ch >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.input[l.pos:])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return l.input[start:l.pos]
			}
			for range size {
				l.readChar()
			}
		default:
			return l.input[start:l.pos]
		}
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readSymbol() string {
	rest := l.input[l.pos:]
	for _, sym := range multiSymbols {
		if strings.HasPrefix(rest, sym) {
			for range len(sym) {
				l.readChar()
			}
			return sym
		}
	}
	_, size := utf8.DecodeRuneInString(rest)
	for range size {
		l.readChar()
	}
	return rest[:size]
}

// isLetter returns true if ch is an ASCII letter.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, ending with an EOF token,
// and the comments found between them.
func Tokenize(input string) ([]token.Token, []*token.Comment) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, l.Comments
}
