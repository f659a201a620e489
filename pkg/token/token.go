// Package token defines the lexical tokens produced by the DDL tokenizer.
//
// Unlike a fixed SQL keyword table, keyword classification is decided per
// token stream: each dialect registers its reserved words before the stream
// is tokenized, so the same word may be a Keyword for one dialect and an
// Identifier for another.
package token

import "fmt"

// Kind classifies a token.
type Kind int

const (
	// EOF marks the end of the logical stream.
	EOF Kind = iota
	// Keyword is a word registered as reserved by the active dialect.
	Keyword
	// Identifier is an unquoted word that is not a registered keyword.
	Identifier
	// QuotedIdentifier is a double-quoted identifier ("My Table").
	QuotedIdentifier
	// String is a quoted string literal ('x' or $$x$$).
	String
	// Number is a numeric literal.
	Number
	// Symbol is punctuation or an operator.
	Symbol
	// CommentToken is a line or block comment. The lexer keeps comments out
	// of the logical stream, so streams never yield it.
	CommentToken
	// Terminator ends a statement (;).
	Terminator
)

var kindNames = [...]string{
	EOF:              "EOF",
	Keyword:          "KEYWORD",
	Identifier:       "IDENTIFIER",
	QuotedIdentifier: "QUOTED_IDENTIFIER",
	String:           "STRING",
	Number:           "NUMBER",
	Symbol:           "SYMBOL",
	CommentToken:     "COMMENT",
	Terminator:       "TERMINATOR",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// IsWord returns true for kinds that come from an unquoted word.
func (k Kind) IsWord() bool {
	return k == Keyword || k == Identifier
}

// Token represents a lexical token with position information.
// Text holds the decoded value: quotes are stripped from strings and
// quoted identifiers, doubled quotes are collapsed.
type Token struct {
	Kind Kind
	Text string
	Pos  Position // first character
	End  Position // character immediately after the token
}

// String formats the token for diagnostics.
func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}
