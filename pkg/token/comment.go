package token

import "strings"

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // -- comment
	BlockComment                    // /* comment */
)

// Comment represents a comment with position.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters (-- or /* */)
	Span Span
}

// IsLineComment returns true if this is a line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}

// IsBlockComment returns true if this is a block comment.
func (c *Comment) IsBlockComment() bool {
	return c.Kind == BlockComment
}

// Body returns the comment text without its delimiters, trimmed.
func (c *Comment) Body() string {
	body := c.Text
	switch c.Kind {
	case LineComment:
		body = strings.TrimPrefix(body, "--")
	case BlockComment:
		body = strings.TrimPrefix(body, "/*")
		body = strings.TrimSuffix(body, "*/")
	}
	return strings.TrimSpace(body)
}
