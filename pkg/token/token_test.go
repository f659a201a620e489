package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "KEYWORD", Keyword.String())
	assert.Equal(t, "COMMENT", CommentToken.String())
	assert.Equal(t, "TERMINATOR", Terminator.String())
	assert.Equal(t, "KIND(42)", Kind(42).String())
}

func TestKindIsWord(t *testing.T) {
	assert.True(t, Keyword.IsWord())
	assert.True(t, Identifier.IsWord())
	assert.False(t, QuotedIdentifier.IsWord())
	assert.False(t, Symbol.IsWord())
}

func TestCommentBody(t *testing.T) {
	tests := []struct {
		name    string
		comment Comment
		want    string
	}{
		{"line", Comment{Kind: LineComment, Text: "-- dialect: oracle"}, "dialect: oracle"},
		{"block", Comment{Kind: BlockComment, Text: "/*  hello */"}, "hello"},
		{"empty block", Comment{Kind: BlockComment, Text: "/**/"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.comment.Body())
		})
	}
}

func TestPositionAndSpan(t *testing.T) {
	start := Position{Line: 1, Column: 1, Offset: 0}
	end := Position{Line: 1, Column: 7, Offset: 6}
	span := Span{Start: start, End: end}

	assert.True(t, span.IsValid())
	assert.True(t, span.Contains(0))
	assert.True(t, span.Contains(5))
	assert.False(t, span.Contains(6))
	assert.Equal(t, "1:7", end.String())
	assert.False(t, Position{}.IsValid())
}
