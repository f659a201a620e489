package ddl_test

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/reposql/internal/testutil"
	"github.com/leapstack-labs/reposql/pkg/ddl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeParser is a dialect with a fixed vocabulary that records how the
// dispatcher drives it.
type fakeParser struct {
	id        string
	selfID    bool
	words     []string
	panicIn   string
	parseErr  error
	parseOK   bool
	calls     int
	firstText string
	keywords  int
}

func (f *fakeParser) ID() string {
	if f.panicIn == "ID" {
		panic("boom")
	}
	return f.id
}

func (f *fakeParser) IsType(string) bool {
	if f.panicIn == "IsType" {
		panic("boom")
	}
	return f.selfID
}

func (f *fakeParser) RegisterWords(s *ddl.Stream) {
	if f.panicIn == "RegisterWords" {
		panic("boom")
	}
	s.RegisterKeywords(f.words...)
}

func (f *fakeParser) NumberOfKeywords(s *ddl.Stream) int {
	if f.panicIn == "NumberOfKeywords" {
		panic("boom")
	}
	return s.KeywordCount()
}

func (f *fakeParser) Parse(s *ddl.Stream, root *ddl.Node) (bool, error) {
	f.calls++
	f.firstText = s.Peek().Text
	f.keywords = s.KeywordCount()
	root.AddChild(f.id, "test:statement")
	if f.parseErr != nil {
		return false, f.parseErr
	}
	return f.parseOK, nil
}

const fiveWords = "w1 w2 w3 w4 w5"

func scored(id string, n int) *fakeParser {
	words := []string{"w1", "w2", "w3", "w4", "w5"}[:n]
	return &fakeParser{id: id, words: words, parseOK: true}
}

func TestSelfIdentificationWins(t *testing.T) {
	a := scored("A", 5)
	b := scored("B", 1)
	b.selfID = true
	c := scored("C", 5)

	p := ddl.NewParsers([]ddl.Parser{a, b, c}, ddl.WithLogger(testutil.NewTestLogger(t)))
	root, err := p.Parse(fiveWords)
	require.NoError(t, err)

	assert.Equal(t, 1, b.calls)
	assert.Zero(t, a.calls)
	assert.Zero(t, c.calls)
	assert.Equal(t, "B", root.PropertyString(ddl.PropParserID))
	assert.Equal(t, 1, b.keywords, "the chosen stream is tokenized with the parser's words")
	assert.Equal(t, "w1", b.firstText)
}

func TestFirstSelfIdentifyingParserWins(t *testing.T) {
	a := scored("A", 1)
	b := scored("B", 1)
	a.selfID, b.selfID = true, true

	sel, err := ddl.NewParsers([]ddl.Parser{a, b}).Select(fiveWords)
	require.NoError(t, err)
	assert.Equal(t, "A", sel.Parser.ID())
	assert.True(t, sel.SelfIdentity)
}

func TestHighestKeywordCountWinsWithFirstSeenTieBreak(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		a, b, c := scored("A", 2), scored("B", 5), scored("C", 5)
		p := ddl.NewParsers([]ddl.Parser{a, b, c}, ddl.WithParallelScoring(parallel))

		root, err := p.Parse(fiveWords)
		require.NoError(t, err)
		assert.Equal(t, "B", root.PropertyString(ddl.PropParserID))
		assert.Equal(t, 1, b.calls)
		assert.Zero(t, c.calls)
		assert.Equal(t, "w1", b.firstText, "winning stream is rewound")
	}
}

func TestSelectionIsLogged(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	p := ddl.NewParsers([]ddl.Parser{scored("A", 2), scored("B", 5)}, ddl.WithLogger(logger))

	_, err := p.Parse(fiveWords)
	require.NoError(t, err)
	assert.True(t, logs.Contains("dialect selected by keywords"), logs.String())
	assert.True(t, logs.Contains("parser=B"), logs.String())
	assert.True(t, logs.Contains("keywords=5"), logs.String())
}

func TestScoresInCandidateOrder(t *testing.T) {
	p := ddl.NewParsers([]ddl.Parser{scored("A", 2), scored("B", 5), scored("C", 0)})
	assert.Equal(t, []ddl.Score{
		{ParserID: "A", Keywords: 2},
		{ParserID: "B", Keywords: 5},
		{ParserID: "C", Keywords: 0},
	}, p.Scores(fiveWords))
}

func TestNoApplicableDialect(t *testing.T) {
	tests := []struct {
		name    string
		parsers []ddl.Parser
	}{
		{"zero keywords", []ddl.Parser{scored("A", 0), scored("B", 0)}},
		{"no candidates", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ddl.NewParsers(tt.parsers).Parse(fiveWords)
			assert.Nil(t, root)
			require.ErrorIs(t, err, ddl.ErrNoApplicableDialect)

			var pe *ddl.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, 1, pe.Pos.Line)
			assert.Equal(t, 0, pe.Pos.Column)
			assert.Equal(t, -1, pe.Pos.Offset)
			assert.Contains(t, err.Error(), "no valid parser found")
			assert.Contains(t, err.Error(), "no applicable dialect")
		})
	}
}

func TestIsTypePanicFallsBackToScoring(t *testing.T) {
	bad := scored("BAD", 1)
	bad.panicIn = "IsType"
	good := scored("GOOD", 2)
	good.selfID = true

	sel, err := ddl.NewParsers([]ddl.Parser{bad, good}).Select(fiveWords)
	require.NoError(t, err)
	assert.Equal(t, "GOOD", sel.Parser.ID())
	assert.True(t, sel.SelfIdentity)

	good.selfID = false
	sel, err = ddl.NewParsers([]ddl.Parser{bad, good}).Select(fiveWords)
	require.NoError(t, err)
	assert.Equal(t, "GOOD", sel.Parser.ID())
	assert.False(t, sel.SelfIdentity)
	assert.Len(t, sel.Scores, 2)
}

func TestScoringPanicsMeanNotApplicable(t *testing.T) {
	for _, where := range []string{"RegisterWords", "NumberOfKeywords"} {
		t.Run(where, func(t *testing.T) {
			bad := scored("BAD", 5)
			bad.panicIn = where
			good := scored("GOOD", 1)

			root, err := ddl.NewParsers([]ddl.Parser{bad, good}).Parse(fiveWords)
			require.NoError(t, err)
			assert.Equal(t, "GOOD", root.PropertyString(ddl.PropParserID))
		})
	}
}

func TestPanickingIDMeansNotApplicable(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		bad := scored("BAD", 5)
		bad.panicIn = "ID"
		bad.selfID = true
		good := scored("GOOD", 1)

		p := ddl.NewParsers([]ddl.Parser{bad, good}, ddl.WithParallelScoring(parallel))
		root, err := p.Parse(fiveWords)
		require.NoError(t, err)
		assert.Equal(t, "GOOD", root.PropertyString(ddl.PropParserID))
		assert.Zero(t, bad.calls)
		assert.Equal(t, ddl.Score{}, p.Scores(fiveWords)[0])
	}
}

func TestProvenanceRecordedOnFailure(t *testing.T) {
	failing := scored("A", 3)
	failing.parseErr = &ddl.ParseError{Message: "bad statement"}

	root, err := ddl.NewParsers([]ddl.Parser{failing}).Parse(fiveWords)
	require.Error(t, err)
	require.NotNil(t, root)
	assert.Equal(t, "A", root.PropertyString(ddl.PropParserID))
	assert.Equal(t, 1, root.ChildCount(), "partial tree is kept")
	assert.False(t, errors.Is(err, ddl.ErrNoApplicableDialect))
}

func TestParseIntoReportsPartialSuccess(t *testing.T) {
	partial := scored("A", 1)
	partial.parseOK = false

	root := ddl.NewStatementsRoot()
	ok, err := ddl.NewParsers([]ddl.Parser{partial}).ParseInto(fiveWords, root)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "A", root.PropertyString(ddl.PropParserID))
	assert.Equal(t, ddl.Unstructured, mustProperty(t, root, ddl.PropPrimaryType))
}

func TestParseWithForcesDialect(t *testing.T) {
	a, b := scored("A", 5), scored("B", 0)
	p := ddl.NewParsers([]ddl.Parser{a})

	root := ddl.NewStatementsRoot()
	ok, err := p.ParseWith(b, fiveWords, root)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "B", root.PropertyString(ddl.PropParserID))
	assert.Zero(t, a.calls)
}

func TestCandidatesAreCopied(t *testing.T) {
	list := []ddl.Parser{scored("A", 1)}
	p := ddl.NewParsers(list)
	list[0] = scored("X", 1)
	assert.Equal(t, "A", p.Candidates()[0].ID())
}

func mustProperty(t *testing.T, n *ddl.Node, name string) any {
	t.Helper()
	v, ok := n.Property(name)
	require.True(t, ok, name)
	return v
}

func TestParseSelectionRunsOnce(t *testing.T) {
	b := scored("B", 3)
	p := ddl.NewParsers([]ddl.Parser{scored("A", 1), b})

	sel, err := p.Select(fiveWords)
	require.NoError(t, err)
	require.Equal(t, "B", sel.Parser.ID())
	assert.False(t, sel.SelfIdentity)
	require.Len(t, sel.Scores, 2)

	ok, err := p.ParseSelection(sel, ddl.NewStatementsRoot())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "w1", b.firstText, "stream is rewound before parsing")

	_, err = p.ParseSelection(sel, ddl.NewStatementsRoot())
	assert.Error(t, err)
	assert.Equal(t, 1, b.calls)
}
