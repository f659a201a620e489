package query_test

import (
	"testing"

	"github.com/leapstack-labs/reposql/pkg/query"
	"github.com/stretchr/testify/assert"
)

func TestReadable(t *testing.T) {
	pv := query.Must(query.NewPropertyValue(sel("s"), "p"))
	a := query.Must(query.NewNamedSelector(sel("a")))
	b := query.Must(query.NewNamedSelector(sel("b")))
	c := query.Must(query.NewNamedSelector(sel("c")))
	abCond := query.Must(query.NewEquiJoinCondition(sel("a"), "id", sel("b"), "id"))
	bcCond := query.Must(query.NewDescendantNodeJoinCondition(sel("b"), sel("c")))
	exists := query.Must(query.NewPropertyExistence(sel("s"), "p"))
	same := query.Must(query.NewSameNode(sel("s"), path("/a/b[2]")))

	tests := []struct {
		name string
		node query.Node
		want string
	}{
		{"aliased selector", query.Must(query.NewAliasedSelector(sel("nt:base"), sel("n"))), "[nt:base] AS [n]"},
		{"left deep join", query.Must(query.NewJoin(
			query.Must(query.NewJoin(a, query.JoinInner, b, abCond)), query.JoinLeftOuter, c, bcCond)),
			"[a] INNER JOIN [b] ON [a].[id] = [b].[id] LEFT OUTER JOIN [c] ON ISDESCENDANTNODE([c],[b])"},
		{"right deep join", query.Must(query.NewJoin(
			a, query.JoinInner, query.Must(query.NewJoin(b, query.JoinCross, c, bcCond)), abCond)),
			"[a] INNER JOIN ([b] CROSS JOIN [c] ON ISDESCENDANTNODE([c],[b])) ON [a].[id] = [b].[id]"},
		{"same node join", query.Must(query.NewSameNodeJoinCondition(sel("a"), sel("b"), "x/y")), "ISSAMENODE([a],[b],'x/y')"},
		{"same node join no path", query.Must(query.NewSameNodeJoinCondition(sel("a"), sel("b"), "")), "ISSAMENODE([a],[b])"},
		{"same node", same, "ISSAMENODE([s],'/a/b[2]')"},
		{"child node", query.Must(query.NewChildNode(sel("s"), path("/a"))), "ISCHILDNODE([s],'/a')"},
		{"not", query.Must(query.NewNot(exists)), "NOT([s].[p] IS NOT NULL)"},
		{"nested boolean", query.Must(query.NewOr(query.Must(query.NewAnd(exists, same)), exists)),
			"([s].[p] IS NOT NULL AND ISSAMENODE([s],'/a/b[2]')) OR [s].[p] IS NOT NULL"},
		{"contains all", query.Must(query.NewFullTextSearch(sel("s"), "", "it's")), "CONTAINS([s].*,'it''s')"},
		{"contains property", query.Must(query.NewFullTextSearch(sel("s"), "p", "x")), "CONTAINS([s].[p],'x')"},
		{"length", query.Must(query.NewComparison(query.Must(query.NewLength(pv)), query.OpLessThanOrEqualTo,
			query.Must(query.NewLiteral(int64(3))))), "LENGTH([s].[p]) <= 3"},
		{"upper", query.Must(query.NewComparison(query.Must(query.NewUpperCase(pv)), query.OpNotEqualTo,
			query.Must(query.NewLiteral(true)))), "UPPER([s].[p]) != TRUE"},
		{"float", query.Must(query.NewComparison(pv, query.OpGreaterThanOrEqualTo, query.Must(query.NewLiteral(2.0)))), "[s].[p] >= 2.0"},
		{"node functions", query.Must(query.NewOrdering(query.Must(query.NewNodeLocalName(sel("s"))), query.Ascending)), "LOCALNAME([s]) ASC"},
		{"score", query.Must(query.NewFullTextSearchScore(sel("s"))), "SCORE([s])"},
		{"path", query.Must(query.NewNodePath(sel("s"))), "PATH([s])"},
		{"depth", query.Must(query.NewNodeDepth(sel("s"))), "DEPTH([s])"},
		{"name", query.Must(query.NewNodeName(sel("s"))), "NAME([s])"},
		{"wildcard column", query.Must(query.NewColumn(sel("s"), "", "")), "[s].*"},
		{"select star", query.Must(query.NewQuery(a, nil, nil, nil, query.Limit{})), "SELECT * FROM [a]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Readable(tt.node))
			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestReadableQuery(t *testing.T) {
	q := sampleQuery(t)
	want := "SELECT [car].[model], [m].[name] AS [maker] FROM [car] INNER JOIN [maker] AS [m] " +
		"ON ISCHILDNODE([car],[m]) WHERE ISDESCENDANTNODE([car],'/cars') AND " +
		"(LOWER([car].[model]) LIKE 'land%' OR [car].[year] > $minYear) " +
		"ORDER BY [car].[year] DESC LIMIT 10 OFFSET 5"
	assert.Equal(t, want, query.Readable(q))
}

func TestReadableDoesNotMutate(t *testing.T) {
	q := sampleQuery(t)
	before := sampleQuery(t)
	hash := q.Hash()

	out := q.String()
	assert.NotEmpty(t, out)
	assert.True(t, q.Equals(before))
	assert.Equal(t, hash, q.Hash())
	assert.Equal(t, out, q.String())
}

func TestReadableNil(t *testing.T) {
	assert.Empty(t, query.Readable(nil))
}
