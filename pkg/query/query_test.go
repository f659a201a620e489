package query_test

import (
	"math"
	"testing"

	"github.com/leapstack-labs/reposql/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sel(name string) query.SelectorName {
	return query.Must(query.NewSelectorName(name))
}

func path(raw string) query.Path {
	return query.Must(query.NewPath(raw))
}

// sampleQuery builds the same tree on every call.
func sampleQuery(t *testing.T) *query.Query {
	t.Helper()
	cars := query.Must(query.NewNamedSelector(sel("car")))
	makers := query.Must(query.NewAliasedSelector(sel("maker"), sel("m")))
	join := query.Must(query.NewJoin(cars, query.JoinInner, makers,
		query.Must(query.NewChildNodeJoinCondition(sel("m"), sel("car")))))

	model := query.Must(query.NewPropertyValue(sel("car"), "model"))
	year := query.Must(query.NewPropertyValue(sel("car"), "year"))
	where := query.Must(query.NewAnd(
		query.Must(query.NewDescendantNode(sel("car"), path("/cars"))),
		query.Must(query.NewOr(
			query.Must(query.NewComparison(
				query.Must(query.NewLowerCase(model)), query.OpLike, query.Must(query.NewLiteral("land%")))),
			query.Must(query.NewComparison(year, query.OpGreaterThan, query.Must(query.NewBindVariableName("minYear")))),
		)),
	))
	cols := []*query.Column{
		query.Must(query.NewColumn(sel("car"), "model", "")),
		query.Must(query.NewColumn(sel("m"), "name", "maker")),
	}
	byYear := query.Must(query.NewPropertyValue(sel("car"), "year"))
	order := []*query.Ordering{query.Must(query.NewOrdering(byYear, query.Descending))}
	q, err := query.NewQuery(join, where, cols, order, query.Limit{RowLimit: 10, Offset: 5})
	require.NoError(t, err)
	return q
}

func TestStructuralEquality(t *testing.T) {
	a, b := sampleQuery(t), sampleQuery(t)
	require.NotSame(t, a, b)
	assert.True(t, a.Equals(b))
	assert.True(t, b.Equals(a))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.String(), b.String())
}

func TestDifferingComponentsAreUnequal(t *testing.T) {
	base := query.Must(query.NewEquiJoinCondition(sel("a"), "id", sel("b"), "ref"))
	variants := []query.Node{
		query.Must(query.NewEquiJoinCondition(sel("x"), "id", sel("b"), "ref")),
		query.Must(query.NewEquiJoinCondition(sel("a"), "ID", sel("b"), "ref")),
		query.Must(query.NewEquiJoinCondition(sel("a"), "id", sel("c"), "ref")),
		query.Must(query.NewEquiJoinCondition(sel("a"), "id", sel("b"), "other")),
		query.Must(query.NewEquiJoinCondition(sel("b"), "ref", sel("a"), "id")),
	}
	for _, v := range variants {
		t.Run(v.String(), func(t *testing.T) {
			assert.False(t, base.Equals(v))
			assert.False(t, v.Equals(base))
		})
	}
}

func TestChildNodeJoinConditionSwap(t *testing.T) {
	c1 := query.Must(query.NewChildNodeJoinCondition(sel("parent"), sel("child")))
	c2 := query.Must(query.NewChildNodeJoinCondition(sel("parent"), sel("child")))
	swapped := query.Must(query.NewChildNodeJoinCondition(sel("child"), sel("parent")))

	assert.True(t, c1.Equals(c2))
	assert.Equal(t, c1.Hash(), c2.Hash())
	assert.False(t, c1.Equals(swapped))
	assert.Equal(t, "ISCHILDNODE([child],[parent])", c1.String())
}

func TestEqualsAcrossTypes(t *testing.T) {
	name := query.Must(query.NewNodeName(sel("s")))
	local := query.Must(query.NewNodeLocalName(sel("s")))
	depth := query.Must(query.NewNodeDepth(sel("s")))
	assert.False(t, name.Equals(local))
	assert.False(t, local.Equals(depth))
	assert.NotEqual(t, name.Hash(), local.Hash())
	assert.False(t, name.Equals(nil))

	assert.True(t, query.Equal(nil, nil))
	assert.False(t, query.Equal(name, nil))
	assert.True(t, query.Equal(name, query.Must(query.NewNodeName(sel("s")))))
}

func TestLiteralNormalisesNumbers(t *testing.T) {
	assert.True(t, query.Must(query.NewLiteral(5)).Equals(query.Must(query.NewLiteral(int64(5)))))
	assert.False(t, query.Must(query.NewLiteral(int64(5))).Equals(query.Must(query.NewLiteral(5.0))))
	assert.False(t, query.Must(query.NewLiteral("5")).Equals(query.Must(query.NewLiteral(int64(5)))))

	_, err := query.NewLiteral([]byte("x"))
	require.ErrorIs(t, err, query.ErrInvalidArgument)
	_, err = query.NewLiteral(nil)
	require.ErrorIs(t, err, query.ErrInvalidArgument)
}

func TestSpecialFloatLiterals(t *testing.T) {
	comparison := func(v float64) *query.Comparison {
		pv := query.Must(query.NewPropertyValue(sel("s"), "p"))
		return query.Must(query.NewComparison(pv, query.OpEqualTo, query.Must(query.NewLiteral(v))))
	}

	tests := []struct {
		name  string
		a, b  float64
		equal bool
	}{
		{"nan", math.NaN(), math.NaN(), true},
		{"nan payloads", math.NaN(), math.Float64frombits(0x7ff8000000000001), true},
		{"infinity", math.Inf(1), math.Inf(1), true},
		{"signed infinities", math.Inf(1), math.Inf(-1), false},
		{"signed zeros", 0.0, math.Copysign(0, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := comparison(tt.a), comparison(tt.b)
			assert.Equal(t, tt.equal, a.Equals(b))
			assert.Equal(t, tt.equal, a.Hash() == b.Hash())
			assert.Equal(t, tt.equal, a.String() == b.String(), "%s vs %s", a, b)
		})
	}
}

func TestConstructorsRejectMissingFields(t *testing.T) {
	var nilSelector *query.NamedSelector
	cond := query.Must(query.NewChildNodeJoinCondition(sel("a"), sel("b")))
	left := query.Must(query.NewNamedSelector(sel("a")))
	pv := query.Must(query.NewPropertyValue(sel("a"), "p"))

	tests := []struct {
		name string
		fn   func() error
	}{
		{"named selector", func() error { _, err := query.NewNamedSelector(query.SelectorName{}); return err }},
		{"join nil right", func() error { _, err := query.NewJoin(left, query.JoinInner, nil, cond); return err }},
		{"join typed nil left", func() error { _, err := query.NewJoin(nilSelector, query.JoinInner, left, cond); return err }},
		{"join bad type", func() error { _, err := query.NewJoin(left, query.JoinType(0), left, cond); return err }},
		{"join nil condition", func() error { _, err := query.NewJoin(left, query.JoinCross, left, nil); return err }},
		{"child join parent", func() error { _, err := query.NewChildNodeJoinCondition(query.SelectorName{}, sel("b")); return err }},
		{"equi join property", func() error { _, err := query.NewEquiJoinCondition(sel("a"), "", sel("b"), "p"); return err }},
		{"same node join absolute path", func() error { _, err := query.NewSameNodeJoinCondition(sel("a"), sel("b"), "/x"); return err }},
		{"and nil", func() error { _, err := query.NewAnd(nil, nil); return err }},
		{"not nil", func() error { _, err := query.NewNot(nil); return err }},
		{"comparison operator", func() error {
			_, err := query.NewComparison(pv, query.Operator(0), query.Must(query.NewLiteral("x")))
			return err
		}},
		{"comparison operand", func() error { _, err := query.NewComparison(pv, query.OpEqualTo, nil); return err }},
		{"same node path", func() error { _, err := query.NewSameNode(sel("a"), query.Path{}); return err }},
		{"full text expression", func() error { _, err := query.NewFullTextSearch(sel("a"), "", " "); return err }},
		{"length", func() error { _, err := query.NewLength(nil); return err }},
		{"bind variable", func() error { _, err := query.NewBindVariableName(""); return err }},
		{"ordering", func() error { _, err := query.NewOrdering(pv, query.Order(7)); return err }},
		{"column alias without property", func() error { _, err := query.NewColumn(sel("a"), "", "x"); return err }},
		{"query source", func() error { _, err := query.NewQuery(nil, nil, nil, nil, query.Limit{}); return err }},
		{"query limit", func() error { _, err := query.NewQuery(left, nil, nil, nil, query.Limit{RowLimit: -1}); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(), query.ErrInvalidArgument)
		})
	}
}

func TestQueryAccessorsCopy(t *testing.T) {
	q := sampleQuery(t)
	cols := q.Columns()
	cols[0] = nil
	assert.NotNil(t, q.Columns()[0])
	assert.Equal(t, query.Limit{RowLimit: 10, Offset: 5}, q.Limit())
}
