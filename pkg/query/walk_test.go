package query_test

import (
	"testing"

	"github.com/leapstack-labs/reposql/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreOrderAndPostOrder(t *testing.T) {
	pv := query.Must(query.NewPropertyValue(sel("s"), "p"))
	lower := query.Must(query.NewLowerCase(pv))
	lit := query.Must(query.NewLiteral("x"))
	cmp := query.Must(query.NewComparison(lower, query.OpEqualTo, lit))
	not := query.Must(query.NewNot(cmp))

	var pre, post []query.Node
	query.PreOrder(not, func(n query.Node) bool {
		pre = append(pre, n)
		return true
	})
	query.PostOrder(not, func(n query.Node) {
		post = append(post, n)
	})

	assert.Equal(t, []query.Node{not, cmp, lower, pv, lit}, pre)
	assert.Equal(t, []query.Node{pv, lower, lit, cmp, not}, post)
}

func TestPreOrderSkipsChildren(t *testing.T) {
	q := sampleQuery(t)
	var visited int
	query.PreOrder(q, func(n query.Node) bool {
		visited++
		_, isJoin := n.(*query.Join)
		return !isJoin
	})

	var all int
	query.PostOrder(q, func(query.Node) { all++ })
	// the join's two selectors and its condition are skipped
	assert.Equal(t, all-3, visited)
}

func TestWalkVisitsEveryNodeOnce(t *testing.T) {
	q := sampleQuery(t)
	seen := make(map[query.Node]int)
	query.PostOrder(q, func(n query.Node) { seen[n]++ })
	for n, count := range seen {
		assert.Equal(t, 1, count, n.String())
	}
	assert.Equal(t, 1, seen[q])
}

func TestReferencedSelectors(t *testing.T) {
	got := query.ReferencedSelectors(sampleQuery(t))
	require.Len(t, got, 2)
	assert.Equal(t, "car", got[0].Name())
	assert.Equal(t, "m", got[1].Name())

	assert.Empty(t, query.ReferencedSelectors(query.Must(query.NewLiteral(int64(1)))))
}

func TestChildrenOfLeaf(t *testing.T) {
	assert.Nil(t, query.Children(query.Must(query.NewBindVariableName("v"))))
	assert.Len(t, query.Children(query.Must(query.NewAnd(
		query.Must(query.NewPropertyExistence(sel("a"), "p")),
		query.Must(query.NewPropertyExistence(sel("a"), "q"))))), 2)
}
