package query

// Children returns the direct child nodes of n in evaluation order.
// Leaves return nil.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Query:
		out := make([]Node, 0, 2+len(n.columns)+len(n.orderings))
		out = append(out, n.source)
		if n.constraint != nil {
			out = append(out, n.constraint)
		}
		for _, c := range n.columns {
			out = append(out, c)
		}
		for _, o := range n.orderings {
			out = append(out, o)
		}
		return out
	case *Join:
		return []Node{n.left, n.right, n.condition}
	case *And:
		return []Node{n.left, n.right}
	case *Or:
		return []Node{n.left, n.right}
	case *Not:
		return []Node{n.constraint}
	case *Comparison:
		return []Node{n.operand1, n.operand2}
	case *Ordering:
		return []Node{n.operand}
	case *Length:
		return []Node{n.value}
	case *LowerCase:
		return []Node{n.operand}
	case *UpperCase:
		return []Node{n.operand}
	default:
		return nil
	}
}

// PreOrder calls fn for n and then each descendant, parents before
// children. Returning false from fn skips that node's children.
func PreOrder(n Node, fn func(Node) bool) {
	if isNil(n) {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range Children(n) {
		PreOrder(c, fn)
	}
}

// PostOrder calls fn for every descendant of n and then n itself, children
// before parents.
func PostOrder(n Node, fn func(Node)) {
	if isNil(n) {
		return
	}
	for _, c := range Children(n) {
		PostOrder(c, fn)
	}
	fn(n)
}

// ReferencedSelectors returns every selector name used in n, in first-use
// order and without duplicates. Aliased selectors contribute their alias.
func ReferencedSelectors(n Node) []SelectorName {
	var out []SelectorName
	seen := make(map[SelectorName]bool)
	add := func(names ...SelectorName) {
		for _, s := range names {
			if !s.IsZero() && !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	PreOrder(n, func(n Node) bool {
		switch n := n.(type) {
		case *NamedSelector:
			add(n.AliasOrName())
		case *Column:
			add(n.selector)
		case *ChildNodeJoinCondition:
			add(n.parent, n.child)
		case *EquiJoinCondition:
			add(n.selector1, n.selector2)
		case *SameNodeJoinCondition:
			add(n.selector1, n.selector2)
		case *DescendantNodeJoinCondition:
			add(n.ancestor, n.descendant)
		case *PropertyExistence:
			add(n.selector)
		case *FullTextSearch:
			add(n.selector)
		case *SameNode:
			add(n.selector)
		case *ChildNode:
			add(n.selector)
		case *DescendantNode:
			add(n.selector)
		case *PropertyValue:
			add(n.selector)
		case *NodeName:
			add(n.selector)
		case *NodeLocalName:
			add(n.selector)
		case *NodeDepth:
			add(n.selector)
		case *NodePath:
			add(n.selector)
		case *FullTextSearchScore:
			add(n.selector)
		}
		return true
	})
	return out
}
