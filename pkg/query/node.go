package query

// Node is implemented by every value in the query model.
type Node interface {
	// Accept calls the Visitor method matching the node's concrete type.
	Accept(v Visitor)
	// Hash returns the structural hash computed at construction.
	Hash() uint64
	// Equals reports structural equality with other.
	Equals(other Node) bool
	String() string
}

// Source is the logical input of a query: a named selector or a join.
type Source interface {
	Node
	sourceNode()
}

// JoinCondition is a predicate over a pair of bound selectors.
type JoinCondition interface {
	Node
	joinConditionNode()
}

// Constraint is a predicate restricting which nodes qualify.
type Constraint interface {
	Node
	constraintNode()
}

// DynamicOperand evaluates against the node bound to a selector.
type DynamicOperand interface {
	Node
	dynamicOperandNode()
}

// StaticOperand is a value known before evaluation.
type StaticOperand interface {
	Node
	staticOperandNode()
}

// Visitor has one method per concrete node type. Adding a node type adds a
// method here, so every visitor must be updated to compile.
type Visitor interface {
	VisitQuery(*Query)
	VisitColumn(*Column)
	VisitOrdering(*Ordering)

	VisitNamedSelector(*NamedSelector)
	VisitJoin(*Join)

	VisitChildNodeJoinCondition(*ChildNodeJoinCondition)
	VisitEquiJoinCondition(*EquiJoinCondition)
	VisitSameNodeJoinCondition(*SameNodeJoinCondition)
	VisitDescendantNodeJoinCondition(*DescendantNodeJoinCondition)

	VisitAnd(*And)
	VisitOr(*Or)
	VisitNot(*Not)
	VisitComparison(*Comparison)
	VisitPropertyExistence(*PropertyExistence)
	VisitFullTextSearch(*FullTextSearch)
	VisitSameNode(*SameNode)
	VisitChildNode(*ChildNode)
	VisitDescendantNode(*DescendantNode)

	VisitPropertyValue(*PropertyValue)
	VisitLength(*Length)
	VisitLowerCase(*LowerCase)
	VisitUpperCase(*UpperCase)
	VisitNodeName(*NodeName)
	VisitNodeLocalName(*NodeLocalName)
	VisitNodeDepth(*NodeDepth)
	VisitNodePath(*NodePath)
	VisitFullTextSearchScore(*FullTextSearchScore)

	VisitLiteral(*Literal)
	VisitBindVariableName(*BindVariableName)
}

// Equal reports whether a and b are structurally equal.
// Two nil nodes are equal; a nil and a non-nil node are not.
func Equal(a, b Node) bool {
	an, bn := isNil(a), isNil(b)
	if an || bn {
		return an && bn
	}
	return a.Equals(b)
}
