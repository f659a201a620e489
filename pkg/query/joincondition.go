package query

import "strings"

// ChildNodeJoinCondition holds iff the node bound to the child selector is a
// direct child of the node bound to the parent selector.
type ChildNodeJoinCondition struct {
	parent SelectorName
	child  SelectorName
	hc     uint64
}

// NewChildNodeJoinCondition creates a child-node join condition.
func NewChildNodeJoinCondition(parent, child SelectorName) (*ChildNodeJoinCondition, error) {
	if parent.IsZero() {
		return nil, required("parent selector name")
	}
	if child.IsZero() {
		return nil, required("child selector name")
	}
	return &ChildNodeJoinCondition{
		parent: parent,
		child:  child,
		hc:     newHasher("ChildNodeJoinCondition").str(parent.name).str(child.name).sum(),
	}, nil
}

// ParentSelectorName returns the selector bound to the parent node.
func (c *ChildNodeJoinCondition) ParentSelectorName() SelectorName { return c.parent }

// ChildSelectorName returns the selector bound to the child node.
func (c *ChildNodeJoinCondition) ChildSelectorName() SelectorName { return c.child }

func (c *ChildNodeJoinCondition) Accept(v Visitor) { v.VisitChildNodeJoinCondition(c) }
func (c *ChildNodeJoinCondition) Hash() uint64     { return c.hc }
func (c *ChildNodeJoinCondition) String() string   { return Readable(c) }
func (*ChildNodeJoinCondition) joinConditionNode() {}

// Equals reports structural equality.
func (c *ChildNodeJoinCondition) Equals(other Node) bool {
	that, ok := other.(*ChildNodeJoinCondition)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && c.parent == that.parent && c.child == that.child
}

// EquiJoinCondition holds iff a property of one selector equals a property
// of another.
type EquiJoinCondition struct {
	selector1 SelectorName
	property1 string
	selector2 SelectorName
	property2 string
	hc        uint64
}

// NewEquiJoinCondition creates an equi-join condition.
func NewEquiJoinCondition(selector1 SelectorName, property1 string, selector2 SelectorName, property2 string) (*EquiJoinCondition, error) {
	switch {
	case selector1.IsZero():
		return nil, required("selector1 name")
	case strings.TrimSpace(property1) == "":
		return nil, required("property1 name")
	case selector2.IsZero():
		return nil, required("selector2 name")
	case strings.TrimSpace(property2) == "":
		return nil, required("property2 name")
	}
	return &EquiJoinCondition{
		selector1: selector1,
		property1: property1,
		selector2: selector2,
		property2: property2,
		hc: newHasher("EquiJoinCondition").
			str(selector1.name).str(property1).
			str(selector2.name).str(property2).
			sum(),
	}, nil
}

func (c *EquiJoinCondition) Selector1Name() SelectorName { return c.selector1 }
func (c *EquiJoinCondition) Property1Name() string       { return c.property1 }
func (c *EquiJoinCondition) Selector2Name() SelectorName { return c.selector2 }
func (c *EquiJoinCondition) Property2Name() string       { return c.property2 }

func (c *EquiJoinCondition) Accept(v Visitor) { v.VisitEquiJoinCondition(c) }
func (c *EquiJoinCondition) Hash() uint64     { return c.hc }
func (c *EquiJoinCondition) String() string   { return Readable(c) }
func (*EquiJoinCondition) joinConditionNode() {}

// Equals reports structural equality.
func (c *EquiJoinCondition) Equals(other Node) bool {
	that, ok := other.(*EquiJoinCondition)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc &&
		c.selector1 == that.selector1 && c.property1 == that.property1 &&
		c.selector2 == that.selector2 && c.property2 == that.property2
}

// SameNodeJoinCondition holds iff both selectors are bound to the same node,
// or, with a relative path, iff the second node is reachable from the first
// via that path.
type SameNodeJoinCondition struct {
	selector1 SelectorName
	selector2 SelectorName
	path      string
	hc        uint64
}

// NewSameNodeJoinCondition creates a same-node join condition. relPath may
// be empty.
func NewSameNodeJoinCondition(selector1, selector2 SelectorName, relPath string) (*SameNodeJoinCondition, error) {
	if selector1.IsZero() {
		return nil, required("selector1 name")
	}
	if selector2.IsZero() {
		return nil, required("selector2 name")
	}
	if strings.HasPrefix(relPath, "/") {
		return nil, invalid("path %q must be relative", relPath)
	}
	return &SameNodeJoinCondition{
		selector1: selector1,
		selector2: selector2,
		path:      relPath,
		hc:        newHasher("SameNodeJoinCondition").str(selector1.name).str(selector2.name).str(relPath).sum(),
	}, nil
}

func (c *SameNodeJoinCondition) Selector1Name() SelectorName { return c.selector1 }
func (c *SameNodeJoinCondition) Selector2Name() SelectorName { return c.selector2 }

// SelectorPath returns the relative path from selector2, or "".
func (c *SameNodeJoinCondition) SelectorPath() string { return c.path }

func (c *SameNodeJoinCondition) Accept(v Visitor) { v.VisitSameNodeJoinCondition(c) }
func (c *SameNodeJoinCondition) Hash() uint64     { return c.hc }
func (c *SameNodeJoinCondition) String() string   { return Readable(c) }
func (*SameNodeJoinCondition) joinConditionNode() {}

// Equals reports structural equality.
func (c *SameNodeJoinCondition) Equals(other Node) bool {
	that, ok := other.(*SameNodeJoinCondition)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && c.selector1 == that.selector1 &&
		c.selector2 == that.selector2 && c.path == that.path
}

// DescendantNodeJoinCondition holds iff the descendant selector's node is
// below the ancestor selector's node.
type DescendantNodeJoinCondition struct {
	ancestor   SelectorName
	descendant SelectorName
	hc         uint64
}

// NewDescendantNodeJoinCondition creates a descendant-node join condition.
func NewDescendantNodeJoinCondition(ancestor, descendant SelectorName) (*DescendantNodeJoinCondition, error) {
	if ancestor.IsZero() {
		return nil, required("ancestor selector name")
	}
	if descendant.IsZero() {
		return nil, required("descendant selector name")
	}
	return &DescendantNodeJoinCondition{
		ancestor:   ancestor,
		descendant: descendant,
		hc:         newHasher("DescendantNodeJoinCondition").str(ancestor.name).str(descendant.name).sum(),
	}, nil
}

func (c *DescendantNodeJoinCondition) AncestorSelectorName() SelectorName   { return c.ancestor }
func (c *DescendantNodeJoinCondition) DescendantSelectorName() SelectorName { return c.descendant }

func (c *DescendantNodeJoinCondition) Accept(v Visitor) { v.VisitDescendantNodeJoinCondition(c) }
func (c *DescendantNodeJoinCondition) Hash() uint64     { return c.hc }
func (c *DescendantNodeJoinCondition) String() string   { return Readable(c) }
func (*DescendantNodeJoinCondition) joinConditionNode() {}

// Equals reports structural equality.
func (c *DescendantNodeJoinCondition) Equals(other Node) bool {
	that, ok := other.(*DescendantNodeJoinCondition)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && c.ancestor == that.ancestor && c.descendant == that.descendant
}
