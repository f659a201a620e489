package query

import "strings"

// Operator is a comparison operator.
type Operator int

// Comparison operators. The zero value is not a valid operator.
const (
	OpEqualTo Operator = iota + 1
	OpNotEqualTo
	OpLessThan
	OpLessThanOrEqualTo
	OpGreaterThan
	OpGreaterThanOrEqualTo
	OpLike
)

// IsValid reports whether op is a defined operator.
func (op Operator) IsValid() bool {
	return op >= OpEqualTo && op <= OpLike
}

// Symbol returns the operator's textual form.
func (op Operator) Symbol() string {
	switch op {
	case OpEqualTo:
		return "="
	case OpNotEqualTo:
		return "!="
	case OpLessThan:
		return "<"
	case OpLessThanOrEqualTo:
		return "<="
	case OpGreaterThan:
		return ">"
	case OpGreaterThanOrEqualTo:
		return ">="
	case OpLike:
		return "LIKE"
	default:
		return "?"
	}
}

func (op Operator) String() string { return op.Symbol() }

// And is the conjunction of two constraints.
type And struct {
	left  Constraint
	right Constraint
	hc    uint64
}

// NewAnd creates a conjunction.
func NewAnd(left, right Constraint) (*And, error) {
	if isNil(left) {
		return nil, required("left constraint")
	}
	if isNil(right) {
		return nil, required("right constraint")
	}
	return &And{left: left, right: right, hc: newHasher("And").node(left).node(right).sum()}, nil
}

func (c *And) Left() Constraint  { return c.left }
func (c *And) Right() Constraint { return c.right }

func (c *And) Accept(v Visitor) { v.VisitAnd(c) }
func (c *And) Hash() uint64     { return c.hc }
func (c *And) String() string   { return Readable(c) }
func (*And) constraintNode()    {}

// Equals reports structural equality.
func (c *And) Equals(other Node) bool {
	that, ok := other.(*And)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && Equal(c.left, that.left) && Equal(c.right, that.right)
}

// Or is the disjunction of two constraints.
type Or struct {
	left  Constraint
	right Constraint
	hc    uint64
}

// NewOr creates a disjunction.
func NewOr(left, right Constraint) (*Or, error) {
	if isNil(left) {
		return nil, required("left constraint")
	}
	if isNil(right) {
		return nil, required("right constraint")
	}
	return &Or{left: left, right: right, hc: newHasher("Or").node(left).node(right).sum()}, nil
}

func (c *Or) Left() Constraint  { return c.left }
func (c *Or) Right() Constraint { return c.right }

func (c *Or) Accept(v Visitor) { v.VisitOr(c) }
func (c *Or) Hash() uint64     { return c.hc }
func (c *Or) String() string   { return Readable(c) }
func (*Or) constraintNode()    {}

// Equals reports structural equality.
func (c *Or) Equals(other Node) bool {
	that, ok := other.(*Or)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && Equal(c.left, that.left) && Equal(c.right, that.right)
}

// Not negates a constraint.
type Not struct {
	constraint Constraint
	hc         uint64
}

// NewNot creates a negation.
func NewNot(constraint Constraint) (*Not, error) {
	if isNil(constraint) {
		return nil, required("constraint")
	}
	return &Not{constraint: constraint, hc: newHasher("Not").node(constraint).sum()}, nil
}

func (c *Not) Constraint() Constraint { return c.constraint }

func (c *Not) Accept(v Visitor) { v.VisitNot(c) }
func (c *Not) Hash() uint64     { return c.hc }
func (c *Not) String() string   { return Readable(c) }
func (*Not) constraintNode()    {}

// Equals reports structural equality.
func (c *Not) Equals(other Node) bool {
	that, ok := other.(*Not)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && Equal(c.constraint, that.constraint)
}

// Comparison compares a dynamic operand with a static operand.
type Comparison struct {
	operand1 DynamicOperand
	operator Operator
	operand2 StaticOperand
	hc       uint64
}

// NewComparison creates a comparison constraint.
func NewComparison(operand1 DynamicOperand, operator Operator, operand2 StaticOperand) (*Comparison, error) {
	switch {
	case isNil(operand1):
		return nil, required("operand1")
	case !operator.IsValid():
		return nil, required("operator")
	case isNil(operand2):
		return nil, required("operand2")
	}
	return &Comparison{
		operand1: operand1,
		operator: operator,
		operand2: operand2,
		hc:       newHasher("Comparison").node(operand1).u64(uint64(operator)).node(operand2).sum(),
	}, nil
}

func (c *Comparison) Operand1() DynamicOperand { return c.operand1 }
func (c *Comparison) Operator() Operator       { return c.operator }
func (c *Comparison) Operand2() StaticOperand  { return c.operand2 }

func (c *Comparison) Accept(v Visitor) { v.VisitComparison(c) }
func (c *Comparison) Hash() uint64     { return c.hc }
func (c *Comparison) String() string   { return Readable(c) }
func (*Comparison) constraintNode()    {}

// Equals reports structural equality.
func (c *Comparison) Equals(other Node) bool {
	that, ok := other.(*Comparison)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && c.operator == that.operator &&
		Equal(c.operand1, that.operand1) && Equal(c.operand2, that.operand2)
}

// PropertyExistence holds iff the selected node has the named property.
type PropertyExistence struct {
	selector SelectorName
	property string
	hc       uint64
}

// NewPropertyExistence creates a property-existence constraint.
func NewPropertyExistence(selector SelectorName, property string) (*PropertyExistence, error) {
	if selector.IsZero() {
		return nil, required("selector name")
	}
	if strings.TrimSpace(property) == "" {
		return nil, required("property name")
	}
	return &PropertyExistence{
		selector: selector,
		property: property,
		hc:       newHasher("PropertyExistence").str(selector.name).str(property).sum(),
	}, nil
}

func (c *PropertyExistence) SelectorName() SelectorName { return c.selector }
func (c *PropertyExistence) PropertyName() string       { return c.property }

func (c *PropertyExistence) Accept(v Visitor) { v.VisitPropertyExistence(c) }
func (c *PropertyExistence) Hash() uint64     { return c.hc }
func (c *PropertyExistence) String() string   { return Readable(c) }
func (*PropertyExistence) constraintNode()    {}

// Equals reports structural equality.
func (c *PropertyExistence) Equals(other Node) bool {
	that, ok := other.(*PropertyExistence)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && c.selector == that.selector && c.property == that.property
}

// FullTextSearch holds iff the selected node, or one of its properties,
// matches a full-text search expression.
type FullTextSearch struct {
	selector   SelectorName
	property   string
	expression string
	hc         uint64
}

// NewFullTextSearch creates a full-text search constraint. An empty
// property searches every property of the node.
func NewFullTextSearch(selector SelectorName, property, expression string) (*FullTextSearch, error) {
	if selector.IsZero() {
		return nil, required("selector name")
	}
	if strings.TrimSpace(expression) == "" {
		return nil, required("full-text search expression")
	}
	return &FullTextSearch{
		selector:   selector,
		property:   property,
		expression: expression,
		hc:         newHasher("FullTextSearch").str(selector.name).str(property).str(expression).sum(),
	}, nil
}

func (c *FullTextSearch) SelectorName() SelectorName { return c.selector }

// PropertyName returns the searched property, or "" for all properties.
func (c *FullTextSearch) PropertyName() string { return c.property }

func (c *FullTextSearch) FullTextSearchExpression() string { return c.expression }

func (c *FullTextSearch) Accept(v Visitor) { v.VisitFullTextSearch(c) }
func (c *FullTextSearch) Hash() uint64     { return c.hc }
func (c *FullTextSearch) String() string   { return Readable(c) }
func (*FullTextSearch) constraintNode()    {}

// Equals reports structural equality.
func (c *FullTextSearch) Equals(other Node) bool {
	that, ok := other.(*FullTextSearch)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && c.selector == that.selector &&
		c.property == that.property && c.expression == that.expression
}

// SameNode holds iff the selected node is reachable at exactly the given
// absolute path.
type SameNode struct {
	selector SelectorName
	path     Path
	hc       uint64
}

// NewSameNode creates a same-node constraint.
func NewSameNode(selector SelectorName, path Path) (*SameNode, error) {
	if selector.IsZero() {
		return nil, required("selector name")
	}
	if path.IsZero() {
		return nil, required("path")
	}
	return &SameNode{
		selector: selector,
		path:     path,
		hc:       newHasher("SameNode").str(selector.name).str(path.value).sum(),
	}, nil
}

// SelectorName returns the name of the selector.
func (c *SameNode) SelectorName() SelectorName { return c.selector }

// Path returns the absolute path of the node.
func (c *SameNode) Path() Path { return c.path }

func (c *SameNode) Accept(v Visitor) { v.VisitSameNode(c) }
func (c *SameNode) Hash() uint64     { return c.hc }
func (c *SameNode) String() string   { return Readable(c) }
func (*SameNode) constraintNode()    {}

// Equals reports structural equality.
func (c *SameNode) Equals(other Node) bool {
	that, ok := other.(*SameNode)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && c.selector == that.selector && c.path == that.path
}

// ChildNode holds iff the selected node is a child of the node at the
// given path.
type ChildNode struct {
	selector   SelectorName
	parentPath Path
	hc         uint64
}

// NewChildNode creates a child-node constraint.
func NewChildNode(selector SelectorName, parentPath Path) (*ChildNode, error) {
	if selector.IsZero() {
		return nil, required("selector name")
	}
	if parentPath.IsZero() {
		return nil, required("parent path")
	}
	return &ChildNode{
		selector:   selector,
		parentPath: parentPath,
		hc:         newHasher("ChildNode").str(selector.name).str(parentPath.value).sum(),
	}, nil
}

func (c *ChildNode) SelectorName() SelectorName { return c.selector }
func (c *ChildNode) ParentPath() Path           { return c.parentPath }

func (c *ChildNode) Accept(v Visitor) { v.VisitChildNode(c) }
func (c *ChildNode) Hash() uint64     { return c.hc }
func (c *ChildNode) String() string   { return Readable(c) }
func (*ChildNode) constraintNode()    {}

// Equals reports structural equality.
func (c *ChildNode) Equals(other Node) bool {
	that, ok := other.(*ChildNode)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && c.selector == that.selector && c.parentPath == that.parentPath
}

// DescendantNode holds iff the selected node is below the node at the
// given path.
type DescendantNode struct {
	selector     SelectorName
	ancestorPath Path
	hc           uint64
}

// NewDescendantNode creates a descendant-node constraint.
func NewDescendantNode(selector SelectorName, ancestorPath Path) (*DescendantNode, error) {
	if selector.IsZero() {
		return nil, required("selector name")
	}
	if ancestorPath.IsZero() {
		return nil, required("ancestor path")
	}
	return &DescendantNode{
		selector:     selector,
		ancestorPath: ancestorPath,
		hc:           newHasher("DescendantNode").str(selector.name).str(ancestorPath.value).sum(),
	}, nil
}

func (c *DescendantNode) SelectorName() SelectorName { return c.selector }
func (c *DescendantNode) AncestorPath() Path         { return c.ancestorPath }

func (c *DescendantNode) Accept(v Visitor) { v.VisitDescendantNode(c) }
func (c *DescendantNode) Hash() uint64     { return c.hc }
func (c *DescendantNode) String() string   { return Readable(c) }
func (*DescendantNode) constraintNode()    {}

// Equals reports structural equality.
func (c *DescendantNode) Equals(other Node) bool {
	that, ok := other.(*DescendantNode)
	if !ok || that == nil {
		return false
	}
	if c == that {
		return true
	}
	return c.hc == that.hc && c.selector == that.selector && c.ancestorPath == that.ancestorPath
}
