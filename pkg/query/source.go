package query

// JoinType is the relational join type applied to pairs of node tuples.
type JoinType int

// Join types. The zero value is not a valid join type.
const (
	JoinInner JoinType = iota + 1
	JoinLeftOuter
	JoinRightOuter
	JoinFullOuter
	JoinCross
)

// IsValid reports whether t is one of the defined join types.
func (t JoinType) IsValid() bool {
	return t >= JoinInner && t <= JoinCross
}

// String returns the join keyword sequence, e.g. "LEFT OUTER JOIN".
func (t JoinType) String() string {
	switch t {
	case JoinInner:
		return "INNER JOIN"
	case JoinLeftOuter:
		return "LEFT OUTER JOIN"
	case JoinRightOuter:
		return "RIGHT OUTER JOIN"
	case JoinFullOuter:
		return "FULL OUTER JOIN"
	case JoinCross:
		return "CROSS JOIN"
	default:
		return "UNKNOWN JOIN"
	}
}

// NamedSelector is a source identified by a selector name with an optional alias.
type NamedSelector struct {
	name  SelectorName
	alias SelectorName
	hc    uint64
}

// NewNamedSelector creates an unaliased named selector.
func NewNamedSelector(name SelectorName) (*NamedSelector, error) {
	return NewAliasedSelector(name, SelectorName{})
}

// NewAliasedSelector creates a named selector with an alias. A zero alias
// means the selector is not aliased.
func NewAliasedSelector(name, alias SelectorName) (*NamedSelector, error) {
	if name.IsZero() {
		return nil, required("name")
	}
	return &NamedSelector{
		name:  name,
		alias: alias,
		hc:    newHasher("NamedSelector").str(name.name).str(alias.name).sum(),
	}, nil
}

// Name returns the selector name.
func (s *NamedSelector) Name() SelectorName { return s.name }

// Alias returns the alias, or the zero SelectorName if none.
func (s *NamedSelector) Alias() SelectorName { return s.alias }

// HasAlias reports whether the selector is aliased.
func (s *NamedSelector) HasAlias() bool { return !s.alias.IsZero() }

// AliasOrName returns the name other nodes use to reference this selector.
func (s *NamedSelector) AliasOrName() SelectorName {
	if s.HasAlias() {
		return s.alias
	}
	return s.name
}

func (s *NamedSelector) Accept(v Visitor) { v.VisitNamedSelector(s) }
func (s *NamedSelector) Hash() uint64     { return s.hc }
func (s *NamedSelector) String() string   { return Readable(s) }
func (*NamedSelector) sourceNode()        {}

// Equals reports structural equality.
func (s *NamedSelector) Equals(other Node) bool {
	that, ok := other.(*NamedSelector)
	if !ok || that == nil {
		return false
	}
	if s == that {
		return true
	}
	return s.hc == that.hc && s.name == that.name && s.alias == that.alias
}

// Join combines two sources with a join type and condition. Joins nest into
// binary trees that are acyclic by construction.
type Join struct {
	left      Source
	joinType  JoinType
	right     Source
	condition JoinCondition
	hc        uint64
}

// NewJoin creates a join of the left and right sources using the supplied
// join condition.
func NewJoin(left Source, joinType JoinType, right Source, condition JoinCondition) (*Join, error) {
	switch {
	case isNil(left):
		return nil, required("left")
	case isNil(right):
		return nil, required("right")
	case !joinType.IsValid():
		return nil, required("join type")
	case isNil(condition):
		return nil, required("join condition")
	}
	return &Join{
		left:      left,
		joinType:  joinType,
		right:     right,
		condition: condition,
		hc: newHasher("Join").
			node(left).
			u64(uint64(joinType)).
			node(right).
			node(condition).
			sum(),
	}, nil
}

// Left returns the left source.
func (j *Join) Left() Source { return j.left }

// Type returns the join type.
func (j *Join) Type() JoinType { return j.joinType }

// Right returns the right source.
func (j *Join) Right() Source { return j.right }

// Condition returns the join condition.
func (j *Join) Condition() JoinCondition { return j.condition }

func (j *Join) Accept(v Visitor) { v.VisitJoin(j) }
func (j *Join) Hash() uint64     { return j.hc }
func (j *Join) String() string   { return Readable(j) }
func (*Join) sourceNode()        {}

// Equals reports structural equality.
func (j *Join) Equals(other Node) bool {
	that, ok := other.(*Join)
	if !ok || that == nil {
		return false
	}
	if j == that {
		return true
	}
	if j.hc != that.hc || j.joinType != that.joinType {
		return false
	}
	return Equal(j.left, that.left) &&
		Equal(j.right, that.right) &&
		Equal(j.condition, that.condition)
}
