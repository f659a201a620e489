package query

import (
	"strconv"
	"strings"
)

// Order is the direction of an Ordering.
type Order int

const (
	Ascending Order = iota + 1
	Descending
)

// IsValid reports whether o is a known direction.
func (o Order) IsValid() bool { return o == Ascending || o == Descending }

func (o Order) String() string {
	switch o {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return "ORDER(" + strconv.Itoa(int(o)) + ")"
	}
}

// Limit bounds the rows a query returns. The zero value is unlimited.
type Limit struct {
	RowLimit int // 0 means no limit
	Offset   int
}

// IsUnlimited reports whether l places no restriction on the result.
func (l Limit) IsUnlimited() bool { return l.RowLimit == 0 && l.Offset == 0 }

func (l Limit) validate() error {
	if l.RowLimit < 0 {
		return invalid("row limit must not be negative")
	}
	if l.Offset < 0 {
		return invalid("offset must not be negative")
	}
	return nil
}

// Column names one value in the result. An empty property selects all
// properties of the selector.
type Column struct {
	selector SelectorName
	property string
	alias    string
	hc       uint64
}

// NewColumn creates a result column. alias defaults to the property name.
func NewColumn(selector SelectorName, property, alias string) (*Column, error) {
	if selector.IsZero() {
		return nil, required("selector name")
	}
	property = strings.TrimSpace(property)
	if property == "" && alias != "" {
		return nil, invalid("a column alias requires a property name")
	}
	if alias == "" {
		alias = property
	}
	return &Column{
		selector: selector,
		property: property,
		alias:    alias,
		hc:       newHasher("Column").str(selector.name).str(property).str(alias).sum(),
	}, nil
}

func (c *Column) SelectorName() SelectorName { return c.selector }
func (c *Column) PropertyName() string       { return c.property }
func (c *Column) ColumnName() string         { return c.alias }

// IsWildcard reports whether the column selects every property.
func (c *Column) IsWildcard() bool { return c.property == "" }

func (c *Column) Accept(v Visitor) { v.VisitColumn(c) }
func (c *Column) Hash() uint64     { return c.hc }
func (c *Column) String() string   { return Readable(c) }

// Equals reports structural equality.
func (c *Column) Equals(other Node) bool {
	that, ok := other.(*Column)
	if !ok || that == nil {
		return false
	}
	return c == that || (c.hc == that.hc && c.selector == that.selector &&
		c.property == that.property && c.alias == that.alias)
}

// Ordering sorts the result by a dynamic operand.
type Ordering struct {
	operand DynamicOperand
	order   Order
	hc      uint64
}

// NewOrdering creates an ordering.
func NewOrdering(operand DynamicOperand, order Order) (*Ordering, error) {
	if isNil(operand) {
		return nil, required("operand")
	}
	if !order.IsValid() {
		return nil, invalid("unknown order %d", int(order))
	}
	return &Ordering{
		operand: operand,
		order:   order,
		hc:      newHasher("Ordering").node(operand).u64(uint64(order)).sum(),
	}, nil
}

func (o *Ordering) Operand() DynamicOperand { return o.operand }
func (o *Ordering) Order() Order            { return o.order }

func (o *Ordering) Accept(v Visitor) { v.VisitOrdering(o) }
func (o *Ordering) Hash() uint64     { return o.hc }
func (o *Ordering) String() string   { return Readable(o) }

// Equals reports structural equality.
func (o *Ordering) Equals(other Node) bool {
	that, ok := other.(*Ordering)
	if !ok || that == nil {
		return false
	}
	return o == that || (o.hc == that.hc && o.order == that.order && Equal(o.operand, that.operand))
}

// Query is a complete query: a source, an optional constraint, the result
// columns and their ordering, and a row limit.
type Query struct {
	source     Source
	constraint Constraint
	columns    []*Column
	orderings  []*Ordering
	limit      Limit
	hc         uint64
}

// NewQuery creates a query. constraint may be nil. The column and ordering
// slices are copied.
func NewQuery(source Source, constraint Constraint, columns []*Column, orderings []*Ordering, limit Limit) (*Query, error) {
	if isNil(source) {
		return nil, required("source")
	}
	if isNil(constraint) {
		constraint = nil
	}
	if err := limit.validate(); err != nil {
		return nil, err
	}
	h := newHasher("Query").node(source).node(constraint)
	h.u64(uint64(len(columns)))
	for i, c := range columns {
		if c == nil {
			return nil, invalid("column %d is nil", i)
		}
		h.node(c)
	}
	h.u64(uint64(len(orderings)))
	for i, o := range orderings {
		if o == nil {
			return nil, invalid("ordering %d is nil", i)
		}
		h.node(o)
	}
	h.u64(uint64(limit.RowLimit)).u64(uint64(limit.Offset))
	return &Query{
		source:     source,
		constraint: constraint,
		columns:    append([]*Column(nil), columns...),
		orderings:  append([]*Ordering(nil), orderings...),
		limit:      limit,
		hc:         h.sum(),
	}, nil
}

func (q *Query) Source() Source         { return q.source }
func (q *Query) Constraint() Constraint { return q.constraint }
func (q *Query) Limit() Limit           { return q.limit }

// Columns returns a copy of the result columns.
func (q *Query) Columns() []*Column { return append([]*Column(nil), q.columns...) }

// Orderings returns a copy of the orderings.
func (q *Query) Orderings() []*Ordering { return append([]*Ordering(nil), q.orderings...) }

func (q *Query) Accept(v Visitor) { v.VisitQuery(q) }
func (q *Query) Hash() uint64     { return q.hc }
func (q *Query) String() string   { return Readable(q) }

// Equals reports structural equality.
func (q *Query) Equals(other Node) bool {
	that, ok := other.(*Query)
	if !ok || that == nil {
		return false
	}
	if q == that {
		return true
	}
	if q.hc != that.hc || q.limit != that.limit ||
		len(q.columns) != len(that.columns) || len(q.orderings) != len(that.orderings) {
		return false
	}
	if !Equal(q.source, that.source) || !Equal(q.constraint, that.constraint) {
		return false
	}
	for i := range q.columns {
		if !q.columns[i].Equals(that.columns[i]) {
			return false
		}
	}
	for i := range q.orderings {
		if !q.orderings[i].Equals(that.orderings[i]) {
			return false
		}
	}
	return true
}
