package query

import (
	"strconv"
	"strings"
)

// Readable renders n in a deterministic SQL-like form. Equal trees always
// render identically; rendering never modifies the tree.
func Readable(n Node) string {
	if isNil(n) {
		return ""
	}
	r := &readable{}
	n.Accept(r)
	return r.sb.String()
}

// readable is the canonical stringifying Visitor.
type readable struct {
	sb strings.Builder
}

func (r *readable) write(parts ...string) {
	for _, p := range parts {
		r.sb.WriteString(p)
	}
}

func (r *readable) name(s SelectorName) {
	r.write("[", s.name, "]")
}

func (r *readable) property(s SelectorName, property string) {
	r.name(s)
	r.write(".[", property, "]")
}

func (r *readable) quoted(s string) {
	r.write("'", strings.ReplaceAll(s, "'", "''"), "'")
}

// nested renders a boolean operand, parenthesising compound ones.
func (r *readable) nested(c Constraint) {
	switch c.(type) {
	case *And, *Or:
		r.write("(")
		c.Accept(r)
		r.write(")")
	default:
		c.Accept(r)
	}
}

func (r *readable) VisitQuery(q *Query) {
	r.write("SELECT ")
	if len(q.columns) == 0 {
		r.write("*")
	}
	for i, c := range q.columns {
		if i > 0 {
			r.write(", ")
		}
		c.Accept(r)
	}
	r.write(" FROM ")
	q.source.Accept(r)
	if q.constraint != nil {
		r.write(" WHERE ")
		q.constraint.Accept(r)
	}
	if len(q.orderings) > 0 {
		r.write(" ORDER BY ")
		for i, o := range q.orderings {
			if i > 0 {
				r.write(", ")
			}
			o.Accept(r)
		}
	}
	if q.limit.RowLimit > 0 {
		r.write(" LIMIT ", strconv.Itoa(q.limit.RowLimit))
	}
	if q.limit.Offset > 0 {
		r.write(" OFFSET ", strconv.Itoa(q.limit.Offset))
	}
}

func (r *readable) VisitColumn(c *Column) {
	if c.IsWildcard() {
		r.name(c.selector)
		r.write(".*")
		return
	}
	r.property(c.selector, c.property)
	if c.alias != c.property {
		r.write(" AS [", c.alias, "]")
	}
}

func (r *readable) VisitOrdering(o *Ordering) {
	o.operand.Accept(r)
	r.write(" ", o.order.String())
}

func (r *readable) VisitNamedSelector(s *NamedSelector) {
	r.name(s.name)
	if s.HasAlias() {
		r.write(" AS ")
		r.name(s.alias)
	}
}

func (r *readable) VisitJoin(j *Join) {
	j.left.Accept(r)
	r.write(" ", j.joinType.String(), " ")
	if _, nestedJoin := j.right.(*Join); nestedJoin {
		r.write("(")
		j.right.Accept(r)
		r.write(")")
	} else {
		j.right.Accept(r)
	}
	r.write(" ON ")
	j.condition.Accept(r)
}

func (r *readable) VisitChildNodeJoinCondition(c *ChildNodeJoinCondition) {
	r.write("ISCHILDNODE(")
	r.name(c.child)
	r.write(",")
	r.name(c.parent)
	r.write(")")
}

func (r *readable) VisitEquiJoinCondition(c *EquiJoinCondition) {
	r.property(c.selector1, c.property1)
	r.write(" = ")
	r.property(c.selector2, c.property2)
}

func (r *readable) VisitSameNodeJoinCondition(c *SameNodeJoinCondition) {
	r.write("ISSAMENODE(")
	r.name(c.selector1)
	r.write(",")
	r.name(c.selector2)
	if c.path != "" {
		r.write(",")
		r.quoted(c.path)
	}
	r.write(")")
}

func (r *readable) VisitDescendantNodeJoinCondition(c *DescendantNodeJoinCondition) {
	r.write("ISDESCENDANTNODE(")
	r.name(c.descendant)
	r.write(",")
	r.name(c.ancestor)
	r.write(")")
}

func (r *readable) VisitAnd(c *And) {
	r.nested(c.left)
	r.write(" AND ")
	r.nested(c.right)
}

func (r *readable) VisitOr(c *Or) {
	r.nested(c.left)
	r.write(" OR ")
	r.nested(c.right)
}

func (r *readable) VisitNot(c *Not) {
	r.write("NOT(")
	c.constraint.Accept(r)
	r.write(")")
}

func (r *readable) VisitComparison(c *Comparison) {
	c.operand1.Accept(r)
	r.write(" ", c.operator.Symbol(), " ")
	c.operand2.Accept(r)
}

func (r *readable) VisitPropertyExistence(c *PropertyExistence) {
	r.property(c.selector, c.property)
	r.write(" IS NOT NULL")
}

func (r *readable) VisitFullTextSearch(c *FullTextSearch) {
	r.write("CONTAINS(")
	if c.property == "" {
		r.name(c.selector)
		r.write(".*")
	} else {
		r.property(c.selector, c.property)
	}
	r.write(",")
	r.quoted(c.expression)
	r.write(")")
}

func (r *readable) VisitSameNode(c *SameNode) {
	r.write("ISSAMENODE(")
	r.name(c.selector)
	r.write(",")
	r.quoted(c.path.String())
	r.write(")")
}

func (r *readable) VisitChildNode(c *ChildNode) {
	r.write("ISCHILDNODE(")
	r.name(c.selector)
	r.write(",")
	r.quoted(c.parentPath.String())
	r.write(")")
}

func (r *readable) VisitDescendantNode(c *DescendantNode) {
	r.write("ISDESCENDANTNODE(")
	r.name(c.selector)
	r.write(",")
	r.quoted(c.ancestorPath.String())
	r.write(")")
}

func (r *readable) VisitPropertyValue(o *PropertyValue) {
	r.property(o.selector, o.property)
}

func (r *readable) VisitLength(o *Length) {
	r.write("LENGTH(")
	o.value.Accept(r)
	r.write(")")
}

func (r *readable) VisitLowerCase(o *LowerCase) {
	r.write("LOWER(")
	o.operand.Accept(r)
	r.write(")")
}

func (r *readable) VisitUpperCase(o *UpperCase) {
	r.write("UPPER(")
	o.operand.Accept(r)
	r.write(")")
}

func (r *readable) selectorFunc(fn string, s SelectorName) {
	r.write(fn, "(")
	r.name(s)
	r.write(")")
}

func (r *readable) VisitNodeName(o *NodeName)           { r.selectorFunc("NAME", o.selector) }
func (r *readable) VisitNodeLocalName(o *NodeLocalName) { r.selectorFunc("LOCALNAME", o.selector) }
func (r *readable) VisitNodeDepth(o *NodeDepth)         { r.selectorFunc("DEPTH", o.selector) }
func (r *readable) VisitNodePath(o *NodePath)           { r.selectorFunc("PATH", o.selector) }

func (r *readable) VisitFullTextSearchScore(o *FullTextSearchScore) {
	r.selectorFunc("SCORE", o.selector)
}

func (r *readable) VisitLiteral(o *Literal) {
	if s, ok := o.value.(string); ok {
		r.quoted(s)
		return
	}
	r.write(formatLiteralValue(o.value))
}

func (r *readable) VisitBindVariableName(o *BindVariableName) {
	r.write("$", o.name)
}
