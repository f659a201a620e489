package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PropertyValue evaluates to the value of a property on the selected node.
type PropertyValue struct {
	selector SelectorName
	property string
	hc       uint64
}

// NewPropertyValue creates a property-value operand.
func NewPropertyValue(selector SelectorName, property string) (*PropertyValue, error) {
	if selector.IsZero() {
		return nil, required("selector name")
	}
	if strings.TrimSpace(property) == "" {
		return nil, required("property name")
	}
	return &PropertyValue{
		selector: selector,
		property: property,
		hc:       newHasher("PropertyValue").str(selector.name).str(property).sum(),
	}, nil
}

func (o *PropertyValue) SelectorName() SelectorName { return o.selector }
func (o *PropertyValue) PropertyName() string       { return o.property }

func (o *PropertyValue) Accept(v Visitor)  { v.VisitPropertyValue(o) }
func (o *PropertyValue) Hash() uint64      { return o.hc }
func (o *PropertyValue) String() string    { return Readable(o) }
func (*PropertyValue) dynamicOperandNode() {}

// Equals reports structural equality.
func (o *PropertyValue) Equals(other Node) bool {
	that, ok := other.(*PropertyValue)
	if !ok || that == nil {
		return false
	}
	return o == that || (o.hc == that.hc && o.selector == that.selector && o.property == that.property)
}

// Length evaluates to the length of a property value.
type Length struct {
	value *PropertyValue
	hc    uint64
}

// NewLength creates a length operand.
func NewLength(value *PropertyValue) (*Length, error) {
	if value == nil {
		return nil, required("property value")
	}
	return &Length{value: value, hc: newHasher("Length").node(value).sum()}, nil
}

func (o *Length) PropertyValue() *PropertyValue { return o.value }

func (o *Length) Accept(v Visitor)  { v.VisitLength(o) }
func (o *Length) Hash() uint64      { return o.hc }
func (o *Length) String() string    { return Readable(o) }
func (*Length) dynamicOperandNode() {}

// Equals reports structural equality.
func (o *Length) Equals(other Node) bool {
	that, ok := other.(*Length)
	if !ok || that == nil {
		return false
	}
	return o == that || (o.hc == that.hc && Equal(o.value, that.value))
}

// LowerCase evaluates to the lower-cased value of another operand.
type LowerCase struct {
	operand DynamicOperand
	hc      uint64
}

// NewLowerCase creates a lower-case operand.
func NewLowerCase(operand DynamicOperand) (*LowerCase, error) {
	if isNil(operand) {
		return nil, required("operand")
	}
	return &LowerCase{operand: operand, hc: newHasher("LowerCase").node(operand).sum()}, nil
}

func (o *LowerCase) Operand() DynamicOperand { return o.operand }

func (o *LowerCase) Accept(v Visitor)  { v.VisitLowerCase(o) }
func (o *LowerCase) Hash() uint64      { return o.hc }
func (o *LowerCase) String() string    { return Readable(o) }
func (*LowerCase) dynamicOperandNode() {}

// Equals reports structural equality.
func (o *LowerCase) Equals(other Node) bool {
	that, ok := other.(*LowerCase)
	if !ok || that == nil {
		return false
	}
	return o == that || (o.hc == that.hc && Equal(o.operand, that.operand))
}

// UpperCase evaluates to the upper-cased value of another operand.
type UpperCase struct {
	operand DynamicOperand
	hc      uint64
}

// NewUpperCase creates an upper-case operand.
func NewUpperCase(operand DynamicOperand) (*UpperCase, error) {
	if isNil(operand) {
		return nil, required("operand")
	}
	return &UpperCase{operand: operand, hc: newHasher("UpperCase").node(operand).sum()}, nil
}

func (o *UpperCase) Operand() DynamicOperand { return o.operand }

func (o *UpperCase) Accept(v Visitor)  { v.VisitUpperCase(o) }
func (o *UpperCase) Hash() uint64      { return o.hc }
func (o *UpperCase) String() string    { return Readable(o) }
func (*UpperCase) dynamicOperandNode() {}

// Equals reports structural equality.
func (o *UpperCase) Equals(other Node) bool {
	that, ok := other.(*UpperCase)
	if !ok || that == nil {
		return false
	}
	return o == that || (o.hc == that.hc && Equal(o.operand, that.operand))
}

// selectorOperand is shared by operands that only reference a selector.
type selectorOperand struct {
	selector SelectorName
	hc       uint64
}

func newSelectorOperand(tag string, selector SelectorName) (selectorOperand, error) {
	if selector.IsZero() {
		return selectorOperand{}, required("selector name")
	}
	return selectorOperand{selector: selector, hc: newHasher(tag).str(selector.name).sum()}, nil
}

// SelectorName returns the selector the operand evaluates against.
func (o *selectorOperand) SelectorName() SelectorName { return o.selector }

// Hash returns the structural hash.
func (o *selectorOperand) Hash() uint64 { return o.hc }

func (o *selectorOperand) same(that *selectorOperand) bool {
	return o.hc == that.hc && o.selector == that.selector
}

// NodeName evaluates to the qualified name of the selected node.
type NodeName struct{ selectorOperand }

// NewNodeName creates a node-name operand.
func NewNodeName(selector SelectorName) (*NodeName, error) {
	base, err := newSelectorOperand("NodeName", selector)
	if err != nil {
		return nil, err
	}
	return &NodeName{base}, nil
}

func (o *NodeName) Accept(v Visitor)  { v.VisitNodeName(o) }
func (o *NodeName) String() string    { return Readable(o) }
func (*NodeName) dynamicOperandNode() {}

// Equals reports structural equality.
func (o *NodeName) Equals(other Node) bool {
	that, ok := other.(*NodeName)
	return ok && that != nil && (o == that || o.same(&that.selectorOperand))
}

// NodeLocalName evaluates to the local part of the selected node's name.
type NodeLocalName struct{ selectorOperand }

// NewNodeLocalName creates a node-local-name operand.
func NewNodeLocalName(selector SelectorName) (*NodeLocalName, error) {
	base, err := newSelectorOperand("NodeLocalName", selector)
	if err != nil {
		return nil, err
	}
	return &NodeLocalName{base}, nil
}

func (o *NodeLocalName) Accept(v Visitor)  { v.VisitNodeLocalName(o) }
func (o *NodeLocalName) String() string    { return Readable(o) }
func (*NodeLocalName) dynamicOperandNode() {}

// Equals reports structural equality.
func (o *NodeLocalName) Equals(other Node) bool {
	that, ok := other.(*NodeLocalName)
	return ok && that != nil && (o == that || o.same(&that.selectorOperand))
}

// NodeDepth evaluates to the depth of the selected node.
type NodeDepth struct{ selectorOperand }

// NewNodeDepth creates a node-depth operand.
func NewNodeDepth(selector SelectorName) (*NodeDepth, error) {
	base, err := newSelectorOperand("NodeDepth", selector)
	if err != nil {
		return nil, err
	}
	return &NodeDepth{base}, nil
}

func (o *NodeDepth) Accept(v Visitor)  { v.VisitNodeDepth(o) }
func (o *NodeDepth) String() string    { return Readable(o) }
func (*NodeDepth) dynamicOperandNode() {}

// Equals reports structural equality.
func (o *NodeDepth) Equals(other Node) bool {
	that, ok := other.(*NodeDepth)
	return ok && that != nil && (o == that || o.same(&that.selectorOperand))
}

// NodePath evaluates to the path of the selected node.
type NodePath struct{ selectorOperand }

// NewNodePath creates a node-path operand.
func NewNodePath(selector SelectorName) (*NodePath, error) {
	base, err := newSelectorOperand("NodePath", selector)
	if err != nil {
		return nil, err
	}
	return &NodePath{base}, nil
}

func (o *NodePath) Accept(v Visitor)  { v.VisitNodePath(o) }
func (o *NodePath) String() string    { return Readable(o) }
func (*NodePath) dynamicOperandNode() {}

// Equals reports structural equality.
func (o *NodePath) Equals(other Node) bool {
	that, ok := other.(*NodePath)
	return ok && that != nil && (o == that || o.same(&that.selectorOperand))
}

// FullTextSearchScore evaluates to the full-text score of the selected node.
type FullTextSearchScore struct{ selectorOperand }

// NewFullTextSearchScore creates a score operand.
func NewFullTextSearchScore(selector SelectorName) (*FullTextSearchScore, error) {
	base, err := newSelectorOperand("FullTextSearchScore", selector)
	if err != nil {
		return nil, err
	}
	return &FullTextSearchScore{base}, nil
}

func (o *FullTextSearchScore) Accept(v Visitor)  { v.VisitFullTextSearchScore(o) }
func (o *FullTextSearchScore) String() string    { return Readable(o) }
func (*FullTextSearchScore) dynamicOperandNode() {}

// Equals reports structural equality.
func (o *FullTextSearchScore) Equals(other Node) bool {
	that, ok := other.(*FullTextSearchScore)
	return ok && that != nil && (o == that || o.same(&that.selectorOperand))
}

// Literal is a constant string, integer, float or boolean value.
type Literal struct {
	value any // string, int64, float64 or bool
	hc    uint64
}

// NewLiteral creates a literal. Integers are widened to int64 and float32
// to float64; other types are rejected.
func NewLiteral(value any) (*Literal, error) {
	var v any
	switch x := value.(type) {
	case string, int64, float64, bool:
		v = x
	case int:
		v = int64(x)
	case int32:
		v = int64(x)
	case float32:
		v = float64(x)
	case nil:
		return nil, required("literal value")
	default:
		return nil, invalid("unsupported literal type %T", value)
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		v = math.NaN()
	}
	return &Literal{value: v, hc: newHasher("Literal").str(literalKind(v)).str(formatLiteralValue(v)).sum()}, nil
}

// Value returns the literal value: a string, int64, float64 or bool.
func (o *Literal) Value() any { return o.value }

func (o *Literal) Accept(v Visitor) { v.VisitLiteral(o) }
func (o *Literal) Hash() uint64     { return o.hc }
func (o *Literal) String() string   { return Readable(o) }
func (*Literal) staticOperandNode() {}

// Equals reports structural equality.
func (o *Literal) Equals(other Node) bool {
	that, ok := other.(*Literal)
	if !ok || that == nil {
		return false
	}
	if o == that {
		return true
	}
	if o.hc != that.hc {
		return false
	}
	if a, ok := o.value.(float64); ok {
		b, ok := that.value.(float64)
		return ok && math.Float64bits(a) == math.Float64bits(b)
	}
	return o.value == that.value
}

func literalKind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case int64:
		return "long"
	case float64:
		return "double"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func formatLiteralValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return strconv.FormatFloat(x, 'g', -1, 64)
		}
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(x)
	}
}

// BindVariableName is a named placeholder bound at execution time.
type BindVariableName struct {
	name string
	hc   uint64
}

// NewBindVariableName creates a bind variable reference.
func NewBindVariableName(name string) (*BindVariableName, error) {
	if strings.TrimSpace(name) == "" {
		return nil, required("bind variable name")
	}
	return &BindVariableName{name: name, hc: newHasher("BindVariableName").str(name).sum()}, nil
}

func (o *BindVariableName) Name() string { return o.name }

func (o *BindVariableName) Accept(v Visitor) { v.VisitBindVariableName(o) }
func (o *BindVariableName) Hash() uint64     { return o.hc }
func (o *BindVariableName) String() string   { return Readable(o) }
func (*BindVariableName) staticOperandNode() {}

// Equals reports structural equality.
func (o *BindVariableName) Equals(other Node) bool {
	that, ok := other.(*BindVariableName)
	if !ok || that == nil {
		return false
	}
	return o == that || (o.hc == that.hc && o.name == that.name)
}
