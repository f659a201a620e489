package ddl

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Tree owns every node of one parse result. Nodes refer to their parent and
// children by index into the tree, so a *Node is only a handle.
type Tree struct {
	records []record
}

type record struct {
	name     string
	typ      Name
	parent   int // -1 for the root
	children []int
	props    []property
}

type property struct {
	name  string
	value any
}

// Node is a handle to one node of a Tree.
type Node struct {
	tree *Tree
	id   int
}

// NewTree creates a tree and returns its root node.
func NewTree(name string, typ Name) *Node {
	t := &Tree{}
	t.records = append(t.records, record{name: name, typ: typ, parent: -1})
	return &Node{tree: t, id: 0}
}

// NewStatementsRoot creates the container node DDL statements are parsed into.
func NewStatementsRoot() *Node {
	root := NewTree("statements", TypeStatements)
	root.SetProperty(PropPrimaryType, Unstructured)
	return root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.records) }

func (n *Node) rec() *record { return &n.tree.records[n.id] }

// Tree returns the tree that owns n.
func (n *Node) Tree() *Tree { return n.tree }

// ID returns the node's index within its tree.
func (n *Node) ID() int { return n.id }

// Name returns the node name.
func (n *Node) Name() string { return n.rec().name }

// Type returns the node type tag.
func (n *Node) Type() Name { return n.rec().typ }

// SetType replaces the node type tag.
func (n *Node) SetType(typ Name) { n.rec().typ = typ }

// Rename replaces the node name.
func (n *Node) Rename(name string) { n.rec().name = name }

// Is reports whether n has type typ.
func (n *Node) Is(typ Name) bool { return n.rec().typ == typ }

// AddChild appends a new child and returns it.
func (n *Node) AddChild(name string, typ Name) *Node {
	id := len(n.tree.records)
	n.tree.records = append(n.tree.records, record{name: name, typ: typ, parent: n.id})
	r := n.rec()
	r.children = append(r.children, id)
	return &Node{tree: n.tree, id: id}
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	p := n.rec().parent
	if p < 0 {
		return nil
	}
	return &Node{tree: n.tree, id: p}
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.rec().children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node {
	return &Node{tree: n.tree, id: n.rec().children[i]}
}

// LastChild returns the most recently added child, or nil.
func (n *Node) LastChild() *Node {
	c := n.rec().children
	if len(c) == 0 {
		return nil
	}
	return &Node{tree: n.tree, id: c[len(c)-1]}
}

// Children returns the children in insertion order.
func (n *Node) Children() []*Node {
	ids := n.rec().children
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = &Node{tree: n.tree, id: id}
	}
	return out
}

// ChildrenOfType returns the children whose type is typ.
func (n *Node) ChildrenOfType(typ Name) []*Node {
	var out []*Node
	for _, id := range n.rec().children {
		if n.tree.records[id].typ == typ {
			out = append(out, &Node{tree: n.tree, id: id})
		}
	}
	return out
}

// FirstChildNamed returns the first child with the given name, or nil.
func (n *Node) FirstChildNamed(name string) *Node {
	for _, id := range n.rec().children {
		if n.tree.records[id].name == name {
			return &Node{tree: n.tree, id: id}
		}
	}
	return nil
}

// SetProperty sets a property, replacing any previous value. Values are
// stored as string, Name, bool, int64, float64 or []string; other integer
// and float types are widened and anything else is stored as its fmt form.
func (n *Node) SetProperty(name string, value any) {
	value = normalizeValue(value)
	r := n.rec()
	for i := range r.props {
		if r.props[i].name == name {
			r.props[i].value = value
			return
		}
	}
	r.props = append(r.props, property{name: name, value: value})
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case string, Name, bool, int64, float64:
		return x
	case []string:
		return append([]string(nil), x...)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Property returns a property value.
func (n *Node) Property(name string) (any, bool) {
	for _, p := range n.rec().props {
		if p.name == name {
			return p.value, true
		}
	}
	return nil, false
}

// PropertyString returns a property formatted as a string, or "" if unset.
func (n *Node) PropertyString(name string) string {
	v, ok := n.Property(name)
	if !ok {
		return ""
	}
	return formatValue(v)
}

// HasProperty reports whether a property is set.
func (n *Node) HasProperty(name string) bool {
	_, ok := n.Property(name)
	return ok
}

// PropertyNames returns property names in the order they were first set.
func (n *Node) PropertyNames() []string {
	props := n.rec().props
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.name
	}
	return out
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case Name:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Walk calls fn for n and its descendants, parents first. Returning false
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Find returns the descendants of n (n included) whose type is typ.
func (n *Node) Find(typ Name) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Is(typ) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// String formats the node as name (type).
func (n *Node) String() string {
	return fmt.Sprintf("%s (%s)", n.Name(), n.Type())
}

// jsonNode is the serialized form of a node.
type jsonNode struct {
	Name       string         `json:"name"`
	Type       Name           `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Children   []*Node        `json:"children,omitempty"`
}

// MarshalJSON encodes the subtree rooted at n.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := jsonNode{Name: n.Name(), Type: n.Type(), Children: n.Children()}
	if props := n.rec().props; len(props) > 0 {
		out.Properties = make(map[string]any, len(props))
		for _, p := range props {
			out.Properties[p.name] = p.value
		}
	}
	return json.Marshal(out)
}

// MarshalYAML encodes the subtree rooted at n, keeping property order.
func (n *Node) MarshalYAML() (any, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	addScalar(m, "name", n.Name())
	addScalar(m, "type", string(n.Type()))

	if props := n.rec().props; len(props) > 0 {
		pm := &yaml.Node{Kind: yaml.MappingNode}
		for _, p := range props {
			v := &yaml.Node{}
			if err := v.Encode(plainValue(p.value)); err != nil {
				return nil, fmt.Errorf("encoding property %s: %w", p.name, err)
			}
			pm.Content = append(pm.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: p.name}, v)
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "properties"}, pm)
	}

	if children := n.Children(); len(children) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range children {
			v := &yaml.Node{}
			if err := v.Encode(c); err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, v)
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "children"}, seq)
	}
	return m, nil
}

func addScalar(m *yaml.Node, key, value string) {
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value})
}

func plainValue(v any) any {
	if n, ok := v.(Name); ok {
		return string(n)
	}
	return v
}
