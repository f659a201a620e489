package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/leapstack-labs/reposql/pkg/ddl"
)

// TreeOptions controls parse tree rendering.
type TreeOptions struct {
	Properties bool // include node properties
	MaxDepth   int  // zero means unlimited
}

// RenderTree writes a parse tree in the current mode.
func (r *Renderer) RenderTree(root *ddl.Node, opts TreeOptions) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(root)
	case ModeYAML:
		return r.YAML(root)
	case ModeMarkdown:
		r.writeMarkdownTree(root, opts, 0)
		return nil
	default:
		r.Println(r.buildTree(root, opts, 0).String())
		return nil
	}
}

func (r *Renderer) buildTree(n *ddl.Node, opts TreeOptions, depth int) *tree.Tree {
	t := tree.Root(r.nodeLabel(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(r.styles.Tree)
	if opts.Properties {
		for _, name := range n.PropertyNames() {
			t.Child(r.styles.Muted.Render(name + " = " + propertyText(n, name)))
		}
	}
	if opts.MaxDepth > 0 && depth+1 >= opts.MaxDepth {
		if c := n.ChildCount(); c > 0 {
			t.Child(r.styles.Muted.Render(fmt.Sprintf("… %d more", c)))
		}
		return t
	}
	for _, c := range n.Children() {
		t.Child(r.buildTree(c, opts, depth+1))
	}
	return t
}

func (r *Renderer) nodeLabel(n *ddl.Node) string {
	name := r.styles.Bold.Render(n.Name())
	typ := r.styles.Muted.Render("(" + n.Type().String() + ")")
	switch n.Type() {
	case ddl.TypeProblem:
		level := n.PropertyString(ddl.PropProblemLevel)
		style := r.styles.Warning
		if level == ddl.LevelError {
			style = r.styles.Error
		}
		return style.Render(level) + " " + n.PropertyString(ddl.PropMessage)
	default:
		return name + " " + typ
	}
}

func (r *Renderer) writeMarkdownTree(n *ddl.Node, opts TreeOptions, depth int) {
	indent := strings.Repeat("  ", depth)
	r.Printf("%s- **%s** `%s`\n", indent, n.Name(), n.Type())
	if opts.Properties {
		for _, name := range n.PropertyNames() {
			r.Printf("%s  - %s: `%s`\n", indent, name, propertyText(n, name))
		}
	}
	if opts.MaxDepth > 0 && depth+1 >= opts.MaxDepth {
		return
	}
	for _, c := range n.Children() {
		r.writeMarkdownTree(c, opts, depth+1)
	}
}

func propertyText(n *ddl.Node, name string) string {
	v, _ := n.Property(name)
	switch v := v.(type) {
	case []string:
		return strings.Join(v, ", ")
	case string:
		return strings.ReplaceAll(v, "\n", `\n`)
	default:
		return fmt.Sprint(v)
	}
}
