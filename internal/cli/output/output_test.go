package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/reposql/pkg/ddl"
)

func newTestRenderer(mode OutputMode, tty bool) (*Renderer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewRendererWithTTY(out, &bytes.Buffer{}, tty, mode), out
}

func sampleTree() *ddl.Node {
	root := ddl.NewStatementsRoot()
	root.SetProperty(ddl.PropParserID, "STANDARD")
	table := root.AddChild("customers", ddl.TypeCreateTable)
	col := table.AddChild("id", ddl.TypeColumnDefinition)
	col.SetProperty(ddl.PropDatatypeName, "INTEGER")
	p := root.AddChild("problem", ddl.TypeProblem)
	p.SetProperty(ddl.PropProblemLevel, ddl.LevelWarning)
	p.SetProperty(ddl.PropMessage, "unrecognized statement")
	return root
}

func TestMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"TEXT", ModeText},
		{"md", ModeMarkdown},
		{"markdown", ModeMarkdown},
		{"json", ModeJSON},
		{"yml", ModeYAML},
		{"bogus", ModeAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.in))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name string
		mode OutputMode
		tty  bool
		want OutputMode
	}{
		{"auto on terminal", ModeAuto, true, ModeText},
		{"auto when piped", ModeAuto, false, ModeMarkdown},
		{"explicit json", ModeJSON, true, ModeJSON},
		{"explicit text when piped", ModeText, false, ModeText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRenderer(tt.mode, tt.tty)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderTreeText(t *testing.T) {
	r, out := newTestRenderer(ModeText, false)
	require.NoError(t, r.RenderTree(sampleTree(), TreeOptions{Properties: true}))

	got := out.String()
	assert.Contains(t, got, "statements (ddl:statements)")
	assert.Contains(t, got, "customers (ddl:createTableStatement)")
	assert.Contains(t, got, "ddl:datatypeName = INTEGER")
	assert.Contains(t, got, "WARNING unrecognized statement")
	assert.NotContains(t, got, "\x1b[", "no styling without a terminal")
}

func TestRenderTreeMaxDepth(t *testing.T) {
	r, out := newTestRenderer(ModeText, false)
	require.NoError(t, r.RenderTree(sampleTree(), TreeOptions{MaxDepth: 2}))

	got := out.String()
	assert.Contains(t, got, "customers")
	assert.NotContains(t, got, "id (ddl:columnDefinition)")
	assert.Contains(t, got, "1 more")
}

func TestRenderTreeMarkdown(t *testing.T) {
	r, out := newTestRenderer(ModeAuto, false)
	require.NoError(t, r.RenderTree(sampleTree(), TreeOptions{}))

	assert.Equal(t, "- **statements** `ddl:statements`\n"+
		"  - **customers** `ddl:createTableStatement`\n"+
		"    - **id** `ddl:columnDefinition`\n"+
		"  - **problem** `ddl:ddlProblem`\n", out.String())
}

func TestRenderTreeStructured(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		r, out := newTestRenderer(ModeJSON, false)
		require.NoError(t, r.RenderTree(sampleTree(), TreeOptions{}))

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "statements", got["name"])
		assert.Len(t, got["children"], 2)
	})

	t.Run("yaml", func(t *testing.T) {
		r, out := newTestRenderer(ModeYAML, false)
		require.NoError(t, r.RenderTree(sampleTree(), TreeOptions{}))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "ddl:statements", got["type"])
		props := got["properties"].(map[string]any)
		assert.Equal(t, "STANDARD", props[ddl.PropParserID])
	})
}

func TestTable(t *testing.T) {
	t.Run("markdown when piped", func(t *testing.T) {
		r, out := newTestRenderer(ModeAuto, false)
		r.Table([]string{"Dialect", "Keywords"}, [][]any{{"STANDARD", 12}, {"ORACLE", 15}})
		assert.Contains(t, out.String(), "| Dialect | Keywords |")
		assert.Contains(t, out.String(), "| ORACLE | 15 |")
	})

	t.Run("box table on terminal", func(t *testing.T) {
		r, out := newTestRenderer(ModeText, true)
		r.Table([]string{"Dialect"}, [][]any{{"DERBY"}})
		assert.Contains(t, out.String(), "DERBY")
		assert.Contains(t, out.String(), "┌")
	})

	t.Run("empty", func(t *testing.T) {
		r, out := newTestRenderer(ModeText, true)
		r.Table([]string{"Dialect"}, nil)
		assert.Equal(t, "(0 rows)\n", out.String())
	})
}

func TestCell(t *testing.T) {
	assert.Equal(t, "", Cell(nil))
	assert.Equal(t, "a, b", Cell([]string{"a", "b"}))
	assert.Equal(t, "yes", Cell(true))
	assert.Equal(t, "no", Cell(false))
	assert.Equal(t, "42", Cell(42))
}

func TestFormatHelpers(t *testing.T) {
	md, _ := newTestRenderer(ModeMarkdown, false)
	assert.Equal(t, "## Dialects", md.FormatHeader("Dialects"))
	assert.Equal(t, "- **Parser:** ORACLE", md.FormatKeyValue("Parser", "ORACLE"))

	txt, _ := newTestRenderer(ModeText, false)
	assert.Equal(t, "Dialects", txt.FormatHeader("Dialects"))
	assert.Equal(t, "Parser: ORACLE", txt.FormatKeyValue("Parser", "ORACLE"))
}
