package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDoc(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestConfigFields(t *testing.T) {
	byKey := map[string]ConfigField{}
	for _, f := range configFields() {
		byKey[f.Key] = f
		assert.NotEmpty(t, f.Description, "key %s has no description", f.Key)
	}

	require.Contains(t, byKey, "server.addr")
	assert.Equal(t, "REPOSQL_SERVER_ADDR", byKey["server.addr"].EnvVar)
	assert.Equal(t, "127.0.0.1:8080", byKey["server.addr"].Default)
	assert.Equal(t, "required,hostname_port", byKey["server.addr"].Rules)

	assert.Equal(t, "time.Duration", byKey["watch.debounce"].Type)
	assert.Equal(t, "200ms", byKey["watch.debounce"].Default)
	assert.Equal(t, ".sql, .ddl", byKey["watch.extensions"].Default)
	assert.Equal(t, "-", byKey["dialects"].Default)
	assert.NotContains(t, byKey, "ProjectRoot")
}

func TestRunAll(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, run("all", "ignored", root))

	index := readDoc(t, filepath.Join(root, "docs", "cli", "index.md"))
	assert.Contains(t, index, "# CLI Reference")
	assert.Contains(t, index, "[`parse`](/cli/parse)")
	assert.Contains(t, index, "`REPOSQL_STATE_PATH`")
	assert.Contains(t, index, "`--dialects`")

	parse := readDoc(t, filepath.Join(root, "docs", "cli", "parse.md"))
	assert.Contains(t, parse, "reposql parse [file...]")
	assert.Contains(t, parse, "`--dialect`")
	assert.Contains(t, parse, "## Examples")

	cfg := readDoc(t, filepath.Join(root, "docs", "reference", "configuration.md"))
	assert.Contains(t, cfg, "`server.max_body_bytes`")

	dialects := readDoc(t, filepath.Join(root, "docs", "dialects", "index.md"))
	for _, id := range []string{"STANDARD", "ORACLE", "DERBY", "POSTGRES"} {
		assert.Contains(t, dialects, id)
	}
	oracle := readDoc(t, filepath.Join(root, "docs", "dialects", "oracle.md"))
	assert.Contains(t, oracle, "VARCHAR2")
	assert.Contains(t, oracle, "`-- dialect: oracle`")
}

func TestCLIDocsDescribeCommands(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, run("cli", out, t.TempDir()))

	index := readDoc(t, filepath.Join(out, "index.md"))
	assert.Contains(t, index, "## Dialect Selection")
	assert.Contains(t, index, "`plsql`")
	assert.Contains(t, index, "`REPOSQL_WATCH_EXTENSIONS`")
	assert.Contains(t, index, "failed to parse")
	assert.NotContains(t, index, "[`completion`]")

	watch := readDoc(t, filepath.Join(out, "watch.md"))
	assert.Contains(t, watch, "`watch.debounce`")
	assert.Contains(t, watch, "`watch.extensions`")
	assert.Contains(t, watch, "## Behaviour")

	serve := readDoc(t, filepath.Join(out, "serve.md"))
	assert.Contains(t, serve, "`/api/v1/parse`")
	assert.Contains(t, serve, "`server.max_body_bytes`")
	assert.Contains(t, serve, "422")

	parse := readDoc(t, filepath.Join(out, "parse.md"))
	assert.Contains(t, parse, "## Exit Status")

	assert.FileExists(t, filepath.Join(out, "repl.md"))
	assert.NoFileExists(t, filepath.Join(out, "completion.md"))
}

func TestDedent(t *testing.T) {
	assert.Equal(t, "# one\nreposql parse a.sql\n\n  nested", dedent("  # one\n  reposql parse a.sql\n\n    nested\n"))
	assert.Equal(t, "", dedent("\n  \n"))
}

func TestRunSingleWithOutDir(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, run("dialects", out, t.TempDir()))
	assert.FileExists(t, filepath.Join(out, "postgres.md"))
	assert.NoFileExists(t, filepath.Join(out, "configuration.md"))
}

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Title")
	w.Table([]string{"A"}, nil)
	w.CodeBlock("bash", "echo hi\n")
	assert.Equal(t, "## Title\n\n```bash\necho hi\n```\n\n", string(w.Bytes()))
	assert.Equal(t, "a b", cleanDescription("  a\n  b "))
}
