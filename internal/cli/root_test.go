package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/reposql/internal/cli/config"
	"github.com/leapstack-labs/reposql/internal/cli/output"
	"github.com/leapstack-labs/reposql/internal/cli/testutil"
)

func runRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		config.ResetConfig()
		cfgFile = ""
	})

	root := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"version", "parse", "score", "dialects", "watch", "history", "repl", "serve", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"config", "dialects", "parallel", "state", "history", "verbose", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)
}

func TestRootParseThroughFlags(t *testing.T) {
	dir := testutil.SetupTestProject(t, "")
	t.Chdir(dir)

	out, _, err := runRoot(t, testutil.OracleDDL, "parse", "-o", "json", "--state", ":memory:", "--dialects", "standard,oracle")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "ORACLE", res["parserId"])
	scores, ok := res["scores"].([]any)
	require.True(t, ok)
	assert.Len(t, scores, 2)
}

func TestRootUsesConfigFile(t *testing.T) {
	dir := testutil.SetupTestProject(t, "output: json\nhistory: false\n")
	t.Chdir(dir)

	out, _, err := runRoot(t, "", "dialects")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["), out)
	assert.Equal(t, filepath.Join(dir, "reposql.yaml"), config.GetConfigFileUsed())
}

func TestRootExplicitConfigFlag(t *testing.T) {
	dir := testutil.SetupTestProject(t, "")
	t.Chdir(dir)
	custom := filepath.Join(t.TempDir(), "custom.yaml")
	testutil.WriteFile(t, custom, "dialects: [derby]\nhistory: false\n")

	out, _, err := runRoot(t, "", "--config", custom, "dialects")
	require.NoError(t, err)
	assert.Contains(t, out, "DERBY")
	assert.NotContains(t, out, "ORACLE")
}

func TestRootInvalidConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t, "dialects: [mysql]\n")
	t.Chdir(dir)

	_, _, err := runRoot(t, "", "dialects")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "mysql"`)
}

func TestRootVerboseLogsToStderr(t *testing.T) {
	dir := testutil.SetupTestProject(t, "history: false\n")
	t.Chdir(dir)

	_, errOut, err := runRoot(t, "", "-v", "parse", filepath.Join("schema", "customers.sql"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "using config file")
	assert.Contains(t, errOut, "parsed document")
}

func TestRootVersionFlag(t *testing.T) {
	out, _, err := runRoot(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "reposql "+Version)
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runRoot(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "reposql")

	_, _, err = runRoot(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestContextFallbacks(t *testing.T) {
	cfg := GetConfig(context.Background())
	assert.Equal(t, config.DefaultServerAddr, cfg.Server.Addr)

	r := GetRenderer(context.Background())
	assert.NotNil(t, r)
	assert.Contains(t, output.Modes, string(output.ModeAuto))
}
