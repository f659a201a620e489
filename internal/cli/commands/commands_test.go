package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/reposql/internal/cli/testutil"
	"github.com/leapstack-labs/reposql/internal/engine"
)

// execute runs cmd standalone with captured output.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewParseCommand(), "parse [file...]", []string{"dialect", "props", "depth", "summary"}},
		{NewScoreCommand(), "score [file]", nil},
		{NewDialectsCommand(), "dialects", nil},
		{NewWatchCommand(), "watch [dir...]", []string{"dialect", "once", "debounce", "ext"}},
		{NewHistoryCommand(), "history [run-id]", []string{"limit"}},
		{NewREPLCommand(), "repl", nil},
		{NewServeCommand(), "serve", []string{"addr", "max-body"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		stdin     string
		wantOut   []string
		notOut    []string
		errSubstr string
	}{
		{
			name:    "detected by score",
			args:    []string{filepath.Join("schema", "customers.sql")},
			wantOut: []string{"## " + filepath.Join("schema", "customers.sql"), "STANDARD (", "- **status:** ok", "- **statements:** 1"},
		},
		{
			name:    "pragma",
			args:    []string{filepath.Join("schema", "events.sql")},
			wantOut: []string{"POSTGRES (pragma)"},
		},
		{
			name:    "forced dialect",
			args:    []string{"--dialect", "derby", filepath.Join("schema", "customers.sql")},
			wantOut: []string{"DERBY (forced)"},
		},
		{
			name:    "stdin",
			stdin:   testutil.OracleDDL,
			wantOut: []string{"## stdin", "ORACLE ("},
		},
		{
			name:    "summary only",
			args:    []string{"--summary", filepath.Join("schema", "customers.sql")},
			wantOut: []string{"STANDARD ("},
			notOut:  []string{"`ddl:statements`"},
		},
		{
			name:      "broken document fails",
			stdin:     testutil.BrokenDDL,
			wantOut:   []string{"- **status:** failed"},
			errSubstr: "stdin:",
		},
		{
			name:      "missing file",
			args:      []string{"nope.sql"},
			errSubstr: "failed to read nope.sql",
		},
		{
			name:      "unknown forced dialect",
			args:      []string{"--dialect", "mysql", filepath.Join("schema", "customers.sql")},
			errSubstr: `unknown dialect "mysql"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.UseProject(t, testutil.SetupTestProject(t, ""))

			out, _, err := execute(t, NewParseCommand(), tt.stdin, tt.args...)
			if tt.errSubstr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notOut {
				assert.NotContains(t, out, unwanted)
			}
			testutil.AssertNoANSI(t, out)
			testutil.AssertValidMarkdown(t, out)
		})
	}
}

func TestParseCommandJSON(t *testing.T) {
	t.Setenv("REPOSQL_OUTPUT", "json")
	testutil.UseProject(t, testutil.SetupTestProject(t, ""))

	out, _, err := execute(t, NewParseCommand(), "", filepath.Join("schema", "events.sql"))
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "POSTGRES", res["parserId"])
	assert.Equal(t, true, res["selfIdentified"])
	assert.Equal(t, true, res["success"])
	assert.NotNil(t, res["tree"])

	out, _, err = execute(t, NewParseCommand(), "",
		filepath.Join("schema", "events.sql"), filepath.Join("schema", "customers.sql"))
	require.NoError(t, err)
	var many []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &many))
	require.Len(t, many, 2)
	assert.Equal(t, "STANDARD", many[1]["parserId"])
}

func TestParseCommandMultipleFailures(t *testing.T) {
	dir := testutil.SetupTestProject(t, "")
	testutil.WriteFile(t, filepath.Join(dir, "broken.sql"), testutil.BrokenDDL)
	testutil.UseProject(t, dir)

	_, _, err := execute(t, NewParseCommand(), "", "broken.sql", filepath.Join("schema", "customers.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 documents failed to parse")
}

func TestScoreCommand(t *testing.T) {
	testutil.UseProject(t, testutil.SetupTestProject(t, ""))

	out, _, err := execute(t, NewScoreCommand(), "", filepath.Join("schema", "oracle", "orders.ddl"))
	require.NoError(t, err)
	for _, id := range []string{"STANDARD", "ORACLE", "DERBY", "POSTGRES", "| Dialect"} {
		assert.Contains(t, out, id)
	}
}

func TestScoreCommandJSON(t *testing.T) {
	t.Setenv("REPOSQL_OUTPUT", "json")
	testutil.UseProject(t, testutil.SetupTestProject(t, ""))

	out, _, err := execute(t, NewScoreCommand(), testutil.OracleDDL)
	require.NoError(t, err)

	var report scoreReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "stdin", report.Source)
	assert.Equal(t, "ORACLE", report.Best)
	assert.Len(t, report.Scores, 4)
}

func TestDialectsCommand(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		want    []string
		notWant []string
	}{
		{
			name: "all built-ins",
			want: []string{"STANDARD", "ORACLE", "DERBY", "POSTGRES"},
		},
		{
			name:    "configured subset",
			config:  "dialects: [pg, oracle]\n",
			want:    []string{"POSTGRES", "ORACLE"},
			notWant: []string{"DERBY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.UseProject(t, testutil.SetupTestProject(t, tt.config))

			out, _, err := execute(t, NewDialectsCommand(), "")
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notWant {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestHistoryCommand(t *testing.T) {
	cfg := testutil.UseProject(t, testutil.SetupTestProject(t, ""))
	customers := filepath.Join("schema", "customers.sql")

	for i := 0; i < 2; i++ {
		_, _, err := execute(t, NewParseCommand(), "", customers)
		require.NoError(t, err)
	}

	out, _, err := execute(t, NewHistoryCommand(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, customers))
	assert.Contains(t, out, "STANDARD")

	out, _, err = execute(t, NewHistoryCommand(), "", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, customers))

	eng, err := engine.New(engine.Config{StatePath: cfg.HistoryPath()})
	require.NoError(t, err)
	runs, err := eng.History(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, eng.Close())
	require.Len(t, runs, 1)

	out, _, err = execute(t, NewHistoryCommand(), "", runs[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "## Run "+runs[0].ID)
	assert.Contains(t, out, "- **dialect:** STANDARD")

	_, _, err = execute(t, NewHistoryCommand(), "", "missing-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestHistoryCommandDisabled(t *testing.T) {
	testutil.UseProject(t, testutil.SetupTestProject(t, "history: false\n"))

	_, _, err := execute(t, NewHistoryCommand(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrHistoryDisabled)
}

func TestWatchCommandOnce(t *testing.T) {
	testutil.UseProject(t, testutil.SetupTestProject(t, ""))

	out, _, err := execute(t, NewWatchCommand(), "", "--once", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("schema", "customers.sql")+" STANDARD 1 statements")
	assert.Contains(t, out, filepath.Join("schema", "oracle", "orders.ddl")+" ORACLE 1 statements")
	assert.Contains(t, out, filepath.Join("schema", "events.sql")+" POSTGRES 1 statements")
	assert.NotContains(t, out, "notes.txt")
}

func TestVersionOutputMentionsDialects(t *testing.T) {
	out, _, err := execute(t, NewVersionCommand("9.9.9"), "")
	require.NoError(t, err)
	assert.Contains(t, out, "reposql v9.9.9")
	assert.Contains(t, out, "POSTGRES")
}
