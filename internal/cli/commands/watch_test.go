package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/reposql/internal/cli/output"
	"github.com/leapstack-labs/reposql/internal/cli/testutil"
	"github.com/leapstack-labs/reposql/internal/engine"
	logutil "github.com/leapstack-labs/reposql/internal/testutil"
)

func newTestWatcher(t *testing.T, debounce time.Duration) (*ddlWatcher, *logutil.LogBuffer) {
	t.Helper()
	eng, err := engine.New(engine.Config{Logger: logutil.NewTestLogger(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	buf := &logutil.LogBuffer{}
	r := output.NewRendererWithTTY(buf, buf, false, output.ModeText)
	return newDDLWatcher(eng, r, logutil.NewTestLogger(t), "", []string{".sql", ".DDL"}, debounce), buf
}

func TestDDLWatcherMatches(t *testing.T) {
	w, _ := newTestWatcher(t, 0)

	assert.True(t, w.matches("a/b.sql"))
	assert.True(t, w.matches("a/b.SQL"))
	assert.True(t, w.matches("b.ddl"))
	assert.False(t, w.matches("b.txt"))
	assert.False(t, w.matches("sql"))
}

func TestDDLWatcherSkipsUnchanged(t *testing.T) {
	w, buf := newTestWatcher(t, 0)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.sql")
	testutil.WriteFile(t, path, testutil.StandardDDL)

	parsed, err := w.parseFile(ctx, path)
	require.NoError(t, err)
	assert.True(t, parsed)
	assert.True(t, buf.Contains(path+" STANDARD 1 statements"))

	parsed, err = w.parseFile(ctx, path)
	require.NoError(t, err)
	assert.False(t, parsed, "unchanged content should be skipped")

	testutil.WriteFile(t, path, testutil.BrokenDDL)
	parsed, err = w.parseFile(ctx, path)
	require.NoError(t, err)
	assert.True(t, parsed)
	assert.True(t, buf.Contains("✗ "+path))

	w.forget(path)
	parsed, err = w.parseFile(ctx, path)
	require.NoError(t, err)
	assert.True(t, parsed, "forgotten files are parsed again")
}

func TestDDLWatcherRetriesFailedParse(t *testing.T) {
	w, buf := newTestWatcher(t, 0)
	path := filepath.Join(t.TempDir(), "a.sql")
	testutil.WriteFile(t, path, testutil.StandardDDL)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	parsed, err := w.parseFile(cancelled, path)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, parsed)
	assert.Empty(t, buf.String())

	parsed, err = w.parseFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, parsed, "content is parsed again after a failed attempt")
	assert.True(t, buf.Contains(path+" STANDARD 1 statements"))
}

func TestDDLWatcherStopWaitsForRunningParses(t *testing.T) {
	w, buf := newTestWatcher(t, 0)
	dir := t.TempDir()
	ctx := context.Background()

	var paths []string
	for _, name := range []string{"a.sql", "b.sql", "c.sql"} {
		path := filepath.Join(dir, name)
		testutil.WriteFile(t, path, testutil.StandardDDL)
		paths = append(paths, path)
		w.schedule(ctx, path)
	}
	w.stopTimers()

	after := buf.String()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, buf.String(), "no parse may finish after stopTimers returns")

	// Rescheduling a path replaces its timer without leaking a pending count.
	w.schedule(ctx, paths[0])
	w.schedule(ctx, paths[0])
	w.stopTimers()
}

func TestDDLWatcherScan(t *testing.T) {
	w, buf := newTestWatcher(t, 0)
	dir := testutil.SetupTestProject(t, "")

	require.NoError(t, w.scan(context.Background(), []string{dir}))
	assert.True(t, buf.Contains("customers.sql STANDARD"))
	assert.True(t, buf.Contains("orders.ddl ORACLE"))
	assert.True(t, buf.Contains("events.sql POSTGRES"))
	assert.False(t, buf.Contains("notes.txt"))

	err := w.scan(context.Background(), []string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestDDLWatcherRun(t *testing.T) {
	w, buf := newTestWatcher(t, 10*time.Millisecond)
	dir := t.TempDir()

	fsw, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = fsw.Close() }()
	require.NoError(t, watchDirRecursive(fsw, dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx, fsw) }()

	path := filepath.Join(dir, "live.sql")
	require.NoError(t, os.WriteFile(path, []byte(testutil.OracleDDL), 0o600))
	require.Eventually(t, func() bool {
		return buf.Contains(path + " ORACLE 1 statements")
	}, 5*time.Second, 20*time.Millisecond)

	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(nested, 0o750))
	// The new directory is picked up asynchronously.
	nestedPath := filepath.Join(nested, "more.sql")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(nestedPath, []byte(testutil.StandardDDL), 0o600)
		return buf.Contains(nestedPath + " STANDARD 1 statements")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
