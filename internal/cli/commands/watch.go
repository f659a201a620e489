package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/reposql/internal/cli/output"
	"github.com/leapstack-labs/reposql/internal/engine"
	"github.com/leapstack-labs/reposql/internal/state"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Dialect string
	Once    bool
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [dir...]",
		Short: "Re-parse DDL files as they change",
		Long: `Parse every DDL file under the given directories, then watch them and
re-parse each file when it is written. Files whose content has not changed
since the last parse are skipped.`,
		Example: `  # Watch the current directory
  reposql watch

  # Watch two directories, only .ddl files, with a longer debounce
  reposql watch --ext .ddl --debounce 500ms schema/ migrations/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "Force a dialect instead of detecting it")
	cmd.Flags().BoolVar(&opts.Once, "once", false, "Parse once and exit without watching")
	// Flag values flow through the config loader (watch.debounce, watch.extensions).
	cmd.Flags().Duration("debounce", 0, "Delay before re-parsing a changed file (default: 200ms)")
	cmd.Flags().StringSlice("ext", nil, "File extensions to watch (default: .sql,.ddl)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, opts *WatchOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 0 {
		args = []string{"."}
	}

	w := newDDLWatcher(cc.Engine, cc.Renderer, cc.Logger, opts.Dialect, cc.Cfg.Watch.Extensions, cc.Cfg.Watch.Debounce)
	ctx := cmd.Context()
	if err := w.scan(ctx, args); err != nil {
		return err
	}
	if opts.Once {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range args {
		if err := watchDirRecursive(fsw, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	cc.Logger.Info("watching for changes", slog.Any("dirs", args))

	return w.run(ctx, fsw)
}

// ddlWatcher parses DDL files and re-parses them on change.
type ddlWatcher struct {
	engine   *engine.Engine
	renderer *output.Renderer
	logger   *slog.Logger
	dialect  string
	exts     map[string]bool
	debounce time.Duration

	mu      sync.Mutex
	hashes  map[string]string
	timers  map[string]*time.Timer
	pending sync.WaitGroup // scheduled or running re-parses
}

func newDDLWatcher(eng *engine.Engine, r *output.Renderer, logger *slog.Logger, dialect string, exts []string, debounce time.Duration) *ddlWatcher {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = true
	}
	return &ddlWatcher{
		engine:   eng,
		renderer: r,
		logger:   logger,
		dialect:  dialect,
		exts:     set,
		debounce: debounce,
		hashes:   make(map[string]string),
		timers:   make(map[string]*time.Timer),
	}
}

func (w *ddlWatcher) matches(path string) bool {
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

// scan parses every matching file under dirs.
func (w *ddlWatcher) scan(ctx context.Context, dirs []string) error {
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !w.matches(path) {
				return nil
			}
			_, err = w.parseFile(ctx, path)
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// parseFile parses path unless its content is unchanged since the last
// parse. It reports whether a parse happened.
func (w *ddlWatcher) parseFile(ctx context.Context, path string) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the watched tree
	if err != nil {
		return false, err
	}
	text := string(data)
	hash := state.ContentHash(text)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.hashes[path] == hash {
		w.logger.Debug("unchanged, skipping", slog.String("file", path))
		return false, nil
	}

	res, err := w.engine.Parse(ctx, engine.Request{Source: path, Text: text, Dialect: w.dialect})
	if err != nil {
		return false, err
	}
	w.hashes[path] = hash
	w.report(res)
	return true, nil
}

func (w *ddlWatcher) report(res *engine.Result) {
	r := w.renderer
	if done, err := r.Structured(res); done {
		if err != nil {
			w.logger.Error("failed to write result", slog.String("error", err.Error()))
		}
		return
	}

	styles := r.Styles()
	if !res.Success {
		r.Printf("%s %s: %s\n", styles.Error.Render("✗"), res.Source, res.Error)
		return
	}
	line := fmt.Sprintf("%s %s %s %d statements", styles.Success.Render("✓"), res.Source, res.ParserID, res.Statements)
	if n := len(res.Problems); n > 0 {
		line += styles.Warning.Render(fmt.Sprintf(" (%d problems)", n))
	}
	r.Println(line)
}

// forget drops a removed file so it is parsed again if it reappears.
func (w *ddlWatcher) forget(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.hashes, path)
}

// schedule debounces parses of path.
func (w *ddlWatcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok && t.Stop() {
		w.pending.Done()
	}
	w.pending.Add(1)
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		defer w.pending.Done()
		w.logger.Debug("file changed, re-parsing", slog.String("file", path))
		if _, err := w.parseFile(ctx, path); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error("re-parse failed", slog.String("file", path), slog.String("error", err.Error()))
		}
	})
}

// stopTimers cancels pending re-parses and waits for running ones.
func (w *ddlWatcher) stopTimers() {
	w.mu.Lock()
	for path, t := range w.timers {
		if t.Stop() {
			w.pending.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()
	w.pending.Wait()
}

// run handles watcher events until ctx is done.
func (w *ddlWatcher) run(ctx context.Context, fsw *fsnotify.Watcher) error {
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDirRecursive(fsw, event.Name); err != nil {
						w.logger.Error("failed to watch new directory", slog.String("dir", event.Name), slog.String("error", err.Error()))
					}
					continue
				}
			}
			if !w.matches(event.Name) {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.forget(event.Name)
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.schedule(ctx, event.Name)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", slog.String("error", err.Error()))
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
