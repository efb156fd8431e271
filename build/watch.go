package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"jitcss/jit"
	"jitcss/state"
)

// DefaultDebounce is a quiet period after the last change before rebuild
// starts. Editors usually produce several events per save.
const DefaultDebounce = 100 * time.Millisecond

// Watch is "watch" command: builds stylesheet and rebuilds it on every
// change of content sources or authored stylesheet until interrupted.
func Watch(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 0 {
		env.Log.Warn("Malformed command line, unexpected arguments", zap.Strings("ignoring", cmd.Args().Slice()))
	}
	if err := applyFlags(cmd, env); err != nil {
		return err
	}
	if len(env.Cfg.Build.Output) == 0 {
		env.Log.Warn("Watching without output file, every build is written to stdout")
	}

	w, err := newWatcher(newBuilder(env, os.Stdout), env.Cfg.Build.ContentBase, cmd.Duration("debounce"))
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx)
}

// watcher runs builds on file system changes. Each change starts a new
// build generation and cancels the one in progress, only the latest
// generation may write output.
type watcher struct {
	b     *builder
	log   *zap.Logger
	fw    *fsnotify.Watcher
	base  string
	input string
	out   string
	delay time.Duration

	gen     atomic.Uint64
	mu      sync.Mutex // serializes output writes
	onBuilt func(*jit.Result)
}

func newWatcher(b *builder, base string, delay time.Duration) (*watcher, error) {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if base == "" {
		base = "."
	}
	w := &watcher{b: b, log: b.log.Named("watch"), delay: delay}

	var err error
	if w.base, err = filepath.Abs(base); err != nil {
		return nil, err
	}
	if len(b.input) > 0 {
		if w.input, err = filepath.Abs(b.input); err != nil {
			return nil, err
		}
	}
	if len(b.output) > 0 {
		if w.out, err = filepath.Abs(b.output); err != nil {
			return nil, err
		}
	}
	if w.fw, err = fsnotify.NewWatcher(); err != nil {
		return nil, fmt.Errorf("unable to create file system watcher: %w", err)
	}
	return w, nil
}

func (w *watcher) Close() error {
	return w.fw.Close()
}

// skipDir reports directories never holding content sources.
func skipDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && strings.HasPrefix(name, "."))
}

// addTree registers directory and all its subdirectories.
func (w *watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			w.log.Debug("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("unable to watch '%s': %w", path, err)
		}
		return nil
	})
}

// relevant reports whether event should trigger rebuild.
func (w *watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	if len(w.out) > 0 {
		// output itself and temporary files used to replace it
		if name == w.out || (filepath.Dir(name) == filepath.Dir(w.out) &&
			strings.HasPrefix(filepath.Base(name), "."+filepath.Base(w.out)+".")) {
			return false
		}
	}
	if len(w.input) > 0 && name == w.input {
		return true
	}
	return w.b.env.Extractor.Match(name)
}

// Run performs initial build and then watches for changes until context is
// done. Failed builds are logged, watching continues.
func (w *watcher) Run(ctx context.Context) error {
	if err := w.addTree(w.base); err != nil {
		return err
	}
	if len(w.input) > 0 {
		if dir := filepath.Dir(w.input); dir != w.base && !strings.HasPrefix(dir, w.base+string(filepath.Separator)) {
			if err := w.fw.Add(dir); err != nil {
				return fmt.Errorf("unable to watch '%s': %w", dir, err)
			}
		}
	}
	w.log.Info("Watching for changes", zap.String("base", w.base), zap.Strings("content", w.b.env.Extractor.Patterns()))

	var (
		wg     sync.WaitGroup
		cancel context.CancelFunc = func() {}
	)
	timer := time.NewTimer(0)
	defer func() {
		timer.Stop()
		cancel()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Watch stopped")
			return nil

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() && !skipDir(fi.Name()) {
					if err := w.addTree(ev.Name); err != nil {
						w.log.Warn("Unable to watch new directory", zap.Error(err))
					}
				}
			}
			if w.relevant(ev) {
				w.log.Debug("Change detected", zap.Stringer("event", ev))
				timer.Reset(w.delay)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("File system watcher error", zap.Error(err))

		case <-timer.C:
			cancel()
			var bctx context.Context
			bctx, cancel = context.WithCancel(ctx)
			gen := w.gen.Add(1)
			wg.Go(func() { w.rebuild(bctx, gen) })
		}
	}
}

// rebuild runs build of generation gen and writes result unless a newer
// generation has started meanwhile.
func (w *watcher) rebuild(ctx context.Context, gen uint64) {
	res, candidates, err := w.b.generate(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			w.log.Debug("Build superseded", zap.Uint64("generation", gen))
			return
		}
		w.log.Error("Build failed", zap.Uint64("generation", gen), zap.Error(err))
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen.Load() != gen {
		w.log.Debug("Build superseded", zap.Uint64("generation", gen), zap.Stringer("build", res.ID))
		return
	}
	if err := w.b.write(res); err != nil {
		w.log.Error("Unable to write stylesheet", zap.Stringer("build", res.ID), zap.Error(err))
		return
	}
	w.b.report(res, candidates)
	w.log.Info("Stylesheet updated", zap.Uint64("generation", gen), zap.Stringer("build", res.ID), zap.Int("rules", res.Stats.Rules))
	if w.onBuilt != nil {
		w.onBuilt(res)
	}
}
