package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"jitcss/jit"
)

func TestWatcher_Relevant(t *testing.T) {
	_, env, dir := setupTestEnv(t, map[string]string{"index.html": ""})
	env.Cfg.Build.Input = filepath.Join(dir, "styles", "input.css")
	env.Cfg.Build.Output = filepath.Join(dir, "out.css")
	prepare(t, env)

	w, err := newWatcher(newBuilder(env, &bytes.Buffer{}), dir, 0)
	if err != nil {
		t.Fatalf("newWatcher() error = %v", err)
	}
	defer w.Close()
	if w.delay != DefaultDebounce {
		t.Errorf("delay = %v, want default", w.delay)
	}

	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"index.html", fsnotify.Write, true},
		{"pages/deep/about.html", fsnotify.Create, true},
		{"index.html", fsnotify.Remove, true},
		{"index.html", fsnotify.Chmod, false},
		{"notes.txt", fsnotify.Write, false},
		{"styles/input.css", fsnotify.Write, true},
		{"out.css", fsnotify.Write, false},
		{".out.css.12345", fsnotify.Create, false},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.op.String(), func(t *testing.T) {
			ev := fsnotify.Event{Name: filepath.Join(dir, filepath.FromSlash(tt.name)), Op: tt.op}
			if got := w.relevant(ev); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", ev, got, tt.want)
			}
		})
	}
}

func TestSkipDir(t *testing.T) {
	for name, want := range map[string]bool{
		"node_modules": true,
		".git":         true,
		".":            false,
		"src":          false,
	} {
		if got := skipDir(name); got != want {
			t.Errorf("skipDir(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestWatcher_SupersededBuildDoesNotWrite(t *testing.T) {
	ctx, env, dir := setupTestEnv(t, map[string]string{"index.html": `<p class="p-4">`})
	env.Cfg.Build.Output = filepath.Join(dir, "out.css")
	prepare(t, env)

	w, err := newWatcher(newBuilder(env, &bytes.Buffer{}), dir, time.Millisecond)
	if err != nil {
		t.Fatalf("newWatcher() error = %v", err)
	}
	defer w.Close()

	w.gen.Store(2)
	w.rebuild(ctx, 1)
	if _, err := os.Stat(env.Cfg.Build.Output); !os.IsNotExist(err) {
		t.Fatalf("stale generation wrote output: %v", err)
	}

	w.rebuild(ctx, 2)
	if _, err := os.Stat(env.Cfg.Build.Output); err != nil {
		t.Fatalf("latest generation did not write output: %v", err)
	}

	// cancelled build is dropped silently
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	w.gen.Store(3)
	w.rebuild(cctx, 3)
}

func TestWatcher_Run(t *testing.T) {
	ctx, env, dir := setupTestEnv(t, map[string]string{"index.html": `<p class="p-4">`})
	env.Cfg.Build.Output = filepath.Join(dir, "out.css")
	prepare(t, env)

	w, err := newWatcher(newBuilder(env, &bytes.Buffer{}), dir, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("newWatcher() error = %v", err)
	}
	defer w.Close()

	built := make(chan *jit.Result, 16)
	w.onBuilt = func(res *jit.Result) { built <- res }

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.After(10 * time.Second)
		for {
			select {
			case <-built:
				data, _ := os.ReadFile(env.Cfg.Build.Output)
				if strings.Contains(string(data), want) {
					return
				}
			case <-deadline:
				data, _ := os.ReadFile(env.Cfg.Build.Output)
				t.Fatalf("timeout waiting for %q, output:\n%s", want, data)
			}
		}
	}

	waitFor(".p-4")
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(`<p class="p-4 m-2">`), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(".m-2")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}
