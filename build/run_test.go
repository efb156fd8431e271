package build

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"jitcss/common"
	"jitcss/config"
	"jitcss/jit"
	"jitcss/state"
)

// setupTestEnv creates environment with content rooted at temporary
// directory and compact output.
func setupTestEnv(t *testing.T, files map[string]string) (context.Context, *state.LocalEnv, string) {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Build.Content = []string{"**/*.html"}
	cfg.Build.ContentBase = dir
	cfg.Build.OutputStyle = common.OutputStyleCompact

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Cfg = cfg
	return ctx, env, dir
}

func prepare(t *testing.T, env *state.LocalEnv) {
	t.Helper()
	if err := env.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
}

func TestBuilder_Stdout(t *testing.T) {
	ctx, env, _ := setupTestEnv(t, map[string]string{
		"index.html":       `<div class="p-4 hover:rotate-3">`,
		"partials/a.html":  `<p class="m-2 nope">`,
		"scripts/skip.txt": `class="skew-y-6"`,
	})
	prepare(t, env)

	var out bytes.Buffer
	res, err := newBuilder(env, &out).build(ctx)
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{".p-4", `.hover\:rotate-3:hover`, ".m-2", "--tw-rotate"} {
		if !strings.Contains(got, want) {
			t.Errorf("output misses %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "skew-y-6") {
		t.Errorf("content outside of patterns was used:\n%s", got)
	}
	if res.Stats.Dropped != 1 {
		t.Errorf("stats = %+v, want one dropped candidate", res.Stats)
	}
}

func TestBuilder_InputAndOutput(t *testing.T) {
	ctx, env, dir := setupTestEnv(t, map[string]string{
		"index.html": `<button class="btn md:btn">`,
		"input.css":  "/* header */\n@tailwind utilities;\n@layer components { .btn { @apply p-4 rotate-3; } }\n",
	})
	env.Cfg.Build.Input = filepath.Join(dir, "input.css")
	env.Cfg.Build.Output = filepath.Join(dir, "dist", "out.css")
	prepare(t, env)

	var stdout bytes.Buffer
	if _, err := newBuilder(env, &stdout).build(ctx); err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing expected on stdout, got %q", stdout.String())
	}
	data, err := os.ReadFile(env.Cfg.Build.Output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "/* header */") || !strings.Contains(got, ".btn") || !strings.Contains(got, "@media (min-width: 768px)") {
		t.Errorf("unexpected output:\n%s", got)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "dist", ".out.css.*"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left: %v", leftovers)
	}
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		ctx, env, dir := setupTestEnv(t, nil)
		env.Cfg.Build.Input = filepath.Join(dir, "missing.css")
		prepare(t, env)
		if _, err := newBuilder(env, &bytes.Buffer{}).build(ctx); err == nil {
			t.Error("expected error for missing input")
		}
	})

	t.Run("directive cycle", func(t *testing.T) {
		ctx, env, dir := setupTestEnv(t, map[string]string{
			"index.html": `<p class="a">`,
			"input.css":  "@tailwind utilities;\n@layer components { .a { @apply b; } .b { @apply a; } }\n",
		})
		env.Cfg.Build.Input = filepath.Join(dir, "input.css")
		prepare(t, env)

		_, err := newBuilder(env, &bytes.Buffer{}).build(ctx)
		var ce *jit.CycleError
		if !errors.As(err, &ce) {
			t.Errorf("build() error = %v, want CycleError", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		_, env, _ := setupTestEnv(t, map[string]string{"index.html": `<p class="p-4">`})
		prepare(t, env)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := newBuilder(env, &bytes.Buffer{}).build(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("build() error = %v, want context.Canceled", err)
		}
	})
}

func TestBuilder_Report(t *testing.T) {
	ctx, env, dir := setupTestEnv(t, map[string]string{
		"index.html": `<p class="p-4">`,
		"input.css":  "@tailwind utilities;",
	})
	env.Cfg.Build.Input = filepath.Join(dir, "input.css")
	prepare(t, env)

	var err error
	if env.Rpt, err = (&config.ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare(); err != nil {
		t.Fatal(err)
	}
	res, err := newBuilder(env, &bytes.Buffer{}).build(ctx)
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if err := env.Rpt.Close(); err != nil {
		t.Fatalf("report Close() error = %v", err)
	}

	fi, err := os.Stat(filepath.Join(dir, "report.zip"))
	if err != nil || fi.Size() == 0 {
		t.Fatalf("report not written: %v", err)
	}
	if res.ID.Version() != 7 {
		t.Errorf("build id %s is not V7", res.ID)
	}
}

func TestDumpCandidates(t *testing.T) {
	ctx, env, _ := setupTestEnv(t, map[string]string{
		"a.html": `<p class="p-4 nope hover:m-2">`,
		"b.html": `<p class="p-4 zzz:p-4 w-[10px]">`,
	})
	prepare(t, env)
	b := newBuilder(env, nil)

	var all, resolved bytes.Buffer
	if err := dumpCandidates(ctx, b, false, &all); err != nil {
		t.Fatalf("dumpCandidates() error = %v", err)
	}
	if err := dumpCandidates(ctx, b, true, &resolved); err != nil {
		t.Fatalf("dumpCandidates(resolved) error = %v", err)
	}
	if got, want := all.String(), "p-4\nnope\nhover:m-2\nzzz:p-4\nw-[10px]\n"; got != want {
		t.Errorf("all candidates = %q, want %q", got, want)
	}
	if got, want := resolved.String(), "p-4\nhover:m-2\nw-[10px]\n"; got != want {
		t.Errorf("resolved candidates = %q, want %q", got, want)
	}
}

func TestWriteFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "a", "b", "out.css")
	for _, data := range []string{".p-4{padding:1rem}", ".m-2{margin:.5rem}"} {
		if err := writeFile(name, []byte(data)); err != nil {
			t.Fatalf("writeFile() error = %v", err)
		}
		got, err := os.ReadFile(name)
		if err != nil || string(got) != data {
			t.Errorf("file = %q (%v), want %q", got, err, data)
		}
	}
}
