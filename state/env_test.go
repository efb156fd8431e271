package state

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestEnvFromContext(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env.start.IsZero() {
		t.Error("start time not recorded")
	}
	if env.Extractor != nil || env.Generator != nil {
		t.Error("build machinery must be created by Prepare only")
	}
	if EnvFromContext(ctx) != env {
		t.Error("context must carry the same environment")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for context without environment")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := &LocalEnv{start: time.Now().Add(-time.Minute)}
	if got := env.Uptime(); got < time.Minute || got > 2*time.Minute {
		t.Errorf("Uptime() = %v", got)
	}
}

func TestLocalEnv_Named(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(&buf), zap.DebugLevel)

	(&LocalEnv{}).Named("build").Info("dropped")

	env := &LocalEnv{Log: zap.New(core)}
	env.Named("watch").Info("rebuild")
	if !strings.Contains(buf.String(), "watch\trebuild") {
		t.Errorf("unexpected log output %q", buf.String())
	}
}

func TestLocalEnv_StdLog(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(&buf), zap.DebugLevel)
	env := &LocalEnv{Log: zap.New(core)}

	for i := range 2 {
		buf.Reset()
		env.RedirectStdLog()
		log.Print("from dependency")
		env.RestoreStdLog()
		if !strings.Contains(buf.String(), "from dependency") {
			t.Errorf("cycle %d: std log not redirected, got %q", i, buf.String())
		}
		if env.restoreStdLog != nil {
			t.Errorf("cycle %d: restore function kept", i)
		}
	}

	// without logger both calls are no-ops
	empty := &LocalEnv{}
	empty.RedirectStdLog()
	empty.RestoreStdLog()
	if empty.restoreStdLog != nil {
		t.Error("redirect without logger")
	}
}
