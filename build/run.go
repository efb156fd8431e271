// Package build implements program commands: one-shot stylesheet build,
// watch mode and candidate dump.
package build

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"jitcss/common"
	"jitcss/jit"
	"jitcss/state"
)

// defaultInput is used when no authored stylesheet is configured.
var defaultInput = []byte("@tailwind base;\n@tailwind components;\n@tailwind utilities;\n")

// applyFlags overrides configuration with command line values and prepares
// environment.
func applyFlags(cmd *cli.Command, env *state.LocalEnv) error {
	b := &env.Cfg.Build
	if cmd.IsSet("input") {
		b.Input = cmd.String("input")
	}
	if cmd.IsSet("output") {
		b.Output = cmd.String("output")
	}
	if cmd.IsSet("content") {
		b.Content = cmd.StringSlice("content")
	}
	if cmd.Bool("minify") {
		b.OutputStyle = common.OutputStyleCompact
	}
	return env.Prepare()
}

// Run is "build" command: generates stylesheet once.
func Run(ctx context.Context, cmd *cli.Command) error {
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

	b := newBuilder(env, os.Stdout)
	_, err := b.build(ctx)
	return err
}

// builder performs single build from current state of inputs.
type builder struct {
	env    *state.LocalEnv
	log    *zap.Logger
	input  string
	output string
	stdout io.Writer
}

func newBuilder(env *state.LocalEnv, stdout io.Writer) *builder {
	return &builder{
		env:    env,
		log:    env.Named("build"),
		input:  env.Cfg.Build.Input,
		output: env.Cfg.Build.Output,
		stdout: stdout,
	}
}

func (b *builder) readInput() ([]byte, error) {
	if len(b.input) == 0 {
		return defaultInput, nil
	}
	data, err := os.ReadFile(b.input)
	if err != nil {
		return nil, fmt.Errorf("unable to read input stylesheet: %w", err)
	}
	return data, nil
}

// generate extracts candidates and builds stylesheet without writing it.
func (b *builder) generate(ctx context.Context) (*jit.Result, []string, error) {
	authored, err := b.readInput()
	if err != nil {
		return nil, nil, err
	}
	candidates, err := b.env.Extractor.Extract(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to extract candidates: %w", err)
	}
	res, err := b.env.Generator.Build(ctx, authored, candidates)
	if err != nil {
		return nil, candidates, fmt.Errorf("unable to build stylesheet: %w", err)
	}
	return res, candidates, nil
}

func (b *builder) build(ctx context.Context) (*jit.Result, error) {
	res, candidates, err := b.generate(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.write(res); err != nil {
		return nil, err
	}
	b.report(res, candidates)
	return res, nil
}

// write sends stylesheet to stdout or replaces output file.
func (b *builder) write(res *jit.Result) error {
	if len(b.output) == 0 {
		_, err := res.WriteTo(b.stdout)
		return err
	}

	var buf bytes.Buffer
	if _, err := res.WriteTo(&buf); err != nil {
		return err
	}
	if err := writeFile(b.output, buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write output stylesheet: %w", err)
	}
	b.log.Debug("Stylesheet written", zap.String("output", b.output), zap.Stringer("build", res.ID), zap.Int("size", buf.Len()))
	return nil
}

func (b *builder) report(res *jit.Result, candidates []string) {
	if b.env.Rpt == nil {
		return
	}
	prefix := "builds/" + res.ID.String() + "/"
	b.env.Rpt.StoreData(prefix+"candidates.txt", []byte(strings.Join(candidates, "\n")))
	var buf bytes.Buffer
	if _, err := res.WriteTo(&buf); err == nil {
		b.env.Rpt.StoreData(prefix+"output.css", buf.Bytes())
	}
	b.env.Rpt.StoreData(prefix+"tree.txt", []byte(res.Dump()))
	if len(b.input) > 0 {
		if err := b.env.Rpt.StoreCopy(prefix+"input.css", b.input); err != nil {
			b.log.Debug("Unable to store input in report", zap.Error(err))
		}
	}
}

// writeFile replaces file content so readers never see partial stylesheet.
func writeFile(name string, data []byte) error {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), name)
}
