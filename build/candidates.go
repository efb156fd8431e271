package build

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"jitcss/state"
)

// Candidates is "candidates" command: prints candidates extracted from
// content sources, one per line, in first-seen order. With --resolved only
// candidates producing rules are printed.
func Candidates(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	if err := applyFlags(cmd, env); err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if fname := cmd.Args().Get(0); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}
	return dumpCandidates(ctx, newBuilder(env, nil), cmd.Bool("resolved"), out)
}

func dumpCandidates(ctx context.Context, b *builder, resolved bool, out io.Writer) error {
	candidates, err := b.env.Extractor.Extract(ctx)
	if err != nil {
		return fmt.Errorf("unable to extract candidates: %w", err)
	}
	if resolved {
		authored, err := b.readInput()
		if err != nil {
			return err
		}
		if candidates, err = b.env.Generator.Resolvable(ctx, authored, candidates); err != nil {
			return fmt.Errorf("unable to resolve candidates: %w", err)
		}
	}

	w := bufio.NewWriter(out)
	for _, c := range candidates {
		fmt.Fprintln(w, c)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("unable to write candidates: %w", err)
	}
	b.log.Debug("Candidates written", zap.Int("count", len(candidates)), zap.Bool("resolved", resolved))
	return nil
}
