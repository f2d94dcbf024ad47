// Package shell is the interactive engine: it turns input lines into
// pipelines, runs them, and records them in history. It deliberately
// stays thin — all process semantics live in pipe and proc.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/madewokherd/gosh/internal/command"
	"github.com/madewokherd/gosh/internal/config"
	"github.com/madewokherd/gosh/internal/history"
	"github.com/madewokherd/gosh/internal/pipe"
	"github.com/madewokherd/gosh/internal/proc"
)

// Shell ties configuration, history, and the builtin registry to a set of
// standard streams.
type Shell struct {
	cfg      *config.Config
	log      *history.Logger // nil disables history
	builtins *Registry

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates a shell with the standard builtins registered. logger may
// be nil to disable history.
func New(cfg *config.Config, logger *history.Logger, stdin io.Reader, stdout, stderr io.Writer) *Shell {
	reg := NewRegistry()
	RegisterBuiltins(reg)
	return &Shell{
		cfg:      cfg,
		log:      logger,
		builtins: reg,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}
}

// Builtins returns the shell's builtin registry.
func (s *Shell) Builtins() *Registry { return s.builtins }

// Eval runs one input line and returns its exit code. A blank line is a
// no-op. The exit builtin surfaces as an *ExitRequest error; every other
// failure is reported on the shell's stderr and folded into the code.
func (s *Shell) Eval(ctx context.Context, line string) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return 0, nil
	}

	tokens, err := Tokenize(line)
	if err != nil {
		fmt.Fprintf(s.stderr, "gosh: %v\n", err)
		return 2, nil
	}
	stages, err := splitStages(tokens)
	if err != nil {
		fmt.Fprintf(s.stderr, "gosh: %v\n", err)
		return 2, nil
	}

	// Builtins only run bare: piping into cd makes no sense.
	if len(stages) == 1 {
		if b, ok := s.builtins.Lookup(stages[0][0]); ok {
			err := b.Run(ctx, s, stages[0][1:])
			var exit *ExitRequest
			if errors.As(err, &exit) {
				return exit.Code, err
			}
			if err != nil {
				fmt.Fprintf(s.stderr, "gosh: %v\n", err)
				return 1, nil
			}
			return 0, nil
		}
	}

	p, err := s.Build(stages)
	if err != nil {
		fmt.Fprintf(s.stderr, "gosh: %v\n", err)
		return 127, nil
	}

	start := time.Now()
	runErr := s.run(ctx, p)
	duration := time.Since(start)

	code, errMsg := s.resolveError(runErr)
	s.logRun(line, code, errMsg, duration)

	return code, nil
}

// Build resolves each stage's command name and folds the stages into one
// pipeline. The configured env overlay, if any, applies to every stage.
func (s *Shell) Build(stages [][]string) (pipe.Pipeline, error) {
	var p pipe.Pipeline
	for _, stage := range stages {
		c, err := command.Lookup(stage[0])
		if err != nil {
			return nil, err
		}
		next := c.Pipeline(stage[1:]...)
		if p == nil {
			p = next
		} else {
			p = pipe.Pipe(p, next)
		}
	}
	if len(s.cfg.Env) > 0 {
		p = p.WithEnv(s.cfg.Env)
	}
	return p, nil
}

func (s *Shell) run(ctx context.Context, p pipe.Pipeline) error {
	h, err := p.Spawn(pipe.Stdio{In: s.stdin, Out: s.stdout, Err: s.stderr})
	if err != nil {
		return err
	}
	if _, err := h.Wait(ctx); err != nil {
		return err
	}
	return h.Check()
}

// Source runs each line of the named file through Eval, the same way the
// interactive loop would. Used for the startup profile.
func (s *Shell) Source(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("source %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if _, err := s.Eval(ctx, scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("source %s: %w", path, err)
	}
	return nil
}

// resolveError extracts an exit code from a run error. For ExitError the
// code is propagated silently — the command's own stderr is sufficient.
// Other errors are reported on the shell's stderr.
func (s *Shell) resolveError(err error) (exitCode int, errMsg string) {
	if err == nil {
		return 0, ""
	}
	var exitErr *proc.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, ""
	}
	fmt.Fprintf(s.stderr, "gosh: %v\n", err)
	return 2, err.Error()
}

// logRun records a run in history. Best effort — a history failure never
// fails the command.
func (s *Shell) logRun(line string, exitCode int, errMsg string, duration time.Duration) {
	if s.log == nil {
		return
	}
	cwd, _ := os.Getwd()
	_ = s.log.Log(line, exitCode, errMsg, duration, cwd)
}
