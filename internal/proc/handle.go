// Package proc wraps a single spawned OS process behind a handle that
// supports non-blocking polling, context-bounded waiting, and exit-status
// checking. It is the leaf the pipe package builds its pipelines on.
package proc

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// Stdio selects where a spawned process's standard streams connect.
// A nil field inherits the corresponding stream of the calling process.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Handle is the runtime counterpart of a pipeline description: something
// that has been spawned and can be polled, waited on, and checked.
type Handle interface {
	// Poll reports the exit code without blocking. exited is false while
	// the process (or any stage of it) is still running.
	Poll() (code int, exited bool)

	// Wait blocks until the process exits or ctx is done. The context
	// bounds the wait only; it never terminates the process. On a context
	// error the process keeps running and Wait may be called again.
	Wait(ctx context.Context) (int, error)

	// Check returns an *ExitError if the process has exited with a
	// nonzero code, and nil otherwise (including while still running).
	Check() error
}

// Proc is a Handle over one external process.
type Proc struct {
	argv []string
	cmd  *exec.Cmd

	done chan struct{} // closed by the reaper once cmd.Wait returns

	mu      sync.Mutex
	code    int
	waitErr error // non-exit error from cmd.Wait (I/O plumbing failures)
}

// Start launches the program argv[0] with the given arguments. If env is
// non-nil it is overlaid onto a copy of the ambient environment; the
// ambient environment itself is never touched. Omitted stdio fields
// inherit the caller's streams.
//
// Each call produces an independent process; Start never blocks on the
// child. A reaper goroutine collects the exit status, so an abandoned
// Proc does not leave a zombie behind.
func Start(argv []string, env map[string]string, stdio Stdio) (*Proc, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("spawn: empty argv")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if env != nil {
		cmd.Env = os.Environ()
		for k, v := range env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	cmd.Stdin = stdio.In
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = stdio.Out
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = stdio.Err
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", argv[0], err)
	}

	p := &Proc{
		argv: argv,
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go p.reap()
	return p, nil
}

func (p *Proc) reap() {
	err := p.cmd.Wait()

	p.mu.Lock()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			p.code = exitErr.ExitCode()
		} else {
			p.waitErr = err
		}
	}
	p.mu.Unlock()

	close(p.done)
}

// Argv returns the argument vector the process was started with.
func (p *Proc) Argv() []string { return p.argv }

// Poll reports the exit code without blocking.
func (p *Proc) Poll() (int, bool) {
	select {
	case <-p.done:
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.code, true
	default:
		return 0, false
	}
}

// Wait blocks until the process exits or ctx is done. An already-exited
// process resolves immediately even on an expired context, so a
// zero-budget wait degrades to a poll rather than an unconditional error.
func (p *Proc) Wait(ctx context.Context) (int, error) {
	select {
	case <-p.done:
	default:
		select {
		case <-p.done:
		case <-ctx.Done():
			return 0, fmt.Errorf("wait %s: %w", p.argv[0], ctx.Err())
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.waitErr != nil {
		return p.code, fmt.Errorf("wait %s: %w", p.argv[0], p.waitErr)
	}
	return p.code, nil
}

// Check returns an *ExitError if the process has exited nonzero.
func (p *Proc) Check() error {
	code, exited := p.Poll()
	if exited && code != 0 {
		return &ExitError{Argv: p.argv, Code: code}
	}
	return nil
}
