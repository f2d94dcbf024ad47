package pipe

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/madewokherd/gosh/internal/proc"
)

// combined joins two pipelines so the left's stdout feeds the right's
// stdin. It owns no OS resources until spawned.
type combined struct {
	left  Pipeline
	right Pipeline
}

// Pipe returns a pipeline running left and right concurrently with left's
// stdout wired to right's stdin, like `left | right`.
func Pipe(left, right Pipeline) Pipeline {
	return &combined{left: left, right: right}
}

// Spawn starts left, then right, connected by a fresh OS pipe. Left is
// started strictly first, but both run concurrently once spawned; the only
// sequencing between them is pipe backpressure and EOF.
func (p *combined) Spawn(stdio Stdio) (proc.Handle, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}

	left, err := p.left.Spawn(Stdio{In: stdio.In, Out: pw, Err: stdio.Err})
	if err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}

	right, err := p.right.Spawn(Stdio{In: pr, Out: stdio.Out, Err: stdio.Err})

	// Drop the parent's copies of both pipe ends. The children hold their
	// own descriptors; if the parent kept the write end open, right would
	// never see EOF and would hang after left exits.
	pw.Close()
	pr.Close()

	if err != nil {
		// Left is already running; its reaper collects it, so nothing
		// is leaked on this path.
		return nil, err
	}
	return &Running{left: left, right: right}, nil
}

// WithEnv applies the same overlay to both sides, so an overlay on
// `a | b` behaves consistently across the stages.
func (p *combined) WithEnv(env map[string]string) Pipeline {
	return &combined{left: p.left.WithEnv(env), right: p.right.WithEnv(env)}
}

// Running is the runtime counterpart of a combined pipeline: two handles
// presenting unified poll/wait/check.
type Running struct {
	left  proc.Handle
	right proc.Handle

	mu     sync.Mutex
	code   int
	exited bool
}

// Poll reports the combined exit code without blocking. The combined code
// is the left stage's code if nonzero, else the right stage's: an upstream
// failure is reported even if the downstream stage later succeeds. This
// deliberately differs from shells that report only the last stage. A
// nonzero left resolves the combined status immediately, without waiting
// for right to exit.
func (r *Running) Poll() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.exited {
		return r.code, true
	}

	leftCode, ok := r.left.Poll()
	if !ok {
		return 0, false
	}
	if leftCode != 0 {
		r.code, r.exited = leftCode, true
		return r.code, true
	}

	rightCode, ok := r.right.Poll()
	if !ok {
		return 0, false
	}
	r.code, r.exited = rightCode, true
	return r.code, true
}

// Wait waits for left, then right, on the same context. With a deadline
// the budget is consumed sequentially: right's wait gets whatever remains
// after left's, floored at zero (an expired context still resolves stages
// that have already exited).
func (r *Running) Wait(ctx context.Context) (int, error) {
	r.mu.Lock()
	if r.exited {
		code := r.code
		r.mu.Unlock()
		return code, nil
	}
	r.mu.Unlock()

	if _, err := r.left.Wait(ctx); err != nil {
		return 0, err
	}
	if _, err := r.right.Wait(ctx); err != nil {
		return 0, err
	}
	code, _ := r.Poll()
	return code, nil
}

// Check delegates to both stages, left first, so the first failing stage's
// error wins.
func (r *Running) Check() error {
	if err := r.left.Check(); err != nil {
		return err
	}
	return r.right.Check()
}
