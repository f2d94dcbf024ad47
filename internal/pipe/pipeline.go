// Package pipe composes external processes into pipelines. A Pipeline is
// an immutable description; nothing touches the OS until Spawn. Combinators
// (Pipe, WithEnv, the input redirections) return new descriptions, so one
// description can be spawned any number of times, each spawn producing an
// independent run.
package pipe

import (
	"github.com/madewokherd/gosh/internal/proc"
)

// Stdio is re-exported so callers composing pipelines don't need to
// import proc just to redirect streams.
type Stdio = proc.Stdio

// Pipeline is anything that can be spawned into a running process handle.
type Pipeline interface {
	// Spawn starts the underlying OS process(es) immediately and returns
	// a handle for them. Omitted stdio fields inherit the caller's
	// streams. Spawn may be called multiple times.
	Spawn(stdio Stdio) (proc.Handle, error)

	// WithEnv returns a copy of the pipeline with the given environment
	// overlay. The overlay is applied on top of the ambient environment
	// at spawn time.
	WithEnv(env map[string]string) Pipeline
}
