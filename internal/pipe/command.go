package pipe

import (
	"strings"

	"github.com/madewokherd/gosh/internal/proc"
)

// Cmd is a single external program invocation: an argument vector plus an
// optional environment overlay.
type Cmd struct {
	argv []string
	env  map[string]string
}

// Command describes an invocation of the program argv[0] with the
// remaining elements as its arguments.
func Command(argv ...string) *Cmd {
	return &Cmd{argv: argv}
}

// Argv returns the command's argument vector.
func (c *Cmd) Argv() []string { return c.argv }

// Spawn starts the program. The overlay, if any, is applied to a copy of
// the ambient environment by proc.Start.
func (c *Cmd) Spawn(stdio Stdio) (proc.Handle, error) {
	return proc.Start(c.argv, c.env, stdio)
}

// WithEnv returns a new Cmd with the same argv and the given overlay.
// The overlay replaces any prior one; overlays do not accumulate.
func (c *Cmd) WithEnv(env map[string]string) Pipeline {
	return &Cmd{argv: c.argv, env: env}
}

func (c *Cmd) String() string {
	return strings.Join(c.argv, " ")
}
