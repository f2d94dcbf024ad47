// Package command resolves command names to executables and builds
// pipeline invocations for them.
package command

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/madewokherd/gosh/internal/pipe"
)

// ErrNotFound reports a command name that resolved to no executable.
var ErrNotFound = errors.New("command not found")

// Command is a resolved executable.
type Command struct {
	Name string // the name as looked up
	Path string // absolute path of the executable
}

// Lookup resolves name against PATH.
func Lookup(name string) (*Command, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &Command{Name: name, Path: path}, nil
}

// Pipeline returns a command pipeline invoking the executable with the
// given arguments.
func (c *Command) Pipeline(args ...string) *pipe.Cmd {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, c.Path)
	argv = append(argv, args...)
	return pipe.Command(argv...)
}

func (c *Command) String() string {
	return fmt.Sprintf("Command(%q)", c.Path)
}
