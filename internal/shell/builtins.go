package shell

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/madewokherd/gosh/internal/command"
)

// ExitRequest is returned by the exit builtin to stop the read loop.
type ExitRequest struct {
	Code int
}

func (e *ExitRequest) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// RegisterBuiltins adds the standard builtins to a registry.
func RegisterBuiltins(r *Registry) {
	r.Register(&cdBuiltin{})
	r.Register(&exitBuiltin{})
	r.Register(&historyBuiltin{})
	r.Register(&whichBuiltin{})
	r.Register(&helpBuiltin{})
}

type cdBuiltin struct{}

func (*cdBuiltin) Name() string        { return "cd" }
func (*cdBuiltin) Description() string { return "change the working directory" }

func (*cdBuiltin) Run(_ context.Context, _ *Shell, args []string) error {
	dir := ""
	switch len(args) {
	case 0:
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cd: %w", err)
		}
		dir = home
	case 1:
		dir = args[0]
	default:
		return fmt.Errorf("cd: too many arguments")
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("cd: %w", err)
	}
	return nil
}

type exitBuiltin struct{}

func (*exitBuiltin) Name() string        { return "exit" }
func (*exitBuiltin) Description() string { return "leave the shell" }

func (*exitBuiltin) Run(_ context.Context, _ *Shell, args []string) error {
	code := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("exit: %q is not a number", args[0])
		}
		code = n
	}
	return &ExitRequest{Code: code}
}

type historyBuiltin struct{}

func (*historyBuiltin) Name() string        { return "history" }
func (*historyBuiltin) Description() string { return "show recent commands" }

func (*historyBuiltin) Run(_ context.Context, sh *Shell, args []string) error {
	if sh.log == nil {
		return fmt.Errorf("history: no history log configured")
	}
	n := 20
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("history: %q is not a number", args[0])
		}
		n = v
	}
	entries, err := sh.log.Tail(n)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	for _, e := range entries {
		fmt.Fprintf(sh.stdout, "%5d  %s\n", e.Seq, e.Command)
	}
	return nil
}

type whichBuiltin struct{}

func (*whichBuiltin) Name() string        { return "which" }
func (*whichBuiltin) Description() string { return "resolve a command name to its executable" }

func (*whichBuiltin) Run(_ context.Context, sh *Shell, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("which: missing command name")
	}
	misses := 0
	for _, name := range args {
		if _, ok := sh.builtins.Lookup(name); ok {
			fmt.Fprintf(sh.stdout, "%s: shell builtin\n", name)
			continue
		}
		c, err := command.Lookup(name)
		if err != nil {
			// Report the miss and keep resolving the rest.
			fmt.Fprintf(sh.stderr, "which: no %s in PATH\n", name)
			misses++
			continue
		}
		fmt.Fprintln(sh.stdout, c.Path)
	}
	if misses > 0 {
		return fmt.Errorf("which: %d not found", misses)
	}
	return nil
}

type helpBuiltin struct{}

func (*helpBuiltin) Name() string        { return "help" }
func (*helpBuiltin) Description() string { return "list the shell builtins" }

func (*helpBuiltin) Run(_ context.Context, sh *Shell, _ []string) error {
	for _, b := range sh.builtins.All() {
		fmt.Fprintf(sh.stdout, "%-10s %s\n", b.Name(), b.Description())
	}
	return nil
}
