package command

import (
	"github.com/madewokherd/gosh/internal/pipe"
)

// Builder assembles an invocation from explicit flags, positional
// arguments, and environment overlay entries. Flags are appended in call
// order; positionals always follow flags.
type Builder struct {
	path string
	opts []string
	args []string
	env  map[string]string
}

// Build starts a builder for the command.
func (c *Command) Build() *Builder {
	return &Builder{path: c.Path}
}

// Short appends a short option: Short("n", "5") yields "-n5". An empty
// value yields the bare "-n".
func (b *Builder) Short(name, value string) *Builder {
	b.opts = append(b.opts, "-"+name+value)
	return b
}

// Long appends a long option: Long("color", "auto") yields
// "--color=auto". An empty value yields the bare "--color".
func (b *Builder) Long(name, value string) *Builder {
	opt := "--" + name
	if value != "" {
		opt += "=" + value
	}
	b.opts = append(b.opts, opt)
	return b
}

// Env adds an environment overlay entry for the invocation.
func (b *Builder) Env(key, value string) *Builder {
	if b.env == nil {
		b.env = make(map[string]string)
	}
	b.env[key] = value
	return b
}

// Args appends positional arguments.
func (b *Builder) Args(args ...string) *Builder {
	b.args = append(b.args, args...)
	return b
}

// Pipeline finalizes the invocation.
func (b *Builder) Pipeline() pipe.Pipeline {
	argv := make([]string, 0, 1+len(b.opts)+len(b.args))
	argv = append(argv, b.path)
	argv = append(argv, b.opts...)
	argv = append(argv, b.args...)

	var p pipe.Pipeline = pipe.Command(argv...)
	if b.env != nil {
		p = p.WithEnv(b.env)
	}
	return p
}
