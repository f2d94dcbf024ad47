package shell

import (
	"context"
	"sort"
	"sync"
)

// Builtin is a command handled inside the shell process instead of being
// spawned.
type Builtin interface {
	// Name returns the builtin's command name.
	Name() string

	// Description returns a human-readable summary for help output.
	Description() string

	// Run executes the builtin against the shell's own state and streams.
	Run(ctx context.Context, sh *Shell, args []string) error
}

// Registry maps builtin names to implementations.
type Registry struct {
	mu       sync.RWMutex
	builtins map[string]Builtin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builtins: make(map[string]Builtin)}
}

// Register adds a builtin to the registry.
func (r *Registry) Register(b Builtin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtins[b.Name()] = b
}

// Lookup returns a builtin by name.
func (r *Registry) Lookup(name string) (Builtin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builtins[name]
	return b, ok
}

// All returns all registered builtins sorted by name.
func (r *Registry) All() []Builtin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	builtins := make([]Builtin, 0, len(r.builtins))
	for _, b := range r.builtins {
		builtins = append(builtins, b)
	}
	sort.Slice(builtins, func(i, j int) bool {
		return builtins[i].Name() < builtins[j].Name()
	})
	return builtins
}
