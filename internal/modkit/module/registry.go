package module

import (
	"slices"
	"sync"
)

var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register records name's port set, replacing any earlier one
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// Lookup returns the port set registered under name as T
func Lookup[T any](name string) (T, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := reg[name].(T)
	return v, ok
}

// Names lists registered modules in order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(reg))
	for n := range reg {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Reset empties the registry
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(reg)
}
