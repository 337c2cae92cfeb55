package pipeline

import (
	"context"
	"sync"
)

// Preprocessor inspects, and may mutate, an event before it is dispatched.
// Returning an error does not stop the pipeline; the error is logged and
// counted and the remaining preprocessors still run.
type Preprocessor func(ctx context.Context, ev *Event) error

// Registry holds preprocessors in registration order.
//
// It is safe for concurrent use: registration takes a write lock and
// iteration works on a read-locked snapshot.
type Registry struct {
	mu    sync.RWMutex
	procs []Preprocessor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a preprocessor. Preprocessors run in the order they
// were registered.
func (r *Registry) Register(p Preprocessor) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procs = append(r.procs, p)
}

// Len returns the number of registered preprocessors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.procs)
}

func (r *Registry) snapshot() []Preprocessor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.procs
}
