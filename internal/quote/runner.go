package quote

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Runner serializes update runs so the scheduler and manual triggers never overlap.
type Runner struct {
	deps Deps
	mu   sync.Mutex
}

func (r *Runner) Run(ctx context.Context) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunUpdate(ctx, uuid.NewString(), r.deps)
}

func NewRunner(deps Deps) *Runner {
	return &Runner{deps: deps}
}
