package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Factory constructs a Scorer. It may be slow: it can download and load a model.
type Factory func(ctx context.Context) (Scorer, error)

// Loader is the process-wide model handle. The first successful Get builds
// the Scorer; every later caller receives that same instance. A failed build
// is not cached, so the next Get retries. At most one build runs at a time.
type Loader struct {
	factory Factory
	mu      sync.Mutex
	scorer  atomic.Pointer[scorerHolder]
}

type scorerHolder struct {
	s Scorer
}

func NewLoader(f Factory) *Loader {
	return &Loader{factory: f}
}

// Get returns the shared Scorer, building it on first use.
func (l *Loader) Get(ctx context.Context) (Scorer, error) {
	if h := l.scorer.Load(); h != nil {
		return h.s, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if h := l.scorer.Load(); h != nil {
		return h.s, nil
	}

	start := time.Now()
	s, err := l.factory(ctx)
	if err != nil {
		slog.Error("failed to load sentiment model", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	l.scorer.Store(&scorerHolder{s: s})
	slog.Info("sentiment model loaded", "scorer", s.Name(), "elapsed", time.Since(start))
	return s, nil
}

// Loaded reports whether the Scorer has been built.
func (l *Loader) Loaded() bool {
	return l.scorer.Load() != nil
}
