package contact

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/folio-dev/folio/pkg/logger"
)

const (
	defaultSurfaceTTL    = time.Hour
	defaultSweepInterval = time.Minute
)

// Factory builds the Submission for a new surface.
type Factory func(id string) *Submission

// Registry keeps one Submission per page load, keyed by surface ID.
// Surfaces idle for longer than the TTL are evicted by Sweep.
type Registry struct {
	factory  Factory
	logger   *slog.Logger
	now      func() time.Time
	surfaces map[string]*surface
	ttl      time.Duration
	interval time.Duration
	mu       sync.Mutex
}

type surface struct {
	lastSeen time.Time
	sub      *Submission
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSurfaceTTL sets how long an untouched surface is kept.
func WithSurfaceTTL(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.ttl = d
		}
	}
}

// WithSweepInterval sets how often Run evicts expired surfaces.
func WithSweepInterval(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithRegistryLogger sets the registry logger.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(factory Factory, opts ...RegistryOption) *Registry {
	r := &Registry{
		factory:  factory,
		logger:   logger.NewNope(),
		now:      time.Now,
		surfaces: make(map[string]*surface),
		ttl:      defaultSurfaceTTL,
		interval: defaultSweepInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a new surface and returns its ID.
func (r *Registry) Create() (string, *Submission) {
	id := uuid.NewString()
	sub := r.factory(id)

	r.mu.Lock()
	r.surfaces[id] = &surface{sub: sub, lastSeen: r.now()}
	r.mu.Unlock()

	return id, sub
}

// Get returns the surface's Submission and marks it as recently used.
func (r *Registry) Get(id string) (*Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.surfaces[id]
	if !ok {
		return nil, ErrSurfaceNotFound
	}
	if r.expired(s) {
		delete(r.surfaces, id)
		return nil, ErrSurfaceNotFound
	}
	s.lastSeen = r.now()
	return s.sub, nil
}

// Remove forgets a surface. An in-flight delivery still completes.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.surfaces, id)
	r.mu.Unlock()
}

// Len returns the number of live surfaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.surfaces)
}

// Sweep evicts expired surfaces and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.surfaces {
		if r.expired(s) {
			delete(r.surfaces, id)
			n++
		}
	}
	return n
}

func (r *Registry) expired(s *surface) bool {
	return r.now().Sub(s.lastSeen) > r.ttl
}

// Run sweeps periodically until ctx is done. It always returns nil.
func (r *Registry) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.DebugContext(ctx, "contact surfaces evicted",
					slog.Int("evicted", n),
					slog.Int("remaining", r.Len()),
				)
			}
		}
	}
}
