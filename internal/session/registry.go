package session

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Zachkp/portfolio/internal/fitness"
	"github.com/Zachkp/portfolio/internal/logger"
)

// DefaultTTL is how long an untouched visitor controller is kept.
const DefaultTTL = 30 * time.Minute

// Factory builds the controller for a new visitor.
type Factory func(visitorID string) *fitness.Controller

type entry struct {
	ctrl     *fitness.Controller
	lastSeen time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithTTL sets the idle lifetime of a visitor controller.
func WithTTL(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.ttl = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// WithGauges reports the number of live visitors and evictions.
func WithGauges(active prometheus.Gauge, evicted prometheus.Counter) RegistryOption {
	return func(r *Registry) {
		r.active = active
		r.evicted = evicted
	}
}

// Registry maps visitor ids to their fitness controllers.
type Registry struct {
	factory Factory
	log     logger.Logger
	ttl     time.Duration
	now     func() time.Time

	active  prometheus.Gauge
	evicted prometheus.Counter

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry(factory Factory, log logger.Logger, opts ...RegistryOption) *Registry {
	if log == nil {
		log = logger.NewNop()
	}
	r := &Registry{
		factory: factory,
		log:     log,
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the visitor's controller, creating it on first use, and
// marks the visitor as seen. It returns nil after Close.
func (r *Registry) Get(visitorID string) *fitness.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}

	if e, ok := r.entries[visitorID]; ok {
		e.lastSeen = r.now()
		return e.ctrl
	}

	e := &entry{ctrl: r.factory(visitorID), lastSeen: r.now()}
	r.entries[visitorID] = e
	r.setActive()
	return e.ctrl
}

// Len returns the number of live visitors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep closes and forgets every controller idle for longer than the TTL.
// It returns the number evicted.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var stale []*fitness.Controller
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.ctrl)
			delete(r.entries, id)
		}
	}
	r.setActive()
	r.mu.Unlock()

	// Close outside the lock; it waits for in-flight fetches.
	for _, c := range stale {
		c.Close()
	}
	if n := len(stale); n > 0 {
		if r.evicted != nil {
			r.evicted.Add(float64(n))
		}
		r.log.Debug("Evicted idle visitors", logger.Int("count", n))
	}
	return len(stale)
}

// Run sweeps every interval until ctx is done, then closes the registry.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Close()
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close closes every controller. Get returns nil afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.setActive()
	r.mu.Unlock()

	for _, e := range entries {
		e.ctrl.Close()
	}
}

func (r *Registry) setActive() {
	if r.active != nil {
		r.active.Set(float64(len(r.entries)))
	}
}
