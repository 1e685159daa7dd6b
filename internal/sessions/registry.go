package sessions

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/excavacionesmoreno/quote-backend/internal/cart"
	"github.com/excavacionesmoreno/quote-backend/pkg/logger"
	"github.com/google/uuid"
)

const (
	defaultIdleTTL       = 2 * time.Hour
	defaultSweepInterval = 5 * time.Minute
	defaultMaxSessions   = 10000

	sweepJobName = "session_sweep"
)

// Recorder receives registry and cart activity. *metrics.QuoteMetrics satisfies it.
type Recorder interface {
	IncCartMutation(op string)
	SetActiveSessions(n int)
	ObserveJob(job string, duration time.Duration, err error)
	AddEvicted(n int)
}

// Params configure a Registry.
type Params struct {
	Logger   *logger.Logger
	Recorder Recorder
	IdleTTL  time.Duration
	// MaxSessions caps live sessions; Create evicts the least recently used one when full.
	MaxSessions int
	Now         func() time.Time
}

type entry struct {
	store    *cart.Store
	lastSeen time.Time
}

// Registry owns one cart store per visitor session.
type Registry struct {
	mu       sync.Mutex
	entries  map[string]*entry
	logg     *logger.Logger
	recorder Recorder
	ttl      time.Duration
	max      int
	now      func() time.Time
}

func NewRegistry(params Params) (*Registry, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	ttl := params.IdleTTL
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}
	max := params.MaxSessions
	if max <= 0 {
		max = defaultMaxSessions
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		entries:  map[string]*entry{},
		logg:     params.Logger,
		recorder: params.Recorder,
		ttl:      ttl,
		max:      max,
		now:      now,
	}, nil
}

// Create allocates a new session with an empty cart. At capacity the least recently
// used session is dropped first.
func (r *Registry) Create() (string, *cart.Store) {
	id := uuid.NewString()
	store := cart.NewStore()
	if r.recorder != nil {
		store.Subscribe(func(change cart.Change) {
			r.recorder.IncCartMutation(string(change.Op))
		})
	}

	r.mu.Lock()
	evicted := 0
	for len(r.entries) >= r.max {
		r.evictOldestLocked()
		evicted++
	}
	r.entries[id] = &entry{store: store, lastSeen: r.now()}
	n := len(r.entries)
	r.mu.Unlock()

	r.setActive(n)
	if evicted > 0 {
		if r.recorder != nil {
			r.recorder.AddEvicted(evicted)
		}
		r.logg.Debug(r.logg.WithField(context.Background(), "max_sessions", r.max), "session capacity reached, evicted least recently used")
	}
	return id, store
}

func (r *Registry) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range r.entries {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(r.entries, oldestID)
}

// Get returns the store for id and marks the session as recently used.
func (r *Registry) Get(id string) (*cart.Store, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.store, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.ttl)
	r.mu.Lock()
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	n := len(r.entries)
	r.mu.Unlock()

	r.setActive(n)
	if removed > 0 && r.recorder != nil {
		r.recorder.AddEvicted(removed)
	}
	return removed
}

// Run sweeps idle sessions every interval until the context is canceled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logg.Info(ctx, "session sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			r.runSweep(ctx)
		}
	}
}

func (r *Registry) runSweep(ctx context.Context) {
	jobCtx := r.logg.WithField(ctx, "job", sweepJobName)
	start := time.Now()
	removed, err := r.safeSweep()
	duration := time.Since(start)
	if r.recorder != nil {
		r.recorder.ObserveJob(sweepJobName, duration, err)
	}
	jobCtx = r.logg.WithFields(jobCtx, map[string]any{
		"duration_ms": duration.Milliseconds(),
		"evicted":     removed,
	})
	if err != nil {
		r.logg.Error(jobCtx, "session sweep failed", err)
		return
	}
	if removed > 0 {
		r.logg.Info(jobCtx, "idle sessions evicted")
		return
	}
	r.logg.Debug(jobCtx, "session sweep completed")
}

func (r *Registry) safeSweep() (removed int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("sweep panic: %v", rec)
		}
	}()
	return r.Sweep(r.now()), nil
}

func (r *Registry) setActive(n int) {
	if r.recorder != nil {
		r.recorder.SetActiveSessions(n)
	}
}
