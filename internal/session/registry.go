package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-booking/internal/domain/wizard"
	"github.com/BruksfildServices01/clinic-booking/internal/metrics"
)

const DefaultIdleTTL = 30 * time.Minute

type Factory func() *wizard.Wizard

type Options struct {
	IdleTTL time.Duration
	Now     func() time.Time
	Metrics *metrics.BookingMetrics
}

type entry struct {
	wizard   *wizard.Wizard
	lastSeen time.Time
}

// Registry holds one wizard per visitor session and evicts idle ones.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry

	factory Factory
	idleTTL time.Duration
	now     func() time.Time
	metrics *metrics.BookingMetrics

	cron *cron.Cron
}

func NewRegistry(factory Factory, opts Options) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		factory:  factory,
		idleTTL:  opts.IdleTTL,
		now:      opts.Now,
		metrics:  opts.Metrics,
	}
	if r.idleTTL <= 0 {
		r.idleTTL = DefaultIdleTTL
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

func (r *Registry) Create() (string, *wizard.Wizard) {
	id := uuid.NewString()
	w := r.factory()

	r.mu.Lock()
	r.sessions[id] = &entry{wizard: w, lastSeen: r.now()}
	n := len(r.sessions)
	r.mu.Unlock()

	r.metrics.SetActiveSessions(n)
	return id, w
}

// Get returns the session's wizard and marks the session as active.
func (r *Registry) Get(id string) (*wizard.Wizard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.wizard, true
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return false
	}
	e.wizard.Close()
	r.metrics.SetActiveSessions(n)
	return true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes and removes sessions idle for longer than the TTL.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var evicted []*wizard.Wizard
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e.wizard)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, w := range evicted {
		w.Close()
	}
	r.metrics.SetActiveSessions(n)
	return len(evicted)
}

// Start runs Sweep on the given cron spec, e.g. "@every 1m".
func (r *Registry) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if n := r.Sweep(); n > 0 {
			log.Info().Int("evicted", n).Msg("wizard sessions evicted")
		}
	}); err != nil {
		return err
	}

	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()

	c.Start()
	return nil
}

// Stop halts the sweeper and closes every session.
func (r *Registry) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	sessions := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	for _, e := range sessions {
		e.wizard.Close()
	}
	r.metrics.SetActiveSessions(0)
}
