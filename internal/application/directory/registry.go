package directory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"go.uber.org/zap"
)

const DefaultViewIdleTTL = 30 * time.Minute

type RegistryConfig struct {
	Engine EngineConfig
	// IdleTTL is how long a view survives without being looked up.
	IdleTTL time.Duration
	Clock   func() time.Time
}

type registeredView struct {
	view       *View
	lastAccess time.Time
}

// Registry holds the open dashboard views of this process. A view is only
// visible to the caller that opened it, and is dropped once it has been idle
// for longer than the configured TTL.
type Registry struct {
	api    directoryAPI
	cfg    RegistryConfig
	logger *zap.Logger

	mu    sync.Mutex
	views map[string]*registeredView
}

func NewRegistry(api directoryAPI, cfg RegistryConfig, logger *zap.Logger) *Registry {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultViewIdleTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &Registry{
		api:    api,
		cfg:    cfg,
		logger: logger,
		views:  make(map[string]*registeredView),
	}
}

// Open mounts a new view and loads page 1. A view whose first fetch is
// unauthorized is not kept.
func (r *Registry) Open(ctx context.Context, state *State) (*View, error) {
	r.EvictIdle()

	view := NewView(uuid.NewString(), r.api, state, r.cfg.Engine, r.logger)

	if err := view.Refresh(ctx); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			view.Close()
			return nil, err
		}
		r.logger.Warn("initial directory fetch failed", zap.String("view_id", view.ID), zap.Error(err))
	}

	r.mu.Lock()
	r.views[view.ID] = &registeredView{view: view, lastAccess: r.cfg.Clock()}
	r.mu.Unlock()

	return view, nil
}

// Get returns the caller's view and marks it as used. Views that belong to
// someone else are reported as not found.
func (r *Registry) Get(viewID, subject, organization string) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.views[viewID]
	if !ok || !entry.view.State().OwnedBy(subject, organization) {
		return nil, ErrViewNotFound
	}

	now := r.cfg.Clock()
	if now.Sub(entry.lastAccess) > r.cfg.IdleTTL {
		delete(r.views, viewID)
		entry.view.Close()
		return nil, ErrViewNotFound
	}
	entry.lastAccess = now
	return entry.view, nil
}

func (r *Registry) Close(viewID, subject, organization string) error {
	r.mu.Lock()
	entry, ok := r.views[viewID]
	if ok && entry.view.State().OwnedBy(subject, organization) {
		delete(r.views, viewID)
	} else {
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return ErrViewNotFound
	}
	entry.view.Close()
	return nil
}

// EvictIdle closes every view idle for longer than the TTL and returns how
// many were dropped.
func (r *Registry) EvictIdle() int {
	now := r.cfg.Clock()

	r.mu.Lock()
	var idle []*View
	for id, entry := range r.views {
		if now.Sub(entry.lastAccess) > r.cfg.IdleTTL {
			idle = append(idle, entry.view)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, view := range idle {
		view.Close()
	}
	if len(idle) > 0 {
		r.logger.Info("evicted idle directory views", zap.Int("count", len(idle)))
	}
	return len(idle)
}

// RunJanitor evicts idle views every interval until ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle()
		}
	}
}

// CloseAll unmounts every view; used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*registeredView)
	r.mu.Unlock()

	for _, entry := range views {
		entry.view.Close()
	}
}
