package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"go.uber.org/zap"
)

const (
	DefaultSearchDebounce = 500 * time.Millisecond
	defaultFetchTimeout   = 15 * time.Second
)

type lister interface {
	List(ctx context.Context, token string, q domain.ListQuery) (domain.Page, error)
}

type EngineConfig struct {
	SearchDebounce time.Duration
	FetchTimeout   time.Duration
}

// EngineSnapshot is a consistent copy of the engine's state.
type EngineSnapshot struct {
	Query        domain.ListQuery
	Page         domain.Page
	Loading      bool
	Unauthorized bool
}

// Engine owns the current directory page. Every query change is turned into
// one listing request; the page and its pagination are only ever replaced by
// a server response, never patched locally.
//
// Requests are numbered. A response is applied only if it answers the most
// recently issued request, so a slow older response cannot overwrite a newer
// one. query is the query behind the displayed page; pending is the one most
// recently issued, and becomes query only when its response is applied.
type Engine struct {
	api    lister
	state  *State
	logger *zap.Logger
	cfg    EngineConfig

	search *debouncer

	mu           sync.Mutex
	query        domain.ListQuery
	pending      domain.ListQuery
	page         domain.Page
	issued       uint64
	outstanding  int
	unauthorized bool
	closed       bool
	onReplace    func(rows []domain.DirectoryEmployee)
}

func NewEngine(api lister, state *State, cfg EngineConfig, logger *zap.Logger) *Engine {
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = DefaultSearchDebounce
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	return &Engine{
		api:    api,
		state:  state,
		logger: logger,
		cfg:    cfg,
		search: newDebouncer(cfg.SearchDebounce),
		query:   domain.DefaultListQuery(),
		pending: domain.DefaultListQuery(),
	}
}

// OnReplace registers a callback run, under the engine lock, each time the
// current page is replaced by a response.
func (e *Engine) OnReplace(fn func(rows []domain.DirectoryEmployee)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onReplace = fn
}

// Fetch re-issues the current query. Mutating workflows call it instead of
// editing the cached page.
func (e *Engine) Fetch(ctx context.Context) error {
	return e.fetch(ctx, func(q *domain.ListQuery) error { return nil })
}

// SetPage navigates to page, keeping every filter.
func (e *Engine) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		return ErrInvalidPage
	}
	return e.fetch(ctx, func(q *domain.ListQuery) error {
		q.Page = page
		return nil
	})
}

// SetFilters changes the status and last-active filters and restarts at page 1.
func (e *Engine) SetFilters(ctx context.Context, status domain.StatusFilter, lastActive domain.LastActiveFilter) error {
	if status == "" {
		status = domain.FilterAll
	}
	if lastActive == "" {
		lastActive = domain.FilterAll
	}
	if !status.Valid() || !lastActive.Valid() {
		return ErrInvalidFilter
	}

	return e.fetch(ctx, func(q *domain.ListQuery) error {
		q.Status = status
		q.LastActive = lastActive
		q.Page = 1
		return nil
	})
}

// SetSearch records a keystroke. The request is issued only once the text has
// been stable for the debounce period, and always for page 1.
func (e *Engine) SetSearch(text string) {
	e.search.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.FetchTimeout)
		defer cancel()

		err := e.fetch(ctx, func(q *domain.ListQuery) error {
			q.Search = text
			q.Page = 1
			return nil
		})
		if err != nil && !errors.Is(err, ErrViewClosed) {
			e.logger.Debug("debounced directory search failed", zap.Error(err))
		}
	})
}

// Close stops pending searches; responses still in flight are dropped.
func (e *Engine) Close() {
	e.search.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

func (e *Engine) Snapshot() EngineSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	employees := make([]domain.DirectoryEmployee, len(e.page.Employees))
	copy(employees, e.page.Employees)

	return EngineSnapshot{
		Query:        e.query,
		Page:         domain.Page{Employees: employees, Pagination: e.page.Pagination},
		Loading:      e.outstanding > 0,
		Unauthorized: e.unauthorized,
	}
}

func (e *Engine) fetch(ctx context.Context, mutate func(q *domain.ListQuery) error) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrViewClosed
	}
	query := e.pending
	if err := mutate(&query); err != nil {
		e.mu.Unlock()
		return err
	}
	e.pending = query
	e.issued++
	seq := e.issued
	e.outstanding++
	e.mu.Unlock()

	page, err := e.api.List(ctx, e.state.Token(), query)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.outstanding--

	if e.closed {
		return nil
	}

	latest := seq == e.issued

	if err != nil {
		if latest {
			e.pending = e.query
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			if latest {
				e.unauthorized = true
			}
			e.logger.Info("directory fetch unauthorized", zap.Uint64("seq", seq), zap.Bool("latest", latest))
			return domain.ErrUnauthorized
		}
		e.logger.Warn("directory fetch failed",
			zap.Uint64("seq", seq),
			zap.Int("page", query.Page),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrFetchDirectory, err)
	}

	if !latest {
		e.logger.Debug("discarding out-of-order directory response",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", e.issued),
		)
		return nil
	}

	e.query = query
	e.page = page
	e.unauthorized = false
	if e.onReplace != nil {
		e.onReplace(page.Employees)
	}
	return nil
}
