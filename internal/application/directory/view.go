package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"go.uber.org/zap"
)

type mutator interface {
	Delete(ctx context.Context, token string, employeeID string) (string, error)
	ResendInvite(ctx context.Context, token string, employees []domain.Record) (string, error)
}

type directoryAPI interface {
	lister
	mutator
}

// View is one employee-management dashboard: the directory engine, the row
// selection and the delete confirmation. Nothing outside the view touches its
// page or selection.
type View struct {
	ID string

	state  *State
	engine *Engine
	api    mutator
	logger *zap.Logger

	mu            sync.Mutex
	selection     *Selection
	pendingDelete string
}

func NewView(id string, api directoryAPI, state *State, cfg EngineConfig, logger *zap.Logger) *View {
	logger = logger.With(zap.String("view_id", id))

	v := &View{
		ID:        id,
		state:     state,
		engine:    NewEngine(api, state, cfg, logger),
		api:       api,
		logger:    logger,
		selection: NewSelection(),
	}
	v.engine.OnReplace(v.replaceRows)
	return v
}

func (v *View) State() *State {
	return v.state
}

func (v *View) Refresh(ctx context.Context) error {
	return v.engine.Fetch(ctx)
}

func (v *View) SetPage(ctx context.Context, page int) error {
	return v.engine.SetPage(ctx, page)
}

func (v *View) SetFilters(ctx context.Context, status domain.StatusFilter, lastActive domain.LastActiveFilter) error {
	return v.engine.SetFilters(ctx, status, lastActive)
}

func (v *View) SetSearch(text string) {
	v.engine.SetSearch(text)
}

func (v *View) ToggleSelection(employeeID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection.Toggle(employeeID)
}

func (v *View) ToggleSelectAll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection.ToggleAll()
}

// Invite sends the selected rows as one batch. The selection is cleared on any
// server response and the page is refetched so invitation dates are current;
// there is no per-record retry.
func (v *View) Invite(ctx context.Context) (string, error) {
	v.mu.Lock()
	records := v.selection.Records()
	v.mu.Unlock()

	if len(records) == 0 {
		return "", ErrNothingSelected
	}

	message, err := v.api.ResendInvite(ctx, v.state.Token(), records)

	var remoteErr *domain.RemoteError
	if err != nil && !errors.As(err, &remoteErr) && !errors.Is(err, domain.ErrUnauthorized) {
		// no response at all: keep the selection so the user can retry
		return "", fmt.Errorf("%w: %w", ErrInviteEmployees, err)
	}

	v.mu.Lock()
	v.selection.Clear()
	v.mu.Unlock()

	if errors.Is(err, domain.ErrUnauthorized) {
		return "", domain.ErrUnauthorized
	}

	v.refreshAfterMutation(ctx, "invite")

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInviteEmployees, err)
	}

	v.logger.Info("employees invited", zap.Int("count", len(records)))
	return message, nil
}

// ArmDelete opens the confirmation step for one row of the current page.
func (v *View) ArmDelete(employeeID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.selection.row(employeeID); !ok {
		return ErrNotOnPage
	}
	v.pendingDelete = employeeID
	return nil
}

func (v *View) CancelDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingDelete = ""
}

// ConfirmDelete issues the armed delete. On success the page is refetched
// rather than spliced so pagination stays authoritative.
func (v *View) ConfirmDelete(ctx context.Context) (string, error) {
	v.mu.Lock()
	employeeID := v.pendingDelete
	v.pendingDelete = ""
	v.mu.Unlock()

	if employeeID == "" {
		return "", ErrDeleteNotArmed
	}

	message, err := v.api.Delete(ctx, v.state.Token(), employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("%w: %w", ErrDeleteEmployee, err)
	}

	v.logger.Info("employee deleted", zap.String("employee_id", employeeID))
	v.refreshAfterMutation(ctx, "delete")
	return message, nil
}

// Close unmounts the view. Late responses are ignored from here on.
func (v *View) Close() {
	v.engine.Close()
}

func (v *View) Snapshot() ViewOutput {
	snap := v.engine.Snapshot()

	v.mu.Lock()
	defer v.mu.Unlock()
	return newViewOutput(v.ID, snap, v.selection, v.pendingDelete)
}

func (v *View) replaceRows(rows []domain.DirectoryEmployee) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.selection.Replace(rows)
	if _, ok := v.selection.row(v.pendingDelete); !ok {
		v.pendingDelete = ""
	}
}

func (v *View) refreshAfterMutation(ctx context.Context, action string) {
	if err := v.engine.Fetch(context.WithoutCancel(ctx)); err != nil {
		v.logger.Warn("refresh after mutation failed", zap.String("action", action), zap.Error(err))
	}
}
