package echo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/mohammadpnp/roster-import/internal/application/directory"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	httpecho "github.com/mohammadpnp/roster-import/internal/interfaces/http/echo"
	"go.uber.org/zap"
)

type fakeDirectoryAPI struct {
	mu      sync.Mutex
	listErr error
	queries []domain.ListQuery
	tokens  []string
	invited [][]domain.Record
	deleted []string
}

func (f *fakeDirectoryAPI) List(ctx context.Context, token string, q domain.ListQuery) (domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, q)
	f.tokens = append(f.tokens, token)
	if f.listErr != nil {
		return domain.Page{}, f.listErr
	}
	return domain.Page{
		Employees: []domain.DirectoryEmployee{
			{ID: "e1", Name: "Ann", Email: "ann@x.com", ProfileStatus: domain.StatusPending},
			{ID: "e2", Name: "Bob", Email: "bob@x.com", ProfileStatus: domain.StatusComplete},
		},
		Pagination: domain.Pagination{CurrentPage: q.Page, Result: "1-2 of 2"},
	}, nil
}

func (f *fakeDirectoryAPI) Delete(ctx context.Context, token string, employeeID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, employeeID)
	return "Employee deleted", nil
}

func (f *fakeDirectoryAPI) ResendInvite(ctx context.Context, token string, employees []domain.Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invited = append(f.invited, employees)
	return "Invites sent", nil
}

func (f *fakeDirectoryAPI) lastQuery() domain.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func newDirectoryServer(api *fakeDirectoryAPI) *echo.Echo {
	e := echo.New()
	errs := httpecho.NewErrorMapper("/sign-in", zap.NewNop())
	registry := directory.NewRegistry(api, directory.RegistryConfig{}, zap.NewNop())
	importHandler := httpecho.NewImportHandler(&fakeIngest{}, &fakeSubmit{}, &fakeClear{}, &fakeOnboard{}, errs)
	httpecho.RegisterRoutes(e, errs, importHandler, httpecho.NewDirectoryHandler(registry, errs))
	return e
}

type viewEnvelope struct {
	Data directory.ViewOutput `json:"data"`
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) directory.ViewOutput {
	t.Helper()

	var got viewEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	return got.Data
}

func openTestView(t *testing.T, e *echo.Echo) string {
	t.Helper()

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/api/v1/views", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	if view.ID == "" || len(view.Employees) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
	return view.ID
}

func TestOpenViewUnauthorizedRedirects(t *testing.T) {
	t.Parallel()

	e := newDirectoryServer(&fakeDirectoryAPI{listErr: domain.ErrUnauthorized})
	rec := serve(e, httptest.NewRequest(http.MethodPost, "/api/v1/views", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "redirect_sign_in" {
		t.Fatalf("expected redirect_sign_in, got %s", code)
	}
}

func TestFiltersResetPageAndSearchIsAccepted(t *testing.T) {
	t.Parallel()

	api := &fakeDirectoryAPI{}
	e := newDirectoryServer(api)
	id := openTestView(t, e)

	rec := serve(e, jsonRequest(http.MethodPut, "/api/v1/views/"+id+"/page", `{"page":3}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if q := api.lastQuery(); q.Page != 3 {
		t.Fatalf("expected page 3, got %+v", q)
	}

	rec = serve(e, jsonRequest(http.MethodPut, "/api/v1/views/"+id+"/filters", `{"status":"pending","last_active":"7d"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if q := api.lastQuery(); q.Page != 1 || q.Status != "pending" || q.LastActive != "7d" {
		t.Fatalf("expected filters on page 1, got %+v", q)
	}

	rec = serve(e, jsonRequest(http.MethodPut, "/api/v1/views/"+id+"/filters", `{"status":"archived"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown filter, got %d", rec.Code)
	}

	rec = serve(e, jsonRequest(http.MethodPut, "/api/v1/views/"+id+"/search", `{"search":"ann"}`))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
}

func TestSelectionInviteAndDeleteFlow(t *testing.T) {
	t.Parallel()

	api := &fakeDirectoryAPI{}
	e := newDirectoryServer(api)
	id := openTestView(t, e)

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/api/v1/views/"+id+"/selection/e2", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for non-pending row, got %d", rec.Code)
	}

	rec = serve(e, httptest.NewRequest(http.MethodPost, "/api/v1/views/"+id+"/selection/all", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if view := decodeView(t, rec); view.Selection.State != directory.SelectionFull || !view.Selection.CanInvite {
		t.Fatalf("expected full selection, got %+v", view.Selection)
	}

	rec = serve(e, httptest.NewRequest(http.MethodPost, "/api/v1/views/"+id+"/invite", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(api.invited) != 1 || len(api.invited[0]) != 1 || api.invited[0][0].Email != "ann@x.com" {
		t.Fatalf("unexpected invite batch: %+v", api.invited)
	}

	rec = serve(e, httptest.NewRequest(http.MethodPost, "/api/v1/views/"+id+"/delete/confirm", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 without an armed delete, got %d", rec.Code)
	}

	rec = serve(e, httptest.NewRequest(http.MethodPost, "/api/v1/views/"+id+"/delete/e2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if view := decodeView(t, rec); view.PendingDelete == nil || *view.PendingDelete != "e2" {
		t.Fatalf("expected e2 armed, got %+v", view.PendingDelete)
	}

	rec = serve(e, httptest.NewRequest(http.MethodPost, "/api/v1/views/"+id+"/delete/confirm", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "e2" {
		t.Fatalf("unexpected deletes: %+v", api.deleted)
	}
}

func sessionToken(t *testing.T, subject, organization string, expires time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":          subject,
		"organization": organization,
		"exp":          expires.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestRequestTokenReplacesViewCredential(t *testing.T) {
	t.Parallel()

	api := &fakeDirectoryAPI{}
	e := newDirectoryServer(api)

	first := sessionToken(t, "user-1", "org-1", time.Now().Add(time.Hour))
	open := httptest.NewRequest(http.MethodPost, "/api/v1/views", nil)
	open.Header.Set(echo.HeaderAuthorization, "Bearer "+first)
	rec := serve(e, open)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	id := decodeView(t, rec).ID

	refreshed := sessionToken(t, "user-1", "org-1", time.Now().Add(2*time.Hour))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/views/"+id+"/refresh", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+refreshed)
	if rec := serve(e, req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if got := api.tokens[len(api.tokens)-1]; got != refreshed {
		t.Fatalf("expected refreshed token, got %q", got)
	}
}

func TestViewIsHiddenFromOtherCallers(t *testing.T) {
	t.Parallel()

	api := &fakeDirectoryAPI{}
	e := newDirectoryServer(api)

	owner := sessionToken(t, "user-1", "org-1", time.Now().Add(time.Hour))
	open := httptest.NewRequest(http.MethodPost, "/api/v1/views", nil)
	open.Header.Set(echo.HeaderAuthorization, "Bearer "+owner)
	rec := serve(e, open)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	id := decodeView(t, rec).ID

	strangers := []string{
		sessionToken(t, "user-2", "org-1", time.Now().Add(time.Hour)),
		sessionToken(t, "user-1", "org-2", time.Now().Add(time.Hour)),
		"opaque-token",
	}
	for _, token := range strangers {
		for _, req := range []*http.Request{
			httptest.NewRequest(http.MethodGet, "/api/v1/views/"+id, nil),
			jsonRequest(http.MethodPost, "/api/v1/views/"+id+"/selection/all", `{}`),
			httptest.NewRequest(http.MethodPost, "/api/v1/views/"+id+"/invite", nil),
			httptest.NewRequest(http.MethodDelete, "/api/v1/views/"+id, nil),
		} {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
			if rec := serve(e, req); rec.Code != http.StatusNotFound {
				t.Fatalf("%s %s: expected 404, got %d", req.Method, req.URL.Path, rec.Code)
			}
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/views/"+id, nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+owner)
	if rec := serve(e, req); rec.Code != http.StatusOK {
		t.Fatalf("owner expected 200, got %d", rec.Code)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.invited) != 0 {
		t.Fatalf("expected no invites from other callers, got %v", api.invited)
	}
}

func TestClosedViewIsGone(t *testing.T) {
	t.Parallel()

	e := newDirectoryServer(&fakeDirectoryAPI{})
	id := openTestView(t, e)

	if rec := serve(e, httptest.NewRequest(http.MethodDelete, "/api/v1/views/"+id, nil)); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/v1/views/"+id, nil)); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
