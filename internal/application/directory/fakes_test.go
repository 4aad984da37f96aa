package directory_test

import (
	"context"
	"sync"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

type fakeDirectoryAPI struct {
	mu      sync.Mutex
	listFn  func(q domain.ListQuery) (domain.Page, error)
	queries []domain.ListQuery
	tokens  []string
	listed  chan domain.ListQuery

	inviteMessage string
	inviteErr     error
	invited       [][]domain.Record

	deleteMessage string
	deleteErr     error
	deleted       []string
}

func (f *fakeDirectoryAPI) List(ctx context.Context, token string, q domain.ListQuery) (domain.Page, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.tokens = append(f.tokens, token)
	fn := f.listFn
	listed := f.listed
	f.mu.Unlock()

	if listed != nil {
		listed <- q
	}
	if fn == nil {
		return domain.Page{Pagination: domain.Pagination{CurrentPage: q.Page}}, nil
	}
	return fn(q)
}

func (f *fakeDirectoryAPI) Delete(ctx context.Context, token string, employeeID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, employeeID)
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	return f.deleteMessage, nil
}

func (f *fakeDirectoryAPI) ResendInvite(ctx context.Context, token string, employees []domain.Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invited = append(f.invited, employees)
	if f.inviteErr != nil {
		return "", f.inviteErr
	}
	return f.inviteMessage, nil
}

func (f *fakeDirectoryAPI) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeDirectoryAPI) lastQuery() domain.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

func mixedPage() domain.Page {
	next := 2
	return domain.Page{
		Employees: []domain.DirectoryEmployee{
			{ID: "e1", Name: "Ann", Email: "ann@x.com", ProfileStatus: domain.StatusPending},
			{ID: "e2", Name: "Bob", Email: "bob@x.com", ProfileStatus: domain.StatusComplete},
			{ID: "e3", Name: "Cid", Email: "cid@x.com", ProfileStatus: domain.StatusPending},
			{ID: "e4", Name: "Dee", Email: "dee@x.com", ProfileStatus: domain.StatusInactive},
		},
		Pagination: domain.Pagination{CurrentPage: 1, NextPage: &next, Result: "1-4 of 8"},
	}
}
