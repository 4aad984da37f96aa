package ingestion_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

type fakeDecoder struct {
	grid domain.Grid
	err  error
}

func (f *fakeDecoder) Decode(upload domain.Upload) (domain.Grid, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.grid, nil
}

type fakeStore struct {
	mu      sync.Mutex
	uploads map[string]domain.PendingUpload
	saveErr error
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploads: map[string]domain.PendingUpload{}}
}

func (f *fakeStore) Save(ctx context.Context, upload domain.PendingUpload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.uploads[upload.ID] = upload
	return nil
}

func (f *fakeStore) Take(ctx context.Context, uploadID string) (domain.PendingUpload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	upload, ok := f.uploads[uploadID]
	if !ok {
		return domain.PendingUpload{}, domain.ErrUploadNotFound
	}
	delete(f.uploads, uploadID)
	return upload, nil
}

func (f *fakeStore) has(uploadID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.uploads[uploadID]
	return ok
}

func (f *fakeStore) Delete(ctx context.Context, uploadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.uploads, uploadID)
	f.deleted = append(f.deleted, uploadID)
	return nil
}

type auditCall struct {
	uploadID  string
	status    domain.ImportRunStatus
	processed int
	reason    string
}

type fakeAudit struct {
	parsed  []domain.PendingUpload
	issues  []domain.Outcome
	updates []auditCall
}

func (f *fakeAudit) RecordParsed(ctx context.Context, upload domain.PendingUpload, issues []domain.Outcome) error {
	f.parsed = append(f.parsed, upload)
	f.issues = append(f.issues, issues...)
	return nil
}

func (f *fakeAudit) UpdateStatus(ctx context.Context, uploadID string, status domain.ImportRunStatus, processed int, reason string) error {
	f.updates = append(f.updates, auditCall{uploadID: uploadID, status: status, processed: processed, reason: reason})
	return nil
}

type fakeOnboarder struct {
	result   domain.OnboardResult
	err      error
	calls    int
	gotToken string
	got      []domain.Record
}

func (f *fakeOnboarder) Onboard(ctx context.Context, token string, employees []domain.Record) (domain.OnboardResult, error) {
	f.calls++
	f.gotToken = token
	f.got = employees
	if f.err != nil {
		return domain.OnboardResult{}, f.err
	}
	return f.result, nil
}

type slowOnboarder struct {
	delay time.Duration
	calls atomic.Int32
}

func (f *slowOnboarder) Onboard(ctx context.Context, token string, employees []domain.Record) (domain.OnboardResult, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	return domain.OnboardResult{TotalProcessed: len(employees)}, nil
}
