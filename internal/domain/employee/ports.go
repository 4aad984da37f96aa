package employee

import "context"

type OnboardResult struct {
	TotalProcessed int
	Message        string
}

// DirectoryAPI is the external employee directory. Every call carries the
// caller's bearer credential.
type DirectoryAPI interface {
	List(ctx context.Context, token string, q ListQuery) (Page, error)
	Delete(ctx context.Context, token string, employeeID string) (string, error)
	ResendInvite(ctx context.Context, token string, employees []Record) (string, error)
	Onboard(ctx context.Context, token string, employees []Record) (OnboardResult, error)
}

// UploadStore keeps parsed uploads between parsing and submission.
// Take removes and returns an upload atomically, so at most one caller ever
// holds it; unknown or expired ids yield ErrUploadNotFound.
type UploadStore interface {
	Save(ctx context.Context, upload PendingUpload) error
	Take(ctx context.Context, uploadID string) (PendingUpload, error)
	Delete(ctx context.Context, uploadID string) error
}

// ImportAudit records the lifecycle of each parsed upload.
type ImportAudit interface {
	RecordParsed(ctx context.Context, upload PendingUpload, issues []Outcome) error
	UpdateStatus(ctx context.Context, uploadID string, status ImportRunStatus, processed int, reason string) error
}
