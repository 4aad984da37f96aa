package repository

import (
	"context"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

// ImportAudit records runs through gorm and their row issues through a pgx COPY.
type ImportAudit struct {
	runs   *ImportRunRepository
	issues *ImportIssueRepository
}

func NewImportAudit(runs *ImportRunRepository, issues *ImportIssueRepository) *ImportAudit {
	return &ImportAudit{runs: runs, issues: issues}
}

func (a *ImportAudit) RecordParsed(ctx context.Context, upload domain.PendingUpload, issues []domain.Outcome) error {
	if err := a.runs.Create(ctx, upload); err != nil {
		return err
	}
	_, err := a.issues.CopyIssues(ctx, upload.ID, issues)
	return err
}

func (a *ImportAudit) UpdateStatus(ctx context.Context, uploadID string, status domain.ImportRunStatus, processed int, reason string) error {
	return a.runs.UpdateStatus(ctx, uploadID, status, processed, reason)
}
