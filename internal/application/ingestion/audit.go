package ingestion

import (
	"context"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

// DiscardAudit is used when no audit database is configured.
type DiscardAudit struct{}

func (DiscardAudit) RecordParsed(ctx context.Context, upload domain.PendingUpload, issues []domain.Outcome) error {
	return nil
}

func (DiscardAudit) UpdateStatus(ctx context.Context, uploadID string, status domain.ImportRunStatus, processed int, reason string) error {
	return nil
}
