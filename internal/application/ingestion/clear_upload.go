package ingestion

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"go.uber.org/zap"
)

type ClearUploadInput struct {
	UploadID string
}

type ClearUpload interface {
	Execute(ctx context.Context, in ClearUploadInput) error
}

type clearUpload struct {
	store  domain.UploadStore
	audit  domain.ImportAudit
	logger *zap.Logger
}

func NewClearUpload(store domain.UploadStore, audit domain.ImportAudit, logger *zap.Logger) ClearUpload {
	return &clearUpload{store: store, audit: audit, logger: logger}
}

// Execute drops a parsed upload and returns the pipeline to idle. Clearing an
// unknown upload is not an error.
func (uc *clearUpload) Execute(ctx context.Context, in ClearUploadInput) error {
	if err := uc.store.Delete(ctx, in.UploadID); err != nil {
		return fmt.Errorf("clear upload %s: %w", in.UploadID, err)
	}

	if err := uc.audit.UpdateStatus(ctx, in.UploadID, domain.ImportRunCleared, 0, ""); err != nil {
		uc.logger.Warn("update import run failed", zap.String("upload_id", in.UploadID), zap.Error(err))
	}
	return nil
}
