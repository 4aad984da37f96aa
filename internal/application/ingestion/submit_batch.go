package ingestion

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"go.uber.org/zap"
)

type SubmitBatchInput struct {
	UploadID string
	Token    string
}

type SubmitBatchOutput struct {
	Processed int          `json:"processed"`
	Report    ReportOutput `json:"report"`
}

type SubmitBatch interface {
	Execute(ctx context.Context, in SubmitBatchInput) (SubmitBatchOutput, error)
}

type onboarder interface {
	Onboard(ctx context.Context, token string, employees []domain.Record) (domain.OnboardResult, error)
}

type submitBatch struct {
	store  domain.UploadStore
	api    onboarder
	audit  domain.ImportAudit
	logger *zap.Logger
}

func NewSubmitBatch(store domain.UploadStore, api onboarder, audit domain.ImportAudit, logger *zap.Logger) SubmitBatch {
	return &submitBatch{store: store, api: api, audit: audit, logger: logger}
}

// Execute sends the valid rows of a parsed upload as one batch. It is a single
// shot: the upload is taken out of the store before the remote call, so a
// concurrent or repeated submit finds nothing, and a new file is needed for
// another attempt whatever the outcome.
func (uc *submitBatch) Execute(ctx context.Context, in SubmitBatchInput) (SubmitBatchOutput, error) {
	pending, err := uc.store.Take(ctx, in.UploadID)
	if err != nil {
		if errors.Is(err, domain.ErrUploadNotFound) {
			return SubmitBatchOutput{}, domain.ErrUploadNotFound
		}
		return SubmitBatchOutput{}, fmt.Errorf("%w: %v", ErrLoadUpload, err)
	}

	if !pending.Report.CanSubmit() {
		// nothing was sent; the upload stays parsed
		uc.restore(ctx, pending)
		return SubmitBatchOutput{}, ErrEmptyBatch
	}

	result, err := uc.api.Onboard(ctx, in.Token, pending.Report.Valid)
	if err != nil {
		uc.updateAudit(ctx, pending.ID, domain.ImportRunSubmitFailed, 0, err.Error())
		return SubmitBatchOutput{}, fmt.Errorf("%w: %w", ErrSubmitBatch, err)
	}

	uc.updateAudit(ctx, pending.ID, domain.ImportRunSubmitted, result.TotalProcessed, "")
	uc.logger.Info("employee batch onboarded",
		zap.String("upload_id", pending.ID),
		zap.Int("submitted", len(pending.Report.Valid)),
		zap.Int("processed", result.TotalProcessed),
	)

	return SubmitBatchOutput{
		Processed: result.TotalProcessed,
		Report:    NewReportOutput(pending.Report),
	}, nil
}

func (uc *submitBatch) restore(ctx context.Context, pending domain.PendingUpload) {
	if err := uc.store.Save(context.WithoutCancel(ctx), pending); err != nil {
		uc.logger.Warn("restore unsubmitted upload failed", zap.String("upload_id", pending.ID), zap.Error(err))
	}
}

func (uc *submitBatch) updateAudit(ctx context.Context, uploadID string, status domain.ImportRunStatus, processed int, reason string) {
	if err := uc.audit.UpdateStatus(ctx, uploadID, status, processed, reason); err != nil {
		uc.logger.Warn("update import run failed", zap.String("upload_id", uploadID), zap.Error(err))
	}
}
