package ingestion

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"go.uber.org/zap"
)

type IngestSpreadsheetInput struct {
	Upload domain.Upload
}

type IngestSpreadsheetOutput struct {
	UploadID string       `json:"upload_id"`
	Report   ReportOutput `json:"report"`
}

type IngestSpreadsheet interface {
	Execute(ctx context.Context, in IngestSpreadsheetInput) (IngestSpreadsheetOutput, error)
}

type gridDecoder interface {
	Decode(upload domain.Upload) (domain.Grid, error)
}

type ingestSpreadsheet struct {
	decoder gridDecoder
	store   domain.UploadStore
	audit   domain.ImportAudit
	logger  *zap.Logger
}

func NewIngestSpreadsheet(decoder gridDecoder, store domain.UploadStore, audit domain.ImportAudit, logger *zap.Logger) IngestSpreadsheet {
	return &ingestSpreadsheet{decoder: decoder, store: store, audit: audit, logger: logger}
}

// Execute decodes, validates and classifies an upload, then parks the valid
// rows until the user confirms submission. Structural errors abort before
// anything is stored.
func (uc *ingestSpreadsheet) Execute(ctx context.Context, in IngestSpreadsheetInput) (IngestSpreadsheetOutput, error) {
	grid, err := uc.decoder.Decode(in.Upload)
	if err != nil {
		return IngestSpreadsheetOutput{}, err
	}

	report, outcomes, err := Analyze(grid)
	if err != nil {
		return IngestSpreadsheetOutput{}, err
	}

	pending := domain.PendingUpload{
		ID:       uuid.NewString(),
		Filename: in.Upload.Filename,
		Report:   report,
	}
	if err := uc.store.Save(ctx, pending); err != nil {
		return IngestSpreadsheetOutput{}, fmt.Errorf("%w: %v", ErrStoreUpload, err)
	}

	if err := uc.audit.RecordParsed(ctx, pending, issuesOf(outcomes)); err != nil {
		uc.logger.Warn("record import run failed", zap.String("upload_id", pending.ID), zap.Error(err))
	}

	uc.logger.Info("employee upload parsed",
		zap.String("upload_id", pending.ID),
		zap.String("filename", pending.Filename),
		zap.Int("valid", report.ValidCount),
		zap.Int("invalid", report.InvalidCount),
		zap.Int("duplicate", report.DuplicateCount),
	)

	return IngestSpreadsheetOutput{
		UploadID: pending.ID,
		Report:   NewReportOutput(report),
	}, nil
}
