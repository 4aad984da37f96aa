package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"github.com/mohammadpnp/roster-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type ImportRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

// Migrate creates the audit tables when missing.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.ImportRun{}, &models.ImportIssue{}); err != nil {
		return fmt.Errorf("migrate import audit tables: %w", err)
	}
	return nil
}

func (r *ImportRunRepository) Create(ctx context.Context, upload domain.PendingUpload) error {
	run := models.ImportRun{
		ID:             upload.ID,
		Filename:       upload.Filename,
		Status:         string(domain.ImportRunParsed),
		ValidCount:     upload.Report.ValidCount,
		InvalidCount:   upload.Report.InvalidCount,
		DuplicateCount: upload.Report.DuplicateCount,
		TotalCount:     upload.Report.TotalCount,
	}

	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("create import run: %w", err)
	}
	return nil
}

func (r *ImportRunRepository) UpdateStatus(ctx context.Context, runID string, status domain.ImportRunStatus, processed int, reason string) error {
	updates := map[string]any{
		"status":          string(status),
		"processed_count": processed,
		"finished_at":     time.Now().UTC(),
	}
	if reason = truncateReason(reason); reason != "" {
		updates["error_message"] = reason
	}

	// a run only leaves "parsed" once
	err := r.db.WithContext(ctx).
		Model(&models.ImportRun{}).
		Where("id = ? AND status = ?", runID, string(domain.ImportRunParsed)).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("update import run %s: %w", runID, err)
	}
	return nil
}

func (r *ImportRunRepository) GetByID(ctx context.Context, runID string) (*models.ImportRun, error) {
	var run models.ImportRun
	if err := r.db.WithContext(ctx).First(&run, "id = ?", runID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrImportRunNotFound
		}
		return nil, fmt.Errorf("get import run %s: %w", runID, err)
	}
	return &run, nil
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	// cut on a rune boundary; Postgres rejects invalid UTF-8
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}
