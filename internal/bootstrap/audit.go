package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohammadpnp/roster-import/internal/config"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"github.com/mohammadpnp/roster-import/internal/infrastructure/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var openGorm = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// AuditStore holds the connections behind the ingestion audit trail: gorm for
// import runs, a pgx pool for bulk-copied row issues.
type AuditStore struct {
	Runs   *repository.ImportRunRepository
	Issues *repository.ImportIssueRepository

	db   *gorm.DB
	pool *pgxpool.Pool
}

// OpenAuditStore connects and migrates the audit schema. On error nothing is
// left open.
func OpenAuditStore(ctx context.Context, dsn string) (*AuditStore, error) {
	db, err := openGorm(dsn)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := repository.Migrate(db); err != nil {
		closeGorm(db)
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	return &AuditStore{
		Runs:   repository.NewImportRunRepository(db),
		Issues: repository.NewImportIssueRepository(pool),
		db:     db,
		pool:   pool,
	}, nil
}

func (s *AuditStore) Close() {
	s.pool.Close()
	closeGorm(s.db)
}

func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// OpenAudit connects the ingestion audit trail. It returns nil when no
// database is configured; the caller falls back to discarding audit records.
func OpenAudit(ctx context.Context, cfg config.PostgresConfig) (domain.ImportAudit, func(), error) {
	if cfg.DSN == "" {
		return nil, func() {}, nil
	}

	store, err := OpenAuditStore(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewImportAudit(store.Runs, store.Issues), store.Close, nil
}
