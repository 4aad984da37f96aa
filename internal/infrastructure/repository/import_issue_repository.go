package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

type ImportIssueRepository struct {
	pool *pgxpool.Pool
}

func NewImportIssueRepository(pool *pgxpool.Pool) *ImportIssueRepository {
	return &ImportIssueRepository{pool: pool}
}

// CopyIssues bulk-inserts the invalid and duplicate rows of a run.
func (r *ImportIssueRepository) CopyIssues(ctx context.Context, runID string, issues []domain.Outcome) (int64, error) {
	if len(issues) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []any{runID, issue.Row, issue.Kind.String(), issue.Record.Email, issue.Message()})
	}

	copied, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"import_issues"},
		[]string{"run_id", "row_number", "kind", "email", "message"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("copy import issues: %w", err)
	}
	return copied, nil
}

func (r *ImportIssueRepository) ListMessages(ctx context.Context, runID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
SELECT message
FROM import_issues
WHERE run_id = $1
ORDER BY CASE kind WHEN 'invalid' THEN 0 ELSE 1 END, row_number
`, runID)
	if err != nil {
		return nil, fmt.Errorf("list import issues: %w", err)
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowTo[string])
}
