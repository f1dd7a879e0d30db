package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrygo/standnotes/store"
)

func (d *DB) CreateSummary(ctx context.Context, create *store.Summary) (*store.Summary, error) {
	fields := []string{"summary_date", "content"}
	args := []any{create.SummaryDate, create.Content}

	stmt := `INSERT INTO summary (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create summary: %w", err)
	}

	return create, nil
}

func (d *DB) ListSummaries(ctx context.Context, find *store.FindSummary) ([]*store.Summary, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.SummaryDate != nil {
		where, args = append(where, "summary_date = "+placeholder(len(args)+1)), append(args, *find.SummaryDate)
	}

	query := `SELECT id, summary_date, content, created_ts FROM summary WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Summary, 0)
	for rows.Next() {
		summary := &store.Summary{}
		if err := rows.Scan(&summary.ID, &summary.SummaryDate, &summary.Content, &summary.CreatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		list = append(list, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summaries: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateSummary(ctx context.Context, update *store.UpdateSummary) error {
	// Zero matched rows is not an error: the caller cannot distinguish a
	// missing id from a successful update.
	stmt := `UPDATE summary SET summary_date = ` + placeholder(1) + `, content = ` + placeholder(2) +
		` WHERE id = ` + placeholder(3)
	if _, err := d.db.ExecContext(ctx, stmt, update.SummaryDate, update.Content, update.ID); err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
	}
	return nil
}

func (d *DB) DeleteSummary(ctx context.Context, delete *store.DeleteSummary) error {
	stmt := `DELETE FROM summary WHERE id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, delete.ID); err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}
	return nil
}
