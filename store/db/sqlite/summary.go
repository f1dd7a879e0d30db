package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/standnotes/store"
)

func (d *DB) CreateSummary(ctx context.Context, create *store.Summary) (*store.Summary, error) {
	stmt := `INSERT INTO summary (summary_date, content) VALUES (?, ?) RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt, create.SummaryDate, create.Content).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to create summary")
	}

	return create, nil
}

func (d *DB) ListSummaries(ctx context.Context, find *store.FindSummary) ([]*store.Summary, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.SummaryDate != nil {
		where, args = append(where, "summary_date = ?"), append(args, *find.SummaryDate)
	}

	query := `SELECT id, summary_date, content, created_ts FROM summary WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list summaries")
	}
	defer rows.Close()

	list := make([]*store.Summary, 0)
	for rows.Next() {
		summary := &store.Summary{}
		if err := rows.Scan(&summary.ID, &summary.SummaryDate, &summary.Content, &summary.CreatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan summary")
		}
		list = append(list, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate summaries")
	}

	return list, nil
}

func (d *DB) UpdateSummary(ctx context.Context, update *store.UpdateSummary) error {
	// Zero matched rows is not an error, matching the postgres driver.
	stmt := `UPDATE summary SET summary_date = ?, content = ? WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, update.SummaryDate, update.Content, update.ID); err != nil {
		return errors.Wrap(err, "failed to update summary")
	}
	return nil
}

func (d *DB) DeleteSummary(ctx context.Context, delete *store.DeleteSummary) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM summary WHERE id = ?`, delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete summary")
	}
	return nil
}
