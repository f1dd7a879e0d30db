package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/standnotes/store"
)

func (d *DB) CreateNote(ctx context.Context, create *store.Note) (*store.Note, error) {
	stmt := `INSERT INTO note (content) VALUES (?) RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt, create.Content).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to create note")
	}

	return create, nil
}

func (d *DB) ListNotes(ctx context.Context, find *store.FindNote) ([]*store.Note, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.CreatedTsAfter != nil {
		where, args = append(where, "created_ts >= ?"), append(args, *find.CreatedTsAfter)
	}
	if find.CreatedTsBefore != nil {
		where, args = append(where, "created_ts < ?"), append(args, *find.CreatedTsBefore)
	}

	query := `SELECT id, content, created_ts FROM note WHERE ` + strings.Join(where, " AND ")
	if find.OrderByCreatedTsDesc {
		query += ` ORDER BY created_ts DESC`
	} else {
		query += ` ORDER BY id ASC`
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notes")
	}
	defer rows.Close()

	list := make([]*store.Note, 0)
	for rows.Next() {
		note := &store.Note{}
		if err := rows.Scan(&note.ID, &note.Content, &note.CreatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan note")
		}
		list = append(list, note)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate notes")
	}

	return list, nil
}

func (d *DB) UpdateNote(ctx context.Context, update *store.UpdateNote) error {
	// Zero matched rows is not an error, matching the postgres driver.
	if _, err := d.db.ExecContext(ctx, `UPDATE note SET content = ? WHERE id = ?`, update.Content, update.ID); err != nil {
		return errors.Wrap(err, "failed to update note")
	}
	return nil
}

func (d *DB) DeleteNote(ctx context.Context, delete *store.DeleteNote) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM note WHERE id = ?`, delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete note")
	}
	return nil
}
