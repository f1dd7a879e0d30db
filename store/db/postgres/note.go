package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrygo/standnotes/store"
)

func (d *DB) CreateNote(ctx context.Context, create *store.Note) (*store.Note, error) {
	fields := []string{"content"}
	args := []any{create.Content}

	stmt := `INSERT INTO note (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, created_ts`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return create, nil
}

func (d *DB) ListNotes(ctx context.Context, find *store.FindNote) ([]*store.Note, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.CreatedTsAfter != nil {
		where, args = append(where, "created_ts >= "+placeholder(len(args)+1)), append(args, *find.CreatedTsAfter)
	}
	if find.CreatedTsBefore != nil {
		where, args = append(where, "created_ts < "+placeholder(len(args)+1)), append(args, *find.CreatedTsBefore)
	}

	query := `SELECT id, content, created_ts FROM note WHERE ` + strings.Join(where, " AND ")
	if find.OrderByCreatedTsDesc {
		query += ` ORDER BY created_ts DESC`
	} else {
		query += ` ORDER BY id ASC`
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Note, 0)
	for rows.Next() {
		note := &store.Note{}
		if err := rows.Scan(&note.ID, &note.Content, &note.CreatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		list = append(list, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateNote(ctx context.Context, update *store.UpdateNote) error {
	// Zero matched rows is not an error: the caller cannot distinguish a
	// missing id from a successful update.
	stmt := `UPDATE note SET content = ` + placeholder(1) + ` WHERE id = ` + placeholder(2)
	if _, err := d.db.ExecContext(ctx, stmt, update.Content, update.ID); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

func (d *DB) DeleteNote(ctx context.Context, delete *store.DeleteNote) error {
	// Zero matched rows is not an error, same as UpdateNote.
	stmt := `DELETE FROM note WHERE id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, delete.ID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
