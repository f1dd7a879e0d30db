package store

import "context"

// Note is a single raw standup note. The content is opaque text; the
// creation timestamp is assigned by the database.
type Note struct {
	ID        int32
	Content   string
	CreatedTs int64
}

// FindNote is the find condition for notes.
type FindNote struct {
	ID *int32

	// CreatedTsAfter is inclusive (created_ts >= value).
	CreatedTsAfter *int64
	// CreatedTsBefore is exclusive (created_ts < value).
	CreatedTsBefore *int64

	OrderByCreatedTsDesc bool
}

// UpdateNote is the update condition for a note. Content is overwritten
// unconditionally; updating a non-existent id is not an error.
type UpdateNote struct {
	ID      int32
	Content string
}

// DeleteNote is the delete condition for a note. Deleting a non-existent
// id is not an error.
type DeleteNote struct {
	ID int32
}

func (s *Store) CreateNote(ctx context.Context, create *Note) (*Note, error) {
	return s.driver.CreateNote(ctx, create)
}

func (s *Store) ListNotes(ctx context.Context, find *FindNote) ([]*Note, error) {
	return s.driver.ListNotes(ctx, find)
}

func (s *Store) UpdateNote(ctx context.Context, update *UpdateNote) error {
	return s.driver.UpdateNote(ctx, update)
}

func (s *Store) DeleteNote(ctx context.Context, delete *DeleteNote) error {
	return s.driver.DeleteNote(ctx, delete)
}
