package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for database drivers.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	Migrate(ctx context.Context) error

	// Note model related methods.
	CreateNote(ctx context.Context, create *Note) (*Note, error)
	ListNotes(ctx context.Context, find *FindNote) ([]*Note, error)
	UpdateNote(ctx context.Context, update *UpdateNote) error
	DeleteNote(ctx context.Context, delete *DeleteNote) error

	// Summary model related methods.
	CreateSummary(ctx context.Context, create *Summary) (*Summary, error)
	ListSummaries(ctx context.Context, find *FindSummary) ([]*Summary, error)
	UpdateSummary(ctx context.Context, update *UpdateSummary) error
	DeleteSummary(ctx context.Context, delete *DeleteSummary) error
}
