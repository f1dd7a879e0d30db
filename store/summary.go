package store

import "context"

// Summary is a standup summary for a calendar day. Content is either
// caller-supplied or generated by the LLM; SummaryDate is the literal
// date string the caller provided.
type Summary struct {
	ID          int32
	SummaryDate string
	Content     string
	CreatedTs   int64
}

// FindSummary is the find condition for summaries.
type FindSummary struct {
	ID          *int32
	SummaryDate *string
}

// UpdateSummary is the update condition for a summary. Updating a
// non-existent id is not an error.
type UpdateSummary struct {
	ID          int32
	SummaryDate string
	Content     string
}

// DeleteSummary is the delete condition for a summary.
type DeleteSummary struct {
	ID int32
}

func (s *Store) CreateSummary(ctx context.Context, create *Summary) (*Summary, error) {
	return s.driver.CreateSummary(ctx, create)
}

func (s *Store) ListSummaries(ctx context.Context, find *FindSummary) ([]*Summary, error) {
	return s.driver.ListSummaries(ctx, find)
}

func (s *Store) UpdateSummary(ctx context.Context, update *UpdateSummary) error {
	return s.driver.UpdateSummary(ctx, update)
}

func (s *Store) DeleteSummary(ctx context.Context, delete *DeleteSummary) error {
	return s.driver.DeleteSummary(ctx, delete)
}
