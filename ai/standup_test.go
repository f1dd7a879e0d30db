package ai

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/standnotes/ai/llm"
	"github.com/hrygo/standnotes/internal/profile"
	"github.com/hrygo/standnotes/store"
)

// fakeDriver is an in-memory store.Driver for generator tests.
type fakeDriver struct {
	notes     []*store.Note
	summaries []*store.Summary

	listNotesErr     error
	createSummaryErr error

	lastFindNote *store.FindNote
}

func (d *fakeDriver) GetDB() *sql.DB                    { return nil }
func (d *fakeDriver) Close() error                      { return nil }
func (d *fakeDriver) Migrate(ctx context.Context) error { return nil }

func (d *fakeDriver) CreateNote(ctx context.Context, create *store.Note) (*store.Note, error) {
	create.ID = int32(len(d.notes) + 1)
	create.CreatedTs = time.Now().Unix()
	d.notes = append(d.notes, create)
	return create, nil
}

func (d *fakeDriver) ListNotes(ctx context.Context, find *store.FindNote) ([]*store.Note, error) {
	d.lastFindNote = find
	if d.listNotesErr != nil {
		return nil, d.listNotesErr
	}
	list := make([]*store.Note, 0)
	for _, note := range d.notes {
		if find.CreatedTsAfter != nil && note.CreatedTs < *find.CreatedTsAfter {
			continue
		}
		if find.CreatedTsBefore != nil && note.CreatedTs >= *find.CreatedTsBefore {
			continue
		}
		list = append(list, note)
	}
	return list, nil
}

func (d *fakeDriver) UpdateNote(ctx context.Context, update *store.UpdateNote) error { return nil }
func (d *fakeDriver) DeleteNote(ctx context.Context, delete *store.DeleteNote) error { return nil }

func (d *fakeDriver) CreateSummary(ctx context.Context, create *store.Summary) (*store.Summary, error) {
	if d.createSummaryErr != nil {
		return nil, d.createSummaryErr
	}
	create.ID = int32(len(d.summaries) + 1)
	create.CreatedTs = time.Now().Unix()
	d.summaries = append(d.summaries, create)
	return create, nil
}

func (d *fakeDriver) ListSummaries(ctx context.Context, find *store.FindSummary) ([]*store.Summary, error) {
	return d.summaries, nil
}

func (d *fakeDriver) UpdateSummary(ctx context.Context, update *store.UpdateSummary) error {
	return nil
}

func (d *fakeDriver) DeleteSummary(ctx context.Context, delete *store.DeleteSummary) error {
	return nil
}

// fakeLLM records the messages it was called with.
type fakeLLM struct {
	response string
	err      error

	calls    int
	messages []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message) (string, *llm.CallStats, error) {
	f.calls++
	f.messages = messages
	if f.err != nil {
		return "", nil, f.err
	}
	return f.response, &llm.CallStats{TotalTokens: 42}, nil
}

func (f *fakeLLM) Warmup(ctx context.Context) {}

func newTestStore(driver store.Driver) *store.Store {
	return store.New(driver, &profile.Profile{Mode: "dev"})
}

func TestStandupRange(t *testing.T) {
	start, end, err := StandupRange("2024-01-02")
	require.NoError(t, err)

	// The queried window is shifted one day forward from the literal date
	// and spans two calendar days.
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), end)
}

func TestStandupRangeInvalidDate(t *testing.T) {
	for _, date := range []string{"", "not-a-date", "2024-13-40", "01/02/2024"} {
		_, _, err := StandupRange(date)
		assert.Error(t, err, "date %q", date)
	}
}

func TestBuildStandupPrompt(t *testing.T) {
	notes := []*store.Note{
		{ID: 1, Content: "fixed bug X"},
		{ID: 2, Content: "reviewed PR Y"},
		{ID: 3, Content: "blocked on credentials"},
	}

	prompt := BuildStandupPrompt("2024-01-02", notes)

	assert.Contains(t, prompt, "Based on these notes from 2024-01-02")
	assert.Contains(t, prompt, "What I Did Yesterday:")
	assert.Contains(t, prompt, "What I Will Do Today:")
	assert.Contains(t, prompt, "Obstacles/Blockers:")
	// Note contents are joined by blank lines in store order.
	assert.Contains(t, prompt, "fixed bug X\n\nreviewed PR Y\n\nblocked on credentials")
}

func TestGenerateNoNotes(t *testing.T) {
	driver := &fakeDriver{}
	llmService := &fakeLLM{response: "should not be used"}
	generator := NewStandupGenerator(newTestStore(driver), llmService, nil, "test-model")

	result, err := generator.Generate(context.Background(), "2024-01-02")
	require.NoError(t, err)

	assert.Equal(t, NoNotesMessage, result.Summary)
	assert.False(t, result.Generated)
	assert.Nil(t, result.Saved)
	assert.Equal(t, 0, llmService.calls, "LLM must not be called for an empty window")
	assert.Empty(t, driver.summaries, "no summary row should be written")
}

func TestGenerateQueriesShiftedWindow(t *testing.T) {
	driver := &fakeDriver{}
	llmService := &fakeLLM{response: "summary"}
	generator := NewStandupGenerator(newTestStore(driver), llmService, nil, "test-model")

	_, err := generator.Generate(context.Background(), "2024-01-02")
	require.NoError(t, err)

	require.NotNil(t, driver.lastFindNote)
	require.NotNil(t, driver.lastFindNote.CreatedTsAfter)
	require.NotNil(t, driver.lastFindNote.CreatedTsBefore)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC).Unix(), *driver.lastFindNote.CreatedTsAfter)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC).Unix(), *driver.lastFindNote.CreatedTsBefore)
}

func TestGenerateConcatenatesNotes(t *testing.T) {
	windowTs := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC).Unix()
	driver := &fakeDriver{
		notes: []*store.Note{
			{ID: 1, Content: "shipped feature A", CreatedTs: windowTs},
			{ID: 2, Content: "wrote tests for B", CreatedTs: windowTs + 60},
		},
	}
	llmService := &fakeLLM{response: "generated summary"}
	generator := NewStandupGenerator(newTestStore(driver), llmService, nil, "test-model")

	result, err := generator.Generate(context.Background(), "2024-01-02")
	require.NoError(t, err)

	assert.Equal(t, "generated summary", result.Summary)
	assert.True(t, result.Generated)
	require.Equal(t, 1, llmService.calls)
	require.Len(t, llmService.messages, 2)
	assert.Equal(t, "system", llmService.messages[0].Role)
	assert.Contains(t, llmService.messages[0].Content, "standup meeting summaries")
	assert.Equal(t, "user", llmService.messages[1].Role)
	assert.Contains(t, llmService.messages[1].Content, "shipped feature A\n\nwrote tests for B")
}

func TestGenerateLLMFailure(t *testing.T) {
	windowTs := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC).Unix()
	driver := &fakeDriver{
		notes: []*store.Note{{ID: 1, Content: "note", CreatedTs: windowTs}},
	}
	llmService := &fakeLLM{err: errors.New("model overloaded")}
	generator := NewStandupGenerator(newTestStore(driver), llmService, nil, "test-model")

	_, err := generator.Generate(context.Background(), "2024-01-02")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "model overloaded"))
	assert.Empty(t, driver.summaries, "no summary row should be written on LLM failure")
}

func TestGeneratePersistsSummary(t *testing.T) {
	windowTs := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC).Unix()
	driver := &fakeDriver{
		notes: []*store.Note{{ID: 1, Content: "note", CreatedTs: windowTs}},
	}
	llmService := &fakeLLM{response: "generated summary"}
	generator := NewStandupGenerator(newTestStore(driver), llmService, nil, "test-model")

	result, err := generator.Generate(context.Background(), "2024-01-02")
	require.NoError(t, err)

	require.NotNil(t, result.Saved)
	assert.Equal(t, "2024-01-02", result.Saved.SummaryDate)
	assert.Equal(t, "generated summary", result.Saved.Content)
	require.Len(t, driver.summaries, 1)
}

func TestGeneratePersistFailureStillReturnsSummary(t *testing.T) {
	windowTs := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC).Unix()
	driver := &fakeDriver{
		notes:            []*store.Note{{ID: 1, Content: "note", CreatedTs: windowTs}},
		createSummaryErr: errors.New("disk full"),
	}
	llmService := &fakeLLM{response: "generated summary"}
	generator := NewStandupGenerator(newTestStore(driver), llmService, nil, "test-model")

	result, err := generator.Generate(context.Background(), "2024-01-02")
	require.NoError(t, err, "persistence is best-effort")

	assert.Equal(t, "generated summary", result.Summary)
	assert.True(t, result.Generated)
	assert.Nil(t, result.Saved)
}
