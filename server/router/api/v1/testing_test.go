package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/standnotes/ai/llm"
	"github.com/hrygo/standnotes/internal/profile"
	"github.com/hrygo/standnotes/store"
)

// fakeDriver is an in-memory store.Driver for handler tests.
type fakeDriver struct {
	notes     []*store.Note
	summaries []*store.Summary

	listNotesErr     error
	createNoteErr    error
	createSummaryErr error

	lastFindNote   *store.FindNote
	updatedNotes   []*store.UpdateNote
	deletedNoteIDs []int32

	updatedSummaries  []*store.UpdateSummary
	deletedSummaryIDs []int32
	listNoteCallCount int
}

func (d *fakeDriver) GetDB() *sql.DB                    { return nil }
func (d *fakeDriver) Close() error                      { return nil }
func (d *fakeDriver) Migrate(ctx context.Context) error { return nil }

func (d *fakeDriver) CreateNote(ctx context.Context, create *store.Note) (*store.Note, error) {
	if d.createNoteErr != nil {
		return nil, d.createNoteErr
	}
	create.ID = int32(len(d.notes) + 1)
	create.CreatedTs = time.Now().Unix()
	d.notes = append(d.notes, create)
	return create, nil
}

func (d *fakeDriver) ListNotes(ctx context.Context, find *store.FindNote) ([]*store.Note, error) {
	d.listNoteCallCount++
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
	if find.OrderByCreatedTsDesc {
		sort.Slice(list, func(i, j int) bool { return list[i].CreatedTs > list[j].CreatedTs })
	}
	return list, nil
}

func (d *fakeDriver) UpdateNote(ctx context.Context, update *store.UpdateNote) error {
	// Zero matched rows is indistinguishable from success, like the real drivers.
	d.updatedNotes = append(d.updatedNotes, update)
	return nil
}

func (d *fakeDriver) DeleteNote(ctx context.Context, delete *store.DeleteNote) error {
	d.deletedNoteIDs = append(d.deletedNoteIDs, delete.ID)
	return nil
}

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
	d.updatedSummaries = append(d.updatedSummaries, update)
	return nil
}

func (d *fakeDriver) DeleteSummary(ctx context.Context, delete *store.DeleteSummary) error {
	d.deletedSummaryIDs = append(d.deletedSummaryIDs, delete.ID)
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

// newTestServer wires the API service onto a fresh echo instance.
func newTestServer(driver store.Driver, llmService llm.Service) *echo.Echo {
	instanceProfile := &profile.Profile{Mode: "dev", LLMModel: "test-model"}
	storeInstance := store.New(driver, instanceProfile)
	service := NewAPIV1Service(instanceProfile, storeInstance, llmService, nil)

	echoServer := echo.New()
	service.RegisterRoutes(echoServer)
	return echoServer
}

func doRequest(t *testing.T, echoServer *echo.Echo, method, target, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	echoServer.ServeHTTP(rec, req)

	resp := rec.Result()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func decodeJSON[T any](t *testing.T, payload []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(payload, &out))
	return out
}
