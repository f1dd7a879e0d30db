package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/standnotes/store"
)

type noteResponse struct {
	ID        int32  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type createNoteRequest struct {
	Content string `json:"content"`
}

type updateNoteRequest struct {
	Content string `json:"content"`
}

type dayNotesResponse struct {
	Date  string          `json:"date"`
	Notes []*noteResponse `json:"notes"`
	Count int             `json:"count"`
}

func convertNote(note *store.Note) *noteResponse {
	return &noteResponse{
		ID:        note.ID,
		Content:   note.Content,
		CreatedAt: time.Unix(note.CreatedTs, 0).UTC().Format(time.RFC3339),
	}
}

func convertNotes(notes []*store.Note) []*noteResponse {
	list := make([]*noteResponse, len(notes))
	for i, note := range notes {
		list[i] = convertNote(note)
	}
	return list
}

// ListNotes returns every note in store order.
func (s *APIV1Service) ListNotes(c echo.Context) error {
	notes, err := s.Store.ListNotes(c.Request().Context(), &store.FindNote{})
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusOK, convertNotes(notes))
}

// CreateNote creates a note. Content presence is not validated locally;
// a missing field passes through to the store as empty content.
func (s *APIV1Service) CreateNote(c echo.Context) error {
	request := &createNoteRequest{}
	if err := c.Bind(request); err != nil {
		return upstreamError(c, err)
	}

	note, err := s.Store.CreateNote(c.Request().Context(), &store.Note{Content: request.Content})
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusCreated, convertNote(note))
}

// UpdateNote overwrites the content of a note. A non-existent id is not
// an error; the response is 204 either way.
func (s *APIV1Service) UpdateNote(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return upstreamError(c, err)
	}

	request := &updateNoteRequest{}
	if err := c.Bind(request); err != nil {
		return upstreamError(c, err)
	}

	if err := s.Store.UpdateNote(c.Request().Context(), &store.UpdateNote{
		ID:      int32(id),
		Content: request.Content,
	}); err != nil {
		return upstreamError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteNote deletes a note. A non-existent id is not an error.
func (s *APIV1Service) DeleteNote(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return upstreamError(c, err)
	}

	if err := s.Store.DeleteNote(c.Request().Context(), &store.DeleteNote{ID: int32(id)}); err != nil {
		return upstreamError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTodayNotes lists notes created on the current UTC calendar day.
func (s *APIV1Service) ListTodayNotes(c echo.Context) error {
	return s.listNotesForDay(c, time.Now().UTC())
}

// ListYesterdayNotes lists notes created on the previous UTC calendar day.
func (s *APIV1Service) ListYesterdayNotes(c echo.Context) error {
	return s.listNotesForDay(c, time.Now().UTC().AddDate(0, 0, -1))
}

func (s *APIV1Service) listNotesForDay(c echo.Context, day time.Time) error {
	date := day.Format("2006-01-02")
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).Unix()
	// The window ends at 23:59:59 exclusive, leaving the final second of
	// the day out. Intentional: callers depend on the historical window.
	dayEnd := dayStart + 24*60*60 - 1

	notes, err := s.Store.ListNotes(c.Request().Context(), &store.FindNote{
		CreatedTsAfter:       &dayStart,
		CreatedTsBefore:      &dayEnd,
		OrderByCreatedTsDesc: true,
	})
	if err != nil {
		return upstreamError(c, err)
	}

	return c.JSON(http.StatusOK, &dayNotesResponse{
		Date:  date,
		Notes: convertNotes(notes),
		Count: len(notes),
	})
}
