package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hrygo/standnotes/store"
)

type summaryResponse struct {
	ID          int32  `json:"id"`
	SummaryDate string `json:"summary_date"`
	Content     string `json:"content"`
	CreatedAt   string `json:"created_at"`
}

type upsertSummaryRequest struct {
	SummaryDate string `json:"summary_date"`
	Content     string `json:"content"`
}

type standupSummaryResponse struct {
	Summary      string           `json:"summary"`
	SavedSummary *summaryResponse `json:"savedSummary"`
}

func convertSummary(summary *store.Summary) *summaryResponse {
	return &summaryResponse{
		ID:          summary.ID,
		SummaryDate: summary.SummaryDate,
		Content:     summary.Content,
		CreatedAt:   time.Unix(summary.CreatedTs, 0).UTC().Format(time.RFC3339),
	}
}

// ListSummaries returns every summary in store order.
func (s *APIV1Service) ListSummaries(c echo.Context) error {
	summaries, err := s.Store.ListSummaries(c.Request().Context(), &store.FindSummary{})
	if err != nil {
		return upstreamError(c, err)
	}

	list := make([]*summaryResponse, len(summaries))
	for i, summary := range summaries {
		list[i] = convertSummary(summary)
	}
	return c.JSON(http.StatusOK, list)
}

// CreateSummary creates a manually written summary.
func (s *APIV1Service) CreateSummary(c echo.Context) error {
	request := &upsertSummaryRequest{}
	if err := c.Bind(request); err != nil {
		return upstreamError(c, err)
	}

	summary, err := s.Store.CreateSummary(c.Request().Context(), &store.Summary{
		SummaryDate: request.SummaryDate,
		Content:     request.Content,
	})
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(http.StatusCreated, convertSummary(summary))
}

// UpdateSummary overwrites both fields of a summary. A non-existent id is
// not an error; the response is 204 either way.
func (s *APIV1Service) UpdateSummary(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return upstreamError(c, err)
	}

	request := &upsertSummaryRequest{}
	if err := c.Bind(request); err != nil {
		return upstreamError(c, err)
	}

	if err := s.Store.UpdateSummary(c.Request().Context(), &store.UpdateSummary{
		ID:          int32(id),
		SummaryDate: request.SummaryDate,
		Content:     request.Content,
	}); err != nil {
		return upstreamError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteSummary deletes a summary. A non-existent id is not an error.
func (s *APIV1Service) DeleteSummary(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return upstreamError(c, err)
	}

	if err := s.Store.DeleteSummary(c.Request().Context(), &store.DeleteSummary{ID: int32(id)}); err != nil {
		return upstreamError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GenerateStandupSummary fetches the notes for the requested date, asks
// the LLM for a standup summary and persists it best-effort. The date
// query parameter is the only locally validated input.
func (s *APIV1Service) GenerateStandupSummary(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return errorJSON(c, http.StatusBadRequest, errors.New("date is required"))
	}

	if s.standupGenerator == nil {
		return upstreamError(c, errors.New("LLM service is not configured"))
	}

	ctx := c.Request().Context()
	if err := s.llmSemaphore.Acquire(ctx, 1); err != nil {
		return upstreamError(c, err)
	}
	defer s.llmSemaphore.Release(1)

	result, err := s.standupGenerator.Generate(ctx, date)
	if err != nil {
		return upstreamError(c, err)
	}

	if !result.Generated {
		return c.JSON(http.StatusOK, map[string]string{"summary": result.Summary})
	}

	response := &standupSummaryResponse{Summary: result.Summary}
	if result.Saved != nil {
		response.SavedSummary = convertSummary(result.Saved)
	}
	return c.JSON(http.StatusOK, response)
}
