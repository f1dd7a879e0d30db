package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	"github.com/hrygo/standnotes/ai"
	"github.com/hrygo/standnotes/ai/llm"
	"github.com/hrygo/standnotes/internal/metrics"
	"github.com/hrygo/standnotes/internal/profile"
	"github.com/hrygo/standnotes/store"
)

type APIV1Service struct {
	Profile    *profile.Profile
	Store      *store.Store
	LLMService llm.Service
	Metrics    *metrics.Exporter

	standupGenerator *ai.StandupGenerator
	llmSemaphore     *semaphore.Weighted
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, llmService llm.Service, exporter *metrics.Exporter) *APIV1Service {
	service := &APIV1Service{
		Profile:    profile,
		Store:      store,
		LLMService: llmService,
		Metrics:    exporter,
		// Limit to 3 concurrent summary generations
		llmSemaphore: semaphore.NewWeighted(3),
	}
	if llmService != nil {
		service.standupGenerator = ai.NewStandupGenerator(store, llmService, exporter, profile.LLMModel)
	}
	return service
}

// RegisterRoutes registers the REST routes with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	notesGroup := echoServer.Group("/notes")
	notesGroup.GET("", s.ListNotes)
	notesGroup.POST("", s.CreateNote)
	// Static routes take precedence over the :id param routes.
	notesGroup.GET("/today", s.ListTodayNotes)
	notesGroup.GET("/yesterday", s.ListYesterdayNotes)
	notesGroup.PUT("/:id", s.UpdateNote)
	notesGroup.DELETE("/:id", s.DeleteNote)

	summariesGroup := echoServer.Group("/summaries")
	summariesGroup.GET("", s.ListSummaries)
	summariesGroup.POST("", s.CreateSummary)
	summariesGroup.POST("/standup-summary", s.GenerateStandupSummary)
	summariesGroup.PUT("/:id", s.UpdateSummary)
	summariesGroup.DELETE("/:id", s.DeleteSummary)
}

// errorJSON writes the upstream or validation error as the uniform
// {error: message} body. Errors are mapped to a status exactly once, here
// at the handler edge.
func errorJSON(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

func upstreamError(c echo.Context, err error) error {
	return errorJSON(c, http.StatusInternalServerError, err)
}
