// Package server bootstraps the HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/standnotes/ai/llm"
	"github.com/hrygo/standnotes/internal/metrics"
	"github.com/hrygo/standnotes/internal/profile"
	"github.com/hrygo/standnotes/internal/version"
	apiv1 "github.com/hrygo/standnotes/server/router/api/v1"
	"github.com/hrygo/standnotes/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiV1      *apiv1.APIV1Service
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	echoServer := echo.New()
	echoServer.Debug = profile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	exporter := metrics.NewExporter(metrics.DefaultConfig())

	echoServer.Use(middleware.CORS())
	echoServer.Use(middleware.Recover())
	echoServer.Use(requestMetricsMiddleware(exporter))

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: echoServer,
	}

	var llmService llm.Service
	if profile.IsLLMEnabled() {
		var err error
		llmService, err = llm.NewService(&llm.Config{
			Provider: profile.LLMProvider,
			Model:    profile.LLMModel,
			APIKey:   profile.LLMAPIKey,
			BaseURL:  profile.LLMBaseURL,
			Timeout:  profile.LLMTimeout,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("LLM service initialized",
			"provider", profile.LLMProvider,
			"model", profile.LLMModel,
		)
		// Warmup the LLM connection asynchronously to reduce first-request
		// latency. Best-effort: warmup failures don't affect startup.
		go llmService.Warmup(ctx)
	} else {
		slog.Warn("LLM API key not configured, standup summary generation is disabled")
	}

	s.apiV1 = apiv1.NewAPIV1Service(profile, store, llmService, exporter)
	s.apiV1.RegisterRoutes(echoServer)

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version.GetCurrentVersion(profile.Mode),
		})
	})
	echoServer.GET("/metrics", echo.WrapHandler(exporter.Handler()))

	return s, nil
}

func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	return s.echoServer.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}

	slog.Info("server stopped")
}

// requestMetricsMiddleware records per-route request counts and latency.
// The route template is used as the path label to keep cardinality bounded.
func requestMetricsMiddleware(exporter *metrics.Exporter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if httpError, ok := err.(*echo.HTTPError); ok {
					status = httpError.Code
				}
			}
			exporter.RecordHTTPRequest(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
				time.Since(start),
			)
			return err
		}
	}
}
