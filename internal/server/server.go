// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server provides the HTTP API over the record store, the decision
// ledger and the journal.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/pdiddy/project-match/internal/admin"
	"github.com/pdiddy/project-match/internal/graph"
	"github.com/pdiddy/project-match/internal/journal"
	"github.com/pdiddy/project-match/internal/ledger"
	"github.com/pdiddy/project-match/internal/metrics"
	"github.com/pdiddy/project-match/internal/profile"
	"github.com/pdiddy/project-match/internal/store"
	errs "github.com/pdiddy/project-match/pkg/errors"
	"github.com/pdiddy/project-match/pkg/types"
)

// Server provides HTTP endpoints for project-match.
type Server struct {
	echo    *echo.Echo
	store   *store.Store
	ledger  *ledger.Ledger
	journal *journal.Journal
	logger  *zap.Logger
	config  types.Config
}

// NewServer creates a new HTTP server.
func NewServer(s *store.Store, l *ledger.Ledger, j *journal.Journal, logger *zap.Logger, cfg types.Config) (*Server, error) {
	if s == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if l == nil || j == nil {
		return nil, fmt.Errorf("ledger and journal are required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return nil
		}
	})

	srv := &Server{
		echo:    e,
		store:   s,
		ledger:  l,
		journal: j,
		logger:  logger,
		config:  cfg,
	}
	srv.registerRoutes()
	return srv, nil
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := s.echo.Group("/api")
	api.POST("/profile", s.handleProfile)
	api.GET("/admin", s.handleAdmin)
	api.GET("/graph", s.handleGraph)
	api.POST("/decision", s.handleDecision)
	api.GET("/announcements", s.handleListAnnouncements)
	api.POST("/announcements", s.handleAnnounce)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ProfileRequest is the request body for POST /api/profile.
type ProfileRequest struct {
	Name string `json:"name"`
}

// DecisionResponse is the response body for POST /api/decision.
type DecisionResponse struct {
	Status   string         `json:"status"`
	Decision types.Decision `json:"decision"`
}

// ErrorResponse is returned for rejected input.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleProfile composes the profile view and records the access.
func (s *Server) handleProfile(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid profile request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required", Field: "name"})
	}

	resp := profile.Compose(s.store, req.Name, profile.Options{
		PhotoPath: s.config.Data.PhotoPath,
		Logger:    s.logger,
	})

	if err := s.journal.RecordAccess(c.Request().Context(), req.Name, journal.ActionProfileView); err != nil {
		s.logger.Warn("access not recorded", zap.Error(err))
	}
	return c.JSON(http.StatusOK, resp)
}

// AdminUser is the access-log user recorded for admin summary views.
const AdminUser = "admin"

// handleAdmin returns the summary, then records the access so the view
// does not include itself.
func (s *Server) handleAdmin(c echo.Context) error {
	summary := admin.Summarize(s.store, admin.Options{PhotoPath: s.config.Data.PhotoPath})

	if err := s.journal.RecordAccess(c.Request().Context(), AdminUser, journal.ActionAdminView); err != nil {
		s.logger.Warn("access not recorded", zap.Error(err))
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) handleGraph(c echo.Context) error {
	g := graph.Build(s.store, c.QueryParam("name"), graph.Options{PhotoPath: s.config.Data.PhotoPath})
	return c.JSON(http.StatusOK, g)
}

func (s *Server) handleDecision(c echo.Context) error {
	var in types.DecisionInput
	if err := c.Bind(&in); err != nil {
		s.logger.Warn("invalid decision request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	d, err := s.ledger.Upsert(c.Request().Context(), in)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, DecisionResponse{Status: "success", Decision: d})
}

func (s *Server) handleListAnnouncements(c echo.Context) error {
	entries := s.store.Entries(types.CollectionAnnouncements)
	if entries == nil {
		entries = []types.Entry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) handleAnnounce(c echo.Context) error {
	var entry types.Entry
	if err := c.Bind(&entry); err != nil {
		s.logger.Warn("invalid announcement", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	saved, err := s.journal.Append(c.Request().Context(), types.CollectionAnnouncements, entry)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// fail maps a component error to a response. Only validation failures are
// the caller's fault.
func (s *Server) fail(c echo.Context, err error) error {
	var verr *errs.ValidationError
	if errs.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Field: verr.Field})
	}
	s.logger.Error("request failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
