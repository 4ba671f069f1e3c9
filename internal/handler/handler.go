// Package handler exposes the assessment pipeline over HTTP. It is the
// form-driven caller's entry point and the seam where rendering, export,
// persistence, and messaging collaborators are threaded together.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/lending/recovery-service/internal/domain"
	"github.com/lending/recovery-service/internal/pkg/logger"
	"github.com/lending/recovery-service/internal/report"
	"github.com/lending/recovery-service/internal/scoring"
	"github.com/lending/recovery-service/internal/storage/postgres"
)

// AssessmentStore persists assembled records.
type AssessmentStore interface {
	Save(ctx context.Context, record *domain.BorrowerRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BorrowerRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.BorrowerRecord, error)
	CountByCategory(ctx context.Context, since time.Time) (map[domain.RiskCategory]int, error)
}

// LeadStore persists contact leads.
type LeadStore interface {
	Save(ctx context.Context, lead *domain.ContactLead) error
}

// ResultCache keeps the latest record per caller session.
type ResultCache interface {
	SetLatest(ctx context.Context, sessionID string, record *domain.BorrowerRecord) error
	GetLatest(ctx context.Context, sessionID string) (*domain.BorrowerRecord, error)
}

// EventPublisher emits assessment completion events.
type EventPublisher interface {
	PublishAssessmentCompleted(record *domain.BorrowerRecord, borrowerID string) error
}

// Pinger is implemented by backends the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler wires the assessment engine to its collaborators.
type Handler struct {
	engine    *scoring.Engine
	store     AssessmentStore
	leads     LeadStore
	cache     ResultCache
	publisher EventPublisher
	probes    map[string]Pinger
	log       *logger.Logger
}

// New creates a handler. Cache and publisher are optional; a nil value
// disables that collaborator.
func New(engine *scoring.Engine, store AssessmentStore, leads LeadStore, cache ResultCache, publisher EventPublisher, log *logger.Logger) *Handler {
	return &Handler{
		engine:    engine,
		store:     store,
		leads:     leads,
		cache:     cache,
		publisher: publisher,
		probes:    make(map[string]Pinger),
		log:       log.Named("http_handler"),
	}
}

// AddProbe registers a backend for the readiness check.
func (h *Handler) AddProbe(name string, p Pinger) {
	h.probes[name] = p
}

// Register attaches all routes to the echo instance.
func (h *Handler) Register(e *echo.Echo, authSecret string) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)

	api := e.Group("/api/v1")
	if authSecret != "" {
		api.Use(JWTAuth(authSecret))
	}
	api.POST("/assessments", h.CreateAssessment)
	api.GET("/assessments", h.ListAssessments)
	api.GET("/assessments/:id", h.GetAssessment)
	api.GET("/assessments/latest", h.GetLatestAssessment)
	api.GET("/assessments/stats", h.AssessmentStats)
	api.POST("/contacts", h.CreateContact)
}

// assessmentResponse is what the rendering and export collaborators
// receive: the full record plus the generated report identifier.
type assessmentResponse struct {
	BorrowerID string                 `json:"borrower_id"`
	Record     *domain.BorrowerRecord `json:"record"`
}

// CreateAssessment runs the scoring pipeline for one borrower submission.
func (h *Handler) CreateAssessment(c echo.Context) error {
	var raw domain.RawBorrowerInput
	if err := c.Bind(&raw); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed borrower payload")
	}

	ctx := c.Request().Context()

	record, err := h.engine.Assess(ctx, &raw)
	if err != nil {
		return h.assessmentError(err)
	}

	artifact := report.NewArtifact(record)

	if err := h.store.Save(ctx, record); err != nil {
		// The assessment itself succeeded; losing the audit row is a
		// server fault, not a borrower-input fault.
		h.log.Error("persisting assessment failed", logger.ErrorField(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "assessment could not be stored")
	}

	if h.cache != nil {
		if err := h.cache.SetLatest(ctx, h.sessionID(c), record); err != nil {
			h.log.Warn("caching assessment failed", logger.ErrorField(err))
		}
	}

	if h.publisher != nil {
		if err := h.publisher.PublishAssessmentCompleted(record, artifact.BorrowerID); err != nil {
			h.log.Warn("publishing assessment event failed", logger.ErrorField(err))
		}
	}

	return c.JSON(http.StatusCreated, assessmentResponse{
		BorrowerID: artifact.BorrowerID,
		Record:     record,
	})
}

// GetAssessment fetches a stored record by assessment ID.
func (h *Handler) GetAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid assessment id")
	}

	record, err := h.store.GetByID(c.Request().Context(), id)
	if errors.Is(err, postgres.ErrAssessmentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
	}
	if err != nil {
		h.log.Error("fetching assessment failed", logger.ErrorField(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "assessment could not be loaded")
	}

	return c.JSON(http.StatusOK, record)
}

// listLimitDefault bounds the recent-assessments view.
const (
	listLimitDefault = 20
	listLimitMax     = 100
)

// ListAssessments returns the newest stored records for the recovery-team
// dashboard.
func (h *Handler) ListAssessments(c echo.Context) error {
	limit := listLimitDefault
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}
	if limit > listLimitMax {
		limit = listLimitMax
	}

	records, err := h.store.ListRecent(c.Request().Context(), limit)
	if err != nil {
		h.log.Error("listing assessments failed", logger.ErrorField(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "assessments could not be loaded")
	}
	if records == nil {
		records = []*domain.BorrowerRecord{}
	}

	return c.JSON(http.StatusOK, records)
}

// AssessmentStats returns per-category counts over a trailing window.
func (h *Handler) AssessmentStats(c echo.Context) error {
	window := 24 * time.Hour
	if raw := c.QueryParam("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "window must be a positive duration")
		}
		window = parsed
	}

	counts, err := h.store.CountByCategory(c.Request().Context(), time.Now().Add(-window))
	if err != nil {
		h.log.Error("counting assessments failed", logger.ErrorField(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "assessment stats could not be loaded")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"window": window.String(),
		"counts": counts,
	})
}

// GetLatestAssessment returns the caller session's most recent record so
// the dashboard can re-render without recomputation.
func (h *Handler) GetLatestAssessment(c echo.Context) error {
	if h.cache == nil {
		return echo.NewHTTPError(http.StatusNotFound, "result caching is disabled")
	}

	record, err := h.cache.GetLatest(c.Request().Context(), h.sessionID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "no assessment for this session yet")
	}

	return c.JSON(http.StatusOK, record)
}

// CreateContact captures a contact-form lead.
func (h *Handler) CreateContact(c echo.Context) error {
	var lead domain.ContactLead
	if err := c.Bind(&lead); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed contact payload")
	}

	if err := lead.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lead.ID = uuid.New()
	lead.SubmittedAt = time.Now().UTC()
	if lead.Subject == "" {
		lead.Subject = domain.SubjectGeneralInquiry
	}

	if err := h.leads.Save(c.Request().Context(), &lead); err != nil {
		h.log.Error("persisting contact lead failed", logger.ErrorField(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "message could not be stored")
	}

	h.log.LeadCaptured(lead.ID.String(), string(lead.Subject))
	return c.JSON(http.StatusCreated, map[string]string{"id": lead.ID.String(), "status": "received"})
}

// Health reports process liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready pings registered backends in parallel and reports readiness.
func (h *Handler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for name, probe := range h.probes {
		name, probe := name, probe
		g.Go(func() error {
			if err := probe.Ping(gctx); err != nil {
				h.log.Warn("readiness probe failed",
					logger.StringField("backend", name),
					logger.ErrorField(err),
				)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// assessmentError maps pipeline error kinds to HTTP status codes. Every
// message identifies the field or stage that failed.
func (h *Handler) assessmentError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrInvalidValue):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUndefinedRatio):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrModelUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable,
			"the risk model is currently unavailable; the assessment was not produced")
	default:
		h.log.Error("assessment failed", logger.ErrorField(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "assessment failed")
	}
}

// sessionID keys the result cache: explicit session header first,
// request ID as fallback.
func (h *Handler) sessionID(c echo.Context) string {
	if sid := c.Request().Header.Get("X-Session-ID"); sid != "" {
		return sid
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
