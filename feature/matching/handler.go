package matching

import (
	"crm-matcher/core/apperror"
	"crm-matcher/core/leads"
	"crm-matcher/core/logger"
	"crm-matcher/core/normalize"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for matching runs and cached summaries.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the matching routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/matching")
	group.Post("/run", h.HandleRun)
	group.Get("/summary", h.HandleSummary)
}

// RunRequest is the body of POST /matching/run.
type RunRequest struct {
	// FilterReference is a CRM URL, fragment, or bare filter id. Empty means
	// match against all organizations.
	FilterReference string `json:"filter_reference"`
	// Leads is the pasted block of company names for the comparison side.
	Leads string `json:"leads"`
	// Trim and CaseInsensitive control normalization; both default to true.
	Trim            *bool `json:"trim,omitempty"`
	CaseInsensitive *bool `json:"case_insensitive,omitempty"`
	ForceRefresh    bool  `json:"force_refresh"`
	Export          bool  `json:"export"`
}

func (r *RunRequest) options() normalize.Options {
	opts := normalize.DefaultOptions
	if r.Trim != nil {
		opts.Trim = *r.Trim
	}
	if r.CaseInsensitive != nil {
		opts.CaseInsensitive = *r.CaseInsensitive
	}
	return opts
}

// HandleRun executes a matching run.
// @Summary Run Matching
// @Description Reconciles pasted company names against a CRM filter's organizations (or all organizations) and returns the summary.
// @Tags matching
// @Accept json
// @Produce json
// @Param request body RunRequest true "Run parameters"
// @Success 200 {object} RunResult "Run result"
// @Failure 400 {object} map[string]string "Invalid Reference"
// @Failure 404 {object} map[string]string "Filter Not Found"
// @Failure 409 {object} map[string]string "Run In Progress"
// @Failure 502 {object} map[string]string "CRM Unavailable"
// @Router /matching/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RunRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var filterID *string
	if req.FilterReference != "" {
		id, _, err := h.service.ProcessFilterReference(c.Context(), req.FilterReference)
		if err != nil {
			l.Warn("Filter reference rejected", zap.String("reference", req.FilterReference), zap.Error(err))
			return errorResponse(c, err)
		}
		filterID = &id
	}

	input := RunInput{
		Lines:        leads.FromText(req.Leads),
		Options:      req.options(),
		ForceRefresh: req.ForceRefresh,
		Export:       req.Export,
	}

	result, err := h.service.RunMatching(c.Context(), filterID, input)
	if err != nil {
		l.Error("Matching run failed", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

// HandleSummary returns the latest cached summary for a filter identity.
// @Summary Latest Summary
// @Description Returns the most recently computed summary for the given filter id, or for all organizations when filter_id is omitted.
// @Tags matching
// @Produce json
// @Param filter_id query string false "Filter ID (omit for all organizations)"
// @Success 200 {object} models.MatchingSummary "Summary"
// @Failure 404 {object} map[string]string "No Summary Yet"
// @Router /matching/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var filterID *string
	if v := c.Query("filter_id"); v != "" {
		filterID = &v
	}

	summary, err := h.service.cache.GetLatest(filterID)
	if err != nil {
		l.Error("Summary lookup failed", zap.Error(err))
		return errorResponse(c, err)
	}
	if summary == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no summary computed yet"})
	}
	return c.JSON(summary)
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(apperror.HTTPStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  string(apperror.KindOf(err)),
	})
}
