package filters

import (
	"crm-matcher/core/apperror"
	"crm-matcher/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the filter registry.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the filter routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/filters")
	group.Get("/", h.HandleList)
	group.Post("/resolve", h.HandleResolve)
	group.Delete("/:id", h.HandleDelete)
}

// HandleList lists all synced filters.
// @Summary List Filters
// @Description Lists all synced filters, preceded by the implicit "All Organizations" entry.
// @Tags filters
// @Produce json
// @Success 200 {array} models.FilterListEntry "Filters"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /filters [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.List()
	if err != nil {
		l.Error("Filter listing failed", zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(entries)
}

// ResolveRequest is the body of POST /filters/resolve.
type ResolveRequest struct {
	Reference string `json:"reference"`
}

// ResolveResponse reports the extracted filter id and whether it is already synced.
type ResolveResponse struct {
	FilterID string `json:"filter_id"`
	Existing bool   `json:"existing"`
}

// HandleResolve extracts a filter id from a reference string.
// @Summary Resolve Filter Reference
// @Description Extracts the numeric filter id from a CRM URL or bare id and reports whether it is already synced.
// @Tags filters
// @Accept json
// @Produce json
// @Param request body ResolveRequest true "Reference to resolve"
// @Success 200 {object} ResolveResponse "Resolution"
// @Failure 400 {object} map[string]string "Invalid Reference"
// @Router /filters/resolve [post]
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	filterID, err := ResolveReference(req.Reference)
	if err != nil {
		l.Warn("Reference resolution failed", zap.String("reference", req.Reference))
		return errorResponse(c, err)
	}

	existing := true
	if _, err := h.service.Get(filterID); err != nil {
		if apperror.KindOf(err) != apperror.KindFilterNotFound {
			l.Error("Filter lookup failed", zap.Error(err))
			return errorResponse(c, err)
		}
		existing = false
	}

	return c.JSON(ResolveResponse{FilterID: filterID, Existing: existing})
}

// HandleDelete removes a synced filter and its membership.
// @Summary Delete Filter
// @Description Removes a synced filter and its stored membership. Cached summaries are retained.
// @Tags filters
// @Produce json
// @Param id path string true "Filter ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /filters/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	filterID := c.Params("id")

	if err := h.service.Delete(filterID); err != nil {
		l.Error("Filter deletion failed", zap.String("filter_id", filterID), zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted", "filter_id": filterID})
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(apperror.HTTPStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  string(apperror.KindOf(err)),
	})
}
