package inventory

import (
	"errors"
	"strconv"

	"inventory-sync/core/logger"
	"inventory-sync/feature/inventory/models"
	"inventory-sync/feature/inventory/syncer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IdempotencyHeader carries the client supplied event key.
const IdempotencyHeader = "Idempotency-Key"

// Handler handles HTTP requests for inventory synchronization.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = syncer.ReloadReport{}
	var _ = models.Item{}
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Post("/adjustments", h.HandleAdjustment)
	group.Post("/reload", h.HandleReload)
	group.Get("/items/:id", h.HandleGetItem)
}

// HandleAdjustment applies a stock adjustment.
// @Summary Apply Stock Adjustment
// @Description Decrements the item's stock by count and re-synchronizes the index. A repeated Idempotency-Key is rejected.
// @Tags inventory
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Event key for de-duplication"
// @Param adjustment body models.StockAdjustment true "Adjustment"
// @Success 200 {object} syncer.AdjustmentResult
// @Failure 400 {object} map[string]string "Invalid adjustment"
// @Failure 404 {object} syncer.AdjustmentResult "Item does not exist"
// @Failure 409 {object} map[string]string "Duplicate event"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/adjustments [post]
func (h *Handler) HandleAdjustment(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	adj, err := DecodeAdjustment(c.Body())
	if err != nil {
		l.Warn("Rejected adjustment", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	adj.Key = c.Get(IdempotencyHeader)

	res, err := h.service.Adjust(c.Context(), adj)
	if errors.Is(err, ErrDuplicateEvent) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "key": adj.Key})
	}
	if err != nil {
		l.Error("Adjustment failed", zap.Int64("item_id", adj.ItemID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !res.Found {
		return c.Status(fiber.StatusNotFound).JSON(res)
	}
	return c.JSON(res)
}

// HandleReload runs a full reload.
// @Summary Reload Index
// @Description Re-indexes every inventory record. Per-document failures are reported, not returned as errors.
// @Tags inventory
// @Produce json
// @Success 200 {object} syncer.ReloadReport
// @Router /inventory/reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering full reload")

	return c.JSON(h.service.Reload(c.Context()))
}

// HandleGetItem returns a stored inventory record.
// @Summary Get Item
// @Description Returns the inventory record as held by the record store.
// @Tags inventory
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} models.Item
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/items/{id} [get]
func (h *Handler) HandleGetItem(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	item, err := h.service.GetItem(c.Context(), id)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Item lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if item == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
	}
	return c.JSON(item)
}
