package controller

import (
	"errors"
	"strings"

	"bereschoon_backend/internal/model"
	"bereschoon_backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TrackController serves the public "track my order" lookups.
type TrackController struct {
	Orders repository.OrderRepository
	Log    *zap.Logger
}

func NewTrackController(orders repository.OrderRepository, log *zap.Logger) *TrackController {
	return &TrackController{Orders: orders, Log: log}
}

func (h *TrackController) TrackByCode(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Voer een tracking code in",
		})
	}

	order, err := h.Orders.FindByTrackingCode(c.UserContext(), code)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Bestelling niet gevonden met deze tracking code",
		})
	}
	if err != nil {
		h.Log.Error("tracking lookup failed", zap.String("tracking_code", code), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Kon bestelling niet vinden",
		})
	}

	return h.respond(c, order)
}

func (h *TrackController) TrackByOrderNumber(c *fiber.Ctx) error {
	number := strings.ToUpper(strings.TrimSpace(c.Query("order_number")))
	postalCode := model.NormalizePostalCode(c.Query("postal_code"))
	if number == "" || postalCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Voer zowel ordernummer als postcode in",
		})
	}

	order, err := h.Orders.FindByOrderNumber(c.UserContext(), number)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Bestelling niet gevonden met dit ordernummer",
		})
	}
	if err != nil {
		h.Log.Error("order number lookup failed", zap.String("order_number", number), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Kon bestelling niet vinden",
		})
	}

	if order.PostalCode() != postalCode {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Postcode komt niet overeen met deze bestelling",
		})
	}

	return h.respond(c, order)
}

func (h *TrackController) respond(c *fiber.Ctx, order *model.Order) error {
	full, err := h.Orders.WithTracking(c.UserContext(), order.ID)
	if err != nil {
		h.Log.Error("error fetching tracking history", zap.String("order_id", order.ID), zap.Error(err))
		full = order
	}
	return c.JSON(fiber.Map{
		"order": full,
	})
}
