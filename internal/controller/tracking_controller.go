package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bereschoon_backend/internal/model"
	"bereschoon_backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TrackingUpdateInput struct {
	OrderID            string  `json:"orderId"`
	Status             *string `json:"status"`
	CarrierName        *string `json:"carrierName"`
	CarrierTrackingURL *string `json:"carrierTrackingUrl"`
	TrackingCode       *string `json:"trackingCode"`
	Location           *string `json:"location"`
	Description        *string `json:"description"`
}

type TrackingController struct {
	Orders repository.OrderRepository
	Log    *zap.Logger
	Now    func() time.Time
}

func NewTrackingController(orders repository.OrderRepository, log *zap.Logger) *TrackingController {
	return &TrackingController{
		Orders: orders,
		Log:    log,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// UpdateTracking patches an order's shipping fields and appends a tracking
// history entry. Runs behind middleware.AdminOnly.
func (h *TrackingController) UpdateTracking(c *fiber.Ctx) error {
	ctx := c.UserContext()

	input := new(TrackingUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Ongeldige invoer",
		})
	}

	input.OrderID = strings.TrimSpace(input.OrderID)
	if input.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Order ID is verplicht",
		})
	}

	order, err := h.Orders.FindByID(ctx, input.OrderID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Order niet gevonden",
		})
	}
	if err != nil {
		h.Log.Error("order lookup failed", zap.String("order_id", input.OrderID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Er is een fout opgetreden",
		})
	}

	if fields := orderUpdateFields(order, input, h.now()); len(fields) > 0 {
		if err := h.Orders.Update(ctx, order.ID, fields); err != nil {
			h.Log.Error("order update error", zap.String("order_id", order.ID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Kon order niet updaten",
			})
		}
	}

	// The history append is a separate write; a failure here leaves the
	// order updated without a matching entry.
	if entry := historyEntry(order, input); entry != nil {
		if err := h.Orders.AddTrackingHistory(ctx, entry); err != nil {
			h.Log.Error("failed to add tracking history", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	updated, err := h.Orders.WithTracking(ctx, order.ID)
	if err != nil {
		h.Log.Error("failed to fetch updated order", zap.String("order_id", order.ID), zap.Error(err))
		updated = order
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tracking informatie succesvol bijgewerkt",
		"order":   updated,
	})
}

func (h *TrackingController) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now()
}

func orderUpdateFields(order *model.Order, input *TrackingUpdateInput, now time.Time) map[string]interface{} {
	fields := map[string]interface{}{}

	if status := deref(input.Status); status != "" {
		fields["status"] = status
		switch model.OrderStatus(status) {
		case model.OrderStatusShipped:
			if order.ShippedAt == nil {
				fields["shipped_at"] = now
			}
		case model.OrderStatusDelivered:
			if order.DeliveredAt == nil {
				fields["delivered_at"] = now
			}
		}
	}

	if input.CarrierName != nil {
		fields["carrier_name"] = deref(input.CarrierName)
	}
	if input.CarrierTrackingURL != nil {
		fields["carrier_tracking_url"] = deref(input.CarrierTrackingURL)
	}
	if input.TrackingCode != nil {
		fields["tracking_code"] = deref(input.TrackingCode)
	}
	return fields
}

func historyEntry(order *model.Order, input *TrackingUpdateInput) *model.OrderTrackingHistory {
	status := deref(input.Status)
	description := deref(input.Description)
	if status == "" && description == "" {
		return nil
	}

	if description == "" {
		description = DefaultTrackingDescription(status, deref(input.CarrierName))
	}
	if status == "" {
		status = order.Status
	}

	return &model.OrderTrackingHistory{
		OrderID:     order.ID,
		Status:      status,
		Location:    model.OptionalString(deref(input.Location)),
		Description: model.OptionalString(description),
		IsAutomated: false,
	}
}

// DefaultTrackingDescription is the customer facing text for a status change.
func DefaultTrackingDescription(status, carrier string) string {
	switch model.OrderStatus(status) {
	case model.OrderStatusProcessing:
		return "Je bestelling wordt verwerkt en klaargezet voor verzending"
	case model.OrderStatusShipped:
		if carrier != "" {
			return fmt.Sprintf("Je bestelling is verzonden via %s", carrier)
		}
		return "Je bestelling is verzonden"
	case model.OrderStatusDelivered:
		return "Je bestelling is succesvol afgeleverd"
	case model.OrderStatusCancelled:
		return "Bestelling is geannuleerd"
	default:
		return fmt.Sprintf("Status gewijzigd naar: %s", status)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
