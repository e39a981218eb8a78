package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/BlckXI/sistema-restaurante/helper"
	"github.com/BlckXI/sistema-restaurante/model"
	"github.com/BlckXI/sistema-restaurante/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Advisory lock key serializing daily order numbering per process cluster.
const orderNumberLock = 874512

var (
	errAlreadyVoided = errors.New("order already voided")
	errBadTransition = errors.New("invalid status transition")
)

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateOrderInput)

	today := h.Rule.Today()
	dayStart, dayEnd := h.Rule.Window(today)

	var scheduled *time.Time
	if input.ScheduledAt != nil {
		// Validated as HH:MM; anchor it on today's business date.
		t, _ := time.Parse("15:04", *input.ScheduledAt)
		loc := h.Rule.Location()
		now := time.Now().In(loc)
		st := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc)
		scheduled = &st
	}

	order := model.Order{
		PublicCode:  "ORD-" + strings.ToUpper(uuid.New().String()[:8]),
		Customer:    input.Customer,
		Kind:        input.Kind,
		Address:     input.Address,
		Phone:       input.Phone,
		ScheduledAt: scheduled,
		Notes:       input.Notes,
		Status:      model.OrderPending,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// Serialize numbering so two simultaneous orders cannot share a
		// daily number.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", orderNumberLock).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&model.Order{}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
			Count(&count).Error; err != nil {
			return err
		}
		order.DailyNumber = int(count) + 1

		// Snapshot the lines from current dish rows.
		items := make([]model.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			var dish model.Dish
			if err := tx.First(&dish, line.DishID).Error; err != nil {
				return err
			}
			items = append(items, model.OrderItem{
				DishID: dish.ID,
				Name:   dish.Name,
				Price:  dish.Price,
				Qty:    line.Qty,
			})
		}
		order.Total = helper.OrderTotal(items, order.Kind)

		lines := make([]helper.StockLine, 0, len(items))
		for _, it := range items {
			lines = append(lines, helper.StockLine{DishID: it.DishID, Qty: it.Qty})
		}
		if err := helper.DebitStock(tx, lines); err != nil {
			return err
		}

		order.Items = items
		return tx.Create(&order).Error
	})

	if err != nil {
		var shortage *helper.ShortageError
		if errors.As(err, &shortage) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, shortage.Error(), nil)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown dish in order", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not create order", err)
	}

	h.Hub.Emit(EventOrderCreated, order)
	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

func (h *Handler) GetOrdersToday(c *fiber.Ctx) error {
	dayStart, dayEnd := h.Rule.Window(h.Rule.Today())
	var orders []model.Order
	if err := h.DB.Preload("Items").
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Order("id DESC").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not list orders", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetPendingOrders feeds the kitchen display, oldest first.
func (h *Handler) GetPendingOrders(c *fiber.Ctx) error {
	var orders []model.Order
	if err := h.DB.Preload("Items").
		Where("status = ?", model.OrderPending).
		Order("id ASC").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not list pending orders", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func (h *Handler) MarkOrderReady(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var order model.Order
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").First(&order, id).Error; err != nil {
			return err
		}
		if order.Status != model.OrderPending {
			return errBadTransition
		}
		order.Status = model.OrderReady
		return tx.Model(&order).Update("status", model.OrderReady).Error
	})
	if err != nil {
		return h.orderTransitionError(c, err, "Order must be pending to be marked ready")
	}

	h.Hub.Emit(EventOrderReady, order)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// MarkOrderDelivered is the rider's final hop, delivery orders only.
func (h *Handler) MarkOrderDelivered(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var order model.Order
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").First(&order, id).Error; err != nil {
			return err
		}
		if order.Status != model.OrderReady || order.Kind != model.KindDelivery {
			return errBadTransition
		}
		order.Status = model.OrderDelivered
		return tx.Model(&order).Update("status", model.OrderDelivered).Error
	})
	if err != nil {
		return h.orderTransitionError(c, err, "Only ready delivery orders can be delivered")
	}

	h.Hub.Emit(EventOrderDelivered, order)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// VoidOrder cancels an order and returns every line's quantity to its stock
// owner. Restoration and the status flip commit together or not at all.
func (h *Handler) VoidOrder(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var order model.Order
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").First(&order, id).Error; err != nil {
			return err
		}
		if order.Status == model.OrderVoided {
			return errAlreadyVoided
		}
		lines := make([]helper.StockLine, 0, len(order.Items))
		for _, it := range order.Items {
			lines = append(lines, helper.StockLine{DishID: it.DishID, Qty: it.Qty})
		}
		if err := helper.CreditStock(tx, lines); err != nil {
			return err
		}
		order.Status = model.OrderVoided
		return tx.Model(&order).Update("status", model.OrderVoided).Error
	})

	if err != nil {
		if errors.Is(err, errAlreadyVoided) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Order already voided", nil)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not void order", err)
	}

	h.Hub.Emit(EventOrderVoided, order)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetRiderQueue lists delivery orders the kitchen has finished.
func (h *Handler) GetRiderQueue(c *fiber.Ctx) error {
	var orders []model.Order
	if err := h.DB.Preload("Items").
		Where("status = ? AND kind = ?", model.OrderReady, model.KindDelivery).
		Order("id ASC").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not list rider queue", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// GetRiderHistory lists today's delivered orders, newest first.
func (h *Handler) GetRiderHistory(c *fiber.Ctx) error {
	dayStart, dayEnd := h.Rule.Window(h.Rule.Today())
	var orders []model.Order
	if err := h.DB.Preload("Items").
		Where("status = ? AND created_at >= ? AND created_at < ?", model.OrderDelivered, dayStart, dayEnd).
		Order("id DESC").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not list rider history", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func (h *Handler) orderTransitionError(c *fiber.Ctx, err error, conflictMsg string) error {
	if errors.Is(err, errBadTransition) {
		return utils.ErrorResponse(c, fiber.StatusConflict, conflictMsg, nil)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not update order", err)
}
