package handler

import (
	"github.com/BlckXI/sistema-restaurante/model"
	"github.com/BlckXI/sistema-restaurante/utils"
	"github.com/gofiber/fiber/v2"
)

// Expenses and extra incomes are append-only ledger entries: created and
// deleted, never edited.

func (h *Handler) GetExpensesToday(c *fiber.Ctx) error {
	dayStart, dayEnd := h.Rule.Window(h.Rule.Today())
	var expenses []model.Expense
	if err := h.DB.Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Order("id DESC").Find(&expenses).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not list expenses", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, expenses)
}

func (h *Handler) CreateExpense(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateEntryInput)
	expense := model.Expense{Description: input.Description, Amount: input.Amount}
	if err := h.DB.Create(&expense).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not record expense", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, expense)
}

func (h *Handler) DeleteExpense(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)
	res := h.DB.Delete(&model.Expense{}, id)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not delete expense", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Expense not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Expense deleted"})
}

func (h *Handler) GetExtraIncomesToday(c *fiber.Ctx) error {
	dayStart, dayEnd := h.Rule.Window(h.Rule.Today())
	var incomes []model.ExtraIncome
	if err := h.DB.Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Order("id DESC").Find(&incomes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not list extra incomes", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, incomes)
}

func (h *Handler) CreateExtraIncome(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateEntryInput)
	income := model.ExtraIncome{Description: input.Description, Amount: input.Amount}
	if err := h.DB.Create(&income).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not record extra income", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, income)
}

func (h *Handler) DeleteExtraIncome(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)
	res := h.DB.Delete(&model.ExtraIncome{}, id)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not delete extra income", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Extra income not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Extra income deleted"})
}
