package handler

import (
	"time"

	"github.com/BlckXI/sistema-restaurante/helper"
	"github.com/BlckXI/sistema-restaurante/utils"
	"github.com/gofiber/fiber/v2"
)

// GetReportToday is the cashier's live snapshot. Read-only and idempotent:
// both this endpoint and the close recompute from rows, so the numbers can
// never disagree.
func (h *Handler) GetReportToday(c *fiber.Ctx) error {
	rep, err := helper.FetchDailyReport(h.DB, h.Rule, h.Rule.Today())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not build daily report", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rep)
}

// GetReportByDate rebuilds the reconciliation for any past business date.
func (h *Handler) GetReportByDate(c *fiber.Ctx) error {
	date, err := time.ParseInLocation("2006-01-02", c.Params("date"), h.Rule.Location())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Date must be YYYY-MM-DD", err)
	}
	rep, err := helper.FetchDailyReport(h.DB, h.Rule, date)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not build daily report", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rep)
}

// CloseDay closes the current business day. The final amount is recomputed
// here, last caller wins if orders are still coming in.
func (h *Handler) CloseDay(c *fiber.Ctx) error {
	rep, err := helper.CloseDay(h.DB, h.Rule, h.Rule.Today())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not close the day", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":     "Day closed",
		"finalAmount": rep.CashOnHand,
		"report":      rep,
	})
}
