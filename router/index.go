package router

import (
	"github.com/BlckXI/sistema-restaurante/handler"
	"github.com/BlckXI/sistema-restaurante/validate"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Restaurant server running")
	})

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	v1.Get("/menu", h.GetMenu)

	categories := v1.Group("/categories")
	categories.Get("/", h.GetCategories)
	categories.Post("/", validate.CreateCategory(), h.CreateCategory)
	categories.Delete("/:categoryId", validate.GetById("categoryId"), h.DeleteCategory)

	dishes := v1.Group("/dishes")
	dishes.Get("/", h.GetDishes)
	dishes.Post("/", validate.CreateDish(), h.CreateDish)
	dishes.Put("/:dishId", validate.GetById("dishId"), validate.UpdateDish(), h.UpdateDish)
	dishes.Delete("/:dishId", validate.GetById("dishId"), h.DeleteDish)

	orders := v1.Group("/orders")
	orders.Post("/", validate.CreateOrder(), h.CreateOrder)
	orders.Get("/", h.GetOrdersToday)
	orders.Get("/pending", h.GetPendingOrders)
	orders.Patch("/:orderId/ready", validate.GetById("orderId"), h.MarkOrderReady)
	orders.Patch("/:orderId/deliver", validate.GetById("orderId"), h.MarkOrderDelivered)
	orders.Patch("/:orderId/void", validate.GetById("orderId"), h.VoidOrder)

	rider := v1.Group("/rider")
	rider.Get("/queue", h.GetRiderQueue)
	rider.Get("/history", h.GetRiderHistory)

	expenses := v1.Group("/expenses")
	expenses.Get("/", h.GetExpensesToday)
	expenses.Post("/", validate.CreateEntry(), h.CreateExpense)
	expenses.Delete("/:entryId", validate.GetById("entryId"), h.DeleteExpense)

	incomes := v1.Group("/extra-incomes")
	incomes.Get("/", h.GetExtraIncomesToday)
	incomes.Post("/", validate.CreateEntry(), h.CreateExtraIncome)
	incomes.Delete("/:entryId", validate.GetById("entryId"), h.DeleteExtraIncome)

	reports := v1.Group("/reports")
	reports.Get("/today", h.GetReportToday)
	reports.Post("/close", h.CloseDay)
	reports.Get("/:date", h.GetReportByDate)

	app.Get("/ws/events", websocket.New(h.Hub.Serve))
}
