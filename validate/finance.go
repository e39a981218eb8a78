package validate

import (
	"github.com/BlckXI/sistema-restaurante/model"
	"github.com/BlckXI/sistema-restaurante/utils"
	"github.com/gofiber/fiber/v2"
)

// CreateEntry covers both expenses and extra incomes: a description plus a
// strictly positive amount.
func CreateEntry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateEntryInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Invalid request body", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, "Validation failed", err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}
