package validate

import (
	"errors"
	"strconv"

	"github.com/BlckXI/sistema-restaurante/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetById parses a numeric route param and stashes it for the handler.
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Id must be a number", errors.New("params invalid"))
		}
		c.Locals("inputId", valueKey)
		return c.Next()
	}
}
