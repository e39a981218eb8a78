package handler

import (
	"github.com/BlckXI/sistema-restaurante/model"
	"github.com/BlckXI/sistema-restaurante/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
)

func (h *Handler) GetCategories(c *fiber.Ctx) error {
	var categories []model.Category
	if err := h.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not list categories", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateCategoryInput)

	category := model.Category{
		Name: input.Name,
		Slug: slug.Make(input.Name),
	}
	if err := h.DB.Create(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Category already exists", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, category)
}

func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var dishes int64
	h.DB.Model(&model.Dish{}).Where("category_id = ?", id).Count(&dishes)
	if dishes > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Category still has dishes", nil)
	}

	res := h.DB.Delete(&model.Category{}, id)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Category not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Category deleted"})
}
