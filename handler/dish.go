package handler

import (
	"errors"

	"github.com/BlckXI/sistema-restaurante/helper"
	"github.com/BlckXI/sistema-restaurante/model"
	"github.com/BlckXI/sistema-restaurante/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetMenu returns every dish with its effective stock, the number the
// cashier screen greys out on. Variants report their parent's counter.
func (h *Handler) GetMenu(c *fiber.Ctx) error {
	var dishes []model.Dish
	if err := h.DB.Preload("Category").Order("category_id ASC, name ASC").Find(&dishes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not load menu", err)
	}
	helper.ApplyEffectiveStock(dishes)
	return utils.SuccessResponse(c, fiber.StatusOK, dishes)
}

// GetDishes is the inventory view: paginated raw rows, effective stock applied.
func (h *Handler) GetDishes(c *fiber.Ctx) error {
	filter := new(model.DishFilter)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	db := h.DB.Model(&model.Dish{})
	if filter.CategoryID != nil {
		db = db.Where("category_id = ?", *filter.CategoryID)
	}

	var total int64
	db.Count(&total)

	db = utils.ApplyPagination(db, filter.Limit, filter.Page)
	var dishes []model.Dish
	if err := db.Preload("Category").Order("id ASC").Find(&dishes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not list dishes", err)
	}

	// Variants report the shared counter even in the admin list; the
	// parentId field tells the UI which rows are linked.
	if filter.CategoryID == nil {
		helper.ApplyEffectiveStock(dishes)
	} else {
		var all []model.Dish
		h.DB.Select("id", "stock", "parent_id").Find(&all)
		owners := make(map[uint]int, len(all))
		for _, d := range all {
			if d.ParentID == nil {
				owners[d.ID] = d.Stock
			}
		}
		for i := range dishes {
			if p := dishes[i].ParentID; p != nil {
				if s, ok := owners[*p]; ok {
					dishes[i].Stock = s
				}
			}
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       dishes,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	})
}

func (h *Handler) CreateDish(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateDishInput)

	dish := model.Dish{
		Name:       input.Name,
		Price:      input.Price,
		Stock:      input.Stock,
		CategoryID: input.CategoryID,
		ParentID:   input.ParentID,
	}

	if err := h.DB.First(&model.Category{}, input.CategoryID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown category", err)
	}

	if dish.ParentID != nil {
		if err := h.checkParent(*dish.ParentID, 0); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		}
		// A variant never holds stock of its own.
		dish.Stock = 0
	}

	if err := h.DB.Create(&dish).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not create dish", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, dish)
}

func (h *Handler) UpdateDish(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)
	input := c.Locals("input").(model.UpdateDishInput)

	var dish model.Dish
	if err := h.DB.First(&dish, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Dish not found", err)
	}

	if input.Name != nil {
		dish.Name = *input.Name
	}
	if input.Price != nil {
		dish.Price = *input.Price
	}
	if input.CategoryID != nil {
		if err := h.DB.First(&model.Category{}, *input.CategoryID).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown category", err)
		}
		dish.CategoryID = *input.CategoryID
	}
	if input.ParentID != nil {
		if *input.ParentID == 0 {
			// Zero detaches the variant; it keeps its own counter again.
			dish.ParentID = nil
		} else {
			var children int64
			h.DB.Model(&model.Dish{}).Where("parent_id = ?", dish.ID).Count(&children)
			if children > 0 {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "A dish with variants cannot become a variant itself", nil)
			}
			if err := h.checkParent(*input.ParentID, dish.ID); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
			}
			dish.ParentID = input.ParentID
		}
	}
	if input.Stock != nil {
		dish.Stock = *input.Stock
	}
	if dish.ParentID != nil {
		dish.Stock = 0
	}

	if err := h.DB.Save(&dish).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not update dish", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, dish)
}

func (h *Handler) DeleteDish(c *fiber.Ctx) error {
	id := c.Locals("inputId").(int)

	var children int64
	h.DB.Model(&model.Dish{}).Where("parent_id = ?", id).Count(&children)
	if children > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Dish still has variants drawing from its stock", nil)
	}

	res := h.DB.Delete(&model.Dish{}, id)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not delete dish", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Dish not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Dish deleted"})
}

// checkParent enforces the one-hop rule: a parent must exist, must not be a
// variant itself, and a dish cannot be its own parent.
func (h *Handler) checkParent(parentID, selfID uint) error {
	if parentID == selfID && selfID != 0 {
		return errors.New("a dish cannot be its own parent")
	}
	var parent model.Dish
	if err := h.DB.First(&parent, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("parent dish does not exist")
		}
		return err
	}
	if parent.ParentID != nil {
		return errors.New("parent dish is itself a variant")
	}
	return nil
}
