package database

import (
	"log"

	"github.com/BlckXI/sistema-restaurante/model"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// SeedData makes sure the base menu categories exist on a fresh install.
func SeedData(db *gorm.DB) {
	categories := []model.Category{
		{Name: "Platos Fuertes"},
		{Name: "Bebidas"},
		{Name: "Postres"},
		{Name: "Extras"},
	}

	for _, category := range categories {
		category.Slug = slug.Make(category.Name)
		if err := db.Where(model.Category{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			log.Println("failed to seed category:", category.Name, "error:", err)
		}
	}
}
