package database

import (
	"fmt"
	"strconv"

	"github.com/BlckXI/sistema-restaurante/config"
	"github.com/BlckXI/sistema-restaurante/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the datastore client. Built once at startup and injected
// into the handlers; there is no package-level handle.
func ConnectDB() (*gorm.DB, error) {
	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database port: %w", err)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"),
		config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Dish{},
		&model.Order{},
		&model.OrderItem{},
		&model.Expense{},
		&model.ExtraIncome{},
		&model.DailyClose{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	SeedData(db)
	return db, nil
}
