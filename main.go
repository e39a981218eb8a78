package main

import (
	"log"

	"github.com/BlckXI/sistema-restaurante/config"
	"github.com/BlckXI/sistema-restaurante/database"
	"github.com/BlckXI/sistema-restaurante/handler"
	"github.com/BlckXI/sistema-restaurante/helper"
	"github.com/BlckXI/sistema-restaurante/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.Default("CORS_ORIGINS", "*"),
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Authorization, Accept",
	}))

	db, err := database.ConnectDB()
	if err != nil {
		log.Fatal(err)
	}

	// Business day: fixed UTC offset plus roll-over hour. Defaults match a
	// UTC-6 deployment whose register day starts at midnight.
	rule := helper.NewDayRule(
		config.Int("BUSINESS_TZ_OFFSET_HOURS", -6),
		config.Int("BUSINESS_DAY_START_HOUR", 0),
	)

	hub := handler.NewHub(config.Default("REDIS_ADDR", "localhost:6379"))
	go hub.Run()

	if config.Config("AUTO_CLOSE") == "true" {
		helper.StartAutoCloseScheduler(db, rule)
		defer helper.StopAutoCloseScheduler()
	}

	h := handler.New(db, hub, rule)
	router.SetupRoutes(app, h)

	log.Fatal(app.Listen(":" + config.Default("PORT", "8002")))
}
