package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/orchid/internal/config"
	"github.com/example/orchid/internal/database"
	"github.com/example/orchid/internal/location"
	"github.com/example/orchid/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	resolver, err := location.NewResolver(cfg.ProvinceDataPath)
	if err != nil {
		log.Fatalf("failed to load province dataset: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "Orchid Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, resolver)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
