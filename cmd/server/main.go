package main

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/rosenook/internal/config"
	"github.com/example/rosenook/internal/database"
	"github.com/example/rosenook/internal/routes"
	"github.com/example/rosenook/internal/services"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName:      "Rosenook Backend",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Static("/uploads", cfg.UploadDir)

	routes.Register(app, db, cfg)

	cleanup := services.NewTokenCleanup(db)
	if err := cleanup.Start(); err != nil {
		log.Printf("token cleanup scheduler failed to start: %v", err)
	}
	defer cleanup.Stop()

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

// errorHandler converts every error into the JSON envelope {"error": string}.
// Unexpected errors are logged and reported as a generic 500.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
