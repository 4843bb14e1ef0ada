package main

import (
	"os"

	"bounce.link/configs/configsdatabase"
	"bounce.link/configs/configslog"
	"bounce.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	app := fiber.New(fiber.Config{
		AppName: "bounce.link",
	})

	routes.SetupRoutes(app)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8000"
	}

	configslog.SLog.Infof("bounce.link listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		configslog.Log.Fatal("Server could not be started", zap.Error(err))
	}
}
