package main

import (
	"flag"

	"bounce.link/configs/configsdatabase"
	"bounce.link/configs/configslog"
	"bounce.link/database"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "run database migrations")
	seedFlag := flag.Bool("seed", false, "run database seeders")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	db := configsdatabase.GetDB()

	configslog.SLog.Info("Running database initialization...")
	database.Initialize(db, *migrateFlag, *seedFlag)
	configslog.SLog.Info("Database initialization finished.")
}
