package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/metamingle/server/internal/config"
	"github.com/metamingle/server/internal/db"
)

func main() {
	_ = godotenv.Load()

	cfg := config.New()
	if cfg.App.ENV != "development" {
		log.Fatalf("refusing to seed: APP_ENV is %q", cfg.App.ENV)
	}

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	if err := db.SeedDemoData(database); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("Seeding completed.")
}
