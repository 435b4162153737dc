package main

import (
	"context"
	"log"

	"admitportal-backend/internal/bootstrap"
	"admitportal-backend/internal/shared/config"
	"admitportal-backend/internal/shared/server"
	"admitportal-backend/internal/shared/storage/db"
	"admitportal-backend/internal/shared/telemetry"
)

func main() {
	telemetry.SetService("api")
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	if app.DB != nil {
		if err := db.RunMigrations(context.Background(), app.DB); err != nil {
			log.Fatalf("run migrations: %v", err)
		}
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
