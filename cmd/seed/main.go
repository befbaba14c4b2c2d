package main

import (
	"context"
	"log"

	"bouncer/internal/config"
	"bouncer/internal/db"
	"bouncer/internal/model"
	"bouncer/internal/repository"
	"bouncer/internal/seed"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	// Connect to database
	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Profile{}, &model.ScoringOutcome{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	profileRepo := repository.NewProfileRepository(gormDB)
	ctx := context.Background()

	profiles := seed.Profiles()
	log.Printf("Seeding %d profiles into database...", len(profiles))
	for _, profile := range profiles {
		profile := profile
		if err := profileRepo.Upsert(ctx, &profile); err != nil {
			log.Fatalf("Failed to seed profile %s: %v", profile.ID, err)
		}
	}

	log.Printf("Seed completed successfully! %d profiles upserted.", len(profiles))
}
