package main

import (
	"context"
	"log"
	"os"
	"time"

	"marketplace/internal/database"
	"marketplace/internal/repository"
)

// Deletes notifications older than the retention window. Meant to run
// from cron.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	retention := 90 * 24 * time.Hour
	if v := os.Getenv("NOTIFICATION_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("invalid NOTIFICATION_RETENTION: %v", err)
		}
		retention = d
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	repo := repository.NewNotificationRepository(db)
	deleted, err := repo.DeleteOlderThan(context.Background(), time.Now().UTC().Add(-retention))
	if err != nil {
		log.Fatalf("notification cleanup failed: %v", err)
	}

	log.Printf("notification cleanup completed: deleted=%d retention=%s", deleted, retention)
}
