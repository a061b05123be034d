package database

import (
	"log"
	"strings"

	"marketplace/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the cgo-free "sqlite" database/sql driver that the
	// gorm sqlite config below opens by name.
	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the schema for every table the app owns.
// Repositories declare their own table names and indexes on the
// models; status history stays append-only at the application level.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Business{},
		&domain.Product{},
		&domain.Review{},
		&domain.ReviewHelpfulVote{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.OrderStatusEntry{},
		&domain.Notification{},
		&domain.Favorite{},
		&domain.Conversation{},
		&domain.ChatMessage{},
	)
}
