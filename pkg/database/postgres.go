package database

import (
	"log"

	"github.com/eventflow/eventflow/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	return db
}

// Migrate creates the schema plus the constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.Event{},
		&models.EventOrganizer{},
		&models.TicketType{},
		&models.Transaction{},
		&models.Ticket{},
		&models.Attendee{},
		&models.Review{},
		&models.Refund{},
		&models.Announcement{},
	)
	if err != nil {
		return err
	}

	// One review per user per event; the unique index is the authoritative
	// guard, the service-level existence check is just the friendly path.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_review_user_event
		ON reviews (event_id, user_id)
	`)

	// Sold can never escape its bounds even through a stray manual update.
	if db.Dialector.Name() == "postgres" {
		db.Exec(`
			ALTER TABLE ticket_types
			ADD CONSTRAINT chk_ticket_type_sold
			CHECK (sold >= 0 AND sold <= quantity)
		`)
	}

	return nil
}
