package service

import (
	"testing"
	"time"

	"github.com/eventflow/eventflow/internal/models"
	"github.com/eventflow/eventflow/pkg/database"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens an in-memory sqlite database with the full schema so the
// service tests run against real transactions and real constraint errors.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	category := &models.Category{Name: "Music", Slug: "music"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

// seedEvent creates an approved event with one organizer and one ticket type
// whose sale window is open.
func seedEvent(t *testing.T, db *gorm.DB, status models.EventStatus, quantity, sold int) (*models.Event, *models.TicketType) {
	t.Helper()

	category := seedCategory(t, db)
	now := time.Now()

	event := &models.Event{
		Title:      "Summer Jazz Night",
		Slug:       "summer-jazz-night",
		CategoryID: category.ID,
		StartAt:    now.Add(48 * time.Hour),
		EndAt:      now.Add(52 * time.Hour),
		Capacity:   100,
		Status:     status,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}

	organizer := &models.EventOrganizer{EventID: event.ID, UserID: "org-1", Role: "owner"}
	if err := db.Create(organizer).Error; err != nil {
		t.Fatalf("seed organizer: %v", err)
	}

	tt := &models.TicketType{
		EventID:     event.ID,
		Name:        "General",
		Price:       decimal.NewFromInt(20),
		Quantity:    quantity,
		Sold:        sold,
		SaleStartAt: now.Add(-time.Hour),
		SaleEndAt:   now.Add(24 * time.Hour),
	}
	if err := db.Create(tt).Error; err != nil {
		t.Fatalf("seed ticket type: %v", err)
	}

	return event, tt
}
