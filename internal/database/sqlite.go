package database

import (
	"log"

	"github.com/codyseavey/sportscard-tracker/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database at dbPath and migrates the schema.
// The returned handle is passed to NewRepository; nothing holds it globally.
func Open(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connected successfully")

	// Auto-migrate the schema
	err = db.AutoMigrate(&models.Card{}, &models.PriceSnapshot{}, &models.InventoryItem{})
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}
