package database

import (
	"log"

	"gorm.io/gorm"
)

// RunMigrations runs custom data migrations after the schema migration.
// Safe to run repeatedly; each step only touches rows that need it.
func RunMigrations(db *gorm.DB) error {
	if err := backfillCostBasis(db); err != nil {
		return err
	}
	if err := normalizeConditions(db); err != nil {
		return err
	}
	return nil
}

// backfillCostBasis fills cost_basis for legacy inventory rows that were
// imported with only a per-unit purchase price.
func backfillCostBasis(db *gorm.DB) error {
	if !db.Migrator().HasTable("inventory_items") {
		return nil
	}

	result := db.Exec(`
		UPDATE inventory_items
		SET cost_basis = purchase_price * quantity
		WHERE cost_basis IS NULL OR cost_basis = 0
	`)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("Backfilled cost_basis for %d inventory rows", result.RowsAffected)
	}
	return nil
}

// normalizeConditions gives legacy inventory rows a default condition label.
func normalizeConditions(db *gorm.DB) error {
	if !db.Migrator().HasTable("inventory_items") {
		return nil
	}

	result := db.Exec(`UPDATE inventory_items SET condition = 'Raw' WHERE condition IS NULL OR condition = ''`)
	if result.Error != nil {
		log.Printf("Warning: failed to normalize condition values: %v", result.Error)
	}
	return nil
}
