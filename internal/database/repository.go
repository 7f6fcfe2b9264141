package database

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codyseavey/sportscard-tracker/internal/models"
)

var (
	// ErrNotFound is returned when a card, snapshot, or inventory item does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadySold is returned when a sale is recorded against a lot that
	// already has one. The first sale's fields are left untouched.
	ErrAlreadySold = errors.New("inventory item already sold")
)

// Repository wraps the database handle with the query operations the rest of
// the application consumes. Components receive it via their constructors.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertCard inserts a card or refreshes its catalog fields and LastUpdated.
// FirstTracked is set on first insert and preserved on every re-track.
func (r *Repository) UpsertCard(card *models.Card) error {
	if card.FirstTracked.IsZero() {
		card.FirstTracked = time.Now()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_name", "console_name", "genre", "release_date", "last_updated"}),
	}).Create(card).Error
}

func (r *Repository) GetCard(id int) (*models.Card, error) {
	var card models.Card
	if err := r.db.First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *Repository) ListCards() ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.Order("last_updated DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// TouchCard refreshes a card's LastUpdated timestamp without changing
// anything else. Returns ErrNotFound for unknown cards.
func (r *Repository) TouchCard(id int) error {
	result := r.db.Model(&models.Card{}).Where("id = ?", id).
		UpdateColumn("last_updated", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendSnapshot inserts a new price snapshot. Snapshots are immutable;
// nothing ever updates an existing row.
func (r *Repository) AppendSnapshot(snap *models.PriceSnapshot) error {
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}
	return r.db.Create(snap).Error
}

// ListSnapshots returns a card's snapshots within the lookback window,
// most recent first.
func (r *Repository) ListSnapshots(cardID, days int) ([]models.PriceSnapshot, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	var snaps []models.PriceSnapshot
	err := r.db.Where("card_id = ? AND created_at >= ?", cardID, cutoff).
		Order("created_at DESC").
		Find(&snaps).Error
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

// LatestSnapshot returns the most recent snapshot for a card, or ErrNotFound
// when the card has no history.
func (r *Repository) LatestSnapshot(cardID int) (*models.PriceSnapshot, error) {
	var snap models.PriceSnapshot
	err := r.db.Where("card_id = ?", cardID).
		Order("created_at DESC").
		First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &snap, nil
}

// AddInventoryItem records a purchase lot. CostBasis defaults to
// purchase price x quantity when the caller leaves it zero.
func (r *Repository) AddInventoryItem(item *models.InventoryItem) error {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if item.CostBasis == 0 {
		item.CostBasis = item.PurchasePrice * int64(item.Quantity)
	}
	return r.db.Create(item).Error
}

func (r *Repository) GetInventoryItem(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListInventory returns purchase lots newest first. Pass sold to filter by
// sale status, or nil for everything.
func (r *Repository) ListInventory(sold *bool) ([]models.InventoryItem, error) {
	query := r.db.Order("purchase_date DESC")
	if sold != nil {
		query = query.Where("sold = ?", *sold)
	}

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// RecordSale marks a lot as sold and computes the realized net profit
// (sold price - cost basis - fees). The update is guarded on sold = false so
// a second sale attempt is rejected with ErrAlreadySold and the first sale's
// fields stay intact.
func (r *Repository) RecordSale(id uint, soldDate time.Time, soldPrice, fees int64) (*models.InventoryItem, error) {
	item, err := r.GetInventoryItem(id)
	if err != nil {
		return nil, err
	}
	if item.Sold {
		return nil, ErrAlreadySold
	}

	netProfit := soldPrice - item.CostBasis - fees

	result := r.db.Model(&models.InventoryItem{}).
		Where("id = ? AND sold = ?", id, false).
		Updates(map[string]interface{}{
			"sold":       true,
			"sold_date":  soldDate,
			"sold_price": soldPrice,
			"sales_fees": fees,
			"net_profit": netProfit,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadySold
	}

	return r.GetInventoryItem(id)
}

// MonthlyReport aggregates realized sales for one calendar month.
func (r *Repository) MonthlyReport(year, month int) (*models.MonthlyReport, error) {
	var report models.MonthlyReport
	err := r.db.Model(&models.InventoryItem{}).
		Select(`COUNT(*) as total_sales,
			COALESCE(SUM(sold_price), 0) as total_revenue,
			COALESCE(SUM(cost_basis), 0) as total_cost,
			COALESCE(SUM(sales_fees), 0) as total_fees,
			COALESCE(SUM(net_profit), 0) as total_profit`).
		Where("sold = ? AND strftime('%Y', sold_date) = ? AND strftime('%m', sold_date) = ?",
			true, strconv.Itoa(year), fmt.Sprintf("%02d", month)).
		Scan(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}
