package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/codyseavey/sportscard-tracker/internal/models"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return NewRepository(db)
}

func TestUpsertCardPreservesFirstTracked(t *testing.T) {
	repo := openTestRepo(t)

	card := models.Card{ID: 77, ProductName: "Griffey Rookie", Genre: "Baseball", LastUpdated: time.Now()}
	if err := repo.UpsertCard(&card); err != nil {
		t.Fatalf("UpsertCard failed: %v", err)
	}

	first, err := repo.GetCard(77)
	if err != nil {
		t.Fatalf("GetCard failed: %v", err)
	}
	if first.FirstTracked.IsZero() {
		t.Fatal("FirstTracked not set on insert")
	}

	time.Sleep(10 * time.Millisecond)

	again := models.Card{ID: 77, ProductName: "Griffey Rookie UD", Genre: "Baseball", LastUpdated: time.Now()}
	if err := repo.UpsertCard(&again); err != nil {
		t.Fatalf("second UpsertCard failed: %v", err)
	}

	updated, err := repo.GetCard(77)
	if err != nil {
		t.Fatalf("GetCard failed: %v", err)
	}
	if updated.ProductName != "Griffey Rookie UD" {
		t.Errorf("ProductName = %q, want updated name", updated.ProductName)
	}
	if !updated.FirstTracked.Equal(first.FirstTracked) {
		t.Errorf("FirstTracked changed on upsert: %v -> %v", first.FirstTracked, updated.FirstTracked)
	}
	if !updated.LastUpdated.After(first.LastUpdated) {
		t.Error("LastUpdated not refreshed on upsert")
	}
}

func TestGetCardNotFound(t *testing.T) {
	repo := openTestRepo(t)

	if _, err := repo.GetCard(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCard error = %v, want ErrNotFound", err)
	}
}

func TestTouchCardUnknown(t *testing.T) {
	repo := openTestRepo(t)

	if err := repo.TouchCard(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("TouchCard error = %v, want ErrNotFound", err)
	}
}

func TestListSnapshotsWindow(t *testing.T) {
	repo := openTestRepo(t)

	card := models.Card{ID: 1, ProductName: "A", LastUpdated: time.Now()}
	if err := repo.UpsertCard(&card); err != nil {
		t.Fatalf("UpsertCard failed: %v", err)
	}

	now := time.Now()
	for _, snap := range []models.PriceSnapshot{
		{CardID: 1, UngradedPrice: 1000, CreatedAt: now.AddDate(0, 0, -40)},
		{CardID: 1, UngradedPrice: 1100, CreatedAt: now.AddDate(0, 0, -2)},
		{CardID: 1, UngradedPrice: 1200, CreatedAt: now},
	} {
		s := snap
		if err := repo.AppendSnapshot(&s); err != nil {
			t.Fatalf("AppendSnapshot failed: %v", err)
		}
	}

	snaps, err := repo.ListSnapshots(1, 30)
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2 inside the window", len(snaps))
	}
	if snaps[0].UngradedPrice != 1200 || snaps[1].UngradedPrice != 1100 {
		t.Errorf("snapshots not most-recent-first: %d, %d", snaps[0].UngradedPrice, snaps[1].UngradedPrice)
	}

	latest, err := repo.LatestSnapshot(1)
	if err != nil {
		t.Fatalf("LatestSnapshot failed: %v", err)
	}
	if latest.UngradedPrice != 1200 {
		t.Errorf("latest = %d, want 1200", latest.UngradedPrice)
	}
}

func TestLatestSnapshotNoHistory(t *testing.T) {
	repo := openTestRepo(t)

	if _, err := repo.LatestSnapshot(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestSnapshot error = %v, want ErrNotFound", err)
	}
}

func TestAddInventoryItemDefaults(t *testing.T) {
	repo := openTestRepo(t)

	item := models.InventoryItem{
		CardID:        1,
		PurchaseDate:  time.Now(),
		PurchasePrice: 2500,
		Quantity:      3,
	}
	if err := repo.AddInventoryItem(&item); err != nil {
		t.Fatalf("AddInventoryItem failed: %v", err)
	}
	if item.CostBasis != 7500 {
		t.Errorf("CostBasis = %d, want 7500 (price x quantity)", item.CostBasis)
	}

	single := models.InventoryItem{CardID: 1, PurchaseDate: time.Now(), PurchasePrice: 2500}
	if err := repo.AddInventoryItem(&single); err != nil {
		t.Fatalf("AddInventoryItem failed: %v", err)
	}
	if single.Quantity != 1 || single.CostBasis != 2500 {
		t.Errorf("defaults = quantity %d, cost basis %d, want 1 and 2500", single.Quantity, single.CostBasis)
	}
}

func TestRecordSale(t *testing.T) {
	repo := openTestRepo(t)

	item := models.InventoryItem{CardID: 1, PurchaseDate: time.Now(), PurchasePrice: 5000}
	if err := repo.AddInventoryItem(&item); err != nil {
		t.Fatalf("AddInventoryItem failed: %v", err)
	}

	soldDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	sold, err := repo.RecordSale(item.ID, soldDate, 10000, 1330)
	if err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}
	if !sold.Sold {
		t.Error("item not marked sold")
	}
	if sold.SoldPrice == nil || *sold.SoldPrice != 10000 {
		t.Errorf("SoldPrice = %v, want 10000", sold.SoldPrice)
	}
	if sold.NetProfit == nil || *sold.NetProfit != 3670 {
		t.Errorf("NetProfit = %v, want 3670 (10000 - 5000 - 1330)", sold.NetProfit)
	}
}

func TestRecordSaleTwiceRejected(t *testing.T) {
	repo := openTestRepo(t)

	item := models.InventoryItem{CardID: 1, PurchaseDate: time.Now(), PurchasePrice: 5000}
	if err := repo.AddInventoryItem(&item); err != nil {
		t.Fatalf("AddInventoryItem failed: %v", err)
	}

	firstDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if _, err := repo.RecordSale(item.ID, firstDate, 10000, 1330); err != nil {
		t.Fatalf("first RecordSale failed: %v", err)
	}

	if _, err := repo.RecordSale(item.ID, time.Now(), 99999, 0); !errors.Is(err, ErrAlreadySold) {
		t.Fatalf("second RecordSale error = %v, want ErrAlreadySold", err)
	}

	// The first sale's fields are untouched by the rejected attempt.
	current, err := repo.GetInventoryItem(item.ID)
	if err != nil {
		t.Fatalf("GetInventoryItem failed: %v", err)
	}
	if current.SoldPrice == nil || *current.SoldPrice != 10000 {
		t.Errorf("SoldPrice = %v, want 10000 from the first sale", current.SoldPrice)
	}
	if current.SalesFees == nil || *current.SalesFees != 1330 {
		t.Errorf("SalesFees = %v, want 1330 from the first sale", current.SalesFees)
	}
}

func TestRecordSaleUnknownItem(t *testing.T) {
	repo := openTestRepo(t)

	if _, err := repo.RecordSale(999, time.Now(), 10000, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("RecordSale error = %v, want ErrNotFound", err)
	}
}

func TestListInventorySoldFilter(t *testing.T) {
	repo := openTestRepo(t)

	a := models.InventoryItem{CardID: 1, PurchaseDate: time.Now().AddDate(0, 0, -2), PurchasePrice: 1000}
	b := models.InventoryItem{CardID: 2, PurchaseDate: time.Now(), PurchasePrice: 2000}
	for _, item := range []*models.InventoryItem{&a, &b} {
		if err := repo.AddInventoryItem(item); err != nil {
			t.Fatalf("AddInventoryItem failed: %v", err)
		}
	}
	if _, err := repo.RecordSale(a.ID, time.Now(), 3000, 100); err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}

	all, err := repo.ListInventory(nil)
	if err != nil {
		t.Fatalf("ListInventory failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d items, want 2", len(all))
	}
	if all[0].CardID != 2 {
		t.Error("inventory not ordered by purchase date descending")
	}

	soldOnly := true
	sold, err := repo.ListInventory(&soldOnly)
	if err != nil {
		t.Fatalf("ListInventory(sold) failed: %v", err)
	}
	if len(sold) != 1 || sold[0].ID != a.ID {
		t.Errorf("sold filter returned %+v, want only item %d", sold, a.ID)
	}

	unsold := false
	held, err := repo.ListInventory(&unsold)
	if err != nil {
		t.Fatalf("ListInventory(unsold) failed: %v", err)
	}
	if len(held) != 1 || held[0].ID != b.ID {
		t.Errorf("unsold filter returned %+v, want only item %d", held, b.ID)
	}
}

func TestMonthlyReport(t *testing.T) {
	repo := openTestRepo(t)

	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	items := []struct {
		price    int64
		soldOn   time.Time
		soldFor  int64
		withFees int64
	}{
		{5000, march, 10000, 1330},
		{2000, march.AddDate(0, 0, 5), 4000, 550},
		{1000, april, 3000, 420},
	}
	for _, row := range items {
		item := models.InventoryItem{CardID: 1, PurchaseDate: march.AddDate(0, -1, 0), PurchasePrice: row.price}
		if err := repo.AddInventoryItem(&item); err != nil {
			t.Fatalf("AddInventoryItem failed: %v", err)
		}
		if _, err := repo.RecordSale(item.ID, row.soldOn, row.soldFor, row.withFees); err != nil {
			t.Fatalf("RecordSale failed: %v", err)
		}
	}
	// An unsold lot must not count.
	held := models.InventoryItem{CardID: 1, PurchaseDate: march, PurchasePrice: 9999}
	if err := repo.AddInventoryItem(&held); err != nil {
		t.Fatalf("AddInventoryItem failed: %v", err)
	}

	report, err := repo.MonthlyReport(2026, 3)
	if err != nil {
		t.Fatalf("MonthlyReport failed: %v", err)
	}
	if report.TotalSales != 2 {
		t.Errorf("TotalSales = %d, want 2", report.TotalSales)
	}
	if report.TotalRevenue != 14000 {
		t.Errorf("TotalRevenue = %d, want 14000", report.TotalRevenue)
	}
	if report.TotalCost != 7000 {
		t.Errorf("TotalCost = %d, want 7000", report.TotalCost)
	}
	if report.TotalFees != 1880 {
		t.Errorf("TotalFees = %d, want 1880", report.TotalFees)
	}
	// Net: (10000-5000-1330) + (4000-2000-550) = 3670 + 1450 = 5120
	if report.TotalProfit != 5120 {
		t.Errorf("TotalProfit = %d, want 5120", report.TotalProfit)
	}

	empty, err := repo.MonthlyReport(2026, 5)
	if err != nil {
		t.Fatalf("MonthlyReport failed: %v", err)
	}
	if empty.TotalSales != 0 || empty.TotalRevenue != 0 {
		t.Errorf("empty month report = %+v, want zeros", empty)
	}
}

func TestRunMigrationsBackfill(t *testing.T) {
	repo := openTestRepo(t)

	// Simulate legacy rows imported without cost basis or condition.
	err := repo.db.Exec(`
		INSERT INTO inventory_items (card_id, purchase_date, purchase_price, condition, quantity, cost_basis, sold)
		VALUES (1, ?, 2500, '', 4, 0, false)
	`, time.Now()).Error
	if err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}

	if err := RunMigrations(repo.db); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	items, err := repo.ListInventory(nil)
	if err != nil {
		t.Fatalf("ListInventory failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].CostBasis != 10000 {
		t.Errorf("CostBasis = %d, want 10000 (backfilled price x quantity)", items[0].CostBasis)
	}
	if items[0].Condition != "Raw" {
		t.Errorf("Condition = %q, want Raw", items[0].Condition)
	}
}
