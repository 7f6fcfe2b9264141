package models

import (
	"time"
)

// InventoryItem is one purchase lot. Sale fields are written exactly once
// when the sale is recorded; a second sale attempt is rejected.
type InventoryItem struct {
	ID            uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	CardID        int        `json:"card_id" gorm:"not null;index"`
	PurchaseDate  time.Time  `json:"purchase_date" gorm:"not null"`
	PurchasePrice int64      `json:"purchase_price" gorm:"not null"`
	Condition     string     `json:"condition" gorm:"not null;default:'Raw'"`
	Quantity      int        `json:"quantity" gorm:"default:1"`
	CostBasis     int64      `json:"cost_basis" gorm:"not null"`
	Notes         string     `json:"notes"`
	Sold          bool       `json:"sold" gorm:"default:false;index"`
	SoldDate      *time.Time `json:"sold_date"`
	SoldPrice     *int64     `json:"sold_price"`
	SalesFees     *int64     `json:"sales_fees"`
	NetProfit     *int64     `json:"net_profit"`
}

// MonthlyReport aggregates realized sales for one calendar month.
type MonthlyReport struct {
	TotalSales   int   `json:"total_sales"`
	TotalRevenue int64 `json:"total_revenue"`
	TotalCost    int64 `json:"total_cost"`
	TotalFees    int64 `json:"total_fees"`
	TotalProfit  int64 `json:"total_profit"`
}

type AddInventoryRequest struct {
	CardID        int    `json:"card_id" binding:"required"`
	PurchaseDate  string `json:"purchase_date" binding:"required"` // YYYY-MM-DD
	PurchasePrice int64  `json:"purchase_price" binding:"required"`
	Condition     string `json:"condition"`
	Quantity      int    `json:"quantity"`
	Notes         string `json:"notes"`
}

type RecordSaleRequest struct {
	SoldDate  string `json:"sold_date" binding:"required"` // YYYY-MM-DD
	SoldPrice int64  `json:"sold_price" binding:"required"`
	SalesFees int64  `json:"sales_fees"`
}
