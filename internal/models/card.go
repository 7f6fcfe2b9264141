package models

import (
	"time"
)

// Card is a tracked sports card from the SportsCardsPro catalog.
// The ID is the external catalog ID, so re-tracking the same card is an
// upsert that preserves FirstTracked.
type Card struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	ProductName  string    `json:"product_name" gorm:"not null;index"`
	ConsoleName  string    `json:"console_name"`
	Genre        string    `json:"genre" gorm:"index"`
	ReleaseDate  string    `json:"release_date"`
	FirstTracked time.Time `json:"first_tracked"`
	LastUpdated  time.Time `json:"last_updated" gorm:"index"`
}

// ProductRecord is a normalized product payload from the price source.
// All prices are in cents.
type ProductRecord struct {
	ID            int    `json:"id"`
	ProductName   string `json:"product_name"`
	ConsoleName   string `json:"console_name"`
	Genre         string `json:"genre"`
	ReleaseDate   string `json:"release_date"`
	UngradedPrice int64  `json:"ungraded_price"`
	PSA10Price    int64  `json:"psa_10_price"`
	Grade9Price   int64  `json:"grade_9_price"`
	Grade8Price   int64  `json:"grade_8_price"`
	BGS10Price    int64  `json:"bgs_10_price"`
	CGC10Price    int64  `json:"cgc_10_price"`
	SGC10Price    int64  `json:"sgc_10_price"`
	SalesVolume   int    `json:"sales_volume"`
}

// Card builds the tracked-card row for this record. FirstTracked is left
// zero; the repository fills it on first insert and preserves it afterwards.
func (r *ProductRecord) Card(now time.Time) Card {
	return Card{
		ID:          r.ID,
		ProductName: r.ProductName,
		ConsoleName: r.ConsoleName,
		Genre:       r.Genre,
		ReleaseDate: r.ReleaseDate,
		LastUpdated: now,
	}
}

// Snapshot builds an immutable price snapshot row for this record.
func (r *ProductRecord) Snapshot(now time.Time) PriceSnapshot {
	return PriceSnapshot{
		CardID:        r.ID,
		UngradedPrice: r.UngradedPrice,
		PSA10Price:    r.PSA10Price,
		Grade9Price:   r.Grade9Price,
		Grade8Price:   r.Grade8Price,
		BGS10Price:    r.BGS10Price,
		CGC10Price:    r.CGC10Price,
		SGC10Price:    r.SGC10Price,
		SalesVolume:   r.SalesVolume,
		CreatedAt:     now,
	}
}
