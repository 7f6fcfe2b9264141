package models

import (
	"math"
	"time"
)

// PriceField identifies one of the condition/grade price buckets on a snapshot.
type PriceField string

const (
	FieldUngraded PriceField = "ungraded"
	FieldPSA10    PriceField = "psa_10"
	FieldGrade9   PriceField = "grade_9"
	FieldGrade8   PriceField = "grade_8"
	FieldBGS10    PriceField = "bgs_10"
	FieldCGC10    PriceField = "cgc_10"
	FieldSGC10    PriceField = "sgc_10"
)

// AllPriceFields returns the price buckets in display order.
func AllPriceFields() []PriceField {
	return []PriceField{
		FieldUngraded,
		FieldPSA10,
		FieldGrade9,
		FieldGrade8,
		FieldBGS10,
		FieldCGC10,
		FieldSGC10,
	}
}

// PriceSnapshot is one immutable point-in-time price record for a card.
// Prices are integer cents; rows are never updated after insert.
type PriceSnapshot struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CardID        int       `json:"card_id" gorm:"not null;index:idx_snapshots_card_time"`
	UngradedPrice int64     `json:"ungraded_price" gorm:"default:0"`
	PSA10Price    int64     `json:"psa_10_price" gorm:"default:0"`
	Grade9Price   int64     `json:"grade_9_price" gorm:"default:0"`
	Grade8Price   int64     `json:"grade_8_price" gorm:"default:0"`
	BGS10Price    int64     `json:"bgs_10_price" gorm:"default:0"`
	CGC10Price    int64     `json:"cgc_10_price" gorm:"default:0"`
	SGC10Price    int64     `json:"sgc_10_price" gorm:"default:0"`
	SalesVolume   int       `json:"sales_volume" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"index:idx_snapshots_card_time"`
}

// PriceFor returns the cent value of the requested bucket. Unknown fields
// return 0, same as a missing price.
func (s *PriceSnapshot) PriceFor(field PriceField) int64 {
	switch field {
	case FieldUngraded:
		return s.UngradedPrice
	case FieldPSA10:
		return s.PSA10Price
	case FieldGrade9:
		return s.Grade9Price
	case FieldGrade8:
		return s.Grade8Price
	case FieldBGS10:
		return s.BGS10Price
	case FieldCGC10:
		return s.CGC10Price
	case FieldSGC10:
		return s.SGC10Price
	default:
		return 0
	}
}

// TrendPercent computes the percentage change of a price bucket across a
// snapshot window ordered most-recent-first: latest is the first element,
// oldest is the last. Positive means the price increased since the oldest
// sample. Returns ok=false when fewer than two snapshots exist or the oldest
// value is zero.
func TrendPercent(history []PriceSnapshot, field PriceField) (float64, bool) {
	if len(history) < 2 {
		return 0, false
	}

	oldest := history[len(history)-1].PriceFor(field)
	latest := history[0].PriceFor(field)

	if oldest == 0 {
		return 0, false
	}

	change := (float64(latest-oldest) / float64(oldest)) * 100
	return math.Round(change*100) / 100, true
}
