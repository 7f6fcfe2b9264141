package services

import (
	"context"

	"github.com/codyseavey/sportscard-tracker/internal/models"
)

// Store is the repository surface the tracking and deal services consume.
// database.Repository satisfies it; tests substitute fakes.
type Store interface {
	UpsertCard(card *models.Card) error
	GetCard(id int) (*models.Card, error)
	ListCards() ([]models.Card, error)
	TouchCard(id int) error
	AppendSnapshot(snap *models.PriceSnapshot) error
	ListSnapshots(cardID, days int) ([]models.PriceSnapshot, error)
	LatestSnapshot(cardID int) (*models.PriceSnapshot, error)
}

// PriceSource supplies normalized product records from the external pricing
// provider.
type PriceSource interface {
	GetProduct(ctx context.Context, productID int) (*models.ProductRecord, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]models.ProductRecord, error)
}
