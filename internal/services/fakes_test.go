package services

import (
	"context"
	"errors"
	"time"

	"github.com/codyseavey/sportscard-tracker/internal/database"
	"github.com/codyseavey/sportscard-tracker/internal/models"
)

// fakeStore is an in-memory Store for service tests. Snapshot histories are
// kept most-recent-first, matching the repository contract.
type fakeStore struct {
	cards     map[int]*models.Card
	snapshots map[int][]models.PriceSnapshot
	cardOrder []int

	upserts   int
	appends   int
	listErr   error
	appendErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cards:     make(map[int]*models.Card),
		snapshots: make(map[int][]models.PriceSnapshot),
	}
}

func (s *fakeStore) addCard(card models.Card, ungradedHistory ...int64) {
	s.cards[card.ID] = &card
	s.cardOrder = append(s.cardOrder, card.ID)
	now := time.Now()
	for i, price := range ungradedHistory {
		s.snapshots[card.ID] = append(s.snapshots[card.ID], models.PriceSnapshot{
			CardID:        card.ID,
			UngradedPrice: price,
			CreatedAt:     now.Add(-time.Duration(i) * 24 * time.Hour),
		})
	}
}

func (s *fakeStore) UpsertCard(card *models.Card) error {
	s.upserts++
	if existing, ok := s.cards[card.ID]; ok {
		card.FirstTracked = existing.FirstTracked
	} else {
		card.FirstTracked = time.Now()
		s.cardOrder = append(s.cardOrder, card.ID)
	}
	clone := *card
	s.cards[card.ID] = &clone
	return nil
}

func (s *fakeStore) GetCard(id int) (*models.Card, error) {
	card, ok := s.cards[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return card, nil
}

func (s *fakeStore) ListCards() ([]models.Card, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	cards := make([]models.Card, 0, len(s.cardOrder))
	for _, id := range s.cardOrder {
		cards = append(cards, *s.cards[id])
	}
	return cards, nil
}

func (s *fakeStore) TouchCard(id int) error {
	card, ok := s.cards[id]
	if !ok {
		return database.ErrNotFound
	}
	card.LastUpdated = time.Now()
	return nil
}

func (s *fakeStore) AppendSnapshot(snap *models.PriceSnapshot) error {
	s.appends++
	if s.appendErr != nil {
		return s.appendErr
	}
	s.snapshots[snap.CardID] = append([]models.PriceSnapshot{*snap}, s.snapshots[snap.CardID]...)
	return nil
}

func (s *fakeStore) ListSnapshots(cardID, days int) ([]models.PriceSnapshot, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var out []models.PriceSnapshot
	for _, snap := range s.snapshots[cardID] {
		if !snap.CreatedAt.Before(cutoff) {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (s *fakeStore) LatestSnapshot(cardID int) (*models.PriceSnapshot, error) {
	snaps := s.snapshots[cardID]
	if len(snaps) == 0 {
		return nil, database.ErrNotFound
	}
	snap := snaps[0]
	return &snap, nil
}

// fakeSource is an in-memory PriceSource.
type fakeSource struct {
	records map[int]models.ProductRecord
	err     error
	calls   int
}

var errSourceDown = &SourceError{Op: "product", Err: errors.New("connection refused")}

func (f *fakeSource) GetProduct(ctx context.Context, productID int) (*models.ProductRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.records[productID]
	if !ok {
		return nil, errSourceDown
	}
	return &record, nil
}

func (f *fakeSource) SearchProducts(ctx context.Context, query string, limit int) ([]models.ProductRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ProductRecord
	for _, record := range f.records {
		out = append(out, record)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
