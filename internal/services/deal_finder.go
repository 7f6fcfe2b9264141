package services

import (
	"sort"
	"strings"

	"github.com/codyseavey/sportscard-tracker/internal/metrics"
	"github.com/codyseavey/sportscard-tracker/internal/models"
)

// DealFinder scores buying opportunities from tracked price history.
//
// The bulk scan rests on two documented heuristics: a card whose price
// dropped past the trend threshold is treated as potentially undervalued,
// and the achievable purchase price is assumed to be a fixed fraction of the
// current market price. Neither compares against real listings.
type DealFinder struct {
	store Store
	calc  *Calculator

	minROIPercent   float64
	discountRate    float64
	trendThreshold  float64
	trendWindowDays int
}

// NewDealFinder creates a deal finder. minROIPercent is the default ROI
// floor, discountRate the assumed purchase fraction of market price (0.85 =
// buy at a 15% discount), trendThreshold the buy-signal ceiling on the
// percentage trend (-5 = price dropped at least 5%).
func NewDealFinder(store Store, calc *Calculator, minROIPercent, discountRate, trendThreshold float64, trendWindowDays int) *DealFinder {
	if minROIPercent <= 0 {
		minROIPercent = 15.0
	}
	if discountRate <= 0 || discountRate >= 1 {
		discountRate = 0.85
	}
	if trendThreshold >= 0 {
		trendThreshold = -5.0
	}
	if trendWindowDays <= 0 {
		trendWindowDays = 30
	}
	return &DealFinder{
		store:           store,
		calc:            calc,
		minROIPercent:   minROIPercent,
		discountRate:    discountRate,
		trendThreshold:  trendThreshold,
		trendWindowDays: trendWindowDays,
	}
}

// PriceRange is an inclusive market-price filter in cents.
type PriceRange struct {
	Min int64
	Max int64
}

// FindDealsOptions filters a bulk deal scan. The zero value scans everything
// with the configured ROI floor.
type FindDealsOptions struct {
	// Genre filters by substring match on the card's genre.
	Genre string
	// MinROI overrides the configured minimum ROI when non-nil.
	MinROI *float64
	// PriceRange restricts candidates by current ungraded market price.
	PriceRange *PriceRange
}

// FindDeals scans every tracked card for buying opportunities: the current
// ungraded price must be non-zero, the trend over the lookback window must
// be present and at or below the buy threshold, and the projected ROI at the
// assumed discounted purchase price must clear the effective minimum.
// Results are sorted by ROI descending; ties keep discovery order.
func (f *DealFinder) FindDeals(opts FindDealsOptions) ([]models.DealCandidate, error) {
	minROI := f.minROIPercent
	if opts.MinROI != nil {
		minROI = *opts.MinROI
	}

	cards, err := f.store.ListCards()
	if err != nil {
		return nil, err
	}

	var deals []models.DealCandidate
	for _, card := range cards {
		if opts.Genre != "" && !strings.Contains(strings.ToLower(card.Genre), strings.ToLower(opts.Genre)) {
			continue
		}

		snap, err := f.store.LatestSnapshot(card.ID)
		if err != nil {
			continue // no history yet
		}

		marketPrice := snap.UngradedPrice
		if marketPrice == 0 {
			continue
		}
		if opts.PriceRange != nil && (marketPrice < opts.PriceRange.Min || marketPrice > opts.PriceRange.Max) {
			continue
		}

		history, err := f.store.ListSnapshots(card.ID, f.trendWindowDays)
		if err != nil {
			continue
		}
		trend, ok := models.TrendPercent(history, models.FieldUngraded)
		if !ok || trend > f.trendThreshold {
			continue
		}

		buyPrice := int64(float64(marketPrice) * f.discountRate)
		profit := f.calc.ProjectedProfit(buyPrice, marketPrice)
		if profit.ROIPercent < minROI {
			continue
		}

		deals = append(deals, models.DealCandidate{
			CardID:            card.ID,
			ProductName:       card.ProductName,
			ConsoleName:       card.ConsoleName,
			Genre:             card.Genre,
			MarketPrice:       marketPrice,
			PotentialBuyPrice: buyPrice,
			PriceTrend:        trend,
			ExpectedProfit:    profit.NetProfit,
			ROIPercent:        profit.ROIPercent,
		})
	}

	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].ROIPercent > deals[j].ROIPercent
	})

	metrics.DealScansTotal.Inc()
	metrics.DealsFound.Observe(float64(len(deals)))

	return deals, nil
}

// AnalyzeDeal evaluates a specific asking price against market value. When a
// shipping cost is given it is folded into the purchase cost exactly once,
// so the ROI denominator carries the full outlay and shipping is not charged
// again in total costs. When omitted, the default shipping cost applies.
func (f *DealFinder) AnalyzeDeal(marketValue, askingPrice int64, shippingCost *int64) models.DealAnalysis {
	var profit models.ProfitBreakdown
	if shippingCost != nil {
		profit = f.calc.ProjectedProfitWithShipping(askingPrice+*shippingCost, marketValue, 0)
	} else {
		profit = f.calc.ProjectedProfit(askingPrice, marketValue)
	}

	discountPercent := 0.0
	if marketValue > 0 {
		discountPercent = round2(float64(marketValue-askingPrice) / float64(marketValue) * 100)
	}

	return models.DealAnalysis{
		MarketValue:     marketValue,
		AskingPrice:     askingPrice,
		DiscountPercent: discountPercent,
		Profit:          profit,
		Recommendation:  f.recommend(profit.ROIPercent),
		MeetsMinimumROI: profit.ROIPercent >= f.minROIPercent,
	}
}

// recommend maps an ROI to a recommendation relative to the minimum.
func (f *DealFinder) recommend(roiPercent float64) models.Recommendation {
	switch {
	case roiPercent >= f.minROIPercent*1.5:
		return models.RecommendStrongBuy
	case roiPercent >= f.minROIPercent:
		return models.RecommendBuy
	case roiPercent >= f.minROIPercent*0.5:
		return models.RecommendMaybe
	default:
		return models.RecommendPass
	}
}

// CompareConditions applies the discount heuristic to each price bucket of
// the card's latest snapshot independently. Buckets priced at zero are
// omitted.
func (f *DealFinder) CompareConditions(cardID int) (map[models.PriceField]models.ConditionProfit, error) {
	latest, err := f.store.LatestSnapshot(cardID)
	if err != nil {
		return nil, err
	}

	results := make(map[models.PriceField]models.ConditionProfit)
	for _, field := range models.AllPriceFields() {
		price := latest.PriceFor(field)
		if price <= 0 {
			continue
		}

		buyPrice := int64(float64(price) * f.discountRate)
		profit := f.calc.ProjectedProfit(buyPrice, price)

		results[field] = models.ConditionProfit{
			MarketValue:       price,
			PotentialBuyPrice: buyPrice,
			ExpectedProfit:    profit.NetProfit,
			ROIPercent:        profit.ROIPercent,
		}
	}

	return results, nil
}
