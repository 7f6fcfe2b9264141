package models

// ProfitBreakdown is the arithmetic result shared by projected and realized
// profit calculations. SalePrice is the expected market value for projected
// calculations and the actual sale price for realized ones. All monetary
// fields are cents; ROIPercent is rounded to two decimals.
type ProfitBreakdown struct {
	PurchasePrice int64   `json:"purchase_price"`
	SalePrice     int64   `json:"sale_price"`
	ShippingCost  int64   `json:"shipping_cost"`
	Fees          int64   `json:"fees"`
	GrossProfit   int64   `json:"gross_profit"`
	TotalCosts    int64   `json:"total_costs"`
	NetProfit     int64   `json:"net_profit"`
	ROIPercent    float64 `json:"roi_percent"`
}

// Recommendation labels a deal analysis by ROI relative to the minimum.
type Recommendation string

const (
	RecommendStrongBuy Recommendation = "STRONG BUY"
	RecommendBuy       Recommendation = "BUY"
	RecommendMaybe     Recommendation = "MAYBE"
	RecommendPass      Recommendation = "PASS"
)

// DealCandidate is a scored buying opportunity from a bulk deal scan.
// Derived on every query, never persisted.
type DealCandidate struct {
	CardID            int     `json:"card_id"`
	ProductName       string  `json:"product_name"`
	ConsoleName       string  `json:"console_name"`
	Genre             string  `json:"genre"`
	MarketPrice       int64   `json:"market_price"`
	PotentialBuyPrice int64   `json:"potential_buy_price"`
	PriceTrend        float64 `json:"price_trend"`
	ExpectedProfit    int64   `json:"expected_profit"`
	ROIPercent        float64 `json:"roi_percent"`
}

// DealAnalysis is the result of analyzing one asking price against market.
type DealAnalysis struct {
	MarketValue     int64           `json:"market_value"`
	AskingPrice     int64           `json:"asking_price"`
	DiscountPercent float64         `json:"discount_percent"`
	Profit          ProfitBreakdown `json:"profit_calculation"`
	Recommendation  Recommendation  `json:"recommendation"`
	MeetsMinimumROI bool            `json:"meets_minimum_roi"`
}

// ConditionProfit is the projected outcome for one price bucket.
type ConditionProfit struct {
	MarketValue       int64   `json:"market_value"`
	PotentialBuyPrice int64   `json:"potential_buy_price"`
	ExpectedProfit    int64   `json:"expected_profit"`
	ROIPercent        float64 `json:"roi_percent"`
}

// PriceChange reports a card whose trend exceeded the significance threshold.
type PriceChange struct {
	CardID       int     `json:"card_id"`
	ProductName  string  `json:"product_name"`
	ConsoleName  string  `json:"console_name"`
	TrendPercent float64 `json:"trend_percent"`
	LatestPrice  int64   `json:"latest_price"`
}

// AnalyzeDealRequest is the caller payload for a point deal analysis.
// ShippingCost is optional; when omitted the default shipping cost applies.
type AnalyzeDealRequest struct {
	MarketValue  int64  `json:"market_value" binding:"required"`
	AskingPrice  int64  `json:"asking_price" binding:"required"`
	ShippingCost *int64 `json:"shipping_cost"`
}

// CalculateProfitRequest is the caller payload for an ad-hoc profit calculation.
type CalculateProfitRequest struct {
	PurchasePrice int64  `json:"purchase_price" binding:"required"`
	MarketValue   int64  `json:"market_value" binding:"required"`
	ShippingCost  *int64 `json:"shipping_cost"`
}
