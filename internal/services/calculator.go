package services

import (
	"fmt"
	"math"

	"github.com/codyseavey/sportscard-tracker/internal/models"
)

// Default fee constants, matching the marketplace's published rates.
const (
	DefaultFeePercent     = 13.0
	DefaultTransactionFee = 30  // cents
	DefaultShippingCost   = 500 // cents
	DefaultMinMarginPct   = 10.0
)

// Calculator performs fee, profit, and ROI arithmetic. All monetary inputs
// and outputs are integer cents; floating point is used only for the final
// percentage values.
type Calculator struct {
	feePercent      float64
	transactionFee  int64
	defaultShipping int64
}

// NewCalculator creates a calculator with the given fee configuration.
// Zero or negative values fall back to the defaults.
func NewCalculator(feePercent float64, transactionFeeCents, defaultShippingCents int64) *Calculator {
	if feePercent <= 0 {
		feePercent = DefaultFeePercent
	}
	if transactionFeeCents <= 0 {
		transactionFeeCents = DefaultTransactionFee
	}
	if defaultShippingCents < 0 {
		defaultShippingCents = DefaultShippingCost
	}
	return &Calculator{
		feePercent:      feePercent,
		transactionFee:  transactionFeeCents,
		defaultShipping: defaultShippingCents,
	}
}

// MarketplaceFees returns the total selling fees for a sale price:
// floor(price x fee rate) plus the fixed per-transaction fee. The result is
// never below the fixed fee.
func (c *Calculator) MarketplaceFees(salePrice int64) int64 {
	finalValueFee := int64(float64(salePrice) * c.feePercent / 100)
	return finalValueFee + c.transactionFee
}

// DefaultShipping returns the configured default shipping cost in cents.
func (c *Calculator) DefaultShipping() int64 {
	return c.defaultShipping
}

// ProjectedProfit estimates the outcome of buying at purchasePrice and
// selling at marketValue, using the default shipping cost.
func (c *Calculator) ProjectedProfit(purchasePrice, marketValue int64) models.ProfitBreakdown {
	return c.ProjectedProfitWithShipping(purchasePrice, marketValue, c.defaultShipping)
}

// ProjectedProfitWithShipping is ProjectedProfit with an explicit shipping cost.
func (c *Calculator) ProjectedProfitWithShipping(purchasePrice, marketValue, shippingCost int64) models.ProfitBreakdown {
	fees := c.MarketplaceFees(marketValue)
	return c.breakdown(purchasePrice, marketValue, shippingCost, fees)
}

// RealizedProfit computes the actual outcome of a completed sale, with fees
// supplied by the marketplace rather than estimated, using default shipping.
func (c *Calculator) RealizedProfit(purchasePrice, soldPrice, actualFees int64) models.ProfitBreakdown {
	return c.RealizedProfitWithShipping(purchasePrice, soldPrice, actualFees, c.defaultShipping)
}

// RealizedProfitWithShipping is RealizedProfit with an explicit shipping cost.
func (c *Calculator) RealizedProfitWithShipping(purchasePrice, soldPrice, actualFees, shippingCost int64) models.ProfitBreakdown {
	return c.breakdown(purchasePrice, soldPrice, shippingCost, actualFees)
}

func (c *Calculator) breakdown(purchasePrice, salePrice, shippingCost, fees int64) models.ProfitBreakdown {
	grossProfit := salePrice - purchasePrice
	totalCosts := fees + shippingCost
	netProfit := salePrice - purchasePrice - totalCosts

	roiPercent := 0.0
	if purchasePrice > 0 {
		roiPercent = round2(float64(netProfit) / float64(purchasePrice) * 100)
	}

	return models.ProfitBreakdown{
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
		ShippingCost:  shippingCost,
		Fees:          fees,
		GrossProfit:   grossProfit,
		TotalCosts:    totalCosts,
		NetProfit:     netProfit,
		ROIPercent:    roiPercent,
	}
}

// IsProfitable reports whether buying at purchasePrice and selling at
// marketValue clears the minimum margin after fees and default shipping.
func (c *Calculator) IsProfitable(purchasePrice, marketValue int64, minMarginPercent float64) bool {
	return c.ProjectedProfit(purchasePrice, marketValue).ROIPercent >= minMarginPercent
}

// FormatMoney renders cents as a two-decimal dollar string, e.g. "$12.34".
func FormatMoney(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// round2 rounds to two decimal places. Used only for display percentages;
// stored monetary values stay in integer cents.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
