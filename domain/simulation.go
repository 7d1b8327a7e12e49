package domain

import (
	"fmt"
	"math"
)

// SimulationParams are the inputs of one projection run.
type SimulationParams struct {
	InitialInvestment    float64 `json:"initialInvestment"`
	MonthlyInvestment    float64 `json:"monthlyInvestment"`
	MonthlyDiscountRate  float64 `json:"monthlyDiscountRate"` // 2% expressed as 0.02
	DurationMonths       int     `json:"durationMonths"`
	ExpectedAnnualGrowth float64 `json:"expectedAnnualGrowth"`
	SpotPricePerOunce    float64 `json:"spotPricePerOunce"`
}

// DefaultSimulationParams returns the plan shown to a new user.
func DefaultSimulationParams() SimulationParams {
	return SimulationParams{
		InitialInvestment:    1000,
		MonthlyInvestment:    1000,
		MonthlyDiscountRate:  0.02,
		DurationMonths:       36,
		ExpectedAnnualGrowth: 0.08,
		SpotPricePerOunce:    2100,
	}
}

// SpotPrice returns the dual-unit view of the canonical per-ounce price.
func (p SimulationParams) SpotPrice() SpotPrice {
	return NewSpotPrice(p.SpotPricePerOunce)
}

type MonthlyData struct {
	Month               int     `json:"month"`
	MarketPrice         float64 `json:"marketPrice"`
	PurchasePrice       float64 `json:"purchasePrice"`
	AmountInvested      float64 `json:"amountInvested"`
	GoldOuncesPurchased float64 `json:"goldOuncesPurchased"`
	CumulativeGold      float64 `json:"cumulativeGold"`
	CumulativeInvested  float64 `json:"cumulativeInvested"`
	PortfolioValue      float64 `json:"portfolioValue"`
	Profit              float64 `json:"profit"`
}

// Label is the row caption used by tables.
func (d MonthlyData) Label() string {
	if d.Month == 0 {
		return "Initial"
	}
	return fmt.Sprintf("Month %d", d.Month)
}

type SimulationResult struct {
	Params              SimulationParams `json:"params"` // after clamping
	MonthlyData         []MonthlyData    `json:"monthlyData"`
	TotalInvested       float64          `json:"totalInvested"`
	TotalGoldOunces     float64          `json:"totalGoldOunces"`
	FinalPortfolioValue float64          `json:"finalPortfolioValue"`
	AverageCostPerOunce float64          `json:"averageCostPerOunce"`
	TotalProfit         float64          `json:"totalProfit"`
	ROI                 float64          `json:"roi"`
}

// SimulationSummary holds the aggregate figures of a run without its ledger.
type SimulationSummary struct {
	DurationMonths      int     `json:"durationMonths"`
	TotalInvested       float64 `json:"totalInvested"`
	TotalGoldOunces     float64 `json:"totalGoldOunces"`
	FinalPortfolioValue float64 `json:"finalPortfolioValue"`
	AverageCostPerOunce float64 `json:"averageCostPerOunce"`
	TotalProfit         float64 `json:"totalProfit"`
	ROI                 float64 `json:"roi"`
}

func (r SimulationResult) Summary() SimulationSummary {
	months := 0
	if n := len(r.MonthlyData); n > 0 {
		months = r.MonthlyData[n-1].Month
	}
	return SimulationSummary{
		DurationMonths:      months,
		TotalInvested:       r.TotalInvested,
		TotalGoldOunces:     r.TotalGoldOunces,
		FinalPortfolioValue: r.FinalPortfolioValue,
		AverageCostPerOunce: r.AverageCostPerOunce,
		TotalProfit:         r.TotalProfit,
		ROI:                 r.ROI,
	}
}

// Finite reports whether every aggregate is a finite number.
func (s SimulationSummary) Finite() bool {
	return finite(s.TotalInvested, s.TotalGoldOunces, s.FinalPortfolioValue,
		s.AverageCostPerOunce, s.TotalProfit, s.ROI)
}

// Finite reports whether the aggregates and every ledger row are finite.
// Extreme inputs can overflow float64 even though they are accepted.
func (r SimulationResult) Finite() bool {
	if !r.Summary().Finite() {
		return false
	}
	for _, d := range r.MonthlyData {
		if !finite(d.MarketPrice, d.PurchasePrice, d.AmountInvested, d.GoldOuncesPurchased,
			d.CumulativeGold, d.CumulativeInvested, d.PortfolioValue, d.Profit) {
			return false
		}
	}
	return true
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Milestones returns every step-th record plus the final one, in order.
// A step below 1 returns the whole ledger.
func (r SimulationResult) Milestones(step int) []MonthlyData {
	if step < 1 {
		return r.MonthlyData
	}
	rows := make([]MonthlyData, 0, len(r.MonthlyData)/step+2)
	last := len(r.MonthlyData) - 1
	for i, row := range r.MonthlyData {
		if i%step == 0 || i == last {
			rows = append(rows, row)
		}
	}
	return rows
}
