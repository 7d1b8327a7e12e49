package service

import (
	"math"

	"github.com/rs/zerolog"

	"aureus/domain"
)

// Sanitize replaces every field that is non-finite or out of range with its
// clamp default. The result is always a valid input for Simulate.
func Sanitize(p domain.SimulationParams) domain.SimulationParams {
	out := domain.SimulationParams{
		InitialInvestment:    atLeast(p.InitialInvestment, 0),
		MonthlyInvestment:    atLeast(p.MonthlyInvestment, 0),
		MonthlyDiscountRate:  math.Min(atLeast(p.MonthlyDiscountRate, 0), MaxDiscountRate),
		DurationMonths:       p.DurationMonths,
		ExpectedAnnualGrowth: p.ExpectedAnnualGrowth,
		SpotPricePerOunce:    atLeast(p.SpotPricePerOunce, MinSpotPricePerOunce),
	}
	if out.DurationMonths < MinDurationMonths {
		out.DurationMonths = MinDurationMonths
	}
	if !isFinite(out.ExpectedAnnualGrowth) {
		out.ExpectedAnnualGrowth = 0
	}
	if out.ExpectedAnnualGrowth/12 < MinMonthlyGrowth {
		out.ExpectedAnnualGrowth = MinMonthlyGrowth * 12
	}
	return out
}

// Simulate projects the accumulation plan month by month. It never fails:
// invalid inputs are clamped by Sanitize first.
func Simulate(params domain.SimulationParams) domain.SimulationResult {
	p := Sanitize(params)

	monthlyGrowth := p.ExpectedAnnualGrowth / 12
	discountFactor := 1 - p.MonthlyDiscountRate

	monthlyData := make([]domain.MonthlyData, 0, p.DurationMonths+1)
	var cumulativeGold, cumulativeInvested float64

	for m := 0; m <= p.DurationMonths; m++ {
		// closed form from the base price, not compounded from the previous row
		marketPrice := p.SpotPricePerOunce * math.Pow(1+monthlyGrowth, float64(m))
		purchasePrice := marketPrice * discountFactor

		amountInvested := p.MonthlyInvestment
		if m == 0 {
			amountInvested = p.InitialInvestment
		}

		goldOuncesPurchased := amountInvested / purchasePrice
		cumulativeGold += goldOuncesPurchased
		cumulativeInvested += amountInvested

		portfolioValue := cumulativeGold * marketPrice

		monthlyData = append(monthlyData, domain.MonthlyData{
			Month:               m,
			MarketPrice:         marketPrice,
			PurchasePrice:       purchasePrice,
			AmountInvested:      amountInvested,
			GoldOuncesPurchased: goldOuncesPurchased,
			CumulativeGold:      cumulativeGold,
			CumulativeInvested:  cumulativeInvested,
			PortfolioValue:      portfolioValue,
			Profit:              portfolioValue - cumulativeInvested,
		})
	}

	final := monthlyData[len(monthlyData)-1]
	result := domain.SimulationResult{
		Params:              p,
		MonthlyData:         monthlyData,
		TotalInvested:       final.CumulativeInvested,
		TotalGoldOunces:     final.CumulativeGold,
		FinalPortfolioValue: final.PortfolioValue,
		AverageCostPerOunce: p.SpotPricePerOunce,
		TotalProfit:         final.Profit,
	}
	if result.TotalGoldOunces > 0 {
		result.AverageCostPerOunce = result.TotalInvested / result.TotalGoldOunces
	}
	if result.TotalInvested > 0 {
		result.ROI = result.TotalProfit / result.TotalInvested * 100
	}
	return result
}

type SimulationService struct {
	log zerolog.Logger
}

// NewSimulationService creates a SimulationService.
func NewSimulationService(log zerolog.Logger) *SimulationService {
	return &SimulationService{log: log.With().Str("component", "simulation").Logger()}
}

// Run recomputes the whole projection for params.
func (s *SimulationService) Run(params domain.SimulationParams) domain.SimulationResult {
	result := Simulate(params)

	s.log.Debug().
		Int("months", len(result.MonthlyData)).
		Float64("total_invested", result.TotalInvested).
		Float64("roi", result.ROI).
		Msg("simulation completed")

	return result
}

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// atLeast returns v, or min when v is non-finite or below min.
func atLeast(v, min float64) float64 {
	if !isFinite(v) || v < min {
		return min
	}
	return v
}
