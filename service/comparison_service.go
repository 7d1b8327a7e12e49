package service

import (
	"github.com/rs/zerolog"

	"aureus/domain"
)

type ComparisonService struct {
	log zerolog.Logger
}

func NewComparisonService(log zerolog.Logger) *ComparisonService {
	return &ComparisonService{log: log.With().Str("component", "comparison").Logger()}
}

// Compare contrasts the recurring plan with a lump sum of the same total
// capital bought at month 0 under the same discount, growth and horizon.
func (s *ComparisonService) Compare(params domain.SimulationParams) domain.StrategyComparison {
	plan := Sanitize(params)

	lump := plan
	lump.InitialInvestment = plan.InitialInvestment + plan.MonthlyInvestment*float64(plan.DurationMonths)
	lump.MonthlyInvestment = 0

	dca := Simulate(plan).Summary()
	lumpSum := Simulate(lump).Summary()

	// Usar la mejor estrategia como resultado principal, DCA en empate
	better := domain.StrategyDCA
	if roundTo2Decimals(lumpSum.TotalProfit) > roundTo2Decimals(dca.TotalProfit) {
		better = domain.StrategyLumpSum
	}

	comparison := domain.StrategyComparison{
		DCA:              dca,
		LumpSum:          lumpSum,
		Better:           better,
		ProfitDifference: roundTo2Decimals(dca.TotalProfit - lumpSum.TotalProfit),
	}

	s.log.Debug().
		Str("better", string(better)).
		Float64("profit_difference", comparison.ProfitDifference).
		Msg("strategies compared")

	return comparison
}
