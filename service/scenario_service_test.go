package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aureus/domain"
)

func TestScenarioService_Compare_DefaultRates(t *testing.T) {
	svc := NewScenarioService(zerolog.Nop())
	params := domain.DefaultSimulationParams()
	params.ExpectedAnnualGrowth = 0.06

	outcomes, err := svc.Compare(params, nil)
	require.NoError(t, err)

	// five defaults plus the plan's own rate
	require.Len(t, outcomes, len(DefaultGrowthRates)+1)

	for i := 1; i < len(outcomes); i++ {
		assert.GreaterOrEqual(t, outcomes[i-1].Summary.ROI, outcomes[i].Summary.ROI)
	}
	assert.Equal(t, 0.12, outcomes[0].ExpectedAnnualGrowth)
	assert.Equal(t, "growth", outcomes[0].Name)

	last := outcomes[len(outcomes)-1]
	assert.Equal(t, -0.10, last.ExpectedAnnualGrowth)
	assert.Equal(t, "decline", last.Name)
	assert.Less(t, last.Summary.TotalProfit, 0.0)
}

func TestScenarioService_Compare_MatchesEngine(t *testing.T) {
	svc := NewScenarioService(zerolog.Nop())
	params := domain.DefaultSimulationParams()

	outcomes, err := svc.Compare(params, []float64{0, params.ExpectedAnnualGrowth, 0})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	for _, o := range outcomes {
		p := params
		p.ExpectedAnnualGrowth = o.ExpectedAnnualGrowth
		assert.Equal(t, Simulate(p).Summary(), o.Summary)
	}

	flat := outcomes[1]
	assert.Equal(t, "flat", flat.Name)
	assert.Equal(t, params.DurationMonths, flat.Summary.DurationMonths)
}

func TestScenarioService_Compare_TooMany(t *testing.T) {
	svc := NewScenarioService(zerolog.Nop())
	rates := make([]float64, MaxScenarios+1)
	for i := range rates {
		rates[i] = float64(i) / 100
	}

	_, err := svc.Compare(domain.DefaultSimulationParams(), rates)
	assert.ErrorIs(t, err, ErrTooManyScenarios)
}

func TestComparisonService_Compare(t *testing.T) {
	svc := NewComparisonService(zerolog.Nop())

	t.Run("rising market favours lump sum", func(t *testing.T) {
		params := domain.DefaultSimulationParams()
		cmp := svc.Compare(params)

		assert.Equal(t, cmp.DCA.TotalInvested, cmp.LumpSum.TotalInvested)
		assert.Equal(t, domain.StrategyLumpSum, cmp.Better)
		assert.Less(t, cmp.ProfitDifference, 0.0)
		assert.Equal(t, Simulate(params).Summary(), cmp.DCA)
	})

	t.Run("falling market favours dca", func(t *testing.T) {
		params := domain.DefaultSimulationParams()
		params.ExpectedAnnualGrowth = -0.15
		cmp := svc.Compare(params)

		assert.Equal(t, domain.StrategyDCA, cmp.Better)
		assert.Greater(t, cmp.ProfitDifference, 0.0)
	})

	t.Run("flat market is a tie", func(t *testing.T) {
		params := domain.DefaultSimulationParams()
		params.ExpectedAnnualGrowth = 0
		cmp := svc.Compare(params)

		assert.Equal(t, domain.StrategyDCA, cmp.Better)
		assert.InDelta(t, 0, cmp.ProfitDifference, 0.01)
	})
}
