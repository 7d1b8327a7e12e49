package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"aureus/domain"
)

var ErrTooManyScenarios = errors.New("too many growth scenarios")

// DefaultGrowthRates covers a decline, a flat market and three growth paths.
var DefaultGrowthRates = []float64{-0.10, 0, 0.04, 0.08, 0.12}

type ScenarioService struct {
	log zerolog.Logger
}

func NewScenarioService(log zerolog.Logger) *ScenarioService {
	return &ScenarioService{log: log.With().Str("component", "scenarios").Logger()}
}

// Compare runs the plan once per annual growth rate and ranks the outcomes
// by ROI, best first. The plan's own growth rate is always included.
func (s *ScenarioService) Compare(
	params domain.SimulationParams,
	growthRates []float64,
) ([]domain.ScenarioOutcome, error) {

	if len(growthRates) == 0 {
		growthRates = DefaultGrowthRates
	}
	if len(growthRates) > MaxScenarios {
		return nil, fmt.Errorf("%w: %d exceeds the limit of %d", ErrTooManyScenarios, len(growthRates), MaxScenarios)
	}

	base := Sanitize(params)
	rates := uniqueRates(append(append([]float64{}, growthRates...), base.ExpectedAnnualGrowth))

	outcomes := make([]domain.ScenarioOutcome, 0, len(rates))
	for _, rate := range rates {
		scenario := base
		scenario.ExpectedAnnualGrowth = rate

		// Sanitize may have moved the rate, report the one actually simulated
		effective := Sanitize(scenario).ExpectedAnnualGrowth
		result := Simulate(scenario)

		outcomes = append(outcomes, domain.ScenarioOutcome{
			Name:                 scenarioName(effective),
			ExpectedAnnualGrowth: effective,
			Summary:              result.Summary(),
		})
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Summary.ROI > outcomes[j].Summary.ROI
	})

	s.log.Debug().Int("scenarios", len(outcomes)).Msg("scenarios compared")

	return outcomes, nil
}

func scenarioName(rate float64) string {
	switch {
	case rate < 0:
		return "decline"
	case rate == 0:
		return "flat"
	default:
		return "growth"
	}
}

// uniqueRates drops repeated and non-finite rates, keeping the first
// occurrence order.
func uniqueRates(rates []float64) []float64 {
	seen := make(map[float64]bool, len(rates))
	out := make([]float64, 0, len(rates))
	for _, r := range rates {
		if !isFinite(r) || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
