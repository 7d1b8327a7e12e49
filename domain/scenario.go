package domain

type ScenarioInput struct {
	Params      SimulationParams `json:"params"`
	GrowthRates []float64        `json:"growthRates"`
}

type ScenarioOutcome struct {
	Name                 string            `json:"name"` // "decline", "flat", "growth"
	ExpectedAnnualGrowth float64           `json:"expectedAnnualGrowth"`
	Summary              SimulationSummary `json:"summary"`
}

type StrategyKind string

const (
	StrategyDCA     StrategyKind = "dca"
	StrategyLumpSum StrategyKind = "lump_sum"
)

// StrategyComparison contrasts the recurring plan with investing the same
// capital at month 0.
type StrategyComparison struct {
	DCA              SimulationSummary `json:"dca"`
	LumpSum          SimulationSummary `json:"lumpSum"`
	Better           StrategyKind      `json:"better"`
	ProfitDifference float64           `json:"profitDifference"` // DCA minus lump sum
}

func (c StrategyComparison) Finite() bool {
	return c.DCA.Finite() && c.LumpSum.Finite() && finite(c.ProfitDifference)
}
