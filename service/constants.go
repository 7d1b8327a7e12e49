package service

const (
	MinSpotPricePerOunce = 1.0
	MinDurationMonths    = 1
	MaxDiscountRate      = 0.99 // keeps the purchase price strictly positive

	// Floor on growth/12. Annual growth is otherwise left unclamped; this
	// bound keeps the projected market price strictly positive.
	MinMonthlyGrowth = -0.99

	// Límites de la capa de entrada, el motor no los aplica
	MaxDurationMonths = 1200 // 100 años
	MaxScenarios      = 20
)
