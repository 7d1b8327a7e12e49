package domain

// OuncesPerKilogram is the number of troy ounces in one kilogram.
const OuncesPerKilogram = 32.1507

// SpotPrice is a per-ounce price together with its per-kilogram view.
// Only PerOunce is canonical; PerKilogram is always derived from it.
type SpotPrice struct {
	PerOunce    float64 `json:"perOunce"`
	PerKilogram float64 `json:"perKilogram"`
}

func NewSpotPrice(perOunce float64) SpotPrice {
	return SpotPrice{
		PerOunce:    perOunce,
		PerKilogram: PricePerKilogram(perOunce),
	}
}

// SpotPriceFromKilogram converts a per-kilogram quote to the canonical form.
func SpotPriceFromKilogram(perKilogram float64) SpotPrice {
	return NewSpotPrice(PricePerOunce(perKilogram))
}

func PricePerKilogram(perOunce float64) float64 {
	return perOunce * OuncesPerKilogram
}

func PricePerOunce(perKilogram float64) float64 {
	return perKilogram / OuncesPerKilogram
}

func (s SpotPrice) Finite() bool {
	return finite(s.PerOunce, s.PerKilogram)
}
