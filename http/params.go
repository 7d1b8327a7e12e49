package http

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"aureus/domain"
	"aureus/service"
)

// simulationRequest is the wire form of domain.SimulationParams. Absent
// fields keep the value of the base params they are applied to.
type simulationRequest struct {
	InitialInvestment    *float64 `json:"initialInvestment"`
	MonthlyInvestment    *float64 `json:"monthlyInvestment"`
	MonthlyDiscountRate  *float64 `json:"monthlyDiscountRate"`
	DurationMonths       *int     `json:"durationMonths"`
	ExpectedAnnualGrowth *float64 `json:"expectedAnnualGrowth"`
	SpotPricePerOunce    *float64 `json:"spotPricePerOunce"`
	SpotPricePerKilogram *float64 `json:"spotPricePerKilogram"`
}

func (req simulationRequest) apply(base domain.SimulationParams) (domain.SimulationParams, error) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"initialInvestment", req.InitialInvestment},
		{"monthlyInvestment", req.MonthlyInvestment},
		{"monthlyDiscountRate", req.MonthlyDiscountRate},
		{"expectedAnnualGrowth", req.ExpectedAnnualGrowth},
		{"spotPricePerOunce", req.SpotPricePerOunce},
		{"spotPricePerKilogram", req.SpotPricePerKilogram},
	}
	for _, f := range fields {
		if f.v != nil && (math.IsNaN(*f.v) || math.IsInf(*f.v, 0)) {
			return domain.SimulationParams{}, fmt.Errorf("%s must be a finite number", f.name)
		}
	}

	p := base
	if req.InitialInvestment != nil {
		p.InitialInvestment = *req.InitialInvestment
	}
	if req.MonthlyInvestment != nil {
		p.MonthlyInvestment = *req.MonthlyInvestment
	}
	if req.MonthlyDiscountRate != nil {
		p.MonthlyDiscountRate = *req.MonthlyDiscountRate
	}
	if req.DurationMonths != nil {
		if *req.DurationMonths > service.MaxDurationMonths {
			return domain.SimulationParams{}, fmt.Errorf("durationMonths exceeds the maximum of %d", service.MaxDurationMonths)
		}
		p.DurationMonths = *req.DurationMonths
	}
	if req.ExpectedAnnualGrowth != nil {
		p.ExpectedAnnualGrowth = *req.ExpectedAnnualGrowth
	}

	switch {
	case req.SpotPricePerOunce != nil && req.SpotPricePerKilogram != nil:
		return domain.SimulationParams{}, errors.New("set only one of spotPricePerOunce and spotPricePerKilogram")
	case req.SpotPricePerOunce != nil:
		p.SpotPricePerOunce = *req.SpotPricePerOunce
	case req.SpotPricePerKilogram != nil:
		p.SpotPricePerOunce = domain.SpotPriceFromKilogram(*req.SpotPricePerKilogram).PerOunce
	}

	return p, nil
}

// requestFromQuery reads the same fields as simulationRequest from a query
// string.
func requestFromQuery(q url.Values) (simulationRequest, error) {
	var req simulationRequest
	floats := []struct {
		name string
		dst  **float64
	}{
		{"initialInvestment", &req.InitialInvestment},
		{"monthlyInvestment", &req.MonthlyInvestment},
		{"monthlyDiscountRate", &req.MonthlyDiscountRate},
		{"expectedAnnualGrowth", &req.ExpectedAnnualGrowth},
		{"spotPricePerOunce", &req.SpotPricePerOunce},
		{"spotPricePerKilogram", &req.SpotPricePerKilogram},
	}
	for _, f := range floats {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return simulationRequest{}, fmt.Errorf("invalid %s: %q", f.name, raw)
		}
		*f.dst = &v
	}

	if raw := q.Get("durationMonths"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return simulationRequest{}, fmt.Errorf("invalid durationMonths: %q", raw)
		}
		req.DurationMonths = &v
	}
	return req, nil
}
