package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"aureus/chart"
	"aureus/domain"
	"aureus/service"
)

// errOverflow is returned as 400 when accepted inputs are large enough to
// overflow the projection.
const errOverflow = "inputs are too large to project, the result overflows"

type SimulationHandler struct {
	simulations *service.SimulationService
	scenarios   *service.ScenarioService
	comparisons *service.ComparisonService
	log         zerolog.Logger
}

func NewSimulationHandler(
	simulations *service.SimulationService,
	scenarios *service.ScenarioService,
	comparisons *service.ComparisonService,
	log zerolog.Logger,
) *SimulationHandler {
	return &SimulationHandler{
		simulations: simulations,
		scenarios:   scenarios,
		comparisons: comparisons,
		log:         log.With().Str("component", "simulation_handler").Logger(),
	}
}

type defaultsResponse struct {
	Params    domain.SimulationParams `json:"params"`
	SpotPrice domain.SpotPrice        `json:"spotPrice"`
}

func (h *SimulationHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	params := domain.DefaultSimulationParams()
	writeJSON(w, http.StatusOK, defaultsResponse{
		Params:    params,
		SpotPrice: params.SpotPrice(),
	}, h.log)
}

func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	params, ok := h.decodeParams(w, r)
	if !ok {
		return
	}
	result := h.simulations.Run(params)
	if !result.Finite() {
		http.Error(w, errOverflow, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, result, h.log)
}

func (h *SimulationHandler) Chart(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params, err := req.apply(domain.DefaultSimulationParams())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := h.simulations.Run(params)
	if !result.Finite() {
		http.Error(w, errOverflow, http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, result, chart.DefaultOptions()); err != nil {
		h.log.Error().Err(err).Msg("error rendering chart")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Warn().Err(err).Msg("error writing chart")
	}
}

type scenarioRequest struct {
	Params      simulationRequest `json:"params"`
	GrowthRates []float64         `json:"growthRates"`
}

func (h *SimulationHandler) Scenarios(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if !decodeJSON(w, r, &req, h.log) {
		return
	}
	params, err := req.Params.apply(domain.DefaultSimulationParams())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	outcomes, err := h.scenarios.Compare(params, req.GrowthRates)
	if errors.Is(err, service.ErrTooManyScenarios) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("error comparing scenarios")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	for _, o := range outcomes {
		if !o.Summary.Finite() {
			http.Error(w, errOverflow, http.StatusBadRequest)
			return
		}
	}

	writeJSON(w, http.StatusOK, outcomes, h.log)
}

func (h *SimulationHandler) Compare(w http.ResponseWriter, r *http.Request) {
	params, ok := h.decodeParams(w, r)
	if !ok {
		return
	}
	cmp := h.comparisons.Compare(params)
	if !cmp.Finite() {
		http.Error(w, errOverflow, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, cmp, h.log)
}

// SpotPrice converts a quote given either per ounce or per kilogram.
func (h *SimulationHandler) SpotPrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	perOunce, perKilogram := q.Get("perOunce"), q.Get("perKilogram")

	if (perOunce == "") == (perKilogram == "") {
		http.Error(w, "exactly one of perOunce and perKilogram is required", http.StatusBadRequest)
		return
	}

	raw, convert := perOunce, domain.NewSpotPrice
	if perKilogram != "" {
		raw, convert = perKilogram, domain.SpotPriceFromKilogram
	}
	// ParseFloat also accepts "NaN" and "Inf"
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		http.Error(w, "invalid price", http.StatusBadRequest)
		return
	}
	price := convert(v)
	if !price.Finite() {
		http.Error(w, "price must be a finite number", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, price, h.log)
}

func (h *SimulationHandler) decodeParams(w http.ResponseWriter, r *http.Request) (domain.SimulationParams, bool) {
	var req simulationRequest
	if !decodeJSON(w, r, &req, h.log) {
		return domain.SimulationParams{}, false
	}
	params, err := req.apply(domain.DefaultSimulationParams())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return domain.SimulationParams{}, false
	}
	return params, true
}
