package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"aureus/domain"
	"aureus/repository"
	"aureus/service"
)

type AnalysisHandler struct {
	simulations *service.SimulationService
	dispatcher  *service.AnalysisDispatcher
	log         zerolog.Logger
}

func NewAnalysisHandler(
	simulations *service.SimulationService,
	dispatcher *service.AnalysisDispatcher,
	log zerolog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		simulations: simulations,
		dispatcher:  dispatcher,
		log:         log.With().Str("component", "analysis_handler").Logger(),
	}
}

// Submit simulates the posted params and queues commentary for the result.
// It answers 202 immediately; the job is polled through Get.
func (h *AnalysisHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req simulationRequest
	if !decodeJSON(w, r, &req, h.log) {
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

	job, err := h.dispatcher.Submit(result)
	if errors.Is(err, service.ErrDispatcherStopped) {
		http.Error(w, "analysis is unavailable while shutting down", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("error submitting analysis")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", "/api/analyses/"+job.ID)
	writeJSON(w, http.StatusAccepted, job, h.log)
}

func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.dispatcher.Get(chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrJobNotFound) {
		http.Error(w, "analysis not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("error loading analysis")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, job, h.log)
}
