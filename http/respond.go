package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// decodeJSON validates the Content-Type and decodes the body into dst. It
// writes the error response itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, log zerolog.Logger) bool {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Debug().Err(err).Msg("error decoding request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON encodes into a buffer first so a failed encode can still
// produce a 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any, log zerolog.Logger) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("error writing response")
	}
}
