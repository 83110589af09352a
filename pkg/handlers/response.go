package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/health-atlas/pkg/models/api"
	"github.com/rs/zerolog"
)

// WriteJSON encodes body with the given status. Encoding failures can only be logged since
// the header is already sent.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, r, status, api.ErrorResponse{Error: msg})
}

// DecodeJSON reads a request body into v.
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
