package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/skycastapp/skycast/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: write response: %v", err)
	}
}

// writeError maps a pipeline error onto the single-key error body. The
// status is inferred from the error type: validation failures are 400,
// upstream failures pass their status through, everything else is 500.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, models.HTTPStatus(err), map[string]string{"error": models.ClientMessage(err)})
}
