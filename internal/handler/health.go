package handler

import (
	"encoding/json"
	"net/http"
)

// Health reports liveness and which primary relay is in use.
func Health(relayName string, demo bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"relay":  relayName,
			"demo":   demo,
		})
	}
}
