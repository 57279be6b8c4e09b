package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"distribuidora-backoffice/models"
	"distribuidora-backoffice/pricing"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// respondError maps domain errors onto HTTP statuses:
// validation → 400 (with the offending field), stock exceeded → 400 with
// per-line detail, invalid status transition → 409, not found → 404,
// everything else → 500.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *pricing.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	var stockErr *pricing.StockExceededError
	if errors.As(err, &stockErr) {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": stockErr.Error(),
			"lines": stockErr.Lines,
		})
		return
	}

	var transitionErr *models.ErrInvalidTransition
	if errors.As(err, &transitionErr) {
		respondJSON(w, http.StatusConflict, map[string]interface{}{"error": transitionErr.Error()})
		return
	}

	if strings.Contains(err.Error(), "not found") {
		respondJSON(w, http.StatusNotFound, map[string]interface{}{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
}

// pathID extracts the numeric id segment from a path like
// /admin/orders/31/confirm given the prefix "/admin/orders/"
func pathID(path, prefix string) (string, string) {
	rest := strings.TrimPrefix(path, prefix)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		return rest[:i], rest[i+1:]
	}
	return rest, ""
}
