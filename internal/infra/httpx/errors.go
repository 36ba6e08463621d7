package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}

// writeDomainError maps the core's error taxonomy to transport status codes:
// validation → 400, not found → 404, business rule → 422, anything else →
// 500 with the detail kept out of the response body.
func writeDomainError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		writeError(w, http.StatusBadRequest, "invalid_request", validation.Error())
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	var rule *domain.BusinessRuleError
	if errors.As(err, &rule) {
		writeError(w, http.StatusUnprocessableEntity, "business_rule_violation", rule.Reason)
		return
	}

	writeError(w, http.StatusInternalServerError, "internal_error", "")
}
