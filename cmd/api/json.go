package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/farxc/carteira-devedores/internal/auth"
	"github.com/farxc/carteira-devedores/internal/conversion"
	"github.com/farxc/carteira-devedores/internal/crm"
	"github.com/farxc/carteira-devedores/internal/goals"
	"github.com/farxc/carteira-devedores/internal/portfolio"
	"github.com/farxc/carteira-devedores/internal/prospecting"
	"github.com/farxc/carteira-devedores/internal/response"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &response.ErrorResponse{Error: message})
}

func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	return dec.Decode(data)
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, portfolio.ErrClientNotFound),
		errors.Is(err, portfolio.ErrEmployeeNotFound),
		errors.Is(err, portfolio.ErrContractNotFound),
		errors.Is(err, crm.ErrEmployeeNotFound),
		errors.Is(err, crm.ErrTaskNotFound),
		errors.Is(err, crm.ErrMeetingNotFound),
		errors.Is(err, goals.ErrGoalNotFound):
		return http.StatusNotFound
	case errors.Is(err, crm.ErrDuplicateEmail),
		errors.Is(err, crm.ErrEmployeeHasWork),
		errors.Is(err, portfolio.ErrEmployeeInactive):
		return http.StatusConflict
	case errors.Is(err, portfolio.ErrInvalidStage), errors.Is(err, portfolio.ErrInvalidContract):
		return http.StatusBadRequest
	case errors.Is(err, conversion.ErrNothingToConvert):
		return http.StatusUnprocessableEntity
	case errors.Is(err, prospecting.ErrImportTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError reports err to the client. Validation failures carry
// their field map; unexpected errors are logged and not echoed.
func (app *application) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	const component = "API"

	if fields, ok := validation.Fields(err); ok {
		writeJSON(w, http.StatusBadRequest, &response.ErrorResponse{Error: "validation failed", Fields: fields})
		return
	}

	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		app.logger.Error(component, "Request failed: method=%s path=%s error=%v", r.Method, r.URL.Path, err)
		writeJSONError(w, status, "internal server error")
		return
	}
	writeJSONError(w, status, err.Error())
}

func writeData[T any](w http.ResponseWriter, status int, message string, data T) {
	resp := &response.APIResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
	if err := writeJSON(w, status, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
