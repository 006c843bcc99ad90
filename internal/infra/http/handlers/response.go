package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/leadflowhq/leadflow/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// writeUseCaseError maps use case errors onto HTTP statuses. Anything it does
// not recognize is logged and reported as a 500 without leaking internals.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var dup *usecase.DuplicateLeadError
	var notFound *usecase.NotFoundError
	var domain *usecase.DomainError

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		writeErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.As(err, &dup):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":        "DUPLICATE_LEAD",
			"message":      dup.Error(),
			"duplicate_id": dup.DuplicateID,
		})
	case errors.As(err, &notFound):
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.As(err, &domain):
		writeErrorResponse(w, http.StatusBadRequest, domain.Code, domain.Message)
	default:
		log.Printf("unexpected error: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "something went wrong")
	}
}
