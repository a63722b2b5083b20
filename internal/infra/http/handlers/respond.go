package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pipecrm/pipecrm/internal/entity"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

// int64Param reads a numeric route parameter. The second result is false
// after a 400 has already been written.
func int64Param(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, name+" must be a number")
		return 0, false
	}
	return id, true
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeFailure translates domain errors and directory sentinels into HTTP
// responses; anything unrecognized becomes a 500.
func writeFailure(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	switch {
	case errors.As(err, &de):
		writeError(w, statusForCode(de.Code), de.Code, de.Message)
	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrLeadNotFound),
		errors.Is(err, entity.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
	case errors.Is(err, entity.ErrUnknownStatus),
		errors.Is(err, entity.ErrUnknownUserKind):
		writeError(w, http.StatusBadRequest, usecase.CodeInvalidInput, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "", err.Error())
	}
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeAlreadyConverted:
		return http.StatusConflict
	case usecase.CodeApprovalRequired:
		return http.StatusForbidden
	case usecase.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
