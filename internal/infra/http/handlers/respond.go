package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

// Every failing endpoint answers with the same machine-distinguishable
// payload; the browser client switches on Error.Code, never on shape.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Code == usecase.CodeNotFound {
			status = http.StatusNotFound
		}
		respondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: domainErr.Code, Message: domainErr.Message}})
		return
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		log.Printf("❌ [HTTP] store error: %v", techErr)
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorBody{
			Code:    usecase.CodeStore,
			Message: "something went wrong, please try again",
		}})
		return
	}

	switch {
	case errors.Is(err, entity.ErrNotFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorBody{Code: usecase.CodeNotFound, Message: err.Error()}})
	case errors.Is(err, entity.ErrCompanyNameTaken):
		respondJSON(w, http.StatusConflict, ErrorResponse{Error: ErrorBody{Code: usecase.CodeValidation, Message: err.Error()}})
	default:
		log.Printf("❌ [HTTP] unexpected error: %v", err)
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorBody{
			Code:    usecase.CodeStore,
			Message: "something went wrong, please try again",
		}})
	}
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code:    usecase.CodeValidation,
		Message: message,
	}})
}
