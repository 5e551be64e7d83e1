package handlers

import (
	"net/http"

	"github.com/claritycrm/crm-backend/internal/usecase"
)

type ReportHandler struct {
	Reports *usecase.ReportUseCase
}

func NewReportHandler(reports *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

func (h *ReportHandler) InteractionsByType(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Reports.InteractionsByType(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}
