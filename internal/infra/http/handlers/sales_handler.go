package handlers

import (
	"net/http"

	"github.com/claritycrm/crm-backend/internal/usecase"
)

type SalesHandler struct {
	Pipeline *usecase.PipelineUseCase
}

func NewSalesHandler(pipeline *usecase.PipelineUseCase) *SalesHandler {
	return &SalesHandler{Pipeline: pipeline}
}

// GetPipeline returns stage name -> ordered contacts for the board.
func (h *SalesHandler) GetPipeline(w http.ResponseWriter, r *http.Request) {
	view, err := h.Pipeline.PipelineView(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
