package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/infra/http/middleware"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

type InteractionHandler struct {
	LogInteractionUC *usecase.LogInteractionUseCase
	Interactions     usecase.InteractionRepository
}

func NewInteractionHandler(uc *usecase.LogInteractionUseCase, interactions usecase.InteractionRepository) *InteractionHandler {
	return &InteractionHandler{
		LogInteractionUC: uc,
		Interactions:     interactions,
	}
}

// Create runs the cascade: the response body is always the created
// interaction, whether or not the derived meeting made it.
func (h *InteractionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.LogInteractionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	output, err := h.LogInteractionUC.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordInteractionLogged(string(output.Interaction.InteractionType))
	if output.Interaction.InteractionType == entity.InteractionMeeting {
		if output.MeetingCreated {
			middleware.RecordMeetingCascaded()
		} else {
			middleware.RecordCascadeSoftFailure()
		}
	}

	respondJSON(w, http.StatusCreated, output.Interaction)
}

func (h *InteractionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.InteractionFilter{
		ContactID: r.URL.Query().Get("contact_id"),
		CompanyID: r.URL.Query().Get("company_id"),
	}

	interactions, err := h.Interactions.FindAll(r.Context(), filter)
	if err != nil {
		respondError(w, usecase.NewStoreError("list interactions", err))
		return
	}

	respondJSON(w, http.StatusOK, interactions)
}

func (h *InteractionHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.Interactions.Count(r.Context())
	if err != nil {
		respondError(w, usecase.NewStoreError("count interactions", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *InteractionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.LogInteractionUC.DeleteInteraction(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "interaction " + id + " deleted"})
}
