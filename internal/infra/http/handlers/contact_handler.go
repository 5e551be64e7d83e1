package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

type ContactHandler struct {
	Contacts usecase.ContactRepository
	Pipeline *usecase.PipelineUseCase
}

func NewContactHandler(contacts usecase.ContactRepository, pipeline *usecase.PipelineUseCase) *ContactHandler {
	return &ContactHandler{
		Contacts: contacts,
		Pipeline: pipeline,
	}
}

type createContactRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	ContactType string  `json:"contact_type"`
	SalesStage  string  `json:"sales_stage"`
	CompanyID   *string `json:"company_id"`
}

// Pointer fields so a PUT can carry any subset; the pipeline board
// sends only {"sales_stage": ...}.
type updateContactRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	ContactType *string `json:"contact_type"`
	SalesStage  *string `json:"sales_stage"`
	CompanyID   *string `json:"company_id"`
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Contacts.FindAll(r.Context())
	if err != nil {
		respondError(w, usecase.NewStoreError("list contacts", err))
		return
	}
	respondJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Contacts.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	contact, err := entity.NewContact(
		req.Name,
		req.Email,
		req.Phone,
		entity.ContactType(req.ContactType),
		entity.SalesStage(req.SalesStage),
		req.CompanyID,
	)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := h.Contacts.Create(r.Context(), contact); err != nil {
		respondError(w, usecase.NewStoreError("create contact", err))
		return
	}

	respondJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	contact, err := h.Contacts.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Name != nil && *req.Name != "" {
		contact.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.ContactType != nil {
		contact.ContactType = entity.ContactType(*req.ContactType)
	}
	if req.SalesStage != nil {
		contact.SalesStage = entity.SalesStage(*req.SalesStage)
	}
	if req.CompanyID != nil {
		if *req.CompanyID == "" {
			contact.CompanyID = nil
		} else {
			contact.CompanyID = req.CompanyID
		}
	}

	if err := contact.Validate(); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := h.Contacts.Update(r.Context(), contact); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Contacts.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "contact " + id + " deleted"})
}

// MoveStage shifts the contact one pipeline stage forward or back.
// Moving past either end is a successful no-op returning the contact
// unchanged.
func (h *ContactHandler) MoveStage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	contact, err := h.Pipeline.MoveStage(r.Context(), chi.URLParam(r, "id"), usecase.Direction(req.Direction))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, contact)
}
