package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

type CompanyHandler struct {
	Companies usecase.CompanyRepository
}

func NewCompanyHandler(companies usecase.CompanyRepository) *CompanyHandler {
	return &CompanyHandler{Companies: companies}
}

type companyRequest struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Address string `json:"address"`
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Companies.FindAll(r.Context())
	if err != nil {
		respondError(w, usecase.NewStoreError("list companies", err))
		return
	}
	respondJSON(w, http.StatusOK, companies)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.Companies.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	company, err := entity.NewCompany(req.Name, req.Website, req.Address)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := h.Companies.Create(r.Context(), company); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, company)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	company, err := h.Companies.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Name != "" {
		company.Name = req.Name
	}
	company.Website = req.Website
	company.Address = req.Address

	if err := h.Companies.Update(r.Context(), company); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Companies.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "company " + id + " deleted"})
}
