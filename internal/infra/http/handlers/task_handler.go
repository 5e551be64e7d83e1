package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

type TaskHandler struct {
	Tasks usecase.TaskRepository
}

func NewTaskHandler(tasks usecase.TaskRepository) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

type taskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
	Status      string  `json:"status"`
	ContactID   *string `json:"contact_id"`
	CompanyID   *string `json:"company_id"`
}

func (req taskRequest) dueDate() (*time.Time, error) {
	if req.DueDate == "" {
		return nil, nil
	}
	t, err := usecase.ParseTimestamp(req.DueDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.TaskFilter{
		ContactID: r.URL.Query().Get("contact_id"),
		CompanyID: r.URL.Query().Get("company_id"),
		Status:    r.URL.Query().Get("status"),
	}

	tasks, err := h.Tasks.FindAll(r.Context(), filter)
	if err != nil {
		respondError(w, usecase.NewStoreError("list tasks", err))
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.Tasks.Count(r.Context())
	if err != nil {
		respondError(w, usecase.NewStoreError("count tasks", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.Tasks.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	dueDate, err := req.dueDate()
	if err != nil {
		respondBadRequest(w, "due_date must be a valid ISO-8601 timestamp")
		return
	}

	task, err := entity.NewTask(req.Title, req.Description, dueDate, req.ContactID, req.CompanyID)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if req.Status != "" {
		task.Status = entity.TaskStatus(req.Status)
		if err := task.Validate(); err != nil {
			respondBadRequest(w, err.Error())
			return
		}
	}

	if err := h.Tasks.Create(r.Context(), task); err != nil {
		respondError(w, usecase.NewStoreError("create task", err))
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	task, err := h.Tasks.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	task.Description = req.Description
	if req.Status != "" {
		task.Status = entity.TaskStatus(req.Status)
	}
	if req.DueDate != "" {
		dueDate, err := req.dueDate()
		if err != nil {
			respondBadRequest(w, "due_date must be a valid ISO-8601 timestamp")
			return
		}
		task.DueDate = dueDate
	}
	if req.ContactID != nil {
		task.ContactID = req.ContactID
	}
	if req.CompanyID != nil {
		task.CompanyID = req.CompanyID
	}

	if err := task.Validate(); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := h.Tasks.Update(r.Context(), task); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Tasks.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "task " + id + " deleted"})
}
