package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

type MeetingHandler struct {
	Meetings usecase.MeetingRepository
}

func NewMeetingHandler(meetings usecase.MeetingRepository) *MeetingHandler {
	return &MeetingHandler{Meetings: meetings}
}

// Timestamps are ISO-8601 strings on the wire and converted to native
// time values here, at the boundary.
type meetingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Status      string  `json:"status"`
	CompanyID   *string `json:"company_id"`
}

func (req meetingRequest) times() (start, end time.Time, err error) {
	start, err = usecase.ParseTimestamp(req.Start)
	if err != nil {
		return
	}
	end, err = usecase.ParseTimestamp(req.End)
	return
}

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.Meetings.FindAll(r.Context())
	if err != nil {
		respondError(w, usecase.NewStoreError("list meetings", err))
		return
	}
	respondJSON(w, http.StatusOK, meetings)
}

func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	meeting, err := h.Meetings.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	start, end, err := req.times()
	if err != nil {
		respondBadRequest(w, "start and end must be valid ISO-8601 timestamps")
		return
	}

	meeting, err := entity.NewMeeting(req.Title, req.Description, start, end, entity.MeetingStatus(req.Status))
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	meeting.Location = req.Location
	meeting.CompanyID = req.CompanyID

	if err := h.Meetings.Create(r.Context(), meeting); err != nil {
		respondError(w, usecase.NewStoreError("create meeting", err))
		return
	}

	respondJSON(w, http.StatusCreated, meeting)
}

func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid JSON: "+err.Error())
		return
	}

	meeting, err := h.Meetings.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Title != "" {
		meeting.Title = req.Title
	}
	meeting.Description = req.Description
	meeting.Location = req.Location
	if req.Status != "" {
		meeting.Status = entity.MeetingStatus(req.Status)
	}
	if req.Start != "" || req.End != "" {
		start, end, err := req.times()
		if err != nil {
			respondBadRequest(w, "start and end must be valid ISO-8601 timestamps")
			return
		}
		meeting.Start = start
		meeting.End = end
	}
	if req.CompanyID != nil {
		meeting.CompanyID = req.CompanyID
	}

	if err := meeting.Validate(); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := h.Meetings.Update(r.Context(), meeting); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Meetings.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "meeting " + id + " deleted"})
}
