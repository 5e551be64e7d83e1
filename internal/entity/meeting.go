package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
	MeetingPostponed MeetingStatus = "postponed"
	MeetingPending   MeetingStatus = "pending"
	MeetingDraft     MeetingStatus = "draft"
)

func (s MeetingStatus) Valid() bool {
	switch s {
	case MeetingScheduled, MeetingCompleted, MeetingCancelled,
		MeetingPostponed, MeetingPending, MeetingDraft:
		return true
	}
	return false
}

// Meeting may be created directly by the user or derived from an
// interaction. There is no foreign key back to the originating
// interaction; a cascade-created meeting only encodes the source
// contact/company name in its title.
type Meeting struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	Status      MeetingStatus `json:"status"`

	CompanyID *string `json:"company_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMeeting(title, description string, start, end time.Time, status MeetingStatus) (*Meeting, error) {
	if status == "" {
		status = MeetingScheduled
	}

	meeting := &Meeting{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Start:       start,
		End:         end,
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := meeting.Validate(); err != nil {
		return nil, err
	}

	return meeting, nil
}

func (m *Meeting) Validate() error {
	if m.Title == "" {
		return errors.New("title is required")
	}
	if m.Start.IsZero() || m.End.IsZero() {
		return errors.New("start and end are required")
	}
	if !m.End.After(m.Start) {
		return errors.New("end must be after start")
	}
	if !m.Status.Valid() {
		return errors.New("status is invalid")
	}
	return nil
}
