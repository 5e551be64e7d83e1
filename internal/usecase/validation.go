package usecase

import (
	"strings"
	"time"

	"github.com/claritycrm/crm-backend/internal/entity"
)

func ValidateLogInteractionInput(input LogInteractionInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.InteractionType) == "" {
		errors = append(errors, ValidationError{"interaction_type", "is required"})
	} else if !entity.InteractionType(input.InteractionType).Valid() {
		errors = append(errors, ValidationError{"interaction_type", "must be Note, Call, Meeting or Email"})
	}

	if strings.TrimSpace(input.Notes) == "" {
		errors = append(errors, ValidationError{"notes", "are required"})
	}

	hasContact := strings.TrimSpace(input.ContactID) != ""
	hasCompany := strings.TrimSpace(input.CompanyID) != ""
	if hasContact == hasCompany {
		errors = append(errors, ValidationError{"contact_id", "exactly one of contact_id or company_id must be set"})
	}

	if input.MeetingDate != "" {
		if _, err := ParseTimestamp(input.MeetingDate); err != nil {
			errors = append(errors, ValidationError{"meeting_date", "must be a valid ISO-8601 timestamp"})
		}
	}

	if input.MeetingStatus != "" && !entity.MeetingStatus(input.MeetingStatus).Valid() {
		errors = append(errors, ValidationError{"meeting_status", "is invalid"})
	}

	return errors
}

// timestampLayouts covers what the browser client actually sends:
// RFC3339 from Date serialization and the datetime-local input format.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func ParseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
