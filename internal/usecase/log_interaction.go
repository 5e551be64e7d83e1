package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/claritycrm/crm-backend/internal/entity"
	"github.com/claritycrm/crm-backend/internal/infra/queue"
)

type LogInteractionInput struct {
	InteractionType string `json:"interaction_type"`
	Notes           string `json:"notes"`
	ContactID       string `json:"contact_id,omitempty"`
	CompanyID       string `json:"company_id,omitempty"`

	// Only consulted when InteractionType == "Meeting".
	MeetingDate   string `json:"meeting_date,omitempty"`   // ISO-8601, defaults to now
	MeetingStatus string `json:"meeting_status,omitempty"` // defaults to "scheduled"
}

type LogInteractionOutput struct {
	Interaction *entity.Interaction

	// MeetingCreated reports whether the derived meeting was persisted.
	// A false value with InteractionType == Meeting means the synthesis
	// soft-failed; the interaction itself still succeeded.
	MeetingCreated bool
	MeetingID      string
}

// LogInteractionUseCase is the interaction cascade engine. Creating the
// interaction is the primary write; deriving a meeting from it is a
// secondary write whose failure is swallowed on purpose. An interaction
// record must never be lost because of a calendar-side hiccup.
type LogInteractionUseCase struct {
	Interactions InteractionRepository
	Meetings     MeetingRepository
	Contacts     ContactRepository
	Companies    CompanyRepository
	Producer     EventProducer
}

func NewLogInteractionUseCase(
	interactions InteractionRepository,
	meetings MeetingRepository,
	contacts ContactRepository,
	companies CompanyRepository,
	producer EventProducer,
) *LogInteractionUseCase {
	return &LogInteractionUseCase{
		Interactions: interactions,
		Meetings:     meetings,
		Contacts:     contacts,
		Companies:    companies,
		Producer:     producer,
	}
}

func (uc *LogInteractionUseCase) Execute(ctx context.Context, input LogInteractionInput) (*LogInteractionOutput, error) {
	validationErrors := ValidateLogInteractionInput(input)
	if len(validationErrors) > 0 {
		return nil, NewValidationFailed(validationErrors)
	}

	// Resolve the referenced contact or company before any write. The
	// display name feeds the derived meeting title; a dangling id is a
	// NotFound, not a store error.
	var displayName, contactEmail string
	var contactID, companyID *string

	if input.ContactID != "" {
		contact, err := uc.Contacts.FindByID(ctx, input.ContactID)
		if err != nil {
			if err == entity.ErrNotFound {
				return nil, NewNotFound("contact", input.ContactID)
			}
			return nil, NewStoreError("find contact", err)
		}
		displayName = contact.Name
		contactEmail = contact.Email
		contactID = &input.ContactID
	} else {
		company, err := uc.Companies.FindByID(ctx, input.CompanyID)
		if err != nil {
			if err == entity.ErrNotFound {
				return nil, NewNotFound("company", input.CompanyID)
			}
			return nil, NewStoreError("find company", err)
		}
		displayName = company.Name
		companyID = &input.CompanyID
	}

	// Step 1: persist the interaction. Any failure here aborts the whole
	// operation and nothing else happens.
	interaction, err := entity.NewInteraction(
		entity.InteractionType(input.InteractionType),
		input.Notes,
		contactID,
		companyID,
	)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.Interactions.Create(ctx, interaction); err != nil {
		return nil, NewStoreError("create interaction", err)
	}

	output := &LogInteractionOutput{Interaction: interaction}

	// Step 2: for Meeting interactions, derive a calendar entry from the
	// same form data. This failure is swallowed: logged as a soft
	// warning, never rolled back, never surfaced to the caller.
	if interaction.InteractionType == entity.InteractionMeeting {
		meeting, err := uc.synthesizeMeeting(ctx, input, displayName)
		if err != nil {
			log.Printf("⚠️ [CASCADE] meeting synthesis failed for interaction %s: %v", interaction.ID, err)
		} else {
			output.MeetingCreated = true
			output.MeetingID = meeting.ID
			uc.publish(ctx, queue.NotificationEvent{
				Kind:          queue.KindMeetingScheduled,
				Message:       fmt.Sprintf("Meeting scheduled: %s", meeting.Title),
				ContactID:     input.ContactID,
				CompanyID:     input.CompanyID,
				InteractionID: interaction.ID,
				ContactEmail:  contactEmail,
				MeetingTitle:  meeting.Title,
				MeetingStart:  meeting.Start.Format(time.RFC3339),
			})
		}
	}

	uc.publish(ctx, queue.NotificationEvent{
		Kind:          queue.KindInteractionLogged,
		Message:       fmt.Sprintf("New %s interaction with %s", interaction.InteractionType, displayName),
		ContactID:     input.ContactID,
		CompanyID:     input.CompanyID,
		InteractionID: interaction.ID,
	})

	return output, nil
}

func (uc *LogInteractionUseCase) synthesizeMeeting(ctx context.Context, input LogInteractionInput, displayName string) (*entity.Meeting, error) {
	start := time.Now()
	if input.MeetingDate != "" {
		parsed, err := ParseTimestamp(input.MeetingDate)
		if err == nil {
			start = parsed
		}
	}

	status := entity.MeetingStatus(input.MeetingStatus)
	if status == "" {
		status = entity.MeetingScheduled
	}

	// end = start + 1 hour, exactly.
	meeting, err := entity.NewMeeting(
		fmt.Sprintf("Meeting with %s", displayName),
		input.Notes,
		start,
		start.Add(time.Hour),
		status,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.Meetings.Create(ctx, meeting); err != nil {
		return nil, err
	}

	return meeting, nil
}

// publish is fire-and-forget. A dead broker must not fail a logged
// interaction.
func (uc *LogInteractionUseCase) publish(ctx context.Context, ev queue.NotificationEvent) {
	if uc.Producer == nil {
		return
	}
	if err := uc.Producer.PublishNotification(ctx, ev); err != nil {
		log.Printf("⚠️ [CASCADE] failed to publish %s event: %v", ev.Kind, err)
	}
}

// DeleteInteraction removes only the interaction row. It never touches
// any meeting, including one the interaction originally caused to be
// created: the two records have independent lifecycles.
func (uc *LogInteractionUseCase) DeleteInteraction(ctx context.Context, id string) error {
	if _, err := uc.Interactions.FindByID(ctx, id); err != nil {
		if err == entity.ErrNotFound {
			return NewNotFound("interaction", id)
		}
		return NewStoreError("find interaction", err)
	}

	if err := uc.Interactions.Delete(ctx, id); err != nil {
		if err == entity.ErrNotFound {
			// Concurrent delete between the lookup and the write.
			return NewNotFound("interaction", id)
		}
		return NewStoreError("delete interaction", err)
	}

	return nil
}
