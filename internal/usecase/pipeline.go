package usecase

import (
	"context"

	"github.com/claritycrm/crm-backend/internal/entity"
)

type Direction string

const (
	DirectionForward Direction = "forward"
	DirectionBack    Direction = "back"
)

// StageOrder is the one fixed linear order of the funnel. CLOSED_LOST
// sits last so back moves and the board stay a pure index operation, but
// it is a side branch: forward moves never enter it. A lost deal is an
// explicit SetStage, not one more click forward from a won one.
var StageOrder = []entity.SalesStage{
	entity.StageProspecting,
	entity.StageQualification,
	entity.StageProposal,
	entity.StageNegotiation,
	entity.StageClosedWon,
	entity.StageClosedLost,
}

func stageIndex(stage entity.SalesStage) int {
	for i, s := range StageOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

// NextStage is a pure function of (current, direction). The second
// return reports whether the stage actually changes; at either end of
// the funnel the move is a no-op, not an error. A contact with no stage
// enters the funnel at PROSPECTING on a forward move; a terminal stage
// is never advanced.
func NextStage(current entity.SalesStage, direction Direction) (entity.SalesStage, bool) {
	idx := stageIndex(current)

	switch direction {
	case DirectionForward:
		if current.Terminal() {
			return current, false
		}
		return StageOrder[idx+1], true
	case DirectionBack:
		if idx <= 0 {
			return current, false
		}
		return StageOrder[idx-1], true
	}

	return current, false
}

type PipelineUseCase struct {
	Contacts ContactRepository
}

func NewPipelineUseCase(contacts ContactRepository) *PipelineUseCase {
	return &PipelineUseCase{Contacts: contacts}
}

// MoveStage shifts the contact one stage forward or back. No other
// inputs are consulted. Moves past either end return the unchanged
// contact without touching the store.
func (uc *PipelineUseCase) MoveStage(ctx context.Context, contactID string, direction Direction) (*entity.Contact, error) {
	if direction != DirectionForward && direction != DirectionBack {
		return nil, &DomainError{Code: CodeValidation, Message: "direction must be forward or back"}
	}

	contact, err := uc.Contacts.FindByID(ctx, contactID)
	if err != nil {
		if err == entity.ErrNotFound {
			return nil, NewNotFound("contact", contactID)
		}
		return nil, NewStoreError("find contact", err)
	}

	newStage, changed := NextStage(contact.SalesStage, direction)
	if !changed {
		return contact, nil
	}

	contact.SalesStage = newStage
	if err := uc.Contacts.Update(ctx, contact); err != nil {
		return nil, NewStoreError("update contact stage", err)
	}

	return contact, nil
}

// SetStage is the direct dropdown assignment. Always allowed, including
// out of CLOSED_WON / CLOSED_LOST: only automatic transitions are barred
// from touching a terminal stage, explicit user action is not.
func (uc *PipelineUseCase) SetStage(ctx context.Context, contactID string, stage entity.SalesStage) (*entity.Contact, error) {
	if !stage.Valid() {
		return nil, &DomainError{Code: CodeValidation, Message: "sales_stage is invalid"}
	}

	contact, err := uc.Contacts.FindByID(ctx, contactID)
	if err != nil {
		if err == entity.ErrNotFound {
			return nil, NewNotFound("contact", contactID)
		}
		return nil, NewStoreError("find contact", err)
	}

	contact.SalesStage = stage
	if err := uc.Contacts.Update(ctx, contact); err != nil {
		return nil, NewStoreError("update contact stage", err)
	}

	return contact, nil
}

// PipelineView groups contacts by stage for the board. Every stage is
// present in the result, empty ones as empty slices; contacts that never
// entered the funnel are omitted.
func (uc *PipelineUseCase) PipelineView(ctx context.Context) (map[string][]*entity.Contact, error) {
	contacts, err := uc.Contacts.FindAll(ctx)
	if err != nil {
		return nil, NewStoreError("list contacts", err)
	}

	view := make(map[string][]*entity.Contact, len(StageOrder))
	for _, stage := range StageOrder {
		view[string(stage)] = []*entity.Contact{}
	}

	for _, contact := range contacts {
		if contact.SalesStage == entity.StageNone {
			continue
		}
		key := string(contact.SalesStage)
		view[key] = append(view[key], contact)
	}

	return view, nil
}
