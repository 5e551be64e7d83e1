package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/claritycrm/crm-backend/internal/entity"
)

func TestNextStage(t *testing.T) {
	t.Run("Forward walks the funnel in order", func(t *testing.T) {
		stage, changed := NextStage(entity.StageProspecting, DirectionForward)
		assert.True(t, changed)
		assert.Equal(t, entity.StageQualification, stage)

		stage, changed = NextStage(entity.StageNegotiation, DirectionForward)
		assert.True(t, changed)
		assert.Equal(t, entity.StageClosedWon, stage)
	})

	t.Run("Forward never leaves a terminal stage", func(t *testing.T) {
		// CLOSED_LOST is a side branch, not the stage after CLOSED_WON.
		stage, changed := NextStage(entity.StageClosedWon, DirectionForward)
		assert.False(t, changed)
		assert.Equal(t, entity.StageClosedWon, stage)

		stage, changed = NextStage(entity.StageClosedLost, DirectionForward)
		assert.False(t, changed)
		assert.Equal(t, entity.StageClosedLost, stage)
	})

	t.Run("Back at the first stage is a no-op", func(t *testing.T) {
		stage, changed := NextStage(entity.StageProspecting, DirectionBack)
		assert.False(t, changed)
		assert.Equal(t, entity.StageProspecting, stage)
	})

	t.Run("Forward from no stage enters at PROSPECTING", func(t *testing.T) {
		stage, changed := NextStage(entity.StageNone, DirectionForward)
		assert.True(t, changed)
		assert.Equal(t, entity.StageProspecting, stage)
	})

	t.Run("Back from no stage is a no-op", func(t *testing.T) {
		stage, changed := NextStage(entity.StageNone, DirectionBack)
		assert.False(t, changed)
		assert.Equal(t, entity.StageNone, stage)
	})
}

func TestMoveStage(t *testing.T) {
	t.Run("Walks a lead all the way to CLOSED_WON", func(t *testing.T) {
		contact := &entity.Contact{
			ID:         "c-1",
			Name:       "Acme Lead",
			Email:      "lead@acme.io",
			SalesStage: entity.StageProspecting,
		}

		repo := new(MockContactRepository)
		repo.On("FindByID", mock.Anything, "c-1").Return(contact, nil)
		repo.On("Update", mock.Anything, contact).Return(nil)

		uc := NewPipelineUseCase(repo)

		for _, want := range []entity.SalesStage{
			entity.StageQualification,
			entity.StageProposal,
			entity.StageNegotiation,
			entity.StageClosedWon,
		} {
			moved, err := uc.MoveStage(context.Background(), "c-1", DirectionForward)
			assert.NoError(t, err)
			assert.Equal(t, want, moved.SalesStage)
		}

		// A fifth forward leaves the won deal where it is.
		moved, err := uc.MoveStage(context.Background(), "c-1", DirectionForward)
		assert.NoError(t, err)
		assert.Equal(t, entity.StageClosedWon, moved.SalesStage)

		repo.AssertNumberOfCalls(t, "Update", 4)
	})

	t.Run("No-op move does not touch the store", func(t *testing.T) {
		contact := &entity.Contact{
			ID:         "c-2",
			Name:       "Closed Deal",
			Email:      "done@acme.io",
			SalesStage: entity.StageClosedLost,
		}

		repo := new(MockContactRepository)
		repo.On("FindByID", mock.Anything, "c-2").Return(contact, nil)

		uc := NewPipelineUseCase(repo)

		moved, err := uc.MoveStage(context.Background(), "c-2", DirectionForward)
		assert.NoError(t, err)
		assert.Equal(t, entity.StageClosedLost, moved.SalesStage)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Invalid direction is a validation error", func(t *testing.T) {
		repo := new(MockContactRepository)
		uc := NewPipelineUseCase(repo)

		_, err := uc.MoveStage(context.Background(), "c-1", Direction("sideways"))

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeValidation, domainErr.Code)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Unknown contact is NOT_FOUND", func(t *testing.T) {
		repo := new(MockContactRepository)
		repo.On("FindByID", mock.Anything, "ghost").Return(nil, entity.ErrNotFound)

		uc := NewPipelineUseCase(repo)

		_, err := uc.MoveStage(context.Background(), "ghost", DirectionForward)

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeNotFound, domainErr.Code)
	})
}

func TestSetStage(t *testing.T) {
	t.Run("Direct assignment can leave a terminal stage", func(t *testing.T) {
		contact := &entity.Contact{
			ID:         "c-3",
			Name:       "Revived Deal",
			Email:      "back@acme.io",
			SalesStage: entity.StageClosedLost,
		}

		repo := new(MockContactRepository)
		repo.On("FindByID", mock.Anything, "c-3").Return(contact, nil)
		repo.On("Update", mock.Anything, contact).Return(nil)

		uc := NewPipelineUseCase(repo)

		moved, err := uc.SetStage(context.Background(), "c-3", entity.StageNegotiation)
		assert.NoError(t, err)
		assert.Equal(t, entity.StageNegotiation, moved.SalesStage)
	})

	t.Run("Rejects an unknown stage value", func(t *testing.T) {
		repo := new(MockContactRepository)
		uc := NewPipelineUseCase(repo)

		_, err := uc.SetStage(context.Background(), "c-3", entity.SalesStage("LIMBO"))

		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeValidation, domainErr.Code)
	})
}

func TestPipelineView(t *testing.T) {
	contacts := []*entity.Contact{
		{ID: "c-1", Name: "A", SalesStage: entity.StageProspecting},
		{ID: "c-2", Name: "B", SalesStage: entity.StageProspecting},
		{ID: "c-3", Name: "C", SalesStage: entity.StageClosedWon},
		{ID: "c-4", Name: "D", SalesStage: entity.StageNone},
	}

	repo := new(MockContactRepository)
	repo.On("FindAll", mock.Anything).Return(contacts, nil)

	uc := NewPipelineUseCase(repo)

	view, err := uc.PipelineView(context.Background())
	assert.NoError(t, err)

	// Every stage column exists, even the empty ones.
	assert.Len(t, view, len(StageOrder))
	assert.Len(t, view["PROSPECTING"], 2)
	assert.Len(t, view["CLOSED_WON"], 1)
	assert.Empty(t, view["QUALIFICATION"])

	// Contacts that never entered the funnel are not on the board.
	for _, column := range view {
		for _, c := range column {
			assert.NotEqual(t, "c-4", c.ID)
		}
	}
}
