package usecase

import "context"

type ReportUseCase struct {
	Interactions InteractionRepository
}

func NewReportUseCase(interactions InteractionRepository) *ReportUseCase {
	return &ReportUseCase{Interactions: interactions}
}

// InteractionsByType feeds the reports page: interaction type -> count.
func (uc *ReportUseCase) InteractionsByType(ctx context.Context) (map[string]int, error) {
	counts, err := uc.Interactions.CountByType(ctx)
	if err != nil {
		return nil, NewStoreError("count interactions by type", err)
	}
	return counts, nil
}
