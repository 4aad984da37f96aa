package ingestion

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

type OnboardEmployeeInput struct {
	Name  string
	Email string
	Token string
}

type OnboardEmployeeOutput struct {
	Processed int `json:"processed"`
}

// OnboardEmployee is the single-entry add form: one record, one batch.
type OnboardEmployee interface {
	Execute(ctx context.Context, in OnboardEmployeeInput) (OnboardEmployeeOutput, error)
}

type onboardEmployee struct {
	api onboarder
}

func NewOnboardEmployee(api onboarder) OnboardEmployee {
	return &onboardEmployee{api: api}
}

func (uc *onboardEmployee) Execute(ctx context.Context, in OnboardEmployeeInput) (OnboardEmployeeOutput, error) {
	record, err := domain.NewRecord(in.Name, in.Email)
	if err != nil {
		return OnboardEmployeeOutput{}, err
	}

	result, err := uc.api.Onboard(ctx, in.Token, []domain.Record{record})
	if err != nil {
		return OnboardEmployeeOutput{}, fmt.Errorf("%w: %w", ErrOnboardSingle, err)
	}

	return OnboardEmployeeOutput{Processed: result.TotalProcessed}, nil
}
