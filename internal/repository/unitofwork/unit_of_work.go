package unitofwork

import (
	"context"

	"github.com/Iamhamptom/foodfriend/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	MealPlanRepository() contract.MealPlanRepository
}
