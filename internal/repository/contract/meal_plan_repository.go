package contract

import (
	"context"

	"github.com/Iamhamptom/foodfriend/internal/entity"
	"github.com/Iamhamptom/foodfriend/internal/repository/specification"

	"github.com/google/uuid"
)

type MealPlanRepository interface {
	Create(ctx context.Context, plan *entity.MealPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MealPlan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MealPlan, error)
}
