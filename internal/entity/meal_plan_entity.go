package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Iamhamptom/foodfriend/pkg/planner"
)

// MealPlan is one generated plan kept for the planner history list.
type MealPlan struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Title     string
	Params    planner.PlanParams
	Plan      *planner.MealPlan
	CreatedAt time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
