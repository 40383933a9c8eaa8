package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Iamhamptom/foodfriend/pkg/planner"
	"github.com/Iamhamptom/foodfriend/pkg/shoppinglist"
)

type CreatePlanRequest struct {
	Days      int      `json:"days" validate:"gte=0,lte=31"`
	People    int      `json:"people" validate:"gte=0,lte=20"`
	Diet      string   `json:"diet"`
	Allergies []string `json:"allergies" validate:"max=20"`
	Budget    float64  `json:"budget" validate:"required,gt=0"`
	Currency  string   `json:"currency"`
}

type MealPlanResponse struct {
	Id           uuid.UUID            `json:"id"`
	Title        string               `json:"title"`
	Plan         *planner.MealPlan    `json:"plan"`
	ShoppingList *shoppinglist.Result `json:"shopping_list,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

type PlanHistoryResponse struct {
	Plans []MealPlanResponse `json:"plans"`
}
