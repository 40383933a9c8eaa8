package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Iamhamptom/foodfriend/internal/entity"
	"github.com/Iamhamptom/foodfriend/internal/model"
	"github.com/Iamhamptom/foodfriend/pkg/planner"

	"gorm.io/gorm"
)

type PlannerMapper struct{}

func NewPlannerMapper() *PlannerMapper {
	return &PlannerMapper{}
}

func (m *PlannerMapper) MealPlanToEntity(p *model.MealPlan) (*entity.MealPlan, error) {
	if p == nil {
		return nil, nil
	}

	var params planner.PlanParams
	if err := json.Unmarshal(p.Params, &params); err != nil {
		return nil, fmt.Errorf("meal plan %s: corrupt params: %w", p.Id, err)
	}

	var plan planner.MealPlan
	if err := json.Unmarshal(p.Plan, &plan); err != nil {
		return nil, fmt.Errorf("meal plan %s: corrupt plan: %w", p.Id, err)
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.MealPlan{
		Id:        p.Id,
		SessionId: p.SessionId,
		Title:     p.Title,
		Params:    params,
		Plan:      &plan,
		CreatedAt: p.CreatedAt,
		DeletedAt: deletedAt,
		IsDeleted: p.DeletedAt.Valid,
	}, nil
}

func (m *PlannerMapper) MealPlanToModel(p *entity.MealPlan) (*model.MealPlan, error) {
	if p == nil {
		return nil, nil
	}
	if p.Plan == nil {
		return nil, fmt.Errorf("meal plan %s: nil plan", p.Id)
	}

	params, err := json.Marshal(p.Params)
	if err != nil {
		return nil, fmt.Errorf("meal plan %s: encode params: %w", p.Id, err)
	}

	plan, err := json.Marshal(p.Plan)
	if err != nil {
		return nil, fmt.Errorf("meal plan %s: encode plan: %w", p.Id, err)
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.MealPlan{
		Id:        p.Id,
		SessionId: p.SessionId,
		Title:     p.Title,
		Params:    params,
		Plan:      plan,
		CreatedAt: p.CreatedAt,
		DeletedAt: deletedAt,
	}, nil
}
