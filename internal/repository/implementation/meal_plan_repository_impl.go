package implementation

import (
	"context"
	"errors"

	"github.com/Iamhamptom/foodfriend/internal/entity"
	"github.com/Iamhamptom/foodfriend/internal/mapper"
	"github.com/Iamhamptom/foodfriend/internal/model"
	"github.com/Iamhamptom/foodfriend/internal/repository/contract"
	"github.com/Iamhamptom/foodfriend/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealPlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PlannerMapper
}

func NewMealPlanRepository(db *gorm.DB) contract.MealPlanRepository {
	return &MealPlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewPlannerMapper(),
	}
}

func (r *MealPlanRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MealPlanRepositoryImpl) Create(ctx context.Context, plan *entity.MealPlan) error {
	m, err := r.mapper.MealPlanToModel(plan)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MealPlanRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MealPlan{}, id).Error
}

func (r *MealPlanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MealPlan, error) {
	var m model.MealPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MealPlanToEntity(&m)
}

func (r *MealPlanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MealPlan, error) {
	var models []*model.MealPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.MealPlan, 0, len(models))
	for _, m := range models {
		e, err := r.mapper.MealPlanToEntity(m)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
