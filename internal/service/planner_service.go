package service

import (
	"context"
	"strings"
	"time"

	"github.com/Iamhamptom/foodfriend/internal/dto"
	"github.com/Iamhamptom/foodfriend/internal/entity"
	"github.com/Iamhamptom/foodfriend/internal/pkg/logger"
	"github.com/Iamhamptom/foodfriend/internal/repository/specification"
	"github.com/Iamhamptom/foodfriend/internal/repository/unitofwork"
	"github.com/Iamhamptom/foodfriend/pkg/planner"
	"github.com/Iamhamptom/foodfriend/pkg/shoppinglist"

	"github.com/google/uuid"
)

const planHistoryLimit = 20

type IPlannerService interface {
	CreatePlan(ctx context.Context, sessionId uuid.UUID, req *dto.CreatePlanRequest) (*dto.MealPlanResponse, error)
	History(ctx context.Context, sessionId uuid.UUID) (*dto.PlanHistoryResponse, error)
}

type plannerService struct {
	planner    *planner.Planner
	pricer     *shoppinglist.Pricer
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewPlannerService(p *planner.Planner, pricer *shoppinglist.Pricer, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IPlannerService {
	return &plannerService{
		planner:    p,
		pricer:     pricer,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *plannerService) CreatePlan(ctx context.Context, sessionId uuid.UUID, req *dto.CreatePlanRequest) (*dto.MealPlanResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "R"
	}

	params := planner.PlanParams{
		Days:         req.Days,
		People:       req.People,
		Diet:         req.Diet,
		Allergies:    req.Allergies,
		BudgetAmount: req.Budget,
		Currency:     currency,
	}

	plan, err := s.planner.GeneratePlan(ctx, params)
	if err != nil {
		return nil, err
	}

	ent := &entity.MealPlan{
		Id:        uuid.New(),
		SessionId: sessionId,
		Title:     plan.Title,
		Params:    params,
		Plan:      plan,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MealPlanRepository().Create(ctx, ent); err != nil {
		return nil, err
	}

	s.log.Info("planner", "meal plan created", map[string]interface{}{
		"session_id": sessionId.String(), "meals": len(plan.Meals),
	})

	return &dto.MealPlanResponse{
		Id:           ent.Id,
		Title:        ent.Title,
		Plan:         plan,
		ShoppingList: s.priceIngredients(ctx, plan, params.BudgetAmount),
		CreatedAt:    ent.CreatedAt,
	}, nil
}

// priceIngredients shops the plan's deduplicated ingredient list across the
// catalog. A pricing failure degrades to a plan without a shopping list.
func (s *plannerService) priceIngredients(ctx context.Context, plan *planner.MealPlan, budget float64) *shoppinglist.Result {
	seen := make(map[string]bool)
	var names []string
	for _, meal := range plan.Meals {
		for _, ing := range meal.Ingredients {
			key := strings.ToLower(ing.Name)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, ing.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}

	result, err := s.pricer.Price(ctx, names, budget)
	if err != nil {
		s.log.Warn("planner", "shopping list pricing failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return result
}

func (s *plannerService) History(ctx context.Context, sessionId uuid.UUID) (*dto.PlanHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.MealPlanRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: planHistoryLimit},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.PlanHistoryResponse{Plans: make([]dto.MealPlanResponse, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, dto.MealPlanResponse{
			Id:        p.Id,
			Title:     p.Title,
			Plan:      p.Plan,
			CreatedAt: p.CreatedAt,
		})
	}
	return res, nil
}
