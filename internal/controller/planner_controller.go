package controller

import (
	"github.com/Iamhamptom/foodfriend/internal/dto"
	"github.com/Iamhamptom/foodfriend/internal/pkg/serverutils"
	"github.com/Iamhamptom/foodfriend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlannerController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	CreatePlan(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type plannerController struct {
	plannerService service.IPlannerService
}

func NewPlannerController(plannerService service.IPlannerService) IPlannerController {
	return &plannerController{
		plannerService: plannerService,
	}
}

func (c *plannerController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/planner/v1")
	h.Use(auth)
	h.Post("plan", c.CreatePlan)
	h.Get("history", c.History)
}

func (c *plannerController) CreatePlan(ctx *fiber.Ctx) error {
	sessionIdStr := ctx.Locals("session_id").(string)
	sessionId, err := uuid.Parse(sessionIdStr)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusUnauthorized, "invalid session id")
	}

	var req dto.CreatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.plannerService.CreatePlan(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create meal plan", res))
}

func (c *plannerController) History(ctx *fiber.Ctx) error {
	sessionIdStr := ctx.Locals("session_id").(string)
	sessionId, err := uuid.Parse(sessionIdStr)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusUnauthorized, "invalid session id")
	}

	res, err := c.plannerService.History(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list meal plans", res))
}
