package controller

import (
	"github.com/Iamhamptom/foodfriend/internal/dto"
	"github.com/Iamhamptom/foodfriend/internal/pkg/serverutils"
	"github.com/Iamhamptom/foodfriend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	CreateSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/chat/v1")
	h.Post("session", c.CreateSession) // unauthenticated: this is how a caller gets a token
	h.Use(auth)
	h.Post("message", c.SendMessage)
	h.Get("session", c.Show)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	// 1. Resolve session from token
	sessionIdStr := ctx.Locals("session_id").(string)
	sessionId, err := uuid.Parse(sessionIdStr)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusUnauthorized, "invalid session id")
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// 2. Advance the conversation
	res, err := c.chatService.SendMessage(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	sessionIdStr := ctx.Locals("session_id").(string)
	sessionId, err := uuid.Parse(sessionIdStr)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusUnauthorized, "invalid session id")
	}

	res, err := c.chatService.GetSession(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}
