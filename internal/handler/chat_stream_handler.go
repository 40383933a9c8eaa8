package handler

import (
	"github.com/Iamhamptom/foodfriend/internal/pkg/logger"
	"github.com/Iamhamptom/foodfriend/internal/pkg/serverutils"
	internalWS "github.com/Iamhamptom/foodfriend/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ChatStreamHandler upgrades chat clients to a websocket that streams
// turn updates for their session.
type ChatStreamHandler struct {
	hub         *internalWS.Hub
	tokenSecret string
	logger      logger.ILogger
}

func NewChatStreamHandler(hub *internalWS.Hub, tokenSecret string, log logger.ILogger) *ChatStreamHandler {
	return &ChatStreamHandler{
		hub:         hub,
		tokenSecret: tokenSecret,
		logger:      log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ChatStreamHandler) ServeWs(c *fiber.Ctx) error {
	// 1. Get Token source
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	// 2. Validate the session token
	sessionIDStr, err := serverutils.ParseSessionToken(h.tokenSecret, tokenStr)
	if err != nil {
		h.logger.Warn("ChatStreamHandler", "Invalid Token in WS Handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	// 3. Parse as UUID
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session ID format in token"})
	}

	// Upgrade via Fiber WebSocket Middleware
	// We handle the upgrade here using the helper which automatically hijacks the connection
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(c *websocket.Conn) {
			h.logger.Info("ChatStreamHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, c, sessionID)
			h.logger.Info("ChatStreamHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket route.
func (h *ChatStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/chat", h.ServeWs)
}
