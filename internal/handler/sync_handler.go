package handler

import (
	"os"

	"prd-studio-be/internal/pkg/logger"
	internalWS "prd-studio-be/internal/websocket"
	pkgcanvas "prd-studio-be/pkg/canvas"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SyncHandler upgrades editor connections onto the live-sync socket:
// canvas events and background activity arrive through it.
type SyncHandler struct {
	hub    *internalWS.Hub
	bus    *pkgcanvas.Bus
	logger logger.ILogger
}

func NewSyncHandler(hub *internalWS.Hub, bus *pkgcanvas.Bus, log logger.ILogger) *SyncHandler {
	return &SyncHandler{
		hub:    hub,
		bus:    bus,
		logger: log,
	}
}

func (h *SyncHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/sync/ws", h.ServeWs)
}

// ServeWs authenticates the handshake and hands the connection to the
// hub. Browsers cannot set headers on websocket upgrades, so the token
// may arrive as a query parameter instead.
func (h *SyncHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("SyncHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("SyncHandler", "Starting sync session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, h.bus, conn, userID)
			h.logger.Info("SyncHandler", "Sync session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
