package controller

import (
	"errors"

	"prd-studio-be/internal/dto"
	"prd-studio-be/internal/pkg/serverutils"
	"prd-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Revert(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("sessions", c.CreateSession)
	h.Get("sessions/document/:documentId", c.ListSessions)
	h.Get("sessions/:id/messages", c.GetMessages)
	h.Post("sessions/:id/messages", c.SendMessage)
	h.Post("sessions/:id/revert", c.Revert)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateChatSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	documentId, _ := uuid.Parse(ctx.Params("documentId"))

	res, err := c.chatService.ListSessions(ctx.Context(), userId, documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list chat sessions", res))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.chatService.GetMessages(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Chat session not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.SendChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = sessionId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		// One generation per session at a time; tell the client to wait.
		if errors.Is(err, service.ErrGenerationInFlight) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) Revert(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	sessionId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.RevertToMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = sessionId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Revert(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success revert document", res))
}
