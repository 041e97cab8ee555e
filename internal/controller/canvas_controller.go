package controller

import (
	"prd-studio-be/internal/dto"
	"prd-studio-be/internal/pkg/serverutils"
	"prd-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICanvasController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListByDocument(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type canvasController struct {
	canvasService service.ICanvasService
}

func NewCanvasController(canvasService service.ICanvasService) ICanvasController {
	return &canvasController{
		canvasService: canvasService,
	}
}

func (c *canvasController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/canvas/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("document/:documentId", c.ListByDocument)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *canvasController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateCanvasRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.canvasService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create canvas", res))
}

func (c *canvasController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.canvasService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Canvas not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show canvas", res))
}

func (c *canvasController) ListByDocument(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	documentId, _ := uuid.Parse(ctx.Params("documentId"))

	res, err := c.canvasService.ListByDocument(ctx.Context(), userId, documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list canvases", res))
}

func (c *canvasController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateCanvasRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.canvasService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update canvas", res))
}

func (c *canvasController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.canvasService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete canvas", fiber.Map{"id": id}))
}
