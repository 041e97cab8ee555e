package controller

import (
	"prd-studio-be/internal/dto"
	"prd-studio-be/internal/pkg/serverutils"
	"prd-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReviewController interface {
	RegisterRoutes(r fiber.Router)
	GenerateFeatures(ctx *fiber.Ctx) error
	GenerateTasks(ctx *fiber.Ctx) error
	ListFeatures(ctx *fiber.Ctx) error
	ListTasks(ctx *fiber.Ctx) error
	BulkAcceptFeatures(ctx *fiber.Ctx) error
	BulkDeleteFeatures(ctx *fiber.Ctx) error
	BulkDeleteTasks(ctx *fiber.Ctx) error
	PromoteToRoadmap(ctx *fiber.Ctx) error
	ShowRoadmap(ctx *fiber.Ctx) error
}

type reviewController struct {
	reviewService service.IReviewService
}

func NewReviewController(reviewService service.IReviewService) IReviewController {
	return &reviewController{
		reviewService: reviewService,
	}
}

func (c *reviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/review/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("features/generate", c.GenerateFeatures)
	h.Post("tasks/generate", c.GenerateTasks)
	h.Get("features/:documentId", c.ListFeatures)
	h.Get("tasks/:documentId", c.ListTasks)
	h.Post("features/accept", c.BulkAcceptFeatures)
	h.Post("features/delete", c.BulkDeleteFeatures)
	h.Post("tasks/delete", c.BulkDeleteTasks)
	h.Post("roadmap/promote", c.PromoteToRoadmap)
	h.Get("roadmap/:id", c.ShowRoadmap)
}

func (c *reviewController) GenerateFeatures(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.GenerateItemsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.GenerateFeatures(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate features", res))
}

func (c *reviewController) GenerateTasks(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.GenerateItemsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.GenerateTasks(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate tasks", res))
}

func (c *reviewController) ListFeatures(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	documentId, _ := uuid.Parse(ctx.Params("documentId"))

	res, err := c.reviewService.ListFeatures(ctx.Context(), userId, documentId, ctx.Query("status"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list features", res))
}

func (c *reviewController) ListTasks(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	documentId, _ := uuid.Parse(ctx.Params("documentId"))

	res, err := c.reviewService.ListTasks(ctx.Context(), userId, documentId, ctx.Query("status"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tasks", res))
}

func (c *reviewController) BulkAcceptFeatures(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.BulkItemsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.BulkAcceptFeatures(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Summary, res))
}

func (c *reviewController) BulkDeleteFeatures(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.BulkItemsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.BulkDeleteFeatures(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Summary, res))
}

func (c *reviewController) BulkDeleteTasks(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.BulkItemsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.BulkDeleteTasks(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Summary, res))
}

func (c *reviewController) PromoteToRoadmap(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.PromoteToRoadmapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.PromoteToRoadmap(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success promote to roadmap", res))
}

func (c *reviewController) ShowRoadmap(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.reviewService.ShowRoadmap(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Roadmap not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show roadmap", res))
}
