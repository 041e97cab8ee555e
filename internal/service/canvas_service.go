package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"prd-studio-be/internal/dto"
	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/pkg/logger"
	"prd-studio-be/internal/repository/memory"
	"prd-studio-be/internal/repository/specification"
	"prd-studio-be/internal/repository/unitofwork"
	"prd-studio-be/pkg/canvas"

	"github.com/google/uuid"
)

type ICanvasService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCanvasRequest) (*dto.CreateCanvasResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CanvasDTO, error)
	ListByDocument(ctx context.Context, userId uuid.UUID, documentId uuid.UUID) ([]dto.CanvasDTO, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCanvasRequest) (*dto.CanvasDTO, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type canvasService struct {
	uowFactory  unitofwork.RepositoryFactory
	bus         *canvas.Bus
	canvasState *memory.CanvasStateRepository
	logger      logger.ILogger
}

func NewCanvasService(
	uowFactory unitofwork.RepositoryFactory,
	bus *canvas.Bus,
	canvasState *memory.CanvasStateRepository,
	log logger.ILogger,
) ICanvasService {
	return &canvasService{
		uowFactory:  uowFactory,
		bus:         bus,
		canvasState: canvasState,
		logger:      log,
	}
}

func (s *canvasService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCanvasRequest) (*dto.CreateCanvasResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.DocumentId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, errors.New("document not found")
	}

	c := entity.Canvas{
		Id:         uuid.New(),
		DocumentId: req.DocumentId,
		UserId:     userId,
		Name:       req.Name,
		Data:       req.Data,
		CreatedAt:  time.Now(),
	}
	if err := uow.CanvasRepository().Create(ctx, &c); err != nil {
		return nil, err
	}

	return &dto.CreateCanvasResponse{Id: c.Id}, nil
}

func (s *canvasService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CanvasDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	c, err := uow.CanvasRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	result := toCanvasDTO(c)
	// Prefer the live scene when one editor already has the canvas open.
	if state, ok := s.canvasState.Get(c.Id); ok {
		result.Name = state.Name
		result.Data = state.Data
	}
	return &result, nil
}

func (s *canvasService) ListByDocument(ctx context.Context, userId uuid.UUID, documentId uuid.UUID) ([]dto.CanvasDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	canvases, err := uow.CanvasRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CanvasDTO, 0, len(canvases))
	for _, c := range canvases {
		out = append(out, toCanvasDTO(c))
	}
	return out, nil
}

// Update persists the mutation, refreshes the live state, and broadcasts
// the change to every open editor showing this canvas.
func (s *canvasService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCanvasRequest) (*dto.CanvasDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	c, err := uow.CanvasRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("canvas not found")
	}

	nameChanged := req.Name != "" && req.Name != c.Name
	dataChanged := req.Data != "" && req.Data != c.Data

	now := time.Now()
	if nameChanged {
		c.Name = req.Name
	}
	if dataChanged {
		c.Data = req.Data
	}
	c.UpdatedAt = &now

	if err := uow.CanvasRepository().Update(ctx, c); err != nil {
		return nil, err
	}

	s.canvasState.Save(c.Id, &memory.CanvasState{Name: c.Name, Data: c.Data})

	if dataChanged {
		s.publish(canvas.Event{
			CanvasID: c.Id,
			Type:     canvas.EventDataChanged,
			Data:     json.RawMessage(c.Data),
		})
	}
	if nameChanged {
		s.publish(canvas.Event{
			CanvasID: c.Id,
			Type:     canvas.EventNameChanged,
			Name:     c.Name,
		})
	}

	result := toCanvasDTO(c)
	return &result, nil
}

func (s *canvasService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	c, err := uow.CanvasRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if c == nil {
		return nil
	}

	if err := uow.CanvasRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.canvasState.Delete(id)
	s.publish(canvas.Event{CanvasID: id, Type: canvas.EventDeleted})
	return nil
}

func (s *canvasService) publish(event canvas.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event); err != nil {
		s.logger.Warn("CanvasService", "Failed to broadcast canvas event", map[string]interface{}{
			"canvas_id": event.CanvasID,
			"type":      event.Type,
			"error":     err.Error(),
		})
	}
}

func toCanvasDTO(c *entity.Canvas) dto.CanvasDTO {
	return dto.CanvasDTO{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		Name:       c.Name,
		Data:       c.Data,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
