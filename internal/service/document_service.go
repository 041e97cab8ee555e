package service

import (
	"context"
	"fmt"
	"time"

	"prd-studio-be/internal/dto"
	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/pkg/logger"
	"prd-studio-be/internal/pkg/mailer"
	"prd-studio-be/internal/repository/specification"
	"prd-studio-be/internal/repository/unitofwork"
	"prd-studio-be/pkg/aigen"
	"prd-studio-be/pkg/blockdoc"
	"prd-studio-be/pkg/events"
	pktNats "prd-studio-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	List(ctx context.Context, userId uuid.UUID, search string) ([]*dto.ListDocumentItem, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Export(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ExportDocumentResponse, error)
	Share(ctx context.Context, userId uuid.UUID, req *dto.ShareDocumentRequest) error
	GenerateDraft(ctx context.Context, userId uuid.UUID, req *dto.GenerateDraftRequest) (*dto.GenerateDraftResponse, error)
}

type documentService struct {
	uowFactory     unitofwork.RepositoryFactory
	generator      *aigen.Generator
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	generator *aigen.Generator,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:     uowFactory,
		generator:      generator,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *documentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	content := req.Content
	if content == "" && req.TemplateId != nil {
		// Seed the document body from the template's sections.
		template, err := uow.TemplateRepository().FindOne(ctx,
			specification.ByID{ID: *req.TemplateId},
			specification.VisibleToUser{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if template != nil {
			content = documentFromTemplate(template)
		}
	}
	if content == "" {
		encoded, err := blockdoc.Encode(blockdoc.EmptyDocument())
		if err != nil {
			return nil, err
		}
		content = encoded
	}

	document := entity.Document{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    content,
		TemplateId: req.TemplateId,
		UserId:     userId,
		CreatedAt:  time.Now(),
	}

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewDocumentCreated(document.Id.String(), userId.String()))

	return &dto.CreateDocumentResponse{Id: document.Id}, nil
}

// documentFromTemplate renders template sections into a block document:
// each section becomes a heading followed by its description paragraph.
func documentFromTemplate(template *entity.Template) string {
	builder := blockdoc.NewBuilder()
	markdown := ""
	for _, section := range template.Sections {
		markdown += "## " + section.Title + "\n\n"
		if section.Description != "" {
			markdown += section.Description + "\n\n"
		}
	}
	doc := builder.FromMarkdown(markdown)
	encoded, err := blockdoc.Encode(doc)
	if err != nil {
		return ""
	}
	return encoded
}

func (s *documentService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil
	}

	return &dto.ShowDocumentResponse{
		Id:         document.Id,
		Title:      document.Title,
		Content:    document.Content,
		TemplateId: document.TemplateId,
		CreatedAt:  document.CreatedAt,
		UpdatedAt:  document.UpdatedAt,
	}, nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID, search string) ([]*dto.ListDocumentItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if search != "" {
		specs = append(specs, specification.TitleContains{Query: search})
	}

	documents, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ListDocumentItem, 0, len(documents))
	for _, d := range documents {
		items = append(items, &dto.ListDocumentItem{
			Id:        d.Id,
			Title:     d.Title,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return items, nil
}

func (s *documentService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil
	}

	now := time.Now()
	document.Title = req.Title
	document.Content = req.Content
	document.UpdatedAt = &now

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	return &dto.UpdateDocumentResponse{Id: document.Id}, nil
}

func (s *documentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if document == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	// Canvases live inside the document; they go with it.
	canvases, err := uow.CanvasRepository().FindAll(ctx, specification.ByDocumentID{DocumentID: id})
	if err != nil {
		return err
	}
	for _, c := range canvases {
		if err := uow.CanvasRepository().Delete(ctx, c.Id); err != nil {
			return err
		}
	}

	// Chat sessions and their messages too.
	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specification.ByDocumentID{DocumentID: id})
	if err != nil {
		return err
	}
	for _, sess := range sessions {
		if err := uow.ChatMessageRepository().DeleteWhere(ctx, specification.ByChatSessionID{SessionID: sess.Id}); err != nil {
			return err
		}
		if err := uow.ChatSessionRepository().Delete(ctx, sess.Id); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishEvent(ctx, events.NewDocumentDeleted(id.String(), userId.String()))
	return nil
}

func (s *documentService) Export(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ExportDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil
	}

	parser := blockdoc.NewParser()
	markdown, err := parser.ToMarkdown(document.Content)
	if err != nil {
		return nil, err
	}

	return &dto.ExportDocumentResponse{
		Id:       document.Id,
		Title:    document.Title,
		Markdown: markdown,
	}, nil
}

func (s *documentService) Share(ctx context.Context, userId uuid.UUID, req *dto.ShareDocumentRequest) error {
	export, err := s.Export(ctx, userId, req.Id)
	if err != nil {
		return err
	}
	if export == nil {
		return fmt.Errorf("document not found")
	}

	// Mail delivery can be slow; don't hold the request on SMTP.
	go func() {
		if err := s.emailService.SendDocumentExport(req.Email, export.Title, export.Markdown); err != nil {
			s.logger.Error("DocumentService", "Failed to send document export", map[string]interface{}{
				"document_id": req.Id,
				"error":       err.Error(),
			})
		}
	}()

	s.publishEvent(ctx, events.NewDocumentShared(req.Id.String(), userId.String(), req.Email))
	return nil
}

func (s *documentService) GenerateDraft(ctx context.Context, userId uuid.UUID, req *dto.GenerateDraftRequest) (*dto.GenerateDraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil
	}

	parser := blockdoc.NewParser()
	docContext, err := parser.ToMarkdown(document.Content)
	if err != nil {
		docContext = blockdoc.PlainText(document.Content)
	}

	result, err := s.generator.Generate(ctx, aigen.Request{
		Kind:        aigen.KindDraftPRD,
		DocContext:  docContext,
		Instruction: req.Instruction,
	})
	if err != nil {
		// The document stays untouched; the caller gets the classified message.
		return nil, err
	}

	return &dto.GenerateDraftResponse{
		Content:    result.Content,
		Reasoning:  result.Reasoning,
		TokensUsed: result.TokensUsed,
	}, nil
}

func (s *documentService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("DocumentService", "Failed to publish event", map[string]interface{}{
			"event_type": event.EventType(),
			"error":      err.Error(),
		})
	}
}
