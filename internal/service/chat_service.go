package service

import (
	"context"
	"errors"
	"time"

	"prd-studio-be/internal/dto"
	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/pkg/logger"
	"prd-studio-be/internal/repository/memory"
	"prd-studio-be/internal/repository/specification"
	"prd-studio-be/internal/repository/unitofwork"
	"prd-studio-be/pkg/aigen"
	"prd-studio-be/pkg/blockdoc"
	"prd-studio-be/pkg/llm"

	"github.com/google/uuid"
)

var ErrGenerationInFlight = errors.New("a generation is already in progress for this session")

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.CreateChatSessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID, documentId uuid.UUID) ([]dto.ChatSessionDTO, error)
	GetMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]dto.ChatMessageDTO, error)
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendChatMessageRequest) (*dto.SendChatMessageResponse, error)
	Revert(ctx context.Context, userId uuid.UUID, req *dto.RevertToMessageRequest) (*dto.RevertToMessageResponse, error)
}

type chatService struct {
	uowFactory      unitofwork.RepositoryFactory
	generator       *aigen.Generator
	generationState *memory.GenerationStateRepository
	logger          logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	generator *aigen.Generator,
	generationState *memory.GenerationStateRepository,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:      uowFactory,
		generator:       generator,
		generationState: generationState,
		logger:          log,
	}
}

func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateChatSessionRequest) (*dto.CreateChatSessionResponse, error) {
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

	title := req.Title
	if title == "" {
		title = "Chat about " + document.Title
	}

	session := entity.ChatSession{
		Id:         uuid.New(),
		UserId:     userId,
		DocumentId: req.DocumentId,
		Title:      title,
		CreatedAt:  time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.CreateChatSessionResponse{Id: session.Id}, nil
}

func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID, documentId uuid.UUID) ([]dto.ChatSessionDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChatSessionDTO, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, dto.ChatSessionDTO{
			Id:         sess.Id,
			DocumentId: sess.DocumentId,
			Title:      sess.Title,
			CreatedAt:  sess.CreatedAt,
			UpdatedAt:  sess.UpdatedAt,
		})
	}
	return out, nil
}

func (s *chatService) GetMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]dto.ChatMessageDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChatMessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageDTO(m))
	}
	return out, nil
}

// SendMessage runs one turn of the conversation. The user message
// snapshots the document so the session can later revert to this point;
// the assistant reply moves pending -> generating -> complete or error.
func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendChatMessageRequest) (*dto.SendChatMessageResponse, error) {
	if !s.generationState.TryAcquire(req.SessionId) {
		return nil, ErrGenerationInFlight
	}
	defer s.generationState.Release(req.SessionId)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("chat session not found")
	}

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: session.DocumentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, errors.New("document not found")
	}

	userMessage := entity.ChatMessage{
		Id:               uuid.New(),
		ChatSessionId:    session.Id,
		Role:             "user",
		Content:          req.Content,
		Status:           entity.ChatMessageComplete,
		DocumentSnapshot: document.Content,
		CreatedAt:        time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	assistantMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          "assistant",
		Status:        entity.ChatMessagePending,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMessage); err != nil {
		return nil, err
	}

	history, err := s.buildHistory(ctx, uow, session.Id, userMessage.Id)
	if err != nil {
		return nil, err
	}

	assistantMessage.Status = entity.ChatMessageGenerating
	if err := uow.ChatMessageRepository().Update(ctx, &assistantMessage); err != nil {
		return nil, err
	}

	parser := blockdoc.NewParser()
	docContext, err := parser.ToMarkdown(document.Content)
	if err != nil {
		docContext = blockdoc.PlainText(document.Content)
	}

	result, genErr := s.generator.Generate(ctx, aigen.Request{
		Kind:        aigen.KindChat,
		DocContext:  docContext,
		Instruction: req.Content,
		History:     history,
	})

	now := time.Now()
	assistantMessage.UpdatedAt = &now
	if genErr != nil {
		assistantMessage.Status = entity.ChatMessageError
		assistantMessage.ErrorMessage = genErr.Error()
		s.logger.Warn("ChatService", "Generation failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      genErr.Error(),
		})
	} else {
		assistantMessage.Status = entity.ChatMessageComplete
		assistantMessage.Content = result.Content
		assistantMessage.TokensUsed = result.TokensUsed
	}
	if err := uow.ChatMessageRepository().Update(ctx, &assistantMessage); err != nil {
		return nil, err
	}

	return &dto.SendChatMessageResponse{
		UserMessage:      toMessageDTO(&userMessage),
		AssistantMessage: toMessageDTO(&assistantMessage),
	}, nil
}

// buildHistory collects the completed turns preceding the current user
// message, oldest first, for the provider's chat endpoint.
func (s *chatService) buildHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId, currentMessageId uuid.UUID) ([]llm.Message, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	var history []llm.Message
	for _, m := range messages {
		if m.Id == currentMessageId {
			continue
		}
		if m.Status != entity.ChatMessageComplete || m.Content == "" {
			continue
		}
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	return history, nil
}

// Revert restores the document to the snapshot taken when the target
// user message was sent. The conversation itself is left alone: only
// the document gets a new state.
func (s *chatService) Revert(ctx context.Context, userId uuid.UUID, req *dto.RevertToMessageRequest) (*dto.RevertToMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("chat session not found")
	}

	target, err := uow.ChatMessageRepository().FindOne(ctx,
		specification.ByID{ID: req.MessageId},
		specification.ByChatSessionID{SessionID: req.SessionId},
		specification.ByRole{Role: "user"},
	)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errors.New("message not found")
	}
	if target.DocumentSnapshot == "" {
		return nil, errors.New("message has no document snapshot")
	}

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: session.DocumentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, errors.New("document not found")
	}

	now := time.Now()
	document.Content = target.DocumentSnapshot
	document.UpdatedAt = &now
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	return &dto.RevertToMessageResponse{
		DocumentId: document.Id,
		Content:    document.Content,
	}, nil
}

func (s *chatService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	return uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
}

func toMessageDTO(m *entity.ChatMessage) dto.ChatMessageDTO {
	return dto.ChatMessageDTO{
		Id:           m.Id,
		Role:         m.Role,
		Content:      m.Content,
		Status:       string(m.Status),
		ErrorMessage: m.ErrorMessage,
		TokensUsed:   m.TokensUsed,
		CreatedAt:    m.CreatedAt,
	}
}
