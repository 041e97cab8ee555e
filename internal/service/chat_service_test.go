package service

import (
	"context"
	"testing"
	"time"

	"prd-studio-be/internal/dto"
	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/repository/memory"
	"prd-studio-be/pkg/aigen"
	"prd-studio-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(uow *fakeUnitOfWork, provider *stubProvider) (IChatService, *memory.GenerationStateRepository) {
	state := memory.NewGenerationStateRepository()
	svc := NewChatService(&fakeFactory{uow: uow}, aigen.NewGenerator(provider), state, nopLogger{})
	return svc, state
}

func TestCreateSessionDefaultsTitleFromDocument(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	doc := seedDocument(uow, userId)

	svc, _ := newChatService(uow, &stubProvider{})

	res, err := svc.CreateSession(context.Background(), userId, &dto.CreateChatSessionRequest{DocumentId: doc.Id})
	require.NoError(t, err)
	require.Len(t, uow.sessions, 1)
	assert.Equal(t, res.Id, uow.sessions[0].Id)
	assert.Equal(t, "Chat about Checkout revamp", uow.sessions[0].Title)
}

func TestCreateSessionRequiresOwnedDocument(t *testing.T) {
	uow := newFakeUnitOfWork()
	doc := seedDocument(uow, uuid.New())

	svc, _ := newChatService(uow, &stubProvider{})

	_, err := svc.CreateSession(context.Background(), uuid.New(), &dto.CreateChatSessionRequest{DocumentId: doc.Id})
	require.Error(t, err)
}

func TestSendMessageCompletesAndSnapshotsDocument(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	doc := seedDocument(uow, userId)

	provider := &stubProvider{response: "Consider splitting checkout into two steps."}
	svc, state := newChatService(uow, provider)

	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateChatSessionRequest{DocumentId: doc.Id})
	require.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendChatMessageRequest{
		SessionId: created.Id,
		Content:   "How should I structure checkout?",
	})
	require.NoError(t, err)

	assert.Equal(t, "user", res.UserMessage.Role)
	assert.Equal(t, string(entity.ChatMessageComplete), res.UserMessage.Status)
	assert.Equal(t, "assistant", res.AssistantMessage.Role)
	assert.Equal(t, string(entity.ChatMessageComplete), res.AssistantMessage.Status)
	assert.Equal(t, "Consider splitting checkout into two steps.", res.AssistantMessage.Content)
	assert.Greater(t, res.AssistantMessage.TokensUsed, 0)

	// The user turn froze the document as it was at send time.
	require.Len(t, uow.messages, 2)
	assert.Equal(t, doc.Content, uow.messages[0].DocumentSnapshot)

	// The in-flight mark must be released once the turn finishes.
	assert.False(t, state.IsGenerating(created.Id))
}

func TestSendMessageRecordsClassifiedError(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	doc := seedDocument(uow, userId)

	provider := &stubProvider{err: &llm.StatusError{Provider: "gemini", Code: 401}}
	svc, _ := newChatService(uow, provider)

	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateChatSessionRequest{DocumentId: doc.Id})
	require.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendChatMessageRequest{
		SessionId: created.Id,
		Content:   "hello",
	})
	require.NoError(t, err, "a failed generation is still a recorded turn")

	assert.Equal(t, string(entity.ChatMessageError), res.AssistantMessage.Status)
	assert.Equal(t, "Invalid API key", res.AssistantMessage.ErrorMessage)
	assert.Empty(t, res.AssistantMessage.Content)
}

func TestSendMessageRejectsConcurrentGeneration(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	doc := seedDocument(uow, userId)

	svc, state := newChatService(uow, &stubProvider{response: "ok"})

	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateChatSessionRequest{DocumentId: doc.Id})
	require.NoError(t, err)

	require.True(t, state.TryAcquire(created.Id), "simulate an in-flight generation")
	defer state.Release(created.Id)

	_, err = svc.SendMessage(context.Background(), userId, &dto.SendChatMessageRequest{
		SessionId: created.Id,
		Content:   "second request",
	})
	assert.ErrorIs(t, err, ErrGenerationInFlight)
	assert.Empty(t, uow.messages, "the rejected turn leaves no messages behind")
}

func TestSendMessageBuildsHistoryFromCompletedTurns(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	doc := seedDocument(uow, userId)

	provider := &stubProvider{response: "second answer"}
	svc, _ := newChatService(uow, provider)

	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateChatSessionRequest{DocumentId: doc.Id})
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), userId, &dto.SendChatMessageRequest{SessionId: created.Id, Content: "first question"})
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), userId, &dto.SendChatMessageRequest{SessionId: created.Id, Content: "second question"})
	require.NoError(t, err)

	// Prior turns plus the new prompt go to the provider in order.
	require.GreaterOrEqual(t, len(provider.lastChat), 3)
	assert.Equal(t, "user", provider.lastChat[0].Role)
	assert.Equal(t, "first question", provider.lastChat[0].Content)
	assert.Equal(t, "assistant", provider.lastChat[1].Role)
}

func TestRevertRestoresSnapshotAndKeepsChatHistory(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	doc := seedDocument(uow, userId)
	originalContent := doc.Content

	provider := &stubProvider{response: "answer"}
	svc, _ := newChatService(uow, provider)

	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateChatSessionRequest{DocumentId: doc.Id})
	require.NoError(t, err)

	first, err := svc.SendMessage(context.Background(), userId, &dto.SendChatMessageRequest{SessionId: created.Id, Content: "turn one"})
	require.NoError(t, err)

	// The document changes between turns; the second snapshot differs.
	doc.Content = `{"root":{"type":"root","version":1,"children":[{"type":"paragraph","version":1}]}}`
	now := time.Now()
	doc.UpdatedAt = &now

	_, err = svc.SendMessage(context.Background(), userId, &dto.SendChatMessageRequest{SessionId: created.Id, Content: "turn two"})
	require.NoError(t, err)
	require.Len(t, uow.messages, 4)

	res, err := svc.Revert(context.Background(), userId, &dto.RevertToMessageRequest{
		SessionId: created.Id,
		MessageId: first.UserMessage.Id,
	})
	require.NoError(t, err)
	assert.Equal(t, originalContent, res.Content)
	assert.Equal(t, originalContent, uow.documents[0].Content)

	// Only the document gets a new state; the conversation stays whole.
	require.Len(t, uow.messages, 4, "revert must not mutate chat history")
	assert.Equal(t, "turn one", uow.messages[0].Content)
	assert.Equal(t, "turn two", uow.messages[2].Content)
}

func TestRevertRejectsAssistantMessages(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	doc := seedDocument(uow, userId)

	svc, _ := newChatService(uow, &stubProvider{response: "answer"})

	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateChatSessionRequest{DocumentId: doc.Id})
	require.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), userId, &dto.SendChatMessageRequest{SessionId: created.Id, Content: "turn"})
	require.NoError(t, err)

	_, err = svc.Revert(context.Background(), userId, &dto.RevertToMessageRequest{
		SessionId: created.Id,
		MessageId: res.AssistantMessage.Id,
	})
	require.Error(t, err)
}

func TestGetMessagesScopedToOwner(t *testing.T) {
	uow := newFakeUnitOfWork()
	userId := uuid.New()
	doc := seedDocument(uow, userId)

	svc, _ := newChatService(uow, &stubProvider{response: "answer"})

	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateChatSessionRequest{DocumentId: doc.Id})
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), userId, &dto.SendChatMessageRequest{SessionId: created.Id, Content: "turn"})
	require.NoError(t, err)

	messages, err := svc.GetMessages(context.Background(), userId, created.Id)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	stranger, err := svc.GetMessages(context.Background(), uuid.New(), created.Id)
	require.NoError(t, err)
	assert.Nil(t, stranger)
}
