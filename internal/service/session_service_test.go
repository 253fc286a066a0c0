package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ollama-chat-be/internal/dto"
	"ollama-chat-be/internal/pkg/apperrors"
	"ollama-chat-be/internal/repository/memory"
	"ollama-chat-be/pkg/events"
	"ollama-chat-be/pkg/rag"
	"ollama-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	repo      *memory.SessionRepository
	engine    *rag.Engine
	publisher *fakePublisher
	service   ISessionService
}

func newSessionFixture(t *testing.T, provider *fakeLLM) *sessionFixture {
	t.Helper()
	repo := memory.NewSessionRepository()
	engine := rag.NewEngine(filepath.Join(t.TempDir(), "rag_db.json"), constEmbedder{}, nopLogger{})
	publisher := &fakePublisher{}
	return &sessionFixture{
		repo:      repo,
		engine:    engine,
		publisher: publisher,
		service:   NewSessionService(repo, engine, provider, publisher),
	}
}

func TestSessionCreate(t *testing.T) {
	fx := newSessionFixture(t, &fakeLLM{models: []string{"llama3:latest"}})

	resp, err := fx.service.Create(context.Background(), &dto.CreateSessionRequest{
		Model: "llama3", SystemPrompt: "Be terse.",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionId)
	assert.Equal(t, "llama3", resp.Model)
	assert.Equal(t, "Session created successfully with model 'llama3'", resp.Message)

	session, found := fx.repo.Get(resp.SessionId)
	require.True(t, found)
	assert.Equal(t, "Be terse.", session.SystemPrompt)

	assert.Equal(t, []string{events.TypeSessionCreated}, fx.publisher.types())
}

func TestSessionCreateUnknownModel(t *testing.T) {
	fx := newSessionFixture(t, &fakeLLM{models: []string{"llama3:latest"}})

	_, err := fx.service.Create(context.Background(), &dto.CreateSessionRequest{
		Model: "gpt-oss",
	})

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "model", notFound.Resource)
	assert.Empty(t, fx.publisher.published)
}

func TestSessionListSortedByCreation(t *testing.T) {
	fx := newSessionFixture(t, &fakeLLM{models: []string{"llama3"}})

	fx.repo.Create("llama3", "older", "")
	time.Sleep(2 * time.Millisecond)
	fx.repo.Create("llama3", "newer", "")

	infos := fx.service.List(context.Background())
	require.Len(t, infos, 2)
	assert.Equal(t, "older", infos[0].SessionId)
	assert.Equal(t, "newer", infos[1].SessionId)
}

func TestSessionShowAndHistory(t *testing.T) {
	fx := newSessionFixture(t, &fakeLLM{models: []string{"llama3"}})
	fx.repo.Create("llama3", "s1", "")
	fx.repo.AppendMessage("s1", store.RoleUser, "hi")
	fx.repo.AppendMessage("s1", store.RoleAssistant, "hello")

	info, err := fx.service.Show(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, info.MessageCount)

	history, err := fx.service.History(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hello", history[1].Content)

	var notFound *apperrors.NotFoundError
	_, err = fx.service.Show(context.Background(), "missing")
	require.ErrorAs(t, err, &notFound)
	_, err = fx.service.History(context.Background(), "missing")
	require.ErrorAs(t, err, &notFound)
}

func TestSessionClearDropsHistoryAndChunks(t *testing.T) {
	fx := newSessionFixture(t, &fakeLLM{models: []string{"llama3"}})
	fx.repo.Create("llama3", "s1", "Be terse.")
	fx.repo.AppendMessage("s1", store.RoleUser, "hi")
	fx.engine.AddDocument(context.Background(), "s1",
		strings.Repeat("indexed content. ", 5), "doc.txt", "embed-model")
	require.Equal(t, 1, fx.engine.ChunkCount("s1"))

	require.NoError(t, fx.service.Clear(context.Background(), "s1"))

	assert.True(t, fx.repo.Exists("s1"), "clear keeps the session shell")
	assert.Empty(t, fx.repo.Messages("s1"))
	assert.Equal(t, 0, fx.engine.ChunkCount("s1"), "documents do not outlive the history")
}

func TestSessionDelete(t *testing.T) {
	fx := newSessionFixture(t, &fakeLLM{models: []string{"llama3"}})
	fx.repo.Create("llama3", "s1", "")
	fx.engine.AddDocument(context.Background(), "s1",
		strings.Repeat("indexed content. ", 5), "doc.txt", "embed-model")

	require.NoError(t, fx.service.Delete(context.Background(), "s1"))

	assert.False(t, fx.repo.Exists("s1"))
	assert.Equal(t, 0, fx.engine.ChunkCount("s1"))
	assert.Equal(t, []string{events.TypeSessionDeleted}, fx.publisher.types())

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, fx.service.Delete(context.Background(), "s1"), &notFound)
}
