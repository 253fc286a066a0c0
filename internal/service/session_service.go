package service

import (
	"context"
	"fmt"
	"sort"

	"ollama-chat-be/internal/dto"
	"ollama-chat-be/internal/pkg/apperrors"
	"ollama-chat-be/internal/repository/memory"
	"ollama-chat-be/pkg/events"
	"ollama-chat-be/pkg/llm"
	"ollama-chat-be/pkg/rag"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	List(ctx context.Context) []*dto.SessionInfo
	Show(ctx context.Context, id string) (*dto.SessionInfo, error)
	History(ctx context.Context, id string) ([]*dto.MessageDTO, error)
	Clear(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	sessionRepo *memory.SessionRepository
	ragEngine   *rag.Engine
	llmProvider llm.Provider
	publisher   IPublisherService
}

func NewSessionService(
	sessionRepo *memory.SessionRepository,
	ragEngine *rag.Engine,
	llmProvider llm.Provider,
	publisher IPublisherService,
) ISessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		ragEngine:   ragEngine,
		llmProvider: llmProvider,
		publisher:   publisher,
	}
}

// Create registers a session after verifying the model is actually served
// by the inference backend.
func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if !s.llmProvider.ModelExists(ctx, req.Model) {
		return nil, apperrors.ModelNotFound(req.Model)
	}

	id := s.sessionRepo.Create(req.Model, req.SessionId, req.SystemPrompt)

	s.publisher.Publish(ctx, events.New(events.TypeSessionCreated, map[string]interface{}{
		"session_id": id,
		"model":      req.Model,
	}))

	return &dto.CreateSessionResponse{
		SessionId: id,
		Model:     req.Model,
		Message:   fmt.Sprintf("Session created successfully with model '%s'", req.Model),
	}, nil
}

func (s *sessionService) List(ctx context.Context) []*dto.SessionInfo {
	sessions := s.sessionRepo.List()

	infos := make([]*dto.SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		infos = append(infos, &dto.SessionInfo{
			SessionId:    sess.ID,
			Model:        sess.Model,
			MessageCount: sess.Len(),
			CreatedAt:    sess.CreatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}

func (s *sessionService) Show(ctx context.Context, id string) (*dto.SessionInfo, error) {
	session, found := s.sessionRepo.Get(id)
	if !found {
		return nil, apperrors.SessionNotFound(id)
	}
	return &dto.SessionInfo{
		SessionId:    session.ID,
		Model:        session.Model,
		MessageCount: session.Len(),
		CreatedAt:    session.CreatedAt,
	}, nil
}

func (s *sessionService) History(ctx context.Context, id string) ([]*dto.MessageDTO, error) {
	if !s.sessionRepo.Exists(id) {
		return nil, apperrors.SessionNotFound(id)
	}

	messages := s.sessionRepo.Messages(id)
	history := make([]*dto.MessageDTO, 0, len(messages))
	for _, msg := range messages {
		history = append(history, &dto.MessageDTO{Role: msg.Role, Content: msg.Content})
	}
	return history, nil
}

// Clear empties the message history and drops the session's document chunks.
// The session shell (id, model binding, system prompt) survives.
func (s *sessionService) Clear(ctx context.Context, id string) error {
	if !s.sessionRepo.Clear(id) {
		return apperrors.SessionNotFound(id)
	}
	s.ragEngine.ClearSession(id)
	return nil
}

// Delete removes the session and its documents entirely.
func (s *sessionService) Delete(ctx context.Context, id string) error {
	if !s.sessionRepo.Delete(id) {
		return apperrors.SessionNotFound(id)
	}
	s.ragEngine.ClearSession(id)

	s.publisher.Publish(ctx, events.New(events.TypeSessionDeleted, map[string]interface{}{
		"session_id": id,
	}))
	return nil
}
