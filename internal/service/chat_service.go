package service

import (
	"context"
	"strings"
	"time"

	"ollama-chat-be/internal/dto"
	"ollama-chat-be/internal/pkg/apperrors"
	"ollama-chat-be/internal/pkg/logger"
	"ollama-chat-be/internal/repository/memory"
	"ollama-chat-be/pkg/events"
	"ollama-chat-be/pkg/llm"
	"ollama-chat-be/pkg/rag"
	"ollama-chat-be/pkg/rag/prompt"
	"ollama-chat-be/pkg/store"
	"ollama-chat-be/pkg/tools"
)

type IChatService interface {
	SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)

	// StreamChat runs one chat turn, forwarding response fragments to out as
	// they arrive. out is closed when the stream ends. On success the
	// concatenated reply has been committed to history; on error the turn
	// rolled back and history is untouched.
	StreamChat(ctx context.Context, req *dto.ChatRequest, out chan<- string) (*dto.ChatResponse, error)

	QuickChat(ctx context.Context, req *dto.QuickChatRequest) (*dto.QuickChatResponse, error)
}

type chatService struct {
	sessionRepo    *memory.SessionRepository
	ragEngine      *rag.Engine
	llmProvider    llm.Provider
	searcher       *tools.Searcher
	publisher      IPublisherService
	logger         logger.ILogger
	embeddingModel string
	searchEnabled  bool
	chatTimeout    time.Duration
}

func NewChatService(
	sessionRepo *memory.SessionRepository,
	ragEngine *rag.Engine,
	llmProvider llm.Provider,
	searcher *tools.Searcher,
	publisher IPublisherService,
	log logger.ILogger,
	embeddingModel string,
	searchEnabled bool,
	chatTimeout time.Duration,
) IChatService {
	return &chatService{
		sessionRepo:    sessionRepo,
		ragEngine:      ragEngine,
		llmProvider:    llmProvider,
		searcher:       searcher,
		publisher:      publisher,
		logger:         log,
		embeddingModel: embeddingModel,
		searchEnabled:  searchEnabled,
		chatTimeout:    chatTimeout,
	}
}

// preparedTurn is everything a turn needs after validation and context
// building. The session's turn lock is held until release() is called, so
// concurrent turns on the same session serialize rather than interleave
// their append/rollback sequences.
type preparedTurn struct {
	session  *store.Session
	messages []llm.Message
	release  func()
}

// prepareTurn covers the Validating and ContextBuilding states: the session
// must exist, the requested model must equal the bound model, and the user
// message is appended before context is built so it stays visible to later
// turns even if this one fails (the rollback path removes it again).
func (cs *chatService) prepareTurn(ctx context.Context, req *dto.ChatRequest) (*preparedTurn, error) {
	session, found := cs.sessionRepo.Get(req.SessionId)
	if !found {
		return nil, apperrors.SessionNotFound(req.SessionId)
	}
	if session.Model != req.Model {
		return nil, &apperrors.ModelMismatchError{
			SessionModel:   session.Model,
			RequestedModel: req.Model,
		}
	}

	session.LockTurn()
	session.Append(store.RoleUser, req.Message)

	// Retrieval and tool search are best-effort: both degrade to empty or
	// an inline note, neither aborts the turn.
	docContext := cs.ragEngine.Query(ctx, req.SessionId, req.Message, cs.embeddingModel, rag.DefaultTopK)

	toolContext := ""
	if req.UseSearch && cs.searchEnabled {
		toolContext = cs.searcher.Search(ctx, req.Message)
	}

	messages := prompt.NewBuilder(session.SystemPrompt, docContext, toolContext, session.Snapshot()).Build()

	return &preparedTurn{
		session:  session,
		messages: messages,
		release:  session.UnlockTurn,
	}, nil
}

// rollback undoes the optimistic user append so a failed turn is a no-op
// from the caller's perspective.
func (cs *chatService) rollback(turn *preparedTurn, cause error) {
	turn.session.RemoveLastIfUser()
	cs.logger.Warn("CHAT", "Turn rolled back after inference failure", map[string]interface{}{
		"session_id": turn.session.ID,
		"error":      cause.Error(),
	})
}

func (cs *chatService) commit(ctx context.Context, turn *preparedTurn, reply string) *dto.ChatResponse {
	turn.session.Append(store.RoleAssistant, reply)

	cs.publisher.Publish(ctx, events.New(events.TypeChatCompleted, map[string]interface{}{
		"session_id": turn.session.ID,
		"model":      turn.session.Model,
		"messages":   turn.session.Len(),
	}))

	history := turn.session.Snapshot()
	historyDTO := make([]dto.MessageDTO, 0, len(history))
	for _, msg := range history {
		historyDTO = append(historyDTO, dto.MessageDTO{Role: msg.Role, Content: msg.Content})
	}
	return &dto.ChatResponse{
		SessionId:           turn.session.ID,
		Model:               turn.session.Model,
		Response:            reply,
		ConversationHistory: historyDTO,
	}
}

func (cs *chatService) SendChat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	turn, err := cs.prepareTurn(ctx, req)
	if err != nil {
		return nil, err
	}
	defer turn.release()

	inferCtx, cancel := context.WithTimeout(ctx, cs.chatTimeout)
	defer cancel()

	reply, err := cs.llmProvider.Chat(inferCtx, turn.messages, llm.WithModel(req.Model))
	if err != nil {
		cs.rollback(turn, err)
		return nil, &apperrors.InferenceError{Err: err}
	}

	return cs.commit(ctx, turn, reply), nil
}

func (cs *chatService) StreamChat(ctx context.Context, req *dto.ChatRequest, out chan<- string) (*dto.ChatResponse, error) {
	defer close(out)

	turn, err := cs.prepareTurn(ctx, req)
	if err != nil {
		return nil, err
	}
	defer turn.release()

	inferCtx, cancel := context.WithTimeout(ctx, cs.chatTimeout)
	defer cancel()

	fragments, errs := cs.llmProvider.ChatStream(inferCtx, turn.messages, llm.WithModel(req.Model))

	// Forward fragments as they arrive but commit only after the stream is
	// fully drained: a mid-stream failure must not leave a partial
	// assistant message in history.
	var reply strings.Builder
	for fragment := range fragments {
		reply.WriteString(fragment)
		out <- fragment
	}
	if err := <-errs; err != nil {
		cs.rollback(turn, err)
		return nil, &apperrors.InferenceError{Err: err}
	}

	return cs.commit(ctx, turn, reply.String()), nil
}

// QuickChat is a sessionless one-off turn: no memory before, none after.
func (cs *chatService) QuickChat(ctx context.Context, req *dto.QuickChatRequest) (*dto.QuickChatResponse, error) {
	if !cs.llmProvider.ModelExists(ctx, req.Model) {
		return nil, apperrors.ModelNotFound(req.Model)
	}

	inferCtx, cancel := context.WithTimeout(ctx, cs.chatTimeout)
	defer cancel()

	reply, err := cs.llmProvider.Chat(inferCtx,
		[]llm.Message{{Role: store.RoleUser, Content: req.Message}},
		llm.WithModel(req.Model),
	)
	if err != nil {
		return nil, &apperrors.InferenceError{Err: err}
	}

	return &dto.QuickChatResponse{
		Model:    req.Model,
		Message:  req.Message,
		Response: reply,
	}, nil
}
