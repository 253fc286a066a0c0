package service

import (
	"context"
	"fmt"
	"strings"

	"ollama-chat-be/internal/dto"
	"ollama-chat-be/internal/pkg/apperrors"
	"ollama-chat-be/internal/repository/memory"
	"ollama-chat-be/pkg/events"
	"ollama-chat-be/pkg/extract"
	"ollama-chat-be/pkg/rag"
)

type IDocumentService interface {
	Upload(ctx context.Context, sessionID, filename string, data []byte) (*dto.UploadDocumentResponse, error)
}

type documentService struct {
	sessionRepo    *memory.SessionRepository
	ragEngine      *rag.Engine
	extractor      *extract.Extractor
	embeddingModel string
	publisher      IPublisherService
}

func NewDocumentService(
	sessionRepo *memory.SessionRepository,
	ragEngine *rag.Engine,
	extractor *extract.Extractor,
	embeddingModel string,
	publisher IPublisherService,
) IDocumentService {
	return &documentService{
		sessionRepo:    sessionRepo,
		ragEngine:      ragEngine,
		extractor:      extractor,
		embeddingModel: embeddingModel,
		publisher:      publisher,
	}
}

// Upload extracts text from the file and indexes it for the session. A
// document that yields no text is a client error; a document whose chunks
// partially fail to embed is not (coverage just shrinks).
func (s *documentService) Upload(ctx context.Context, sessionID, filename string, data []byte) (*dto.UploadDocumentResponse, error) {
	if !s.sessionRepo.Exists(sessionID) {
		return nil, apperrors.SessionNotFound(sessionID)
	}

	text, err := s.extractor.Extract(data, filename)
	if err != nil {
		return nil, &apperrors.UpstreamError{Op: "text extraction", Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &apperrors.ValidationError{
			Message: fmt.Sprintf("no text could be extracted from '%s'", filename),
		}
	}

	stored := s.ragEngine.AddDocument(ctx, sessionID, text, filename, s.embeddingModel)

	s.publisher.Publish(ctx, events.New(events.TypeDocumentIndexed, map[string]interface{}{
		"session_id":    sessionID,
		"filename":      filename,
		"chunks_stored": stored,
	}))

	return &dto.UploadDocumentResponse{
		SessionId:    sessionID,
		Filename:     filename,
		ChunksStored: stored,
	}, nil
}
