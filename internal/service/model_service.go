package service

import (
	"context"

	"ollama-chat-be/internal/dto"
	"ollama-chat-be/internal/pkg/apperrors"
	"ollama-chat-be/pkg/llm"
)

type IModelService interface {
	List(ctx context.Context) (*dto.ModelsListResponse, error)
}

type modelService struct {
	llmProvider llm.Provider
}

func NewModelService(llmProvider llm.Provider) IModelService {
	return &modelService{llmProvider: llmProvider}
}

func (s *modelService) List(ctx context.Context) (*dto.ModelsListResponse, error) {
	models, err := s.llmProvider.ListModels(ctx)
	if err != nil {
		return nil, &apperrors.UpstreamError{Op: "list models", Err: err}
	}

	infos := make([]dto.ModelInfo, 0, len(models))
	for _, m := range models {
		infos = append(infos, dto.ModelInfo{
			Name:       m.Name,
			ModifiedAt: m.ModifiedAt,
			Size:       m.Size,
			Digest:     m.Digest,
		})
	}
	return &dto.ModelsListResponse{Models: infos}, nil
}
