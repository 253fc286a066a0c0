package bootstrap

import (
	"time"

	"ollama-chat-be/internal/config"
	"ollama-chat-be/internal/controller"
	"ollama-chat-be/internal/pkg/logger"
	"ollama-chat-be/internal/repository/memory"
	"ollama-chat-be/internal/service"
	internalWS "ollama-chat-be/internal/websocket"
	"ollama-chat-be/pkg/embedding"
	"ollama-chat-be/pkg/extract"
	llmOllama "ollama-chat-be/pkg/llm/ollama"
	"ollama-chat-be/pkg/rag"
	"ollama-chat-be/pkg/tools"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const eventTopic = "CHAT_ENGINE_EVENTS"

type Container struct {
	// Controllers
	SessionController  controller.ISessionController
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController
	ModelController    controller.IModelController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisher := service.NewPublisherService(pubSub, eventTopic, sysLogger)

	// 3. Providers
	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL)
	llmProvider := llmOllama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.DefaultChatModel)
	searcher := tools.NewSearcher()
	extractor := extract.NewExtractor()

	// 4. Stores
	sessionRepo := memory.NewSessionRepository()
	ragEngine := rag.NewEngine(cfg.Rag.DBPath, embeddingProvider, sysLogger)

	// 5. Services
	chatService := service.NewChatService(
		sessionRepo,
		ragEngine,
		llmProvider,
		searcher,
		publisher,
		sysLogger,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.SearchEnabled,
		time.Duration(cfg.Ai.ChatTimeoutSeconds)*time.Second,
	)
	sessionService := service.NewSessionService(sessionRepo, ragEngine, llmProvider, publisher)
	documentService := service.NewDocumentService(sessionRepo, ragEngine, extractor, cfg.Ai.EmbeddingModel, publisher)
	modelService := service.NewModelService(llmProvider)

	streamHandler := internalWS.NewStreamHandler(chatService, sysLogger)

	return &Container{
		SessionController:  controller.NewSessionController(sessionService),
		ChatController:     controller.NewChatController(chatService, streamHandler),
		DocumentController: controller.NewDocumentController(documentService),
		ModelController:    controller.NewModelController(modelService),
		ConsumerService:    service.NewConsumerService(pubSub, eventTopic, sysLogger),
		Logger:             sysLogger,
	}
}
