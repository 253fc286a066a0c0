package main

import (
	"context"
	"log"

	"ollama-chat-be/internal/bootstrap"
	"ollama-chat-be/internal/config"
	"ollama-chat-be/internal/server"
	"ollama-chat-be/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Printf("Background consumer error: %v", err)
	}

	color.Cyan("Ollama Chat Backend")
	color.Green("Ollama at %s, default model %s", cfg.Ai.OllamaBaseURL, cfg.Ai.DefaultChatModel)

	// 5. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
