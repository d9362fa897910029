package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"kids-lecture/api/internal/config"
	"kids-lecture/api/internal/handle"
	"kids-lecture/api/internal/httpserver"
	"kids-lecture/api/internal/lecture"
	"kids-lecture/api/internal/llm"
	"kids-lecture/api/internal/llm/anthropic"
	"kids-lecture/api/internal/llm/gemini"
	"kids-lecture/api/internal/llm/openai"
	"kids-lecture/api/internal/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	engines := &llm.Engines{
		Gemini:    gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		OpenAI:    openai.NewWithBaseURL(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel),
		Anthropic: anthropic.New(cfg.AnthropicAPIKey, cfg.AnthropicModel),
	}
	engine, err := engines.GetEngine(cfg.LLMProvider)
	if err != nil {
		log.Fatal("llm provider", "provider", cfg.LLMProvider, "error", err)
	}
	log.Info("llm engine selected", "engine", engine.Name(), "model", engine.GetModel())

	svc := lecture.NewService(engine, log)
	h := handle.New(svc, cfg.GenerateTimeout, log)
	router := httpserver.NewRouter(h, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpserver.Start(ctx, cfg.Addr(), router, log); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
