package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoboJunior/Coding-Buddy/pkg/agent"
	"github.com/RoboJunior/Coding-Buddy/pkg/config"
	"github.com/RoboJunior/Coding-Buddy/pkg/llm"
	"github.com/RoboJunior/Coding-Buddy/pkg/server"
)

// ServeCmd starts one agent process.
type ServeCmd struct {
	Agent     string `help:"Agent to run (orchestrator, error_extractor, stackredhub)." enum:"orchestrator,error_extractor,stackredhub" required:""`
	Addr      string `help:"Listen address (defaults to the agent's standard port)."`
	PublicURL string `name:"public-url" help:"Base URL advertised on the agent card."`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	model, err := llm.NewGemini(llm.GeminiConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	})
	if err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}
	defer model.Close()

	addr := c.Addr
	if addr == "" {
		addr = defaultAddr(c.Agent)
	}
	publicURL := c.PublicURL
	if publicURL == "" {
		publicURL = "http://localhost" + addr
	}

	a, err := buildAgent(c.Agent, cfg, model, publicURL)
	if err != nil {
		return err
	}

	srv := server.NewHTTPServer(a, addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	return srv.Start()
}

func buildAgent(name string, cfg *config.Config, model llm.Model, publicURL string) (*agent.Agent, error) {
	switch name {
	case "orchestrator":
		return agent.NewOrchestrator(cfg, model, publicURL)
	case "error_extractor":
		return agent.NewErrorExtractor(cfg, model, publicURL)
	case "stackredhub":
		return agent.NewStackRedHub(cfg, model, publicURL)
	default:
		return nil, fmt.Errorf("unknown agent %q", name)
	}
}

func defaultAddr(agentName string) string {
	switch agentName {
	case "error_extractor":
		return config.DefaultErrorExtractorAddr
	case "stackredhub":
		return config.DefaultStackRedHubAddr
	default:
		return config.DefaultOrchestratorAddr
	}
}
