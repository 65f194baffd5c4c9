// cmd/dhirux/compose.go
package main

import (
	"fmt"

	"github.com/dhirajp15/dhirux-workflows/internal/agent"
	"github.com/dhirajp15/dhirux-workflows/internal/agentic"
	"github.com/dhirajp15/dhirux-workflows/internal/clock"
	"github.com/dhirajp15/dhirux-workflows/internal/config"
	"github.com/dhirajp15/dhirux-workflows/internal/types"
	"github.com/dhirajp15/dhirux-workflows/internal/worker"
	"github.com/dhirajp15/dhirux-workflows/pkg/llm"
	"github.com/dhirajp15/dhirux-workflows/pkg/llm/openai"
)

// buildService assembles the orchestrator from configuration: the
// primary agent with its tool registry, the classic fallback worker,
// and the shared clock.
func buildService(cfg *config.Config, transcripts types.TranscriptStore) (*agentic.Service, error) {
	clk := clock.New()

	llmCfg := &llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}
	provider := openai.New(llmCfg)

	registry := agent.NewRegistry()
	registry.Register(agent.NewClockTool(clk))

	ag, err := agent.New(provider, llmCfg, cfg.Agentic.SystemPrompt, cfg.Agentic.ModelID, registry)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}

	workerProvider := openai.New(&llm.Config{
		BaseURL: cfg.Worker.BaseURL,
		APIKey:  cfg.Worker.APIKey,
		Model:   cfg.Worker.Model,
	})
	wk := worker.New(workerProvider, cfg.Agentic.SystemPrompt)

	return agentic.NewService(agentic.Options{
		Enabled:       cfg.Agentic.Enabled,
		AllowFallback: cfg.Agentic.AllowFallback,
		Agent:         ag,
		Worker:        wk,
		Clock:         clk,
		Transcripts:   transcripts,
	}), nil
}
