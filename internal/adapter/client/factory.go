package client

import (
	"context"
	"fmt"

	"github.com/ressKim-io/eccn-classifier/internal/domain/service"
	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/config"
)

// NewEmbedder builds the configured embedder. It returns nil when embeddings are disabled.
func NewEmbedder(ctx context.Context, cfg *config.EmbeddingConfig) (service.Embedder, error) {
	if !cfg.EmbeddingEnabled() {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case config.ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

// NewLLM builds the configured LLM. It returns nil when no LLM is configured.
func NewLLM(ctx context.Context, cfg *config.LLMConfig) (service.LLM, error) {
	if !cfg.LLMEnabled() {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case config.ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
