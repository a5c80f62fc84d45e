package llm

import (
	"context"
	"fmt"

	"github.com/futig/flowcraft-backend/internal/config"
	"github.com/futig/flowcraft-backend/internal/entity"
	"go.uber.org/zap"
)

// Connector is implemented by every generation backend.
type Connector interface {
	Generate(ctx context.Context, req *entity.LLMGenerateRequest) (*entity.LLMGenerateResponse, error)
}

var (
	_ Connector = &GeminiConnector{}
	_ Connector = &OpenAIConnector{}
	_ Connector = &MockConnector{}
)

// NewConnector picks the backend named by cfg.Provider.
func NewConnector(ctx context.Context, cfg config.LLMConnectorConfig, logger *zap.Logger) (Connector, error) {
	switch cfg.Provider {
	case config.LLMProviderGemini:
		return NewGeminiConnector(ctx, cfg, logger)
	case config.LLMProviderOpenAI:
		return NewOpenAIConnector(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
