package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/flowcraft-backend/internal/config"
	"github.com/futig/flowcraft-backend/internal/entity"
	"github.com/futig/flowcraft-backend/internal/integration/common"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIConnector sends prompts to any OpenAI-compatible chat completions API.
type OpenAIConnector struct {
	config config.LLMConnectorConfig
	client *openai.Client
	logger *zap.Logger
}

func NewOpenAIConnector(cfg config.LLMConnectorConfig, logger *zap.Logger) *OpenAIConnector {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientConfig.HTTPClient = common.NewHTTPClient(cfg.HTTPClientConfig)

	return &OpenAIConnector{
		config: cfg,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}
}

func (c *OpenAIConnector) Generate(ctx context.Context, req *entity.LLMGenerateRequest) (*entity.LLMGenerateResponse, error) {
	ctxzap.Info(ctx, "generating text via openai", zap.String("model", c.config.Model))

	text, err := withRetry(ctx, c.config.Retry, config.LLMProviderOpenAI, func() (string, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
			},
		})
		if err != nil {
			return "", fmt.Errorf("openai request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("openai response has no choices")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "text generated successfully", zap.Int("text_length", len(text)))

	return &entity.LLMGenerateResponse{Text: text}, nil
}
