package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/flowcraft-backend/internal/config"
	"github.com/futig/flowcraft-backend/internal/entity"
	"github.com/futig/flowcraft-backend/internal/integration/common"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiConnector sends prompts to the Google Gemini API.
type GeminiConnector struct {
	config config.LLMConnectorConfig
	client *genai.Client
	logger *zap.Logger
}

func NewGeminiConnector(
	ctx context.Context,
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) (*GeminiConnector, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: common.NewHTTPClient(cfg.HTTPClientConfig),
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiConnector{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

// Generate sends a single-turn prompt and returns the concatenated text parts.
func (c *GeminiConnector) Generate(ctx context.Context, req *entity.LLMGenerateRequest) (*entity.LLMGenerateResponse, error) {
	ctxzap.Info(ctx, "generating text via gemini", zap.String("model", c.config.Model))

	text, err := withRetry(ctx, c.config.Retry, config.LLMProviderGemini, func() (string, error) {
		result, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(req.Prompt), nil)
		if err != nil {
			return "", fmt.Errorf("gemini request failed: %w", err)
		}
		return extractGeminiText(result), nil
	})
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "text generated successfully", zap.Int("text_length", len(text)))

	return &entity.LLMGenerateResponse{Text: text}, nil
}

func extractGeminiText(result *genai.GenerateContentResponse) string {
	if result == nil {
		return ""
	}

	var sb strings.Builder
	for _, candidate := range result.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			sb.WriteString(part.Text)
		}
		// Only the first candidate with content is used.
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String()
}
