package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/flowcraft-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var mockQuestions = []string{
	"Who are the primary users of this idea?",
	"What problem does it solve for them?",
	"Which features are required for the first version?",
	"Are there any existing tools or systems it must integrate with?",
	"What constraints (budget, timeline, technology) apply?",
}

// MockConnector returns canned questions without calling an external service.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, req *entity.LLMGenerateRequest) (*entity.LLMGenerateResponse, error) {
	ctxzap.Info(ctx, "[MOCK] generating text via LLM")

	var sb strings.Builder
	for i, q := range mockQuestions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q)
	}

	return &entity.LLMGenerateResponse{Text: sb.String()}, nil
}
