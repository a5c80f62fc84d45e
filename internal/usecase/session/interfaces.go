package session

import (
	"context"

	"github.com/futig/flowcraft-backend/internal/entity"
)

type LLMConnector interface {
	Generate(ctx context.Context, req *entity.LLMGenerateRequest) (*entity.LLMGenerateResponse, error)
}
