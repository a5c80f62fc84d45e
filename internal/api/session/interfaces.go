package session

import (
	"context"

	"github.com/futig/flowcraft-backend/internal/entity"
)

type SessionUsecase interface {
	StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.StartSessionResponse, error)
	AnswerQuestion(ctx context.Context, req *entity.AnswerQuestionRequest) (*entity.AnswerQuestionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error)
	ExportSession(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedSession, error)
}
