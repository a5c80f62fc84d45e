package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/flowcraft-backend/internal/entity"
	"github.com/futig/flowcraft-backend/internal/pkg/formatter"
	"github.com/futig/flowcraft-backend/internal/pkg/validator"
	"github.com/futig/flowcraft-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SessionUsecase implements the question flow
type SessionUsecase struct {
	sessionRepo  repository.SessionRepository
	llmConnector LLMConnector
	formatters   *formatter.Factory
	locks        *sessionLocks
	logger       *zap.Logger
}

// NewUsecase creates a new session use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	llmConnector LLMConnector,
	logger *zap.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo:  sessionRepo,
		llmConnector: llmConnector,
		formatters:   formatter.NewFactory(),
		locks:        &sessionLocks{},
		logger:       logger,
	}
}

// StartSession generates questions for the idea and persists a new session
func (uc *SessionUsecase) StartSession(ctx context.Context, req *entity.StartSessionRequest) (*entity.StartSessionResponse, error) {
	if err := validator.ValidateStartSession(req); err != nil {
		return nil, err
	}

	questions, err := uc.generateQuestions(ctx, req.Idea)
	if err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.Create(ctx, req.Idea, questions)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	ctxzap.Info(ctx, "session created",
		zap.String("session_id", session.ID),
		zap.Int("questions", len(session.Questions)),
	)

	return &entity.StartSessionResponse{
		SessionID: session.ID,
		Question:  session.Questions[0],
	}, nil
}

// AnswerQuestion records the answer to the current question and returns the next one.
// Once every question is answered further calls change nothing.
func (uc *SessionUsecase) AnswerQuestion(ctx context.Context, req *entity.AnswerQuestionRequest) (*entity.AnswerQuestionResponse, error) {
	sessionID, err := repository.CanonicalSessionID(strings.TrimSpace(req.SessionID))
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	unlock := uc.locks.lock(sessionID)
	defer unlock()

	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.IsComplete() {
		ctxzap.Debug(ctx, "session already complete, answer ignored")
		return &entity.AnswerQuestionResponse{Message: entity.CompletionMessage}, nil
	}

	session.Answers = append(session.Answers, req.Answer)
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save answer: %w", err)
	}

	ctxzap.Info(ctx, "answer saved",
		zap.Int("answered", len(session.Answers)),
		zap.Int("total", len(session.Questions)),
	)

	next, ok := session.NextQuestion()
	if !ok {
		return &entity.AnswerQuestionResponse{Message: entity.CompletionMessage}, nil
	}

	return &entity.AnswerQuestionResponse{Question: next}, nil
}

// GetSession returns the stored session with its progress
func (uc *SessionUsecase) GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return toSessionDTO(session), nil
}

// ExportSession renders the idea and its question/answer pairs in the requested format
func (uc *SessionUsecase) ExportSession(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedSession, error) {
	fmtr, err := uc.formatters.Create(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidFormat, err)
	}

	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	content, err := fmtr.Format(formatter.FromSession(session))
	if err != nil {
		return nil, fmt.Errorf("format session: %w", err)
	}

	return &entity.ExportedSession{
		Content:       content,
		ContentType:   fmtr.ContentType(),
		FileExtension: fmtr.FileExtension(),
	}, nil
}
