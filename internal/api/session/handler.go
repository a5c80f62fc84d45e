package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/flowcraft-backend/internal/entity"
	"github.com/futig/flowcraft-backend/internal/pkg/logger"
	"github.com/futig/flowcraft-backend/internal/pkg/response"
	"github.com/futig/flowcraft-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase SessionUsecase
}

func NewHandler(usecase SessionUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// StartSession handles POST /start-session/ - generate questions for an idea
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	var req entity.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctxzap.Info(ctx, "starting session", zap.Int("idea_length", len(req.Idea)))

	resp, err := h.usecase.StartSession(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, "error generating questions", err)
		return
	}

	ctxzap.Info(ctx, "session started successfully", zap.String("session_id", resp.SessionID))
	response.Success(w, resp)
}

// AnswerQuestion handles POST /answer-question/ - store an answer and return the next question
func (h *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AnswerQuestion")

	var req entity.AnswerQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx = logger.AddFields(ctx, zap.String("session_id", req.SessionID))
	ctxzap.Info(ctx, "submitting answer")

	resp, err := h.usecase.AnswerQuestion(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, "error processing answer", err)
		return
	}

	response.Success(w, resp)
}

// GetSession handles GET /sessions/{id} - session record with progress
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetSession"),
	)

	ctxzap.Debug(ctx, "fetching session")

	session, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, "error loading session", err)
		return
	}

	response.Success(w, session)
}

// ExportSession handles GET /sessions/{id}/export - download questions and answers
func (h *Handler) ExportSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "ExportSession"),
	)

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	format := entity.ResultFormat(formatParam)
	if err := validator.ValidateExportFormat(format); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid format parameter", err)
		return
	}

	exported, err := h.usecase.ExportSession(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, "error exporting session", err)
		return
	}

	ctxzap.Info(ctx, "session exported", zap.String("format", string(format)))
	w.Header().Set("Content-Type", exported.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"session-%s%s\"", sessionID, exported.FileExtension))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(exported.Content); err != nil {
		ctxzap.Error(ctx, "failed to write export", zap.Error(err))
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	msg := message
	if err != nil && status != http.StatusNotFound {
		msg = fmt.Sprintf("%s: %v", message, err)
	}
	response.JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: msg,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "Session not found.", err)
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidFormat), errors.Is(err, entity.ErrNoQuestionsGenerated):
		h.respondError(ctx, w, http.StatusBadRequest, message, err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, message, err)
	}
}
