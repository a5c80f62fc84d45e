package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/flowcraft-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const questionsPromptTemplate = "You are a helpful assistant refining workflows. Generate a concise list of clarifying questions " +
	"to gather missing details for the following idea. Provide only questions:\n\n" +
	"Idea: %s"

func buildQuestionsPrompt(idea string) string {
	return fmt.Sprintf(questionsPromptTemplate, idea)
}

// parseQuestions keeps every non-blank line of the completion, trimmed, in order.
func parseQuestions(text string) []string {
	lines := strings.Split(text, "\n")
	questions := make([]string, 0, len(lines))
	for _, line := range lines {
		if q := strings.TrimSpace(line); q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}

// generateQuestions calls the LLM and splits its answer into questions
func (uc *SessionUsecase) generateQuestions(ctx context.Context, idea string) ([]string, error) {
	resp, err := uc.llmConnector.Generate(ctx, &entity.LLMGenerateRequest{
		Prompt: buildQuestionsPrompt(idea),
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	questions := parseQuestions(resp.Text)
	if len(questions) == 0 {
		return nil, entity.ErrNoQuestionsGenerated
	}

	ctxzap.Debug(ctx, "questions parsed", zap.Int("count", len(questions)))

	return questions, nil
}

func toSessionDTO(session *entity.Session) *entity.SessionDTO {
	return &entity.SessionDTO{
		ID:        session.ID,
		Idea:      session.Idea,
		Questions: session.Questions,
		Answers:   session.Answers,
		Answered:  len(session.Answers),
		Total:     len(session.Questions),
		Complete:  session.IsComplete(),
	}
}
