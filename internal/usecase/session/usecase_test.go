package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/futig/flowcraft-backend/internal/entity"
	"github.com/futig/flowcraft-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConnector struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeConnector) Generate(_ context.Context, req *entity.LLMGenerateRequest) (*entity.LLMGenerateResponse, error) {
	f.prompts = append(f.prompts, req.Prompt)
	if f.err != nil {
		return nil, f.err
	}
	return &entity.LLMGenerateResponse{Text: f.text}, nil
}

type failingRepo struct {
	repository.SessionRepository
	createErr error
	saveErr   error
}

func (r *failingRepo) Create(ctx context.Context, idea string, questions []string) (*entity.Session, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	return r.SessionRepository.Create(ctx, idea, questions)
}

func (r *failingRepo) Save(ctx context.Context, session *entity.Session) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.SessionRepository.Save(ctx, session)
}

// slowRepo widens the read-modify-write window of AnswerQuestion.
type slowRepo struct {
	repository.SessionRepository
	delay time.Duration
}

func (r *slowRepo) Get(ctx context.Context, id string) (*entity.Session, error) {
	time.Sleep(r.delay)
	return r.SessionRepository.Get(ctx, id)
}

func newTestUsecase(conn LLMConnector) (*SessionUsecase, repository.SessionRepository) {
	repo := repository.NewSessionMemory()
	return NewUsecase(repo, conn, zap.NewNop()), repo
}

func TestRecipeAppScenario(t *testing.T) {
	ctx := context.Background()
	conn := &fakeConnector{text: "What cuisines?\nHow many servings?\n"}
	uc, repo := newTestUsecase(conn)

	started, err := uc.StartSession(ctx, &entity.StartSessionRequest{Idea: "Build a recipe app"})
	require.NoError(t, err)
	assert.Equal(t, "What cuisines?", started.Question)

	stored, err := repo.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"What cuisines?", "How many servings?"}, stored.Questions)
	assert.Equal(t, "Build a recipe app", stored.Idea)
	assert.Empty(t, stored.Answers)

	resp, err := uc.AnswerQuestion(ctx, &entity.AnswerQuestionRequest{SessionID: started.SessionID, Answer: "Italian"})
	require.NoError(t, err)
	assert.Equal(t, &entity.AnswerQuestionResponse{Question: "How many servings?"}, resp)

	resp, err = uc.AnswerQuestion(ctx, &entity.AnswerQuestionRequest{SessionID: started.SessionID, Answer: "4"})
	require.NoError(t, err)
	assert.Equal(t, &entity.AnswerQuestionResponse{Message: entity.CompletionMessage}, resp)

	resp, err = uc.AnswerQuestion(ctx, &entity.AnswerQuestionRequest{SessionID: started.SessionID, Answer: "extra"})
	require.NoError(t, err)
	assert.Equal(t, &entity.AnswerQuestionResponse{Message: entity.CompletionMessage}, resp)

	stored, err = repo.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Italian", "4"}, stored.Answers)
}

func TestStartSessionPrompt(t *testing.T) {
	conn := &fakeConnector{text: "Q?"}
	uc, _ := newTestUsecase(conn)

	_, err := uc.StartSession(context.Background(), &entity.StartSessionRequest{Idea: "A todo list"})
	require.NoError(t, err)

	require.Len(t, conn.prompts, 1)
	assert.Contains(t, conn.prompts[0], "Generate a concise list of clarifying questions")
	assert.Contains(t, conn.prompts[0], "\n\nIdea: A todo list")
}

func TestStartSessionEmptyIdea(t *testing.T) {
	conn := &fakeConnector{text: "Q?"}
	uc, _ := newTestUsecase(conn)

	_, err := uc.StartSession(context.Background(), &entity.StartSessionRequest{Idea: "   "})
	assert.ErrorIs(t, err, entity.ErrMissingField)
	assert.Empty(t, conn.prompts, "collaborator must not be called for an empty idea")
}

func TestStartSessionNoQuestionsGenerated(t *testing.T) {
	uc, _ := newTestUsecase(&fakeConnector{text: "\n   \n\t\n"})

	_, err := uc.StartSession(context.Background(), &entity.StartSessionRequest{Idea: "idea"})
	assert.ErrorIs(t, err, entity.ErrNoQuestionsGenerated)
}

func TestStartSessionCollaboratorFailure(t *testing.T) {
	uc, _ := newTestUsecase(&fakeConnector{err: errors.New("quota exceeded")})

	_, err := uc.StartSession(context.Background(), &entity.StartSessionRequest{Idea: "idea"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.NotErrorIs(t, err, entity.ErrNoQuestionsGenerated)
}

func TestStartSessionStoreFailure(t *testing.T) {
	repo := &failingRepo{SessionRepository: repository.NewSessionMemory(), createErr: errors.New("disk full")}
	uc := NewUsecase(repo, &fakeConnector{text: "Q?"}, zap.NewNop())

	_, err := uc.StartSession(context.Background(), &entity.StartSessionRequest{Idea: "idea"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAnswerQuestionUnknownSession(t *testing.T) {
	uc, _ := newTestUsecase(&fakeConnector{text: "Q?"})

	for _, id := range []string{uuid.New().String(), "not-a-uuid", ""} {
		_, err := uc.AnswerQuestion(context.Background(), &entity.AnswerQuestionRequest{SessionID: id, Answer: "a"})
		assert.ErrorIs(t, err, entity.ErrSessionNotFound, id)
	}
}

func TestAnswerQuestionSaveFailure(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewSessionMemory()
	repo := &failingRepo{SessionRepository: mem}
	uc := NewUsecase(repo, &fakeConnector{text: "Q1\nQ2"}, zap.NewNop())

	started, err := uc.StartSession(ctx, &entity.StartSessionRequest{Idea: "idea"})
	require.NoError(t, err)

	repo.saveErr = errors.New("permission denied")
	_, err = uc.AnswerQuestion(ctx, &entity.AnswerQuestionRequest{SessionID: started.SessionID, Answer: "a"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrSessionNotFound)

	stored, err := mem.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Empty(t, stored.Answers)
}

func TestAnswersNeverExceedQuestions(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUsecase(&fakeConnector{text: "Q1\nQ2\nQ3"})

	started, err := uc.StartSession(ctx, &entity.StartSessionRequest{Idea: "idea"})
	require.NoError(t, err)

	prev := 0
	for i := 0; i < 6; i++ {
		_, err := uc.AnswerQuestion(ctx, &entity.AnswerQuestionRequest{SessionID: started.SessionID, Answer: "a"})
		require.NoError(t, err)

		stored, err := repo.Get(ctx, started.SessionID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(stored.Answers), prev)
		assert.LessOrEqual(t, len(stored.Answers), len(stored.Questions))
		prev = len(stored.Answers)
	}
	assert.Equal(t, 3, prev)
}

func TestConcurrentAnswersAreNotLost(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUsecase(&fakeConnector{text: "Q1\nQ2\nQ3\nQ4\nQ5\nQ6\nQ7\nQ8"})

	started, err := uc.StartSession(ctx, &entity.StartSessionRequest{Idea: "idea"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AnswerQuestion(ctx, &entity.AnswerQuestionRequest{SessionID: started.SessionID, Answer: "a"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 8)
}

func TestConcurrentAnswersWithMixedCaseIDs(t *testing.T) {
	ctx := context.Background()
	repo := &slowRepo{SessionRepository: repository.NewSessionMemory(), delay: 20 * time.Millisecond}
	uc := NewUsecase(repo, &fakeConnector{text: "Q1\nQ2\nQ3\nQ4\nQ5\nQ6\nQ7\nQ8"}, zap.NewNop())

	started, err := uc.StartSession(ctx, &entity.StartSessionRequest{Idea: "idea"})
	require.NoError(t, err)

	ids := []string{
		started.SessionID,
		strings.ToUpper(started.SessionID),
		"{" + started.SessionID + "}",
		"urn:uuid:" + started.SessionID,
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := uc.AnswerQuestion(ctx, &entity.AnswerQuestionRequest{SessionID: id, Answer: "a"})
			assert.NoError(t, err)
		}(ids[i%len(ids)])
	}
	wg.Wait()

	stored, err := repo.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 8)
}

func TestAnswerQuestionCorruptedRecord(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo, err := repository.NewSessionFile(dir)
	require.NoError(t, err)
	uc := NewUsecase(repo, &fakeConnector{text: "Q?"}, zap.NewNop())

	id := uuid.New().String()
	record := `{"idea":"x","questions":["q1","q2"],"answers":[]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), []byte(record), 0o644))

	_, err = uc.AnswerQuestion(ctx, &entity.AnswerQuestionRequest{SessionID: id, Answer: "a"})
	assert.ErrorIs(t, err, entity.ErrCorruptedSession)
	assert.NotErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestGetSessionProgress(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase(&fakeConnector{text: "Q1\nQ2"})

	started, err := uc.StartSession(ctx, &entity.StartSessionRequest{Idea: "idea"})
	require.NoError(t, err)
	_, err = uc.AnswerQuestion(ctx, &entity.AnswerQuestionRequest{SessionID: started.SessionID, Answer: "a"})
	require.NoError(t, err)

	dto, err := uc.GetSession(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, dto.Answered)
	assert.Equal(t, 2, dto.Total)
	assert.False(t, dto.Complete)
}

func TestExportSession(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase(&fakeConnector{text: "Q1"})

	started, err := uc.StartSession(ctx, &entity.StartSessionRequest{Idea: "idea"})
	require.NoError(t, err)

	exported, err := uc.ExportSession(ctx, started.SessionID, entity.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, ".md", exported.FileExtension)
	assert.Contains(t, string(exported.Content), "Q1")

	_, err = uc.ExportSession(ctx, started.SessionID, "html")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)

	_, err = uc.ExportSession(ctx, uuid.New().String(), entity.FormatMarkdown)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestParseQuestions(t *testing.T) {
	assert.Equal(t,
		[]string{"What cuisines?", "How many servings?"},
		parseQuestions("  What cuisines?  \n\n\tHow many servings?\r\n"),
	)
	assert.Empty(t, parseQuestions(""))
}
