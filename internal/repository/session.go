package repository

import (
	"context"
	"fmt"

	"github.com/futig/flowcraft-backend/internal/entity"
	"github.com/google/uuid"
)

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	Create(ctx context.Context, idea string, questions []string) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, session *entity.Session) error
}

func newSession(idea string, questions []string) *entity.Session {
	return &entity.Session{
		ID:        uuid.New().String(),
		Idea:      idea,
		Questions: append([]string(nil), questions...),
		Answers:   []string{},
	}
}

// CanonicalSessionID returns the lowercase hyphenated form of a UUID
// identifier. Anything else is reported as an unknown session, so an
// identifier can never be turned into a path outside the storage directory.
func CanonicalSessionID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %s", entity.ErrSessionNotFound, id)
	}
	return parsed.String(), nil
}
