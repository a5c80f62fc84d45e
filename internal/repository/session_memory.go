package repository

import (
	"context"
	"fmt"

	"github.com/futig/flowcraft-backend/internal/entity"
	"github.com/patrickmn/go-cache"
)

var _ SessionRepository = &SessionMemory{}

// SessionMemory keeps sessions in process memory. Records never expire.
type SessionMemory struct {
	cache *cache.Cache
}

func NewSessionMemory() *SessionMemory {
	return &SessionMemory{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionMemory) Create(ctx context.Context, idea string, questions []string) (*entity.Session, error) {
	session := newSession(idea, questions)

	if err := r.cache.Add(session.ID, session.Clone(), cache.NoExpiration); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

func (r *SessionMemory) Get(ctx context.Context, id string) (*entity.Session, error) {
	sessionID, err := CanonicalSessionID(id)
	if err != nil {
		return nil, err
	}

	item, ok := r.cache.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrSessionNotFound, sessionID)
	}

	session, ok := item.(*entity.Session)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrCorruptedSession, sessionID)
	}

	return session.Clone(), nil
}

func (r *SessionMemory) Save(ctx context.Context, session *entity.Session) error {
	sessionID, err := CanonicalSessionID(session.ID)
	if err != nil {
		return err
	}

	r.cache.Set(sessionID, session.Clone(), cache.NoExpiration)
	return nil
}
