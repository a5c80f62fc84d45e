package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/futig/flowcraft-backend/internal/entity"
)

const sessionFileExt = ".json"

var _ SessionRepository = &SessionFile{}

// SessionFile stores every session as <session_id>.json inside dir.
type SessionFile struct {
	dir string
}

// NewSessionFile creates dir if it does not exist yet.
func NewSessionFile(dir string) (*SessionFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &SessionFile{dir: dir}, nil
}

func (r *SessionFile) Create(ctx context.Context, idea string, questions []string) (*entity.Session, error) {
	session := newSession(idea, questions)

	if err := r.write(session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

func (r *SessionFile) Get(ctx context.Context, id string) (*entity.Session, error) {
	sessionID, err := CanonicalSessionID(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path(sessionID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entity.ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrCorruptedSession, sessionID, err)
	}
	if session.ID != sessionID {
		return nil, fmt.Errorf("%w: %s: record holds session_id %q", entity.ErrCorruptedSession, sessionID, session.ID)
	}
	if session.Answers == nil {
		session.Answers = []string{}
	}

	return &session, nil
}

func (r *SessionFile) Save(ctx context.Context, session *entity.Session) error {
	if _, err := CanonicalSessionID(session.ID); err != nil {
		return err
	}

	if err := r.write(session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (r *SessionFile) path(sessionID string) string {
	return filepath.Join(r.dir, sessionID+sessionFileExt)
}

// write replaces the whole record through a temp file and rename.
func (r *SessionFile) write(session *entity.Session) error {
	data, err := json.MarshalIndent(session, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, session.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path(session.ID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
