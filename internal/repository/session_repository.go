package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/startupviet/advisor-api/internal/models"
)

const sessionKeyPrefix = "session:"

// SessionRepository stores chat sessions under "session:<userId>:<sessionId>".
// Ownership is enforced by the key prefix, not a foreign-key check.
type SessionRepository struct {
	kv *KVStore
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(kv *KVStore) *SessionRepository {
	return &SessionRepository{kv: kv}
}

// Put overwrites the whole session record for the user. Last writer wins.
func (r *SessionRepository) Put(ctx context.Context, userID string, session *models.ChatSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	return r.kv.Set(ctx, sessionKeyPrefix+userID+":"+session.ID, raw)
}

// ListForUser returns every session owned by the user.
func (r *SessionRepository) ListForUser(ctx context.Context, userID string) ([]models.ChatSession, error) {
	return r.scan(ctx, sessionKeyPrefix+userID+":")
}

// All returns every session across all users.
func (r *SessionRepository) All(ctx context.Context) ([]models.ChatSession, error) {
	return r.scan(ctx, sessionKeyPrefix)
}

func (r *SessionRepository) scan(ctx context.Context, prefix string) ([]models.ChatSession, error) {
	values, err := r.kv.GetByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	sessions := make([]models.ChatSession, 0, len(values))
	for _, raw := range values {
		var session models.ChatSession
		if err := json.Unmarshal(raw, &session); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}
