package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/startupviet/advisor-api/internal/models"
	appErrors "github.com/startupviet/advisor-api/pkg/errors"
)

type sessionRepository interface {
	Put(ctx context.Context, userID string, session *models.ChatSession) error
	ListForUser(ctx context.Context, userID string) ([]models.ChatSession, error)
}

// SessionService persists chat sessions per user. A save replaces the stored
// session wholesale; the client owns the message history.
type SessionService struct {
	repo   sessionRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionService constructs the service.
func NewSessionService(repo sessionRepository, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Save stores the session under the given user, overwriting any prior state
// for the same session id. The server stamps the update time.
func (s *SessionService) Save(ctx context.Context, userID string, session *models.ChatSession) error {
	if userID == "" {
		return appErrors.Clone(appErrors.ErrUnauthenticated, "user identity required")
	}
	if session == nil || session.ID == "" {
		return appErrors.Clone(appErrors.ErrInvalidArgument, "session id is required")
	}

	session.UpdatedAt = s.now().UTC()
	if session.Messages == nil {
		session.Messages = []models.Message{}
	}

	if err := s.repo.Put(ctx, userID, session); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "session store unavailable")
	}

	s.logger.Debug("session saved",
		zap.String("user_id", userID),
		zap.String("session_id", session.ID),
		zap.Int("messages", len(session.Messages)))
	return nil
}

// List returns the caller's live sessions, most recently updated first.
// Archived sessions stay stored for the admin counters but are not listed.
// An empty user id yields an empty list rather than an error so that
// anonymous visitors get a working, if empty, history panel.
func (s *SessionService) List(ctx context.Context, userID string) ([]models.ChatSession, error) {
	if userID == "" {
		return []models.ChatSession{}, nil
	}

	sessions, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "session store unavailable")
	}

	live := make([]models.ChatSession, 0, len(sessions))
	for _, sess := range sessions {
		if !sess.Archived {
			live = append(live, sess)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].UpdatedAt.After(live[j].UpdatedAt)
	})
	return live, nil
}
