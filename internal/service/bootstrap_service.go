package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/startupviet/advisor-api/internal/models"
	"github.com/startupviet/advisor-api/internal/provider"
)

type bootstrapDocumentRepository interface {
	Put(ctx context.Context, doc *models.Document) error
	All(ctx context.Context) ([]models.Document, error)
}

type bootstrapProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	Put(ctx context.Context, profile *models.UserProfile) error
}

// BootstrapService seeds the store on startup: a set of approved advisory
// articles and three demo accounts, one per role. Seeding is idempotent, so
// restarting the service never duplicates data.
type BootstrapService struct {
	documents bootstrapDocumentRepository
	profiles  bootstrapProfileRepository
	accounts  accountProvisioner
	logger    *zap.Logger
}

// NewBootstrapService constructs the service.
func NewBootstrapService(documents bootstrapDocumentRepository, profiles bootstrapProfileRepository, accounts accountProvisioner, logger *zap.Logger) *BootstrapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BootstrapService{
		documents: documents,
		profiles:  profiles,
		accounts:  accounts,
		logger:    logger,
	}
}

// Run seeds documents and demo users. Per-user provisioning failures are
// logged and skipped so one provider hiccup does not block startup.
func (s *BootstrapService) Run(ctx context.Context) error {
	if err := s.seedDocuments(ctx); err != nil {
		return err
	}
	s.seedDemoUsers(ctx)
	return nil
}

func (s *BootstrapService) seedDocuments(ctx context.Context) error {
	existing, err := s.documents.All(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for i := range seedDocuments {
		if err := s.documents.Put(ctx, &seedDocuments[i]); err != nil {
			return err
		}
	}
	s.logger.Info("seeded advisory documents", zap.Int("count", len(seedDocuments)))
	return nil
}

func (s *BootstrapService) seedDemoUsers(ctx context.Context) {
	for _, demo := range demoAccounts {
		existing, err := s.profiles.FindByEmail(ctx, demo.email)
		if err != nil {
			s.logger.Warn("demo user lookup failed", zap.String("email", demo.email), zap.Error(err))
			continue
		}
		if existing != nil {
			continue
		}

		subjectID, err := s.accounts.CreateUser(ctx, demo.email, demo.password, demo.name)
		if err != nil {
			if errors.Is(err, provider.ErrDuplicateEmail) {
				s.logger.Info("demo account already registered with provider", zap.String("email", demo.email))
			} else {
				s.logger.Warn("demo user provisioning failed", zap.String("email", demo.email), zap.Error(err))
			}
			continue
		}

		profile := &models.UserProfile{
			ID:    subjectID,
			Email: demo.email,
			Name:  demo.name,
			Role:  demo.role,
		}
		if err := s.profiles.Put(ctx, profile); err != nil {
			s.logger.Warn("demo profile write failed", zap.String("email", demo.email), zap.Error(err))
			continue
		}
		s.logger.Info("created demo user", zap.String("email", demo.email), zap.String("role", string(demo.role)))
	}
}

type demoAccount struct {
	email    string
	password string
	name     string
	role     models.UserRole
}

var demoAccounts = []demoAccount{
	{email: "user@demo.com", password: "demo123456", name: "Người dùng Demo", role: models.RoleUser},
	{email: "expert@demo.com", password: "demo123456", name: "Chuyên gia Demo", role: models.RoleExpert},
	{email: "admin@demo.com", password: "demo123456", name: "Admin Demo", role: models.RoleAdmin},
}

func seedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}
