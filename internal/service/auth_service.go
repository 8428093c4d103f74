package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/startupviet/advisor-api/internal/models"
	"github.com/startupviet/advisor-api/internal/provider"
	appErrors "github.com/startupviet/advisor-api/pkg/errors"
)

type authProfileRepository interface {
	Get(ctx context.Context, subjectID string) (*models.UserProfile, error)
	FindByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	Put(ctx context.Context, profile *models.UserProfile) error
}

type accountProvisioner interface {
	CreateUser(ctx context.Context, email, password, name string) (string, error)
}

// AuthService bridges the external identity provider and the local profile
// store. Access tokens are verified locally against the provider's shared
// HS256 secret; account creation goes through the provider's admin API.
type AuthService struct {
	profiles  authProfileRepository
	accounts  accountProvisioner
	validator *validator.Validate
	logger    *zap.Logger
	jwtSecret []byte
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(profiles authProfileRepository, accounts accountProvisioner, validate *validator.Validate, logger *zap.Logger, jwtSecret string) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		profiles:  profiles,
		accounts:  accounts,
		validator: validate,
		logger:    logger,
		jwtSecret: []byte(jwtSecret),
	}
}

// VerifyToken resolves a bearer credential to the identity it was issued for.
// Any verification failure surfaces as Unauthenticated; a role is never
// assigned here.
func (s *AuthService) VerifyToken(tokenString string) (*models.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AccessTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthenticated.Code, appErrors.ErrUnauthenticated.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.AccessTokenClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid token claims")
	}

	return &models.Identity{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Name:      claims.UserMetadata.Name,
	}, nil
}

// Profile verifies the credential and returns the caller's profile, creating
// a default one on first sight.
func (s *AuthService) Profile(ctx context.Context, tokenString string) (*models.UserProfile, error) {
	identity, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Get(ctx, identity.SubjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "profile store unavailable")
	}
	if profile != nil {
		return profile, nil
	}

	profile = defaultProfile(identity)
	if err := s.profiles.Put(ctx, profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "profile store unavailable")
	}
	s.logger.Info("created default profile", zap.String("subject_id", identity.SubjectID))
	return profile, nil
}

// Signup validates the payload, provisions an account with the identity
// provider, and records a default profile.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validator.Struct(req); err != nil {
		return "", signupValidationError(err)
	}

	existing, err := s.profiles.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "profile store unavailable")
	}
	if existing != nil {
		return "", appErrors.Clone(appErrors.ErrDuplicateEmail, signupDuplicateMessage)
	}

	subjectID, err := s.accounts.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, provider.ErrDuplicateEmail) {
			return "", appErrors.Clone(appErrors.ErrDuplicateEmail, signupDuplicateMessage)
		}
		return "", appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "identity provider unavailable")
	}

	profile := &models.UserProfile{
		ID:    subjectID,
		Email: req.Email,
		Name:  req.Name,
		Role:  models.RoleUser,
	}
	if err := s.profiles.Put(ctx, profile); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "profile store unavailable")
	}

	s.logger.Info("account created", zap.String("subject_id", subjectID))
	return subjectID, nil
}

// User-facing validation messages in the UI language.
const (
	signupInvalidEmailMessage  = "Email không hợp lệ"
	signupShortPasswordMessage = "Mật khẩu phải có ít nhất 6 ký tự"
	signupEmptyNameMessage     = "Tên không được để trống"
	signupDuplicateMessage     = "Email này đã được đăng ký. Vui lòng đăng nhập hoặc sử dụng email khác."
)

func signupValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Field() {
		case "Email":
			return appErrors.Clone(appErrors.ErrInvalidArgument, signupInvalidEmailMessage)
		case "Password":
			return appErrors.Clone(appErrors.ErrInvalidArgument, signupShortPasswordMessage)
		case "Name":
			return appErrors.Clone(appErrors.ErrInvalidArgument, signupEmptyNameMessage)
		}
	}
	return appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, appErrors.ErrInvalidArgument.Status, "invalid signup payload")
}

func defaultProfile(identity *models.Identity) *models.UserProfile {
	name := identity.Name
	if name == "" {
		if at := strings.Index(identity.Email, "@"); at > 0 {
			name = identity.Email[:at]
		} else {
			name = "User"
		}
	}
	return &models.UserProfile{
		ID:    identity.SubjectID,
		Email: identity.Email,
		Name:  name,
		Role:  models.RoleUser,
	}
}
