package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startupviet/advisor-api/internal/models"
	"github.com/startupviet/advisor-api/internal/provider"
	appErrors "github.com/startupviet/advisor-api/pkg/errors"
)

const testJWTSecret = "test-secret"

type fakeAuthProfiles struct {
	byID    map[string]*models.UserProfile
	byEmail map[string]*models.UserProfile
	putErr  error
}

func newFakeAuthProfiles() *fakeAuthProfiles {
	return &fakeAuthProfiles{
		byID:    make(map[string]*models.UserProfile),
		byEmail: make(map[string]*models.UserProfile),
	}
}

func (f *fakeAuthProfiles) Get(_ context.Context, subjectID string) (*models.UserProfile, error) {
	return f.byID[subjectID], nil
}

func (f *fakeAuthProfiles) FindByEmail(_ context.Context, email string) (*models.UserProfile, error) {
	return f.byEmail[email], nil
}

func (f *fakeAuthProfiles) Put(_ context.Context, profile *models.UserProfile) error {
	if f.putErr != nil {
		return f.putErr
	}
	copied := *profile
	f.byID[profile.ID] = &copied
	f.byEmail[profile.Email] = &copied
	return nil
}

type fakeAccounts struct {
	nextID  string
	err     error
	created []string
}

func (f *fakeAccounts) CreateUser(_ context.Context, email, _, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, email)
	return f.nextID, nil
}

func signTestToken(t *testing.T, subject, email, name, secret string) string {
	t.Helper()
	claims := models.AccessTokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	claims.UserMetadata.Name = name
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthServiceVerifyToken(t *testing.T) {
	svc := NewAuthService(newFakeAuthProfiles(), &fakeAccounts{}, nil, nil, testJWTSecret)

	identity, err := svc.VerifyToken(signTestToken(t, "u-1", "user@demo.com", "Người dùng", testJWTSecret))
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.SubjectID)
	assert.Equal(t, "user@demo.com", identity.Email)
	assert.Equal(t, "Người dùng", identity.Name)

	cases := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": signTestToken(t, "u-1", "user@demo.com", "x", "other-secret"),
		"no subject":   signTestToken(t, "", "user@demo.com", "x", testJWTSecret),
	}
	for name, token := range cases {
		_, err := svc.VerifyToken(token)
		require.Error(t, err, name)
		assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code, name)
	}
}

func TestAuthServiceVerifyToken_RejectsExpired(t *testing.T) {
	svc := NewAuthService(newFakeAuthProfiles(), &fakeAccounts{}, nil, nil, testJWTSecret)

	claims := models.AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceProfile_CreatesDefaultOnFirstSight(t *testing.T) {
	profiles := newFakeAuthProfiles()
	svc := NewAuthService(profiles, &fakeAccounts{}, nil, nil, testJWTSecret)

	profile, err := svc.Profile(context.Background(), signTestToken(t, "u-1", "mai@example.com", "Mai", testJWTSecret))
	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.ID)
	assert.Equal(t, "mai@example.com", profile.Email)
	assert.Equal(t, "Mai", profile.Name)
	assert.Equal(t, models.RoleUser, profile.Role)
	assert.NotNil(t, profiles.byID["u-1"], "default profile persisted")
}

func TestAuthServiceProfile_DerivesNameFromEmailWhenMetadataMissing(t *testing.T) {
	svc := NewAuthService(newFakeAuthProfiles(), &fakeAccounts{}, nil, nil, testJWTSecret)

	profile, err := svc.Profile(context.Background(), signTestToken(t, "u-2", "linh@example.com", "", testJWTSecret))
	require.NoError(t, err)
	assert.Equal(t, "linh", profile.Name)
}

func TestAuthServiceProfile_KeepsExistingProfile(t *testing.T) {
	profiles := newFakeAuthProfiles()
	existing := &models.UserProfile{ID: "u-1", Email: "mai@example.com", Name: "Mai", Role: models.RoleExpert}
	profiles.byID["u-1"] = existing
	svc := NewAuthService(profiles, &fakeAccounts{}, nil, nil, testJWTSecret)

	profile, err := svc.Profile(context.Background(), signTestToken(t, "u-1", "mai@example.com", "Mai", testJWTSecret))
	require.NoError(t, err)
	assert.Equal(t, models.RoleExpert, profile.Role, "role must not be reset")
}

func TestAuthServiceSignup_CreatesAccountAndDefaultProfile(t *testing.T) {
	profiles := newFakeAuthProfiles()
	accounts := &fakeAccounts{nextID: "u-new"}
	svc := NewAuthService(profiles, accounts, nil, nil, testJWTSecret)

	userID, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "  Mai@Example.com ",
		Password: "demo123456",
		Name:     "Mai",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-new", userID)
	assert.Equal(t, []string{"mai@example.com"}, accounts.created, "email normalised before provisioning")

	stored := profiles.byID["u-new"]
	require.NotNil(t, stored)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.Equal(t, "mai@example.com", stored.Email)
}

func TestAuthServiceSignup_ValidationMessages(t *testing.T) {
	svc := NewAuthService(newFakeAuthProfiles(), &fakeAccounts{}, nil, nil, testJWTSecret)

	cases := []struct {
		req     models.SignupRequest
		message string
	}{
		{models.SignupRequest{Email: "not-an-email", Password: "demo123456", Name: "Mai"}, "Email không hợp lệ"},
		{models.SignupRequest{Email: "mai@example.com", Password: "short", Name: "Mai"}, "Mật khẩu phải có ít nhất 6 ký tự"},
		{models.SignupRequest{Email: "mai@example.com", Password: "demo123456", Name: "   "}, "Tên không được để trống"},
	}
	for _, tc := range cases {
		_, err := svc.Signup(context.Background(), tc.req)
		require.Error(t, err, tc.message)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrInvalidArgument.Code, appErr.Code)
		assert.Equal(t, tc.message, appErr.Message)
	}
}

func TestAuthServiceSignup_DuplicateEmail(t *testing.T) {
	profiles := newFakeAuthProfiles()
	profiles.byEmail["mai@example.com"] = &models.UserProfile{ID: "u-1", Email: "mai@example.com"}
	svc := NewAuthService(profiles, &fakeAccounts{}, nil, nil, testJWTSecret)

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "mai@example.com",
		Password: "demo123456",
		Name:     "Mai",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, appErr.Code)
	assert.Equal(t, 422, appErr.Status)
	assert.Contains(t, appErr.Message, "đã được đăng ký")
}

func TestAuthServiceSignup_ProviderReportsDuplicate(t *testing.T) {
	accounts := &fakeAccounts{err: fmt.Errorf("create user: %w", provider.ErrDuplicateEmail)}
	svc := NewAuthService(newFakeAuthProfiles(), accounts, nil, nil, testJWTSecret)

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "mai@example.com",
		Password: "demo123456",
		Name:     "Mai",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateEmail.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceSignup_ProviderOutage(t *testing.T) {
	accounts := &fakeAccounts{err: errors.New("connect: connection refused")}
	svc := NewAuthService(newFakeAuthProfiles(), accounts, nil, nil, testJWTSecret)

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Email:    "mai@example.com",
		Password: "demo123456",
		Name:     "Mai",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnavailable.Code, appErrors.FromError(err).Code)
}
