package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/startupviet/advisor-api/internal/models"
	appErrors "github.com/startupviet/advisor-api/pkg/errors"
)

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if s.store == nil {
		return appErrors.ErrCacheMiss
	}
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, _ string) error {
	s.store = nil
	return nil
}

type fakeStatsProfiles struct {
	profiles []models.UserProfile
	calls    int
}

func (f *fakeStatsProfiles) Get(_ context.Context, subjectID string) (*models.UserProfile, error) {
	for i := range f.profiles {
		if f.profiles[i].ID == subjectID {
			return &f.profiles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStatsProfiles) All(_ context.Context) ([]models.UserProfile, error) {
	f.calls++
	return f.profiles, nil
}

type fakeStatsDocuments struct {
	docs []models.Document
}

func (f *fakeStatsDocuments) All(_ context.Context) ([]models.Document, error) {
	return f.docs, nil
}

type fakeStatsSessions struct {
	sessions []models.ChatSession
}

func (f *fakeStatsSessions) All(_ context.Context) ([]models.ChatSession, error) {
	return f.sessions, nil
}

func statsFixture(now time.Time) (*fakeStatsProfiles, *fakeStatsDocuments, *fakeStatsSessions) {
	admin := models.UserProfile{ID: "u-admin", Email: "admin@demo.com", Name: "Admin", Role: models.RoleAdmin}
	user := models.UserProfile{ID: "u-user", Email: "user@demo.com", Name: "User", Role: models.RoleUser}
	expert := models.UserProfile{ID: "u-expert", Email: "expert@demo.com", Name: "Expert", Role: models.RoleExpert}

	// The store scan yields each profile twice, under the id key and the
	// email index key.
	profiles := &fakeStatsProfiles{profiles: []models.UserProfile{
		admin, admin, user, user, expert, expert,
	}}

	docs := &fakeStatsDocuments{docs: []models.Document{
		{ID: "doc-1", Category: models.CategoryTheory, Status: models.StatusApproved, CreatedAt: now.AddDate(0, 0, -10)},
		{ID: "doc-2", Category: models.CategoryMarket, Status: models.StatusPending, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "doc-3", Category: models.CategoryMarket, Status: models.StatusPending, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "doc-4", Category: models.CategoryPolicy, Status: models.StatusRejected, CreatedAt: now.AddDate(0, 0, -5)},
	}}

	yesterday := now.AddDate(0, 0, -1)
	sessions := &fakeStatsSessions{sessions: []models.ChatSession{
		{
			ID: "sess-1",
			Messages: []models.Message{
				{ID: "m-1", Type: models.MessageUser, Timestamp: yesterday},
				{ID: "m-2", Type: models.MessageBot, Timestamp: yesterday},
				{ID: "m-3", Type: models.MessageUser, Timestamp: yesterday},
			},
		},
		{
			ID:       "sess-2",
			Archived: true,
			Messages: []models.Message{
				{ID: "m-4", Type: models.MessageUser, Timestamp: yesterday},
				{ID: "m-5", Type: models.MessageBot, Timestamp: yesterday},
			},
		},
		{
			ID: "sess-3",
			Messages: []models.Message{
				{ID: "m-6", Type: models.MessageUser, Timestamp: now.AddDate(0, 0, -30)},
			},
		},
	}}

	return profiles, docs, sessions
}

func newStatsService(t *testing.T, now time.Time, cacheRepo CacheRepository) (*StatsService, *fakeStatsProfiles) {
	t.Helper()
	profiles, docs, sessions := statsFixture(now)
	var cacheSvc *CacheService
	if cacheRepo != nil {
		cacheSvc = NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	}
	svc := NewStatsService(profiles, docs, sessions, cacheSvc, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, profiles
}

func TestStatsServiceStats_RequiresAdmin(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc, _ := newStatsService(t, now, nil)

	_, _, err := svc.Stats(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)

	for _, caller := range []string{"u-user", "u-expert", "u-ghost"} {
		_, _, err := svc.Stats(context.Background(), caller)
		require.Error(t, err, caller)
		assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code, caller)
	}
}

func TestStatsServiceStats_Aggregates(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc, _ := newStatsService(t, now, nil)

	stats, cached, err := svc.Stats(context.Background(), "u-admin")
	require.NoError(t, err)
	assert.False(t, cached)

	assert.Equal(t, 3, stats.Users.Total, "deduplicated by email")
	assert.Equal(t, 1, stats.Users.ByRole["user"])
	assert.Equal(t, 1, stats.Users.ByRole["expert"])
	assert.Equal(t, 1, stats.Users.ByRole["admin"])

	assert.Equal(t, 4, stats.Documents.Total)
	assert.Equal(t, 1, stats.Documents.ByStatus["approved"])
	assert.Equal(t, 2, stats.Documents.ByStatus["pending"])
	assert.Equal(t, 1, stats.Documents.ByStatus["rejected"])
	assert.Equal(t, 1, stats.Documents.ByCategory["theory"])
	assert.Equal(t, 2, stats.Documents.ByCategory["market"])
	assert.Equal(t, 1, stats.Documents.ByCategory["policy"])

	assert.Equal(t, 3, stats.Sessions.Total)
	assert.Equal(t, 2, stats.Sessions.Active)
	assert.Equal(t, 1, stats.Sessions.Archived)

	assert.Equal(t, 6, stats.Messages.Total)
	assert.Equal(t, 4, stats.Messages.UserMessages)
	assert.Equal(t, 2, stats.Messages.BotMessages)

	require.Len(t, stats.PendingDocuments, 2)
	assert.Equal(t, "doc-3", stats.PendingDocuments[0].ID, "newest pending first")
	assert.Equal(t, "doc-2", stats.PendingDocuments[1].ID)
}

func TestStatsServiceStats_SevenDaySeries(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc, _ := newStatsService(t, now, nil)

	stats, _, err := svc.Stats(context.Background(), "u-admin")
	require.NoError(t, err)

	series := stats.Messages.ByDate
	require.Len(t, series, 7)
	assert.Equal(t, "2026-03-04", series[0].Date)
	assert.Equal(t, "2026-03-10", series[6].Date)

	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Date, series[i].Date, "ascending dates")
	}
	for _, day := range series {
		assert.LessOrEqual(t, day.ActiveUsers, day.Questions)
	}

	// Yesterday: the archived and the live session each had user messages,
	// three questions total between them.
	assert.Equal(t, "2026-03-09", series[5].Date)
	assert.Equal(t, 3, series[5].Questions)
	assert.Equal(t, 2, series[5].ActiveUsers)

	// The 30-day-old message falls outside the window entirely.
	assert.Equal(t, 0, series[0].Questions)
}

func TestStatsServiceStats_CachesSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc, profiles := newStatsService(t, now, &stubCacheRepo{})

	_, cached, err := svc.Stats(context.Background(), "u-admin")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 1, profiles.calls)

	stats, cached, err := svc.Stats(context.Background(), "u-admin")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 1, profiles.calls, "second call served from cache")
	assert.Equal(t, 3, stats.Users.Total)
}

func TestStatsServiceInvalidateCache_ForcesRecompute(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc, profiles := newStatsService(t, now, &stubCacheRepo{})

	_, _, err := svc.Stats(context.Background(), "u-admin")
	require.NoError(t, err)
	svc.InvalidateCache(context.Background())

	_, cached, err := svc.Stats(context.Background(), "u-admin")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, profiles.calls)
}

func TestStatsServiceExport_CSV(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc, _ := newStatsService(t, now, nil)

	result, err := svc.Export(context.Background(), "u-admin", ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "admin-stats-2026-03-10.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)

	body := strings.TrimPrefix(string(result.Content), "\ufeff")
	assert.True(t, strings.HasPrefix(body, "Metric,Value\n"))
	assert.Contains(t, body, "Total users,3\n")
	assert.Contains(t, body, "Documents pending,2\n")
	assert.Contains(t, body, "Questions on 2026-03-09,3\n")
}

func TestStatsServiceExport_PDF(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc, _ := newStatsService(t, now, nil)

	result, err := svc.Export(context.Background(), "u-admin", ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "admin-stats-2026-03-10.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestStatsServiceExport_RejectsUnknownFormatAndNonAdmins(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc, _ := newStatsService(t, now, nil)

	_, err := svc.Export(context.Background(), "u-admin", ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidArgument.Code, appErrors.FromError(err).Code)

	_, err = svc.Export(context.Background(), "u-user", ExportCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
