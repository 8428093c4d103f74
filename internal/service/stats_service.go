package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/startupviet/advisor-api/internal/dto"
	"github.com/startupviet/advisor-api/internal/models"
	"github.com/startupviet/advisor-api/pkg/export"
	appErrors "github.com/startupviet/advisor-api/pkg/errors"
)

const statsCacheKey = "stats:admin"

type statsProfileRepository interface {
	Get(ctx context.Context, subjectID string) (*models.UserProfile, error)
	All(ctx context.Context) ([]models.UserProfile, error)
}

type statsDocumentRepository interface {
	All(ctx context.Context) ([]models.Document, error)
}

type statsSessionRepository interface {
	All(ctx context.Context) ([]models.ChatSession, error)
}

// StatsService builds the admin dashboard snapshot: profile, document and
// session counts plus a seven day activity series. Counts come from separate
// store scans, so a write landing mid-aggregation can leave the snapshot
// internally off by one; the dashboard refreshes often enough that this does
// not matter.
type StatsService struct {
	profiles  statsProfileRepository
	documents statsDocumentRepository
	sessions  statsSessionRepository
	cache     *CacheService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
	now       func() time.Time
}

// NewStatsService constructs the service. cache may be nil.
func NewStatsService(profiles statsProfileRepository, documents statsDocumentRepository, sessions statsSessionRepository, cache *CacheService, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		profiles:  profiles,
		documents: documents,
		sessions:  sessions,
		cache:     cache,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
		now:       time.Now,
	}
}

// Stats returns the dashboard snapshot for an admin caller. The second return
// value reports whether the snapshot came from cache.
func (s *StatsService) Stats(ctx context.Context, callerID string) (*dto.AdminStatsResponse, bool, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, false, err
	}

	var cached dto.AdminStatsResponse
	if hit, err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	stats, err := s.aggregate(ctx)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, statsCacheKey, stats); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
	return stats, false, nil
}

// InvalidateCache drops the cached snapshot. Called after writes that change
// the numbers, so admins refreshing the dashboard see them immediately.
func (s *StatsService) InvalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCacheKey); err != nil {
		s.logger.Warn("stats cache invalidate failed", zap.Error(err))
	}
}

// ExportFormat selects the rendering of a stats export.
type ExportFormat string

// Supported export formats.
const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered export file.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Export renders the current snapshot as a downloadable report.
func (s *StatsService) Export(ctx context.Context, callerID string, format ExportFormat) (*ExportResult, error) {
	stats, _, err := s.Stats(ctx, callerID)
	if err != nil {
		return nil, err
	}

	dataset := statsDataset(stats)
	stamp := s.now().UTC().Format("2006-01-02")

	switch format {
	case ExportCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("admin-stats-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case ExportPDF:
		content, err := s.pdf.Render(dataset, "Admin Activity Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("admin-stats-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "format must be csv or pdf")
	}
}

func (s *StatsService) requireAdmin(ctx context.Context, callerID string) error {
	if callerID == "" {
		return appErrors.Clone(appErrors.ErrUnauthenticated, "user identity required")
	}
	profile, err := s.profiles.Get(ctx, callerID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "profile store unavailable")
	}
	if profile == nil || profile.Role != models.RoleAdmin {
		return appErrors.Clone(appErrors.ErrForbidden, "admin access required")
	}
	return nil
}

func (s *StatsService) aggregate(ctx context.Context) (*dto.AdminStatsResponse, error) {
	profiles, err := s.profiles.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "profile store unavailable")
	}
	documents, err := s.documents.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "document store unavailable")
	}
	sessions, err := s.sessions.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "session store unavailable")
	}

	stats := &dto.AdminStatsResponse{
		Users:            userStats(profiles),
		Documents:        documentStats(documents),
		Sessions:         sessionStats(sessions),
		Messages:         s.messageStats(sessions),
		PendingDocuments: pendingDocuments(documents),
	}

	s.logger.Debug("stats aggregated",
		zap.Int("users", stats.Users.Total),
		zap.Int("documents", stats.Documents.Total),
		zap.Int("sessions", stats.Sessions.Total))
	return stats, nil
}

// userStats deduplicates by email first. The profile scan returns each user
// twice, once under the id key and once under the email index, and both copies
// carry the same email.
func userStats(profiles []models.UserProfile) dto.UserStats {
	unique := make(map[string]models.UserProfile)
	for _, p := range profiles {
		if p.Email == "" {
			continue
		}
		unique[p.Email] = p
	}

	stats := dto.UserStats{
		Total: len(unique),
		ByRole: map[string]int{
			string(models.RoleUser):   0,
			string(models.RoleExpert): 0,
			string(models.RoleAdmin):  0,
		},
	}
	for _, p := range unique {
		stats.ByRole[string(p.Role)]++
	}
	return stats
}

func documentStats(documents []models.Document) dto.DocumentStats {
	stats := dto.DocumentStats{
		Total: len(documents),
		ByStatus: map[string]int{
			string(models.StatusApproved): 0,
			string(models.StatusPending):  0,
			string(models.StatusRejected): 0,
		},
		ByCategory: map[string]int{
			string(models.CategoryTheory): 0,
			string(models.CategoryMarket): 0,
			string(models.CategoryPolicy): 0,
		},
	}
	for _, d := range documents {
		stats.ByStatus[string(d.Status)]++
		stats.ByCategory[string(d.Category)]++
	}
	return stats
}

func sessionStats(sessions []models.ChatSession) dto.SessionStats {
	stats := dto.SessionStats{Total: len(sessions)}
	for _, sess := range sessions {
		if sess.Archived {
			stats.Archived++
		} else {
			stats.Active++
		}
	}
	return stats
}

// messageStats totals transcripts and builds the seven day series ending
// today. Dates are bucketed in UTC. A session counts as one active user per
// date it has a user message on, so activeUsers never exceeds questions.
func (s *StatsService) messageStats(sessions []models.ChatSession) dto.MessageStats {
	stats := dto.MessageStats{}
	questionsByDate := make(map[string]int)
	activeSessionsByDate := make(map[string]int)

	for _, sess := range sessions {
		sessionDates := make(map[string]struct{})
		for _, msg := range sess.Messages {
			date := msg.Timestamp.UTC().Format("2006-01-02")
			switch msg.Type {
			case models.MessageUser:
				stats.UserMessages++
				questionsByDate[date]++
				sessionDates[date] = struct{}{}
			case models.MessageBot:
				stats.BotMessages++
			}
		}
		for date := range sessionDates {
			activeSessionsByDate[date]++
		}
	}
	stats.Total = stats.UserMessages + stats.BotMessages

	today := s.now().UTC()
	stats.ByDate = make([]dto.DailyActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		stats.ByDate = append(stats.ByDate, dto.DailyActivity{
			Date:        date,
			ActiveUsers: activeSessionsByDate[date],
			Questions:   questionsByDate[date],
		})
	}
	return stats
}

func pendingDocuments(documents []models.Document) []models.Document {
	pending := make([]models.Document, 0)
	for _, d := range documents {
		if d.Status == models.StatusPending {
			pending = append(pending, d)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	return pending
}

// statsDataset flattens the snapshot into a metric/value table shared by the
// CSV and PDF exports.
func statsDataset(stats *dto.AdminStatsResponse) export.Dataset {
	rows := []map[string]string{
		{"Metric": "Total users", "Value": strconv.Itoa(stats.Users.Total)},
		{"Metric": "Users (role user)", "Value": strconv.Itoa(stats.Users.ByRole[string(models.RoleUser)])},
		{"Metric": "Users (role expert)", "Value": strconv.Itoa(stats.Users.ByRole[string(models.RoleExpert)])},
		{"Metric": "Users (role admin)", "Value": strconv.Itoa(stats.Users.ByRole[string(models.RoleAdmin)])},
		{"Metric": "Total documents", "Value": strconv.Itoa(stats.Documents.Total)},
		{"Metric": "Documents approved", "Value": strconv.Itoa(stats.Documents.ByStatus[string(models.StatusApproved)])},
		{"Metric": "Documents pending", "Value": strconv.Itoa(stats.Documents.ByStatus[string(models.StatusPending)])},
		{"Metric": "Documents rejected", "Value": strconv.Itoa(stats.Documents.ByStatus[string(models.StatusRejected)])},
		{"Metric": "Total sessions", "Value": strconv.Itoa(stats.Sessions.Total)},
		{"Metric": "Sessions active", "Value": strconv.Itoa(stats.Sessions.Active)},
		{"Metric": "Sessions archived", "Value": strconv.Itoa(stats.Sessions.Archived)},
		{"Metric": "Total messages", "Value": strconv.Itoa(stats.Messages.Total)},
		{"Metric": "User messages", "Value": strconv.Itoa(stats.Messages.UserMessages)},
		{"Metric": "Bot messages", "Value": strconv.Itoa(stats.Messages.BotMessages)},
	}
	for _, day := range stats.Messages.ByDate {
		rows = append(rows, map[string]string{
			"Metric": fmt.Sprintf("Questions on %s", day.Date),
			"Value":  strconv.Itoa(day.Questions),
		})
	}
	return export.Dataset{Headers: []string{"Metric", "Value"}, Rows: rows}
}
