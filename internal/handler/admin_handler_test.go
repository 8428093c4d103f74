package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startupviet/advisor-api/internal/middleware"
	"github.com/startupviet/advisor-api/internal/models"
	"github.com/startupviet/advisor-api/internal/service"
)

type memoryProfileLister struct {
	*memoryProfiles
}

func (m *memoryProfileLister) All(_ context.Context) ([]models.UserProfile, error) {
	out := make([]models.UserProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

type memorySessionLister struct {
	sessions []models.ChatSession
}

func (m *memorySessionLister) All(_ context.Context) ([]models.ChatSession, error) {
	return m.sessions, nil
}

func adminRouter(docs *memoryDocumentRepo, sessions []models.ChatSession) *gin.Engine {
	gin.SetMode(gin.TestMode)
	profiles := &memoryProfileLister{memoryProfiles: testProfiles()}
	stats := service.NewStatsService(profiles, docs, &memorySessionLister{sessions: sessions}, nil, nil)
	h := NewAdminHandler(stats)

	r := gin.New()
	r.GET("/admin/stats", middleware.RequireIdentity(), h.Stats)
	r.GET("/admin/stats/export", middleware.RequireIdentity(), h.Export)
	return r
}

func TestAdminHandlerStats_ForbiddenForPlainUsers(t *testing.T) {
	r := adminRouter(newMemoryDocumentRepo(), nil)

	rec := performJSON(t, r, http.MethodGet, "/admin/stats", "u-user", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "FORBIDDEN", envelope.Error["code"])
}

func TestAdminHandlerStats_ReportsCacheMeta(t *testing.T) {
	docs := newMemoryDocumentRepo(
		&models.Document{ID: "doc-1", Status: models.StatusApproved},
		&models.Document{ID: "doc-2", Status: models.StatusPending},
	)
	r := adminRouter(docs, []models.ChatSession{
		{ID: "sess-1", UpdatedAt: time.Now(), Messages: []models.Message{
			{ID: "m1", Type: models.MessageUser, Timestamp: time.Now().UTC()},
		}},
	})

	rec := performJSON(t, r, http.MethodGet, "/admin/stats", "u-admin", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")

	users := envelope.Data["users"].(map[string]interface{})
	assert.Equal(t, float64(2), users["total"])
	documents := envelope.Data["documents"].(map[string]interface{})
	byStatus := documents["byStatus"].(map[string]interface{})
	assert.Equal(t, float64(1), byStatus["pending"])

	messages := envelope.Data["messages"].(map[string]interface{})
	activity := messages["byDate"].([]interface{})
	assert.Len(t, activity, 7)
}

func TestAdminHandlerExport_CSVHeaders(t *testing.T) {
	r := adminRouter(newMemoryDocumentRepo(), nil)

	rec := performJSON(t, r, http.MethodGet, "/admin/stats/export", "u-admin", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	disposition := rec.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, ".csv")
	assert.True(t, strings.Contains(rec.Body.String(), "Total users"))
}

func TestAdminHandlerExport_PDF(t *testing.T) {
	r := adminRouter(newMemoryDocumentRepo(), nil)

	rec := performJSON(t, r, http.MethodGet, "/admin/stats/export?format=pdf", "u-admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestAdminHandlerExport_UnknownFormat(t *testing.T) {
	r := adminRouter(newMemoryDocumentRepo(), nil)

	rec := performJSON(t, r, http.MethodGet, "/admin/stats/export?format=xlsx", "u-admin", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
