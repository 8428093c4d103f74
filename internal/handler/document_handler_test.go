package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startupviet/advisor-api/internal/middleware"
	"github.com/startupviet/advisor-api/internal/models"
	"github.com/startupviet/advisor-api/internal/service"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type memoryDocumentRepo struct {
	docs map[string]*models.Document
}

func newMemoryDocumentRepo(docs ...*models.Document) *memoryDocumentRepo {
	repo := &memoryDocumentRepo{docs: make(map[string]*models.Document)}
	for _, doc := range docs {
		copied := *doc
		repo.docs[doc.ID] = &copied
	}
	return repo
}

func (m *memoryDocumentRepo) Get(_ context.Context, id string) (*models.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (m *memoryDocumentRepo) Put(_ context.Context, doc *models.Document) error {
	copied := *doc
	m.docs[doc.ID] = &copied
	return nil
}

func (m *memoryDocumentRepo) All(_ context.Context) ([]models.Document, error) {
	out := make([]models.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, *doc)
	}
	return out, nil
}

type memoryProfiles struct {
	profiles map[string]*models.UserProfile
}

func (m *memoryProfiles) Get(_ context.Context, subjectID string) (*models.UserProfile, error) {
	return m.profiles[subjectID], nil
}

func testProfiles() *memoryProfiles {
	return &memoryProfiles{profiles: map[string]*models.UserProfile{
		"u-user":  {ID: "u-user", Email: "user@demo.com", Role: models.RoleUser},
		"u-admin": {ID: "u-admin", Email: "admin@demo.com", Role: models.RoleAdmin},
	}}
}

func documentRouter(repo *memoryDocumentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewDocumentService(repo, testProfiles(), nil, nil)
	h := NewDocumentHandler(svc, nil)

	r := gin.New()
	r.GET("/documents", middleware.Identity(), h.List)
	r.GET("/documents/:id", h.Get)
	r.POST("/documents", middleware.RequireIdentity(), h.Create)
	r.POST("/documents/:id/review", middleware.RequireIdentity(), h.Review)
	return r
}

func performJSON(t *testing.T, r *gin.Engine, method, target, userID string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.IdentityHeader, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestDocumentHandlerCreate_RequiresIdentityHeader(t *testing.T) {
	r := documentRouter(newMemoryDocumentRepo())

	rec := performJSON(t, r, http.MethodPost, "/documents", "", gin.H{
		"title": "t", "category": "theory", "content": "c",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "UNAUTHENTICATED", envelope.Error["code"])
}

func TestDocumentHandlerCreate_ReturnsDocument(t *testing.T) {
	repo := newMemoryDocumentRepo()
	r := documentRouter(repo)

	rec := performJSON(t, r, http.MethodPost, "/documents", "u-admin", gin.H{
		"title": "Thuế cho startup", "category": "policy", "content": "Chi tiết",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope.Data["success"])
	doc := envelope.Data["document"].(map[string]interface{})
	assert.Equal(t, "approved", doc["status"])
	assert.Equal(t, "u-admin", doc["uploadedBy"])
	assert.Len(t, repo.docs, 1)
}

func TestDocumentHandlerList_FiltersForAnonymous(t *testing.T) {
	repo := newMemoryDocumentRepo(
		&models.Document{ID: "doc-1", Status: models.StatusApproved, CreatedAt: time.Now()},
		&models.Document{ID: "doc-2", Status: models.StatusPending, CreatedAt: time.Now()},
	)
	r := documentRouter(repo)

	rec := performJSON(t, r, http.MethodGet, "/documents", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	docs := envelope.Data["documents"].([]interface{})
	require.Len(t, docs, 1)
}

func TestDocumentHandlerGet_NotFound(t *testing.T) {
	r := documentRouter(newMemoryDocumentRepo())

	rec := performJSON(t, r, http.MethodGet, "/documents/doc-404", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "NOT_FOUND", envelope.Error["code"])
}

func TestDocumentHandlerReview_RoleAndPayloadChecks(t *testing.T) {
	repo := newMemoryDocumentRepo(&models.Document{ID: "doc-1", Status: models.StatusPending})
	r := documentRouter(repo)

	rec := performJSON(t, r, http.MethodPost, "/documents/doc-1/review", "u-user", gin.H{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = performJSON(t, r, http.MethodPost, "/documents/doc-1/review", "u-admin", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performJSON(t, r, http.MethodPost, "/documents/doc-1/review", "u-admin", gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	envelope := decodeEnvelope(t, rec)
	doc := envelope.Data["document"].(map[string]interface{})
	assert.Equal(t, "approved", doc["status"])
	assert.Equal(t, "u-admin", doc["reviewedBy"])
}
