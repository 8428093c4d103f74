package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/startupviet/advisor-api/internal/middleware"
	"github.com/startupviet/advisor-api/internal/service"
	appErrors "github.com/startupviet/advisor-api/pkg/errors"
	"github.com/startupviet/advisor-api/pkg/response"
)

// DocumentHandler wires HTTP endpoints to the document service.
type DocumentHandler struct {
	service *service.DocumentService
	stats   *service.StatsService
}

// NewDocumentHandler creates a new handler. stats may be nil; when set, writes
// invalidate the cached dashboard snapshot.
func NewDocumentHandler(svc *service.DocumentService, stats *service.StatsService) *DocumentHandler {
	return &DocumentHandler{service: svc, stats: stats}
}

// List godoc
// @Summary List documents
// @Description List documents visible to the caller. Admins and experts see every document, others only approved ones.
// @Tags Documents
// @Produce json
// @Param X-User-Id header string false "Caller subject id"
// @Success 200 {object} response.Envelope
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"documents": docs})
}

// Get godoc
// @Summary Fetch a document
// @Tags Documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"document": doc})
}

// Create godoc
// @Summary Upload a document
// @Description Create a document. Admin uploads are approved immediately, others await review.
// @Tags Documents
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller subject id"
// @Param payload body service.CreateDocumentRequest true "Document payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "invalid document payload"))
		return
	}

	doc, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.stats != nil {
		h.stats.InvalidateCache(c.Request.Context())
	}
	response.Created(c, gin.H{"success": true, "document": doc})
}

type reviewRequest struct {
	Status string `json:"status" binding:"required"`
}

// Review godoc
// @Summary Review a document
// @Description Approve or reject a pending document. Admin only.
// @Tags Documents
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller subject id"
// @Param id path string true "Document id"
// @Param payload body reviewRequest true "Review outcome"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id}/review [post]
func (h *DocumentHandler) Review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	doc, err := h.service.Review(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.stats != nil {
		h.stats.InvalidateCache(c.Request.Context())
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true, "document": doc})
}
