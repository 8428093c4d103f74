package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/startupviet/advisor-api/internal/middleware"
	"github.com/startupviet/advisor-api/internal/models"
	"github.com/startupviet/advisor-api/internal/service"
	appErrors "github.com/startupviet/advisor-api/pkg/errors"
	"github.com/startupviet/advisor-api/pkg/response"
)

// SessionHandler wires HTTP endpoints to the session service.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new handler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// List godoc
// @Summary List chat sessions
// @Description List the caller's unarchived sessions, most recent first. Anonymous callers get an empty list.
// @Tags Sessions
// @Produce json
// @Param X-User-Id header string false "Caller subject id"
// @Success 200 {object} response.Envelope
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"sessions": sessions})
}

// Save godoc
// @Summary Save a chat session
// @Description Overwrite the whole session record for the caller
// @Tags Sessions
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller subject id"
// @Param sessionId path string true "Session id"
// @Param payload body models.ChatSession true "Session payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /sessions/{sessionId} [post]
func (h *SessionHandler) Save(c *gin.Context) {
	var session models.ChatSession
	if err := c.ShouldBindJSON(&session); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}
	session.ID = c.Param("sessionId")

	if err := h.service.Save(c.Request.Context(), middleware.UserID(c), &session); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}
