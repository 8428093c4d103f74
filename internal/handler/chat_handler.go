package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/startupviet/advisor-api/internal/dto"
	appErrors "github.com/startupviet/advisor-api/pkg/errors"
	"github.com/startupviet/advisor-api/pkg/response"
)

// ResponseProvider produces an advisory reply for a chat message. The default
// implementation is the canned responder; swapping in a model-backed one only
// touches the wiring.
type ResponseProvider interface {
	Reply(ctx context.Context, message string) (*dto.ChatResponse, error)
}

// ChatHandler wires the chat endpoint to a response provider.
type ChatHandler struct {
	service ResponseProvider
}

// NewChatHandler creates a new handler.
func NewChatHandler(svc ResponseProvider) *ChatHandler {
	return &ChatHandler{service: svc}
}

// Chat godoc
// @Summary Ask the advisor
// @Description Answer a chat message with a scripted advisory reply and document references
// @Tags Chat
// @Accept json
// @Produce json
// @Param payload body dto.ChatRequest true "Chat payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "invalid chat payload"))
		return
	}

	reply, err := h.service.Reply(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reply)
}
