package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startupviet/advisor-api/internal/service"
)

func chatRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(service.NewChatService(0, nil))

	r := gin.New()
	r.POST("/chat", h.Chat)
	return r
}

func TestChatHandlerChat_EchoesQuestionExcerpt(t *testing.T) {
	r := chatRouter()

	rec := performJSON(t, r, http.MethodPost, "/chat", "", gin.H{
		"message": "Làm sao để gọi vốn vòng hạt giống?",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	envelope := decodeEnvelope(t, rec)
	reply := envelope.Data["response"].(string)
	assert.True(t, strings.Contains(reply, "Làm sao để gọi vốn"))

	references := envelope.Data["references"].([]interface{})
	require.NotEmpty(t, references)
	first := references[0].(map[string]interface{})
	assert.NotEmpty(t, first["id"])
	assert.NotEmpty(t, first["title"])
}

func TestChatHandlerChat_RequiresMessage(t *testing.T) {
	r := chatRouter()

	rec := performJSON(t, r, http.MethodPost, "/chat", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
