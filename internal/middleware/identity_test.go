package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIdentityMiddlewareSetsUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	router := gin.New()
	router.Use(Identity())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(IdentityHeader, "u-42")
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	if recorder.Body.String() != "u-42" {
		t.Fatalf("unexpected user id: %s", recorder.Body.String())
	}
}

func TestIdentityMiddlewareOptionalWithoutHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	router := gin.New()
	router.Use(Identity())
	router.GET("/", func(c *gin.Context) {
		if UserID(c) != "" {
			t.Fatalf("expected empty user id")
		}
		c.Status(http.StatusNoContent)
	})

	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}

func TestRequireIdentityRejectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	router := gin.New()
	router.Use(RequireIdentity())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}
