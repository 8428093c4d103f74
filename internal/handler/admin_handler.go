package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/startupviet/advisor-api/internal/middleware"
	"github.com/startupviet/advisor-api/internal/service"
	"github.com/startupviet/advisor-api/pkg/response"
)

// AdminHandler wires the admin dashboard endpoints to the stats service.
type AdminHandler struct {
	service *service.StatsService
}

// NewAdminHandler creates a new handler.
func NewAdminHandler(svc *service.StatsService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// Stats godoc
// @Summary Admin dashboard statistics
// @Description Aggregate user, document, session and message counts with a seven day activity series. Admin only.
// @Tags Admin
// @Produce json
// @Param X-User-Id header string true "Caller subject id"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	start := time.Now()
	stats, cached, err := h.service.Stats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cached)
	meta := middleware.ExtractMeta(c)
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, stats, meta)
}

// Export godoc
// @Summary Export dashboard statistics
// @Description Download the current snapshot as a CSV or PDF report. Admin only.
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param X-User-Id header string true "Caller subject id"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/stats/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))

	result, err := h.service.Export(c.Request.Context(), middleware.UserID(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
