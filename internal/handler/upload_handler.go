package handler

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/startupviet/advisor-api/pkg/storage"

	appErrors "github.com/startupviet/advisor-api/pkg/errors"
	"github.com/startupviet/advisor-api/pkg/response"
)

// UploadHandler hands out signed download URLs for attachments. No bytes are
// stored; the file is assumed to land in external storage under the returned
// URL.
type UploadHandler struct {
	signer  *storage.SignedURLSigner
	baseURL string
}

// NewUploadHandler creates a new handler.
func NewUploadHandler(signer *storage.SignedURLSigner, baseURL string) *UploadHandler {
	return &UploadHandler{signer: signer, baseURL: baseURL}
}

type uploadRequest struct {
	Filename string `json:"filename"`
}

// Upload godoc
// @Summary Register a file upload
// @Description Issue a signed, expiring download URL for an attachment
// @Tags Uploads
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller subject id"
// @Param payload body uploadRequest false "Upload payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "invalid upload payload"))
		return
	}
	if req.Filename == "" {
		req.Filename = "attachment.pdf"
	}

	fileID := uuid.NewString()
	token, expiresAt, err := h.signer.Generate(fileID, path.Base(req.Filename))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign upload url"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"success":   true,
		"url":       h.baseURL + "/files/" + token,
		"expiresAt": expiresAt,
	})
}

// Resolve godoc
// @Summary Resolve a signed file URL
// @Description Validate a signed download token and return the file reference
// @Tags Uploads
// @Produce json
// @Param token path string true "Signed token"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /files/{token} [get]
func (h *UploadHandler) Resolve(c *gin.Context) {
	fileID, filename, expiresAt, err := h.signer.Parse(c.Param("token"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found or link expired"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"fileId":    fileID,
		"filename":  filename,
		"expiresAt": expiresAt,
	})
}
