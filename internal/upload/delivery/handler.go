package delivery

import (
	"net/http"

	"villagehub-backend/pkg/filehost"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// UploadHandler relays multipart uploads to the public file host.
type UploadHandler struct {
	fileHost *filehost.Client
	maxBytes int64
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(fileHost *filehost.Client, maxBytes int64) *UploadHandler {
	return &UploadHandler{fileHost: fileHost, maxBytes: maxBytes}
}

// Upload proxies one multipart file to the file host and returns its URL
// POST /api/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if fileHeader.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	url, err := h.fileHost.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		log.Errorf("[Upload] relay to file host: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
