package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/netsentinel/internal/handlers/dto"
	"github.com/thereayou/netsentinel/internal/services"
)

const (
	uploadSuccessMessage = "File uploaded and processed"
	uploadFailureMessage = "Error processing file"
)

type UploadHandler struct {
	uploads *services.UploadService
}

func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload принимает multipart поля file и username
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		HandleServiceError(c, services.ErrNoFile, respondMessage)
		return
	}

	file, err := header.Open()
	if err != nil {
		HandleServiceError(c, err, respondMessage)
		return
	}
	defer file.Close()

	res, err := h.uploads.AcceptUpload(c.Request.Context(), services.UploadRequest{
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Uploader: c.PostForm("username"),
		Content:  file,
	})
	if err != nil {
		HandleServiceError(c, err, respondMessage)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Message:     uploadSuccessMessage,
		Predictions: res.Predictions,
	})
}

// ListFiles возвращает метаданные всех загрузок в порядке поступления
func (h *UploadHandler) ListFiles(c *gin.Context) {
	records, err := h.uploads.ListUploads(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err, respondText)
		return
	}

	files := make([]dto.FileResponse, len(records))
	for i, r := range records {
		files[i] = dto.FileResponse{
			FileName:   r.FileName,
			Uploader:   r.Uploader,
			UploadDate: r.CreatedAt,
			FileType:   r.FileType,
		}
	}
	c.JSON(http.StatusOK, files)
}

func respondMessage(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		msg = uploadFailureMessage
	}
	c.JSON(status, gin.H{"message": msg})
}
