package dto

import (
	"encoding/json"
	"time"
)

type UploadResponse struct {
	Message     string          `json:"message"`
	Predictions json.RawMessage `json:"predictions"`
}

type FileResponse struct {
	FileName   string    `json:"fileName"`
	Uploader   string    `json:"uploader"`
	UploadDate time.Time `json:"uploadDate"`
	FileType   string    `json:"fileType"`
}
