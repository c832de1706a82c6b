package services

import (
	"context"
	"encoding/json"
	"io"

	"github.com/google/uuid"

	"github.com/thereayou/netsentinel/internal/models"
	"github.com/thereayou/netsentinel/internal/websocket"
)

type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	UserExists(ctx context.Context, email, username string) (bool, error)
}

type UploadStore interface {
	SaveUpload(ctx context.Context, record *models.UploadRecord) error
	UpdateUploadStatus(ctx context.Context, id uuid.UUID, status models.UploadStatus) error
	ListUploads(ctx context.Context) ([]models.UploadRecord, error)
}

// Predictor описывает внешний сервис предсказаний
type Predictor interface {
	Upload(ctx context.Context, fileName string, content io.Reader) (json.RawMessage, error)
	Predictions(ctx context.Context) (json.RawMessage, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event websocket.Event)
}
