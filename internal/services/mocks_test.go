package services_test

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/thereayou/netsentinel/internal/models"
	"github.com/thereayou/netsentinel/internal/websocket"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) SaveUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) FindUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	args := m.Called(ctx, identifier)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) UserExists(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)
	return args.Bool(0), args.Error(1)
}

type mockUploadStore struct {
	mock.Mock
}

func (m *mockUploadStore) SaveUpload(ctx context.Context, record *models.UploadRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockUploadStore) UpdateUploadStatus(ctx context.Context, id uuid.UUID, status models.UploadStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockUploadStore) ListUploads(ctx context.Context) ([]models.UploadRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]models.UploadRecord)
	return records, args.Error(1)
}

// fakePredictor запоминает присланный файл. Upload отвечает uploadResponse,
// Predictions отвечает summary, как это делает сервис предсказаний.
type fakePredictor struct {
	uploadResponse json.RawMessage
	err            error
	summary        json.RawMessage
	summaryErr     error

	mu       sync.Mutex
	fileName string
	content  string
	fetches  int
}

func (p *fakePredictor) Upload(_ context.Context, fileName string, content io.Reader) (json.RawMessage, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.fileName, p.content = fileName, string(data)
	p.mu.Unlock()
	return p.uploadResponse, p.err
}

func (p *fakePredictor) Predictions(context.Context) (json.RawMessage, error) {
	p.mu.Lock()
	p.fetches++
	p.mu.Unlock()
	return p.summary, p.summaryErr
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) names() []websocket.EventName {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]websocket.EventName, len(p.events))
	for i, e := range p.events {
		names[i] = e.Name
	}
	return names
}
