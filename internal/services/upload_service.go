package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/thereayou/netsentinel/internal/metrics"
	"github.com/thereayou/netsentinel/internal/models"
)

type UploadRequest struct {
	FileName string
	MimeType string
	Uploader string
	Content  io.Reader
}

type UploadResult struct {
	Record      *models.UploadRecord
	Predictions json.RawMessage
}

type UploadService struct {
	uploads   UploadStore
	predictor Predictor
	publisher EventPublisher
	uploadDir string
}

func NewUploadService(uploads UploadStore, predictor Predictor, publisher EventPublisher, uploadDir string) *UploadService {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &UploadService{
		uploads:   uploads,
		predictor: predictor,
		publisher: publisher,
		uploadDir: uploadDir,
	}
}

// AcceptUpload сохраняет метаданные, пересылает файл сервису предсказаний и удаляет временную копию.
// Запись не откатывается при ошибке пересылки, она помечается как failed.
func (s *UploadService) AcceptUpload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.Content == nil || req.FileName == "" {
		return nil, ErrNoFile
	}
	if !strings.EqualFold(filepath.Ext(req.FileName), ".csv") {
		return nil, ErrUnsupportedFile
	}

	uploader := req.Uploader
	if uploader == "" {
		uploader = models.UnknownUploader
	}

	log := logrus.WithFields(logrus.Fields{
		"file_name": req.FileName,
		"uploader":  uploader,
	})

	path, err := s.spool(req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: spool upload: %w", ErrServer, err)
	}
	defer s.cleanup(path, log)

	record := &models.UploadRecord{
		FileName: req.FileName,
		FileType: req.MimeType,
		Uploader: uploader,
		Status:   models.UploadPending,
	}
	if err := s.uploads.SaveUpload(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServer, err)
	}
	log = log.WithField("upload_id", record.ID)

	predictions, err := s.relay(ctx, path, record.FileName)
	if err != nil {
		log.WithError(err).Error("Prediction service relay failed")
		s.finish(ctx, record, models.UploadFailed, log)
		return nil, fmt.Errorf("%w: %w", ErrRelay, err)
	}
	s.finish(ctx, record, models.UploadCompleted, log)
	s.publishSummary(ctx, log)

	log.Info("Upload processed")
	return &UploadResult{Record: record, Predictions: predictions}, nil
}

func (s *UploadService) ListUploads(ctx context.Context) ([]models.UploadRecord, error) {
	records, err := s.uploads.ListUploads(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServer, err)
	}
	return records, nil
}

func (s *UploadService) spool(content io.Reader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(s.uploadDir, "upload-*.csv")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (s *UploadService) relay(ctx context.Context, path, fileName string) (json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.predictor.Upload(ctx, fileName, f)
}

// publishSummary запрашивает свежую сводку после загрузки и рассылает события по ней.
// Ошибка только логируется, загрузка уже прошла.
func (s *UploadService) publishSummary(ctx context.Context, log *logrus.Entry) {
	summary, err := s.predictor.Predictions(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch prediction summary, no events published")
		return
	}
	for _, event := range summaryEvents(summary) {
		s.publisher.Publish(ctx, event)
	}
}

// finish фиксирует итоговый статус. Ошибка обновления не меняет ответ клиенту.
func (s *UploadService) finish(ctx context.Context, record *models.UploadRecord, status models.UploadStatus, log *logrus.Entry) {
	metrics.UploadsTotal.WithLabelValues(string(status)).Inc()

	if err := s.uploads.UpdateUploadStatus(context.WithoutCancel(ctx), record.ID, status); err != nil {
		log.WithError(err).WithField("status", status).Error("Failed to update upload status")
		return
	}
	record.Status = status
}

func (s *UploadService) cleanup(path string, log *logrus.Entry) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).WithField("path", path).Error("Failed to remove transient upload")
	}
}
