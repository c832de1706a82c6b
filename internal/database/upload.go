package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/thereayou/netsentinel/internal/models"
)

func (d *Database) SaveUpload(ctx context.Context, record *models.UploadRecord) error {
	if err := d.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("save upload: %w", err)
	}
	return nil
}

// UpdateUploadStatus меняет только статус, остальные поля записи неизменны
func (d *Database) UpdateUploadStatus(ctx context.Context, id uuid.UUID, status models.UploadStatus) error {
	res := d.db.WithContext(ctx).
		Model(&models.UploadRecord{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update upload status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUploads возвращает все записи в порядке загрузки
func (d *Database) ListUploads(ctx context.Context) ([]models.UploadRecord, error) {
	var records []models.UploadRecord
	if err := d.db.WithContext(ctx).Order("seq ASC").Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return records, nil
}
