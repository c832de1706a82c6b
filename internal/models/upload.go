package models

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadCompleted UploadStatus = "completed"
	UploadFailed    UploadStatus = "failed"
)

// UnknownUploader подставляется, когда клиент не передал username
const UnknownUploader = "Unknown"

// UploadRecord хранит метаданные загруженного файла. Сам файл не сохраняется.
type UploadRecord struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	FileName  string       `gorm:"not null"`
	FileType  string       `gorm:"not null"`
	Uploader  string       `gorm:"not null"`
	Status    UploadStatus `gorm:"type:varchar(16);not null;index"`
	// Seq задаёт порядок вставки, CreatedAt у соседних записей может совпадать
	Seq       int64        `gorm:"not null;default:0;index"`
	CreatedAt time.Time    `gorm:"index"`
	UpdatedAt time.Time
}

var lastSeq atomic.Int64

// nextSeq возвращает строго возрастающее значение, привязанное к часам
func nextSeq() int64 {
	for {
		prev := lastSeq.Load()
		next := time.Now().UnixNano()
		if next <= prev {
			next = prev + 1
		}
		if lastSeq.CompareAndSwap(prev, next) {
			return next
		}
	}
}

func (r *UploadRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Seq == 0 {
		r.Seq = nextSeq()
	}
	return nil
}
