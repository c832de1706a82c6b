package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/netsentinel/internal/models"
)

func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (d *Database) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return d.firstUser(ctx, "id = ?", id)
}

func (d *Database) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return d.firstUser(ctx, "username = ?", username)
}

// FindUserByIdentifier ищет пользователя по email или username
func (d *Database) FindUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	return d.firstUser(ctx, "email = ? OR username = ?", identifier, identifier)
}

func (d *Database) UserExists(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return count > 0, nil
}

func (d *Database) firstUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
