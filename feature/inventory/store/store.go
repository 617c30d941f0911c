package store

import (
	"context"
	"errors"
	"fmt"

	"inventory-sync/feature/inventory/models"

	"gorm.io/gorm"
)

// Store is read/write access to the authoritative inventory records.
type Store interface {
	// FindAll returns every inventory record ordered by id.
	FindAll(ctx context.Context) ([]models.Item, error)
	// FindByID returns the record or nil when it does not exist.
	FindByID(ctx context.Context, id int64) (*models.Item, error)
	// Exists reports whether a record with the id exists.
	Exists(ctx context.Context, id int64) (bool, error)
	// Save persists every field of the record.
	Save(ctx context.Context, item *models.Item) error
}

// GormStore implements Store on top of a GORM connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over an existing connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindAll(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	return items, nil
}

func (s *GormStore) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load item %d: %w", id, err)
	}
	return &item, nil
}

func (s *GormStore) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check item %d: %w", id, err)
	}
	return count > 0, nil
}

func (s *GormStore) Save(ctx context.Context, item *models.Item) error {
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to save item %d: %w", item.ID, err)
	}
	return nil
}
