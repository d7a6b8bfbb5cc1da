package repository

import (
	"context"
	"errors"
	"fmt"

	"devjournal/cmd/internal/domain/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultEntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *DefaultEntryRepository {
	return &DefaultEntryRepository{db: db}
}

func (d *DefaultEntryRepository) FindAll(ctx context.Context) ([]*entity.Entry, error) {
	var entries []*entity.Entry
	err := d.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	return entries, nil
}

func (d *DefaultEntryRepository) FindByID(ctx context.Context, id string) (*entity.Entry, error) {
	var entry entity.Entry
	err := d.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("find entry %s: %w", id, err)
	}
	return &entry, nil
}

// Create fills in the id; gorm stamps both timestamps from one NowFunc call.
func (d *DefaultEntryRepository) Create(ctx context.Context, entry *entity.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	now := d.db.NowFunc()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := d.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (d *DefaultEntryRepository) Update(ctx context.Context, id, title, content string) (*entity.Entry, error) {
	res := d.db.WithContext(ctx).
		Model(&entity.Entry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":      title,
			"content":    content,
			"updated_at": d.db.NowFunc(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update entry %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, nil
	}
	return d.FindByID(ctx, id)
}

func (d *DefaultEntryRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := d.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Entry{})
	if res.Error != nil {
		return false, fmt.Errorf("delete entry %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
