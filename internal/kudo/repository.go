// File: internal/kudo/repository.go
package kudo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for kudo data operations.
type Repository interface {
	Create(ctx context.Context, k *Kudo) error
	Feed(ctx context.Context, recipientID uuid.UUID, q FeedQuery) ([]Kudo, error)
	Recent(ctx context.Context, limit int) ([]Kudo, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM kudo repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, k *Kudo) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Recipient").Create(k).Error; err != nil {
		return fmt.Errorf("create kudo: %w", err)
	}
	return nil
}

// Feed returns the kudos received by recipientID, filtered and sorted by q,
// with the author's profile loaded.
func (r *gormRepository) Feed(ctx context.Context, recipientID uuid.UUID, q FeedQuery) ([]Kudo, error) {
	var kudos []Kudo
	tx := r.db.WithContext(ctx).
		Model(&Kudo{}).
		Select("kudos.*").
		Joins(authorProfileJoin).
		Preload("Author.Profile").
		Where("kudos.recipient_id = ?", recipientID)
	if err := q.Apply(tx).Find(&kudos).Error; err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return kudos, nil
}

// Recent returns the newest kudos across all users with the recipient's profile loaded.
func (r *gormRepository) Recent(ctx context.Context, limit int) ([]Kudo, error) {
	var kudos []Kudo
	err := r.db.WithContext(ctx).
		Preload("Recipient.Profile").
		Order("kudos.created_at DESC").
		Limit(limit).
		Find(&kudos).Error
	if err != nil {
		return nil, fmt.Errorf("load recent kudos: %w", err)
	}
	return kudos, nil
}
