package repository

import (
	"context"
	"errors"

	"cardflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

type CardRepositoryInterface interface {
	Create(ctx context.Context, card *model.Card) error
	GetOwnedByID(ctx context.Context, id, userID uuid.UUID) (*model.Card, error)
	GetByWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) ([]model.Card, error)
	Update(ctx context.Context, card *model.Card) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// GetOwnedByID filters by id and owner in one query, so foreign cards look
// exactly like missing ones.
func (r *CardRepository) GetOwnedByID(ctx context.Context, id, userID uuid.UUID) (*model.Card, error) {
	var card model.Card
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// GetByWorkspace returns the workspace's cards in reading order: top to
// bottom, then left to right.
func (r *CardRepository) GetByWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Order("(position->>'y')::numeric ASC, (position->>'x')::numeric ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *CardRepository) Update(ctx context.Context, card *model.Card) error {
	result := r.db.WithContext(ctx).Save(card)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *CardRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Card{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}
