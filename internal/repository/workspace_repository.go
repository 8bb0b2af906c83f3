package repository

import (
	"context"
	"errors"

	"cardflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

type WorkspaceRepositoryInterface interface {
	Create(ctx context.Context, workspace *model.Workspace) error
	GetOwned(ctx context.Context, userID uuid.UUID) ([]model.Workspace, error)
	CountOwned(ctx context.Context, userID uuid.UUID) (int64, error)
	GetOwnedByID(ctx context.Context, id, userID uuid.UUID) (*model.Workspace, error)
	Update(ctx context.Context, workspace *model.Workspace) error
	DeleteWithCards(ctx context.Context, workspace *model.Workspace) error
}

var _ WorkspaceRepositoryInterface = (*WorkspaceRepository)(nil)

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func (r *WorkspaceRepository) Create(ctx context.Context, workspace *model.Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

// GetOwned returns the user's workspaces in display order. Duplicate order
// values are allowed; creation time keeps the result stable.
func (r *WorkspaceRepository) GetOwned(ctx context.Context, userID uuid.UUID) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(`"order" ASC, created_at ASC`).
		Find(&workspaces).Error
	return workspaces, err
}

func (r *WorkspaceRepository) CountOwned(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Workspace{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// GetOwnedByID performs the existence and ownership check in one query.
// A workspace that exists but belongs to another user is indistinguishable
// from one that does not exist.
func (r *WorkspaceRepository) GetOwnedByID(ctx context.Context, id, userID uuid.UUID) (*model.Workspace, error) {
	var workspace model.Workspace
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&workspace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *WorkspaceRepository) Update(ctx context.Context, workspace *model.Workspace) error {
	return r.db.WithContext(ctx).Save(workspace).Error
}

// DeleteWithCards removes the workspace and every card it contains in a
// single transaction.
func (r *WorkspaceRepository) DeleteWithCards(ctx context.Context, workspace *model.Workspace) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", workspace.ID).Delete(&model.Card{}).Error; err != nil {
			return err
		}
		result := tx.Delete(workspace)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrWorkspaceNotFound
		}
		return nil
	})
}
