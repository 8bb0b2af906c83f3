package model

import (
	"time"

	"github.com/google/uuid"
)

// PrimaryWorkspaceOrder marks the workspace created alongside the user.
// It cannot be deleted.
const PrimaryWorkspaceOrder = 0

// PrimaryWorkspaceName is the name given to the workspace created at registration.
const PrimaryWorkspaceName = "Main"

type Workspace struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_workspaces_user_order"`
	Name      string    `gorm:"not null"`
	Order     int       `gorm:"column:order;not null;index:idx_workspaces_user_order"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
