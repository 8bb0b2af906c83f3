package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Default display attributes applied when a card is created without them.
const (
	DefaultBackgroundColor  = "#3F51B5"
	DefaultTitleColor       = "#FFFFFF"
	DefaultDescriptionColor = "#FFFFFF"
)

// Position is a freeform 2D grid coordinate stored as JSONB. The server
// treats it as an opaque client-supplied pair.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Position) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Position) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = Position{}
		return nil
	}
	return errors.New("unsupported type for position")
}

type Card struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WorkspaceID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	Title            string    `gorm:"not null"`
	TitleColor       string    `gorm:"not null"`
	Description      string    `gorm:"type:text;not null"`
	DescriptionColor string    `gorm:"not null"`
	Content          string    `gorm:"type:text"`
	BackgroundColor  string    `gorm:"not null"`
	Position         Position  `gorm:"type:jsonb"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Workspace Workspace `gorm:"foreignKey:WorkspaceID"`
	User      User      `gorm:"foreignKey:UserID"`
}
