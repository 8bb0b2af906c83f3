package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Recognized theme values for user settings
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings is a per-user preferences blob stored as JSONB.
type Settings struct {
	Theme string `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{Theme: ThemeLight}
}

func (s Settings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Settings) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = DefaultSettings()
		return nil
	}
	return errors.New("unsupported type for settings")
}

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Settings       Settings  `gorm:"type:jsonb"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
