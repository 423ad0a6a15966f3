package models

import (
	"time"

	"github.com/google/uuid"
)

// RealmConfig is a per-realm configuration key/value pair served to clients.
type RealmConfig struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RealmID   string    `gorm:"size:50;not null;uniqueIndex:idx_realm_config_key" json:"realm_id"`
	Key       string    `gorm:"size:100;not null;uniqueIndex:idx_realm_config_key" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:10;default:'string'" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
