package silence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Proclamation is an eternal-silence decree. Drafted first, then dispatched;
// dispatch is what announces it on the event bus.
type Proclamation struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RealmID      string         `gorm:"size:50;not null;index" json:"realm_id"`
	Subject      string         `gorm:"size:100;not null" json:"subject"`
	Decree       string         `gorm:"size:500" json:"decree"`
	Depth        string         `gorm:"size:50" json:"depth"`
	Witnesses    []string       `gorm:"serializer:json" json:"witnesses"`
	SealHash     string         `gorm:"size:64" json:"seal_hash"`
	Dispatched   bool           `gorm:"default:false;index" json:"dispatched"`
	DispatchedAt *time.Time     `json:"dispatched_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Flavor tables.

var decreeTemplates = []string{
	"Let %s pass beyond all utterance.",
	"From this hour, %s belongs to the deep quiet.",
	"No bell shall ring for %s; the hush is total.",
	"The codex closes its page upon %s.",
	"%s is hereby given to the absolute stillness.",
}

var silenceDepths = []string{
	"first hush", "second veil", "third stillness", "the absolute quiet",
}

var witnessTitles = []string{
	"the Veiled Archer", "the Sleeping Cartographer", "Sister Null",
	"the Keeper of Hollow Bells", "the Ninth Lantern", "the Patient Stone",
}
