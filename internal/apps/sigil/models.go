package sigil

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sigil is an issued ceremonial seal. The hash is cosmetic proof text only;
// Verify recomputes it over the stored fields.
type Sigil struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RealmID     string         `gorm:"size:50;not null;index" json:"realm_id"`
	Serial      string         `gorm:"size:16;not null;uniqueIndex" json:"serial"`
	Bearer      string         `gorm:"size:100;not null" json:"bearer"`
	Purpose     string         `gorm:"size:200" json:"purpose"`
	Glyph       string         `gorm:"size:10" json:"glyph"`
	Inscription string         `gorm:"size:500" json:"inscription"`
	Nonce       string         `gorm:"size:32;not null" json:"-"`
	Hash        string         `gorm:"size:64;not null" json:"hash"`
	IssuedAt    time.Time      `gorm:"not null" json:"issued_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Flavor tables.

var sigilGlyphs = []string{"◬", "⟁", "◈", "⌖", "✶", "⎔"}

var sigilInscriptions = []string{
	"sealed under the authority of the silent choir",
	"issued while the ninth lantern burned",
	"inscribed upon patient stone",
	"witnessed by the veiled archer",
	"bound to the bearer until the quiet claims it",
}
