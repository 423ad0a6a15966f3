package hymnal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hymn is a composed ceremonial hymn registered in a realm.
type Hymn struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RealmID      string         `gorm:"size:50;not null;index" json:"realm_id"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	Theme        string         `gorm:"size:50;not null;index" json:"theme"`
	Opening      string         `gorm:"size:500" json:"opening"`
	Verses       []string       `gorm:"serializer:json" json:"verses"`
	Benediction  string         `gorm:"size:500" json:"benediction"`
	SealHash     string         `gorm:"size:64" json:"seal_hash"`
	Performances int            `gorm:"default:0" json:"performances"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// HymnPerformance records a single performance of a hymn.
type HymnPerformance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RealmID     string    `gorm:"size:50;not null;index" json:"realm_id"`
	HymnID      uuid.UUID `gorm:"type:uuid;not null;index" json:"hymn_id"`
	Performer   string    `gorm:"size:100" json:"performer"`
	PerformedAt time.Time `gorm:"not null" json:"performed_at"`
	Hymn        Hymn      `gorm:"foreignKey:HymnID" json:"-"`
}

// Flavor tables for composition.

var hymnThemes = []string{"flame", "silence", "lineage", "stars", "the deep codex"}

var hymnOpenings = map[string][]string{
	"flame":          {"Rise, keepers of the ember,", "From the first spark we sing,", "The pyre remembers its children,"},
	"silence":        {"Hush now, the codex listens,", "In stillness we gather,", "No word precedes the deep quiet,"},
	"lineage":        {"Blood of the patient houses,", "We name the ancestors nine,", "From the shattered mirror descended,"},
	"stars":          {"Beneath the ninth lantern,", "The emberwheel turns above us,", "Chart the sleeping cartographer,"},
	"the deep codex": {"Every page a bound oath,", "The codex opens inward,", "What is written outlasts the writer,"},
}

var hymnVerses = []string{
	"and the choir holds its breath between verses",
	"while patient stone counts the centuries",
	"for no flame burns without a keeper",
	"as the veiled archer lowers her bow",
	"and silence folds the hymn away",
	"till the broken crown is mended",
	"where the wandering comet keeps its vigil",
	"and hollow bells refuse to ring",
}

var hymnBenedictions = []string{
	"So it is sung; so it is sealed.",
	"Let the quiet keep what the song began.",
	"The lantern stays lit until the last voice rests.",
	"May the houses remember this verse.",
}
