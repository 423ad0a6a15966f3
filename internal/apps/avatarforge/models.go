package avatarforge

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rank is an avatar's ceremonial rank. Ranks are ordered; RankWeights drives
// the authority formula.
type Rank string

const (
	RankInitiate Rank = "initiate"
	RankAdept    Rank = "adept"
	RankKeeper   Rank = "keeper"
	RankSage     Rank = "sage"
	RankMaster   Rank = "master"
	RankEternal  Rank = "eternal"
)

// RankWeights is the fixed weight table. Authority is monotonic in rank for
// equal draws because these strictly increase.
var RankWeights = map[Rank]float64{
	RankInitiate: 0.30,
	RankAdept:    0.42,
	RankKeeper:   0.54,
	RankSage:     0.66,
	RankMaster:   0.78,
	RankEternal:  0.90,
}

// Role is a ceremonial duty an avatar may hold. Roles form a set.
type Role string

const (
	RoleFlamebearer   Role = "flamebearer"
	RoleSilenceWarden Role = "silence_warden"
	RoleLorekeeper    Role = "lorekeeper"
	RoleStargazer     Role = "stargazer"
	RoleRitualist     Role = "ritualist"
	RoleHerald        Role = "herald"
)

var knownRoles = map[Role]bool{
	RoleFlamebearer:   true,
	RoleSilenceWarden: true,
	RoleLorekeeper:    true,
	RoleStargazer:     true,
	RoleRitualist:     true,
	RoleHerald:        true,
}

// CeremonialSeal is the avatar's cosmetic proof-of-forging record.
type CeremonialSeal struct {
	Phrase string `json:"phrase"`
	Glyph  string `json:"glyph"`
	Hash   string `json:"hash"`
}

// Lineage records the avatar's ancestral house.
type Lineage struct {
	House    string  `json:"house"`
	Ancestor string  `json:"ancestor"`
	Power    float64 `json:"power"`
	Hash     string  `json:"hash"`
}

// FlameAspect is the avatar's elemental flame flavor.
type FlameAspect struct {
	Aspect    string  `json:"aspect"`
	Hue       string  `json:"hue"`
	Intensity float64 `json:"intensity"`
	Hash      string  `json:"hash"`
}

// SilenceIntegration records how deeply the avatar has absorbed the silence.
type SilenceIntegration struct {
	Depth  string  `json:"depth"`
	Mantra string  `json:"mantra"`
	Level  float64 `json:"level"`
	Hash   string  `json:"hash"`
}

// ConstellationPosition places the avatar in the codex sky.
type ConstellationPosition struct {
	Constellation string  `json:"constellation"`
	Ascension     float64 `json:"ascension"`
	Declination   float64 `json:"declination"`
	Hash          string  `json:"hash"`
}

// Avatar is a forged ceremonial attribute bundle for a named entity.
// Name is unique within a realm.
type Avatar struct {
	ID                 uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	RealmID            string                `gorm:"size:50;not null;uniqueIndex:idx_avatars_realm_name" json:"realm_id"`
	Name               string                `gorm:"size:100;not null;uniqueIndex:idx_avatars_realm_name" json:"name"`
	Rank               Rank                  `gorm:"size:20;not null;index" json:"rank"`
	Roles              []Role                `gorm:"serializer:json" json:"roles"`
	FlameIntensity     float64               `json:"flame_intensity"`
	SilenceMastery     float64               `json:"silence_mastery"`
	LineagePower       float64               `json:"lineage_power"`
	Authority          float64               `gorm:"index" json:"authority"`
	CosmicInfluence    float64               `json:"cosmic_influence"`
	Seal               CeremonialSeal        `gorm:"serializer:json" json:"seal"`
	Lineage            Lineage               `gorm:"serializer:json" json:"lineage"`
	FlameAspect        FlameAspect           `gorm:"serializer:json" json:"flame_aspect"`
	SilenceIntegration SilenceIntegration    `gorm:"serializer:json" json:"silence_integration"`
	Constellation      ConstellationPosition `gorm:"serializer:json" json:"constellation"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	DeletedAt          gorm.DeletedAt        `gorm:"index" json:"-"`
}

// HasRole reports whether the avatar already holds the role.
func (a *Avatar) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AvatarRelationship links two avatars within a realm.
type AvatarRelationship struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RealmID   string    `gorm:"size:50;not null;index" json:"realm_id"`
	AvatarID  uuid.UUID `gorm:"type:uuid;not null;index" json:"avatar_id"`
	RelatedID uuid.UUID `gorm:"type:uuid;not null;index" json:"related_id"`
	Kind      string    `gorm:"size:50;not null" json:"kind"`
	Strength  float64   `json:"strength"`
	CreatedAt time.Time `json:"created_at"`
	Avatar    Avatar    `gorm:"foreignKey:AvatarID" json:"-"`
	Related   Avatar    `gorm:"foreignKey:RelatedID" json:"-"`
}

// AvatarCeremony records a rite performed on an avatar.
type AvatarCeremony struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RealmID     string    `gorm:"size:50;not null;index" json:"realm_id"`
	AvatarID    uuid.UUID `gorm:"type:uuid;not null;index" json:"avatar_id"`
	Rite        string    `gorm:"size:100;not null" json:"rite"`
	Witness     string    `gorm:"size:100" json:"witness"`
	SealHash    string    `gorm:"size:64" json:"seal_hash"`
	PerformedAt time.Time `gorm:"not null" json:"performed_at"`
	Avatar      Avatar    `gorm:"foreignKey:AvatarID" json:"-"`
}
