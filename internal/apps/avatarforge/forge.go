package avatarforge

import (
	"math/rand"
	"sync"
	"time"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/seal"
	"github.com/google/uuid"
)

// Flavor tables the forge draws from.

var flameAspects = []string{
	"Ember of the First Dawn", "Twin Coronas", "Ashen Crown", "Solar Threnody",
	"Violet Pyre", "The Unblinking Flame", "Cinder Choir", "Aurora Furnace",
}

var flameHues = []string{
	"#f97316", "#fbbf24", "#ef4444", "#8b5cf6", "#06b6d4", "#eab308",
}

var silenceDepths = []string{
	"surface hush", "veiled quiet", "deep stillness", "the absolute quiet",
	"void-adjacent calm", "terminal serenity",
}

var silenceMantras = []string{
	"what is unspoken cannot be unmade",
	"the pause between heartbeats holds the codex",
	"still water remembers every stone",
	"silence is the oldest hymn",
	"no word survives the deep quiet",
}

var lineageHouses = []string{
	"House of the Shattered Mirror", "House of Falling Embers",
	"House of the Ninth Veil", "House of Patient Stone",
	"House of the Wandering Comet", "House of Hollow Bells",
}

var lineageAncestors = []string{
	"Veyra the Unbowed", "Kalthos Emberwright", "Sister Null", "Oron of the Deep Quiet",
	"Maribel Starbinder", "The Nameless Cartographer",
}

var constellations = []string{
	"The Broken Crown", "The Silent Choir", "The Emberwheel", "The Veiled Archer",
	"The Ninth Lantern", "The Sleeping Cartographer",
}

var sealPhrases = []string{
	"forged beneath the unblinking flame",
	"witnessed by the silent choir",
	"bound to the ninth lantern",
	"sworn upon patient stone",
	"etched into the emberwheel",
}

var sealGlyphs = []string{"ᚠ", "ᛟ", "ᚱ", "ᛉ", "ᛝ", "ᛞ"}

// Authority formula weights. Fixed by design so scores are reproducible from
// the stored draws.
const (
	weightRank    = 0.45
	weightFlame   = 0.20
	weightSilence = 0.15
	weightLineage = 0.10
	weightPerRole = 0.02

	maxAuthority = 0.99
	maxInfluence = 1.0
)

// CalculateAuthority applies the fixed-weight linear formula. The result is
// clamped to maxAuthority and is monotonic in rank for equal draws.
func CalculateAuthority(rank Rank, flame, silence, lineage float64, roleCount int) float64 {
	a := RankWeights[rank]*weightRank +
		flame*weightFlame +
		silence*weightSilence +
		lineage*weightLineage +
		float64(roleCount)*weightPerRole
	if a > maxAuthority {
		a = maxAuthority
	}
	return a
}

// CalculateInfluence derives cosmic influence from authority and the flame and
// silence draws, clamped to maxInfluence.
func CalculateInfluence(authority, flame, silence float64) float64 {
	i := authority*0.50 + flame*0.25 + silence*0.25
	if i > maxInfluence {
		i = maxInfluence
	}
	return i
}

// Forge builds randomized ceremonial attribute bundles. Safe for concurrent
// use; the rand source is guarded because handlers share one Forge.
type Forge struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewForge() *Forge {
	return &Forge{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewForgeWithSeed returns a forge with a fixed seed, used by tests.
func NewForgeWithSeed(s int64) *Forge {
	return &Forge{rng: rand.New(rand.NewSource(s))}
}

func (f *Forge) pick(list []string) string {
	return list[f.rng.Intn(len(list))]
}

// ForgeAvatar draws a full attribute bundle for name. Houses override the
// built-in lineage table when the realm configures its own.
func (f *Forge) ForgeAvatar(realmID, name string, rank Rank, roles []Role, houses []string) *Avatar {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(houses) == 0 {
		houses = lineageHouses
	}

	flame := f.rng.Float64()
	silence := f.rng.Float64()
	lineagePower := f.rng.Float64()

	lineage := Lineage{
		House:    f.pick(houses),
		Ancestor: f.pick(lineageAncestors),
		Power:    lineagePower,
	}
	lineage.Hash = seal.Compute(realmID, name, lineage.House, lineage.Ancestor)

	aspect := FlameAspect{
		Aspect:    f.pick(flameAspects),
		Hue:       f.pick(flameHues),
		Intensity: flame,
	}
	aspect.Hash = seal.Compute(realmID, name, aspect.Aspect, aspect.Hue)

	integration := SilenceIntegration{
		Depth:  f.pick(silenceDepths),
		Mantra: f.pick(silenceMantras),
		Level:  silence,
	}
	integration.Hash = seal.Compute(realmID, name, integration.Depth, integration.Mantra)

	position := ConstellationPosition{
		Constellation: f.pick(constellations),
		Ascension:     f.rng.Float64() * 360,
		Declination:   f.rng.Float64()*180 - 90,
	}
	position.Hash = seal.Compute(realmID, name, position.Constellation)

	avatarSeal := CeremonialSeal{
		Phrase: f.pick(sealPhrases),
		Glyph:  f.pick(sealGlyphs),
	}
	avatarSeal.Hash = seal.Compute(realmID, name, string(rank), avatarSeal.Phrase, avatarSeal.Glyph)

	authority := CalculateAuthority(rank, flame, silence, lineagePower, len(roles))

	return &Avatar{
		ID:                 uuid.New(),
		RealmID:            realmID,
		Name:               name,
		Rank:               rank,
		Roles:              roles,
		FlameIntensity:     flame,
		SilenceMastery:     silence,
		LineagePower:       lineagePower,
		Authority:          authority,
		CosmicInfluence:    CalculateInfluence(authority, flame, silence),
		Seal:               avatarSeal,
		Lineage:            lineage,
		FlameAspect:        aspect,
		SilenceIntegration: integration,
		Constellation:      position,
	}
}
