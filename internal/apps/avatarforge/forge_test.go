package avatarforge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rankOrder = []Rank{RankInitiate, RankAdept, RankKeeper, RankSage, RankMaster, RankEternal}

func TestRankWeightsStrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(rankOrder); i++ {
		lower := RankWeights[rankOrder[i-1]]
		higher := RankWeights[rankOrder[i]]
		assert.Greater(t, higher, lower, "weight for %s must exceed %s", rankOrder[i], rankOrder[i-1])
	}
}

func TestAuthorityMonotonicInRank(t *testing.T) {
	// With identical draws, a higher rank must never score lower.
	draws := []struct{ flame, silence, lineage float64 }{
		{0, 0, 0},
		{0.5, 0.5, 0.5},
		{0.9, 0.1, 0.7},
	}
	for _, d := range draws {
		prev := -1.0
		for _, rank := range rankOrder {
			a := CalculateAuthority(rank, d.flame, d.silence, d.lineage, 2)
			assert.GreaterOrEqual(t, a, prev, "rank %s with draws %+v", rank, d)
			prev = a
		}
	}
}

func TestAuthorityClamped(t *testing.T) {
	a := CalculateAuthority(RankEternal, 1, 1, 1, 6)
	assert.Equal(t, 0.99, a)
}

func TestAuthorityRoleBonus(t *testing.T) {
	base := CalculateAuthority(RankAdept, 0.5, 0.5, 0.5, 0)
	withRoles := CalculateAuthority(RankAdept, 0.5, 0.5, 0.5, 3)
	assert.InDelta(t, 0.06, withRoles-base, 1e-9)
}

func TestInfluenceClamped(t *testing.T) {
	assert.Equal(t, 1.0, CalculateInfluence(1, 1, 1))
	assert.InDelta(t, 0.5, CalculateInfluence(0.5, 0.5, 0.5), 1e-9)
}

func TestForgeAvatarFieldsPopulated(t *testing.T) {
	forge := NewForgeWithSeed(7)
	avatar := forge.ForgeAvatar("obsidian_vault", "Seraphina", RankKeeper, []Role{RoleLorekeeper}, nil)

	assert.Equal(t, "obsidian_vault", avatar.RealmID)
	assert.Equal(t, "Seraphina", avatar.Name)
	assert.Equal(t, RankKeeper, avatar.Rank)
	assert.Equal(t, []Role{RoleLorekeeper}, avatar.Roles)

	assert.NotEmpty(t, avatar.Seal.Phrase)
	assert.Len(t, avatar.Seal.Hash, 64)
	assert.NotEmpty(t, avatar.Lineage.House)
	assert.NotEmpty(t, avatar.FlameAspect.Aspect)
	assert.NotEmpty(t, avatar.SilenceIntegration.Depth)
	assert.NotEmpty(t, avatar.Constellation.Constellation)

	assert.GreaterOrEqual(t, avatar.FlameIntensity, 0.0)
	assert.Less(t, avatar.FlameIntensity, 1.0)
	assert.GreaterOrEqual(t, avatar.Constellation.Ascension, 0.0)
	assert.Less(t, avatar.Constellation.Ascension, 360.0)
	assert.GreaterOrEqual(t, avatar.Constellation.Declination, -90.0)
	assert.Less(t, avatar.Constellation.Declination, 90.0)

	expected := CalculateAuthority(RankKeeper, avatar.FlameIntensity, avatar.SilenceMastery, avatar.LineagePower, 1)
	assert.InDelta(t, expected, avatar.Authority, 1e-9)
	assert.InDelta(t, CalculateInfluence(avatar.Authority, avatar.FlameIntensity, avatar.SilenceMastery), avatar.CosmicInfluence, 1e-9)
}

func TestForgeAvatarUsesRealmHouses(t *testing.T) {
	forge := NewForgeWithSeed(7)
	avatar := forge.ForgeAvatar("obsidian_vault", "Seraphina", RankAdept, nil, []string{"emberfall"})
	require.Equal(t, "emberfall", avatar.Lineage.House)
}

func TestForgeAvatarDeterministicWithSeed(t *testing.T) {
	a := NewForgeWithSeed(42).ForgeAvatar("obsidian_vault", "Seraphina", RankSage, nil, nil)
	b := NewForgeWithSeed(42).ForgeAvatar("obsidian_vault", "Seraphina", RankSage, nil, nil)

	assert.Equal(t, a.FlameIntensity, b.FlameIntensity)
	assert.Equal(t, a.Lineage, b.Lineage)
	assert.Equal(t, a.Authority, b.Authority)
}
