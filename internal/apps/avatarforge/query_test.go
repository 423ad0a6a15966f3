package avatarforge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQueryFixture(t *testing.T) *AvatarService {
	t.Helper()
	svc := newTestService(t)

	fixtures := []struct {
		name  string
		rank  Rank
		roles []Role
	}{
		{"Seraphina", RankInitiate, []Role{RoleLorekeeper}},
		{"Thorne", RankAdept, []Role{RoleHerald}},
		{"Vael", RankKeeper, []Role{RoleLorekeeper, RoleHerald}},
		{"Ishmara", RankMaster, nil},
		{"Okkra", RankEternal, []Role{RoleSilenceWarden}},
	}
	for _, f := range fixtures {
		_, err := svc.CreateAvatar("obsidian_vault", f.name, f.rank, f.roles)
		require.NoError(t, err)
	}
	return svc
}

func names(avatars []Avatar) []string {
	out := make([]string, 0, len(avatars))
	for _, a := range avatars {
		out = append(out, a.Name)
	}
	return out
}

func TestQueryByRankEquals(t *testing.T) {
	svc := seedQueryFixture(t)

	got, err := svc.QueryAvatars("obsidian_vault", AvatarQuery{
		Field: ByRank, Operator: OpEquals, Value: string(RankKeeper),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Vael"}, names(got))
}

func TestQueryByRoleContains(t *testing.T) {
	svc := seedQueryFixture(t)

	got, err := svc.QueryAvatars("obsidian_vault", AvatarQuery{
		Field: ByRole, Operator: OpContains, Value: string(RoleLorekeeper),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Seraphina", "Vael"}, names(got))
}

func TestQueryNumericOperatorsPartition(t *testing.T) {
	svc := seedQueryFixture(t)

	all, _, err := svc.ListAvatars("obsidian_vault", 100, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)

	// Pivot on a real stored score so equals is non-empty.
	pivot := all[2].Authority
	value := fmt.Sprintf("%v", pivot)

	var counts int
	for _, op := range []QueryOp{OpEquals, OpGreater, OpLess} {
		got, err := svc.QueryAvatars("obsidian_vault", AvatarQuery{
			Field: ByAuthority, Operator: op, Value: value,
		})
		require.NoError(t, err)
		counts += len(got)

		for _, a := range got {
			switch op {
			case OpEquals:
				assert.Equal(t, pivot, a.Authority)
			case OpGreater:
				assert.Greater(t, a.Authority, pivot)
			case OpLess:
				assert.Less(t, a.Authority, pivot)
			}
		}
	}

	// equals/greater/less partition the realm exactly.
	assert.Equal(t, len(all), counts)
}

func TestQueryByInfluenceGreater(t *testing.T) {
	svc := seedQueryFixture(t)

	got, err := svc.QueryAvatars("obsidian_vault", AvatarQuery{
		Field: ByInfluence, Operator: OpGreater, Value: "0",
	})
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestQueryByFlameLess(t *testing.T) {
	svc := seedQueryFixture(t)

	got, err := svc.QueryAvatars("obsidian_vault", AvatarQuery{
		Field: ByFlame, Operator: OpLess, Value: "1",
	})
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestQueryRespectsRealm(t *testing.T) {
	svc := seedQueryFixture(t)

	got, err := svc.QueryAvatars("astral_court", AvatarQuery{
		Field: ByAuthority, Operator: OpGreater, Value: "0",
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQueryRejectsBadCombinations(t *testing.T) {
	svc := seedQueryFixture(t)

	cases := []AvatarQuery{
		{Field: ByRank, Operator: OpGreater, Value: string(RankAdept)},
		{Field: ByRole, Operator: OpEquals, Value: string(RoleHerald)},
		{Field: ByAuthority, Operator: OpContains, Value: "0.5"},
		{Field: ByAuthority, Operator: OpEquals, Value: "not-a-number"},
		{Field: QueryField("by_moon"), Operator: OpEquals, Value: "x"},
		{Field: ByFlame, Operator: QueryOp("between"), Value: "0.5"},
	}
	for _, q := range cases {
		_, err := svc.QueryAvatars("obsidian_vault", q)
		assert.ErrorIs(t, err, ErrBadQuery, "query %+v should be rejected", q)
	}
}
