package hymnal

import (
	"fmt"
	"testing"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/seal"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *HymnService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Hymn{}, &HymnPerformance{}))
	return NewHymnService(db, nil)
}

func TestComposeAndGetHymn(t *testing.T) {
	svc := newTestService(t)

	composed, err := svc.ComposeHymn("obsidian_vault", "Hymn of the Ember", "flame", 3)
	require.NoError(t, err)

	assert.Equal(t, "flame", composed.Theme)
	assert.Contains(t, hymnOpenings["flame"], composed.Opening)
	assert.Len(t, composed.Verses, 3)
	assert.NotEmpty(t, composed.Benediction)
	assert.Len(t, composed.SealHash, 64)

	loaded, err := svc.GetHymn("obsidian_vault", composed.ID)
	require.NoError(t, err)
	assert.Equal(t, composed.Title, loaded.Title)
	assert.Equal(t, composed.Verses, loaded.Verses)
	assert.Equal(t, composed.SealHash, loaded.SealHash)
}

func TestComposeHymnVersesDistinct(t *testing.T) {
	svc := newTestService(t)

	hymn, err := svc.ComposeHymn("obsidian_vault", "Long Hymn", "silence", len(hymnVerses))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, v := range hymn.Verses {
		assert.False(t, seen[v], "verse repeated: %s", v)
		seen[v] = true
	}
}

func TestComposeHymnRandomTheme(t *testing.T) {
	svc := newTestService(t)

	hymn, err := svc.ComposeHymn("obsidian_vault", "Untitled Rite", "", 0)
	require.NoError(t, err)
	assert.Contains(t, hymnThemes, hymn.Theme)
	assert.Len(t, hymn.Verses, 3)
}

func TestComposeHymnValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ComposeHymn("obsidian_vault", "", "flame", 3)
	assert.Error(t, err)

	_, err = svc.ComposeHymn("obsidian_vault", "Odd Hymn", "entropy", 3)
	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestHymnSealVerifiable(t *testing.T) {
	svc := newTestService(t)

	hymn, err := svc.ComposeHymn("obsidian_vault", "Sealed Hymn", "lineage", 2)
	require.NoError(t, err)

	loaded, err := svc.GetHymn("obsidian_vault", hymn.ID)
	require.NoError(t, err)

	joined := loaded.Verses[0] + "|" + loaded.Verses[1]
	assert.True(t, seal.Verify(loaded.SealHash,
		loaded.RealmID, loaded.Title, loaded.Theme, loaded.Opening, joined, loaded.Benediction,
	))
}

func TestPerformHymnIncrementsCounter(t *testing.T) {
	svc := newTestService(t)

	hymn, err := svc.ComposeHymn("obsidian_vault", "Hymn of the Ember", "flame", 3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.PerformHymn("obsidian_vault", hymn.ID, "the silent choir")
		require.NoError(t, err)
	}

	loaded, err := svc.GetHymn("obsidian_vault", hymn.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Performances)
}

func TestPerformHymnNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.PerformHymn("obsidian_vault", uuid.New(), "nobody")
	assert.ErrorIs(t, err, ErrHymnNotFound)
}

func TestHymnRealmIsolation(t *testing.T) {
	svc := newTestService(t)

	hymn, err := svc.ComposeHymn("obsidian_vault", "Vault Hymn", "stars", 2)
	require.NoError(t, err)

	_, err = svc.GetHymn("astral_court", hymn.ID)
	assert.ErrorIs(t, err, ErrHymnNotFound)

	hymns, total, err := svc.ListHymns("astral_court", 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, hymns)
}
