package sigil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *SigilService {
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

	require.NoError(t, db.AutoMigrate(&Sigil{}))
	return NewSigilService(db, nil)
}

func TestIssueAndGetSigil(t *testing.T) {
	svc := newTestService(t)

	issued, err := svc.IssueSigil("obsidian_vault", "Seraphina", "gatekeeping")
	require.NoError(t, err)

	assert.Len(t, issued.Serial, 16)
	assert.Len(t, issued.Hash, 64)
	assert.Equal(t, issued.Hash[:16], issued.Serial)
	assert.NotEmpty(t, issued.Glyph)
	assert.NotEmpty(t, issued.Inscription)

	loaded, err := svc.GetSigil("obsidian_vault", issued.Serial)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, loaded.ID)
	assert.Equal(t, issued.Bearer, loaded.Bearer)
	assert.Equal(t, issued.Hash, loaded.Hash)
}

func TestIssueSigilRequiresBearer(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.IssueSigil("obsidian_vault", "", "gatekeeping")
	assert.Error(t, err)
}

func TestIssueSigilDistinctSerials(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.IssueSigil("obsidian_vault", "Seraphina", "gatekeeping")
	require.NoError(t, err)
	b, err := svc.IssueSigil("obsidian_vault", "Seraphina", "gatekeeping")
	require.NoError(t, err)

	assert.NotEqual(t, a.Serial, b.Serial)
}

func TestVerifySigil(t *testing.T) {
	svc := newTestService(t)

	issued, err := svc.IssueSigil("obsidian_vault", "Seraphina", "gatekeeping")
	require.NoError(t, err)

	_, valid, err := svc.VerifySigil("obsidian_vault", issued.Serial)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifySigilDetectsTampering(t *testing.T) {
	svc := newTestService(t)

	issued, err := svc.IssueSigil("obsidian_vault", "Seraphina", "gatekeeping")
	require.NoError(t, err)

	require.NoError(t, svc.db.Model(&Sigil{}).
		Where("serial = ?", issued.Serial).
		Update("bearer", "Usurper").Error)

	_, valid, err := svc.VerifySigil("obsidian_vault", issued.Serial)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifySigilNotFound(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.VerifySigil("obsidian_vault", "missing-serial")
	assert.ErrorIs(t, err, ErrSigilNotFound)
}

func TestSigilRealmIsolation(t *testing.T) {
	svc := newTestService(t)

	issued, err := svc.IssueSigil("obsidian_vault", "Seraphina", "gatekeeping")
	require.NoError(t, err)

	_, err = svc.GetSigil("astral_court", issued.Serial)
	assert.ErrorIs(t, err, ErrSigilNotFound)

	sigils, total, err := svc.ListSigils("obsidian_vault", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, sigils, 1)
}
