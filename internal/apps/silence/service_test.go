package silence

import (
	"fmt"
	"strings"
	"testing"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/events"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/seal"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T, bus *events.Bus) *SilenceService {
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

	require.NoError(t, db.AutoMigrate(&Proclamation{}))
	return NewSilenceService(db, bus)
}

func TestProclaimAndGet(t *testing.T) {
	svc := newTestService(t, nil)

	p, err := svc.Proclaim("obsidian_vault", "the fallen herald", 3)
	require.NoError(t, err)

	assert.Contains(t, p.Decree, "the fallen herald")
	assert.Contains(t, silenceDepths, p.Depth)
	assert.Len(t, p.Witnesses, 3)
	assert.False(t, p.Dispatched)
	assert.Nil(t, p.DispatchedAt)

	loaded, err := svc.GetProclamation("obsidian_vault", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Decree, loaded.Decree)
	assert.Equal(t, p.Witnesses, loaded.Witnesses)

	assert.True(t, seal.Verify(loaded.SealHash,
		loaded.RealmID, loaded.Subject, loaded.Decree, loaded.Depth, strings.Join(loaded.Witnesses, "|"),
	))
}

func TestProclaimWitnessesDistinct(t *testing.T) {
	svc := newTestService(t, nil)

	p, err := svc.Proclaim("obsidian_vault", "the fallen herald", len(witnessTitles))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, w := range p.Witnesses {
		assert.False(t, seen[w], "witness repeated: %s", w)
		seen[w] = true
	}
}

func TestProclaimValidation(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Proclaim("obsidian_vault", "", 3)
	assert.Error(t, err)

	// Oversized witness counts clamp to the available titles.
	p, err := svc.Proclaim("obsidian_vault", "the fallen herald", 100)
	require.NoError(t, err)
	assert.Len(t, p.Witnesses, len(witnessTitles))
}

func TestDispatchOnce(t *testing.T) {
	bus := events.NewBus(nil, nil)
	_, ch := bus.Subscribe(events.SilenceProclaimed)
	svc := newTestService(t, bus)

	p, err := svc.Proclaim("obsidian_vault", "the fallen herald", 2)
	require.NoError(t, err)

	dispatched, err := svc.Dispatch("obsidian_vault", p.ID)
	require.NoError(t, err)
	assert.True(t, dispatched.Dispatched)
	require.NotNil(t, dispatched.DispatchedAt)

	evt := <-ch
	assert.Equal(t, events.SilenceProclaimed, evt.Type)

	_, err = svc.Dispatch("obsidian_vault", p.ID)
	assert.ErrorIs(t, err, ErrAlreadyDispatched)
}

func TestDispatchNotFound(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Dispatch("obsidian_vault", uuid.New())
	assert.ErrorIs(t, err, ErrProclamationNotFound)
}

func TestListProclamationsDispatchedOnly(t *testing.T) {
	svc := newTestService(t, nil)

	draft, err := svc.Proclaim("obsidian_vault", "the first subject", 2)
	require.NoError(t, err)
	sent, err := svc.Proclaim("obsidian_vault", "the second subject", 2)
	require.NoError(t, err)
	_, err = svc.Dispatch("obsidian_vault", sent.ID)
	require.NoError(t, err)

	all, total, err := svc.ListProclamations("obsidian_vault", false, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	dispatched, total, err := svc.ListProclamations("obsidian_vault", true, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, dispatched, 1)
	assert.Equal(t, sent.ID, dispatched[0].ID)
	assert.NotEqual(t, draft.ID, dispatched[0].ID)
}

func TestProclamationRealmIsolation(t *testing.T) {
	svc := newTestService(t, nil)

	p, err := svc.Proclaim("obsidian_vault", "the fallen herald", 2)
	require.NoError(t, err)

	_, err = svc.GetProclamation("astral_court", p.ID)
	assert.ErrorIs(t, err, ErrProclamationNotFound)
}
