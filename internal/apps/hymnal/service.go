package hymnal

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/events"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/seal"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrHymnNotFound = errors.New("hymn not found")
	ErrUnknownTheme = errors.New("unknown hymn theme")
)

// HymnService composes and registers hymns.
type HymnService struct {
	db  *gorm.DB
	bus *events.Bus
	mu  sync.Mutex
	rng *rand.Rand
}

func NewHymnService(db *gorm.DB, bus *events.Bus) *HymnService {
	return &HymnService{
		db:  db,
		bus: bus,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *HymnService) pick(list []string) string {
	return list[s.rng.Intn(len(list))]
}

// ComposeHymn builds a hymn from the flavor tables and stores it. An empty
// theme draws one at random.
func (s *HymnService) ComposeHymn(realmID, title, theme string, verseCount int) (*Hymn, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}

	s.mu.Lock()
	if theme == "" {
		theme = s.pick(hymnThemes)
	}
	openings, ok := hymnOpenings[theme]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, theme)
	}

	if verseCount < 1 {
		verseCount = 3
	}
	if verseCount > len(hymnVerses) {
		verseCount = len(hymnVerses)
	}

	verses := make([]string, 0, verseCount)
	seen := make(map[string]bool)
	for len(verses) < verseCount {
		v := s.pick(hymnVerses)
		if seen[v] {
			continue
		}
		seen[v] = true
		verses = append(verses, v)
	}

	hymn := &Hymn{
		ID:          uuid.New(),
		RealmID:     realmID,
		Title:       title,
		Theme:       theme,
		Opening:     s.pick(openings),
		Verses:      verses,
		Benediction: s.pick(hymnBenedictions),
	}
	s.mu.Unlock()

	hymn.SealHash = seal.Compute(realmID, title, theme, hymn.Opening, strings.Join(verses, "|"), hymn.Benediction)

	if err := s.db.Create(hymn).Error; err != nil {
		return nil, fmt.Errorf("failed to store hymn: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(events.HymnComposed, events.NewEvent(events.HymnComposed, hymn))
	}
	return hymn, nil
}

// GetHymn loads a hymn by id within a realm.
func (s *HymnService) GetHymn(realmID string, id uuid.UUID) (*Hymn, error) {
	var hymn Hymn
	if err := s.db.Scopes(realm.ForRealm(realmID)).First(&hymn, "id = ?", id).Error; err != nil {
		return nil, ErrHymnNotFound
	}
	return &hymn, nil
}

// ListHymns returns a page of hymns, newest first.
func (s *HymnService) ListHymns(realmID string, limit, offset int) ([]Hymn, int64, error) {
	var hymns []Hymn
	var total int64

	s.db.Model(&Hymn{}).Scopes(realm.ForRealm(realmID)).Count(&total)

	if err := s.db.Scopes(realm.ForRealm(realmID)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&hymns).Error; err != nil {
		return nil, 0, err
	}

	return hymns, total, nil
}

// PerformHymn records a performance and bumps the hymn's counter.
func (s *HymnService) PerformHymn(realmID string, id uuid.UUID, performer string) (*HymnPerformance, error) {
	hymn, err := s.GetHymn(realmID, id)
	if err != nil {
		return nil, err
	}

	perf := &HymnPerformance{
		ID:          uuid.New(),
		RealmID:     realmID,
		HymnID:      hymn.ID,
		Performer:   performer,
		PerformedAt: time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(perf).Error; err != nil {
			return err
		}
		return tx.Model(hymn).Update("performances", gorm.Expr("performances + 1")).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record performance: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(events.HymnPerformed, events.NewEvent(events.HymnPerformed, perf))
	}
	return perf, nil
}
