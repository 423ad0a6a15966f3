package silence

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
	ErrProclamationNotFound = errors.New("proclamation not found")
	ErrAlreadyDispatched    = errors.New("proclamation already dispatched")
)

// SilenceService drafts and dispatches eternal-silence proclamations.
type SilenceService struct {
	db  *gorm.DB
	bus *events.Bus
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSilenceService(db *gorm.DB, bus *events.Bus) *SilenceService {
	return &SilenceService{
		db:  db,
		bus: bus,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Proclaim drafts a proclamation for a subject. witnessCount witnesses are
// drawn without repetition.
func (s *SilenceService) Proclaim(realmID, subject string, witnessCount int) (*Proclamation, error) {
	if subject == "" {
		return nil, errors.New("subject is required")
	}
	if witnessCount < 1 {
		witnessCount = 3
	}
	if witnessCount > len(witnessTitles) {
		witnessCount = len(witnessTitles)
	}

	s.mu.Lock()
	decree := fmt.Sprintf(decreeTemplates[s.rng.Intn(len(decreeTemplates))], subject)
	depth := silenceDepths[s.rng.Intn(len(silenceDepths))]
	witnesses := make([]string, 0, witnessCount)
	for _, i := range s.rng.Perm(len(witnessTitles))[:witnessCount] {
		witnesses = append(witnesses, witnessTitles[i])
	}
	s.mu.Unlock()

	p := &Proclamation{
		ID:        uuid.New(),
		RealmID:   realmID,
		Subject:   subject,
		Decree:    decree,
		Depth:     depth,
		Witnesses: witnesses,
		SealHash:  seal.Compute(realmID, subject, decree, depth, strings.Join(witnesses, "|")),
	}

	if err := s.db.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to store proclamation: %w", err)
	}
	return p, nil
}

// GetProclamation loads a proclamation by id within a realm.
func (s *SilenceService) GetProclamation(realmID string, id uuid.UUID) (*Proclamation, error) {
	var p Proclamation
	if err := s.db.Scopes(realm.ForRealm(realmID)).First(&p, "id = ?", id).Error; err != nil {
		return nil, ErrProclamationNotFound
	}
	return &p, nil
}

// ListProclamations returns a page of proclamations, newest first. When
// dispatchedOnly is set, drafts are excluded.
func (s *SilenceService) ListProclamations(realmID string, dispatchedOnly bool, limit, offset int) ([]Proclamation, int64, error) {
	query := s.db.Model(&Proclamation{}).Scopes(realm.ForRealm(realmID))
	if dispatchedOnly {
		query = query.Where("dispatched = ?", true)
	}

	var total int64
	query.Count(&total)

	var procs []Proclamation
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&procs).Error; err != nil {
		return nil, 0, err
	}

	return procs, total, nil
}

// Dispatch marks a draft proclamation dispatched and announces it on the bus.
// Dispatching twice is an error.
func (s *SilenceService) Dispatch(realmID string, id uuid.UUID) (*Proclamation, error) {
	p, err := s.GetProclamation(realmID, id)
	if err != nil {
		return nil, err
	}
	if p.Dispatched {
		return nil, ErrAlreadyDispatched
	}

	now := time.Now()
	p.Dispatched = true
	p.DispatchedAt = &now
	if err := s.db.Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to dispatch proclamation: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(events.SilenceProclaimed, events.NewEvent(events.SilenceProclaimed, p))
	}
	return p, nil
}
