package sigil

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/events"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/seal"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSigilNotFound = errors.New("sigil not found")

// SigilService issues and verifies ceremonial seals.
type SigilService struct {
	db  *gorm.DB
	bus *events.Bus
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSigilService(db *gorm.DB, bus *events.Bus) *SigilService {
	return &SigilService{
		db:  db,
		bus: bus,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// IssueSigil creates a new seal for a bearer. The serial is the short form of
// the full hash.
func (s *SigilService) IssueSigil(realmID, bearer, purpose string) (*Sigil, error) {
	if bearer == "" {
		return nil, errors.New("bearer is required")
	}

	s.mu.Lock()
	glyph := sigilGlyphs[s.rng.Intn(len(sigilGlyphs))]
	inscription := sigilInscriptions[s.rng.Intn(len(sigilInscriptions))]
	nonce := fmt.Sprintf("%016x", s.rng.Uint64())
	s.mu.Unlock()

	// The nonce is part of the sealed fields so identical bearer/purpose
	// pairs still get distinct serials.
	hash := seal.Compute(realmID, bearer, purpose, glyph, inscription, nonce)

	sg := &Sigil{
		ID:          uuid.New(),
		RealmID:     realmID,
		Serial:      seal.Short(hash),
		Bearer:      bearer,
		Purpose:     purpose,
		Glyph:       glyph,
		Inscription: inscription,
		Nonce:       nonce,
		Hash:        hash,
		IssuedAt:    time.Now().UTC(),
	}

	if err := s.db.Create(sg).Error; err != nil {
		return nil, fmt.Errorf("failed to store sigil: %w", err)
	}

	if s.bus != nil {
		s.bus.Publish(events.SigilIssued, events.NewEvent(events.SigilIssued, sg))
	}
	return sg, nil
}

// GetSigil loads a sigil by serial within a realm.
func (s *SigilService) GetSigil(realmID, serial string) (*Sigil, error) {
	var sg Sigil
	if err := s.db.Scopes(realm.ForRealm(realmID)).Where("serial = ?", serial).First(&sg).Error; err != nil {
		return nil, ErrSigilNotFound
	}
	return &sg, nil
}

// ListSigils returns a page of sigils, newest first.
func (s *SigilService) ListSigils(realmID string, limit, offset int) ([]Sigil, int64, error) {
	var sigils []Sigil
	var total int64

	s.db.Model(&Sigil{}).Scopes(realm.ForRealm(realmID)).Count(&total)

	if err := s.db.Scopes(realm.ForRealm(realmID)).
		Order("issued_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sigils).Error; err != nil {
		return nil, 0, err
	}

	return sigils, total, nil
}

// VerifySigil recomputes the seal over the stored fields and compares it to
// the stored hash. A mismatch means the row was tampered with.
func (s *SigilService) VerifySigil(realmID, serial string) (*Sigil, bool, error) {
	sg, err := s.GetSigil(realmID, serial)
	if err != nil {
		return nil, false, err
	}

	valid := seal.Verify(sg.Hash,
		sg.RealmID, sg.Bearer, sg.Purpose, sg.Glyph, sg.Inscription, sg.Nonce,
	)
	return sg, valid, nil
}
