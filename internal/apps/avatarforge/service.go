package avatarforge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/events"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/realm"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/seal"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNameTaken      = errors.New("avatar name already forged in this realm")
	ErrAvatarNotFound = errors.New("avatar not found")
	ErrUnknownRank    = errors.New("unknown rank")
	ErrUnknownRole    = errors.New("unknown role")
)

// AvatarService is the management layer over the avatar constellation:
// forging, rank and role updates, filter queries, statistics and export.
type AvatarService struct {
	db        *gorm.DB
	forge     *Forge
	bus       *events.Bus
	registry  *realm.Registry
	exportDir string
}

func NewAvatarService(db *gorm.DB, forge *Forge, bus *events.Bus, registry *realm.Registry, exportDir string) *AvatarService {
	return &AvatarService{
		db:        db,
		forge:     forge,
		bus:       bus,
		registry:  registry,
		exportDir: exportDir,
	}
}

func (s *AvatarService) publish(eventType events.EventType, data any) {
	if s.bus != nil {
		s.bus.Publish(eventType, events.NewEvent(eventType, data))
	}
}

// CreateAvatar forges and stores a new avatar. The name must be unused within
// the realm.
func (s *AvatarService) CreateAvatar(realmID, name string, rank Rank, roles []Role) (*Avatar, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if rank == "" {
		rank = RankInitiate
	}
	if _, ok := RankWeights[rank]; !ok {
		return nil, ErrUnknownRank
	}
	for _, r := range roles {
		if !knownRoles[r] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRole, r)
		}
	}

	var existing Avatar
	if err := s.db.Scopes(realm.ForRealm(realmID)).Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrNameTaken
	}

	var houses []string
	if s.registry != nil {
		houses = s.registry.HousesFor(realmID)
	}

	avatar := s.forge.ForgeAvatar(realmID, name, rank, roles, houses)
	if err := s.db.Create(avatar).Error; err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	s.recordCeremony(avatar, "rite of forging", "the silent choir")
	s.publish(events.AvatarForged, avatar)
	return avatar, nil
}

// GetAvatar loads an avatar by name within a realm.
func (s *AvatarService) GetAvatar(realmID, name string) (*Avatar, error) {
	var avatar Avatar
	if err := s.db.Scopes(realm.ForRealm(realmID)).Where("name = ?", name).First(&avatar).Error; err != nil {
		return nil, ErrAvatarNotFound
	}
	return &avatar, nil
}

// ListAvatars returns a page of avatars ordered by authority.
func (s *AvatarService) ListAvatars(realmID string, limit, offset int) ([]Avatar, int64, error) {
	var avatars []Avatar
	var total int64

	s.db.Model(&Avatar{}).Scopes(realm.ForRealm(realmID)).Count(&total)

	if err := s.db.Scopes(realm.ForRealm(realmID)).
		Order("authority DESC").
		Limit(limit).
		Offset(offset).
		Find(&avatars).Error; err != nil {
		return nil, 0, err
	}

	return avatars, total, nil
}

// UpdateRank replaces the avatar's rank and recomputes authority and
// influence with the same fixed formula.
func (s *AvatarService) UpdateRank(realmID, name string, newRank Rank) (*Avatar, error) {
	if _, ok := RankWeights[newRank]; !ok {
		return nil, ErrUnknownRank
	}

	avatar, err := s.GetAvatar(realmID, name)
	if err != nil {
		return nil, err
	}

	avatar.Rank = newRank
	s.recompute(avatar)

	if err := s.db.Save(avatar).Error; err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	s.recordCeremony(avatar, "rite of ascension", "the ninth lantern")
	s.publish(events.AvatarRankUpdated, avatar)
	return avatar, nil
}

// AddRole adds a role to the avatar's set and recomputes scores. Adding a
// role it already holds is a no-op.
func (s *AvatarService) AddRole(realmID, name string, role Role) (*Avatar, error) {
	if !knownRoles[role] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRole, role)
	}

	avatar, err := s.GetAvatar(realmID, name)
	if err != nil {
		return nil, err
	}

	if avatar.HasRole(role) {
		return avatar, nil
	}

	avatar.Roles = append(avatar.Roles, role)
	s.recompute(avatar)

	if err := s.db.Save(avatar).Error; err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	s.recordCeremony(avatar, "rite of investiture", "the emberwheel")
	return avatar, nil
}

func (s *AvatarService) recompute(avatar *Avatar) {
	avatar.Authority = CalculateAuthority(
		avatar.Rank,
		avatar.FlameIntensity,
		avatar.SilenceMastery,
		avatar.LineagePower,
		len(avatar.Roles),
	)
	avatar.CosmicInfluence = CalculateInfluence(
		avatar.Authority,
		avatar.FlameIntensity,
		avatar.SilenceMastery,
	)
}

func (s *AvatarService) recordCeremony(avatar *Avatar, rite, witness string) {
	now := time.Now()
	ceremony := AvatarCeremony{
		ID:          uuid.New(),
		RealmID:     avatar.RealmID,
		AvatarID:    avatar.ID,
		Rite:        rite,
		Witness:     witness,
		SealHash:    seal.Compute(avatar.RealmID, avatar.Name, rite, now.Format(time.RFC3339Nano)),
		PerformedAt: now,
	}
	s.db.Create(&ceremony)
}

// LinkAvatars records a relationship between two avatars of the same realm.
func (s *AvatarService) LinkAvatars(realmID, name, relatedName, kind string, strength float64) (*AvatarRelationship, error) {
	avatar, err := s.GetAvatar(realmID, name)
	if err != nil {
		return nil, err
	}
	related, err := s.GetAvatar(realmID, relatedName)
	if err != nil {
		return nil, err
	}

	rel := AvatarRelationship{
		ID:        uuid.New(),
		RealmID:   realmID,
		AvatarID:  avatar.ID,
		RelatedID: related.ID,
		Kind:      kind,
		Strength:  strength,
	}
	if err := s.db.Create(&rel).Error; err != nil {
		return nil, fmt.Errorf("failed to store relationship: %w", err)
	}
	return &rel, nil
}

// ListRelationships returns relationships originating from the named avatar.
func (s *AvatarService) ListRelationships(realmID, name string) ([]AvatarRelationship, error) {
	avatar, err := s.GetAvatar(realmID, name)
	if err != nil {
		return nil, err
	}
	var rels []AvatarRelationship
	if err := s.db.Scopes(realm.ForRealm(realmID)).Where("avatar_id = ?", avatar.ID).Find(&rels).Error; err != nil {
		return nil, err
	}
	return rels, nil
}

// ListCeremonies returns the rites performed on the named avatar.
func (s *AvatarService) ListCeremonies(realmID, name string) ([]AvatarCeremony, error) {
	avatar, err := s.GetAvatar(realmID, name)
	if err != nil {
		return nil, err
	}
	var ceremonies []AvatarCeremony
	if err := s.db.Scopes(realm.ForRealm(realmID)).
		Where("avatar_id = ?", avatar.ID).
		Order("performed_at ASC").
		Find(&ceremonies).Error; err != nil {
		return nil, err
	}
	return ceremonies, nil
}

// GetStats computes aggregate statistics for a realm's constellation.
func (s *AvatarService) GetStats(realmID string) (map[string]interface{}, error) {
	var total int64
	s.db.Model(&Avatar{}).Scopes(realm.ForRealm(realmID)).Count(&total)

	var sumAuthority, avgAuthority, avgInfluence float64
	s.db.Model(&Avatar{}).Scopes(realm.ForRealm(realmID)).
		Select("COALESCE(SUM(authority), 0)").Scan(&sumAuthority)
	s.db.Model(&Avatar{}).Scopes(realm.ForRealm(realmID)).
		Select("COALESCE(AVG(authority), 0)").Scan(&avgAuthority)
	s.db.Model(&Avatar{}).Scopes(realm.ForRealm(realmID)).
		Select("COALESCE(AVG(cosmic_influence), 0)").Scan(&avgInfluence)

	type rankCount struct {
		Rank  string
		Count int
	}
	var distribution []rankCount
	s.db.Model(&Avatar{}).Scopes(realm.ForRealm(realmID)).
		Select("rank, COUNT(*) as count").
		Group("rank").
		Order("count DESC").
		Scan(&distribution)

	rankDistribution := make(map[string]int)
	for _, d := range distribution {
		rankDistribution[d.Rank] = d.Count
	}

	return map[string]interface{}{
		"total_avatars":     total,
		"total_authority":   sumAuthority,
		"avg_authority":     avgAuthority,
		"avg_influence":     avgInfluence,
		"rank_distribution": rankDistribution,
	}, nil
}

// ExportPayload is the JSON document written by Export.
type ExportPayload struct {
	RealmID    string    `json:"realm_id"`
	ExportedAt time.Time `json:"exported_at"`
	Count      int       `json:"count"`
	Avatars    []Avatar  `json:"avatars"`
}

// Export writes the realm's full constellation to a JSON file under the
// export dir and returns the payload alongside the file path.
func (s *AvatarService) Export(realmID string) (string, *ExportPayload, error) {
	var avatars []Avatar
	if err := s.db.Scopes(realm.ForRealm(realmID)).Order("name ASC").Find(&avatars).Error; err != nil {
		return "", nil, err
	}

	payload := &ExportPayload{
		RealmID:    realmID,
		ExportedAt: time.Now().UTC(),
		Count:      len(avatars),
		Avatars:    avatars,
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create export dir: %w", err)
	}

	name := fmt.Sprintf("constellation-%s-%d.json", realmID, payload.ExportedAt.Unix())
	path := filepath.Join(s.exportDir, name)

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to write export: %w", err)
	}

	return path, payload, nil
}
