package realm

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// RealmConfig describes one ceremonial realm hosted by the server. Every
// avatar, hymn, sigil and proclamation belongs to exactly one realm.
type RealmConfig struct {
	RealmID   string          `json:"realm_id"`
	RealmName string          `json:"realm_name"`
	Motto     string          `json:"motto"`
	Houses    []string        `json:"houses"`
	Features  map[string]bool `json:"features"`
}

type RealmsFile struct {
	Realms []RealmConfig `json:"realms"`
}

type Registry struct {
	mu     sync.RWMutex
	realms map[string]*RealmConfig
}

func NewRegistry() *Registry {
	return &Registry{
		realms: make(map[string]*RealmConfig),
	}
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read realms config: %w", err)
	}

	var file RealmsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse realms config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Realms {
		registry.Register(&file.Realms[i])
	}
	return registry, nil
}

func (r *Registry) Register(cfg *RealmConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.realms[cfg.RealmID] = cfg
}

func (r *Registry) Get(realmID string) *RealmConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.realms[realmID]
}

func (r *Registry) Exists(realmID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.realms[realmID]
	return ok
}

func (r *Registry) HasFeature(realmID, feature string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.realms[realmID]
	if !ok {
		return false
	}
	return cfg.Features[feature]
}

// Houses returns the lineage houses configured for a realm. The forge draws
// from these when present, falling back to its built-in tables.
func (r *Registry) HousesFor(realmID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.realms[realmID]
	if !ok {
		return nil
	}
	return cfg.Houses
}

func (r *Registry) All() []*RealmConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*RealmConfig, 0, len(r.realms))
	for _, cfg := range r.realms {
		result = append(result, cfg)
	}
	return result
}

// ToMap returns realm_id -> realm_name for config default seeding.
func (r *Registry) ToMap() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[string]string, len(r.realms))
	for id, cfg := range r.realms {
		result[id] = cfg.RealmName
	}
	return result
}
