package settingsstore

import (
	"context"
	"sync"

	"github.com/yanqian/stylecast/internal/domain/settings"
)

// MemoryStore keeps the ad configuration in process.
type MemoryStore struct {
	mu  sync.RWMutex
	cfg *settings.AdConfig
}

// NewMemoryStore constructs an empty store; reads fall back to the bundled default.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (settings.AdConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return settings.AdConfig{}, false, nil
	}
	return *s.cfg, true, nil
}

func (s *MemoryStore) Save(_ context.Context, cfg settings.AdConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
	return nil
}

var _ settings.Store = (*MemoryStore)(nil)
