package memory

import (
	"context"
	"sync"
	"time"

	"launchpad/contexts/finance-core/fee-engine/domain/entities"
)

// Store keeps the singleton config record in process memory.
type Store struct {
	mu     sync.RWMutex
	config *entities.ProgramConfig
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) GetConfig(_ context.Context) (entities.ProgramConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.config == nil {
		return entities.ProgramConfig{}, false, nil
	}
	return *s.config, true, nil
}

func (s *Store) SaveConfig(_ context.Context, config entities.ProgramConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := config
	s.config = &stored
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
