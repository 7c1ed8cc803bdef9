package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"launchpad/contexts/staking/staking-pool/domain/entities"
)

type stakerKey struct {
	staker string
	mint   string
}

// Store keeps pools and staker accounts in process memory.
type Store struct {
	mu sync.RWMutex

	pools   map[string]entities.StakingPool
	stakers map[stakerKey]entities.StakerAccount
}

func NewStore() *Store {
	return &Store{
		pools:   make(map[string]entities.StakingPool),
		stakers: make(map[stakerKey]entities.StakerAccount),
	}
}

func (s *Store) SavePool(_ context.Context, pool entities.StakingPool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools[strings.TrimSpace(pool.Mint)] = pool
	return nil
}

func (s *Store) GetPool(_ context.Context, mint string) (entities.StakingPool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pool, ok := s.pools[strings.TrimSpace(mint)]
	return pool, ok, nil
}

func (s *Store) SaveStaker(_ context.Context, account entities.StakerAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := stakerKey{staker: strings.TrimSpace(account.Staker), mint: strings.TrimSpace(account.Mint)}
	s.stakers[key] = account
	return nil
}

func (s *Store) GetStaker(_ context.Context, staker, mint string) (entities.StakerAccount, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.stakers[stakerKey{staker: strings.TrimSpace(staker), mint: strings.TrimSpace(mint)}]
	return account, ok, nil
}

func (s *Store) ListStakersByMint(_ context.Context, mint string) ([]entities.StakerAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mint = strings.TrimSpace(mint)
	items := make([]entities.StakerAccount, 0)
	for key, account := range s.stakers {
		if key.mint == mint {
			items = append(items, account)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Staker < items[j].Staker
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
