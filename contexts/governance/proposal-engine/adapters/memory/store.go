package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"launchpad/contexts/governance/proposal-engine/domain/entities"
	domainerrors "launchpad/contexts/governance/proposal-engine/domain/errors"

	"github.com/google/uuid"
)

// Store keeps registries, governance records, and proposals in process
// memory. Proposals are copied on the way in and out so callers never alias
// the stored vote-count slice.
type Store struct {
	mu sync.RWMutex

	registries  map[string]entities.TokenRegistry
	governances map[string]entities.Governance
	proposals   map[string]entities.Proposal
}

func NewStore() *Store {
	return &Store{
		registries:  make(map[string]entities.TokenRegistry),
		governances: make(map[string]entities.Governance),
		proposals:   make(map[string]entities.Proposal),
	}
}

func (s *Store) SaveTokenRegistry(_ context.Context, registry entities.TokenRegistry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registries[strings.TrimSpace(registry.Mint)] = registry
	return nil
}

func (s *Store) GetTokenRegistry(_ context.Context, mint string) (entities.TokenRegistry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	registry, ok := s.registries[strings.TrimSpace(mint)]
	return registry, ok, nil
}

func (s *Store) SaveGovernance(_ context.Context, governance entities.Governance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.governances[strings.TrimSpace(governance.Mint)] = governance
	return nil
}

func (s *Store) GetGovernance(_ context.Context, mint string) (entities.Governance, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	governance, ok := s.governances[strings.TrimSpace(mint)]
	return governance, ok, nil
}

func (s *Store) SaveProposal(_ context.Context, proposal entities.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[strings.TrimSpace(proposal.ProposalID)] = copyProposal(proposal)
	return nil
}

func (s *Store) GetProposal(_ context.Context, proposalID string) (entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposal, ok := s.proposals[strings.TrimSpace(proposalID)]
	if !ok {
		return entities.Proposal{}, domainerrors.ErrProposalNotFound
	}
	return copyProposal(proposal), nil
}

func (s *Store) ListProposalsByMint(_ context.Context, mint string) ([]entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mint = strings.TrimSpace(mint)
	items := make([]entities.Proposal, 0)
	for _, proposal := range s.proposals {
		if proposal.Mint == mint {
			items = append(items, copyProposal(proposal))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Sequence < items[j].Sequence
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func copyProposal(proposal entities.Proposal) entities.Proposal {
	copied := proposal
	copied.Choices = append([]string(nil), proposal.Choices...)
	copied.VoteCounts = append([]uint64(nil), proposal.VoteCounts...)
	if proposal.WinningChoice != nil {
		winner := *proposal.WinningChoice
		copied.WinningChoice = &winner
	}
	return copied
}
