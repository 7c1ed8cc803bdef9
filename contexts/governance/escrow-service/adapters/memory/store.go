package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"launchpad/contexts/governance/escrow-service/domain/entities"

	"github.com/google/uuid"
)

type escrowKey struct {
	proposalID string
	choiceID   uint8
	voter      string
}

// Store keeps escrows in process memory.
type Store struct {
	mu sync.RWMutex

	escrows map[escrowKey]entities.ChoiceEscrow
}

func NewStore() *Store {
	return &Store{
		escrows: make(map[escrowKey]entities.ChoiceEscrow),
	}
}

func (s *Store) SaveEscrow(_ context.Context, escrow entities.ChoiceEscrow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := escrowKey{
		proposalID: strings.TrimSpace(escrow.ProposalID),
		choiceID:   escrow.ChoiceID,
		voter:      strings.TrimSpace(escrow.Voter),
	}
	s.escrows[key] = escrow
	return nil
}

func (s *Store) GetEscrow(_ context.Context, proposalID string, choiceID uint8, voter string) (entities.ChoiceEscrow, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key := escrowKey{
		proposalID: strings.TrimSpace(proposalID),
		choiceID:   choiceID,
		voter:      strings.TrimSpace(voter),
	}
	escrow, ok := s.escrows[key]
	return escrow, ok, nil
}

func (s *Store) ListEscrowsByProposal(_ context.Context, proposalID string) ([]entities.ChoiceEscrow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposalID = strings.TrimSpace(proposalID)
	items := make([]entities.ChoiceEscrow, 0)
	for key, escrow := range s.escrows {
		if key.proposalID == proposalID {
			items = append(items, escrow)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ChoiceID != items[j].ChoiceID {
			return items[i].ChoiceID < items[j].ChoiceID
		}
		return items[i].Voter < items[j].Voter
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
