package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/biovote/registry/internal/core/domain"
	"github.com/biovote/registry/internal/core/ports"
)

// record pairs a voter with its own mutex so casts on distinct voters never
// serialize against each other.
type record struct {
	mu    sync.Mutex
	voter domain.Voter
}

// VoterRepository is the process-resident Store+Index. Structural operations
// (enroll, delete, reset, snapshots) take the store lock exclusively; a cast
// takes the store lock shared plus the target record's own mutex. Roll
// numbers are positions in the creation-order slice, so they are dense 1..N
// at every instant and a deletion renumbers nothing.
type VoterRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*record
	byKey map[string]*record
	order []uuid.UUID
}

func NewVoterRepository() *VoterRepository {
	return &VoterRepository{
		byID:  make(map[uuid.UUID]*record),
		byKey: make(map[string]*record),
	}
}

func (r *VoterRepository) Enroll(_ context.Context, input ports.EnrollInput) (*domain.Voter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[input.FingerprintKey]; exists {
		return nil, domain.ErrDuplicateKey
	}

	rec := &record{voter: domain.Voter{
		ID:             uuid.New(),
		Name:           input.Name,
		FingerprintKey: input.FingerprintKey,
		Gender:         input.Gender,
		CreatedAt:      time.Now().UTC(),
	}}
	r.byID[rec.voter.ID] = rec
	r.byKey[rec.voter.FingerprintKey] = rec
	r.order = append(r.order, rec.voter.ID)

	return copyVoter(&rec.voter, len(r.order)), nil
}

func (r *VoterRepository) GetByNumber(_ context.Context, number int) (*domain.Voter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if number < 1 || number > len(r.order) {
		return nil, domain.ErrVoterNotFound
	}
	rec := r.byID[r.order[number-1]]

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return copyVoter(&rec.voter, number), nil
}

func (r *VoterRepository) GetByKey(_ context.Context, fingerprintKey string) (*domain.Voter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byKey[fingerprintKey]
	if !ok {
		return nil, domain.ErrFingerprintNotFound
	}
	number := r.numberOf(rec.voter.ID)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return copyVoter(&rec.voter, number), nil
}

func (r *VoterRepository) List(_ context.Context) ([]*domain.Voter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	voters := make([]*domain.Voter, 0, len(r.order))
	for i, id := range r.order {
		voters = append(voters, copyVoter(&r.byID[id].voter, i+1))
	}
	return voters, nil
}

func (r *VoterRepository) CastBallot(_ context.Context, fingerprintKey, booth string) (*domain.Voter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byKey[fingerprintKey]
	if !ok {
		return nil, domain.ErrFingerprintNotFound
	}
	number := r.numberOf(rec.voter.ID)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.voter.HasVoted {
		return nil, domain.ErrAlreadyVoted
	}
	rec.voter.HasVoted = true
	rec.voter.CastMetadata = &domain.CastMetadata{
		Booth:  booth,
		CastAt: time.Now().UTC(),
	}
	return copyVoter(&rec.voter, number), nil
}

func (r *VoterRepository) DeleteByNumber(_ context.Context, number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if number < 1 || number > len(r.order) {
		return domain.ErrVoterNotFound
	}

	id := r.order[number-1]
	rec := r.byID[id]
	delete(r.byID, id)
	delete(r.byKey, rec.voter.FingerprintKey)
	r.order = append(r.order[:number-1], r.order[number:]...)
	return nil
}

func (r *VoterRepository) ResetAllVotes(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.byID {
		rec.voter.HasVoted = false
		rec.voter.CastMetadata = nil
	}
	return nil
}

func (r *VoterRepository) Stats(_ context.Context) (*domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.Stats{ByGender: make(map[string]domain.GenderStats)}
	for _, id := range r.order {
		v := &r.byID[id].voter
		stats.Total++
		if v.HasVoted {
			stats.Voted++
		}
		if v.Gender != "" {
			g := stats.ByGender[v.Gender]
			g.Total++
			if v.HasVoted {
				g.Voted++
			}
			g.NotVoted = g.Total - g.Voted
			stats.ByGender[v.Gender] = g
		}
	}
	stats.NotVoted = stats.Total - stats.Voted
	return stats, nil
}

// numberOf is called with at least the read lock held.
func (r *VoterRepository) numberOf(id uuid.UUID) int {
	for i, other := range r.order {
		if other == id {
			return i + 1
		}
	}
	return 0
}

func copyVoter(v *domain.Voter, number int) *domain.Voter {
	out := *v
	out.Number = number
	if v.CastMetadata != nil {
		meta := *v.CastMetadata
		out.CastMetadata = &meta
	}
	return &out
}
