package ports

import (
	"context"

	"github.com/biovote/registry/internal/core/domain"
)

// VoterRepository is the single shared Store+Index. Implementations own all
// atomicity: Enroll performs the uniqueness check and the insert as one unit,
// and CastBallot performs the test-and-set as one unit, so that no two
// concurrent calls on the same fingerprint key can both succeed.
type VoterRepository interface {
	Enroll(ctx context.Context, input EnrollInput) (*domain.Voter, error)
	GetByNumber(ctx context.Context, number int) (*domain.Voter, error)
	GetByKey(ctx context.Context, fingerprintKey string) (*domain.Voter, error)
	// List returns a point-in-time snapshot ordered by roll number.
	List(ctx context.Context) ([]*domain.Voter, error)
	// CastBallot atomically flips has_voted for the voter matching the key.
	// Returns ErrFingerprintNotFound for an unknown key and ErrAlreadyVoted
	// when the flag is already set; neither failure mutates anything.
	CastBallot(ctx context.Context, fingerprintKey, booth string) (*domain.Voter, error)
	DeleteByNumber(ctx context.Context, number int) error
	// ResetAllVotes clears has_voted and cast metadata on every record as one
	// atomic unit.
	ResetAllVotes(ctx context.Context) error
	// Stats is computed from one consistent snapshot, never from
	// independently-locked counts.
	Stats(ctx context.Context) (*domain.Stats, error)
}

type EnrollInput struct {
	Name           string
	FingerprintKey string
	Gender         string
}

type RegistryService interface {
	Enroll(ctx context.Context, input EnrollInput) (*domain.Voter, error)
	GetVoter(ctx context.Context, number int) (*domain.Voter, error)
	ListVoters(ctx context.Context) ([]*domain.Voter, error)
}

type CastInput struct {
	FingerprintKey string
	Booth          string
}

type BallotService interface {
	CastBallot(ctx context.Context, input CastInput) (*domain.Voter, error)
}
