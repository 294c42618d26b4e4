package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biovote/registry/internal/adapters/repository/memory"
	"github.com/biovote/registry/internal/core/domain"
	"github.com/biovote/registry/internal/core/ports"
)

func TestCastBallotValidation(t *testing.T) {
	svc := NewBallotService(memory.NewVoterRepository(), nil)

	_, err := svc.CastBallot(context.Background(), ports.CastInput{FingerprintKey: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// The example scenario: enroll Alice and Bob, Alice casts once, a repeat is
// rejected, an unknown key is rejected, and stats reflect exactly one vote.
func TestBallotAuthorizationScenario(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewVoterRepository()
	registry := NewRegistryService(repo, nil)
	ballots := NewBallotService(repo, nil)
	auth := NewAuthService("admin", "admin123", []byte("test-secret"))
	admin := NewAdminService(repo, auth, nil)

	_, err := registry.Enroll(ctx, ports.EnrollInput{Name: "Alice", FingerprintKey: "FPA"})
	require.NoError(t, err)
	_, err = registry.Enroll(ctx, ports.EnrollInput{Name: "Bob", FingerprintKey: "FPB"})
	require.NoError(t, err)

	voter, err := ballots.CastBallot(ctx, ports.CastInput{FingerprintKey: "FPA"})
	require.NoError(t, err)
	assert.Equal(t, 1, voter.Number)
	assert.Equal(t, "Alice", voter.Name)

	_, err = ballots.CastBallot(ctx, ports.CastInput{FingerprintKey: "FPA"})
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)

	_, err = ballots.CastBallot(ctx, ports.CastInput{FingerprintKey: "FPX"})
	assert.ErrorIs(t, err, domain.ErrFingerprintNotFound)

	stats, err := admin.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.Stats{Total: 2, Voted: 1, NotVoted: 1, ByGender: map[string]domain.GenderStats{}}, stats)

	credential, err := auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, admin.ResetAllVotes(ctx, credential))

	stats, err = admin.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 0, stats.Voted)
	assert.Equal(t, 2, stats.NotVoted)
}
