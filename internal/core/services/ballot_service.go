package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/biovote/registry/internal/core/domain"
	"github.com/biovote/registry/internal/core/ports"
	"github.com/biovote/registry/internal/platform/metrics"
)

type ballotService struct {
	repo    ports.VoterRepository
	metrics *metrics.Metrics
}

func NewBallotService(repo ports.VoterRepository, m *metrics.Metrics) ports.BallotService {
	return &ballotService{
		repo:    repo,
		metrics: m,
	}
}

// CastBallot authorizes exactly one ballot per fingerprint key. The
// repository performs the lookup and the test-and-set as one atomic unit, so
// concurrent casts on the same key yield one success and the rest
// ErrAlreadyVoted.
func (s *ballotService) CastBallot(ctx context.Context, input ports.CastInput) (*domain.Voter, error) {
	key := strings.TrimSpace(input.FingerprintKey)
	if key == "" {
		return nil, domain.ErrInvalidInput
	}

	voter, err := s.repo.CastBallot(ctx, key, strings.TrimSpace(input.Booth))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyVoted):
			s.metrics.IncrementCast("already_voted")
		case errors.Is(err, domain.ErrFingerprintNotFound):
			s.metrics.IncrementCast("not_found")
		}
		return nil, err
	}

	s.metrics.IncrementCast("success")
	slog.Info("ballot cast", "number", voter.Number, "booth", input.Booth)
	return voter, nil
}
