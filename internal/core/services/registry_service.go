package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/biovote/registry/internal/core/domain"
	"github.com/biovote/registry/internal/core/ports"
	"github.com/biovote/registry/internal/platform/metrics"
)

type registryService struct {
	repo    ports.VoterRepository
	metrics *metrics.Metrics
}

func NewRegistryService(repo ports.VoterRepository, m *metrics.Metrics) ports.RegistryService {
	return &registryService{
		repo:    repo,
		metrics: m,
	}
}

func (s *registryService) Enroll(ctx context.Context, input ports.EnrollInput) (*domain.Voter, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.FingerprintKey = strings.TrimSpace(input.FingerprintKey)
	input.Gender = strings.TrimSpace(input.Gender)
	if input.Name == "" || input.FingerprintKey == "" {
		return nil, domain.ErrInvalidInput
	}

	voter, err := s.repo.Enroll(ctx, input)
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementEnrolled()
	slog.Info("voter enrolled", "number", voter.Number, "name", voter.Name)
	return voter, nil
}

func (s *registryService) GetVoter(ctx context.Context, number int) (*domain.Voter, error) {
	if number < 1 {
		return nil, domain.ErrVoterNotFound
	}
	return s.repo.GetByNumber(ctx, number)
}

func (s *registryService) ListVoters(ctx context.Context) ([]*domain.Voter, error) {
	return s.repo.List(ctx)
}
