package services

import (
	"context"
	"log/slog"

	"github.com/biovote/registry/internal/core/domain"
	"github.com/biovote/registry/internal/core/ports"
	"github.com/biovote/registry/internal/platform/metrics"
)

type adminService struct {
	repo    ports.VoterRepository
	auth    ports.AuthService
	metrics *metrics.Metrics
}

func NewAdminService(repo ports.VoterRepository, auth ports.AuthService, m *metrics.Metrics) ports.AdminService {
	return &adminService{
		repo:    repo,
		auth:    auth,
		metrics: m,
	}
}

func (s *adminService) DeleteVoter(ctx context.Context, number int, credential string) error {
	if err := s.auth.Verify(credential); err != nil {
		return err
	}
	if number < 1 {
		return domain.ErrVoterNotFound
	}

	if err := s.repo.DeleteByNumber(ctx, number); err != nil {
		return err
	}

	s.metrics.DecrementEnrolled()
	slog.Info("voter deleted", "number", number)
	return nil
}

func (s *adminService) ResetAllVotes(ctx context.Context, credential string) error {
	if err := s.auth.Verify(credential); err != nil {
		return err
	}

	if err := s.repo.ResetAllVotes(ctx); err != nil {
		return err
	}

	slog.Info("all votes reset")
	return nil
}

func (s *adminService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.repo.Stats(ctx)
}
