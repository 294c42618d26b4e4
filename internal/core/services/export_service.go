package services

import (
	"context"
	"fmt"

	"github.com/biovote/registry/internal/core/ports"
)

type exportService struct {
	repo ports.VoterRepository
}

func NewExportService(repo ports.VoterRepository) ports.ExportService {
	return &exportService{repo: repo}
}

// Rows flattens one registry snapshot into tabular rows. Read-only; external
// writers decide the output format.
func (s *exportService) Rows(ctx context.Context) ([]ports.ExportRow, error) {
	voters, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot registry: %w", err)
	}

	rows := make([]ports.ExportRow, 0, len(voters))
	for _, v := range voters {
		row := ports.ExportRow{
			Number:         v.Number,
			Name:           v.Name,
			Gender:         v.Gender,
			FingerprintKey: v.FingerprintKey,
			HasVoted:       v.HasVoted,
			CreatedAt:      v.CreatedAt,
		}
		if v.CastMetadata != nil {
			row.Booth = v.CastMetadata.Booth
			castAt := v.CastMetadata.CastAt
			row.CastAt = &castAt
		}
		rows = append(rows, row)
	}
	return rows, nil
}
