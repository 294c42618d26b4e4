package ports

import (
	"context"
	"time"
)

// ExportRow is one tabular line of the registry snapshot, consumed by the
// external CSV/spreadsheet writers.
type ExportRow struct {
	Number         int
	Name           string
	Gender         string
	FingerprintKey string
	HasVoted       bool
	CreatedAt      time.Time
	Booth          string
	CastAt         *time.Time
}

type ExportService interface {
	Rows(ctx context.Context) ([]ExportRow, error)
}
