package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/biovote/registry/internal/core/ports"
)

var header = []string{"Number", "Name", "Gender", "Fingerprint Key", "Has Voted", "Created At", "Booth", "Cast At"}

// WriteCSV renders a registry snapshot as CSV. Read-only over the rows; the
// snapshot itself was taken by the export service.
func WriteCSV(w io.Writer, rows []ports.ExportRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		hasVoted := "No"
		if row.HasVoted {
			hasVoted = "Yes"
		}
		castAt := ""
		if row.CastAt != nil {
			castAt = row.CastAt.Format(time.RFC3339)
		}
		record := []string{
			strconv.Itoa(row.Number),
			row.Name,
			row.Gender,
			row.FingerprintKey,
			hasVoted,
			row.CreatedAt.Format(time.RFC3339),
			row.Booth,
			castAt,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
