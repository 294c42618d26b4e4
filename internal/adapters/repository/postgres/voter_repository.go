package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/biovote/registry/internal/core/domain"
	"github.com/biovote/registry/internal/core/ports"
)

const uniqueViolation = "23505"

type voterRepository struct {
	db *sql.DB
}

func NewVoterRepository(db *sql.DB) ports.VoterRepository {
	return &voterRepository{
		db: db,
	}
}

func (r *voterRepository) Enroll(ctx context.Context, input ports.EnrollInput) (*domain.Voter, error) {
	voter := &domain.Voter{
		ID:             uuid.New(),
		Name:           input.Name,
		FingerprintKey: input.FingerprintKey,
		Gender:         input.Gender,
	}

	query := `
		INSERT INTO voters (id, name, gender, fingerprint_key)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, voter.ID, voter.Name, voter.Gender, voter.FingerprintKey).
		Scan(&voter.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to enroll voter: %w", err)
	}

	number, err := r.numberOf(ctx, voter.ID)
	if err != nil {
		return nil, err
	}
	voter.Number = number
	return voter, nil
}

func (r *voterRepository) GetByNumber(ctx context.Context, number int) (*domain.Voter, error) {
	query := selectNumbered + ` WHERE number = $1`
	voter, err := scanVoter(r.db.QueryRowContext(ctx, query, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVoterNotFound
		}
		return nil, fmt.Errorf("failed to get voter: %w", err)
	}
	return voter, nil
}

func (r *voterRepository) GetByKey(ctx context.Context, fingerprintKey string) (*domain.Voter, error) {
	query := selectNumbered + ` WHERE fingerprint_key = $1`
	voter, err := scanVoter(r.db.QueryRowContext(ctx, query, fingerprintKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFingerprintNotFound
		}
		return nil, fmt.Errorf("failed to get voter by key: %w", err)
	}
	return voter, nil
}

func (r *voterRepository) List(ctx context.Context) ([]*domain.Voter, error) {
	query := selectNumbered + ` ORDER BY number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	defer rows.Close()

	var voters []*domain.Voter
	for rows.Next() {
		voter, err := scanVoter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, voter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}
	return voters, nil
}

// CastBallot is a single conditional UPDATE, so the eligibility check and the
// flag flip are one atomic unit: of any number of concurrent casts on the
// same key, exactly one matches the NOT has_voted predicate.
func (r *voterRepository) CastBallot(ctx context.Context, fingerprintKey, booth string) (*domain.Voter, error) {
	query := `
		UPDATE voters
		SET has_voted = TRUE, booth = NULLIF($2, ''), cast_at = now()
		WHERE fingerprint_key = $1 AND NOT has_voted
		RETURNING id, name, gender, fingerprint_key, has_voted, booth, cast_at, created_at
	`
	var voter domain.Voter
	var boothCol sql.NullString
	var castAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, fingerprintKey, booth).Scan(
		&voter.ID, &voter.Name, &voter.Gender, &voter.FingerprintKey,
		&voter.HasVoted, &boothCol, &castAt, &voter.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.castFailure(ctx, fingerprintKey)
		}
		return nil, fmt.Errorf("failed to cast ballot: %w", err)
	}

	if castAt.Valid {
		voter.CastMetadata = &domain.CastMetadata{Booth: boothCol.String, CastAt: castAt.Time}
	}

	number, err := r.numberOf(ctx, voter.ID)
	if err != nil {
		return nil, err
	}
	voter.Number = number
	return &voter, nil
}

// castFailure distinguishes an unknown key from an exhausted one after the
// conditional update matched nothing.
func (r *voterRepository) castFailure(ctx context.Context, fingerprintKey string) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM voters WHERE fingerprint_key = $1)`
	if err := r.db.QueryRowContext(ctx, query, fingerprintKey).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check fingerprint key: %w", err)
	}
	if exists {
		return domain.ErrAlreadyVoted
	}
	return domain.ErrFingerprintNotFound
}

func (r *voterRepository) DeleteByNumber(ctx context.Context, number int) error {
	query := `DELETE FROM voters WHERE id = (SELECT id FROM voters_numbered WHERE number = $1)`
	result, err := r.db.ExecContext(ctx, query, number)
	if err != nil {
		return fmt.Errorf("failed to delete voter: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrVoterNotFound
	}
	return nil
}

func (r *voterRepository) ResetAllVotes(ctx context.Context) error {
	query := `UPDATE voters SET has_voted = FALSE, booth = NULL, cast_at = NULL`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to reset votes: %w", err)
	}
	return nil
}

// Stats aggregates in one statement so the counts come from a single
// consistent snapshot even while casts are in flight.
func (r *voterRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	query := `
		SELECT gender, count(*), count(*) FILTER (WHERE has_voted)
		FROM voters
		GROUP BY gender
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	defer rows.Close()

	stats := &domain.Stats{ByGender: make(map[string]domain.GenderStats)}
	for rows.Next() {
		var gender string
		var total, voted int
		if err := rows.Scan(&gender, &total, &voted); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats.Total += total
		stats.Voted += voted
		if gender != "" {
			stats.ByGender[gender] = domain.GenderStats{
				Total:    total,
				Voted:    voted,
				NotVoted: total - voted,
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats: %w", err)
	}

	stats.NotVoted = stats.Total - stats.Voted
	return stats, nil
}

func (r *voterRepository) numberOf(ctx context.Context, id uuid.UUID) (int, error) {
	var number int
	query := `SELECT number FROM voters_numbered WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrVoterNotFound
		}
		return 0, fmt.Errorf("failed to resolve roll number: %w", err)
	}
	return number, nil
}

const selectNumbered = `
	SELECT id, name, gender, fingerprint_key, has_voted, booth, cast_at, created_at, number
	FROM voters_numbered`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVoter(row rowScanner) (*domain.Voter, error) {
	var voter domain.Voter
	var booth sql.NullString
	var castAt sql.NullTime
	err := row.Scan(
		&voter.ID, &voter.Name, &voter.Gender, &voter.FingerprintKey,
		&voter.HasVoted, &booth, &castAt, &voter.CreatedAt, &voter.Number,
	)
	if err != nil {
		return nil, err
	}
	if castAt.Valid {
		voter.CastMetadata = &domain.CastMetadata{Booth: booth.String, CastAt: castAt.Time}
	}
	return &voter, nil
}
