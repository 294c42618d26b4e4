package domain

import (
	"time"

	"github.com/google/uuid"
)

// Voter is one enrolled person. ID is the stable internal identity and is
// never reused or renumbered; Number is the dense roll number derived from
// creation order at read time, so it stays 1..N after deletions without any
// renumbering write.
type Voter struct {
	ID             uuid.UUID     `json:"id"`
	Number         int           `json:"number"`
	Name           string        `json:"name"`
	FingerprintKey string        `json:"fingerprint_key"`
	Gender         string        `json:"gender,omitempty"`
	HasVoted       bool          `json:"has_voted"`
	CastMetadata   *CastMetadata `json:"cast_metadata,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// CastMetadata records the context of a successful cast. It is attached by
// the one cast that flips HasVoted and cleared by a bulk reset.
type CastMetadata struct {
	Booth  string    `json:"booth,omitempty"`
	CastAt time.Time `json:"cast_at"`
}

type Stats struct {
	Total    int                    `json:"total"`
	Voted    int                    `json:"voted"`
	NotVoted int                    `json:"not_voted"`
	ByGender map[string]GenderStats `json:"by_gender,omitempty"`
}

type GenderStats struct {
	Total    int `json:"total"`
	Voted    int `json:"voted"`
	NotVoted int `json:"not_voted"`
}
