package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("name and fingerprint key are required")
	ErrDuplicateKey        = errors.New("fingerprint key already enrolled")
	ErrFingerprintNotFound = errors.New("fingerprint not recognized")
	ErrVoterNotFound       = errors.New("voter not found")
	ErrAlreadyVoted        = errors.New("voter has already voted")
	ErrUnauthorized        = errors.New("invalid admin credential")
)
