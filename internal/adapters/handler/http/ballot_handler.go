package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/biovote/registry/internal/core/domain"
	"github.com/biovote/registry/internal/core/ports"
)

type BallotHandler struct {
	service ports.BallotService
}

func NewBallotHandler(service ports.BallotService) *BallotHandler {
	return &BallotHandler{
		service: service,
	}
}

type castRequest struct {
	FingerprintKey string `json:"fingerprint_key"`
	Booth          string `json:"booth,omitempty"`
}

type castResponse struct {
	Status string `json:"status"`
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// CastBallot is the polling-booth entry point: the sensor posts a matched
// fingerprint key, and the voter is marked as having voted exactly once.
func (h *BallotHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	var req castRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	voter, err := h.service.CastBallot(r.Context(), ports.CastInput{
		FingerprintKey: req.FingerprintKey,
		Booth:          req.Booth,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrFingerprintNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if errors.Is(err, domain.ErrAlreadyVoted) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(castResponse{
		Status: "success",
		Number: voter.Number,
		Name:   voter.Name,
	})
}
