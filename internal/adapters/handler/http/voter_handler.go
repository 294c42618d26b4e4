package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/biovote/registry/internal/adapters/export"
	"github.com/biovote/registry/internal/core/domain"
	"github.com/biovote/registry/internal/core/ports"
)

type VoterHandler struct {
	service       ports.RegistryService
	exportService ports.ExportService
}

func NewVoterHandler(service ports.RegistryService, exportService ports.ExportService) *VoterHandler {
	return &VoterHandler{
		service:       service,
		exportService: exportService,
	}
}

type enrollRequest struct {
	Name           string `json:"name"`
	FingerprintKey string `json:"fingerprint_key"`
	Gender         string `json:"gender,omitempty"`
}

func (h *VoterHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	voter, err := h.service.Enroll(r.Context(), ports.EnrollInput{
		Name:           req.Name,
		FingerprintKey: req.FingerprintKey,
		Gender:         req.Gender,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, domain.ErrDuplicateKey) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(voter)
}

func (h *VoterHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		http.Error(w, "invalid voter number", http.StatusBadRequest)
		return
	}

	voter, err := h.service.GetVoter(r.Context(), number)
	if err != nil {
		if errors.Is(err, domain.ErrVoterNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(voter)
}

func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	voters, err := h.service.ListVoters(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if voters == nil {
		voters = []*domain.Voter{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(voters)
}

func (h *VoterHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := h.exportService.Rows(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("voters-%s.csv", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteCSV(w, rows); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
