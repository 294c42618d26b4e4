package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/biovote/registry/internal/core/ports"
)

func NewHandler(
	voterHandler *VoterHandler,
	ballotHandler *BallotHandler,
	adminHandler *AdminHandler,
	authHandler *AuthHandler,
	authService ports.AuthService,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/auth/login", authHandler.Login)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("biovote registry"))
		})

		// Polling booths only need this one route.
		r.Post("/ballots", ballotHandler.CastBallot)

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly(authService))

			r.Route("/voters", func(r chi.Router) {
				r.Post("/", voterHandler.Enroll)
				r.Get("/", voterHandler.ListVoters)
				r.Get("/export", voterHandler.ExportCSV)
				r.Get("/{number}", voterHandler.GetVoter)
				r.Delete("/{number}", adminHandler.DeleteVoter)
			})
			r.Post("/votes/reset", adminHandler.ResetAllVotes)
			r.Get("/stats", adminHandler.Stats)
		})
	})

	return r
}
