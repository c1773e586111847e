// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/movienight/ranker/cliparse"
	"github.com/movienight/ranker/handlers"
	"github.com/movienight/ranker/middleware"
	"github.com/movienight/ranker/notify"
	"github.com/movienight/ranker/session"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, notifier notify.Notifier) *http.ServeMux {
	mux := http.NewServeMux()

	// The session tracker is shared by all voting requests.
	sessions := session.NewTracker()

	packHandler := handlers.NewPackHandler(db, cfg)
	movieHandler := handlers.NewMovieHandler(db, cfg)
	voterHandler := handlers.NewVoterHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg, sessions)
	resultsHandler := handlers.NewResultsHandler(db, cfg, notifier)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Identity
	mux.HandleFunc("POST /voters/register", middleware.WithLogging(voterHandler.Register))
	mux.HandleFunc("GET /voters/me", middleware.WithLogging(voterHandler.GetMe))

	// Pack catalog (admin operations, plus the public active pack)
	mux.HandleFunc("POST /packs", middleware.WithLogging(packHandler.CreatePack))
	mux.HandleFunc("GET /packs", middleware.WithLogging(packHandler.ListPacks))
	mux.HandleFunc("DELETE /packs/{id}", middleware.WithLogging(packHandler.DeletePack))
	mux.HandleFunc("GET /packs/active", middleware.WithLogging(packHandler.GetActivePack))

	// Movies
	mux.HandleFunc("POST /packs/{id}/movies", middleware.WithLogging(movieHandler.AddMovie))
	mux.HandleFunc("GET /packs/{id}/movies", middleware.WithLogging(movieHandler.LookupMovies))
	mux.HandleFunc("DELETE /packs/{id}/movies/{movieID}", middleware.WithLogging(movieHandler.DeleteMovie))

	// Voting
	mux.HandleFunc("POST /selections", middleware.WithLogging(voteHandler.SelectMovie))
	mux.HandleFunc("POST /scores", middleware.WithLogging(voteHandler.SubmitScore))
	mux.HandleFunc("POST /votes/direct", middleware.WithLogging(voteHandler.DirectVote))
	mux.HandleFunc("DELETE /votes/{movieID}", middleware.WithLogging(voteHandler.RetractVote))
	mux.HandleFunc("GET /votes/mine", middleware.WithLogging(voteHandler.GetMyVotes))

	// Results
	mux.HandleFunc("GET /packs/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("POST /results/announce", middleware.WithLogging(resultsHandler.Announce))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("movie night ranker API v1"))
	})

	return mux
}
