// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/movienight/ranker/cliparse"
	"github.com/movienight/ranker/ledger"
	"github.com/movienight/ranker/middleware"
	"github.com/movienight/ranker/models"
	"github.com/movienight/ranker/notify"
	"github.com/movienight/ranker/voting"
)

type ResultsHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	notifier notify.Notifier
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config, notifier notify.Notifier) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, notifier: notifier}
}

// GetResults handles GET /packs/{id}/results. Admin only. Returns the
// aggregation output without delivering anything; an empty pack is an
// informational no-votes notice, not an error.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(h.db, w, r) {
		return
	}

	packID := r.PathValue("id")
	if packID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pack id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM pack WHERE id = $1)`, packID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query pack", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pack not found")
		return
	}

	result, err := h.aggregatePack(packID)
	if errors.Is(err, voting.ErrNoVotes) {
		middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
			PackID:  packID,
			NoVotes: true,
			Message: "No votes to aggregate",
		})
		return
	}
	if err != nil {
		slog.Error("failed to aggregate pack", "error", err, "pack_id", packID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		PackID:        packID,
		Rankings:      result.Rankings,
		Contributions: result.Contributions,
	})
}

// Announce handles POST /results/announce. Admin only. Aggregates the
// active pack, renders the two reports, and fans them out to every
// voter who voted in it. A failed delivery to one recipient never
// blocks the rest.
func (h *ResultsHandler) Announce(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(h.db, w, r) {
		return
	}

	pack, err := activePack(h.db)
	if errors.Is(err, ErrNoPacks) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No packs created yet")
		return
	}
	if err != nil {
		slog.Error("failed to query active pack", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	result, err := h.aggregatePack(pack.ID)
	if errors.Is(err, voting.ErrNoVotes) {
		middleware.JSONResponse(w, http.StatusOK, models.AnnounceResponse{
			PackID:  pack.ID,
			NoVotes: true,
			Message: "No votes to aggregate",
		})
		return
	}
	if err != nil {
		slog.Error("failed to aggregate pack", "error", err, "pack_id", pack.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	rankingMsg := voting.FormatRanking(result.Rankings)
	contribMsg := voting.FormatContributions(result.Contributions)

	delivered := notify.Fanout(r.Context(), h.notifier, result.Participants, rankingMsg, contribMsg)

	slog.Info("results announced",
		"pack_id", pack.ID,
		"recipients", len(result.Participants),
		"delivered", delivered,
	)

	middleware.JSONResponse(w, http.StatusOK, models.AnnounceResponse{
		PackID:     pack.ID,
		Recipients: len(result.Participants),
		Delivered:  delivered,
	})
}

// aggregatePack reads the pack's full ledger and runs the weighting
// engine over it.
func (h *ResultsHandler) aggregatePack(packID string) (*voting.Result, error) {
	entries, err := ledger.ListForPack(h.db, packID)
	if err != nil {
		return nil, err
	}

	ballots := make([]voting.Ballot, 0, len(entries))
	for _, e := range entries {
		ballots = append(ballots, voting.Ballot{
			VoterExternalID: e.VoterExternalID,
			VoterName:       e.Username,
			MovieID:         e.MovieID,
			MovieTitle:      e.MovieTitle,
			Score:           e.Score,
		})
	}

	return voting.Aggregate(ballots)
}
