// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/movienight/ranker/auth"
	"github.com/movienight/ranker/cliparse"
	"github.com/movienight/ranker/ledger"
	"github.com/movienight/ranker/middleware"
	"github.com/movienight/ranker/models"
	"github.com/movienight/ranker/session"
	"github.com/movienight/ranker/voting"
)

type VoteHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	sessions *session.Tracker
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config, sessions *session.Tracker) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg, sessions: sessions}
}

// SelectMovie handles POST /selections: the voter tapped a movie in
// the menu and a score prompt follows. Selecting again before scoring
// overwrites the slot, last selection wins.
func (h *VoteHandler) SelectMovie(w http.ResponseWriter, r *http.Request) {
	externalID := r.Header.Get("X-Voter-ID")
	if externalID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	var req models.SelectMovieRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MovieID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "movie_id is required")
		return
	}

	var packID, title string
	err := h.db.QueryRow(`
		SELECT pack_id, title FROM movie WHERE id = $1
	`, req.MovieID).Scan(&packID, &title)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Movie not found")
		return
	}
	if err != nil {
		slog.Error("failed to query movie", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.sessions.Select(externalID, session.Selection{
		MovieID:    req.MovieID,
		MovieTitle: title,
		PackID:     packID,
	})

	pol := scorePolicy(h.cfg)
	msg := fmt.Sprintf("Enter a score for %q between %g and %g", title, pol.Min, pol.Max)
	if pol.Min == 0 {
		msg += " (0 retracts your vote)"
	}

	middleware.JSONResponse(w, http.StatusOK, models.SelectMovieResponse{
		MovieID: req.MovieID,
		Title:   title,
		Message: msg,
	})
}

// SubmitScore handles POST /scores: a free-text number from the
// voter. With no pending selection the message is unrelated chatter
// and is ignored, not an error - that is how vote replies are told
// apart from conversation.
func (h *VoteHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	externalID := r.Header.Get("X-Voter-ID")
	if externalID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	sel, ok := h.sessions.Get(externalID)
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
			Outcome: "ignored",
			Message: "no movie selected",
		})
		return
	}

	var req models.SubmitScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		// Recoverable: keep the pending selection so the voter can
		// retype the number.
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter, err := auth.GetVoter(h.db, externalID)
	if errors.Is(err, auth.ErrNotRegistered) {
		h.sessions.Clear(externalID)
		middleware.ErrorResponse(w, http.StatusNotFound, "You are not registered; call /voters/register first")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// The movie may have been deleted since the selection was made.
	var exists bool
	err = h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM movie WHERE id = $1)`, sel.MovieID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query movie", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		h.sessions.Clear(externalID)
		middleware.ErrorResponse(w, http.StatusNotFound, "The selected movie no longer exists")
		return
	}

	if done := h.castVote(w, voter, sel.MovieID, sel.MovieTitle, sel.PackID, req.Score); done {
		h.sessions.Clear(externalID)
	}
}

// DirectVote handles POST /votes/direct: score a movie in the active
// pack by title, no prior selection needed.
func (h *VoteHandler) DirectVote(w http.ResponseWriter, r *http.Request) {
	externalID := r.Header.Get("X-Voter-ID")
	if externalID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	var req models.DirectVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	voter, err := auth.GetVoter(h.db, externalID)
	if errors.Is(err, auth.ErrNotRegistered) {
		middleware.ErrorResponse(w, http.StatusNotFound, "You are not registered; call /voters/register first")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
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

	movie, found, err := findMovieByTitle(h.db, pack.ID, req.Title)
	if err != nil {
		slog.Error("failed to look up movie", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Movie not found in the active pack")
		return
	}

	h.castVote(w, voter, movie.ID, movie.Title, pack.ID, req.Score)
}

// RetractVote handles DELETE /votes/{movieID}: explicit retraction.
// Retracting a vote that was never cast reports not_found without
// failing.
func (h *VoteHandler) RetractVote(w http.ResponseWriter, r *http.Request) {
	externalID := r.Header.Get("X-Voter-ID")
	if externalID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	movieID := r.PathValue("movieID")
	if movieID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "movie id is required")
		return
	}

	voter, err := auth.GetVoter(h.db, externalID)
	if errors.Is(err, auth.ErrNotRegistered) {
		middleware.ErrorResponse(w, http.StatusNotFound, "You are not registered; call /voters/register first")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var packID, title string
	err = h.db.QueryRow(`SELECT pack_id, title FROM movie WHERE id = $1`, movieID).Scan(&packID, &title)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Movie not found")
		return
	}
	if err != nil {
		slog.Error("failed to query movie", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	outcome, err := ledger.Retract(h.db, voter.ID, movieID, packID)
	if err != nil {
		slog.Error("failed to retract vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to retract vote")
		return
	}

	slog.Info("vote retraction", "voter", voter.ExternalID, "movie_id", movieID, "outcome", outcome)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Outcome: string(outcome),
		MovieID: movieID,
		Title:   title,
	})
}

// GetMyVotes handles GET /votes/mine?pack_id= (defaults to the active
// pack).
func (h *VoteHandler) GetMyVotes(w http.ResponseWriter, r *http.Request) {
	externalID := r.Header.Get("X-Voter-ID")
	if externalID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	voter, err := auth.GetVoter(h.db, externalID)
	if errors.Is(err, auth.ErrNotRegistered) {
		middleware.ErrorResponse(w, http.StatusNotFound, "You are not registered; call /voters/register first")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	packID := r.URL.Query().Get("pack_id")
	if packID == "" {
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
		packID = pack.ID
	}

	votes, err := ledger.ListForVoter(h.db, voter.ID, packID)
	if err != nil {
		slog.Error("failed to list votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	items := make([]models.VoteItem, 0, len(votes))
	for _, v := range votes {
		items = append(items, models.VoteItem{MovieID: v.MovieID, Title: v.Title, Score: v.Score})
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyVotesResponse{
		PackID: packID,
		Votes:  items,
	})
}

// castVote validates and stores (or retracts) one score. It writes
// the HTTP response and reports whether the outcome was terminal, so
// SubmitScore knows when to clear the pending selection; validation
// rejections are recoverable and return false.
func (h *VoteHandler) castVote(w http.ResponseWriter, voter models.Voter, movieID, title, packID string, score float64) bool {
	pol := scorePolicy(h.cfg)

	if pol.IsRetraction(score) {
		outcome, err := ledger.Retract(h.db, voter.ID, movieID, packID)
		if err != nil {
			slog.Error("failed to retract vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to retract vote")
			return false
		}

		msg := fmt.Sprintf("Your vote for %q was retracted", title)
		if outcome == ledger.NotFound {
			msg = fmt.Sprintf("You had no vote for %q to retract", title)
		}
		slog.Info("vote retraction", "voter", voter.ExternalID, "movie_id", movieID, "outcome", outcome)

		middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
			Outcome: string(outcome),
			MovieID: movieID,
			Title:   title,
			Message: msg,
		})
		return true
	}

	existing, err := ledger.ListForVoter(h.db, voter.ID, packID)
	if err != nil {
		slog.Error("failed to list votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}

	snapshot := make([]voting.ExistingVote, 0, len(existing))
	for _, v := range existing {
		snapshot = append(snapshot, voting.ExistingVote{MovieID: v.MovieID, Score: v.Score})
	}

	if err := pol.Validate(score, movieID, snapshot); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, voting.ErrDuplicateScore) {
			status = http.StatusConflict
		}
		middleware.ErrorResponse(w, status, err.Error())
		return false
	}

	outcome, err := ledger.Upsert(h.db, voter.ID, movieID, packID, score)
	if err != nil {
		slog.Error("failed to upsert vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save vote")
		return false
	}

	msg := fmt.Sprintf("Score %g for %q saved", score, title)
	if outcome == ledger.Updated {
		msg = fmt.Sprintf("Score for %q updated to %g", title, score)
	}
	slog.Info("vote recorded", "voter", voter.ExternalID, "movie_id", movieID, "score", score, "outcome", outcome)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Outcome: string(outcome),
		MovieID: movieID,
		Title:   title,
		Score:   score,
		Message: msg,
	})
	return true
}
