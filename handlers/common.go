// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/movienight/ranker/auth"
	"github.com/movienight/ranker/cliparse"
	"github.com/movienight/ranker/middleware"
	"github.com/movienight/ranker/models"
	"github.com/movienight/ranker/voting"
)

// ErrNoPacks means no pack has been created yet, so there is no
// active pack to vote in.
var ErrNoPacks = errors.New("no packs created yet")

// requireAdmin gates privileged endpoints on the caller's role. It
// writes the error response itself and reports whether the handler
// may continue.
func requireAdmin(db *sql.DB, w http.ResponseWriter, r *http.Request) bool {
	externalID := r.Header.Get("X-Voter-ID")
	if externalID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return false
	}

	ok, err := auth.IsAdmin(db, externalID)
	if err != nil {
		slog.Error("failed to check admin role", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}

// activePack returns the pack open for new votes: the most recently
// created one. This is a policy, not a query artifact - creating a
// pack switches all voting to it.
func activePack(db *sql.DB) (models.Pack, error) {
	var p models.Pack
	err := db.QueryRow(`
		SELECT id, name, created_at FROM pack
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`).Scan(&p.ID, &p.Name, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Pack{}, ErrNoPacks
	}
	if err != nil {
		return models.Pack{}, err
	}
	return p, nil
}

// findMovieByTitle resolves a title within a pack, case-insensitively.
// Titles are not guaranteed unique; first match is the lowest movie id
// so the answer does not depend on store row order.
func findMovieByTitle(db *sql.DB, packID, title string) (models.Movie, bool, error) {
	var m models.Movie
	err := db.QueryRow(`
		SELECT id, pack_id, title FROM movie
		WHERE pack_id = $1 AND LOWER(title) = LOWER($2)
		ORDER BY id
		LIMIT 1
	`, packID, title).Scan(&m.ID, &m.PackID, &m.Title)

	if err == sql.ErrNoRows {
		return models.Movie{}, false, nil
	}
	if err != nil {
		return models.Movie{}, false, err
	}
	return m, true, nil
}

// scorePolicy builds the accepted score range from config.
func scorePolicy(cfg cliparse.Config) voting.Policy {
	return voting.Policy{Min: float64(cfg.ScoreMin), Max: models.MaxScore}
}
