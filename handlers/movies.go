// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/movienight/ranker/cliparse"
	"github.com/movienight/ranker/middleware"
	"github.com/movienight/ranker/models"
)

type MovieHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewMovieHandler(db *sql.DB, cfg cliparse.Config) *MovieHandler {
	return &MovieHandler{db: db, cfg: cfg}
}

// AddMovie handles POST /packs/{id}/movies. Admin only.
func (h *MovieHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(h.db, w, r) {
		return
	}

	packID := r.PathValue("id")
	if packID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pack id is required")
		return
	}

	var req models.AddMovieRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
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

	// Titles are matched case-insensitively on lookup but duplicates
	// are not rejected; lookups resolve to the lowest id.
	if dup, found, err := findMovieByTitle(h.db, packID, req.Title); err == nil && found {
		slog.Warn("duplicate title in pack", "pack_id", packID, "title", req.Title, "existing_movie_id", dup.ID)
	}

	movieID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO movie (id, pack_id, title)
		VALUES ($1, $2, $3)
	`, movieID, packID, req.Title)

	if err != nil {
		slog.Error("failed to insert movie", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add movie")
		return
	}

	slog.Info("movie added", "movie_id", movieID, "pack_id", packID, "title", req.Title)

	middleware.JSONResponse(w, http.StatusCreated, models.AddMovieResponse{
		MovieID: movieID,
	})
}

// LookupMovies handles GET /packs/{id}/movies. With ?title= it
// resolves a single movie case-insensitively (lowest id wins);
// without, it lists the pack's movies.
func (h *MovieHandler) LookupMovies(w http.ResponseWriter, r *http.Request) {
	packID := r.PathValue("id")
	if packID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pack id is required")
		return
	}

	if title := r.URL.Query().Get("title"); title != "" {
		movie, found, err := findMovieByTitle(h.db, packID, title)
		if err != nil {
			slog.Error("failed to look up movie", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if !found {
			middleware.ErrorResponse(w, http.StatusNotFound, "Movie not found in this pack")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, movie)
		return
	}

	rows, err := h.db.Query(`
		SELECT id, pack_id, title FROM movie
		WHERE pack_id = $1
		ORDER BY id
	`, packID)
	if err != nil {
		slog.Error("failed to query movies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.PackID, &m.Title); err != nil {
			slog.Error("failed to scan movie", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		movies = append(movies, m)
	}

	middleware.JSONResponse(w, http.StatusOK, movies)
}

// DeleteMovie handles DELETE /packs/{id}/movies/{movieID}. Admin
// only. Votes for the movie go with it in the same statement via the
// foreign-key cascade.
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(h.db, w, r) {
		return
	}

	packID := r.PathValue("id")
	movieID := r.PathValue("movieID")
	if packID == "" || movieID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pack id and movie id are required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM movie WHERE id = $1 AND pack_id = $2`, movieID, packID)
	if err != nil {
		slog.Error("failed to delete movie", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete movie")
		return
	}

	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read delete result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete movie")
		return
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Movie not found in this pack")
		return
	}

	slog.Info("movie deleted", "movie_id", movieID, "pack_id", packID)
	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"deleted": true})
}
