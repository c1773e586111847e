// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/movienight/ranker/cliparse"
	"github.com/movienight/ranker/middleware"
	"github.com/movienight/ranker/models"
)

type PackHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPackHandler(db *sql.DB, cfg cliparse.Config) *PackHandler {
	return &PackHandler{db: db, cfg: cfg}
}

// CreatePack handles POST /packs. Admin only. The new pack becomes
// the active one immediately.
func (h *PackHandler) CreatePack(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(h.db, w, r) {
		return
	}

	var req models.CreatePackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	packID := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO pack (id, name, created_at)
		VALUES ($1, $2, $3)
	`, packID, req.Name, time.Now().UnixNano())

	if err != nil {
		slog.Error("failed to insert pack", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create pack")
		return
	}

	slog.Info("pack created", "pack_id", packID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePackResponse{
		PackID: packID,
	})
}

// ListPacks handles GET /packs. Admin only. With ?name= it performs a
// case-insensitive lookup instead of listing everything.
func (h *PackHandler) ListPacks(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(h.db, w, r) {
		return
	}

	var (
		rows *sql.Rows
		err  error
	)
	if name := r.URL.Query().Get("name"); name != "" {
		rows, err = h.db.Query(`
			SELECT id, name, created_at FROM pack
			WHERE LOWER(name) = LOWER($1)
			ORDER BY created_at, id
		`, name)
	} else {
		rows, err = h.db.Query(`
			SELECT id, name, created_at FROM pack
			ORDER BY created_at, id
		`)
	}
	if err != nil {
		slog.Error("failed to query packs", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	packs := []models.Pack{}
	for rows.Next() {
		var p models.Pack
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			slog.Error("failed to scan pack", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		packs = append(packs, p)
	}

	middleware.JSONResponse(w, http.StatusOK, packs)
}

// DeletePack handles DELETE /packs/{id}. Admin only. Movies and votes
// go with the pack through the schema cascades.
func (h *PackHandler) DeletePack(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(h.db, w, r) {
		return
	}

	packID := r.PathValue("id")
	if packID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pack id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM pack WHERE id = $1`, packID)
	if err != nil {
		slog.Error("failed to delete pack", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete pack")
		return
	}

	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read delete result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete pack")
		return
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pack not found")
		return
	}

	slog.Info("pack deleted", "pack_id", packID)
	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"deleted": true})
}

// GetActivePack handles GET /packs/active. Public: this is what the
// vote menu is built from.
func (h *PackHandler) GetActivePack(w http.ResponseWriter, r *http.Request) {
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

	rows, err := h.db.Query(`
		SELECT id, pack_id, title FROM movie
		WHERE pack_id = $1
		ORDER BY id
	`, pack.ID)
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

	middleware.JSONResponse(w, http.StatusOK, models.PackWithMovies{
		Pack:   pack,
		Movies: movies,
	})
}
