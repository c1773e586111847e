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
)

type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg}
}

// Register handles POST /voters/register: get-or-create on first
// contact. Registering again is harmless and returns the existing
// record.
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	externalID := r.Header.Get("X-Voter-ID")
	if externalID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter, err := auth.EnsureVoter(h.db, externalID, req.Username)
	if err != nil {
		slog.Error("failed to register voter", "error", err, "external_id", externalID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("voter registered", "external_id", externalID, "username", voter.Username)
	middleware.JSONResponse(w, http.StatusCreated, voter)
}

// GetMe handles GET /voters/me.
func (h *VoterHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	externalID := r.Header.Get("X-Voter-ID")
	if externalID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	voter, err := auth.GetVoter(h.db, externalID)
	if errors.Is(err, auth.ErrNotRegistered) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voter)
}
