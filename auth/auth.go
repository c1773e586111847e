// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package auth

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/movienight/ranker/models"
)

var ErrNotRegistered = errors.New("voter not registered")

// EnsureVoter resolves an external actor id to a voter record,
// creating one with the member role on first contact. An empty
// username falls back to the external id so the voter always has a
// display identity.
func EnsureVoter(db *sql.DB, externalID, username string) (models.Voter, error) {
	if username == "" {
		username = externalID
	}

	// ON CONFLICT DO NOTHING keeps the original username for returning
	// voters, matching first-contact registration semantics.
	_, err := db.Exec(`
		INSERT INTO voter (id, external_id, username, role)
		VALUES ($1, $2, $3, 'member')
		ON CONFLICT (external_id) DO NOTHING
	`, uuid.NewString(), externalID, username)
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to register voter: %w", err)
	}

	return GetVoter(db, externalID)
}

// GetVoter looks up a voter by external id. Returns ErrNotRegistered
// when no record exists.
func GetVoter(db *sql.DB, externalID string) (models.Voter, error) {
	var v models.Voter
	err := db.QueryRow(`
		SELECT id, external_id, username, role FROM voter WHERE external_id = $1
	`, externalID).Scan(&v.ID, &v.ExternalID, &v.Username, &v.Role)

	if err == sql.ErrNoRows {
		return models.Voter{}, ErrNotRegistered
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to query voter: %w", err)
	}

	return v, nil
}

// IsAdmin reports whether the actor behind externalID holds the admin
// role. An unregistered actor is not an admin.
func IsAdmin(db *sql.DB, externalID string) (bool, error) {
	v, err := GetVoter(db, externalID)
	if errors.Is(err, ErrNotRegistered) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v.Role == models.RoleAdmin, nil
}

// PromoteAdmin grants the admin role to an existing voter.
func PromoteAdmin(db *sql.DB, externalID string) error {
	res, err := db.Exec(`
		UPDATE voter SET role = 'admin' WHERE external_id = $1
	`, externalID)
	if err != nil {
		return fmt.Errorf("failed to promote voter: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotRegistered
	}
	return nil
}
