// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package ledger

import (
	"database/sql"
	"fmt"
)

// Outcome reports what an Upsert or Retract did.
type Outcome string

const (
	Inserted  Outcome = "inserted"
	Updated   Outcome = "updated"
	Retracted Outcome = "retracted"
	NotFound  Outcome = "not_found"
)

// Entry is one vote joined with its voter and movie, the shape the
// aggregation engine consumes.
type Entry struct {
	VoterID         string
	VoterExternalID string
	Username        string
	MovieID         string
	MovieTitle      string
	Score           float64
}

// Upsert records a score for (voter, movie, pack), overwriting any
// previous score for the same key.
//
// The write is a single INSERT .. ON CONFLICT DO UPDATE, so two
// concurrent upserts for the same key can never produce two rows; the
// composite primary key is enforced by the store, not by check-then-
// act. The preceding existence read only labels the outcome and may
// report Inserted for a race loser - the row count cannot be wrong.
func Upsert(db *sql.DB, voterID, movieID, packID string, score float64) (Outcome, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM vote WHERE voter_id = $1 AND movie_id = $2 AND pack_id = $3
		)
	`, voterID, movieID, packID).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("failed to check existing vote: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO vote (voter_id, movie_id, pack_id, score)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (voter_id, movie_id, pack_id) DO UPDATE SET score = excluded.score
	`, voterID, movieID, packID, score)
	if err != nil {
		return "", fmt.Errorf("failed to upsert vote: %w", err)
	}

	if exists {
		return Updated, nil
	}
	return Inserted, nil
}

// Retract deletes the voter's vote for the movie in the pack.
// Retracting a vote that does not exist is a no-op reported as
// NotFound, not an error.
func Retract(db *sql.DB, voterID, movieID, packID string) (Outcome, error) {
	res, err := db.Exec(`
		DELETE FROM vote WHERE voter_id = $1 AND movie_id = $2 AND pack_id = $3
	`, voterID, movieID, packID)
	if err != nil {
		return "", fmt.Errorf("failed to retract vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return NotFound, nil
	}
	return Retracted, nil
}

// ListForPack returns every vote in the pack joined with voter and
// movie, ordered by movie id then voter id for deterministic scans.
func ListForPack(db *sql.DB, packID string) ([]Entry, error) {
	rows, err := db.Query(`
		SELECT v.voter_id, u.external_id, u.username, v.movie_id, m.title, v.score
		FROM vote v
		JOIN voter u ON v.voter_id = u.id
		JOIN movie m ON v.movie_id = m.id
		WHERE v.pack_id = $1
		ORDER BY v.movie_id, v.voter_id
	`, packID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.VoterID, &e.VoterExternalID, &e.Username, &e.MovieID, &e.MovieTitle, &e.Score); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// VoterVote is one of a single voter's votes within a pack.
type VoterVote struct {
	MovieID string
	Title   string
	Score   float64
}

// ListForVoter returns the voter's votes in the pack, ordered by
// movie id.
func ListForVoter(db *sql.DB, voterID, packID string) ([]VoterVote, error) {
	rows, err := db.Query(`
		SELECT v.movie_id, m.title, v.score
		FROM vote v
		JOIN movie m ON v.movie_id = m.id
		WHERE v.voter_id = $1 AND v.pack_id = $2
		ORDER BY v.movie_id
	`, voterID, packID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voter votes: %w", err)
	}
	defer rows.Close()

	var votes []VoterVote
	for rows.Next() {
		var v VoterVote
		if err := rows.Scan(&v.MovieID, &v.Title, &v.Score); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}

	return votes, rows.Err()
}
