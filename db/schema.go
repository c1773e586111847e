// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema is written in the dialect subset shared by PostgreSQL and
// SQLite: no serial columns, no server-side defaults that differ
// between engines, timestamps stored as Unix nanoseconds. Cascades are
// declared on the foreign keys so that deleting a pack or a movie
// removes its votes in the same statement.
const schema = `
-- Packs ("batches"): the most recently created pack is the active one
CREATE TABLE IF NOT EXISTS pack (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pack_created_at ON pack(created_at);

-- Movies
CREATE TABLE IF NOT EXISTS movie (
    id TEXT PRIMARY KEY,
    pack_id TEXT NOT NULL REFERENCES pack(id) ON DELETE CASCADE,
    title TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_movie_pack_id ON movie(pack_id);

-- Voters
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    external_id TEXT NOT NULL UNIQUE,
    username TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('member', 'admin'))
);

-- Votes: the composite primary key is the load-bearing invariant,
-- at most one vote per (voter, movie, pack)
CREATE TABLE IF NOT EXISTS vote (
    voter_id TEXT NOT NULL REFERENCES voter(id) ON DELETE CASCADE,
    movie_id TEXT NOT NULL REFERENCES movie(id) ON DELETE CASCADE,
    pack_id TEXT NOT NULL REFERENCES pack(id) ON DELETE CASCADE,
    score REAL NOT NULL,
    PRIMARY KEY (voter_id, movie_id, pack_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_pack_id ON vote(pack_id);
`
