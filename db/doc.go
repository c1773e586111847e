// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package db handles database connections and schema creation.

# Drivers

Two drivers are supported through Open:

  - postgres (github.com/lib/pq) for production deployments
  - sqlite (modernc.org/sqlite, CGo-free) for development and tests

The rest of the codebase only sees *sql.DB. Queries elsewhere are
written in the shared dialect: $N placeholders used once each in
order, ON CONFLICT upserts, and foreign-key cascades.

# Schema

CreateSchema is idempotent and creates four tables: pack, movie,
voter, and vote. The vote table's composite primary key
(voter_id, movie_id, pack_id) enforces the at-most-one-vote-per-key
invariant in the store rather than in application code.
*/
package db
