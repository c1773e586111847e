// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package models defines the domain types and the request/response types
of the ranker API.

# Domain Types

The relational shape mirrors the schema in the db package:

  - Pack: a named set of movies open for one voting round; the
    most-recently-created pack is the active one.
  - Movie: a single ratable entry within a pack.
  - Voter: an actor identified by a stable external id; may hold the
    admin role.
  - Vote: a (voter, movie, pack, score) fact, at most one per key.

# Request/Response Types

Each HTTP endpoint has a dedicated request and/or response struct with
JSON tags. Errors are always rendered as ErrorResponse.
*/
package models
