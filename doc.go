// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package main provides the entry point for the Movie Night Ranker API
server.

The ranker lets a group rate the movies of the currently active pack
and produces a weighted aggregate ranking: each voter's scores are
damped by log2(number of movies they scored + 1), so rating everything
does not outweigh rating with conviction. A chat gateway (Telegram or
similar) drives the API and relays the result reports.

# Starting the Server

The server reads configuration from a .env file, environment
variables, or CLI flags:

	DATABASE_URL=file:ranker.db go run .

Or with flags:

	go run . -p 3320 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string (sqlite file or postgres URL)

Optional settings:

  - PORT (-p): server port (default: 3320)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - BOT_TOKEN (-bot-token): Telegram delivery; log-only when empty
  - ADMIN_EXTERNAL_ID (-admin): voter promoted to admin at startup
  - SCORE_MIN (-score-min): 0 (default, 0 retracts) or 1

# Architecture

The server uses a handler-based architecture with dependency
injection:

  - voting: score validation, weighted aggregation, report formatting
  - ledger: durable vote facts with store-enforced uniqueness
  - session: per-voter pending selections (in-memory)
  - handlers: HTTP request handlers (packs, movies, voters, votes, results)
  - notify: best-effort fan-out delivery to chat recipients
  - router: route definitions using Go 1.22+ routing
  - middleware: logging and JSON helpers
  - auth: external-id identity and roles
  - db: drivers and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
