// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

Flags take precedence over environment variables. Required settings
without a default cause ParseFlags to return an error.

Settings:

  - PORT (-p): server port (default 3320)
  - DATABASE_URL (-d): connection string, required
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - BOT_TOKEN (-bot-token): Telegram token; empty means log-only delivery
  - ADMIN_EXTERNAL_ID (-admin): voter promoted to admin at startup
  - SCORE_MIN (-score-min): 0 or 1; with 0, a score of exactly 0
    retracts the vote instead of recording it

The process loads a .env file (if present) before parsing, so a
development setup needs no exported variables.
*/
package cliparse
