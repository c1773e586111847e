// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the database selected by dbType ("postgres" or
// "sqlite"). For SQLite the foreign_keys pragma is forced on through
// the DSN so that every pooled connection enforces the vote cascades.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		return sql.Open("postgres", url)
	case "sqlite":
		if !strings.Contains(url, "_pragma=foreign_keys") {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + "_pragma=foreign_keys(1)"
		}
		return sql.Open("sqlite", url)
	default:
		return nil, fmt.Errorf("unsupported database type %q (want sqlite or postgres)", dbType)
	}
}
