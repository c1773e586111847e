// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/movienight/ranker/cliparse"
	"github.com/movienight/ranker/db"
	"github.com/movienight/ranker/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Every test gets its own database; nothing external is
// required.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A pooled second connection would see a different :memory: DB.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3320,
		DatabaseURL:  "file::memory:",
		DatabaseType: "sqlite",
		ScoreMin:     0,
	}
}

// CreateTestPack creates a pack and returns its ID. Packs created
// later are "more recent", so the last one created is the active one.
func CreateTestPack(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	packID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO pack (id, name, created_at)
		VALUES ($1, $2, $3)
	`, packID, name, time.Now().UnixNano())
	if err != nil {
		t.Fatalf("Failed to create test pack: %v", err)
	}

	return packID
}

// AddTestMovie adds a movie to a pack and returns the movie ID
func AddTestMovie(t *testing.T, conn *sql.DB, packID, title string) string {
	t.Helper()

	movieID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO movie (id, pack_id, title)
		VALUES ($1, $2, $3)
	`, movieID, packID, title)
	if err != nil {
		t.Fatalf("Failed to create test movie: %v", err)
	}

	return movieID
}

// CreateTestVoter registers a voter with the given role and returns
// the full record.
func CreateTestVoter(t *testing.T, conn *sql.DB, externalID, username, role string) models.Voter {
	t.Helper()

	v := models.Voter{
		ID:         uuid.NewString(),
		ExternalID: externalID,
		Username:   username,
		Role:       role,
	}
	_, err := conn.Exec(`
		INSERT INTO voter (id, external_id, username, role)
		VALUES ($1, $2, $3, $4)
	`, v.ID, v.ExternalID, v.Username, v.Role)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return v
}

// CastTestVote inserts a vote directly
func CastTestVote(t *testing.T, conn *sql.DB, voterID, movieID, packID string, score float64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (voter_id, movie_id, pack_id, score)
		VALUES ($1, $2, $3, $4)
	`, voterID, movieID, packID, score)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
