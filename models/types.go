// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package models

// Voter roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// MaxScore is the upper bound of the accepted score range. The lower
// bound (0 or 1) is configurable via cliparse.
const MaxScore = 10

// Request types

type RegisterVoterRequest struct {
	Username string `json:"username"`
}

type CreatePackRequest struct {
	Name string `json:"name"`
}

type AddMovieRequest struct {
	Title string `json:"title"`
}

type SelectMovieRequest struct {
	MovieID string `json:"movie_id"`
}

type SubmitScoreRequest struct {
	Score float64 `json:"score"`
}

type DirectVoteRequest struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Response types

type CreatePackResponse struct {
	PackID string `json:"pack_id"`
}

type AddMovieResponse struct {
	MovieID string `json:"movie_id"`
}

type SelectMovieResponse struct {
	MovieID string `json:"movie_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type VoteResponse struct {
	Outcome string  `json:"outcome"`
	MovieID string  `json:"movie_id,omitempty"`
	Title   string  `json:"title,omitempty"`
	Score   float64 `json:"score,omitempty"`
	Message string  `json:"message,omitempty"`
}

type MyVotesResponse struct {
	PackID string     `json:"pack_id"`
	Votes  []VoteItem `json:"votes"`
}

type VoteItem struct {
	MovieID string  `json:"movie_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

type ResultsResponse struct {
	PackID        string                        `json:"pack_id"`
	NoVotes       bool                          `json:"no_votes,omitempty"`
	Message       string                        `json:"message,omitempty"`
	Rankings      []RankedMovie                 `json:"rankings,omitempty"`
	Contributions map[string]map[string]float64 `json:"contributions,omitempty"`
}

type RankedMovie struct {
	MovieID string  `json:"movie_id"`
	Title   string  `json:"title"`
	Total   float64 `json:"total"`
	Rank    int     `json:"rank"` // 1-indexed
}

type AnnounceResponse struct {
	PackID     string `json:"pack_id"`
	NoVotes    bool   `json:"no_votes,omitempty"`
	Message    string `json:"message,omitempty"`
	Recipients int    `json:"recipients"`
	Delivered  int    `json:"delivered"`
}

// Domain types

type Pack struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"` // Unix nanoseconds
}

type Movie struct {
	ID     string `json:"id"`
	PackID string `json:"pack_id"`
	Title  string `json:"title"`
}

type PackWithMovies struct {
	Pack   Pack    `json:"pack"`
	Movies []Movie `json:"movies"`
}

type Voter struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
}

type Vote struct {
	VoterID string  `json:"voter_id"`
	MovieID string  `json:"movie_id"`
	PackID  string  `json:"pack_id"`
	Score   float64 `json:"score"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
