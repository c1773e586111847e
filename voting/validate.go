// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package voting

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrOutOfRange     = errors.New("score out of range")
	ErrDuplicateScore = errors.New("duplicate score")
)

// Policy is the accepted score range. Min is 0 or 1; with Min == 0 a
// submitted score of exactly 0 retracts the vote instead of recording
// it.
type Policy struct {
	Min float64
	Max float64
}

// IsRetraction reports whether the score should be routed to vote
// deletion rather than validated and stored.
func (p Policy) IsRetraction(score float64) bool {
	return p.Min == 0 && score == 0
}

// ExistingVote is a snapshot of one of the voter's current votes in
// the pack, used for the duplicate-score check.
type ExistingVote struct {
	MovieID string
	Score   float64
}

// Validate checks a score for the target movie against the policy
// range and the no-duplicate-score rule: a voter may not give two
// different movies in one pack the same value. Re-submitting the same
// score for the same movie is a legal no-op update.
//
// Pure check against the snapshot; the caller routes retractions
// through IsRetraction before calling.
func (p Policy) Validate(score float64, targetMovieID string, existing []ExistingVote) error {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < p.Min || score > p.Max {
		return fmt.Errorf("%w: score must be a number between %g and %g", ErrOutOfRange, p.Min, p.Max)
	}

	for _, ev := range existing {
		if ev.Score == score && ev.MovieID != targetMovieID {
			return fmt.Errorf("%w: score %g is already used for another movie in this pack", ErrDuplicateScore, score)
		}
	}

	return nil
}
