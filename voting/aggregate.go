// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

package voting

import (
	"errors"
	"math"
	"sort"

	"github.com/movienight/ranker/models"
)

// ErrNoVotes signals that a pack has nothing to aggregate, so callers
// can tell "nobody voted" apart from "everybody voted zero".
var ErrNoVotes = errors.New("no votes to aggregate")

// Ballot is one ledger row joined with its voter and movie, the input
// to Aggregate.
type Ballot struct {
	VoterExternalID string
	VoterName       string
	MovieID         string
	MovieTitle      string
	Score           float64
}

// Result is the aggregation output: movies ranked by weighted total,
// plus each voter's individual weighted contribution per movie.
type Result struct {
	Rankings []models.RankedMovie
	// Contributions is keyed by voter display identity (username,
	// falling back to the external id), then by movie title.
	Contributions map[string]map[string]float64
	// Participants is the sorted set of distinct voter external ids,
	// used for result fan-out.
	Participants []string
}

// Aggregate computes the weighted totals for one pack's ballots.
//
// Each voter's scores are damped by log2(n+1) where n is the number of
// distinct movies that voter scored: a voter who rates many movies has
// each individual rating down-weighted, so prolific raters cannot
// dominate through volume alone. A voter with a single vote gets
// divisor log2(2) = 1, no damping.
func Aggregate(ballots []Ballot) (*Result, error) {
	if len(ballots) == 0 {
		return nil, ErrNoVotes
	}

	// Group ballots by voter.
	byVoter := make(map[string][]Ballot)
	for _, b := range ballots {
		byVoter[b.VoterExternalID] = append(byVoter[b.VoterExternalID], b)
	}

	totals := make(map[string]float64)
	titles := make(map[string]string)
	contributions := make(map[string]map[string]float64)
	participants := make([]string, 0, len(byVoter))

	for externalID, votes := range byVoter {
		participants = append(participants, externalID)

		// n counts distinct movies. The ledger's uniqueness constraint
		// already guarantees one row per movie, but the divisor must
		// never come out as log2(1) = 0, so count rather than assume.
		distinct := make(map[string]struct{}, len(votes))
		for _, v := range votes {
			distinct[v.MovieID] = struct{}{}
		}
		n := len(distinct)
		if n == 0 {
			continue
		}
		divisor := math.Log2(float64(n) + 1)

		display := votes[0].VoterName
		if display == "" {
			display = externalID
		}
		if contributions[display] == nil {
			contributions[display] = make(map[string]float64)
		}

		for _, v := range votes {
			weighted := v.Score / divisor
			totals[v.MovieID] += weighted
			titles[v.MovieID] = v.MovieTitle
			contributions[display][v.MovieTitle] = weighted
		}
	}

	rankings := make([]models.RankedMovie, 0, len(totals))
	for movieID, total := range totals {
		rankings = append(rankings, models.RankedMovie{
			MovieID: movieID,
			Title:   titles[movieID],
			Total:   total,
		})
	}

	// Descending total; ties broken by movie id ascending for a
	// deterministic order.
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Total != rankings[j].Total {
			return rankings[i].Total > rankings[j].Total
		}
		return rankings[i].MovieID < rankings[j].MovieID
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	sort.Strings(participants)

	return &Result{
		Rankings:      rankings,
		Contributions: contributions,
		Participants:  participants,
	}, nil
}
