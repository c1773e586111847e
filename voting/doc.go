// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package voting is the scoring core: score validation, the weighted
aggregation engine, and the report formatters. Everything here is pure
computation over snapshots; persistence lives in the ledger package.

# Validation

Policy.Validate enforces the accepted range and the
no-duplicate-score-per-pack rule that forces a ranking rather than a
flat rating. The duplicate check runs against a snapshot of the
voter's existing votes, which makes it check-then-act across two
calls. That is an accepted relaxation for the one-person-one-phone
interaction pattern this serves; the store's uniqueness constraint is
what actually protects the data.

# Aggregation

Aggregate groups a pack's ballots by voter and damps each voter's
scores by log2(n+1), n being the count of distinct movies that voter
scored:

	weighted = score / log2(n+1)
	total(movie) = sum of weighted over all voters

A pack with zero ballots yields ErrNoVotes rather than an empty
ranking.

# Formatting

FormatRanking and FormatContributions serialize an aggregation result
into the two chat reports, with fixed two-decimal precision and
deterministic ordering. No numeric logic lives there.
*/
package voting
