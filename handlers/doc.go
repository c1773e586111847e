// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package handlers contains the HTTP request handlers for the ranker
API.

# Handler Types

Each handler is a struct with its dependencies injected through a
constructor:

  - PackHandler: pack catalog (create, list, delete, active pack)
  - MovieHandler: movies within a pack (add, lookup, delete)
  - VoterHandler: registration and identity
  - VoteHandler: the voting flow (selection, scores, retraction)
  - ResultsHandler: aggregation and result fan-out

# Identity

Every endpoint identifies the caller through the X-Voter-ID header,
the stable external actor id supplied by the chat gateway. Admin
endpoints additionally require the voter's role to be admin.

# Voting Flow

A voter picks a movie from the active pack and then replies with a
number:

	POST /selections    → SelectMovie (records the pending selection)
	POST /scores        → SubmitScore (validates and stores the score)

Submitting a score with no pending selection is ignored: that is how
a reply to a vote prompt is distinguished from unrelated chatter.
/votes/direct scores a movie by title in one call, and
DELETE /votes/{movieID} retracts. With SCORE_MIN=0, a submitted score
of exactly 0 also retracts.

# Results

	GET  /packs/{id}/results → GetResults (aggregation output)
	POST /results/announce   → Announce (formats and fans out reports)

The weighting engine lives in the voting package; the handlers only
read the ledger and wire the pieces together.
*/
package handlers
