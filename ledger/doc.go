// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package ledger is the durable set of (voter, movie, pack, score)
facts.

Upsert and Retract are the only writes; both are single statements, so
the store's composite primary key - not application logic - enforces
at-most-one-vote-per-key. Deleting a movie or a pack cascades to its
votes through the schema's foreign keys, which keeps parent and votes
consistent within one statement.

ListForPack feeds the aggregation engine; ListForVoter feeds the
duplicate-score check and the "my votes" view.
*/
package ledger
