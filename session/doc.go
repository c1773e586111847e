// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package session tracks per-voter pending selections: the movie a voter
tapped in the menu and is about to score.

Each voter has a single slot. A new selection overwrites the previous
one without warning, and a score submission from a voter with no slot
is treated by the caller as unrelated chatter, not an error. Slots are
cleared when a score is accepted, a retraction completes, or the
submission is rejected permanently; recoverable rejections (bad
number, duplicate score) keep the slot so the voter can try again.

The tracker is in-memory only and lost on restart by design.
*/
package session
