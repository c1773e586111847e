// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package notify is the delivery collaborator: given a recipient id and
a text body it attempts best-effort delivery.

Telegram posts to the Bot API over plain HTTP; Log is the no-token
fallback for development. Fanout spreads the result reports across
all participants, treating each recipient independently so one failed
chat does not starve the rest.
*/
package notify
