// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package auth is the identity layer: it resolves stable external actor
ids (the chat platform's user ids) to voter records and answers role
questions.

  - EnsureVoter: get-or-create on first contact, default role member
  - GetVoter: lookup, ErrNotRegistered when absent
  - IsAdmin: privileged-role check for admin-only operations
  - PromoteAdmin: startup bootstrap for the configured admin id

Roles live in the voter table; there is no token or signature
machinery here. The HTTP layer trusts the X-Voter-ID header because
the only caller is the chat gateway, which authenticates users itself.
*/
package auth
