// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ method-and-
pattern routing.

All handlers are wrapped with request logging. The router owns the
shared session tracker, so every request sees the same pending
selections.
*/
package router
