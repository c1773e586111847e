// Copyright (c) 2026 the Movie Night Ranker authors.
// Source-available; see LICENSE.

/*
Package middleware provides HTTP plumbing shared by all handlers:
request logging, JSON response and error helpers, and request body
parsing.

Handlers write every response through JSONResponse/ErrorResponse so
error bodies always have the models.ErrorResponse shape.
*/
package middleware
