// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/health", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status, duration_ms).

# Authentication

Protected routes verify the bearer token before anything else runs:

	middleware.RequireVoter(tokens, handler)

A missing, malformed, wrongly signed or expired token gets 401 and the
wrapped handler is never called. Handlers read the caller with VoterID.

# Store Sessions

WithSession checks out one connection per request and returns it to the
pool when the handler exits, including on panic. Stores pick it up through
db.Session.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.WriteError(w, r, err)

WriteError maps an apperr kind to its status code. Storage failures are
logged and reported without their cause.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Recorded on votes and audit entries.
*/
package middleware
