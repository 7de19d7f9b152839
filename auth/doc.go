// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies voter credentials and hashes passwords.

# Voter Tokens

Tokens are HS256 JWTs carrying the voter ID and an expiry instant:

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	token, expiresAt, err := tokens.Issue(voterID)

Verify resolves a presented credential back to a voter ID. The "Bearer "
scheme prefix is stripped if present:

	voterID, err := tokens.Verify(r.Header.Get("Authorization"))

Failures are apperr.KindAuth errors:

  - ErrMissingCredential: nothing presented
  - ErrExpiredCredential: now >= expiry
  - ErrMalformedCredential: bad encoding, signature, algorithm or claims

Verification is a pure function of token, secret and clock. Tests inject the
clock with WithClock.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(password, hash)
*/
package auth
