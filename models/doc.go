// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON (camelCase fields, as sent by the web client):

  - RegisterRequest: voterId, firstName, middleName, lastName, mobile, aadhar,
    email, dob, address, password, declaration
  - LoginRequest: voterId, password
  - CastVoteRequest: electionId, candidateId

# Response Types

  - RegisterResponse: message, voterId
  - LoginResponse: message, token, expires_at, voter
  - ElectionsResponse, CandidatesResponse: wrapped lists; candidates also
    carry has_voted for the caller
  - HealthResponse: status, message
  - CastVoteResponse: message, vote_id
  - TallyResult: election_id, total_votes, results
  - DashboardStats: election counts by status, votes_cast
  - ErrorResponse: error, message

# Domain Types

  - Voter: registered identity; Aadhar and password hash never serialize
  - Election: contest with a status lifecycle
  - Candidate: option within one election
  - Vote: immutable ballot, unique per (voter, election)
  - AuditLogEntry: append-only security event

# Constants

Election status values:

	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"

Audit actions:

	ActionRegistration = "REGISTRATION"
	ActionLoginSuccess = "LOGIN_SUCCESS"
	ActionLoginFailed  = "LOGIN_FAILED"
	ActionVoteCast     = "VOTE_CAST"
*/
package models
