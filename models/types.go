package models

import "time"

// ElectionStatus gates vote acceptance. Transitions are administrative.
type ElectionStatus string

// Election status constants
const (
	StatusUpcoming  ElectionStatus = "upcoming"
	StatusActive    ElectionStatus = "active"
	StatusCompleted ElectionStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s ElectionStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Audit action tags
const (
	ActionRegistration = "REGISTRATION"
	ActionLoginSuccess = "LOGIN_SUCCESS"
	ActionLoginFailed  = "LOGIN_FAILED"
	ActionVoteCast     = "VOTE_CAST"
)

// Request types

type RegisterRequest struct {
	VoterID     string `json:"voterId"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	Mobile      string `json:"mobile"`
	Aadhar      string `json:"aadhar"`
	Email       string `json:"email"`
	DOB         string `json:"dob"` // YYYY-MM-DD
	Address     string `json:"address"`
	Password    string `json:"password"`
	Declaration Truthy `json:"declaration"`
}

type LoginRequest struct {
	VoterID  string `json:"voterId"`
	Password string `json:"password"`
}

type CastVoteRequest struct {
	ElectionID  ID `json:"electionId"`
	CandidateID ID `json:"candidateId"`
}

// Response types

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	VoterID string `json:"voterId"`
}

type VoterSummary struct {
	VoterID string `json:"voterId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type LoginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Voter     VoterSummary `json:"voter"`
}

type ElectionsResponse struct {
	Elections []Election `json:"elections"`
}

type CandidatesResponse struct {
	Candidates []Candidate `json:"candidates"`
	HasVoted   bool        `json:"has_voted"`
}

type CastVoteResponse struct {
	Message string `json:"message"`
	VoteID  string `json:"vote_id"`
}

type DashboardStats struct {
	ActiveElections    int `json:"active_elections"`
	UpcomingElections  int `json:"upcoming_elections"`
	CompletedElections int `json:"completed_elections"`
	VotesCast          int `json:"votes_cast"`
}

// Domain types

type Voter struct {
	VoterID      string    `json:"voterId"`
	FirstName    string    `json:"firstName"`
	MiddleName   string    `json:"middleName,omitempty"`
	LastName     string    `json:"lastName"`
	Mobile       string    `json:"mobile"`
	Aadhar       string    `json:"-"` // Never expose in JSON
	Email        string    `json:"email"`
	DateOfBirth  string    `json:"dob"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName joins first, middle (when present) and last names.
func (v Voter) FullName() string {
	if v.MiddleName != "" {
		return v.FirstName + " " + v.MiddleName + " " + v.LastName
	}
	return v.FirstName + " " + v.LastName
}

type Election struct {
	ID          int64          `json:"election_id"`
	Name        string         `json:"election_name"`
	Description string         `json:"description"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Status      ElectionStatus `json:"status"`
}

type Candidate struct {
	ID          int64  `json:"candidate_id"`
	ElectionID  int64  `json:"election_id"`
	Name        string `json:"candidate_name"`
	Party       string `json:"party_name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
}

type Vote struct {
	ID          string    `json:"vote_id"`
	VoterID     string    `json:"voter_id"`
	ElectionID  int64     `json:"election_id"`
	CandidateID int64     `json:"candidate_id"`
	Origin      string    `json:"-"` // Never expose in JSON
	CreatedAt   time.Time `json:"created_at"`
}

type AuditLogEntry struct {
	ID        string    `json:"log_id"`
	VoterID   *string   `json:"voter_id,omitempty"` // nil when the actor is unknown
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Origin    string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// Tally types

type CandidateResult struct {
	CandidateID int64   `json:"candidate_id"`
	Name        string  `json:"candidate_name"`
	Party       string  `json:"party_name"`
	Count       int     `json:"vote_count"`
	Percentage  float64 `json:"percentage"`
}

type TallyResult struct {
	ElectionID int64             `json:"election_id"`
	TotalVotes int               `json:"total_votes"`
	Results    []CandidateResult `json:"results"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
