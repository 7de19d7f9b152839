// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/eballot/auth"
	"github.com/danielhkuo/eballot/metrics"
	"github.com/danielhkuo/eballot/models"
	"github.com/danielhkuo/eballot/testutil"
)

func registration(voterID, mobile, aadhar, email string) models.RegisterRequest {
	return models.RegisterRequest{
		VoterID:     voterID,
		FirstName:   "Asha",
		MiddleName:  "K",
		LastName:    "Rao",
		Mobile:      mobile,
		Aadhar:      aadhar,
		Email:       email,
		DOB:         "1990-05-20",
		Address:     "12 MG Road",
		Password:    testutil.TestPassword,
		Declaration: true,
	}
}

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := metrics.New()
	handler := NewAuthHandler(db, testutil.GetTestConfig(), m)

	tests := []struct {
		name           string
		body           any
		expectedStatus int
	}{
		{"valid registration", registration("VOTER001", "9876543210", "123456789012", "asha@example.com"), http.StatusCreated},
		{"duplicate voter id", registration("VOTER001", "9876543211", "123456789013", "other@example.com"), http.StatusConflict},
		{"duplicate email", registration("VOTER002", "9876543212", "123456789014", "asha@example.com"), http.StatusConflict},
		{"short mobile", registration("VOTER003", "98765", "123456789015", "v3@example.com"), http.StatusBadRequest},
		{"malformed body", "{", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Register(w, testutil.MakeRequest("POST", "/api/register", tt.body, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusCreated {
				var resp models.RegisterResponse
				testutil.AssertJSON(t, w, &resp)
				assert.Equal(t, "VOTER001", resp.VoterID)
				assert.Equal(t, "Registration successful", resp.Message)
			}
		})
	}

	assert.Equal(t, 1, testutil.CountRows(t, db, `SELECT COUNT(*) FROM voters`))
	assert.Equal(t, 1, testutil.CountRows(t, db,
		`SELECT COUNT(*) FROM audit_logs WHERE action = $1 AND voter_id = $2`, models.ActionRegistration, "VOTER001"))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Registrations))
}

func TestRegisterUnderage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAuthHandler(db, testutil.GetTestConfig(), nil)

	req := registration("KID001", "9876543210", "123456789012", "kid@example.com")
	req.DOB = time.Now().AddDate(-17, 0, 0).Format("2006-01-02")

	w := httptest.NewRecorder()
	handler.Register(w, testutil.MakeRequest("POST", "/api/register", req, nil))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "You must be at least 18 years old to register", resp.Message)
}

func TestRegisterDeclarationFromForm(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAuthHandler(db, testutil.GetTestConfig(), nil)

	tests := []struct {
		name           string
		declaration    string
		expectedStatus int
		expectedMsg    string
	}{
		{"checkbox value", `"on"`, http.StatusCreated, ""},
		{"numeric one", `1`, http.StatusCreated, ""},
		{"empty string", `""`, http.StatusBadRequest, "You must accept the declaration"},
		{"zero", `0`, http.StatusBadRequest, "You must accept the declaration"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := fmt.Sprintf(`{"voterId":"FORM%[1]d","firstName":"Asha","lastName":"Rao",`+
				`"mobile":"98000000%02[1]d","aadhar":"1200000000%02[1]d","email":"form%[1]d@example.com",`+
				`"dob":"1990-05-20","address":"12 MG Road","password":"pw-123456","declaration":%[2]s}`,
				i, tt.declaration)
			req := httptest.NewRequest("POST", "/api/register", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Register(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedMsg != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				assert.Equal(t, tt.expectedMsg, resp.Message)
			}
		})
	}

	assert.Equal(t, 2, testutil.CountRows(t, db, `SELECT COUNT(*) FROM voters`))
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := metrics.New()
	cfg := testutil.GetTestConfig()
	handler := NewAuthHandler(db, cfg, m)

	testutil.CreateTestVoter(t, db, "VOTER001")
	testutil.CreateTestVoter(t, db, "VOTER002")
	testutil.DeactivateTestVoter(t, db, "VOTER002")

	tests := []struct {
		name           string
		body           models.LoginRequest
		expectedStatus int
	}{
		{"valid credentials", models.LoginRequest{VoterID: "VOTER001", Password: testutil.TestPassword}, http.StatusOK},
		{"wrong password", models.LoginRequest{VoterID: "VOTER001", Password: "nope"}, http.StatusUnauthorized},
		{"unknown voter", models.LoginRequest{VoterID: "GHOST", Password: testutil.TestPassword}, http.StatusUnauthorized},
		{"deactivated", models.LoginRequest{VoterID: "VOTER002", Password: testutil.TestPassword}, http.StatusForbidden},
		{"missing fields", models.LoginRequest{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Login(w, testutil.MakeRequest("POST", "/api/login", tt.body, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.LoginResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, "Login successful", resp.Message)
			assert.Equal(t, "VOTER001", resp.Voter.VoterID)
			assert.Equal(t, "Test Voter", resp.Voter.Name)
			assert.True(t, resp.ExpiresAt.After(time.Now()))

			voterID, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL).Verify(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, "VOTER001", voterID)
		})
	}

	assert.Equal(t, 1, testutil.CountRows(t, db,
		`SELECT COUNT(*) FROM audit_logs WHERE action = $1`, models.ActionLoginSuccess))
	assert.Equal(t, 1, testutil.CountRows(t, db,
		`SELECT COUNT(*) FROM audit_logs WHERE action = $1 AND voter_id = $2`, models.ActionLoginFailed, "VOTER001"))
	assert.Equal(t, 1, testutil.CountRows(t, db,
		`SELECT COUNT(*) FROM audit_logs WHERE action = $1 AND voter_id IS NULL AND details = $2`,
		models.ActionLoginFailed, "Unknown voter ID: GHOST"))
	assert.Equal(t, 1, testutil.CountRows(t, db,
		`SELECT COUNT(*) FROM audit_logs WHERE action = $1 AND voter_id = $2`, models.ActionLoginFailed, "VOTER002"))

	assert.Equal(t, 1.0, promtest.ToFloat64(m.Logins.WithLabelValues(LoginSuccess)))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.Logins.WithLabelValues(LoginFailed)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Logins.WithLabelValues(LoginDeactivated)))
}
