// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voters

import (
	"net/mail"
	"strings"
	"time"

	"github.com/danielhkuo/eballot/apperr"
	"github.com/danielhkuo/eballot/models"
)

// MinimumAge is the youngest a voter may be on the day they register.
const MinimumAge = 18

const dobLayout = "2006-01-02"

// ValidateRegistration checks a registration request field by field and
// returns the first problem as a KindValidation error.
func ValidateRegistration(req models.RegisterRequest, now time.Time) error {
	required := []struct {
		field string
		value string
	}{
		{"voterId", req.VoterID},
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"mobile", req.Mobile},
		{"aadhar", req.Aadhar},
		{"email", req.Email},
		{"dob", req.DOB},
		{"address", req.Address},
		{"password", req.Password},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperr.New(apperr.KindValidation, "Missing required field: "+r.field)
		}
	}

	if !isDigits(req.Mobile, 10) {
		return apperr.New(apperr.KindValidation, "Mobile number must be exactly 10 digits")
	}
	if !isDigits(req.Aadhar, 12) {
		return apperr.New(apperr.KindValidation, "Aadhar number must be exactly 12 digits")
	}
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil || strings.ContainsAny(email, "<> ") {
		return apperr.New(apperr.KindValidation, "Invalid email address")
	}

	dob, err := time.Parse(dobLayout, req.DOB)
	if err != nil {
		return apperr.New(apperr.KindValidation, "Invalid date of birth format")
	}
	if Age(dob, now) < MinimumAge {
		return apperr.New(apperr.KindValidation, "You must be at least 18 years old to register")
	}

	if !req.Declaration {
		return apperr.New(apperr.KindValidation, "You must accept the declaration")
	}
	return nil
}

// Age returns the number of whole years between dob and now.
func Age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
