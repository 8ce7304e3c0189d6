// Package inputval validates registration and roster input before any
// storage is touched. Failures are weberr.FieldError values so handlers can
// name the offending field.
package inputval

import (
	"net/mail"

	teamstore "github.com/jwstechnologies/hackportal/internal/app/store/teams"
	"github.com/jwstechnologies/hackportal/internal/app/system/weberr"
	"github.com/jwstechnologies/hackportal/internal/domain/models"
)

// MaxMembers is the cap on non-leader participants (team size 1–4).
const MaxMembers = 3

// Leader checks that every required leader field is present and the email
// parses. Field order matches the registration form so the first error
// reported is the first field on screen.
func Leader(l teamstore.LeaderFields) error {
	switch {
	case l.Name == "":
		return weberr.Required("name")
	case l.College == "":
		return weberr.Required("college")
	case l.Department == "":
		return weberr.Required("department")
	case l.City == "":
		return weberr.Required("city")
	case l.PhoneNumber == "":
		return weberr.Required("phoneNumber")
	case l.Email == "":
		return weberr.Required("email")
	}
	if _, err := mail.ParseAddress(l.Email); err != nil {
		return weberr.Invalid("email", "not a valid email address")
	}
	return nil
}

// Members checks the member list: at most MaxMembers, every field present,
// every email parseable.
func Members(ms []models.TeamMember) error {
	if len(ms) > MaxMembers {
		return weberr.Invalid("teamMembers", "a team may have at most 4 participants")
	}
	for _, m := range ms {
		switch {
		case m.Name == "":
			return weberr.Required("teamMembers.name")
		case m.Email == "":
			return weberr.Required("teamMembers.email")
		case m.PhoneNumber == "":
			return weberr.Required("teamMembers.phoneNumber")
		}
		if _, err := mail.ParseAddress(m.Email); err != nil {
			return weberr.Invalid("teamMembers.email", "not a valid email address")
		}
	}
	return nil
}
