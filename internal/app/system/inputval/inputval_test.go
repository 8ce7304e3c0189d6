package inputval_test

import (
	"testing"

	teamstore "github.com/jwstechnologies/hackportal/internal/app/store/teams"
	"github.com/jwstechnologies/hackportal/internal/app/system/inputval"
	"github.com/jwstechnologies/hackportal/internal/app/system/weberr"
	"github.com/jwstechnologies/hackportal/internal/domain/models"
)

func validLeader() teamstore.LeaderFields {
	return teamstore.LeaderFields{
		Name:        "Asha Verma",
		College:     "St. Joseph's College",
		Department:  "Computer Science",
		City:        "Tiruchirappalli",
		PhoneNumber: "9876543210",
		Email:       "asha@example.com",
	}
}

func TestLeader_Valid(t *testing.T) {
	if err := inputval.Leader(validLeader()); err != nil {
		t.Errorf("valid leader rejected: %v", err)
	}
}

func TestLeader_RequiredFields(t *testing.T) {
	tests := []struct {
		field string
		mut   func(*teamstore.LeaderFields)
	}{
		{"name", func(l *teamstore.LeaderFields) { l.Name = "" }},
		{"college", func(l *teamstore.LeaderFields) { l.College = "" }},
		{"department", func(l *teamstore.LeaderFields) { l.Department = "" }},
		{"city", func(l *teamstore.LeaderFields) { l.City = "" }},
		{"phoneNumber", func(l *teamstore.LeaderFields) { l.PhoneNumber = "" }},
		{"email", func(l *teamstore.LeaderFields) { l.Email = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			l := validLeader()
			tt.mut(&l)
			err := inputval.Leader(l)
			fe, ok := weberr.AsFieldError(err)
			if !ok {
				t.Fatalf("err = %v, want FieldError", err)
			}
			if fe.Field != tt.field {
				t.Errorf("field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}

func TestLeader_BadEmail(t *testing.T) {
	l := validLeader()
	l.Email = "not-an-address"
	err := inputval.Leader(l)
	fe, ok := weberr.AsFieldError(err)
	if !ok || fe.Field != "email" {
		t.Errorf("err = %v, want email FieldError", err)
	}
}

func member(name string) models.TeamMember {
	return models.TeamMember{Name: name, Email: "m@example.com", PhoneNumber: "9876500000"}
}

func TestMembers(t *testing.T) {
	if err := inputval.Members(nil); err != nil {
		t.Errorf("empty member list rejected: %v", err)
	}
	if err := inputval.Members([]models.TeamMember{member("A"), member("B"), member("C")}); err != nil {
		t.Errorf("three members rejected: %v", err)
	}
	if err := inputval.Members([]models.TeamMember{member("A"), member("B"), member("C"), member("D")}); err == nil {
		t.Error("four members accepted; team size cap is 4 including the leader")
	}

	bad := member("A")
	bad.Email = "nope"
	if err := inputval.Members([]models.TeamMember{bad}); err == nil {
		t.Error("member with invalid email accepted")
	}

	missing := member("A")
	missing.PhoneNumber = ""
	if err := inputval.Members([]models.TeamMember{missing}); err == nil {
		t.Error("member with missing phone accepted")
	}
}
