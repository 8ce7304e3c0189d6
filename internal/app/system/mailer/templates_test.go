package mailer

import (
	"strings"
	"testing"
)

var roster = []RosterLine{
	{Label: "Leader", Name: "Asha Verma", Email: "asha@example.com", PhoneNumber: "9876543210"},
	{Label: "Member 1", Name: "Ravi Kumar", Email: "ravi@example.com", PhoneNumber: "9876500001"},
}

func TestBuildRegistrationEmail(t *testing.T) {
	e := BuildRegistrationEmail(RegistrationEmailData{
		LeaderName: "Asha Verma",
		TeamID:     "HIT101",
		TeamSize:   2,
		Amount:     400,
		PaymentRef: "HIT101",
		Roster:     roster,
	})

	if !strings.Contains(e.Subject, "HIT101") {
		t.Errorf("subject = %q", e.Subject)
	}
	for _, want := range []string{"HIT101", "Rs.400", "Asha Verma", "Ravi Kumar", EventDate, EventVenue} {
		if !strings.Contains(e.TextBody, want) {
			t.Errorf("text body missing %q", want)
		}
		if !strings.Contains(e.HTMLBody, want) {
			t.Errorf("html body missing %q", want)
		}
	}
}

func TestBuildApprovalEmail(t *testing.T) {
	e := BuildApprovalEmail(ApprovalEmailData{
		LeaderName: "Asha Verma",
		TeamID:     "HIT101",
		Amount:     400,
		Roster:     roster,
	})

	if !strings.Contains(e.Subject, "Approved") {
		t.Errorf("subject = %q", e.Subject)
	}
	for _, want := range []string{"HIT101", "Rs.400", ReportingTime, "attached"} {
		if !strings.Contains(e.TextBody, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestBuildHTML_EscapesInput(t *testing.T) {
	e := BuildRegistrationEmail(RegistrationEmailData{
		LeaderName: `<script>alert("x")</script>`,
		TeamID:     "HIT101",
		TeamSize:   1,
		Amount:     200,
		PaymentRef: "HIT101",
	})
	if strings.Contains(e.HTMLBody, "<script>") {
		t.Error("html body contains unescaped input")
	}
}
