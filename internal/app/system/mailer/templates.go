// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Static event logistics included in every confirmation.
const (
	EventDate     = "16th September 2025"
	ReportingTime = "Before 8:45 AM"
	EventVenue    = "Sail Hall, St. Joseph's College, Tiruchirappalli"
	SupportSite   = "hackathon.jwstechnologies.com"
)

// RosterLine is one participant row rendered in email bodies.
type RosterLine struct {
	Label       string // "Leader", "Member 1", …
	Name        string
	Email       string
	PhoneNumber string
}

// RegistrationEmailData feeds the registration confirmation sent to the
// leader right after the team record is persisted.
type RegistrationEmailData struct {
	LeaderName string
	TeamID     string
	TeamSize   int
	Amount     int
	PaymentRef string // the team ID doubles as the payment reference
	Roster     []RosterLine
}

// BuildRegistrationEmail creates the confirmation with text and HTML bodies.
func BuildRegistrationEmail(data RegistrationEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Hackathon Registration Confirmed – Team %s", data.TeamID),
		TextBody: buildRegistrationText(data),
		HTMLBody: buildHTML(registrationHTMLTemplate, data),
	}
}

func buildRegistrationText(data RegistrationEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Dear %s,\n\n", data.LeaderName)
	fmt.Fprintf(&buf, "Your team of %d has been registered for the Hackathon.\n\n", data.TeamSize)
	fmt.Fprintf(&buf, "Team ID: %s\n", data.TeamID)
	fmt.Fprintf(&buf, "Registration fee: Rs.%d\n", data.Amount)
	fmt.Fprintf(&buf, "Payment reference: %s\n\n", data.PaymentRef)
	fmt.Fprintf(&buf, "Date: %s\n", EventDate)
	fmt.Fprintf(&buf, "Reporting time: %s\n", ReportingTime)
	fmt.Fprintf(&buf, "Venue: %s\n\n", EventVenue)
	buf.WriteString("Team details:\n")
	for _, l := range data.Roster {
		fmt.Fprintf(&buf, "- %s: %s, %s, %s\n", l.Label, l.Name, l.Email, l.PhoneNumber)
	}
	buf.WriteString("\nBring your college ID card or show this email at the entry.\n")
	buf.WriteString("Use the password you set during registration to log in.\n\n")
	fmt.Fprintf(&buf, "More details: %s\n\n", SupportSite)
	buf.WriteString("Warm regards,\nHackathon Organizing Team\n")
	return buf.String()
}

// ApprovalEmailData feeds the payment-approved notice. The event documents
// are attached by the caller.
type ApprovalEmailData struct {
	LeaderName string
	TeamID     string
	Amount     int
	Roster     []RosterLine
}

// BuildApprovalEmail creates the payment approval notice.
func BuildApprovalEmail(data ApprovalEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Payment Approved – Team %s Confirmed", data.TeamID),
		TextBody: buildApprovalText(data),
		HTMLBody: buildHTML(approvalHTMLTemplate, data),
	}
}

func buildApprovalText(data ApprovalEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Dear %s,\n\n", data.LeaderName)
	fmt.Fprintf(&buf, "Your payment of Rs.%d has been approved. Team %s is confirmed for the Hackathon.\n\n", data.Amount, data.TeamID)
	fmt.Fprintf(&buf, "Date: %s\n", EventDate)
	fmt.Fprintf(&buf, "Reporting time: %s\n", ReportingTime)
	fmt.Fprintf(&buf, "Venue: %s\n\n", EventVenue)
	buf.WriteString("Team details:\n")
	for _, l := range data.Roster {
		fmt.Fprintf(&buf, "- %s: %s, %s, %s\n", l.Label, l.Name, l.Email, l.PhoneNumber)
	}
	buf.WriteString("\nThe event rules and schedule are attached.\n\n")
	buf.WriteString("Warm regards,\nHackathon Organizing Team\n")
	return buf.String()
}

func buildHTML(tmpl string, data any) string {
	t := template.Must(template.New("email").Parse(tmpl))
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.String()
}

const registrationHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f9fafb;">
  <div style="max-width: 650px; margin: auto; padding: 24px; background: #ffffff; border-radius: 12px; border: 1px solid #e5e7eb;">
    <div style="text-align: center; padding-bottom: 20px; border-bottom: 1px solid #e5e7eb;">
      <h1 style="color: #111827; margin: 0;">Registration Confirmed</h1>
    </div>
    <div style="padding: 20px; color: #111827; font-size: 15px; line-height: 1.6;">
      <p>Dear <strong>{{.LeaderName}}</strong>,</p>
      <p>Your team of <strong>{{.TeamSize}}</strong> has been registered for the Hackathon.</p>
      <div style="background: #111827; color: #ffffff; padding: 16px; border-radius: 8px; margin: 20px 0;">
        <p><strong>Team ID:</strong> {{.TeamID}}</p>
        <p><strong>Registration fee:</strong> Rs.{{.Amount}}</p>
        <p><strong>Payment reference:</strong> {{.PaymentRef}}</p>
        <p><strong>Date:</strong> ` + EventDate + `</p>
        <p><strong>Reporting time:</strong> ` + ReportingTime + `</p>
        <p><strong>Venue:</strong> ` + EventVenue + `</p>
      </div>
      <h2 style="font-size: 18px;">Team Information</h2>
      <ul style="list-style: none; padding: 0; margin: 0;">
        {{range .Roster}}<li style="margin-bottom: 6px;"><strong>{{.Label}}:</strong> {{.Name}}, {{.Email}}, {{.PhoneNumber}}</li>
        {{end}}
      </ul>
      <p style="margin-top: 20px;">Bring your college ID card or show this email at the entry.
      Use the password you set during registration to log in.</p>
      <p>More details: <a href="https://` + SupportSite + `">` + SupportSite + `</a></p>
    </div>
    <div style="text-align: center; padding: 15px; border-top: 1px solid #e5e7eb; color: #6b7280; font-size: 12px;">
      Hackathon Organizing Team
    </div>
  </div>
</body>
</html>`

const approvalHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f9fafb;">
  <div style="max-width: 650px; margin: auto; padding: 24px; background: #ffffff; border-radius: 12px; border: 1px solid #e5e7eb;">
    <div style="text-align: center; padding-bottom: 20px; border-bottom: 1px solid #e5e7eb;">
      <h1 style="color: #111827; margin: 0;">Payment Approved</h1>
    </div>
    <div style="padding: 20px; color: #111827; font-size: 15px; line-height: 1.6;">
      <p>Dear <strong>{{.LeaderName}}</strong>,</p>
      <p>Your payment of <strong>Rs.{{.Amount}}</strong> has been approved.
      Team <strong>{{.TeamID}}</strong> is confirmed for the Hackathon.</p>
      <div style="background: #111827; color: #ffffff; padding: 16px; border-radius: 8px; margin: 20px 0;">
        <p><strong>Date:</strong> ` + EventDate + `</p>
        <p><strong>Reporting time:</strong> ` + ReportingTime + `</p>
        <p><strong>Venue:</strong> ` + EventVenue + `</p>
      </div>
      <h2 style="font-size: 18px;">Team Information</h2>
      <ul style="list-style: none; padding: 0; margin: 0;">
        {{range .Roster}}<li style="margin-bottom: 6px;"><strong>{{.Label}}:</strong> {{.Name}}, {{.Email}}, {{.PhoneNumber}}</li>
        {{end}}
      </ul>
      <p style="margin-top: 20px;">The event rules and schedule are attached.</p>
    </div>
    <div style="text-align: center; padding: 15px; border-top: 1px solid #e5e7eb; color: #6b7280; font-size: 12px;">
      Hackathon Organizing Team
    </div>
  </div>
</body>
</html>`
