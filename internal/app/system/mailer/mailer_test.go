package mailer

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testMailer() *Mailer {
	return New("localhost", 1025, "", "", "noreply@example.com", "Hackathon", zap.NewNop())
}

func TestSend_NoRecipient(t *testing.T) {
	err := testMailer().Send(context.Background(), Email{Subject: "x"})
	if err == nil {
		t.Error("email without recipient accepted")
	}
}

func TestBuild_Alternative(t *testing.T) {
	msg := string(testMailer().build(Email{
		To:       "asha@example.com",
		Subject:  "Registration Confirmed",
		TextBody: "plain body",
		HTMLBody: "<p>html body</p>",
	}))

	for _, want := range []string{
		"From: Hackathon <noreply@example.com>",
		"To: asha@example.com",
		"MIME-Version: 1.0",
		"multipart/alternative",
		"text/plain; charset=utf-8",
		"text/html; charset=utf-8",
		"plain body",
		"<p>html body</p>",
		"Message-ID: <",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
	if strings.Contains(msg, "multipart/mixed") {
		t.Error("no attachments but message is multipart/mixed")
	}
}

func TestBuild_Attachments(t *testing.T) {
	data := []byte("%PDF-1.4 rules document body, long enough to wrap the base64 line at seventy-six columns")
	msg := string(testMailer().build(Email{
		To:       "asha@example.com",
		Subject:  "Payment Approved",
		TextBody: "approved",
		Attachments: []Attachment{
			{Filename: "rules.pdf", ContentType: "application/pdf", Data: data},
		},
	}))

	for _, want := range []string{
		"multipart/mixed",
		"multipart/alternative",
		`Content-Disposition: attachment; filename="rules.pdf"`,
		"Content-Transfer-Encoding: base64",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}

	// The payload survives the base64 wrapping.
	enc := base64.StdEncoding.EncodeToString(data)
	if !strings.Contains(strings.ReplaceAll(msg, "\r\n", ""), enc) {
		t.Error("attachment data mangled by line wrapping")
	}

	// Base64 lines stay within the RFC 2045 limit.
	inB64 := false
	for _, line := range strings.Split(msg, "\r\n") {
		if strings.HasPrefix(line, "Content-Transfer-Encoding: base64") {
			inB64 = true
			continue
		}
		if inB64 && strings.HasPrefix(line, "--") {
			inB64 = false
		}
		if inB64 && len(line) > 76 {
			t.Errorf("base64 line of %d chars exceeds 76", len(line))
		}
	}
}
