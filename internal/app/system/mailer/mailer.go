// Package mailer delivers transactional email over SMTP.
//
// Delivery is best-effort from the workflows' point of view: a registration
// or approval that has already been persisted is never rolled back because
// the confirmation could not be sent. Callers log and continue.
package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Attachment is a file carried with an email (approval notices attach the
// event documents).
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Email is one outbound message.
type Email struct {
	To          string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

// Sender is the notification collaborator handlers depend on. Tests swap
// in a recording fake.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Mailer sends mail through a configured SMTP relay.
type Mailer struct {
	host     string
	port     int
	user     string
	pass     string
	from     string
	fromName string
	log      *zap.Logger
}

// New builds a Mailer. user/pass may be empty for relays that accept
// unauthenticated local delivery (Mailpit and friends).
func New(host string, port int, user, pass, from, fromName string, logger *zap.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		pass:     pass,
		from:     from,
		fromName: fromName,
		log:      logger,
	}
}

// Send delivers e through the relay. The context deadline bounds the whole
// SMTP conversation.
func (m *Mailer) Send(ctx context.Context, e Email) error {
	if e.To == "" {
		return fmt.Errorf("email has no recipient")
	}

	msg := m.build(e)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.from, []string{e.To}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", e.To, err)
		}
		m.log.Info("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send to %s: %w", e.To, ctx.Err())
	}
}

// build assembles the RFC 2822 message: multipart/alternative for the
// text+HTML bodies, wrapped in multipart/mixed when attachments exist.
func (m *Mailer) build(e Email) []byte {
	var b strings.Builder

	altBoundary := "alt-" + uuid.NewString()
	mixBoundary := "mix-" + uuid.NewString()

	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", m.fromName), m.from)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", e.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", uuid.NewString(), m.host)
	b.WriteString("MIME-Version: 1.0\r\n")

	hasAttachments := len(e.Attachments) > 0
	if hasAttachments {
		fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mixBoundary)
		fmt.Fprintf(&b, "--%s\r\n", mixBoundary)
	}

	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", altBoundary)

	fmt.Fprintf(&b, "--%s\r\n", altBoundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(e.TextBody)
	b.WriteString("\r\n")

	if e.HTMLBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", altBoundary)
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(e.HTMLBody)
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", altBoundary)

	if hasAttachments {
		for _, a := range e.Attachments {
			ct := a.ContentType
			if ct == "" {
				ct = "application/octet-stream"
			}
			fmt.Fprintf(&b, "--%s\r\n", mixBoundary)
			fmt.Fprintf(&b, "Content-Type: %s; name=%q\r\n", ct, a.Filename)
			fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n", a.Filename)
			b.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
			writeBase64(&b, a.Data)
		}
		fmt.Fprintf(&b, "--%s--\r\n", mixBoundary)
	}

	return []byte(b.String())
}

// writeBase64 emits base64 data wrapped at 76 columns per RFC 2045.
func writeBase64(b *strings.Builder, data []byte) {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 76 {
		b.WriteString(enc[:76])
		b.WriteString("\r\n")
		enc = enc[76:]
	}
	b.WriteString(enc)
	b.WriteString("\r\n")
}
