package testutil

import (
	"context"
	"sync"

	"github.com/jwstechnologies/hackportal/internal/app/system/mailer"
)

// FakeSender records outgoing email instead of delivering it.
type FakeSender struct {
	mu   sync.Mutex
	sent []mailer.Email

	// Err, when set, is returned from every Send.
	Err error
}

// Send records the email.
func (f *FakeSender) Send(ctx context.Context, e mailer.Email) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
	return nil
}

// Sent returns a copy of everything recorded so far.
func (f *FakeSender) Sent() []mailer.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mailer.Email, len(f.sent))
	copy(out, f.sent)
	return out
}
