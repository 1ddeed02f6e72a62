// Package mail sends templated HTML e-mail.
package mail

import (
	"context"
	"log"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// LogMailer writes messages to the process log instead of delivering them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, html string) error {
	log.Printf("[mail] to=%s subject=%q bytes=%d", to, subject, len(html))
	return nil
}
