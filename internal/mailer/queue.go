package mailer

import (
	"context"
	"time"

	"github.com/erenasiroglu/persona-backend/internal/queue"
)

// QueueMailer hands messages to the RabbitMQ mail queue instead of
// delivering them inline. Only the broker publish happens on the
// request path; actual SMTP delivery is done by the background
// consumer, so a slow mail provider cannot stall reset requests.
type QueueMailer struct {
	URL string
}

func (m QueueMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	return queue.PublishPasswordResetEmail(ctx, m.URL, queue.PasswordResetEmail{
		To:          to,
		Subject:     subject,
		HTMLBody:    htmlBody,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
