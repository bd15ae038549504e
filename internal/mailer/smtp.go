// Package mailer provides the transactional email senders used by the
// password-reset flow. Two implementations exist: a direct SMTP sender
// and a queue-backed one that defers delivery to the background
// consumer.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
)

// SMTPMailer sends HTML mail over SMTP with PLAIN authentication.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Send delivers a single HTML email. Delivery is synchronous; the
// dial and transfer are bounded by the platform's TCP timeouts, and
// any failure is returned to the caller.
func (m SMTPMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.Host == "" || m.Port == "" {
		return fmt.Errorf("smtp not configured")
	}

	msg := "From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"utf-8\"\r\n\r\n" +
		htmlBody + "\r\n"

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg))
}
