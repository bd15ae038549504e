// Package queue defines message payloads exchanged over the message
// broker along with the publisher and the background consumer for the
// password-reset mail queue.
package queue

// EmailQueueName is the durable queue carrying outbound reset emails.
const EmailQueueName = "auth.password_reset_email"

// PasswordResetEmail is published when a reset is requested and mail
// dispatch runs in queue mode. It carries the fully rendered message
// so the consumer can deliver it without touching the database.
type PasswordResetEmail struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTMLBody    string `json:"html_body"`
	RequestedAt string `json:"requested_at"`
}
