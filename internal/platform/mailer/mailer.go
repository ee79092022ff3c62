// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

/*
Package mailer delivers out-of-band verification codes over SMTP.

Delivery is best-effort by contract: a failed send never rolls back the
request that triggered it. Callers log the failure and move on — the user
can always request a fresh code.
*/
package mailer

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Sender is the outbound notification contract consumed by the auth service.
type Sender interface {
	// Send delivers a single plain message to one recipient.
	Send(to, subject, body string) error
}

// # SMTP Implementation

// SMTPSender sends email through a configured SMTP relay using gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender constructs a gomail-backed [Sender].
func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send implements [Sender] over SMTP.
func (sender *SMTPSender) Send(to, subject, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", sender.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	if err := sender.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("mailer: failed to send to %s: %w", to, err)
	}

	return nil
}

// # Development Fallback

// LogSender writes outbound mail to the structured log instead of the wire.
// Used when no SMTP relay is configured (local development, CI).
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs a log-only [Sender].
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements [Sender] by logging the message body.
func (sender *LogSender) Send(to, subject, body string) error {
	sender.logger.Info("mail_logged_instead_of_sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}

// # Templates

// VerificationBody renders the HTML body carrying a one-time code.
func VerificationBody(code string) string {
	return fmt.Sprintf(`
		<h3>Your Vidora verification code</h3>
		<p>Enter the following code to continue: <strong>%s</strong></p>
		<p>The code expires in 10 minutes. If you did not request it, you can ignore this email.</p>
	`, code)
}
