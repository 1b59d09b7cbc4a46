// Package mailer sends transactional mail over SMTP. Only the password
// recovery flow uses it; when unconfigured, sends are skipped.
package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer sends plain-text mail through a single SMTP account.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// New creates a mailer. Empty host or username leaves it disabled.
func New(host, port, username, password, from string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password, from: from}
}

// Enabled reports whether outbound mail is configured.
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.username != ""
}

// Send delivers a plain-text message to one recipient.
func (m *Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer not configured")
	}

	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
