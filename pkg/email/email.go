package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
)

// SMTPMailer sends HTML email over plain SMTP. Delivery is best-effort; the
// caller decides what to do with a returned error.
type SMTPMailer struct {
	host     string
	port     string
	sender   string
	password string
}

// NewSMTPMailer creates a mailer for the given SMTP server.
func NewSMTPMailer(host, port, sender, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
	}
}

// Send delivers one HTML email to the given recipients.
func (m *SMTPMailer) Send(subject string, to []string, htmlBody string) error {
	auth := smtp.PlainAuth("", m.sender, m.password, m.host)

	msg := []byte("From: " + m.sender + "\r\n" +
		"To: " + strings.Join(to, ", ") + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + htmlBody + "\r\n")

	address := m.host + ":" + m.port

	if err := smtp.SendMail(address, auth, m.sender, to, msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// ConsoleMailer logs emails instead of sending them. Used when no SMTP
// server is configured, e.g. in local development.
type ConsoleMailer struct{}

// Send logs the email that would have been delivered.
func (m *ConsoleMailer) Send(subject string, to []string, htmlBody string) error {
	logrus.WithFields(logrus.Fields{
		"subject": subject,
		"to":      strings.Join(to, ", "),
	}).Info("Email (console mailer, not sent)")
	return nil
}
