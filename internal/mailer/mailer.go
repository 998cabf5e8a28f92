// Package mailer delivers contact form submissions over SMTP.
package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/Zachkp/portfolio/internal/logger"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// maxMessageLength bounds the message body accepted from the form.
const maxMessageLength = 5000

// Config holds the SMTP settings.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	To   string
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends contact messages to the site owner.
type Mailer struct {
	cfg  Config
	send SendFunc
	log  logger.Logger
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithSendFunc replaces smtp.SendMail.
func WithSendFunc(fn SendFunc) Option {
	return func(m *Mailer) { m.send = fn }
}

// New creates a Mailer.
func New(cfg Config, log logger.Logger, opts ...Option) *Mailer {
	if log == nil {
		log = logger.NewNop()
	}
	m := &Mailer{cfg: cfg, send: smtp.SendMail, log: log}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Contact is one contact form submission.
type Contact struct {
	Name    string
	Email   string
	Message string
}

// ValidationError reports an unusable form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate trims the submission and checks its fields.
func (c *Contact) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Message = strings.TrimSpace(c.Message)

	if c.Name == "" || strings.ContainsAny(c.Name, "\r\n") {
		return &ValidationError{Field: "fullName", Message: "name is required"}
	}
	addr, err := mail.ParseAddress(c.Email)
	if err != nil || addr.Address != c.Email {
		return &ValidationError{Field: "email", Message: "a valid email address is required"}
	}
	if c.Message == "" {
		return &ValidationError{Field: "message", Message: "message is required"}
	}
	if len(c.Message) > maxMessageLength {
		return &ValidationError{Field: "message", Message: fmt.Sprintf("message must be at most %d characters", maxMessageLength)}
	}
	return nil
}

// SendContact validates c and mails it to the configured recipient.
func (m *Mailer) SendContact(c Contact) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if m.cfg.User == "" || m.cfg.Pass == "" || m.cfg.To == "" {
		return ErrNotConfigured
	}

	msg := compose(m.cfg.User, m.cfg.To, c)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)

	if err := m.send(addr, auth, m.cfg.User, []string{m.cfg.To}, msg); err != nil {
		m.log.Error("Failed to send contact email", logger.Error(err))
		return fmt.Errorf("send contact email: %w", err)
	}

	m.log.Info("Contact email sent", logger.Int("message_length", len(c.Message)))
	return nil
}

func compose(from, to string, c Contact) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", c.Email)
	fmt.Fprintf(&b, "Subject: Portfolio Contact: %s\r\n", c.Name)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("New contact form submission from your portfolio:\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", c.Email)
	b.WriteString("Message:\r\n")
	b.WriteString(c.Message)
	b.WriteString("\r\n\r\n---\r\nSent from your portfolio contact form\r\n")
	return b.Bytes()
}
