package mailer

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	addr string
	from string
	to   []string
	msg  string
}

func capture(out *sent, err error) SendFunc {
	return func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		*out = sent{addr: addr, from: from, to: to, msg: string(msg)}
		return err
	}
}

var testConfig = Config{Host: "smtp.example.com", Port: 587, User: "site@example.com", Pass: "secret", To: "owner@example.com"}

func TestSendContact(t *testing.T) {
	var got sent
	m := New(testConfig, nil, WithSendFunc(capture(&got, nil)))

	err := m.SendContact(Contact{Name: " Ada ", Email: "ada@example.org", Message: "Hello there"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.Equal(t, "site@example.com", got.from)
	assert.Equal(t, []string{"owner@example.com"}, got.to)
	assert.Contains(t, got.msg, "Subject: Portfolio Contact: Ada\r\n")
	assert.Contains(t, got.msg, "Reply-To: ada@example.org\r\n")
	assert.True(t, strings.HasSuffix(got.msg, "Sent from your portfolio contact form\r\n"))
}

func TestSendContact_Validation(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		field   string
	}{
		{"missing name", Contact{Email: "a@b.co", Message: "hi"}, "fullName"},
		{"header injection", Contact{Name: "x\r\nBcc: evil@example.com", Email: "a@b.co", Message: "hi"}, "fullName"},
		{"bad email", Contact{Name: "Ada", Email: "not-an-email", Message: "hi"}, "email"},
		{"display name email", Contact{Name: "Ada", Email: "Ada <a@b.co>", Message: "hi"}, "email"},
		{"empty message", Contact{Name: "Ada", Email: "a@b.co", Message: "   "}, "message"},
		{"long message", Contact{Name: "Ada", Email: "a@b.co", Message: strings.Repeat("x", maxMessageLength+1)}, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			m := New(testConfig, nil, WithSendFunc(func(string, smtp.Auth, string, []string, []byte) error {
				called = true
				return nil
			}))

			err := m.SendContact(tt.contact)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.False(t, called)
		})
	}
}

func TestSendContact_NotConfigured(t *testing.T) {
	m := New(Config{Host: "smtp.example.com", Port: 587}, nil)
	err := m.SendContact(Contact{Name: "Ada", Email: "a@b.co", Message: "hi"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendContact_TransportError(t *testing.T) {
	var got sent
	cause := errors.New("connection reset")
	m := New(testConfig, nil, WithSendFunc(capture(&got, cause)))

	err := m.SendContact(Contact{Name: "Ada", Email: "a@b.co", Message: "hi"})
	assert.ErrorIs(t, err, cause)
}
