package mail

import (
	"bytes"
	"log/slog"
	"testing"

	"minishop/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T) *smtpMailer {
	t.Helper()

	cfg := &config.Config{}
	cfg.Mail = &config.MailConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "mailer",
		Password: "secret",
		From:     "noreply@example.com",
		FromName: "miniShop",
		BaseURL:  "https://shop.example.com/",
	}

	mailer, err := NewSMTPMailer(cfg, slog.Default())
	require.NoError(t, err)

	return mailer.(*smtpMailer)
}

func TestVerificationTemplate_EmbedsEscapedToken(t *testing.T) {
	verifyURL := "https://shop.example.com/auth/verify-email?token=abc%2Bdef"

	var body bytes.Buffer
	err := verificationTemplate.Execute(&body, verificationData{
		Username:  "alice",
		VerifyURL: verifyURL,
	})
	require.NoError(t, err)

	rendered := body.String()
	assert.Contains(t, rendered, "Hi alice")
	assert.Contains(t, rendered, "abc%2Bdef")
}

func TestBuildRaw_AssemblesHTMLMessage(t *testing.T) {
	mailer := newTestMailer(t)

	raw := string(mailer.buildRaw("alice@example.com", "miniShop Account Verification Email", "<p>hello</p>"))

	assert.Contains(t, raw, "From: miniShop <noreply@example.com>\r\n")
	assert.Contains(t, raw, "To: alice@example.com\r\n")
	assert.Contains(t, raw, "Subject: miniShop Account Verification Email\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	assert.Contains(t, raw, "\r\n\r\n<p>hello</p>")
}

func TestNewSMTPMailer_RequiresConfig(t *testing.T) {
	mailer, err := NewSMTPMailer(&config.Config{}, slog.Default())

	assert.Nil(t, mailer)
	require.Error(t, err)
}
