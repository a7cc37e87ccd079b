// Package mail provides the SMTP implementation of the Mailer domain service.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"net/url"
	"strings"

	"minishop/config"
	"minishop/internal/domain/service"
	"minishop/internal/errors"
)

// verificationTemplate renders the HTML body of the account-verification email.
var verificationTemplate = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
  <body>
    <div style="display: flex; align-items: center; justify-content: center; flex-direction: column">
      <h3>Account Verification</h3>
      <p>Hi {{.Username}}, thanks for choosing miniShop. Please click on the link below to verify your account.</p>
      <a style="margin-top: 1rem; padding: 1rem; border-radius: 0.5rem; font-size: 1rem; text-decoration: none; background: #0275d8; color: white;" href="{{.VerifyURL}}">Verify Email</a>
      <p>Please kindly ignore this email if you did not register for miniShop.</p>
    </div>
  </body>
</html>
`))

type verificationData struct {
	Username  string
	VerifyURL string
}

// smtpMailer delivers transactional email over plain SMTP with STARTTLS-capable auth.
type smtpMailer struct {
	cfg    *config.MailConfig
	logger *slog.Logger
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	if cfg.Mail == nil {
		return nil, errors.New("mail configuration must be provided")
	}

	return &smtpMailer{cfg: cfg.Mail, logger: logger}, nil
}

// SendVerificationEmail delivers the verification link carrying the token.
func (m *smtpMailer) SendVerificationEmail(ctx context.Context, recipient, username, token string) error {
	verifyURL := strings.TrimSuffix(m.cfg.BaseURL, "/") + "/auth/verify-email?token=" + url.QueryEscape(token)

	var body bytes.Buffer
	if err := verificationTemplate.Execute(&body, verificationData{
		Username:  username,
		VerifyURL: verifyURL,
	}); err != nil {
		return errors.Wrap(err, "failed to render verification email template")
	}

	raw := m.buildRaw(recipient, "miniShop Account Verification Email", body.String())

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{recipient}, raw); err != nil {
		return errors.Wrap(err, "failed to send verification email")
	}

	m.logger.Debug("Verification email sent", slog.String("recipient", recipient))

	return nil
}

// buildRaw assembles the MIME message bytes for a single-part HTML email.
func (m *smtpMailer) buildRaw(recipient, subject, body string) []byte {
	from := fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + recipient + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return []byte(b.String())
}
