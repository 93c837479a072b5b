package mailer

import (
	"fmt"
	"net/smtp"
	"net/url"
	"strings"

	"flatmate/config"
)

// Mailer sends transactional mail over a configured SMTP relay.
type Mailer struct {
	cfg     config.SMTPConfig
	baseURL string
}

func NewMailer(cfg config.SMTPConfig, baseURL string) *Mailer {
	return &Mailer{cfg: cfg, baseURL: baseURL}
}

// SendVerificationEmail mails the one-shot verification link. Failures are
// the caller's to log; registration does not fail on a mail error.
func (m *Mailer) SendVerificationEmail(email, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s&email=%s",
		m.baseURL, url.QueryEscape(token), url.QueryEscape(email))

	body := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + email,
		"Subject: flatMATE: Verify your email",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		"<p>Click the link below to verify your email:</p>",
		fmt.Sprintf(`<a href="%s">Verify Email</a>`, verifyURL),
		"<p>This link will expire in 24 hours.</p>",
		"<p>or copy and paste the following URL into your browser:</p>",
		"<p>" + verifyURL + "</p>",
		"<hr/>",
		"<p>If you did not request this, please ignore this email.</p>",
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	return smtp.SendMail(addr, auth, m.envelopeFrom(), []string{email}, []byte(body))
}

// envelopeFrom is the bare SMTP sender address; From may carry a display
// name the protocol does not accept.
func (m *Mailer) envelopeFrom() string {
	from := m.cfg.From
	if start := strings.IndexByte(from, '<'); start >= 0 {
		if end := strings.IndexByte(from[start:], '>'); end > 0 {
			return from[start+1 : start+end]
		}
	}
	if from == "" {
		return m.cfg.Username
	}
	return from
}
