// Package mailer delivers transactional mail over SMTP.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ResonanceSE/Resonance/config"
)

var ErrNotConfigured = errors.New("mailer: MAIL_USERNAME not configured")

type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	if m.cfg.Username == "" {
		return ErrNotConfigured
	}

	from := fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)

	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String()))
}

// SendPasswordReset mails the reset link for a requested password reset.
// The link stays valid for 24 hours.
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(
		"We received a request to reset your password.\r\n\r\n"+
			"Open the link below to choose a new one. The link expires in 24 hours.\r\n\r\n%s\r\n\r\n"+
			"If you did not request this, you can ignore this email.\r\n",
		resetURL,
	)
	return m.Send(to, "Reset your Resonance password", body)
}
