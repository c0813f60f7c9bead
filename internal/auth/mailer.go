package auth

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Ssnnee/theo-afrique-website/config"
)

// Mailer delivers magic-link sign-in emails.
type Mailer interface {
	SendLoginLink(email, link string) error
}

// SmtpMailer sends mail through the configured SMTP relay.
type SmtpMailer struct {
	cfg config.SmtpConfig
}

func NewSmtpMailer(cfg config.SmtpConfig) *SmtpMailer {
	return &SmtpMailer{cfg: cfg}
}

func (m *SmtpMailer) SendLoginLink(email, link string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Connexion à Théo Afrique")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Bonjour,</p><p>Cliquez sur ce lien pour vous connecter :</p><p><a href="%s">%s</a></p><p>Ce lien expire dans 24 heures.</p>`,
		link, link))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}
