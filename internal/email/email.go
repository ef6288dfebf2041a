// Package email sends the account-lifecycle emails (confirmation codes and
// password-reset codes) over SMTP.
package email

import (
	"fmt"
	"net/smtp"

	"cashtrackr/internal/config"
)

// Sender delivers account-lifecycle emails. Services depend on this
// interface so tests can capture the generated codes with a spy instead of
// reaching for global state.
type Sender interface {
	SendConfirmationEmail(name, email, token string) error
	SendPasswordResetToken(name, email, token string) error
}

// SMTPSender sends mail through a plain SMTP relay.
type SMTPSender struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSMTPSender creates a Sender backed by the SMTP settings in cfg.
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.FromMail,
	}
}

// SendConfirmationEmail mails the 6-digit confirmation code to a newly
// registered user.
func (s *SMTPSender) SendConfirmationEmail(name, email, token string) error {
	body := fmt.Sprintf(`<p>Hola: %s, has creado tu cuenta en CashTrackr, ya esta casi lista</p>
<p>Visita el siguiente enlace:</p>
<a href="#">Confirmar cuenta</a>
<p>e ingresa el codigo <b>%s</b></p>`, name, token)

	return s.send(email, "CashTrackr - Confirma tu cuenta", body)
}

// SendPasswordResetToken mails the 6-digit password-reset code.
func (s *SMTPSender) SendPasswordResetToken(name, email, token string) error {
	body := fmt.Sprintf(`<p>Hola: %s, has solicitado reestablecer tu contraseña</p>
<p>Visita el siguiente enlace:</p>
<a href="#">Reestablecer Contraseña</a>
<p>e ingresa el codigo <b>%s</b></p>`, name, token)

	return s.send(email, "CashTrackr - Restablece tu password", body)
}

func (s *SMTPSender) send(to, subject, htmlBody string) error {
	msg := fmt.Sprintf("From: CashTrackr <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.from, to, subject, htmlBody)

	addr := s.host + ":" + s.port
	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
