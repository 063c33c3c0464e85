package mail

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/novuscrm/novus-api/internal/application/comms"
	"github.com/novuscrm/novus-api/pkg/config"
)

var _ comms.EmailSender = (*SMTPSender)(nil)

// SMTPSender envía correo transaccional vía SMTP (gomail). Implementa el
// puerto comms.EmailSender. El message-id se genera localmente porque SMTP
// no devuelve identificador del proveedor.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender construye el sender con la configuración SMTP.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send envía un correo HTML y devuelve el message-id asignado.
func (s *SMTPSender) Send(to, subject, bodyHTML string) (string, error) {
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.Host)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-Id", messageID)
	m.SetBody("text/html", bodyHTML)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return "", fmt.Errorf("enviar email SMTP: %w", err)
	}
	return messageID, nil
}
