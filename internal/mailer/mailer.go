package mailer

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"

	"attendfy-backend/config"
	"attendfy-backend/internal/model"
)

// Mailer sends account mails. A nil Mailer is valid and sends nothing,
// so handlers can call it unconditionally.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New returns nil when no SMTP host is configured.
func New(cfg config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

// SendWelcome mails the new account holder. Best effort: failures are
// logged, never surfaced to the registration request.
func (m *Mailer) SendWelcome(user *model.User) {
	if m == nil {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", "Welcome to Attendfy")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour attendance account (%s) has been created. You can now log in and check in.\n",
		user.FirstName, user.EmployeeID))

	go func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Printf("mailer: welcome mail to %s failed: %v", user.Email, err)
		}
	}()
}
