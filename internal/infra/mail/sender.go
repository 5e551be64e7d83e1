package mail

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     "no-reply@claritycrm.io",
	}
}

// SendMeetingReminder mails the contact when a meeting lands on the
// calendar. Best-effort by contract: callers log and move on when this
// fails.
func (s *EmailSender) SendMeetingReminder(to, title string, start time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Upcoming: %s", title))
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Hi,</p><p>A meeting has been scheduled with you:</p><p><strong>%s</strong><br>%s</p>",
		title,
		start.Format("Monday, 2 January 2006 at 15:04"),
	))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder via SMTP: %w", err)
	}

	return nil
}
