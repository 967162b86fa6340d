package services

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"taskmanager/internal/models"
)

// Notifier tells a user about a task assigned to them. Implementations
// must be safe to skip: callers treat a failure as log-and-continue.
type Notifier interface {
	NotifyAssigned(executor *models.User, task *models.Task) error
}

type emailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailNotifier wires SMTP delivery for assignment notifications.
// Returns nil when no SMTP host is configured, which disables mail.
func NewEmailNotifier(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) Notifier {
	if smtpHost == "" {
		return nil
	}
	return &emailNotifier{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (n *emailNotifier) NotifyAssigned(executor *models.User, task *models.Task) error {
	if executor.Email == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", executor.Email)
	m.SetHeader("Subject", fmt.Sprintf("Task assigned to you: %s", task.Name))

	body := fmt.Sprintf(`
		<h3>Hi %s,</h3>
		<p>The task <strong>%s</strong> has been assigned to you.</p>
		<p>Status: %s</p>
		<p>Open the task manager to see the details.</p>
	`, html.EscapeString(executor.FirstName),
		html.EscapeString(task.Name),
		html.EscapeString(task.StatusName))

	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send assignment email: %w", err)
	}
	return nil
}
