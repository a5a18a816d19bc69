package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"clinic-backend/config"
)

// Mailer sends transactional mail. Delivery is best effort; the caller
// decides whether a send failure aborts the operation.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

var resetTemplate = template.Must(template.New("password_reset").Parse(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Reset your password</title></head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Reset your password</h2>
	<p>We received a request to reset the password of your account.</p>
	<p><a href="{{.ResetURL}}">Click here to choose a new password</a></p>
	<p>If you did not request this, you can safely ignore this email.</p>
	<p>The link expires after a short time.</p>
</body>
</html>
`))

type smtpMailer struct {
	config config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{config: cfg}
}

func (m *smtpMailer) SendPasswordReset(to, resetURL string) error {
	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, struct{ ResetURL string }{ResetURL: resetURL}); err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	msg := strings.Join([]string{
		"From: " + m.config.From,
		"To: " + to,
		"Subject: Reset your password",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body.String(),
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}
