// Package notify delivers application-status emails to students. The SMTP
// sender builds plain-text messages; delivery is best effort and callers are
// expected to log rather than propagate failures.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"pims/application"
)

// SMTPSender sends status notifications through a plain SMTP relay.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPSender configures a sender for the given relay. username may be
// empty for unauthenticated relays.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

// StatusChanged emails the student about the decision on their application.
func (s *SMTPSender) StatusChanged(ctx context.Context, n application.StatusNotification) error {
	subject := "Update on your application"
	if n.Status == application.StatusSelected {
		subject = "Congratulations! You are shortlisted"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", n.Email)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", n.FullName)
	fmt.Fprintf(&b, "Your application for the position of %s has been updated.\r\n", n.JobTitle)
	fmt.Fprintf(&b, "New status: %s\r\n\r\n", n.Status)
	b.WriteString("Please log in to your dashboard for details.\r\n\r\n")
	b.WriteString("Best regards,\r\nPlacement Cell\r\n")

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{n.Email}, []byte(b.String())); err != nil {
		return fmt.Errorf("notify: send to %s: %w", n.Email, err)
	}
	return nil
}
