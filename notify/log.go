package notify

import (
	"context"
	"log"

	"pims/application"
)

// LogSender writes notifications to the process log instead of sending mail.
// Used when no SMTP relay is configured.
type LogSender struct{}

func (LogSender) StatusChanged(ctx context.Context, n application.StatusNotification) error {
	log.Printf("notify: %s -> %s (%s, %s)", n.Status, n.Email, n.FullName, n.JobTitle)
	return nil
}
