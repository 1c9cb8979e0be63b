package application

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusApplied  Status = "APPLIED"
	StatusSelected Status = "SELECTED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus validates caller-supplied status values against the closed set.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	switch status {
	case StatusApplied, StatusSelected, StatusRejected:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
}

// Application links one student to one job posting. The (JobID, StudentID)
// pair is unique; reapplying surfaces ErrAlreadyApplied.
type Application struct {
	ID        string
	JobID     string
	StudentID string
	Status    Status
	AppliedAt time.Time
}

// Applicant is the company-facing view of an application joined with the
// student profile behind it.
type Applicant struct {
	ApplicationID string
	FullName      string
	CGPA          *float64
	Skills        *string
	ResumeURL     *string
	Status        Status
}

// StatusNotification carries everything the notifier needs to tell a student
// about a decision on their application.
type StatusNotification struct {
	Email    string
	FullName string
	JobTitle string
	Status   Status
}
