package application

import (
	"context"
	"errors"
	"log"
)

var (
	// ErrNotFound signals an unknown application id.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyApplied signals a second application to the same job.
	ErrAlreadyApplied = errors.New("application: already applied")
	// ErrNoStudentProfile signals a user without a student profile row.
	ErrNoStudentProfile = errors.New("application: student profile not found")
	// ErrInvalidStatus signals a status outside APPLIED/SELECTED/REJECTED.
	ErrInvalidStatus = errors.New("application: invalid status")
)

// Repository defines the data access required by the service.
type Repository interface {
	StudentIDForUser(ctx context.Context, userID string) (string, error)
	Insert(ctx context.Context, jobID, studentID string) (Application, error)
	ApplicantsForJob(ctx context.Context, jobID string) ([]Applicant, error)
	UpdateStatus(ctx context.Context, applicationID string, status Status) (studentID, jobID string, err error)
	NotificationDetails(ctx context.Context, jobID, studentID string) (StatusNotification, error)
}

// Notifier delivers status-change notifications to students. Delivery is best
// effort; failures are logged and never block the status update.
type Notifier interface {
	StatusChanged(ctx context.Context, n StatusNotification) error
}

// Service exposes business-level application operations.
type Service struct {
	repo     Repository
	notifier Notifier
}

// NewService builds a Service. notifier may be nil, in which case status
// updates happen silently.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Apply records an application from the given user to the given job.
func (s *Service) Apply(ctx context.Context, userID, jobID string) (Application, error) {
	studentID, err := s.repo.StudentIDForUser(ctx, userID)
	if err != nil {
		return Application{}, err
	}
	return s.repo.Insert(ctx, jobID, studentID)
}

// ApplicantsForJob returns the company-facing applicant list for a posting.
func (s *Service) ApplicantsForJob(ctx context.Context, jobID string) ([]Applicant, error) {
	return s.repo.ApplicantsForJob(ctx, jobID)
}

// UpdateStatus moves an application to the given status. SELECTED and
// REJECTED trigger a notification to the student; the update itself succeeds
// even when delivery fails.
func (s *Service) UpdateStatus(ctx context.Context, applicationID string, status string) error {
	parsed, err := ParseStatus(status)
	if err != nil {
		return err
	}

	studentID, jobID, err := s.repo.UpdateStatus(ctx, applicationID, parsed)
	if err != nil {
		return err
	}

	if s.notifier == nil || (parsed != StatusSelected && parsed != StatusRejected) {
		return nil
	}

	details, err := s.repo.NotificationDetails(ctx, jobID, studentID)
	if err != nil {
		log.Printf("application: notification details for %s: %v", applicationID, err)
		return nil
	}
	details.Status = parsed
	if err := s.notifier.StatusChanged(ctx, details); err != nil {
		log.Printf("application: notify %s: %v", details.Email, err)
	}
	return nil
}
