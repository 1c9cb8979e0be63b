package student

import "context"

// ProfileStore abstracts repository operations for the service.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Update(ctx context.Context, userID string, params UpdateProfileParams) error
	ListAll(ctx context.Context) ([]Profile, error)
	SetVerified(ctx context.Context, studentID string, verified bool) (Profile, error)
}

// Service exposes business-level student-profile operations.
type Service struct {
	repo ProfileStore
}

// NewService builds a Service using the provided repository.
func NewService(repo ProfileStore) *Service {
	return &Service{repo: repo}
}

// Profile returns the profile owned by the given user.
func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// UpdateProfile overwrites the student-editable fields of the caller's profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) error {
	return s.repo.Update(ctx, userID, params)
}

// ListAll returns every student profile, newest first. Admin view.
func (s *Service) ListAll(ctx context.Context) ([]Profile, error) {
	return s.repo.ListAll(ctx)
}

// SetVerified toggles the verification flag on a student profile. Admin only.
func (s *Service) SetVerified(ctx context.Context, studentID string, verified bool) (Profile, error) {
	return s.repo.SetVerified(ctx, studentID, verified)
}
