package job

import (
	"context"
	"errors"
	"strings"
)

// ErrMissingTitle signals a posting without a title.
var ErrMissingTitle = errors.New("job: title is required")

// PostingStore abstracts repository operations for the service.
type PostingStore interface {
	Create(ctx context.Context, postedBy string, params CreatePostingParams) (Posting, error)
	List(ctx context.Context) ([]Posting, error)
}

// Service exposes business-level job-posting operations.
type Service struct {
	repo PostingStore
}

// NewService builds a Service using the provided repository.
func NewService(repo PostingStore) *Service {
	return &Service{repo: repo}
}

// Create publishes a new posting owned by the given company user.
func (s *Service) Create(ctx context.Context, postedBy string, params CreatePostingParams) (Posting, error) {
	if strings.TrimSpace(params.Title) == "" {
		return Posting{}, ErrMissingTitle
	}
	return s.repo.Create(ctx, postedBy, params)
}

// List returns all postings, newest first, with the poster's company profile
// joined in.
func (s *Service) List(ctx context.Context) ([]Posting, error) {
	return s.repo.List(ctx)
}
