package admin

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// ActivityEntry is one line of the dashboard's recent-activity feed.
type ActivityEntry struct {
	Event     string    `json:"event"`
	Name      string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// DashboardStats aggregates the numbers shown on the admin dashboard.
type DashboardStats struct {
	Jobs       int             `json:"jobs"`
	Students   int             `json:"students"`
	Placements int             `json:"placements"`
	Activity   []ActivityEntry `json:"activity"`
}

// StatsStore abstracts the aggregate queries behind the dashboard.
type StatsStore interface {
	CountJobs(ctx context.Context) (int, error)
	CountStudents(ctx context.Context) (int, error)
	CountPlacements(ctx context.Context) (int, error)
	RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error)
}

// Service exposes the admin dashboard aggregates.
type Service struct {
	repo StatsStore
}

// NewService builds a Service using the provided repository.
func NewService(repo StatsStore) *Service {
	return &Service{repo: repo}
}

// Dashboard runs the four aggregate queries concurrently and assembles the
// dashboard payload. Any single failure cancels the rest.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.CountJobs(ctx)
		stats.Jobs = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountStudents(ctx)
		stats.Students = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountPlacements(ctx)
		stats.Placements = n
		return err
	})
	g.Go(func() error {
		activity, err := s.repo.RecentActivity(ctx, 5)
		stats.Activity = activity
		return err
	})

	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}
