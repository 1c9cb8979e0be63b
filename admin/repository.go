package admin

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository implements StatsStore backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed stats repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CountJobs returns the total number of postings.
func (r *PGRepository) CountJobs(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM jobs`)
}

// CountStudents returns the total number of student profiles.
func (r *PGRepository) CountStudents(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM students`)
}

// CountPlacements returns the number of applications marked SELECTED.
func (r *PGRepository) CountPlacements(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications WHERE status = 'SELECTED'`)
}

// RecentActivity interleaves the latest postings and student signups into a
// single feed, newest first.
func (r *PGRepository) RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	const query = `
		SELECT * FROM (
			(SELECT 'New Job Posted' AS event, company_name AS user_name, created_at, 'Success' AS status
			 FROM jobs ORDER BY created_at DESC LIMIT 3)
			UNION ALL
			(SELECT 'New Student' AS event, s.full_name AS user_name, u.created_at, 'Verified' AS status
			 FROM students s
			 JOIN users u ON s.user_id = u.id
			 ORDER BY u.created_at DESC LIMIT 3)
		) AS activity_log
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("admin: recent activity: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.Event, &e.Name, &e.CreatedAt, &e.Status); err != nil {
			return nil, fmt.Errorf("admin: scan activity: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin: recent activity: %w", err)
	}
	return entries, nil
}

func (r *PGRepository) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("admin: count: %w", err)
	}
	return n, nil
}
