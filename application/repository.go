package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool  *pgxpool.Pool
	idGen func() string
}

// NewRepository creates a PostgreSQL-backed application repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{
		pool:  pool,
		idGen: func() string { return uuid.NewString() },
	}
}

// StudentIDForUser resolves the student profile id owned by a user.
func (r *PGRepository) StudentIDForUser(ctx context.Context, userID string) (string, error) {
	var studentID string
	err := r.pool.QueryRow(ctx, `SELECT id FROM students WHERE user_id = $1`, userID).Scan(&studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoStudentProfile
		}
		return "", fmt.Errorf("application: resolve student: %w", err)
	}
	return studentID, nil
}

// Insert records a new application. The unique (job_id, student_id)
// constraint decides duplicate races regardless of interleaving.
func (r *PGRepository) Insert(ctx context.Context, jobID, studentID string) (Application, error) {
	const insertSQL = `
		INSERT INTO applications (id, job_id, student_id)
		VALUES ($1, $2, $3)
		RETURNING id, job_id, student_id, status, applied_at
	`

	var app Application
	err := r.pool.QueryRow(ctx, insertSQL, r.idGen(), jobID, studentID).Scan(
		&app.ID, &app.JobID, &app.StudentID, &app.Status, &app.AppliedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Application{}, ErrAlreadyApplied
		}
		return Application{}, fmt.Errorf("application: insert: %w", err)
	}
	return app, nil
}

// ApplicantsForJob joins applications with the student profiles behind them.
func (r *PGRepository) ApplicantsForJob(ctx context.Context, jobID string) ([]Applicant, error) {
	const query = `
		SELECT a.id, s.full_name, s.cgpa, s.skills, s.resume_url, a.status
		FROM applications a
		JOIN students s ON a.student_id = s.id
		WHERE a.job_id = $1
	`

	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("application: list applicants: %w", err)
	}
	defer rows.Close()

	var applicants []Applicant
	for rows.Next() {
		var a Applicant
		if err := rows.Scan(&a.ApplicationID, &a.FullName, &a.CGPA, &a.Skills, &a.ResumeURL, &a.Status); err != nil {
			return nil, fmt.Errorf("application: scan applicant: %w", err)
		}
		applicants = append(applicants, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("application: list applicants: %w", err)
	}
	return applicants, nil
}

// UpdateStatus moves an application to the given status and returns the ids
// needed to build the student notification.
func (r *PGRepository) UpdateStatus(ctx context.Context, applicationID string, status Status) (string, string, error) {
	const updateSQL = `
		UPDATE applications SET status = $1
		WHERE id = $2
		RETURNING student_id, job_id
	`

	var studentID, jobID string
	err := r.pool.QueryRow(ctx, updateSQL, status, applicationID).Scan(&studentID, &jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("application: update status: %w", err)
	}
	return studentID, jobID, nil
}

// NotificationDetails fetches the student's email and name plus the job title.
func (r *PGRepository) NotificationDetails(ctx context.Context, jobID, studentID string) (StatusNotification, error) {
	const query = `
		SELECT u.email, s.full_name, j.title
		FROM students s
		JOIN users u ON s.user_id = u.id
		JOIN jobs j ON j.id = $1
		WHERE s.id = $2
	`

	var n StatusNotification
	err := r.pool.QueryRow(ctx, query, jobID, studentID).Scan(&n.Email, &n.FullName, &n.JobTitle)
	if err != nil {
		return StatusNotification{}, fmt.Errorf("application: notification details: %w", err)
	}
	return n, nil
}
