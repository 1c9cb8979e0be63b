package student

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals that no student profile matched the lookup.
var ErrNotFound = errors.New("student: profile not found")

const profileColumns = `id, user_id, full_name, roll_number, cgpa, skills, resume_url, is_verified, created_at`

// PGRepository implements ProfileStore backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a PostgreSQL-backed student repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// GetByUserID retrieves the profile owned by the given user.
func (r *PGRepository) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE user_id = $1`, profileColumns)

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("student: get profile: %w", err)
	}
	return profile, nil
}

// Update overwrites the student-editable profile fields.
func (r *PGRepository) Update(ctx context.Context, userID string, params UpdateProfileParams) error {
	const updateSQL = `
		UPDATE students
		SET resume_url = $1, roll_number = $2, cgpa = $3, skills = $4
		WHERE user_id = $5
	`

	tag, err := r.pool.Exec(ctx, updateSQL, params.ResumeURL, params.RollNumber, params.CGPA, params.Skills, userID)
	if err != nil {
		return fmt.Errorf("student: update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every student profile, newest first.
func (r *PGRepository) ListAll(ctx context.Context) ([]Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM students ORDER BY created_at DESC`, profileColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("student: list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("student: scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("student: list profiles: %w", err)
	}
	return profiles, nil
}

// SetVerified flips the verification flag and returns the updated profile.
func (r *PGRepository) SetVerified(ctx context.Context, studentID string, verified bool) (Profile, error) {
	query := fmt.Sprintf(`
		UPDATE students SET is_verified = $1
		WHERE id = $2
		RETURNING %s
	`, profileColumns)

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, verified, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("student: set verified: %w", err)
	}
	return profile, nil
}

func scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.RollNumber,
		&p.CGPA,
		&p.Skills,
		&p.ResumeURL,
		&p.Verified,
		&p.CreatedAt,
	)
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}
