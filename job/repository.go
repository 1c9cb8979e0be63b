package job

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository implements PostingStore backed by PostgreSQL.
type PGRepository struct {
	pool  *pgxpool.Pool
	idGen func() string
}

// NewRepository creates a PostgreSQL-backed posting repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{
		pool:  pool,
		idGen: func() string { return uuid.NewString() },
	}
}

// Create inserts a posting row owned by postedBy.
func (r *PGRepository) Create(ctx context.Context, postedBy string, params CreatePostingParams) (Posting, error) {
	const insertSQL = `
		INSERT INTO jobs (id, title, company_name, description, min_cgpa, salary_package, deadline, posted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, title, company_name, description, min_cgpa, salary_package, deadline, posted_by, created_at
	`

	var p Posting
	err := r.pool.QueryRow(ctx, insertSQL,
		r.idGen(), params.Title, params.CompanyName, params.Description,
		params.MinCGPA, params.SalaryPackage, params.Deadline, postedBy,
	).Scan(
		&p.ID, &p.Title, &p.CompanyName, &p.Description,
		&p.MinCGPA, &p.SalaryPackage, &p.Deadline, &p.PostedBy, &p.CreatedAt,
	)
	if err != nil {
		return Posting{}, fmt.Errorf("job: create posting: %w", err)
	}
	return p, nil
}

// List returns all postings joined with the poster's company profile,
// newest first.
func (r *PGRepository) List(ctx context.Context) ([]Posting, error) {
	const query = `
		SELECT j.id, j.title, j.company_name, j.description, j.min_cgpa,
		       j.salary_package, j.deadline, j.posted_by, j.created_at,
		       c.location, c.website
		FROM jobs j
		LEFT JOIN companies c ON j.posted_by = c.user_id
		ORDER BY j.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("job: list postings: %w", err)
	}
	defer rows.Close()

	var postings []Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("job: scan posting: %w", err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("job: list postings: %w", err)
	}
	return postings, nil
}

func scanPosting(row pgx.Row) (Posting, error) {
	var p Posting
	err := row.Scan(
		&p.ID, &p.Title, &p.CompanyName, &p.Description,
		&p.MinCGPA, &p.SalaryPackage, &p.Deadline, &p.PostedBy, &p.CreatedAt,
		&p.Location, &p.Website,
	)
	if err != nil {
		return Posting{}, err
	}
	return p, nil
}
