package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrUserNotFound signals that the user does not exist.
	ErrUserNotFound = errors.New("auth: user not found")
	// ErrDuplicateUser signals that the email is already registered.
	ErrDuplicateUser = errors.New("auth: user already exists")
)

// Repository handles data access for authentication. The write methods run
// inside the caller's transaction so user and profile inserts commit or roll
// back together.
type Repository interface {
	CreateUser(ctx context.Context, tx pgx.Tx, params CreateUserParams) (User, error)
	CreateStudentProfile(ctx context.Context, tx pgx.Tx, userID, fullName string) error
	CreateCompanyProfile(ctx context.Context, tx pgx.Tx, userID, companyName, website string) error
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID string) (User, error)
}

// CreateUserParams contains write parameters for creating users.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         Role
}

// PGRepository implements Repository backed by PostgreSQL.
type PGRepository struct {
	pool  *pgxpool.Pool
	idGen func() string
}

// NewRepository creates a PostgreSQL-backed auth repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{
		pool:  pool,
		idGen: func() string { return uuid.NewString() },
	}
}

// CreateUser inserts a new user row inside tx.
func (r *PGRepository) CreateUser(ctx context.Context, tx pgx.Tx, params CreateUserParams) (User, error) {
	const insertSQL = `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, role, created_at
	`

	var user User
	err := tx.QueryRow(ctx, insertSQL, r.idGen(), params.Email, params.PasswordHash, params.Role).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrDuplicateUser
		}
		return User{}, fmt.Errorf("auth: create user: %w", err)
	}

	return user, nil
}

// CreateStudentProfile inserts the student row owned by userID inside tx.
func (r *PGRepository) CreateStudentProfile(ctx context.Context, tx pgx.Tx, userID, fullName string) error {
	const insertSQL = `INSERT INTO students (id, user_id, full_name) VALUES ($1, $2, $3)`

	if _, err := tx.Exec(ctx, insertSQL, r.idGen(), userID, fullName); err != nil {
		return fmt.Errorf("auth: create student profile: %w", err)
	}
	return nil
}

// CreateCompanyProfile inserts the company row owned by userID inside tx.
func (r *PGRepository) CreateCompanyProfile(ctx context.Context, tx pgx.Tx, userID, companyName, website string) error {
	const insertSQL = `INSERT INTO companies (id, user_id, company_name, website) VALUES ($1, $2, $3, $4)`

	if _, err := tx.Exec(ctx, insertSQL, r.idGen(), userID, companyName, website); err != nil {
		return fmt.Errorf("auth: create company profile: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email address.
func (r *PGRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const selectSQL = `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`

	return r.getUser(ctx, selectSQL, email)
}

// GetUserByID retrieves a user by ID.
func (r *PGRepository) GetUserByID(ctx context.Context, userID string) (User, error) {
	const selectSQL = `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`

	return r.getUser(ctx, selectSQL, userID)
}

func (r *PGRepository) getUser(ctx context.Context, query, arg string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("auth: get user: %w", err)
	}
	return user, nil
}
