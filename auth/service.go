package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials signals wrong email or password. Unknown email and
	// bad password are deliberately indistinguishable to callers so login
	// failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrInvalidRole signals a role outside the closed STUDENT/COMPANY/ADMIN set.
	ErrInvalidRole = errors.New("auth: invalid role")
	// ErrMissingField signals a required registration field left empty.
	ErrMissingField = errors.New("auth: missing required field")
)

// TxBeginner abstracts pgxpool.Pool so registration can be tested without a
// live database.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Service handles authentication business logic: registration, login, and
// session-token issuance/verification.
type Service struct {
	pool     TxBeginner
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates an authentication service. tokenTTL bounds the validity
// window of every issued session token.
func NewService(pool TxBeginner, repo Repository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		pool:     pool,
		repo:     repo,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
	}
}

// Register creates a new account and its role profile in a single
// transaction, so a failed profile insert can never leave an orphan user
// behind. No token is returned; the caller logs in separately.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email", ErrMissingField)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password", ErrMissingField)
	}

	role, err := ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	switch role {
	case RoleStudent:
		if strings.TrimSpace(req.FullName) == "" {
			return nil, fmt.Errorf("%w: fullName", ErrMissingField)
		}
	case RoleCompany:
		if strings.TrimSpace(req.CompanyName) == "" {
			return nil, fmt.Errorf("%w: companyName", ErrMissingField)
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	user, err := s.repo.CreateUser(ctx, tx, CreateUserParams{
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	switch role {
	case RoleStudent:
		err = s.repo.CreateStudentProfile(ctx, tx, user.ID, strings.TrimSpace(req.FullName))
	case RoleCompany:
		err = s.repo.CreateCompanyProfile(ctx, tx, user.ID, strings.TrimSpace(req.CompanyName), strings.TrimSpace(req.Website))
	case RoleAdmin:
		// Admins carry no profile row.
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("auth: commit tx: %w", err)
	}

	return &user, nil
}

// Login authenticates a user and mints a session token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := NewToken(s.secret, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: generate token: %w", err)
	}

	return LoginResult{Token: token, Role: user.Role}, nil
}

// VerifyToken validates a session token and returns the user id and role it
// carries.
func (s *Service) VerifyToken(tokenString string) (string, Role, error) {
	claims, err := ParseToken(s.secret, tokenString)
	if err != nil {
		return "", "", err
	}
	return claims.Subject, claims.Role, nil
}
