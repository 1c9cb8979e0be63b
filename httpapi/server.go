// Package httpapi exposes the REST surface: credential endpoints, the
// bearer-token middleware chain, and the role-guarded placement routes.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pims/admin"
	"pims/application"
	"pims/auth"
	"pims/job"
	"pims/student"
)

// AuthService is the slice of auth.Service the handlers consume.
type AuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.User, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResult, error)
	VerifyToken(token string) (string, auth.Role, error)
}

// StudentService is the slice of student.Service the handlers consume.
type StudentService interface {
	Profile(ctx context.Context, userID string) (student.Profile, error)
	UpdateProfile(ctx context.Context, userID string, params student.UpdateProfileParams) error
	ListAll(ctx context.Context) ([]student.Profile, error)
	SetVerified(ctx context.Context, studentID string, verified bool) (student.Profile, error)
}

// JobService is the slice of job.Service the handlers consume.
type JobService interface {
	Create(ctx context.Context, postedBy string, params job.CreatePostingParams) (job.Posting, error)
	List(ctx context.Context) ([]job.Posting, error)
}

// ApplicationService is the slice of application.Service the handlers consume.
type ApplicationService interface {
	Apply(ctx context.Context, userID, jobID string) (application.Application, error)
	ApplicantsForJob(ctx context.Context, jobID string) ([]application.Applicant, error)
	UpdateStatus(ctx context.Context, applicationID, status string) error
}

// AdminService is the slice of admin.Service the handlers consume.
type AdminService interface {
	Dashboard(ctx context.Context) (admin.DashboardStats, error)
}

// Server binds the services to the REST routes.
type Server struct {
	authService        AuthService
	studentService     StudentService
	jobService         JobService
	applicationService ApplicationService
	adminService       AdminService
	corsOrigins        []string
}

// NewServer wires the services into a Server.
func NewServer(
	authService AuthService,
	studentService StudentService,
	jobService JobService,
	applicationService ApplicationService,
	adminService AdminService,
	corsOrigins []string,
) *Server {
	return &Server{
		authService:        authService,
		studentService:     studentService,
		jobService:         jobService,
		applicationService: applicationService,
		adminService:       adminService,
		corsOrigins:        corsOrigins,
	}
}

// Router assembles the route table. Each protected route declares zero or one
// required role via requireRole.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware(s.corsOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/jobs", s.handleListJobs)
			r.With(s.requireRole(auth.RoleCompany)).Post("/jobs", s.handleCreateJob)
			r.With(s.requireRole(auth.RoleStudent)).Post("/jobs/apply", s.handleApply)
			r.With(s.requireRole(auth.RoleCompany)).Get("/jobs/{jobID}/applicants", s.handleJobApplicants)
			r.With(s.requireRole(auth.RoleCompany)).Put("/jobs/status", s.handleUpdateStatus)

			r.With(s.requireRole(auth.RoleStudent)).Get("/student/profile", s.handleStudentProfile)
			r.With(s.requireRole(auth.RoleStudent)).Put("/student/profile", s.handleUpdateStudentProfile)
			r.With(s.requireRole(auth.RoleAdmin)).Get("/student/all", s.handleListStudents)
			r.With(s.requireRole(auth.RoleAdmin)).Put("/student/verify/{studentID}", s.handleVerifyStudent)

			r.With(s.requireRole(auth.RoleAdmin)).Get("/admin/stats", s.handleStats)
		})
	})

	return r
}
