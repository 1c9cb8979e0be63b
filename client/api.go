package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pims/admin"
	"pims/auth"
	"pims/job"
	"pims/student"
)

var (
	// ErrUnauthorized maps a 401: no usable credential was presented. There is
	// no automatic logout on this error; callers decide how to react.
	ErrUnauthorized = errors.New("client: unauthorized")
	// ErrForbidden maps a 403: the credential was rejected or the role does
	// not grant access.
	ErrForbidden = errors.New("client: forbidden")
)

// APIError carries a non-2xx response the server described with a message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: server returned %d: %s", e.Status, e.Message)
}

// Job is the wire shape of a posting as listed by the server.
type Job struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	CompanyName   string  `json:"company_name"`
	Description   string  `json:"description"`
	MinCGPA       float64 `json:"min_cgpa"`
	SalaryPackage string  `json:"salary_package"`
	Deadline      *string `json:"deadline"`
	Location      *string `json:"location"`
	Website       *string `json:"website"`
}

// Student is the wire shape of a student profile.
type Student struct {
	ID         string   `json:"id"`
	FullName   string   `json:"full_name"`
	RollNumber *string  `json:"roll_number"`
	CGPA       *float64 `json:"cgpa"`
	Skills     *string  `json:"skills"`
	ResumeURL  *string  `json:"resume_url"`
	IsVerified bool     `json:"is_verified"`
}

// Applicant is the wire shape of one applicant row for a posting.
type Applicant struct {
	ApplicationID string   `json:"application_id"`
	FullName      string   `json:"full_name"`
	CGPA          *float64 `json:"cgpa"`
	Skills        *string  `json:"skills"`
	ResumeURL     *string  `json:"resume_url"`
	Status        string   `json:"status"`
}

// API is a typed client for the placement REST surface. All requests carry
// the stored bearer token via Transport.
type API struct {
	baseURL string
	store   SessionStore
	http    *http.Client
}

// New builds an API client rooted at baseURL using the given session store.
func New(baseURL string, store SessionStore) *API {
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http:    &http.Client{Transport: &Transport{Store: store}},
	}
}

// Register creates an account. The caller logs in separately afterwards.
func (a *API) Register(ctx context.Context, req auth.RegisterRequest) error {
	return a.do(ctx, http.MethodPost, "/api/auth/register", req, nil)
}

// Login authenticates and persists the returned session in the store.
func (a *API) Login(ctx context.Context, email, password string) (Session, error) {
	var resp struct {
		Token string    `json:"token"`
		Role  auth.Role `json:"role"`
	}
	err := a.do(ctx, http.MethodPost, "/api/auth/login", auth.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return Session{}, err
	}

	session := Session{Token: resp.Token, Role: resp.Role}
	if err := a.store.Save(session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Logout clears the persisted session. The token itself stays valid until
// expiry; there is no server-side revocation.
func (a *API) Logout() error {
	return a.store.Clear()
}

// Jobs lists all postings.
func (a *API) Jobs(ctx context.Context) ([]Job, error) {
	var resp struct {
		Items []Job `json:"items"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/jobs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// CreateJob publishes a posting. Company role required.
func (a *API) CreateJob(ctx context.Context, params job.CreatePostingParams) error {
	return a.do(ctx, http.MethodPost, "/api/jobs", params, nil)
}

// Apply submits an application to a posting. Student role required.
func (a *API) Apply(ctx context.Context, jobID string) error {
	return a.do(ctx, http.MethodPost, "/api/jobs/apply", map[string]string{"jobId": jobID}, nil)
}

// Applicants lists applicants for one of the caller's postings. Company role
// required.
func (a *API) Applicants(ctx context.Context, jobID string) ([]Applicant, error) {
	var resp struct {
		Items []Applicant `json:"items"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/jobs/"+jobID+"/applicants", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// UpdateApplicationStatus moves an application to SELECTED/REJECTED/APPLIED.
// Company role required.
func (a *API) UpdateApplicationStatus(ctx context.Context, applicationID, status string) error {
	body := map[string]string{"applicationId": applicationID, "status": status}
	return a.do(ctx, http.MethodPut, "/api/jobs/status", body, nil)
}

// StudentProfile fetches the caller's own profile. Student role required.
func (a *API) StudentProfile(ctx context.Context) (Student, error) {
	var profile Student
	if err := a.do(ctx, http.MethodGet, "/api/student/profile", nil, &profile); err != nil {
		return Student{}, err
	}
	return profile, nil
}

// UpdateStudentProfile overwrites the caller's editable profile fields.
// Student role required.
func (a *API) UpdateStudentProfile(ctx context.Context, params student.UpdateProfileParams) error {
	return a.do(ctx, http.MethodPut, "/api/student/profile", params, nil)
}

// AllStudents lists every student profile. Admin role required.
func (a *API) AllStudents(ctx context.Context) ([]Student, error) {
	var resp struct {
		Items []Student `json:"items"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/student/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// VerifyStudent toggles a student's verification flag. Admin role required.
func (a *API) VerifyStudent(ctx context.Context, studentID string, verified bool) error {
	body := map[string]bool{"isVerified": verified}
	return a.do(ctx, http.MethodPut, "/api/student/verify/"+studentID, body, nil)
}

// Stats fetches the admin dashboard aggregates. Admin role required.
func (a *API) Stats(ctx context.Context) (admin.DashboardStats, error) {
	var stats admin.DashboardStats
	if err := a.do(ctx, http.MethodGet, "/api/admin/stats", nil, &stats); err != nil {
		return admin.DashboardStats{}, err
	}
	return stats, nil
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
		return nil
	}

	var failure struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&failure)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, failure.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, failure.Message)
	default:
		return &APIError{Status: resp.StatusCode, Message: failure.Message}
	}
}
