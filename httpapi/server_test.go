package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pims/admin"
	"pims/application"
	"pims/auth"
	"pims/job"
	"pims/student"
)

var testSecret = []byte("test-secret")

func newTestServer(t *testing.T, s *Server) *httptest.Server {
	t.Helper()
	if s.authService == nil {
		s.authService = &stubAuthService{}
	}
	app := httptest.NewServer(s.Router())
	t.Cleanup(app.Close)
	return app
}

func mustToken(t *testing.T, role auth.Role) string {
	t.Helper()
	token, err := auth.NewToken(testSecret, "user-1", role, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func doReq(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestMissingAuthorizationHeader(t *testing.T) {
	app := newTestServer(t, &Server{jobService: &stubJobService{}})

	resp := doReq(t, http.MethodGet, app.URL+"/api/jobs", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMalformedToken(t *testing.T) {
	app := newTestServer(t, &Server{jobService: &stubJobService{}})

	resp := doReq(t, http.MethodGet, app.URL+"/api/jobs", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestExpiredToken(t *testing.T) {
	app := newTestServer(t, &Server{jobService: &stubJobService{}})

	expired, err := auth.NewToken(testSecret, "user-1", auth.RoleStudent, -time.Second)
	if err != nil {
		t.Fatalf("mint expired token: %v", err)
	}
	resp := doReq(t, http.MethodGet, app.URL+"/api/jobs", expired, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d", resp.StatusCode)
	}
}

func TestRoleIsolation(t *testing.T) {
	app := newTestServer(t, &Server{
		studentService:     &stubStudentService{},
		jobService:         &stubJobService{},
		applicationService: &stubApplicationService{},
		adminService:       &stubAdminService{},
	})

	endpoints := []struct {
		method string
		path   string
		body   any
		role   auth.Role
	}{
		{http.MethodPost, "/api/jobs", map[string]string{"title": "Backend Intern"}, auth.RoleCompany},
		{http.MethodPut, "/api/jobs/status", map[string]string{"applicationId": "app-1", "status": "SELECTED"}, auth.RoleCompany},
		{http.MethodGet, "/api/jobs/job-1/applicants", nil, auth.RoleCompany},
		{http.MethodGet, "/api/student/profile", nil, auth.RoleStudent},
		{http.MethodPost, "/api/jobs/apply", map[string]string{"jobId": "job-1"}, auth.RoleStudent},
		{http.MethodGet, "/api/student/all", nil, auth.RoleAdmin},
		{http.MethodGet, "/api/admin/stats", nil, auth.RoleAdmin},
	}
	roles := []auth.Role{auth.RoleStudent, auth.RoleCompany, auth.RoleAdmin}

	for _, ep := range endpoints {
		for _, role := range roles {
			resp := doReq(t, ep.method, app.URL+ep.path, mustToken(t, role), ep.body)
			if role == ep.role {
				if resp.StatusCode == http.StatusForbidden {
					t.Fatalf("%s %s: matching role %s was forbidden", ep.method, ep.path, role)
				}
				continue
			}
			if resp.StatusCode != http.StatusForbidden {
				t.Fatalf("%s %s: role %s expected 403, got %d", ep.method, ep.path, role, resp.StatusCode)
			}
		}
	}
}

func TestHandleRegister_Duplicate(t *testing.T) {
	app := newTestServer(t, &Server{
		authService: &stubAuthService{registerErr: auth.ErrDuplicateUser},
	})

	resp := doReq(t, http.MethodPost, app.URL+"/api/auth/register", "", auth.RegisterRequest{
		Email:    "a@x.com",
		Password: "password1",
		Role:     "STUDENT",
		FullName: "A",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleRegister_Created(t *testing.T) {
	app := newTestServer(t, &Server{authService: &stubAuthService{}})

	resp := doReq(t, http.MethodPost, app.URL+"/api/auth/register", "", auth.RegisterRequest{
		Email:    "a@x.com",
		Password: "password1",
		Role:     "STUDENT",
		FullName: "A",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

func TestHandleLogin_GenericFailureMessage(t *testing.T) {
	app := newTestServer(t, &Server{
		authService: &stubAuthService{loginErr: auth.ErrInvalidCredentials},
	})

	resp := doReq(t, http.MethodPost, app.URL+"/api/auth/login", "", auth.LoginRequest{
		Email:    "nobody@x.com",
		Password: "wrong",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "invalid email or password" {
		t.Fatalf("login failure message must stay generic, got %q", body.Message)
	}
}

func TestHandleLogin_Success(t *testing.T) {
	app := newTestServer(t, &Server{
		authService: &stubAuthService{
			loginResult: auth.LoginResult{Token: "signed-token", Role: auth.RoleCompany},
		},
	})

	resp := doReq(t, http.MethodPost, app.URL+"/api/auth/login", "", auth.LoginRequest{
		Email:    "hr@initech.example",
		Password: "password1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["token"] != "signed-token" || body["role"] != "COMPANY" {
		t.Fatalf("unexpected login payload: %v", body)
	}
}

func TestHandleStudentProfile_NotFound(t *testing.T) {
	app := newTestServer(t, &Server{
		studentService: &stubStudentService{err: student.ErrNotFound},
	})

	resp := doReq(t, http.MethodGet, app.URL+"/api/student/profile", mustToken(t, auth.RoleStudent), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleVerifyStudent(t *testing.T) {
	stub := &stubStudentService{}
	app := newTestServer(t, &Server{studentService: stub})

	resp := doReq(t, http.MethodPut, app.URL+"/api/student/verify/student-1", mustToken(t, auth.RoleAdmin),
		map[string]bool{"isVerified": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if stub.verifiedID != "student-1" || !stub.verifiedValue {
		t.Fatalf("expected SetVerified(student-1, true), got (%s, %v)", stub.verifiedID, stub.verifiedValue)
	}
}

func TestHandleApply_Duplicate(t *testing.T) {
	app := newTestServer(t, &Server{
		applicationService: &stubApplicationService{applyErr: application.ErrAlreadyApplied},
	})

	resp := doReq(t, http.MethodPost, app.URL+"/api/jobs/apply", mustToken(t, auth.RoleStudent),
		map[string]string{"jobId": "job-1"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleUpdateStatus_UnknownApplication(t *testing.T) {
	app := newTestServer(t, &Server{
		applicationService: &stubApplicationService{updateErr: application.ErrNotFound},
	})

	resp := doReq(t, http.MethodPut, app.URL+"/api/jobs/status", mustToken(t, auth.RoleCompany),
		map[string]string{"applicationId": "missing", "status": "SELECTED"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleStats(t *testing.T) {
	app := newTestServer(t, &Server{
		adminService: &stubAdminService{
			stats: admin.DashboardStats{Jobs: 2, Students: 7, Placements: 1},
		},
	})

	resp := doReq(t, http.MethodGet, app.URL+"/api/admin/stats", mustToken(t, auth.RoleAdmin), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var stats admin.DashboardStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Jobs != 2 || stats.Students != 7 || stats.Placements != 1 {
		t.Fatalf("unexpected stats payload: %+v", stats)
	}
}

// Stubs

type stubAuthService struct {
	registerUser *auth.User
	registerErr  error
	loginResult  auth.LoginResult
	loginErr     error
}

func (s *stubAuthService) Register(_ context.Context, _ auth.RegisterRequest) (*auth.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, _ auth.LoginRequest) (auth.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) VerifyToken(token string) (string, auth.Role, error) {
	claims, err := auth.ParseToken(testSecret, token)
	if err != nil {
		return "", "", err
	}
	return claims.Subject, claims.Role, nil
}

type stubStudentService struct {
	profile       student.Profile
	profiles      []student.Profile
	err           error
	verifiedID    string
	verifiedValue bool
}

func (s *stubStudentService) Profile(_ context.Context, _ string) (student.Profile, error) {
	return s.profile, s.err
}

func (s *stubStudentService) UpdateProfile(_ context.Context, _ string, _ student.UpdateProfileParams) error {
	return s.err
}

func (s *stubStudentService) ListAll(_ context.Context) ([]student.Profile, error) {
	return s.profiles, s.err
}

func (s *stubStudentService) SetVerified(_ context.Context, studentID string, verified bool) (student.Profile, error) {
	if s.err != nil {
		return student.Profile{}, s.err
	}
	s.verifiedID = studentID
	s.verifiedValue = verified
	return s.profile, nil
}

type stubJobService struct {
	posting  job.Posting
	postings []job.Posting
	err      error
}

func (s *stubJobService) Create(_ context.Context, _ string, _ job.CreatePostingParams) (job.Posting, error) {
	return s.posting, s.err
}

func (s *stubJobService) List(_ context.Context) ([]job.Posting, error) {
	return s.postings, s.err
}

type stubApplicationService struct {
	app        application.Application
	applicants []application.Applicant
	applyErr   error
	updateErr  error
}

func (s *stubApplicationService) Apply(_ context.Context, _, _ string) (application.Application, error) {
	return s.app, s.applyErr
}

func (s *stubApplicationService) ApplicantsForJob(_ context.Context, _ string) ([]application.Applicant, error) {
	return s.applicants, nil
}

func (s *stubApplicationService) UpdateStatus(_ context.Context, _, _ string) error {
	return s.updateErr
}

type stubAdminService struct {
	stats admin.DashboardStats
	err   error
}

func (s *stubAdminService) Dashboard(_ context.Context) (admin.DashboardStats, error) {
	return s.stats, s.err
}
