package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pims/application"
	"pims/auth"
	"pims/job"
	"pims/student"
)

type studentResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	FullName   string   `json:"full_name"`
	RollNumber *string  `json:"roll_number"`
	CGPA       *float64 `json:"cgpa"`
	Skills     *string  `json:"skills"`
	ResumeURL  *string  `json:"resume_url"`
	IsVerified bool     `json:"is_verified"`
	CreatedAt  string   `json:"created_at"`
}

type jobResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	CompanyName   string  `json:"company_name"`
	Description   string  `json:"description"`
	MinCGPA       float64 `json:"min_cgpa"`
	SalaryPackage string  `json:"salary_package"`
	Deadline      *string `json:"deadline"`
	PostedBy      string  `json:"posted_by"`
	CreatedAt     string  `json:"created_at"`
	Location      *string `json:"location"`
	Website       *string `json:"website"`
}

type applicantResponse struct {
	ApplicationID string   `json:"application_id"`
	FullName      string   `json:"full_name"`
	CGPA          *float64 `json:"cgpa"`
	Skills        *string  `json:"skills"`
	ResumeURL     *string  `json:"resume_url"`
	Status        string   `json:"status"`
}

func toStudentResponse(p student.Profile) studentResponse {
	return studentResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		FullName:   p.FullName,
		RollNumber: p.RollNumber,
		CGPA:       p.CGPA,
		Skills:     p.Skills,
		ResumeURL:  p.ResumeURL,
		IsVerified: p.Verified,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}

func toJobResponse(p job.Posting) jobResponse {
	resp := jobResponse{
		ID:            p.ID,
		Title:         p.Title,
		CompanyName:   p.CompanyName,
		Description:   p.Description,
		MinCGPA:       p.MinCGPA,
		SalaryPackage: p.SalaryPackage,
		PostedBy:      p.PostedBy,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		Location:      p.Location,
		Website:       p.Website,
	}
	if p.Deadline != nil {
		deadline := p.Deadline.Format(time.RFC3339)
		resp.Deadline = &deadline
	}
	return resp
}

// Auth

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if _, err := s.authService.Register(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateUser):
			writeError(w, http.StatusBadRequest, "user already exists")
		case errors.Is(err, auth.ErrInvalidRole),
			errors.Is(err, auth.ErrMissingField):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			serverError(w, "register", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	result, err := s.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Same message for unknown email and wrong password.
			writeError(w, http.StatusBadRequest, "invalid email or password")
			return
		}
		serverError(w, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token": result.Token,
		"role":  string(result.Role),
	})
}

// Students

func (s *Server) handleStudentProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityFromContext(r.Context())

	profile, err := s.studentService.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			writeError(w, http.StatusNotFound, "student not found")
			return
		}
		serverError(w, "student profile", err)
		return
	}

	writeJSON(w, http.StatusOK, toStudentResponse(profile))
}

func (s *Server) handleUpdateStudentProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityFromContext(r.Context())

	var params student.UpdateProfileParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := s.studentService.UpdateProfile(r.Context(), userID, params); err != nil {
		if errors.Is(err, student.ErrNotFound) {
			writeError(w, http.StatusNotFound, "student not found")
			return
		}
		serverError(w, "update student profile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "profile updated successfully"})
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.studentService.ListAll(r.Context())
	if err != nil {
		serverError(w, "list students", err)
		return
	}

	items := make([]studentResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, toStudentResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleVerifyStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	var body struct {
		IsVerified bool `json:"isVerified"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if _, err := s.studentService.SetVerified(r.Context(), studentID, body.IsVerified); err != nil {
		if errors.Is(err, student.ErrNotFound) {
			writeError(w, http.StatusNotFound, "student not found")
			return
		}
		serverError(w, "verify student", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "student verification status updated"})
}

// Jobs

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	postings, err := s.jobService.List(r.Context())
	if err != nil {
		serverError(w, "list jobs", err)
		return
	}

	items := make([]jobResponse, 0, len(postings))
	for _, p := range postings {
		items = append(items, toJobResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityFromContext(r.Context())

	var params job.CreatePostingParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if _, err := s.jobService.Create(r.Context(), userID, params); err != nil {
		if errors.Is(err, job.ErrMissingTitle) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		serverError(w, "create job", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "job created"})
}

// Applications

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	userID, _ := identityFromContext(r.Context())

	var body struct {
		JobID string `json:"jobId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.JobID == "" {
		writeError(w, http.StatusBadRequest, "jobId is required")
		return
	}

	if _, err := s.applicationService.Apply(r.Context(), userID, body.JobID); err != nil {
		switch {
		case errors.Is(err, application.ErrNoStudentProfile):
			writeError(w, http.StatusNotFound, "student profile not found")
		case errors.Is(err, application.ErrAlreadyApplied):
			writeError(w, http.StatusBadRequest, "already applied")
		default:
			serverError(w, "apply", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "applied successfully"})
}

func (s *Server) handleJobApplicants(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	applicants, err := s.applicationService.ApplicantsForJob(r.Context(), jobID)
	if err != nil {
		serverError(w, "list applicants", err)
		return
	}

	items := make([]applicantResponse, 0, len(applicants))
	for _, a := range applicants {
		items = append(items, applicantResponse{
			ApplicationID: a.ApplicationID,
			FullName:      a.FullName,
			CGPA:          a.CGPA,
			Skills:        a.Skills,
			ResumeURL:     a.ResumeURL,
			Status:        string(a.Status),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ApplicationID string `json:"applicationId"`
		Status        string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ApplicationID == "" {
		writeError(w, http.StatusBadRequest, "applicationId is required")
		return
	}

	if err := s.applicationService.UpdateStatus(r.Context(), body.ApplicationID, body.Status); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, application.ErrNotFound):
			writeError(w, http.StatusNotFound, "application not found")
		default:
			serverError(w, "update status", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

// Admin

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.adminService.Dashboard(r.Context())
	if err != nil {
		serverError(w, "dashboard stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
