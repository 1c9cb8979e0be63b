package student

import "time"

// Profile is the role-specific record owned by a STUDENT user. Nullable
// columns are pointers so an untouched profile round-trips as NULL rather
// than zero values.
type Profile struct {
	ID         string
	UserID     string
	FullName   string
	RollNumber *string
	CGPA       *float64
	Skills     *string
	ResumeURL  *string
	Verified   bool
	CreatedAt  time.Time
}

// UpdateProfileParams enumerates the student-editable profile fields.
type UpdateProfileParams struct {
	ResumeURL  string  `json:"resumeUrl"`
	RollNumber string  `json:"rollNumber"`
	CGPA       float64 `json:"cgpa"`
	Skills     string  `json:"skills"`
}
