package job

import "time"

// Posting is a job opening published by a company user. CompanyName is stored
// denormalized on the row (as entered by the poster); Location and Website
// are joined in from the poster's company profile at read time.
type Posting struct {
	ID            string
	Title         string
	CompanyName   string
	Description   string
	MinCGPA       float64
	SalaryPackage string
	Deadline      *time.Time
	PostedBy      string
	CreatedAt     time.Time
	Location      *string
	Website       *string
}

// CreatePostingParams enumerates the fields a company supplies when posting.
type CreatePostingParams struct {
	Title         string     `json:"title"`
	CompanyName   string     `json:"company_name"`
	Description   string     `json:"description"`
	MinCGPA       float64    `json:"min_cgpa"`
	SalaryPackage string     `json:"salary_package"`
	Deadline      *time.Time `json:"deadline"`
}
