package job

import (
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusOpen            Status = "open"
	StatusClosed          Status = "closed"
	StatusRejected        Status = "rejected"
)

func (s Status) Terminal() bool {
	return s == StatusClosed || s == StatusRejected
}

type Job struct {
	ID           common.UUID `json:"id"`
	CompanyID    common.UUID `json:"company_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Requirements string      `json:"requirements"`
	Skills       []string    `json:"skills"`
	Location     string      `json:"location"`
	JobType      string      `json:"job_type"`
	WorkMode     string      `json:"work_mode"`
	SalaryMin    *int64      `json:"salary_min,omitempty"`
	SalaryMax    *int64      `json:"salary_max,omitempty"`
	Openings     int         `json:"openings"`
	Deadline     time.Time   `json:"deadline"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
