package application

import (
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Status string

const (
	StatusSubmitted          Status = "submitted"
	StatusShortlisted        Status = "shortlisted"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusAccepted           Status = "accepted"
	StatusRejected           Status = "rejected"
	StatusWithdrawn          Status = "withdrawn"
)

func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWithdrawn
}

// CanTransition reports whether an application may move from s to next.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusSubmitted:
		return next == StatusShortlisted || next == StatusInterviewScheduled || next == StatusRejected || next == StatusWithdrawn
	case StatusShortlisted:
		return next == StatusInterviewScheduled || next == StatusAccepted || next == StatusRejected || next == StatusWithdrawn
	case StatusInterviewScheduled:
		return next == StatusAccepted || next == StatusRejected || next == StatusWithdrawn
	default:
		return false
	}
}

// CVSnapshot freezes the submitted CV's content at apply time so later
// edits to the CV do not alter what the employer reviews.
type CVSnapshot struct {
	Kind       string   `json:"kind"`
	Summary    string   `json:"summary,omitempty"`
	Experience string   `json:"experience,omitempty"`
	Education  string   `json:"education,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Template   string   `json:"template,omitempty"`
	FileName   string   `json:"file_name,omitempty"`
	FileKey    string   `json:"file_key,omitempty"`
}

type Application struct {
	ID            common.UUID  `json:"id"`
	JobID         common.UUID  `json:"job_id"`
	ApplicantID   common.UUID  `json:"applicant_id"`
	CVID          *common.UUID `json:"cv_id,omitempty"`
	CVSnapshot    *CVSnapshot  `json:"cv_snapshot,omitempty"`
	CoverLetter   string       `json:"cover_letter"`
	Status        Status       `json:"status"`
	EmployerNotes string       `json:"employer_notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
