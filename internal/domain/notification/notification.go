package notification

import (
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Type string

const (
	TypeApplicationCreated       Type = "application_created"
	TypeApplicationStatusChanged Type = "application_status_changed"
	TypeJobApproved              Type = "job_approved"
	TypeJobRejected              Type = "job_rejected"
	TypeEmployerApproved         Type = "employer_approved"
	TypeEmployerDeactivated      Type = "employer_deactivated"
)

type Notification struct {
	ID          int64       `json:"id"`
	RecipientID common.UUID `json:"recipient_id"`
	Type        Type        `json:"type"`
	Title       string      `json:"title"`
	Message     string      `json:"message"`
	Read        bool        `json:"read"`
	CreatedAt   time.Time   `json:"created_at"`
}
