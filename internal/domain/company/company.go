package company

import (
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

// Company is the employer-owned profile. Verification lives on the owning
// user and is mirrored here for read convenience.
type Company struct {
	ID          common.UUID `json:"id"`
	OwnerID     common.UUID `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Industry    string      `json:"industry"`
	Location    string      `json:"location"`
	Website     string      `json:"website"`
	Verified    bool        `json:"verified"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
