package user

import (
	"strings"
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// ParseRole normalizes an external role representation once, at the edge.
func ParseRole(value string) (Role, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.TrimPrefix(normalized, "role_")
	switch Role(normalized) {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return Role(normalized), true
	case "job_seeker":
		return RoleJobSeeker, true
	default:
		return "", false
	}
}

type User struct {
	ID        common.UUID `json:"id"`
	Email     string      `json:"email"`
	Role      Role        `json:"role"`
	Verified  bool        `json:"verified"`
	Active    bool        `json:"active"`
	Deleted   bool        `json:"-"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
