package user

import "github.com/ousmanseid/job-site-sub000/internal/common"

// Principal is the resolved identity of the caller. Services never read
// ambient auth state; every mutating operation takes one of these.
type Principal struct {
	ID   common.UUID
	Role Role
}
