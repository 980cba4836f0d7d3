package app

import (
	"context"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/notification"
)

// Notifier fans a domain event out into notification records. Callers fire
// it after the state write succeeds; delivery failures are logged by the
// implementation and never fail the triggering operation.
type Notifier interface {
	Notify(ctx context.Context, recipientID common.UUID, typ notification.Type, title, message string)
}
