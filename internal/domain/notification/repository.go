package notification

import (
	"context"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Repository interface {
	Create(ctx context.Context, n Notification) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID common.UUID) ([]Notification, error)
	UnreadCount(ctx context.Context, recipientID common.UUID) (int, error)
	MarkRead(ctx context.Context, id int64, recipientID common.UUID) error
	MarkAllRead(ctx context.Context, recipientID common.UUID) error
}
