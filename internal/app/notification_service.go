package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/notification"
	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
)

type NotificationService struct {
	repo   notification.Repository
	logger *zap.Logger
}

func NewNotificationService(repo notification.Repository, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, logger: logger}
}

// Notify creates the notification row for a single recipient. A failed
// insert is logged and swallowed: a lost notification must not roll back
// the state transition that triggered it.
func (s *NotificationService) Notify(ctx context.Context, recipientID common.UUID, typ notification.Type, title, message string) {
	_, err := s.repo.Create(ctx, notification.Notification{
		RecipientID: recipientID,
		Type:        typ,
		Title:       title,
		Message:     message,
	})
	if err != nil {
		s.logger.Warn("notification dropped",
			zap.String("recipient_id", recipientID.String()),
			zap.String("type", string(typ)),
			zap.Error(err))
	}
}

// List returns the recipient's notifications newest first.
func (s *NotificationService) List(ctx context.Context, p user.Principal) ([]notification.Notification, error) {
	return s.repo.ListByRecipient(ctx, p.ID)
}

// UnreadCount is always derived from the rows; nothing caches it.
func (s *NotificationService) UnreadCount(ctx context.Context, p user.Principal) (int, error) {
	return s.repo.UnreadCount(ctx, p.ID)
}

func (s *NotificationService) MarkRead(ctx context.Context, p user.Principal, id int64) error {
	return s.repo.MarkRead(ctx, id, p.ID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, p user.Principal) error {
	return s.repo.MarkAllRead(ctx, p.ID)
}
