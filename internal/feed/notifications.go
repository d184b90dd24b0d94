package feed

import (
	"context"
	"errors"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store"
)

func (s *Service) ListNotifications(ctx context.Context, recipientID int64, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return s.store.ListNotifications(ctx, recipientID, limit)
}

func (s *Service) MarkNotificationRead(ctx context.Context, recipientID, id int64) error {
	err := s.store.MarkNotificationRead(ctx, id, recipientID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *Service) MarkAllNotificationsRead(ctx context.Context, recipientID int64) (int64, error) {
	return s.store.MarkAllNotificationsRead(ctx, recipientID)
}

func (s *Service) DeleteNotification(ctx context.Context, recipientID, id int64) error {
	err := s.store.DeleteNotification(ctx, id, recipientID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}
