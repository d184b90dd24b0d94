package sqlite

import (
	"context"
	"time"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

func (s *Store) CreateNotification(ctx context.Context, n *model.Notification) (int64, error) {
	var postID any
	if n.PostID != 0 {
		postID = n.PostID
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO notifications (recipient_id, sender_id, sender_name, kind, post_id, message, is_read, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, n.RecipientID, n.SenderID, n.SenderName, string(n.Kind), postID, n.Message, boolToInt(n.Read), n.CreatedAt.Unix())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	n.ID = id
	return id, nil
}

func (s *Store) ListNotifications(ctx context.Context, recipientID int64, limit int) ([]model.Notification, error) {
	limit = clamp(limit, 1, 200)
	rows, err := s.db.QueryContext(ctx, `
SELECT id, recipient_id, sender_id, sender_name, kind, COALESCE(post_id, 0), message, is_read, created_at
FROM notifications
WHERE recipient_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		var kind string
		var read int
		var created int64
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.SenderName, &kind, &n.PostID, &n.Message, &read, &created); err != nil {
			return nil, err
		}
		n.Kind = model.NotificationKind(kind)
		n.Read = read == 1
		n.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, recipientID int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ? AND recipient_id = ?`, id, recipientID)
	return affectedOrNotFound(res, err)
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, recipientID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE recipient_id = ? AND is_read = 0`, recipientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) DeleteNotification(ctx context.Context, id, recipientID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ? AND recipient_id = ?`, id, recipientID)
	return affectedOrNotFound(res, err)
}
