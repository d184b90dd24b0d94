package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO comments (post_id, author_id, author_name, text, created_at)
VALUES (?, ?, ?, ?, ?)
`, comment.PostID, comment.AuthorID, comment.AuthorName, comment.Text, comment.CreatedAt.Unix())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	comment.ID = id
	return id, nil
}

func (s *Store) GetComment(ctx context.Context, postID, commentID int64) (model.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, post_id, author_id, author_name, text, created_at
FROM comments
WHERE id = ? AND post_id = ?
`, commentID, postID)
	return scanComment(row)
}

func (s *Store) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, post_id, author_id, author_name, text, created_at
FROM comments
WHERE post_id = ?
ORDER BY id ASC
`, postID)
	if err != nil {
		return nil, err
	}
	return collectComments(rows)
}

func (s *Store) DeleteComment(ctx context.Context, postID, commentID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ? AND post_id = ?`, commentID, postID)
	return affectedOrNotFound(res, err)
}

func collectComments(rows *sql.Rows) ([]model.Comment, error) {
	defer rows.Close()
	comments := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func scanComment(row scanner) (model.Comment, error) {
	var c model.Comment
	var created int64
	if err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.Text, &created); err != nil {
		return model.Comment{}, notFoundIfNoRows(err)
	}
	c.CreatedAt = time.Unix(created, 0).UTC()
	return c, nil
}
