package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store"
)

// postSelect yields one post row plus its viewer-relative flags. The two
// leading placeholders are the viewer id.
const postSelect = `
SELECT p.id, p.owner_id, p.owner_name, p.content, p.post_type, p.media_url, p.media_kind, p.media_key, p.details, p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id),
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
	EXISTS (SELECT 1 FROM post_likes l WHERE l.post_id = p.id AND l.account_id = ?),
	EXISTS (SELECT 1 FROM post_saves sv WHERE sv.post_id = p.id AND sv.account_id = ?)
FROM posts p
`

func (s *Store) CreatePost(ctx context.Context, post *model.Post) (int64, error) {
	details, err := encodeDetails(post)
	if err != nil {
		return 0, err
	}
	var mediaURL, mediaKind, mediaKey any
	if post.Media != nil {
		mediaURL, mediaKind, mediaKey = post.Media.URL, string(post.Media.Kind), nullIfEmpty(post.Media.Key)
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO posts (owner_id, owner_name, content, post_type, media_url, media_kind, media_key, details, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, post.OwnerID, post.OwnerName, post.Content, string(post.Type), mediaURL, mediaKind, mediaKey, details,
		post.CreatedAt.Unix(), post.CreatedAt.Unix())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	post.ID = id
	post.UpdatedAt = post.CreatedAt
	return id, nil
}

func (s *Store) GetPost(ctx context.Context, id, viewerID int64) (model.Post, error) {
	row := s.db.QueryRowContext(ctx, postSelect+`WHERE p.id = ?`, viewerID, viewerID, id)
	post, err := scanPost(row)
	if err != nil {
		return model.Post{}, err
	}
	comments, err := s.ListComments(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	post.Comments = comments
	return post, nil
}

func (s *Store) ListPosts(ctx context.Context, opts store.PostListOpts) ([]model.Post, error) {
	limit := clamp(opts.Limit, 1, 100)
	where := []string{"1 = 1"}
	args := []any{opts.ViewerID, opts.ViewerID}

	switch opts.Filter {
	case store.FeedExcludingOwn:
		where = append(where, "p.owner_id <> ?")
		args = append(args, opts.ViewerID)
	case store.FeedOwnOnly:
		where = append(where, "p.owner_id = ?")
		args = append(args, opts.ViewerID)
	case store.FeedSaved:
		where = append(where, "EXISTS (SELECT 1 FROM post_saves sf WHERE sf.post_id = p.id AND sf.account_id = ?)")
		args = append(args, opts.ViewerID)
	case store.FeedByType:
		where = append(where, "p.post_type = ?")
		args = append(args, string(opts.Type))
	}
	if opts.Cursor > 0 {
		where = append(where, "p.id < ?")
		args = append(args, opts.Cursor)
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, postSelect+`WHERE `+strings.Join(where, " AND ")+`
ORDER BY p.created_at DESC, p.id DESC
LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	posts, err := collectPosts(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachComments(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) UpdatePost(ctx context.Context, post *model.Post) error {
	details, err := encodeDetails(post)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE posts SET content = ?, details = ?, updated_at = ?
WHERE id = ?
`, post.Content, details, post.UpdatedAt.Unix(), post.ID)
	return affectedOrNotFound(res, err)
}

func (s *Store) DeletePost(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	return affectedOrNotFound(res, err)
}

func (s *Store) ListMediaKeysByOwner(ctx context.Context, ownerID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT media_key FROM posts WHERE owner_id = ? AND media_key IS NOT NULL`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *Store) ToggleLike(ctx context.Context, postID, accountID int64, now time.Time) (store.ToggleResult, error) {
	return s.toggle(ctx, "post_likes", postID, accountID, now)
}

func (s *Store) ToggleSave(ctx context.Context, postID, accountID int64, now time.Time) (store.ToggleResult, error) {
	return s.toggle(ctx, "post_saves", postID, accountID, now)
}

// toggle flips membership of accountID in the post's set inside a single
// immediate transaction, so concurrent toggles cannot double-add.
func (s *Store) toggle(ctx context.Context, table string, postID, accountID int64, now time.Time) (store.ToggleResult, error) {
	var result store.ToggleResult
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE id = ?`, postID).Scan(&one); err != nil {
			return notFoundIfNoRows(err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE post_id = ? AND account_id = ?`, postID, accountID)
		if err != nil {
			return err
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if removed == 0 {
			if _, err := tx.ExecContext(ctx, `INSERT INTO `+table+` (post_id, account_id, created_at) VALUES (?, ?, ?)`, postID, accountID, now.Unix()); err != nil {
				return err
			}
			result.Active = true
		}
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE post_id = ?`, postID).Scan(&result.Count)
	})
	if err != nil {
		return store.ToggleResult{}, err
	}
	return result, nil
}

func (s *Store) attachComments(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	index := make(map[int64]int, len(posts))
	placeholders := make([]string, len(posts))
	args := make([]any, len(posts))
	for i, p := range posts {
		index[p.ID] = i
		placeholders[i] = "?"
		args[i] = p.ID
		posts[i].Comments = []model.Comment{}
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, post_id, author_id, author_name, text, created_at
FROM comments
WHERE post_id IN (`+strings.Join(placeholders, ",")+`)
ORDER BY id ASC
`, args...)
	if err != nil {
		return err
	}
	comments, err := collectComments(rows)
	if err != nil {
		return err
	}
	for _, c := range comments {
		i := index[c.PostID]
		posts[i].Comments = append(posts[i].Comments, c)
	}
	return nil
}

func collectPosts(rows *sql.Rows) ([]model.Post, error) {
	defer rows.Close()
	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func scanPost(row scanner) (model.Post, error) {
	var p model.Post
	var postType string
	var mediaURL, mediaKind, mediaKey, details sql.NullString
	var created, updated int64
	var liked, saved int
	if err := row.Scan(&p.ID, &p.OwnerID, &p.OwnerName, &p.Content, &postType, &mediaURL, &mediaKind, &mediaKey, &details,
		&created, &updated, &p.LikeCount, &p.CommentCount, &liked, &saved); err != nil {
		return model.Post{}, notFoundIfNoRows(err)
	}
	p.Type = model.PostType(postType)
	if mediaURL.Valid {
		p.Media = &model.Media{URL: mediaURL.String, Kind: model.MediaKind(mediaKind.String), Key: mediaKey.String}
	}
	if details.Valid && details.String != "" {
		if err := decodeDetails(&p, details.String); err != nil {
			return model.Post{}, err
		}
	}
	p.IsLiked = liked == 1
	p.IsSaved = saved == 1
	p.CreatedAt = time.Unix(created, 0).UTC()
	p.UpdatedAt = time.Unix(updated, 0).UTC()
	p.Comments = []model.Comment{}
	return p, nil
}

// encodeDetails serializes the sub-document that matches the post type, if any.
func encodeDetails(p *model.Post) (any, error) {
	var v any
	switch p.Type {
	case model.PostJob:
		if p.JobDetails != nil {
			v = p.JobDetails
		}
	case model.PostEvent:
		if p.EventDetails != nil {
			v = p.EventDetails
		}
	case model.PostDonation:
		if p.DonationDetails != nil {
			v = p.DonationDetails
		}
	}
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func decodeDetails(p *model.Post, raw string) error {
	switch p.Type {
	case model.PostJob:
		p.JobDetails = &model.JobDetails{}
		return json.Unmarshal([]byte(raw), p.JobDetails)
	case model.PostEvent:
		p.EventDetails = &model.EventDetails{}
		return json.Unmarshal([]byte(raw), p.EventDetails)
	case model.PostDonation:
		p.DonationDetails = &model.DonationDetails{}
		return json.Unmarshal([]byte(raw), p.DonationDetails)
	}
	return errors.New("details stored for untyped post")
}
