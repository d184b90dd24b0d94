// Package feed implements posts and the interactions on them: likes, saves,
// comments and the notifications they produce.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/media"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store"
)

const (
	EventPostCreated = "post_created"
	EventPostDeleted = "post_deleted"

	DefaultPageSize = 50
	MaxPageSize     = 100
)

var (
	ErrInvalidPostType      = errors.New("invalid post type")
	ErrInvalidFilter        = errors.New("invalid feed filter")
	ErrEmptyContent         = errors.New("post content or media is required")
	ErrEmptyText            = errors.New("comment text is required")
	ErrNotOwner             = errors.New("not the owner")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Broadcaster pushes an event to real-time listeners. Delivery is best-effort.
type Broadcaster interface {
	Emit(event string, payload any)
}

type MediaStore interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (media.Object, error)
	Delete(ctx context.Context, key string) error
}

type Store interface {
	store.PostStore
	store.CommentStore
	store.NotificationStore
}

type Service struct {
	store       Store
	media       MediaStore
	broadcaster Broadcaster
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(st Store, mediaStore MediaStore, broadcaster Broadcaster, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:       st,
		media:       mediaStore,
		broadcaster: broadcaster,
		logger:      logger,
		now:         time.Now,
	}
}

type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

type CreatePostInput struct {
	Content         string
	Type            model.PostType
	Media           *Upload
	JobDetails      *model.JobDetails
	EventDetails    *model.EventDetails
	DonationDetails *model.DonationDetails
}

// CreatePost uploads the optional media first and persists only its URL.
// A sub-document that does not match the post type is discarded.
func (s *Service) CreatePost(ctx context.Context, owner model.Account, in CreatePostInput) (model.Post, error) {
	if in.Type == "" {
		in.Type = model.PostRegular
	}
	if !in.Type.Valid() {
		return model.Post{}, ErrInvalidPostType
	}
	content := strings.TrimSpace(in.Content)
	if content == "" && in.Media == nil {
		return model.Post{}, ErrEmptyContent
	}

	post := model.Post{
		OwnerID:         owner.ID,
		OwnerName:       owner.FullName(),
		Content:         content,
		Type:            in.Type,
		JobDetails:      in.JobDetails,
		EventDetails:    in.EventDetails,
		DonationDetails: in.DonationDetails,
		Comments:        []model.Comment{},
		CreatedAt:       s.now(),
	}
	post.KeepMatchingDetails()

	if in.Media != nil {
		obj, err := s.media.Upload(ctx, in.Media.Reader, in.Media.Size, in.Media.ContentType)
		if err != nil {
			return model.Post{}, err
		}
		post.Media = &model.Media{URL: obj.URL, Kind: obj.Kind, Key: obj.Key}
	}

	if _, err := s.store.CreatePost(ctx, &post); err != nil {
		if post.Media != nil {
			if delErr := s.media.Delete(ctx, post.Media.Key); delErr != nil {
				s.logger.Warn("orphaned media after failed post insert", zap.String("key", post.Media.Key), zap.Error(delErr))
			}
		}
		return model.Post{}, err
	}

	s.broadcaster.Emit(EventPostCreated, post)
	return post, nil
}

type ListOptions struct {
	Filter store.FeedFilter
	Type   model.PostType
	Limit  int
	Cursor int64
}

// PageSize is the number of posts ListFeed asks for: Limit clamped to
// 1..MaxPageSize, DefaultPageSize when unset.
func (o ListOptions) PageSize() int {
	switch {
	case o.Limit <= 0:
		return DefaultPageSize
	case o.Limit > MaxPageSize:
		return MaxPageSize
	}
	return o.Limit
}

// ListFeed returns posts newest first with isLiked and isSaved computed for viewerID.
func (s *Service) ListFeed(ctx context.Context, viewerID int64, opts ListOptions) ([]model.Post, error) {
	switch opts.Filter {
	case store.FeedAll, store.FeedExcludingOwn, store.FeedOwnOnly, store.FeedSaved:
	case store.FeedByType:
		if !opts.Type.Valid() {
			return nil, ErrInvalidPostType
		}
	default:
		return nil, ErrInvalidFilter
	}
	return s.store.ListPosts(ctx, store.PostListOpts{
		ViewerID: viewerID,
		Filter:   opts.Filter,
		Type:     opts.Type,
		Limit:    opts.PageSize(),
		Cursor:   opts.Cursor,
	})
}

func (s *Service) GetPost(ctx context.Context, viewerID, postID int64) (model.Post, error) {
	post, err := s.store.GetPost(ctx, postID, viewerID)
	if errors.Is(err, store.ErrNotFound) {
		return model.Post{}, ErrPostNotFound
	}
	return post, err
}

// EditPost replaces the content of a post. Type and media are fixed at creation.
func (s *Service) EditPost(ctx context.Context, requesterID, postID int64, content string) (model.Post, error) {
	post, err := s.GetPost(ctx, requesterID, postID)
	if err != nil {
		return model.Post{}, err
	}
	if post.OwnerID != requesterID {
		return model.Post{}, ErrNotOwner
	}
	content = strings.TrimSpace(content)
	if content == "" && post.Media == nil {
		return model.Post{}, ErrEmptyContent
	}
	post.Content = content
	post.UpdatedAt = s.now()
	if err := s.store.UpdatePost(ctx, &post); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Post{}, ErrPostNotFound
		}
		return model.Post{}, err
	}
	return post, nil
}

// DeletePost removes the media object before the record. If the media
// cannot be removed the post is kept so the caller can retry.
func (s *Service) DeletePost(ctx context.Context, requesterID, postID int64) error {
	post, err := s.GetPost(ctx, requesterID, postID)
	if err != nil {
		return err
	}
	if post.OwnerID != requesterID {
		return ErrNotOwner
	}
	if post.Media != nil && post.Media.Key != "" {
		if err := s.media.Delete(ctx, post.Media.Key); err != nil {
			return err
		}
	}
	if err := s.store.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	s.broadcaster.Emit(EventPostDeleted, map[string]int64{"id": postID})
	return nil
}

type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

type SaveResult struct {
	Saved bool `json:"saved"`
}

func (s *Service) ToggleLike(ctx context.Context, actor model.Account, postID int64) (LikeResult, error) {
	res, err := s.store.ToggleLike(ctx, postID, actor.ID, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LikeResult{}, ErrPostNotFound
		}
		return LikeResult{}, err
	}
	if res.Active {
		s.notifyOwner(ctx, actor, postID, model.NotifyLike, "liked your post")
	}
	return LikeResult{Liked: res.Active, LikeCount: res.Count}, nil
}

func (s *Service) ToggleSave(ctx context.Context, accountID, postID int64) (SaveResult, error) {
	res, err := s.store.ToggleSave(ctx, postID, accountID, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SaveResult{}, ErrPostNotFound
		}
		return SaveResult{}, err
	}
	return SaveResult{Saved: res.Active}, nil
}

// AddComment appends a comment carrying a snapshot of the author's name.
func (s *Service) AddComment(ctx context.Context, actor model.Account, postID int64, text string) (model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Comment{}, ErrEmptyText
	}
	if _, err := s.GetPost(ctx, actor.ID, postID); err != nil {
		return model.Comment{}, err
	}
	comment := model.Comment{
		PostID:     postID,
		AuthorID:   actor.ID,
		AuthorName: actor.FullName(),
		Text:       text,
		CreatedAt:  s.now(),
	}
	if _, err := s.store.CreateComment(ctx, &comment); err != nil {
		return model.Comment{}, err
	}
	s.notifyOwner(ctx, actor, postID, model.NotifyComment, "commented on your post")
	return comment, nil
}

// DeleteComment is allowed only for the comment's author.
func (s *Service) DeleteComment(ctx context.Context, requesterID, postID, commentID int64) error {
	comment, err := s.store.GetComment(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.AuthorID != requesterID {
		return ErrNotOwner
	}
	if err := s.store.DeleteComment(ctx, postID, commentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (s *Service) notifyOwner(ctx context.Context, actor model.Account, postID int64, kind model.NotificationKind, verb string) {
	post, err := s.store.GetPost(ctx, postID, actor.ID)
	if err != nil {
		s.logger.Warn("load post for notification", zap.Int64("post_id", postID), zap.Error(err))
		return
	}
	if post.OwnerID == actor.ID {
		return
	}
	n := model.Notification{
		RecipientID: post.OwnerID,
		SenderID:    actor.ID,
		SenderName:  actor.FullName(),
		Kind:        kind,
		PostID:      postID,
		Message:     fmt.Sprintf("%s %s", actor.FullName(), verb),
		CreatedAt:   s.now(),
	}
	if _, err := s.store.CreateNotification(ctx, &n); err != nil {
		s.logger.Warn("create notification", zap.Int64("post_id", postID), zap.Error(err))
	}
}
