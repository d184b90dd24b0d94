package store

import (
	"context"
	"errors"
	"time"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

type FeedFilter string

const (
	FeedAll          FeedFilter = "all"
	FeedExcludingOwn FeedFilter = "others"
	FeedOwnOnly      FeedFilter = "own"
	FeedSaved        FeedFilter = "saved"
	FeedByType       FeedFilter = "type"
)

type PostListOpts struct {
	ViewerID int64
	Filter   FeedFilter
	Type     model.PostType
	Limit    int
	// Cursor is the id of the last post of the previous page; 0 starts from the newest.
	Cursor int64
}

type ToggleResult struct {
	Active bool
	Count  int
}

type Store interface {
	AccountStore
	PostStore
	CommentStore
	NotificationStore
	ContentStore
	GetSiteStats(ctx context.Context) (model.SiteStats, error)
	Ping(ctx context.Context) error
	Close() error
}

type AccountStore interface {
	// CreateAccount inserts the account. Admin accounts get the next
	// sequential admin code, written back into account.AdminCode.
	CreateAccount(ctx context.Context, account *model.Account) (int64, error)
	GetAccount(ctx context.Context, id int64) (model.Account, error)
	FindAccountByEmail(ctx context.Context, role model.Role, email string) (model.Account, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string, now time.Time) error
	UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate, now time.Time) (model.Account, error)
	ListAccounts(ctx context.Context, role model.Role, limit, offset int) ([]model.Account, int, error)
	SearchAccounts(ctx context.Context, role model.Role, query string, limit int) ([]model.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
	SetResetMarker(ctx context.Context, id int64, marker model.ResetMarker) error
	// ConsumeResetMarker replaces the password and clears the marker in one
	// conditional update. ErrNotFound when no live marker matches.
	ConsumeResetMarker(ctx context.Context, id int64, nonceHash, passwordHash string, now time.Time) error
}

type PostStore interface {
	CreatePost(ctx context.Context, post *model.Post) (int64, error)
	GetPost(ctx context.Context, id, viewerID int64) (model.Post, error)
	ListPosts(ctx context.Context, opts PostListOpts) ([]model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id int64) error
	ListMediaKeysByOwner(ctx context.Context, ownerID int64) ([]string, error)
	ToggleLike(ctx context.Context, postID, accountID int64, now time.Time) (ToggleResult, error)
	ToggleSave(ctx context.Context, postID, accountID int64, now time.Time) (ToggleResult, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) (int64, error)
	GetComment(ctx context.Context, postID, commentID int64) (model.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]model.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID int64) error
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n *model.Notification) (int64, error)
	ListNotifications(ctx context.Context, recipientID int64, limit int) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id, recipientID int64) error
	MarkAllNotificationsRead(ctx context.Context, recipientID int64) (int64, error)
	DeleteNotification(ctx context.Context, id, recipientID int64) error
}

type ContentStore interface {
	CreateAnnouncement(ctx context.Context, a *model.Announcement) (int64, error)
	GetAnnouncement(ctx context.Context, id int64) (model.Announcement, error)
	ListAnnouncements(ctx context.Context, limit int) ([]model.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) error

	CreateEvent(ctx context.Context, e *model.Event) (int64, error)
	GetEvent(ctx context.Context, id int64) (model.Event, error)
	ListEvents(ctx context.Context, limit int) ([]model.Event, error)
	DeleteEvent(ctx context.Context, id int64) error

	CreateJob(ctx context.Context, j *model.Job) (int64, error)
	GetJob(ctx context.Context, id int64) (model.Job, error)
	ListJobs(ctx context.Context, limit int) ([]model.Job, error)
	DeleteJob(ctx context.Context, id int64) error

	CreateStory(ctx context.Context, s *model.Story) (int64, error)
	GetStory(ctx context.Context, id int64) (model.Story, error)
	ListStories(ctx context.Context, limit int) ([]model.Story, error)
	DeleteStory(ctx context.Context, id int64) error
}
