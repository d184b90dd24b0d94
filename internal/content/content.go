// Package content manages the admin-published collections: announcements,
// events, jobs and success stories.
package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store"
)

type Kind string

const (
	KindAnnouncements Kind = "announcements"
	KindEvents        Kind = "events"
	KindJobs          Kind = "jobs"
	KindStories       Kind = "stories"

	DefaultListLimit = 50
)

var (
	ErrUnknownKind    = errors.New("unknown content kind")
	ErrMissingTitle   = errors.New("title is required")
	ErrMissingCompany = errors.New("company is required")
	ErrNotFound       = errors.New("content not found")
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindAnnouncements, KindEvents, KindJobs, KindStories:
		return k, nil
	}
	return "", ErrUnknownKind
}

type Service struct {
	store store.ContentStore
	now   func() time.Time
}

func NewService(st store.ContentStore) *Service {
	return &Service{store: st, now: time.Now}
}

// NewItem returns a pointer to an empty value of the kind, ready to be
// decoded into and passed to Create.
func NewItem(kind Kind) (any, error) {
	switch kind {
	case KindAnnouncements:
		return &model.Announcement{}, nil
	case KindEvents:
		return &model.Event{}, nil
	case KindJobs:
		return &model.Job{}, nil
	case KindStories:
		return &model.Story{}, nil
	}
	return nil, ErrUnknownKind
}

func (s *Service) Create(ctx context.Context, authorID int64, item any) (any, error) {
	now := s.now()
	var (
		created any
		err     error
	)
	switch v := item.(type) {
	case *model.Announcement:
		if v.Title = strings.TrimSpace(v.Title); v.Title == "" {
			return nil, ErrMissingTitle
		}
		v.AuthorID, v.CreatedAt = authorID, now
		_, err = s.store.CreateAnnouncement(ctx, v)
		created = *v
	case *model.Event:
		if v.Name = strings.TrimSpace(v.Name); v.Name == "" {
			return nil, ErrMissingTitle
		}
		v.AuthorID, v.CreatedAt = authorID, now
		_, err = s.store.CreateEvent(ctx, v)
		created = *v
	case *model.Job:
		if v.Title = strings.TrimSpace(v.Title); v.Title == "" {
			return nil, ErrMissingTitle
		}
		if v.Company = strings.TrimSpace(v.Company); v.Company == "" {
			return nil, ErrMissingCompany
		}
		v.AuthorID, v.CreatedAt = authorID, now
		_, err = s.store.CreateJob(ctx, v)
		created = *v
	case *model.Story:
		if v.Title = strings.TrimSpace(v.Title); v.Title == "" {
			return nil, ErrMissingTitle
		}
		v.AuthorID, v.CreatedAt = authorID, now
		_, err = s.store.CreateStory(ctx, v)
		created = *v
	default:
		return nil, ErrUnknownKind
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, kind Kind, id int64) (any, error) {
	var (
		item any
		err  error
	)
	switch kind {
	case KindAnnouncements:
		item, err = s.store.GetAnnouncement(ctx, id)
	case KindEvents:
		item, err = s.store.GetEvent(ctx, id)
	case KindJobs:
		item, err = s.store.GetJob(ctx, id)
	case KindStories:
		item, err = s.store.GetStory(ctx, id)
	default:
		return nil, ErrUnknownKind
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// List returns the newest items first.
func (s *Service) List(ctx context.Context, kind Kind, limit int) (any, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	switch kind {
	case KindAnnouncements:
		return s.store.ListAnnouncements(ctx, limit)
	case KindEvents:
		return s.store.ListEvents(ctx, limit)
	case KindJobs:
		return s.store.ListJobs(ctx, limit)
	case KindStories:
		return s.store.ListStories(ctx, limit)
	}
	return nil, ErrUnknownKind
}

func (s *Service) Delete(ctx context.Context, kind Kind, id int64) error {
	var err error
	switch kind {
	case KindAnnouncements:
		err = s.store.DeleteAnnouncement(ctx, id)
	case KindEvents:
		err = s.store.DeleteEvent(ctx, id)
	case KindJobs:
		err = s.store.DeleteJob(ctx, id)
	case KindStories:
		err = s.store.DeleteStory(ctx, id)
	default:
		return ErrUnknownKind
	}
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
