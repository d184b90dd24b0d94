package httpapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/feed"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store"
)

const (
	feedOwn    = store.FeedOwnOnly
	feedOthers = store.FeedExcludingOwn
	feedAll    = store.FeedAll
	feedSaved  = store.FeedSaved
	feedByType = store.FeedByType

	multipartMemory = 8 << 20
)

type postRequest struct {
	Content         string                 `json:"content"`
	PostType        model.PostType         `json:"postType"`
	JobDetails      *model.JobDetails      `json:"jobDetails"`
	EventDetails    *model.EventDetails    `json:"eventDetails"`
	DonationDetails *model.DonationDetails `json:"donationDetails"`
}

// handleCreatePost accepts JSON, or multipart form data with an optional
// "media" file part. Typed details travel as JSON-encoded form fields.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if !s.allowRateLimit(w, r, "post", s.cfg.RateLimits.PostPerMinute) {
		return
	}
	owner := identityFrom(r.Context()).Account()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req postRequest
		if err := readJSON(r.Body, &req); err != nil {
			s.fail(w, r, err)
			return
		}
		s.createPost(w, r, owner, req.input())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.fail(w, r, err)
			return
		}
		s.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	req, err := postRequestFromForm(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	in := req.input()

	file, header, err := r.FormFile("media")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		s.fail(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	default:
		defer file.Close()
		in.Media = &feed.Upload{
			Reader:      file,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		}
	}
	s.createPost(w, r, owner, in)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request, owner model.Account, in feed.CreatePostInput) {
	post, err := s.feed.CreatePost(r.Context(), owner, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Post created", "post": post})
}

func (p postRequest) input() feed.CreatePostInput {
	return feed.CreatePostInput{
		Content:         p.Content,
		Type:            p.PostType,
		JobDetails:      p.JobDetails,
		EventDetails:    p.EventDetails,
		DonationDetails: p.DonationDetails,
	}
}

func postRequestFromForm(r *http.Request) (postRequest, error) {
	req := postRequest{
		Content:  r.FormValue("content"),
		PostType: model.PostType(strings.TrimSpace(r.FormValue("postType"))),
	}
	fields := []struct {
		name string
		dest any
	}{
		{"jobDetails", &req.JobDetails},
		{"eventDetails", &req.EventDetails},
		{"donationDetails", &req.DonationDetails},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(r.FormValue(f.name))
		if raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), f.dest); err != nil {
			return postRequest{}, fmt.Errorf("%w: %s: %v", errBadRequest, f.name, err)
		}
	}
	return req, nil
}

func (s *Server) handleListFeed(filter store.FeedFilter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := identityFrom(r.Context()).Account()
		q := r.URL.Query()
		opts := feed.ListOptions{
			Filter: filter,
			Limit:  parseIntDefault(q.Get("limit"), feed.DefaultPageSize),
			Cursor: parseInt64Default(q.Get("before"), 0),
		}
		if filter == feedByType {
			opts.Type = model.PostType(chi.URLParam(r, "type"))
		}
		posts, err := s.feed.ListFeed(r.Context(), viewer.ID, opts)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		resp := map[string]any{"posts": posts}
		if len(posts) > 0 && len(posts) == opts.PageSize() {
			resp["nextCursor"] = posts[len(posts)-1].ID
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	post, err := s.feed.GetPost(r.Context(), identityFrom(r.Context()).Account().ID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	post, err := s.feed.EditPost(r.Context(), identityFrom(r.Context()).Account().ID, id, req.Content)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Post updated", "post": post})
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.feed.DeletePost(r.Context(), identityFrom(r.Context()).Account().ID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Post deleted"})
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.feed.ToggleLike(r.Context(), identityFrom(r.Context()).Account(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleToggleSave(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.feed.ToggleSave(r.Context(), identityFrom(r.Context()).Account().ID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	if !s.allowRateLimit(w, r, "comment", s.cfg.RateLimits.CommentPerMinute) {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	comment, err := s.feed.AddComment(r.Context(), identityFrom(r.Context()).Account(), id, req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"comment": comment})
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	commentID, err := pathID(r, "commentId")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.feed.DeleteComment(r.Context(), identityFrom(r.Context()).Account().ID, postID, commentID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Comment deleted"})
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), feed.DefaultPageSize)
	notes, err := s.feed.ListNotifications(r.Context(), identityFrom(r.Context()).Account().ID, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notes})
}

func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	n, err := s.feed.MarkAllNotificationsRead(r.Context(), identityFrom(r.Context()).Account().ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": n})
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.feed.MarkNotificationRead(r.Context(), identityFrom(r.Context()).Account().ID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.feed.DeleteNotification(r.Context(), identityFrom(r.Context()).Account().ID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
