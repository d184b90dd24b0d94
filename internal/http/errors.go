package httpapp

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/auth"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/content"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/feed"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/media"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store"
)

var (
	errBadRequest = errors.New("bad request")
	errInternal   = errors.New("internal server error")
	errUpstream   = errors.New("upstream service unavailable")
)

var statusByError = []struct {
	err    error
	status int
}{
	{errBadRequest, http.StatusBadRequest},
	{auth.ErrMissingField, http.StatusBadRequest},
	{auth.ErrInvalidEmail, http.StatusBadRequest},
	{auth.ErrPasswordMismatch, http.StatusBadRequest},
	{auth.ErrWeakPassword, http.StatusBadRequest},
	{auth.ErrOldPasswordMismatch, http.StatusBadRequest},
	{auth.ErrInvalidRole, http.StatusBadRequest},
	{feed.ErrInvalidPostType, http.StatusBadRequest},
	{feed.ErrInvalidFilter, http.StatusBadRequest},
	{feed.ErrEmptyContent, http.StatusBadRequest},
	{feed.ErrEmptyText, http.StatusBadRequest},
	{content.ErrMissingTitle, http.StatusBadRequest},
	{content.ErrMissingCompany, http.StatusBadRequest},
	{media.ErrUnsupportedMedia, http.StatusBadRequest},

	{auth.ErrBadCredential, http.StatusUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized},
	{auth.ErrTokenExpired, http.StatusUnauthorized},

	{auth.ErrRoleNotAllowed, http.StatusForbidden},
	{feed.ErrNotOwner, http.StatusForbidden},

	{auth.ErrAccountNotFound, http.StatusNotFound},
	{feed.ErrPostNotFound, http.StatusNotFound},
	{feed.ErrCommentNotFound, http.StatusNotFound},
	{feed.ErrNotificationNotFound, http.StatusNotFound},
	{content.ErrNotFound, http.StatusNotFound},
	{content.ErrUnknownKind, http.StatusNotFound},
	{store.ErrNotFound, http.StatusNotFound},

	{auth.ErrEmailTaken, http.StatusConflict},
}

// fail writes the response for err. Upstream and unexpected failures are
// logged with detail and answered with a generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		writeError(w, http.StatusRequestEntityTooLarge, errors.New("upload too large"))
		return
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			writeError(w, m.status, publicError(err, m.err))
			return
		}
	}
	if errors.Is(err, media.ErrUpstream) || errors.Is(err, auth.ErrMailDelivery) {
		s.logger.Warn("upstream failure", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusBadGateway, errUpstream)
		return
	}
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, errInternal)
}

// publicError keeps wrapped detail for validation errors, which describe the
// caller's own input, and the bare sentinel for everything else.
func publicError(err, sentinel error) error {
	switch sentinel {
	case errBadRequest, auth.ErrWeakPassword:
		return err
	}
	return sentinel
}
