package httpapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/auth"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/content"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 50)
	offset := parseIntDefault(r.URL.Query().Get("offset"), 0)
	users, total, err := s.auth.ListUsers(r.Context(), limit, offset)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users, "total": total})
}

func (s *Server) handleAdminDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	account, err := s.auth.GetAccount(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	// Admin accounts are managed from the CLI, not from this route.
	if account.Role != model.RoleUser {
		s.fail(w, r, auth.ErrAccountNotFound)
		return
	}
	if err := s.auth.DeleteAccount(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.site.GetSiteStats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	kind, err := content.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	item, err := content.NewItem(kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := readJSON(r.Body, item); err != nil {
		s.fail(w, r, err)
		return
	}
	created, err := s.content.Create(r.Context(), identityFrom(r.Context()).Account().ID, item)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	kind, err := content.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.content.Delete(r.Context(), kind, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	kind, err := content.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	items, err := s.content.List(r.Context(), kind, parseIntDefault(r.URL.Query().Get("limit"), content.DefaultListLimit))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{string(kind): items})
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	kind, err := content.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	item, err := s.content.Get(r.Context(), kind, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
