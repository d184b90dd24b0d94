package httpapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	_ "github.com/ashoke-maity/Minor-project-TIU-sub001/docs" // swagger docs
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/auth"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/config"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/content"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/feed"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/rate"
)

// SiteInfo is the part of the store the server reads directly.
type SiteInfo interface {
	GetSiteStats(ctx context.Context) (model.SiteStats, error)
	Ping(ctx context.Context) error
}

// Listeners accepts real-time connections for an authenticated account.
type Listeners interface {
	Serve(w http.ResponseWriter, r *http.Request, accountID int64)
}

type Deps struct {
	Auth      *auth.Service
	Feed      *feed.Service
	Content   *content.Service
	Site      SiteInfo
	Listeners Listeners
	Limiter   rate.Limiter
	Logger    *zap.Logger
}

type Server struct {
	auth      *auth.Service
	feed      *feed.Service
	content   *content.Service
	site      SiteInfo
	listeners Listeners
	limiter   rate.Limiter
	logger    *zap.Logger
	cfg       config.Config
	router    chi.Router
}

func NewServer(deps Deps, cfg config.Config) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limiter := deps.Limiter
	if limiter == nil {
		limiter = rate.NewMemory()
	}
	s := &Server{
		auth:      deps.Auth,
		feed:      deps.Feed,
		content:   deps.Content,
		site:      deps.Site,
		listeners: deps.Listeners,
		limiter:   limiter,
		logger:    logger,
		cfg:       cfg,
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	if s.cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.ClientURLs,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Secret"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) { notFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) { methodNotAllowed(w) })

	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.json", s.serveOpenAPIJSON)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/socket", s.handleSocket)

	r.Post("/user/register", s.handleRegister)
	r.Post("/user/login", s.handleLogin(model.RoleUser))
	r.Post("/admin/login", s.handleLogin(model.RoleAdmin))
	r.Post("/admin/register", s.handleCreateAdmin)
	r.Post("/forgot-password", s.handleForgotPassword)
	r.Post("/reset-password", s.handleResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(s.gate(model.RoleUser))

		r.Get("/user/dashboard", s.handleDashboard)
		r.Put("/user/update", s.handleChangePassword)
		r.Put("/user/profile", s.handleUpdateProfile)
		r.Delete("/user/delete", s.handleDeleteSelf)
		r.Get("/user/search", s.handleSearchUsers)

		r.Post("/create/post", s.handleCreatePost)
		r.Get("/view/post", s.handleListFeed(feedOwn))
		r.Get("/view/others", s.handleListFeed(feedOthers))
		r.Get("/view/all", s.handleListFeed(feedAll))
		r.Get("/view/saved", s.handleListFeed(feedSaved))
		r.Get("/view/type/{type}", s.handleListFeed(feedByType))
		r.Get("/view/post/{id}", s.handleGetPost)
		r.Put("/edit/post/{id}", s.handleEditPost)
		r.Delete("/delete/post/{id}", s.handleDeletePost)
		r.Post("/like/{id}", s.handleToggleLike)
		r.Post("/save/{id}", s.handleToggleSave)
		r.Post("/comment/{id}", s.handleAddComment)
		r.Delete("/comment/{id}/{commentId}", s.handleDeleteComment)

		r.Get("/notifications", s.handleListNotifications)
		r.Put("/notifications/read", s.handleMarkAllNotificationsRead)
		r.Put("/notifications/{id}/read", s.handleMarkNotificationRead)
		r.Delete("/notifications/{id}", s.handleDeleteNotification)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.gate(model.RoleAdmin))

		r.Get("/admin/dashboard", s.handleDashboard)
		r.Put("/admin/update", s.handleChangePassword)
		r.Get("/admin/users", s.handleListUsers)
		r.Delete("/admin/users/{id}", s.handleAdminDeleteAccount)
		r.Get("/admin/stats", s.handleStats)
		r.Post("/admin/{kind}", s.handleCreateContent)
		r.Delete("/admin/{kind}/{id}", s.handleDeleteContent)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.gate(model.RoleUser, model.RoleAdmin))

		r.Get("/content/{kind}", s.handleListContent)
		r.Get("/content/{kind}/{id}", s.handleGetContent)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.site.Ping(ctx); err != nil {
		s.logger.Error("health check failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, errors.New("database unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) serveOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}

// handleSocket authenticates with the token query parameter, since browsers
// cannot set headers on a websocket handshake.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = bearerToken(r)
	}
	if token == "" {
		writeError(w, http.StatusUnauthorized, errors.New("missing token"))
		return
	}
	identity, err := s.auth.Authenticate(r.Context(), token, model.RoleUser, model.RoleAdmin)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.listeners.Serve(w, r, identity.Account().ID)
}

func (s *Server) allowRateLimit(w http.ResponseWriter, r *http.Request, action string, limit int) bool {
	rule := rate.PerMinute(limit)
	if !rule.Enabled() {
		return true
	}
	ipKey := fmt.Sprintf("%s:ip:%s", action, s.clientIP(r))
	if ok, retry := s.limiter.Allow(ipKey, rule.Limit, rule.Window); !ok {
		writeRateLimit(w, retry)
		return false
	}
	if identity := identityFrom(r.Context()); identity != nil {
		accountKey := fmt.Sprintf("%s:account:%d", action, identity.Account().ID)
		if ok, retry := s.limiter.Allow(accountKey, rule.Limit, rule.Window); !ok {
			writeRateLimit(w, retry)
			return false
		}
	}
	return true
}

// clientIP is the peer address. Forwarding headers only count when RealIP
// has already rewritten RemoteAddr from them.
func (s *Server) clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func readJSON(body io.ReadCloser, dest any) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeRateLimit(w http.ResponseWriter, retry time.Duration) {
	secs := int(retry.Seconds())
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	writeJSON(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate limit exceeded",
		"retry_after": secs,
	})
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, errors.New("not found"))
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func parseIntDefault(value string, def int) int {
	if value == "" {
		return def
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return def
}

func parseInt64Default(value string, def int64) int64 {
	if value == "" {
		return def
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	return def
}

// pathID parses a positive numeric URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", errBadRequest, name)
	}
	return id, nil
}
