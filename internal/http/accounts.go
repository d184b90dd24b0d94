package httpapp

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/auth"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

const forgotPasswordMessage = "If an account with that email exists, a reset link has been sent"

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.allowRateLimit(w, r, "register", s.cfg.RateLimits.RegisterPerMinute) {
		return
	}
	var req struct {
		FirstName       string `json:"firstName"`
		LastName        string `json:"lastName"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		GraduationYear  int    `json:"graduationYear"`
		Course          string `json:"course"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	account, err := s.auth.Register(r.Context(), auth.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		GraduationYear:  req.GraduationYear,
		Course:          req.Course,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Registration successful", "user": account})
}

func (s *Server) handleLogin(role model.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.allowRateLimit(w, r, "login", s.cfg.RateLimits.LoginPerMinute) {
			return
		}
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := readJSON(r.Body, &req); err != nil {
			s.fail(w, r, err)
			return
		}
		session, err := s.auth.Login(r.Context(), role, req.Email, req.Password)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

// handleDashboard serves the caller's own profile for either role.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	switch id := identity.(type) {
	case auth.AdminIdentity:
		writeJSON(w, http.StatusOK, map[string]any{"admin": id.Profile})
	case auth.UserIdentity:
		writeJSON(w, http.StatusOK, map[string]any{"user": id.Profile})
	default:
		writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
	}
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	var req struct {
		OldPassword     string `json:"oldPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.auth.ChangePassword(r.Context(), identity.Account().ID, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Password updated successfully"})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	var req struct {
		FirstName      *string `json:"firstName"`
		LastName       *string `json:"lastName"`
		GraduationYear *int    `json:"graduationYear"`
		Course         *string `json:"course"`
		Bio            *string `json:"bio"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	account, err := s.auth.UpdateProfile(r.Context(), identity.Account().ID, model.ProfileUpdate{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		GraduationYear: req.GraduationYear,
		Course:         req.Course,
		Bio:            req.Bio,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": account})
}

func (s *Server) handleDeleteSelf(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	if err := s.auth.DeleteAccount(r.Context(), identity.Account().ID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Account deleted"})
}

func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := parseIntDefault(r.URL.Query().Get("limit"), 20)
	users, err := s.auth.SearchUsers(r.Context(), q, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// handleForgotPassword answers the same way whether or not the email is known.
func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if !s.allowRateLimit(w, r, "forgot", s.cfg.RateLimits.ForgotPerMinute) {
		return
	}
	var req struct {
		Email string     `json:"email"`
		Role  model.Role `json:"role"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	err := s.auth.ForgotPassword(r.Context(), req.Role, req.Email)
	switch {
	case errors.Is(err, auth.ErrAccountNotFound):
		s.logger.Info("password reset requested for unknown email", zap.String("role", string(req.Role)))
		err = nil
	case errors.Is(err, auth.ErrMailDelivery):
		// A distinct status here would tell callers the address is registered.
		s.logger.Warn("password reset email not delivered", zap.String("role", string(req.Role)), zap.Error(err))
		err = nil
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": forgotPasswordMessage})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.auth.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Password has been reset"})
}

// handleCreateAdmin is operator-only: it requires the X-Admin-Secret header
// and is disabled when no secret is configured.
func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	if !s.adminSecretOK(r) {
		writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	account, err := s.auth.CreateAdmin(r.Context(), auth.CreateAdminInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Admin created, credentials sent by email", "admin": account})
}

func (s *Server) adminSecretOK(r *http.Request) bool {
	if s.cfg.AdminSecret == "" {
		return false
	}
	got := r.Header.Get("X-Admin-Secret")
	return subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.AdminSecret)) == 1
}
