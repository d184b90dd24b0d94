package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store"
)

var (
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrEmailTaken          = errors.New("Email already registered")
	ErrAccountNotFound     = errors.New("account not found")
	ErrBadCredential       = errors.New("invalid email or password")
	ErrOldPasswordMismatch = errors.New("current password is incorrect")
	ErrWeakPassword        = errors.New("password too weak")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRoleNotAllowed      = errors.New("role not allowed")
	ErrInvalidRole         = errors.New("invalid role")
	ErrMailDelivery        = errors.New("email delivery failed")
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type MediaRemover interface {
	Delete(ctx context.Context, key string) error
}

// Store is the slice of storage the account lifecycle needs.
type Store interface {
	store.AccountStore
	ListMediaKeysByOwner(ctx context.Context, ownerID int64) ([]string, error)
}

type ServiceConfig struct {
	// ResetURL is the page the emailed reset link points at; the token is
	// appended as the "token" query parameter.
	ResetURL string
	HashCost int
}

type Service struct {
	store  Store
	tokens *Tokens
	mailer Mailer
	media  MediaRemover
	logger *zap.Logger
	cfg    ServiceConfig
	now    func() time.Time
}

func NewService(st Store, tokens *Tokens, mailer Mailer, media MediaRemover, logger *zap.Logger, cfg ServiceConfig) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  st,
		tokens: tokens,
		mailer: mailer,
		media:  media,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	GraduationYear  int
	Course          string
}

type Session struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Account   model.Account `json:"account"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (model.Account, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.FirstName == "" || in.LastName == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" || in.ConfirmPassword == "" {
		return model.Account{}, ErrMissingField
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return model.Account{}, err
	}
	if in.Password != in.ConfirmPassword {
		return model.Account{}, ErrPasswordMismatch
	}
	if err := ValidatePassword(in.Password); err != nil {
		return model.Account{}, err
	}
	hash, err := HashPassword(in.Password, s.cfg.HashCost)
	if err != nil {
		return model.Account{}, err
	}
	account := model.Account{
		Role:           model.RoleUser,
		Email:          email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		PasswordHash:   hash,
		GraduationYear: in.GraduationYear,
		Course:         strings.TrimSpace(in.Course),
		CreatedAt:      s.now(),
	}
	if _, err := s.store.CreateAccount(ctx, &account); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return model.Account{}, ErrEmailTaken
		}
		return model.Account{}, err
	}
	return account, nil
}

// Login authenticates within a single role: an admin email never logs in
// through the user endpoint and vice versa.
func (s *Service) Login(ctx context.Context, role model.Role, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, ErrMissingField
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return Session{}, err
	}
	account, err := s.store.FindAccountByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrAccountNotFound
		}
		return Session{}, err
	}
	if !CheckPassword(account.PasswordHash, password) {
		return Session{}, ErrBadCredential
	}
	token, expires, err := s.tokens.IssueSession(account)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: expires, Account: account}, nil
}

// Authenticate verifies a session token, checks its role against allowed and
// resolves the live account record.
func (s *Service) Authenticate(ctx context.Context, token string, allowed ...model.Role) (Identity, error) {
	claims, err := s.tokens.VerifySession(token)
	if err != nil {
		return nil, err
	}
	if !roleAllowed(claims.Role, allowed) {
		return nil, ErrRoleNotAllowed
	}
	account, err := s.store.GetAccount(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if account.Role != claims.Role {
		return nil, ErrInvalidToken
	}
	return IdentityFor(account)
}

func (s *Service) GetAccount(ctx context.Context, id int64) (model.Account, error) {
	account, err := s.store.GetAccount(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Account{}, ErrAccountNotFound
	}
	return account, err
}

func (s *Service) ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword, confirm string) error {
	if oldPassword == "" || newPassword == "" || confirm == "" {
		return ErrMissingField
	}
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if !CheckPassword(account.PasswordHash, oldPassword) {
		return ErrOldPasswordMismatch
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := HashPassword(newPassword, s.cfg.HashCost)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, accountID, hash, s.now())
}

func (s *Service) UpdateProfile(ctx context.Context, accountID int64, update model.ProfileUpdate) (model.Account, error) {
	if update.FirstName != nil {
		trimmed := strings.TrimSpace(*update.FirstName)
		if trimmed == "" {
			return model.Account{}, ErrMissingField
		}
		update.FirstName = &trimmed
	}
	if update.LastName != nil {
		trimmed := strings.TrimSpace(*update.LastName)
		if trimmed == "" {
			return model.Account{}, ErrMissingField
		}
		update.LastName = &trimmed
	}
	account, err := s.store.UpdateProfile(ctx, accountID, update, s.now())
	if errors.Is(err, store.ErrNotFound) {
		return model.Account{}, ErrAccountNotFound
	}
	return account, err
}

// ForgotPassword issues a reset token, persists its nonce hash (replacing any
// outstanding one) and emails the reset link.
func (s *Service) ForgotPassword(ctx context.Context, role model.Role, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrMissingField
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	account, err := s.store.FindAccountByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	token, nonceHash, expires, err := s.tokens.IssueReset(account.ID)
	if err != nil {
		return err
	}
	if err := s.store.SetResetMarker(ctx, account.ID, model.ResetMarker{NonceHash: nonceHash, ExpiresAt: expires}); err != nil {
		return err
	}
	link, err := s.resetLink(token)
	if err != nil {
		return err
	}
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>We received a request to reset your AlumniConnect password. The link below is valid until %s and can be used once.</p>
<p><a href="%s">Reset your password</a></p>
<p>If you did not ask for this, you can ignore this email.</p>`, account.FirstName, expires.UTC().Format(time.RFC1123), link)
	if err := s.mailer.Send(ctx, account.Email, "Reset your AlumniConnect password", body); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrMissingField
	}
	claims, err := s.tokens.VerifyReset(token)
	if err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := HashPassword(newPassword, s.cfg.HashCost)
	if err != nil {
		return err
	}
	err = s.store.ConsumeResetMarker(ctx, claims.AccountID, HashNonce(claims.ID), hash, s.now())
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidToken
	}
	return err
}

// DeleteAccount removes the account together with its posts. Media objects of
// those posts are removed afterwards on a best-effort basis.
func (s *Service) DeleteAccount(ctx context.Context, accountID int64) error {
	keys, err := s.store.ListMediaKeysByOwner(ctx, accountID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteAccount(ctx, accountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	for _, key := range keys {
		if err := s.media.Delete(ctx, key); err != nil {
			s.logger.Warn("orphaned media after account delete", zap.Int64("account_id", accountID), zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

type CreateAdminInput struct {
	Email     string
	FirstName string
	LastName  string
}

// CreateAdmin provisions an admin with a generated one-time password and
// emails it. The account is rolled back if the email cannot be delivered.
func (s *Service) CreateAdmin(ctx context.Context, in CreateAdminInput) (model.Account, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.FirstName == "" || strings.TrimSpace(in.Email) == "" {
		return model.Account{}, ErrMissingField
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return model.Account{}, err
	}
	password, err := GeneratePassword()
	if err != nil {
		return model.Account{}, err
	}
	hash, err := HashPassword(password, s.cfg.HashCost)
	if err != nil {
		return model.Account{}, err
	}
	account := model.Account{
		Role:         model.RoleAdmin,
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if _, err := s.store.CreateAccount(ctx, &account); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return model.Account{}, ErrEmailTaken
		}
		return model.Account{}, err
	}
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>An AlumniConnect administrator account (%s) was created for you.</p>
<p>Your one-time password is <strong>%s</strong>. Please sign in and change it right away.</p>`, account.FirstName, account.AdminCode, password)
	if err := s.mailer.Send(ctx, account.Email, "Your AlumniConnect admin account", body); err != nil {
		if delErr := s.store.DeleteAccount(ctx, account.ID); delErr != nil {
			s.logger.Error("rollback admin after mail failure", zap.Int64("account_id", account.ID), zap.Error(delErr))
		}
		return model.Account{}, fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return account, nil
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]model.Account, int, error) {
	return s.store.ListAccounts(ctx, model.RoleUser, limit, offset)
}

func (s *Service) SearchUsers(ctx context.Context, query string, limit int) ([]model.Account, error) {
	if strings.TrimSpace(query) == "" {
		return []model.Account{}, nil
	}
	return s.store.SearchAccounts(ctx, model.RoleUser, query, limit)
}

func (s *Service) resetLink(token string) (string, error) {
	u, err := url.Parse(s.cfg.ResetURL)
	if err != nil {
		return "", fmt.Errorf("reset url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func roleAllowed(role model.Role, allowed []model.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
