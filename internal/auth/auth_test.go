package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store/sqlite"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *fakeMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

type fakeMedia struct {
	deleted []string
}

func (f *fakeMedia) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fixture struct {
	svc    *Service
	store  *sqlite.Store
	mailer *fakeMailer
	media  *fakeMedia
	tokens *Tokens
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens := NewTokens("test-secret", time.Hour, 15*time.Minute)
	mailer := &fakeMailer{}
	media := &fakeMedia{}
	svc := NewService(st, tokens, mailer, media, nil, ServiceConfig{
		ResetURL: "http://localhost:5173/reset-password",
		HashCost: bcrypt.MinCost,
	})
	return fixture{svc: svc, store: st, mailer: mailer, media: media, tokens: tokens}
}

func registerAlice(t *testing.T, f fixture) model.Account {
	t.Helper()
	account, err := f.svc.Register(context.Background(), RegisterInput{
		FirstName:       "Alice",
		LastName:        "Doe",
		Email:           "Alice@X.com",
		Password:        "Abcd123!",
		ConfirmPassword: "Abcd123!",
	})
	require.NoError(t, err)
	return account
}

var tokenPattern = regexp.MustCompile(`href="([^"]+)"`)

func resetTokenFromMail(t *testing.T, m sentMail) string {
	t.Helper()
	match := tokenPattern.FindStringSubmatch(m.body)
	require.Len(t, match, 2, "reset link in mail body")
	u, err := url.Parse(match[1])
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	f := newFixture(t)
	account := registerAlice(t, f)

	assert.Equal(t, "alice@x.com", account.Email)
	assert.Equal(t, model.RoleUser, account.Role)
	assert.NotEqual(t, "Abcd123!", account.PasswordHash)
	assert.True(t, CheckPassword(account.PasswordHash, "Abcd123!"))

	stored, err := f.store.GetAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "Abcd123!", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	registerAlice(t, f)

	tests := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"missing first name", RegisterInput{LastName: "D", Email: "b@x.com", Password: "Abcd123!", ConfirmPassword: "Abcd123!"}, ErrMissingField},
		{"mismatch", RegisterInput{FirstName: "B", LastName: "D", Email: "b@x.com", Password: "Abcd123!", ConfirmPassword: "Abcd123?"}, ErrPasswordMismatch},
		{"weak", RegisterInput{FirstName: "B", LastName: "D", Email: "b@x.com", Password: "abcdefgh", ConfirmPassword: "abcdefgh"}, ErrWeakPassword},
		{"bad email", RegisterInput{FirstName: "B", LastName: "D", Email: "not-an-email", Password: "Abcd123!", ConfirmPassword: "Abcd123!"}, ErrInvalidEmail},
		{"duplicate", RegisterInput{FirstName: "A", LastName: "D", Email: "alice@x.com", Password: "Abcd123!", ConfirmPassword: "Abcd123!"}, ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, "Email already registered", ErrEmailTaken.Error())
}

func TestLoginIssuesTokenWithStoredRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := registerAlice(t, f)

	session, err := f.svc.Login(ctx, model.RoleUser, "ALICE@x.com", "Abcd123!")
	require.NoError(t, err)
	claims, err := f.tokens.VerifySession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "Alice", claims.FirstName)

	for _, guess := range []string{"Abcd123", "abcd123!", "Abcd123!!", ""} {
		_, err := f.svc.Login(ctx, model.RoleUser, "alice@x.com", guess)
		assert.Error(t, err, guess)
		if guess != "" {
			assert.ErrorIs(t, err, ErrBadCredential, guess)
		}
	}

	_, err = f.svc.Login(ctx, model.RoleAdmin, "alice@x.com", "Abcd123!")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAuthenticateEnforcesRoleAndLiveAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := registerAlice(t, f)
	session, err := f.svc.Login(ctx, model.RoleUser, "alice@x.com", "Abcd123!")
	require.NoError(t, err)

	id, err := f.svc.Authenticate(ctx, session.Token, model.RoleUser)
	require.NoError(t, err)
	user, ok := id.(UserIdentity)
	require.True(t, ok)
	assert.Equal(t, account.ID, user.Profile.ID)

	_, err = f.svc.Authenticate(ctx, session.Token, model.RoleAdmin)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)

	_, err = f.svc.Authenticate(ctx, session.Token+"x", model.RoleUser)
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, f.svc.DeleteAccount(ctx, account.ID))
	_, err = f.svc.Authenticate(ctx, session.Token, model.RoleUser)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenExpiry(t *testing.T) {
	tokens := NewTokens("secret", time.Hour, time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	tokens.now = func() time.Time { return issued }
	token, _, err := tokens.IssueSession(model.Account{ID: 1, Role: model.RoleUser})
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.VerifySession(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	tokens := NewTokens("secret", time.Hour, time.Minute)
	reset, _, _, err := tokens.IssueReset(7)
	require.NoError(t, err)
	_, err = tokens.VerifySession(reset)
	assert.ErrorIs(t, err, ErrInvalidToken)

	session, _, err := tokens.IssueSession(model.Account{ID: 7, Role: model.RoleUser})
	require.NoError(t, err)
	_, err = tokens.VerifyReset(session)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokens("other-secret", time.Hour, time.Minute)
	_, err = other.VerifySession(session)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetPasswordIsSingleUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registerAlice(t, f)

	require.NoError(t, f.svc.ForgotPassword(ctx, model.RoleUser, "alice@x.com"))
	msg := f.mailer.last(t)
	assert.Equal(t, "alice@x.com", msg.to)
	token := resetTokenFromMail(t, msg)

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, token, "weak"), ErrWeakPassword)
	require.NoError(t, f.svc.ResetPassword(ctx, token, "Newpass1!"))
	assert.ErrorIs(t, f.svc.ResetPassword(ctx, token, "Another1!"), ErrInvalidToken)

	_, err := f.svc.Login(ctx, model.RoleUser, "alice@x.com", "Newpass1!")
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, model.RoleUser, "alice@x.com", "Abcd123!")
	assert.ErrorIs(t, err, ErrBadCredential)
}

func TestForgotPasswordReplacesOutstandingToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registerAlice(t, f)

	require.NoError(t, f.svc.ForgotPassword(ctx, model.RoleUser, "alice@x.com"))
	first := resetTokenFromMail(t, f.mailer.last(t))
	require.NoError(t, f.svc.ForgotPassword(ctx, model.RoleUser, "alice@x.com"))
	second := resetTokenFromMail(t, f.mailer.last(t))

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, first, "Newpass1!"), ErrInvalidToken)
	assert.NoError(t, f.svc.ResetPassword(ctx, second, "Newpass1!"))
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newFixture(t)
	err := f.svc.ForgotPassword(context.Background(), model.RoleUser, "nobody@x.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Empty(t, f.mailer.sent)
}

func TestForgotPasswordMailFailure(t *testing.T) {
	f := newFixture(t)
	registerAlice(t, f)
	f.mailer.err = errors.New("smtp down")
	err := f.svc.ForgotPassword(context.Background(), model.RoleUser, "alice@x.com")
	assert.ErrorIs(t, err, ErrMailDelivery)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := registerAlice(t, f)

	assert.ErrorIs(t, f.svc.ChangePassword(ctx, account.ID, "Wrong123!", "Newpass1!", "Newpass1!"), ErrOldPasswordMismatch)
	assert.ErrorIs(t, f.svc.ChangePassword(ctx, account.ID, "Abcd123!", "Newpass1!", "Newpass2!"), ErrPasswordMismatch)
	require.NoError(t, f.svc.ChangePassword(ctx, account.ID, "Abcd123!", "Newpass1!", "Newpass1!"))

	_, err := f.svc.Login(ctx, model.RoleUser, "alice@x.com", "Newpass1!")
	assert.NoError(t, err)
}

func TestCreateAdminSendsOneTimePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.svc.CreateAdmin(ctx, CreateAdminInput{Email: "ops@x.com", FirstName: "Ops"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.Equal(t, "ADM001", admin.AdminCode)

	msg := f.mailer.last(t)
	match := regexp.MustCompile(`<strong>([^<]+)</strong>`).FindStringSubmatch(msg.body)
	require.Len(t, match, 2)
	require.NoError(t, ValidatePassword(match[1]))

	session, err := f.svc.Login(ctx, model.RoleAdmin, "ops@x.com", match[1])
	require.NoError(t, err)
	id, err := f.svc.Authenticate(ctx, session.Token, model.RoleAdmin)
	require.NoError(t, err)
	_, isAdmin := id.(AdminIdentity)
	assert.True(t, isAdmin)
}

func TestCreateAdminRollsBackOnMailFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mailer.err = errors.New("smtp down")

	_, err := f.svc.CreateAdmin(ctx, CreateAdminInput{Email: "ops@x.com", FirstName: "Ops"})
	assert.ErrorIs(t, err, ErrMailDelivery)
	_, err = f.store.FindAccountByEmail(ctx, model.RoleAdmin, "ops@x.com")
	assert.Error(t, err)
}

func TestDeleteAccountRemovesMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := registerAlice(t, f)

	post := model.Post{
		OwnerID:   account.ID,
		OwnerName: account.FullName(),
		Type:      model.PostMedia,
		Media:     &model.Media{URL: "http://cdn/posts/k1", Kind: model.MediaImage, Key: "posts/k1"},
		CreatedAt: time.Now(),
	}
	_, err := f.store.CreatePost(ctx, &post)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAccount(ctx, account.ID))
	assert.Equal(t, []string{"posts/k1"}, f.media.deleted)
	assert.ErrorIs(t, f.svc.DeleteAccount(ctx, account.ID), ErrAccountNotFound)
}

func TestValidatePassword(t *testing.T) {
	for _, pw := range []string{"Abcd123!", "Abcd123?", "Ünïcödé1#", "Pass:word9"} {
		assert.NoError(t, ValidatePassword(pw), pw)
	}

	tests := []struct {
		name string
		pw   string
	}{
		{"too short", "Ab1!"},
		{"six runes in eight bytes", "Éé1!ab"},
		{"no upper", "abcd123!"},
		{"no lower", "ABCD123!"},
		{"no digit", "Abcdefg!"},
		{"no symbol", "Abcd1234"},
		{"underscore is not in the set", "Abcdefg1_"},
		{"tilde is not in the set", "Abcdefg1~"},
		{"currency sign", "Abcdefg1€"},
		{"emoji", "Abcdefg1😀"},
		{"over bcrypt limit", strings.Repeat("Aa1!", 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidatePassword(tt.pw), ErrWeakPassword)
		})
	}
	for i := 0; i < 20; i++ {
		pw, err := GeneratePassword()
		require.NoError(t, err)
		assert.NoError(t, ValidatePassword(pw), pw)
	}
}
