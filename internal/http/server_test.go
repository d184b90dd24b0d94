package httpapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/auth"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/config"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/content"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/feed"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/media"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/rate"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/realtime"
	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/store/sqlite"
)

const testPassword = "Abcd123!"

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

func (m *fakeMailer) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *fakeMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type memMedia struct {
	mu      sync.Mutex
	objects map[string]string
	seq     int
}

func (m *memMedia) Upload(_ context.Context, r io.Reader, _ int64, contentType string) (media.Object, error) {
	kind, err := media.KindFor(contentType)
	if err != nil {
		return media.Object{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return media.Object{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	key := fmt.Sprintf("posts/%d", m.seq)
	m.objects[key] = string(data)
	return media.Object{Key: key, URL: "https://cdn.test/" + key, Kind: kind}, nil
}

func (m *memMedia) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memMedia) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

type testClient struct {
	server *httptest.Server
	client *http.Client
	mailer *fakeMailer
	media  *memMedia
	hub    *realtime.Hub
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AdminSecret:    "admin",
		SessionTTL:     time.Hour,
		ResetTTL:       15 * time.Minute,
		BcryptCost:     bcrypt.MinCost,
		ClientURLs:     []string{"http://localhost:5173"},
		ResetURL:       "http://localhost:5173/reset-password",
		MaxUploadBytes: 1 << 20,
		RateLimits: config.RateLimits{
			LoginPerMinute:    1000,
			RegisterPerMinute: 1000,
			ForgotPerMinute:   1000,
			PostPerMinute:     1000,
			CommentPerMinute:  1000,
		},
	}
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	return newTestClientWithConfig(t, testConfig())
}

func newTestClientWithConfig(t *testing.T, cfg config.Config) *testClient {
	t.Helper()
	dsnName := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", dsnName))
	require.NoError(t, err)

	mailer := &fakeMailer{}
	mm := &memMedia{objects: map[string]string{}}
	hub := realtime.NewHub(nil, []string{"*"})

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL, cfg.ResetTTL)
	authSvc := auth.NewService(st, tokens, mailer, mm, nil, auth.ServiceConfig{
		ResetURL: cfg.ResetURL,
		HashCost: cfg.BcryptCost,
	})
	server := NewServer(Deps{
		Auth:      authSvc,
		Feed:      feed.NewService(st, mm, hub, nil),
		Content:   content.NewService(st),
		Site:      st,
		Listeners: hub,
		Limiter:   rate.NewMemory(),
	}, cfg)

	ts := httptest.NewServer(server)
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
		_ = st.Close()
	})
	return &testClient{server: ts, client: ts.Client(), mailer: mailer, media: mm, hub: hub}
}

func (c *testClient) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.client.Do(req)
	require.NoError(t, err)
	return resp
}

func (c *testClient) postJSON(t *testing.T, path, token string, body any) *http.Response {
	t.Helper()
	return c.do(t, http.MethodPost, path, token, body)
}

func (c *testClient) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	return c.do(t, http.MethodGet, path, token, nil)
}

func decodeJSON[T any](t *testing.T, resp *http.Response, out *T) {
	t.Helper()
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, out), "body %s", string(body))
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(body))
	}
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	decodeJSON(t, resp, &out)
	return out.Error
}

// createTestUser registers an alumnus and returns a session token and the account id.
func createTestUser(t *testing.T, tc *testClient, firstName, email string) (string, int64) {
	t.Helper()
	resp := tc.postJSON(t, "/user/register", "", map[string]any{
		"firstName":       firstName,
		"lastName":        "Alum",
		"email":           email,
		"password":        testPassword,
		"confirmPassword": testPassword,
	})
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()
	return login(t, tc, "/user/login", email, testPassword)
}

func login(t *testing.T, tc *testClient, path, email, password string) (string, int64) {
	t.Helper()
	resp := tc.postJSON(t, path, "", map[string]string{"email": email, "password": password})
	expectStatus(t, resp, http.StatusOK)
	var out struct {
		Token   string `json:"token"`
		Account struct {
			ID int64 `json:"id"`
		} `json:"account"`
	}
	decodeJSON(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token, out.Account.ID
}

var otpPattern = regexp.MustCompile(`<strong>([^<]+)</strong>`)

// createTestAdmin provisions an admin through the operator endpoint and
// signs in with the emailed one-time password.
func createTestAdmin(t *testing.T, tc *testClient, email string) string {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, tc.server.URL+"/admin/register",
		strings.NewReader(fmt.Sprintf(`{"email":%q,"firstName":"Ada","lastName":"Admin"}`, email)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Secret", "admin")
	resp, err := tc.client.Do(req)
	require.NoError(t, err)
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	match := otpPattern.FindStringSubmatch(tc.mailer.last(t).body)
	require.Len(t, match, 2)
	token, _ := login(t, tc, "/admin/login", email, match[1])
	return token
}

var resetLinkPattern = regexp.MustCompile(`href="([^"]+)"`)

func resetTokenFromMail(t *testing.T, m sentMail) string {
	t.Helper()
	match := resetLinkPattern.FindStringSubmatch(m.body)
	require.Len(t, match, 2)
	u, err := url.Parse(match[1])
	require.NoError(t, err)
	return u.Query().Get("token")
}

func TestHealthz(t *testing.T) {
	tc := newTestClient(t)
	resp := tc.get(t, "/healthz", "")
	expectStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestOpenAPIDocument(t *testing.T) {
	tc := newTestClient(t)

	for _, path := range []string{"/openapi.json", "/swagger/doc.json"} {
		t.Run(path, func(t *testing.T) {
			resp := tc.get(t, path, "")
			expectStatus(t, resp, http.StatusOK)
			var doc struct {
				Swagger string         `json:"swagger"`
				Info    map[string]any `json:"info"`
				Paths   map[string]any `json:"paths"`
			}
			decodeJSON(t, resp, &doc)
			assert.Equal(t, "2.0", doc.Swagger)
			assert.Equal(t, "AlumniConnect API", doc.Info["title"])
			for _, route := range []string{"/user/register", "/view/all", "/like/{id}", "/admin/users/{id}", "/content/{kind}"} {
				assert.Contains(t, doc.Paths, route)
			}
		})
	}

	resp := tc.get(t, "/swagger/index.html", "")
	expectStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	resp.Body.Close()
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	tc := newTestClient(t)
	resp := tc.get(t, "/nope", "")
	expectStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "not found", errorMessage(t, resp))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	tc := newTestClient(t)
	body := map[string]any{
		"firstName":       "Alice",
		"lastName":        "Doe",
		"email":           "alice@x.com",
		"password":        testPassword,
		"confirmPassword": testPassword,
	}
	resp := tc.postJSON(t, "/user/register", "", body)
	expectStatus(t, resp, http.StatusCreated)
	var created struct {
		User map[string]any `json:"user"`
	}
	decodeJSON(t, resp, &created)
	assert.Equal(t, "alice@x.com", created.User["email"])
	assert.NotContains(t, created.User, "passwordHash")

	resp = tc.postJSON(t, "/user/register", "", body)
	expectStatus(t, resp, http.StatusConflict)
	assert.Equal(t, "Email already registered", errorMessage(t, resp))
}

func TestRegisterValidation(t *testing.T) {
	tc := newTestClient(t)
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing last name", map[string]any{"firstName": "A", "email": "a@x.com", "password": testPassword, "confirmPassword": testPassword}},
		{"mismatch", map[string]any{"firstName": "A", "lastName": "B", "email": "a@x.com", "password": testPassword, "confirmPassword": "Abcd123?"}},
		{"weak", map[string]any{"firstName": "A", "lastName": "B", "email": "a@x.com", "password": "abcdefgh", "confirmPassword": "abcdefgh"}},
		{"bad email", map[string]any{"firstName": "A", "lastName": "B", "email": "not-an-email", "password": testPassword, "confirmPassword": testPassword}},
		{"unknown field", map[string]any{"firstName": "A", "lastName": "B", "email": "a@x.com", "password": testPassword, "confirmPassword": testPassword, "role": "admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tc.postJSON(t, "/user/register", "", tt.body)
			expectStatus(t, resp, http.StatusBadRequest)
			assert.NotEmpty(t, errorMessage(t, resp))
		})
	}
}

func TestLoginFailures(t *testing.T) {
	tc := newTestClient(t)
	createTestUser(t, tc, "Alice", "alice@x.com")

	resp := tc.postJSON(t, "/user/login", "", map[string]string{"email": "alice@x.com", "password": "Abcd123?"})
	expectStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	resp = tc.postJSON(t, "/user/login", "", map[string]string{"email": "ghost@x.com", "password": testPassword})
	expectStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()

	resp = tc.postJSON(t, "/admin/login", "", map[string]string{"email": "alice@x.com", "password": testPassword})
	expectStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestGateChecksTokenAndRole(t *testing.T) {
	tc := newTestClient(t)
	userToken, _ := createTestUser(t, tc, "Alice", "alice@x.com")
	adminToken := createTestAdmin(t, tc, "ada@x.com")

	resp := tc.get(t, "/user/dashboard", "")
	expectStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	resp = tc.get(t, "/user/dashboard", "not-a-jwt")
	expectStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	resp = tc.get(t, "/admin/dashboard", userToken)
	expectStatus(t, resp, http.StatusForbidden)
	resp.Body.Close()

	resp = tc.get(t, "/view/all", adminToken)
	expectStatus(t, resp, http.StatusForbidden)
	resp.Body.Close()

	resp = tc.get(t, "/user/dashboard", userToken)
	expectStatus(t, resp, http.StatusOK)
	var user struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decodeJSON(t, resp, &user)
	assert.Equal(t, "alice@x.com", user.User.Email)
	assert.Equal(t, "user", user.User.Role)

	resp = tc.get(t, "/admin/dashboard", adminToken)
	expectStatus(t, resp, http.StatusOK)
	var admin struct {
		Admin struct {
			AdminCode string `json:"adminCode"`
		} `json:"admin"`
	}
	decodeJSON(t, resp, &admin)
	assert.Equal(t, "ADM001", admin.Admin.AdminCode)

	for _, token := range []string{userToken, adminToken} {
		resp = tc.get(t, "/content/announcements", token)
		expectStatus(t, resp, http.StatusOK)
		resp.Body.Close()
	}
}

func TestCreateAdminRequiresSecret(t *testing.T) {
	tc := newTestClient(t)
	resp := tc.postJSON(t, "/admin/register", "", map[string]string{"email": "ada@x.com", "firstName": "Ada"})
	expectStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()
	assert.Zero(t, tc.mailer.count())

	cfg := testConfig()
	cfg.AdminSecret = ""
	disabled := newTestClientWithConfig(t, cfg)
	req, err := http.NewRequest(http.MethodPost, disabled.server.URL+"/admin/register", strings.NewReader(`{"email":"ada@x.com","firstName":"Ada"}`))
	require.NoError(t, err)
	req.Header.Set("X-Admin-Secret", "")
	resp, err = disabled.client.Do(req)
	require.NoError(t, err)
	expectStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()
}

func TestRateLimitedLogin(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimits.LoginPerMinute = 2
	tc := newTestClientWithConfig(t, cfg)

	for i := 0; i < 2; i++ {
		resp := tc.postJSON(t, "/user/login", "", map[string]string{"email": "ghost@x.com", "password": testPassword})
		expectStatus(t, resp, http.StatusNotFound)
		resp.Body.Close()
	}
	resp := tc.postJSON(t, "/user/login", "", map[string]string{"email": "ghost@x.com", "password": testPassword})
	expectStatus(t, resp, http.StatusTooManyRequests)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	resp.Body.Close()
}

func loginFrom(t *testing.T, tc *testClient, header, value string) *http.Response {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": "ghost@x.com", "password": testPassword})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, tc.server.URL+"/user/login", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(header, value)
	resp, err := tc.client.Do(req)
	require.NoError(t, err)
	return resp
}

func TestRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimits.LoginPerMinute = 2
	tc := newTestClientWithConfig(t, cfg)

	for i := 0; i < 2; i++ {
		resp := loginFrom(t, tc, "X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		expectStatus(t, resp, http.StatusNotFound)
		resp.Body.Close()
	}
	resp := loginFrom(t, tc, "X-Forwarded-For", "10.0.0.99")
	expectStatus(t, resp, http.StatusTooManyRequests)
	resp.Body.Close()
}

func TestRateLimitUsesRealIPBehindTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimits.LoginPerMinute = 1
	cfg.TrustProxy = true
	tc := newTestClientWithConfig(t, cfg)

	resp := loginFrom(t, tc, "X-Real-IP", "203.0.113.1")
	expectStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()

	resp = loginFrom(t, tc, "X-Real-IP", "203.0.113.1")
	expectStatus(t, resp, http.StatusTooManyRequests)
	resp.Body.Close()

	resp = loginFrom(t, tc, "X-Real-IP", "203.0.113.2")
	expectStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestForgotPasswordHidesMailFailure(t *testing.T) {
	tc := newTestClient(t)
	createTestUser(t, tc, "Alice", "alice@x.com")

	resp := tc.postJSON(t, "/forgot-password", "", map[string]string{"email": "ghost@x.com"})
	expectStatus(t, resp, http.StatusOK)
	var unknown map[string]any
	decodeJSON(t, resp, &unknown)

	tc.mailer.fail(errors.New("smtp down"))
	resp = tc.postJSON(t, "/forgot-password", "", map[string]string{"email": "alice@x.com"})
	expectStatus(t, resp, http.StatusOK)
	var known map[string]any
	decodeJSON(t, resp, &known)
	assert.Equal(t, unknown, known)
}

func TestCORSPreflightAllowsClient(t *testing.T) {
	tc := newTestClient(t)
	req, err := http.NewRequest(http.MethodOptions, tc.server.URL+"/user/login", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := tc.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
