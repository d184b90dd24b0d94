// Package client provides a Go client for the AlumniConnect API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"github.com/ashoke-maity/Minor-project-TIU-sub001/internal/model"
)

// Client is an AlumniConnect API client. Token is sent as a bearer token
// once set, usually by Login.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
	TokenExp   time.Time
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) IsAuthenticated() bool {
	return c.Token != "" && time.Now().Before(c.TokenExp)
}

type Registration struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	GraduationYear  int    `json:"graduationYear,omitempty"`
	Course          string `json:"course,omitempty"`
}

func (c *Client) Register(ctx context.Context, reg Registration) (model.Account, error) {
	if reg.ConfirmPassword == "" {
		reg.ConfirmPassword = reg.Password
	}
	var out struct {
		User model.Account `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/user/register", reg, &out)
	return out.User, err
}

// Login signs in as a user and stores the session token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (model.Account, error) {
	return c.login(ctx, "/user/login", email, password)
}

func (c *Client) LoginAdmin(ctx context.Context, email, password string) (model.Account, error) {
	return c.login(ctx, "/admin/login", email, password)
}

func (c *Client) login(ctx context.Context, path, email, password string) (model.Account, error) {
	var out struct {
		Token     string        `json:"token"`
		ExpiresAt time.Time     `json:"expiresAt"`
		Account   model.Account `json:"account"`
	}
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"email": email, "password": password}, &out); err != nil {
		return model.Account{}, err
	}
	c.Token = out.Token
	c.TokenExp = out.ExpiresAt
	return out.Account, nil
}

func (c *Client) Dashboard(ctx context.Context) (model.Account, error) {
	var out struct {
		User  *model.Account `json:"user"`
		Admin *model.Account `json:"admin"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/dashboard", nil, &out); err != nil {
		return model.Account{}, err
	}
	if out.User == nil {
		return model.Account{}, errors.New("dashboard: empty response")
	}
	return *out.User, nil
}

func (c *Client) ForgotPassword(ctx context.Context, role model.Role, email string) error {
	return c.do(ctx, http.MethodPost, "/forgot-password", map[string]string{"email": email, "role": string(role)}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	return c.do(ctx, http.MethodPost, "/reset-password", map[string]string{"token": token, "password": password}, nil)
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/user/delete", nil, nil)
}

type NewPost struct {
	Content         string                 `json:"content"`
	PostType        model.PostType         `json:"postType,omitempty"`
	JobDetails      *model.JobDetails      `json:"jobDetails,omitempty"`
	EventDetails    *model.EventDetails    `json:"eventDetails,omitempty"`
	DonationDetails *model.DonationDetails `json:"donationDetails,omitempty"`
}

func (c *Client) CreatePost(ctx context.Context, p NewPost) (model.Post, error) {
	var out struct {
		Post model.Post `json:"post"`
	}
	err := c.do(ctx, http.MethodPost, "/create/post", p, &out)
	return out.Post, err
}

// CreatePostWithMedia sends the post as multipart form data with the file in
// the "media" part.
func (c *Client) CreatePostWithMedia(ctx context.Context, p NewPost, filename, contentType string, media io.Reader) (model.Post, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("content", p.Content)
	if p.PostType != "" {
		_ = mw.WriteField("postType", string(p.PostType))
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return model.Post{}, err
	}
	if _, err := io.Copy(part, media); err != nil {
		return model.Post{}, err
	}
	if err := mw.Close(); err != nil {
		return model.Post{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/create/post", &buf)
	if err != nil {
		return model.Post{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out struct {
		Post model.Post `json:"post"`
	}
	err = c.send(req, &out)
	return out.Post, err
}

// Feed lists posts. view is one of "post" (own), "others", "all", "saved"
// or "type/<postType>".
func (c *Client) Feed(ctx context.Context, view string, limit int, before int64) ([]model.Post, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if before > 0 {
		q.Set("before", fmt.Sprint(before))
	}
	path := "/view/" + view
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out struct {
		Posts []model.Post `json:"posts"`
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Posts, err
}

func (c *Client) GetPost(ctx context.Context, id int64) (model.Post, error) {
	var out struct {
		Post model.Post `json:"post"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/view/post/%d", id), nil, &out)
	return out.Post, err
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/delete/post/%d", id), nil, nil)
}

func (c *Client) Like(ctx context.Context, postID int64) (liked bool, count int, err error) {
	var out struct {
		Liked     bool `json:"liked"`
		LikeCount int  `json:"likeCount"`
	}
	err = c.do(ctx, http.MethodPost, fmt.Sprintf("/like/%d", postID), nil, &out)
	return out.Liked, out.LikeCount, err
}

func (c *Client) Save(ctx context.Context, postID int64) (bool, error) {
	var out struct {
		Saved bool `json:"saved"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/save/%d", postID), nil, &out)
	return out.Saved, err
}

func (c *Client) Comment(ctx context.Context, postID int64, text string) (model.Comment, error) {
	var out struct {
		Comment model.Comment `json:"comment"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/comment/%d", postID), map[string]string{"text": text}, &out)
	return out.Comment, err
}

func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var out struct {
		Notifications []model.Notification `json:"notifications"`
	}
	err := c.do(ctx, http.MethodGet, "/notifications", nil, &out)
	return out.Notifications, err
}

// CreateContent publishes an admin item; kind is announcements, events,
// jobs or stories.
func (c *Client) CreateContent(ctx context.Context, kind string, item any) error {
	return c.do(ctx, http.MethodPost, "/admin/"+kind, item, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		msg := string(body)
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// TestHelper provides utilities for creating signed-in clients in tests.
type TestHelper struct {
	BaseURL string
}

// TestPassword satisfies the password policy.
const TestPassword = "Abcd123!"

func NewTestHelper(baseURL string) *TestHelper {
	return &TestHelper{BaseURL: baseURL}
}

// CreateAuthenticatedClient registers an alumnus with the given first name
// and email and returns a client signed in as them.
func (h *TestHelper) CreateAuthenticatedClient(ctx context.Context, firstName, email string) (*Client, model.Account, error) {
	c := New(h.BaseURL)
	if _, err := c.Register(ctx, Registration{
		FirstName: firstName,
		LastName:  "Alum",
		Email:     email,
		Password:  TestPassword,
	}); err != nil {
		return nil, model.Account{}, fmt.Errorf("register: %w", err)
	}
	account, err := c.Login(ctx, email, TestPassword)
	if err != nil {
		return nil, model.Account{}, fmt.Errorf("login: %w", err)
	}
	return c, account, nil
}

// GetToken is CreateAuthenticatedClient for tests that only need the token.
func (h *TestHelper) GetToken(ctx context.Context, firstName, email string) (string, error) {
	c, _, err := h.CreateAuthenticatedClient(ctx, firstName, email)
	if err != nil {
		return "", err
	}
	return c.Token, nil
}
