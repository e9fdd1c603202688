// Package apiclient is a typed HTTP client for the profile API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/khoahotran/devconnector/internal/domain/profile"
	"github.com/khoahotran/devconnector/pkg/apperror"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status     int
	Msg        string
	Violations []apperror.Violation
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Msg)
}

type ProfileForm struct {
	Company        string `json:"company,omitempty"`
	Website        string `json:"website,omitempty"`
	Location       string `json:"location,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Status         string `json:"status"`
	GitHubUsername string `json:"githubusername,omitempty"`
	Skills         string `json:"skills"`
	YouTube        string `json:"youtube,omitempty"`
	Facebook       string `json:"facebook,omitempty"`
	Twitter        string `json:"twitter,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty"`
}

type ExperienceForm struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type EducationForm struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Login exchanges credentials for a bearer token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return err
	}
	c.SetToken(out.AccessToken)
	return nil
}

func (c *Client) CurrentProfile(ctx context.Context) (*profile.Profile, error) {
	return c.profile(ctx, http.MethodGet, "/api/profile/me", nil)
}

func (c *Client) Profiles(ctx context.Context) ([]*profile.Profile, error) {
	var out []*profile.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProfileByOwner(ctx context.Context, ownerID string) (*profile.Profile, error) {
	return c.profile(ctx, http.MethodGet, "/api/profile/user/"+url.PathEscape(ownerID), nil)
}

func (c *Client) Repositories(ctx context.Context, username string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/profile/github/"+url.PathEscape(username), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveProfile(ctx context.Context, form ProfileForm) (*profile.Profile, error) {
	return c.profile(ctx, http.MethodPost, "/api/profile", form)
}

func (c *Client) AddExperience(ctx context.Context, form ExperienceForm) (*profile.Profile, error) {
	return c.profile(ctx, http.MethodPut, "/api/profile/experience", form)
}

func (c *Client) AddEducation(ctx context.Context, form EducationForm) (*profile.Profile, error) {
	return c.profile(ctx, http.MethodPut, "/api/profile/education", form)
}

func (c *Client) DeleteExperience(ctx context.Context, id string) (*profile.Profile, error) {
	return c.profile(ctx, http.MethodDelete, "/api/profile/experience/"+url.PathEscape(id), nil)
}

func (c *Client) DeleteEducation(ctx context.Context, id string) (*profile.Profile, error) {
	return c.profile(ctx, http.MethodDelete, "/api/profile/education/"+url.PathEscape(id), nil)
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/profile", nil, nil)
}

func (c *Client) profile(ctx context.Context, method, path string, body any) (*profile.Profile, error) {
	var out profile.Profile
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var body struct {
		Error   string               `json:"error"`
		Message string               `json:"message"`
		Errors  []apperror.Violation `json:"errors"`
	}
	apiErr := &APIError{Status: status, Msg: http.StatusText(status)}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			apiErr.Msg = body.Message
		}
		apiErr.Violations = body.Errors
	}
	return apiErr
}

// AsAPIError unwraps err into an *APIError when it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
