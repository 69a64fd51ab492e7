package metafit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/model"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/remote"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 12 * time.Second
)

// Client talks to the METAFIT HTTP+JSON API. It implements remote.Repository.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// Logger receives one line per request and response when set.
	Logger *log.Logger
}

var _ remote.Repository = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type errorResponse struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out loginResponse
	status, body, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		if status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusBadRequest {
			return "", fmt.Errorf("%w: %s", remote.ErrInvalidCredentials, serverMessage(body, "invalid email or password"))
		}
		return "", err
	}
	if !out.Success || strings.TrimSpace(out.Token) == "" {
		msg := strings.TrimSpace(out.Message)
		if msg == "" {
			msg = "login rejected"
		}
		return "", fmt.Errorf("%w: %s", remote.ErrInvalidCredentials, msg)
	}
	return out.Token, nil
}

func (c *Client) FetchProfile(ctx context.Context, token string) (model.Profile, error) {
	var out model.Profile
	if _, _, err := c.do(ctx, http.MethodGet, "/api/profile", token, nil, &out); err != nil {
		return model.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, patch model.ProfilePatch) (model.Profile, error) {
	var out model.Profile
	if _, _, err := c.do(ctx, http.MethodPut, "/api/profile", token, patch, &out); err != nil {
		return model.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return out, nil
}

func (c *Client) FetchPlan(ctx context.Context, from, to string) ([]model.DailyPlan, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	path := "/api/plan"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	out := make([]model.DailyPlan, 0)
	if _, _, err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch plan: %w", err)
	}
	return out, nil
}

func (c *Client) FetchMealCatalog(ctx context.Context) ([]model.Meal, error) {
	out := make([]model.Meal, 0)
	if _, _, err := c.do(ctx, http.MethodGet, "/api/meals", "", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch meal catalog: %w", err)
	}
	return out, nil
}

func (c *Client) FetchExerciseCatalog(ctx context.Context) ([]model.Exercise, error) {
	out := make([]model.Exercise, 0)
	if _, _, err := c.do(ctx, http.MethodGet, "/api/exercises", "", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch exercise catalog: %w", err)
	}
	return out, nil
}

// do sends one JSON request and decodes a 2xx body into out. Failures are
// mapped onto the remote sentinel errors; the status and raw body are returned
// so callers can refine the mapping.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) (int, []byte, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	c.logf("REQ: %s %s id=%s", method, path, requestID)
	resp, err := httpClient.Do(req)
	if err != nil {
		c.logf("ERR: %s %s id=%s - %v", method, path, requestID, err)
		return 0, nil, fmt.Errorf("%w: %s %s: %v", remote.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read response %s %s: %v", remote.ErrNetwork, method, path, err)
	}
	c.logf("RES: %d - %s %s id=%s - %v", resp.StatusCode, method, path, requestID, time.Since(start))

	if err := statusError(resp.StatusCode, body); err != nil {
		return resp.StatusCode, body, err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return resp.StatusCode, body, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, body, fmt.Errorf("%w: decode response %s %s: %v", remote.ErrNetwork, method, path, err)
	}
	return resp.StatusCode, body, nil
}

func statusError(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", remote.ErrUnauthorized, serverMessage(body, http.StatusText(status)))
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", remote.ErrNotFound, serverMessage(body, http.StatusText(status)))
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		var parsed errorResponse
		_ = json.Unmarshal(body, &parsed)
		return &remote.ValidationError{Message: firstNonEmpty(parsed.Message, parsed.Error), Fields: parsed.Errors}
	default:
		return fmt.Errorf("%w: request failed with status %d", remote.ErrNetwork, status)
	}
}

func serverMessage(body []byte, fallback string) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}
	if msg := firstNonEmpty(parsed.Message, parsed.Error); msg != "" {
		return msg
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func (c *Client) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

// IsTransient reports whether err is a failure worth retrying later.
func IsTransient(err error) bool {
	return errors.Is(err, remote.ErrNetwork)
}
