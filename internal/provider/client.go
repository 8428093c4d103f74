package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/startupviet/advisor-api/pkg/config"
	"github.com/startupviet/advisor-api/pkg/retry"
)

// ErrDuplicateEmail is returned when the provider already holds an account
// for the email.
var ErrDuplicateEmail = errors.New("provider: email already registered")

// errTransient marks provider failures worth retrying (network errors, 5xx).
var errTransient = errors.New("provider: transient failure")

// Client talks to the hosted identity provider's admin API. Token
// verification does not go through here: access tokens are HS256-signed with
// the project secret and validated locally.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	maxRetries int
	logger     *zap.Logger
}

// NewClient constructs a provider admin client.
func NewClient(cfg config.AuthConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.ProviderURL,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

type createUserRequest struct {
	Email        string            `json:"email"`
	Password     string            `json:"password"`
	UserMetadata map[string]string `json:"user_metadata"`
	EmailConfirm bool              `json:"email_confirm"`
}

type createUserResponse struct {
	ID  string `json:"id"`
	Msg string `json:"msg"`
}

// CreateUser provisions an account and returns the provider-issued subject id.
// Duplicate emails surface as ErrDuplicateEmail; transient provider failures
// are retried with bounded backoff before giving up.
func (c *Client) CreateUser(ctx context.Context, email, password, name string) (string, error) {
	payload, err := json.Marshal(createUserRequest{
		Email:        email,
		Password:     password,
		UserMetadata: map[string]string{"name": name},
		EmailConfirm: true,
	})
	if err != nil {
		return "", fmt.Errorf("marshal create user payload: %w", err)
	}

	cfg := retry.DefaultConfig()
	cfg.Logger = c.logger
	if c.maxRetries > 0 {
		cfg.MaxAttempts = c.maxRetries
	}
	cfg.RetryableErrors = []error{errTransient}

	var subjectID string
	err = retry.Do(ctx, cfg, func() error {
		id, err := c.createUserOnce(ctx, payload)
		if err != nil {
			return err
		}
		subjectID = id
		return nil
	})
	if err != nil {
		return "", err
	}
	return subjectID, nil
}

func (c *Client) createUserOnce(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/users", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build create user request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", errTransient, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var parsed createUserResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("decode create user response: %w", err)
		}
		if parsed.ID == "" {
			return "", fmt.Errorf("provider returned no user id")
		}
		return parsed.ID, nil
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return "", ErrDuplicateEmail
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", errTransient, resp.StatusCode)
	default:
		return "", fmt.Errorf("provider rejected create user: status %d: %s", resp.StatusCode, string(body))
	}
}
