package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goal-tracker-api/internal/metrics"
)

// TokenValidationResult carries the identity the user service resolved
// from an access token
type TokenValidationResult struct {
	Valid  bool      `json:"valid"`
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email,omitempty"`
}

// UserClient defines the interface for user service communication
type UserClient interface {
	// ValidateToken asks the user service to validate an access token
	ValidateToken(ctx context.Context, token string) (*TokenValidationResult, error)
	// UserExists reports whether a user id is known to the user service
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// userClient implements UserClient interface
type userClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewUserClient creates a new User API client
func NewUserClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) UserClient {
	return &userClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// ValidateToken validates an access token against the user service
func (c *userClient) ValidateToken(ctx context.Context, token string) (*TokenValidationResult, error) {
	url := fmt.Sprintf("%s/api/auth/validate", c.baseURL)

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, "POST", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to call token validation",
			zap.Error(err),
			zap.Duration("duration", duration),
		)
		return nil, fmt.Errorf("token validation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return &TokenValidationResult{Valid: false}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	var result TokenValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode validation response: %w", err)
	}
	return &result, nil
}

// UserExists checks whether a user id is known to the user service.
// Transport failures are returned as errors rather than swallowed:
// participant reconciliation must not admit users it could not verify.
func (c *userClient) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	url := fmt.Sprintf("%s/api/internal/users/%s", c.baseURL, userID.String())

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, "GET", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("Failed to call user lookup",
			zap.String("user_id", userID.String()),
			zap.Error(err),
			zap.Duration("duration", duration),
		)
		return false, fmt.Errorf("user lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	default:
		return false, fmt.Errorf("user service returned status %d", resp.StatusCode)
	}
}

// TokenValidatorAdapter adapts a UserClient to the middleware's
// TokenValidator interface
type TokenValidatorAdapter struct {
	Users UserClient
}

func (a TokenValidatorAdapter) ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	result, err := a.Users.ValidateToken(ctx, tokenStr)
	if err != nil {
		return uuid.Nil, err
	}
	if !result.Valid {
		return uuid.Nil, fmt.Errorf("token rejected by user service")
	}
	return result.UserID, nil
}

// MockUserClient implements UserClient for testing and for deployments
// without a reachable user service
type MockUserClient struct {
	ValidateTokenFunc func(ctx context.Context, token string) (*TokenValidationResult, error)
	UserExistsFunc    func(ctx context.Context, userID uuid.UUID) (bool, error)
}

func (m *MockUserClient) ValidateToken(ctx context.Context, token string) (*TokenValidationResult, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return &TokenValidationResult{Valid: true}, nil
}

func (m *MockUserClient) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if m.UserExistsFunc != nil {
		return m.UserExistsFunc(ctx, userID)
	}
	return true, nil
}

var _ UserClient = (*MockUserClient)(nil)
