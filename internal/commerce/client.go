package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthmart/storefront/internal/config"
	"github.com/healthmart/storefront/pkg/errors"
)

// Client is a thin REST client shared by the catalog, cart and order
// service wrappers. One instance per remote service.
type Client struct {
	service     string
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a client for one remote commerce service
func NewClient(service string, cfg config.ServiceConfig, logger *zap.Logger) *Client {
	// Normalize base URL - remove trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		service:     service,
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// errorBody is the error envelope the commerce services return.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes the cart service uses for well-formed rejections.
const (
	codeInsufficientStock    = "INSUFFICIENT_STOCK"
	codePrescriptionRequired = "PRESCRIPTION_REQUIRED"
)

// do executes one request against the service and decodes the response into
// out (out may be nil for empty responses). Every failure is mapped onto the
// pkg/errors taxonomy; callers never see a raw transport error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed",
			zap.String("service", c.service),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &errors.APIError{Service: c.service, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.APIError{Service: c.service, Message: "failed to read response: " + err.Error()}
	}

	if resp.StatusCode >= 400 {
		return c.mapFailure(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &errors.APIError{Service: c.service, Status: resp.StatusCode,
				Message: "failed to unmarshal response: " + err.Error()}
		}
	}

	return nil
}

// mapFailure translates an error status into the shared error taxonomy.
// Per-operation semantics (e.g. 404 on delete is success) are layered on by
// the typed wrappers.
func (c *Client) mapFailure(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	msg := eb.Error
	if msg == "" {
		msg = string(body)
	}

	switch status {
	case http.StatusUnauthorized:
		return errors.ErrReauthenticate
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", errNotFound, msg)
	}

	switch eb.Code {
	case codeInsufficientStock:
		return &errors.ErrInsufficientStock{Requested: -1, Available: -1}
	case codePrescriptionRequired:
		return &errors.ErrPrescriptionRequired{}
	}

	return &errors.APIError{Service: c.service, Status: status, Message: msg}
}

// errNotFound is the client-internal 404 marker the typed wrappers translate
// into their operation-specific outcome.
var errNotFound = stderrors.New("not found")

// isNotFound reports whether err is the generic 404 marker.
func isNotFound(err error) bool {
	return stderrors.Is(err, errNotFound)
}
