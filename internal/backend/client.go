package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// envelope is the wrapper the backend puts around every response payload.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Status     string          `json:"status"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

// decodeData unwraps the envelope's data field into dst. The backend
// sometimes carries a bare string or null in data; anything that is not a
// JSON object or array is treated as absent and leaves dst at its zero
// value rather than erroring.
func decodeData(raw json.RawMessage, dst any) error {
	if dst == nil {
		return nil
	}
	payload := bytes.TrimSpace(raw)
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return nil
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// TokenSource resolves the bearer token for the current request, typically
// from the realm's credential store keyed by the session in ctx.
type TokenSource func(ctx context.Context) (string, bool)

// UnauthorizedHook runs when the backend answers 401. It clears the realm's
// stored credentials so the next page load lands on the realm's login.
type UnauthorizedHook func(ctx context.Context)

// Client is a realm-scoped HTTP client for the external commerce backend.
// Two instances exist, one per realm, each with its own token source and
// unauthorized handling; they share nothing.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized UnauthorizedHook
	logger         *zap.Logger
}

// NewClient creates a backend client for one realm.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// SetUnauthorizedHook installs the 401 side effect for this realm.
func (c *Client) SetUnauthorizedHook(fn UnauthorizedHook) {
	c.onUnauthorized = fn
}

// get/post/put/patch/delete shape a JSON request and decode the enveloped
// response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// doMultipart sends a multipart form. The content type comes from the
// multipart writer so the boundary is preserved; nothing fixed is forced
// onto the request.
func (c *Client) doMultipart(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	if token, ok := c.tokens(req.Context()); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized(req.Context())
		}
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, ErrUnauthorized)
	}

	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    rejectionMessage(raw),
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode backend envelope: %w", err)
	}
	return decodeData(env.Data, out)
}

// rejectionMessage pulls the backend-supplied message out of an error body,
// falling back to a generic one. The backend's error shape carries message
// as either a string or a list of strings.
func rejectionMessage(raw []byte) string {
	var body struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Message) == 0 {
		return genericErrorMessage
	}

	var single string
	if err := json.Unmarshal(body.Message, &single); err == nil && single != "" {
		return single
	}

	var many []string
	if err := json.Unmarshal(body.Message, &many); err == nil && len(many) > 0 {
		return many[0]
	}

	return genericErrorMessage
}
