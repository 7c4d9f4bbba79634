package notesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to the notekeep service. The session credential is an
// HttpOnly cookie, so the client carries a cookie jar: sign-up or login
// establishes the session and every later call sends it automatically.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with its own cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("notesdk: create cookie jar: %w", err)
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON sends an optional JSON body and decodes the response into target
// when the status matches. Any other status becomes a typed *APIError.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	reqBody, target any,
	expectedStatus int,
) error {
	var body io.Reader
	if reqBody != nil {
		raw, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("notesdk: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("notesdk: create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("notesdk: send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("notesdk: read response: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, raw)
	}

	if target != nil {
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("notesdk: decode response: %w", err)
		}
	}
	return nil
}
