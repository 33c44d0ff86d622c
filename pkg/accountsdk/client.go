package accountsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client is a client for the FlowMerce accounts service. It provides the
// public operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSession wraps an existing bearer token, e.g. one kept from an earlier
// login.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}
