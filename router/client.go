package router

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Status page paths under the web UI root.
const (
	deviceStatusPath = "userRpm/deviceStatus.htm"
	linkStatusPath   = "userRpm/linkStatus.htm"
)

// ClientConfig contains configuration for connecting to a router.
type ClientConfig struct {
	// URL is the base URL of the router web UI.
	URL string

	// Login and Password are the web UI credentials. The factory defaults
	// are admin/admin; operators are expected to change them on the
	// device, not here.
	Login    string
	Password string

	// Timeout for HTTP requests.
	Timeout time.Duration
}

// DefaultConfig returns a ClientConfig with the device's out-of-the-box
// values.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		URL:      "http://192.168.0.1/",
		Login:    "admin",
		Password: "admin",
		Timeout:  10 * time.Second,
	}
}

// Client talks to a single router. It holds the session established at
// construction time, performs no logging, no caching and no retries, and is
// not safe for concurrent use: concurrent callers must serialize access or
// use separate clients.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    Session
}

// NewClient creates a client and authenticates it against the router.
// Construction fails if authentication fails.
func NewClient(cfg ClientConfig) (*Client, error) {
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
	}
	return NewClientWithHTTP(cfg, httpClient)
}

// NewClientWithHTTP is like NewClient but uses the supplied HTTP client.
func NewClientWithHTTP(cfg ClientConfig, httpClient *http.Client) (*Client, error) {
	base := cfg.URL
	if base == "" {
		base = DefaultConfig().URL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	c := &Client{
		baseURL:    base,
		httpClient: httpClient,
	}

	session, err := c.authenticate(cfg.Login, cfg.Password)
	if err != nil {
		return nil, err
	}
	c.session = session
	return c, nil
}

// Session returns the session established at construction time.
func (c *Client) Session() Session {
	return c.session
}

// DeviceStatus fetches and decodes the device status page.
func (c *Client) DeviceStatus() (*DeviceStatus, error) {
	body, err := c.fetch(c.session, deviceStatusPath, url.Values{"dataRequestOnly": {"1"}})
	if err != nil {
		return nil, err
	}
	return DecodeDeviceStatus(body)
}

// LinkStatus fetches and decodes the link status page.
func (c *Client) LinkStatus() (*LinkStatus, error) {
	body, err := c.fetch(c.session, linkStatusPath, nil)
	if err != nil {
		return nil, err
	}
	return DecodeLinkStatus(body)
}

// authenticate performs the login GET against the web UI root and extracts
// the session identifier the firmware embeds in the served page.
func (c *Client) authenticate(login, password string) (Session, error) {
	cookie := loginCookie(login, password)
	body, err := c.get(c.baseURL, cookie)
	if err != nil {
		return Session{}, err
	}
	id, err := extractSessionID(body)
	if err != nil {
		return Session{}, err
	}
	return Session{ID: id, Cookie: cookie}, nil
}

// fetch performs an authenticated GET against a web UI page. The session
// identifier rides along as a query parameter; the firmware uses it for
// request scoping rather than security. An unauthenticated session fails
// immediately, before any network I/O.
func (c *Client) fetch(s Session, path string, query url.Values) ([]byte, error) {
	if !s.Authenticated() {
		return nil, &AuthError{Reason: "unauthorized"}
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("session_id", s.ID)
	return c.get(c.baseURL+path+"?"+query.Encode(), s.Cookie)
}

func (c *Client) get(rawURL, cookie string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Cookie", cookie)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return body, nil
}
