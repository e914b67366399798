// Package ucsm talks to the Cisco UCS Manager XML API and provisions SNMP
// service configuration on UCS domains.
package ucsm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-multierror"
)

const apiPath = "/nuova"

// logoutTimeout bounds the aaaLogout call made while releasing a session.
const logoutTimeout = 10 * time.Second

// Client wraps the XML API of one UCS Manager domain.
type Client struct {
	httpClient *http.Client
	endpoint   string
	host       string
}

// NewClient creates a client for host. host may be a bare name, in which case
// HTTPS is used, or a full base URL.
func NewClient(host string, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	transport := cleanhttp.DefaultPooledTransport()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // UCS Manager ships self-signed certificates
	}

	base := host
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		endpoint:   strings.TrimRight(base, "/") + apiPath,
		host:       host,
	}
}

// Login opens an XML API session.
func (c *Client) Login(ctx context.Context, user, password string) (*Session, error) {
	var resp aaaLoginResponse
	req := aaaLoginRequest{InName: user, InPassword: password}
	if err := c.post(ctx, "aaaLogin", req, &resp); err != nil {
		return nil, fmt.Errorf("login to %s as %s: %w", c.host, user, err)
	}
	if err := resp.err("aaaLogin"); err != nil {
		return nil, fmt.Errorf("login to %s as %s: %w", c.host, user, err)
	}
	if resp.OutCookie == "" {
		return nil, fmt.Errorf("login to %s as %s: empty session cookie", c.host, user)
	}
	return &Session{client: c, cookie: resp.OutCookie}, nil
}

// WithSession logs in, runs fn and logs out on every return path, including
// when fn fails or panics. A logout failure is appended to fn's error.
func (c *Client) WithSession(ctx context.Context, user, password string, fn func(*Session) error) (err error) {
	s, err := c.Login(ctx, user, password)
	if err != nil {
		return err
	}
	defer func() {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutTimeout)
		defer cancel()
		if lerr := s.Logout(lctx); lerr != nil {
			err = multierror.Append(err, lerr).ErrorOrNil()
		}
	}()
	return fn(s)
}

// post sends one XML API method and decodes the reply into result.
func (c *Client) post(ctx context.Context, method string, body, result any) error {
	data, err := xml.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ucsm %s returned %d: %s", method, resp.StatusCode, string(respBody))
	}

	if err := xml.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", method, err)
	}
	return nil
}
