// Package zabbix is a minimal Zabbix JSON-RPC client and the host registration
// flow built on it.
package zabbix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-multierror"
)

const apiPath = "/api_jsonrpc.php"

// logoutTimeout bounds the logout call made while releasing a session.
const logoutTimeout = 10 * time.Second

// Client wraps the Zabbix JSON-RPC API.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	legacyLogin bool
	nextID      int
}

// NewClient creates a new Zabbix API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	endpoint := strings.TrimRight(cfg.URL, "/")
	if !strings.HasSuffix(endpoint, apiPath) {
		endpoint += apiPath
	}
	return &Client{
		httpClient:  httpClient,
		endpoint:    endpoint,
		legacyLogin: cfg.LegacyLogin,
	}
}

// Login authenticates and returns a Session. Callers must Logout the session;
// WithSession does that automatically.
func (c *Client) Login(ctx context.Context, user, password string) (*Session, error) {
	userKey := "username"
	if c.legacyLogin {
		userKey = "user"
	}
	params := map[string]string{userKey: user, "password": password}

	var token string
	if err := c.call(ctx, "user.login", params, "", &token); err != nil {
		return nil, fmt.Errorf("login as %s: %w", user, err)
	}
	return &Session{client: c, token: token}, nil
}

// WithSession logs in, runs fn and logs out again on every return path,
// including when fn fails or panics. A logout failure is appended to the
// error returned by fn rather than replacing it.
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

// call performs one JSON-RPC request and decodes its result.
func (c *Client) call(ctx context.Context, method string, params any, auth string, result any) error {
	c.nextID++
	data, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID,
		Auth:    auth,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json-rpc")
	req.Header.Set("Accept", "application/json")

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
		return fmt.Errorf("zabbix API %s returned %d: %s", method, resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%s: %w", method, rpcResp.Error)
	}

	if result != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("unmarshal %s result: %w", method, err)
		}
	}
	return nil
}
