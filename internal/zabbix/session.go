package zabbix

import (
	"context"
	"fmt"
)

// Session is an authenticated API session.
type Session struct {
	client *Client
	token  string
}

// HostNames returns the technical name of every host visible to the session.
func (s *Session) HostNames(ctx context.Context) ([]string, error) {
	params := map[string]any{"output": []string{"host"}}
	var hosts []Host
	if err := s.client.call(ctx, "host.get", params, s.token, &hosts); err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}
	names := make([]string, 0, len(hosts))
	for _, h := range hosts {
		names = append(names, h.Host)
	}
	return names, nil
}

// CreateHost creates a host and returns its ID.
func (s *Session) CreateHost(ctx context.Context, req HostCreateRequest) (string, error) {
	var result struct {
		HostIDs []string `json:"hostids"`
	}
	if err := s.client.call(ctx, "host.create", req, s.token, &result); err != nil {
		return "", fmt.Errorf("create host %s: %w", req.Host, err)
	}
	if len(result.HostIDs) == 0 {
		return "", fmt.Errorf("create host %s: no host ID returned", req.Host)
	}
	return result.HostIDs[0], nil
}

// Logout invalidates the session token.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.client.call(ctx, "user.logout", []any{}, s.token, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
