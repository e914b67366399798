package ucsm

import (
	"context"
	"fmt"
)

// Session is an authenticated XML API session identified by its cookie.
type Session struct {
	client *Client
	cookie string
}

// Commit submits mos as a single configConfMos transaction. Either every
// object is applied or none is.
func (s *Session) Commit(ctx context.Context, mos ...ManagedObject) error {
	if len(mos) == 0 {
		return nil
	}
	req := configConfMosRequest{
		Cookie:         s.cookie,
		InHierarchical: "false",
	}
	for _, mo := range mos {
		req.Pairs = append(req.Pairs, confPair{Key: mo.DN(), MO: mo})
	}

	var resp configConfMosResponse
	if err := s.client.post(ctx, "configConfMos", req, &resp); err != nil {
		return fmt.Errorf("commit on %s: %w", s.client.host, err)
	}
	if err := resp.err("configConfMos"); err != nil {
		return fmt.Errorf("commit on %s: %w", s.client.host, err)
	}
	return nil
}

// Logout closes the session.
func (s *Session) Logout(ctx context.Context) error {
	var resp aaaLogoutResponse
	if err := s.client.post(ctx, "aaaLogout", aaaLogoutRequest{InCookie: s.cookie}, &resp); err != nil {
		return fmt.Errorf("logout from %s: %w", s.client.host, err)
	}
	if err := resp.err("aaaLogout"); err != nil {
		return fmt.Errorf("logout from %s: %w", s.client.host, err)
	}
	return nil
}
