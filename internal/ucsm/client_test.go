package ucsm

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// committed is one pair received in a configConfMos request.
type committed struct {
	Key     string
	Element string
	Attrs   map[string]string
}

// mockUCSM mimics the UCS Manager /nuova endpoint.
type mockUCSM struct {
	mu        sync.Mutex
	methods   []string
	committed []committed
	failLogin bool
	failMos   bool
}

func newMockUCSM(t *testing.T) (*mockUCSM, *httptest.Server) {
	t.Helper()
	m := &mockUCSM{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+apiPath, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		root, attrs := rootElement(t, body)

		m.mu.Lock()
		defer m.mu.Unlock()
		m.methods = append(m.methods, root)

		w.Header().Set("Content-Type", "application/xml")
		switch root {
		case "aaaLogin":
			if m.failLogin || attrs["inPassword"] != "hunter2" {
				fmt.Fprint(w, `<aaaLogin cookie="" response="yes" errorCode="551" invocationResult="unidentified-fail" errorDescr="Authentication failed"> </aaaLogin>`)
				return
			}
			fmt.Fprint(w, `<aaaLogin cookie="" response="yes" outCookie="1700000000/abcd-cookie" outRefreshPeriod="600" outPriv="admin"> </aaaLogin>`)
		case "configConfMos":
			if attrs["cookie"] != "1700000000/abcd-cookie" {
				fmt.Fprint(w, `<configConfMos cookie="" response="yes" errorCode="552" errorDescr="Authorization required"> </configConfMos>`)
				return
			}
			m.committed = append(m.committed, parsePairs(t, body)...)
			if m.failMos {
				fmt.Fprint(w, `<configConfMos cookie="1700000000/abcd-cookie" response="yes" errorCode="103" invocationResult="unidentified-fail" errorDescr="can't create; object already exists."> </configConfMos>`)
				return
			}
			fmt.Fprint(w, `<configConfMos cookie="1700000000/abcd-cookie" response="yes"><outConfigs></outConfigs></configConfMos>`)
		case "aaaLogout":
			fmt.Fprint(w, `<aaaLogout cookie="" response="yes" outStatus="success"> </aaaLogout>`)
		default:
			http.Error(w, "unknown method", http.StatusBadRequest)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return m, srv
}

func rootElement(t *testing.T, body []byte) (string, map[string]string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(string(body)))
	for {
		tok, err := dec.Token()
		require.NoError(t, err)
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, attrMap(se)
		}
	}
}

func parsePairs(t *testing.T, body []byte) []committed {
	t.Helper()
	var out []committed
	dec := xml.NewDecoder(strings.NewReader(string(body)))
	var key string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "configConfMos", "inConfigs":
		case "pair":
			key = attrMap(se)["key"]
		default:
			out = append(out, committed{Key: key, Element: se.Name.Local, Attrs: attrMap(se)})
		}
	}
}

func attrMap(se xml.StartElement) map[string]string {
	m := make(map[string]string, len(se.Attr))
	for _, a := range se.Attr {
		m[a.Name.Local] = a.Value
	}
	return m
}

func TestNewClient_Endpoint(t *testing.T) {
	c := NewClient("ucs1.compute.otp1.edc.strln.net", DefaultConfig())
	assert.Equal(t, "https://ucs1.compute.otp1.edc.strln.net/nuova", c.endpoint)

	c = NewClient("http://127.0.0.1:8080/", DefaultConfig())
	assert.Equal(t, "http://127.0.0.1:8080/nuova", c.endpoint)
}

func TestWithSession_CommitAndLogout(t *testing.T) {
	m, srv := newMockUCSM(t)
	c := NewClient(srv.URL, DefaultConfig())

	err := c.WithSession(context.Background(), "rdeviate", "hunter2", func(s *Session) error {
		return s.Commit(context.Background(),
			NewCommSnmp("noc@example.net", "OTP1"),
			NewCommSnmpUser("cs-snmp", "sha", "snmp-pass", true),
		)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"aaaLogin", "configConfMos", "aaaLogout"}, m.methods, "both objects go in one transaction")
	require.Len(t, m.committed, 2)

	snmp := m.committed[0]
	assert.Equal(t, "commSnmp", snmp.Element)
	assert.Equal(t, "sys/svc-ext/snmp-svc", snmp.Key)
	assert.Equal(t, "enabled", snmp.Attrs["adminState"])
	assert.Equal(t, "OTP1", snmp.Attrs["sysLocation"])
	assert.Equal(t, "noc@example.net", snmp.Attrs["sysContact"])
	assert.Equal(t, "created,modified", snmp.Attrs["status"])

	user := m.committed[1]
	assert.Equal(t, "commSnmpUser", user.Element)
	assert.Equal(t, "sys/svc-ext/snmp-svc/snmpv3-user-cs-snmp", user.Key)
	assert.Equal(t, "cs-snmp", user.Attrs["name"])
	assert.Equal(t, "sha", user.Attrs["auth"])
	assert.Equal(t, "snmp-pass", user.Attrs["pwd"])
	assert.Equal(t, "snmp-pass", user.Attrs["privpwd"])
	assert.Equal(t, "yes", user.Attrs["useAes"])
	assert.Equal(t, "created", user.Attrs["status"])
}

func TestLogin_APIError(t *testing.T) {
	m, srv := newMockUCSM(t)
	c := NewClient(srv.URL, DefaultConfig())

	called := false
	err := c.WithSession(context.Background(), "rdeviate", "wrong", func(*Session) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "551", apiErr.Code)
	assert.Equal(t, []string{"aaaLogin"}, m.methods)
}

func TestCommit_ErrorStillLogsOut(t *testing.T) {
	m, srv := newMockUCSM(t)
	m.failMos = true
	c := NewClient(srv.URL, DefaultConfig())

	err := c.WithSession(context.Background(), "rdeviate", "hunter2", func(s *Session) error {
		return s.Commit(context.Background(), NewCommSnmpUser("cs-snmp", "sha", "x", true))
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "103", apiErr.Code)
	assert.Equal(t, []string{"aaaLogin", "configConfMos", "aaaLogout"}, m.methods)
}

func TestCommit_NoObjects(t *testing.T) {
	m, srv := newMockUCSM(t)
	c := NewClient(srv.URL, DefaultConfig())

	err := c.WithSession(context.Background(), "rdeviate", "hunter2", func(s *Session) error {
		return s.Commit(context.Background())
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"aaaLogin", "aaaLogout"}, m.methods)
}

func TestPost_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, DefaultConfig()).Login(context.Background(), "rdeviate", "hunter2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
