package secrets

import (
	"errors"
	"testing"
)

func TestExtractPassword(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"json single pair", `{"zabbix_admin":"s3cret"}`, "s3cret"},
		{"json with spaces", ` { "rdeviate" : "hunter2" } `, "hunter2"},
		{"json password member wins", `{"username":"rdeviate","password":"p@ss"}`, "p@ss"},
		{"json value with colon", `{"ucs_snmpv3_cred":"a:b:c"}`, "a:b:c"},
		{"bare key value", `zabbix_admin:s3cret`, "s3cret"},
		{"unquoted braces", `{zabbix_admin:s3cret}`, "s3cret"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractPassword(tc.raw)
			if err != nil {
				t.Fatalf("ExtractPassword(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("ExtractPassword(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestExtractPassword_Malformed(t *testing.T) {
	for _, raw := range []string{
		"", "justapassword", "{}", `"quoted"`,
		`{"zabbix_admin":""}`, `{"zabbix_admin":null}`, `{"password":""}`, `zabbix_admin:`,
	} {
		if _, err := ExtractPassword(raw); !errors.Is(err, ErrMalformedSecret) {
			t.Errorf("ExtractPassword(%q) error = %v, want ErrMalformedSecret", raw, err)
		}
	}
}
