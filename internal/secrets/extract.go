package secrets

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformedSecret is returned when a secret holds no key:value pair or an empty value.
var ErrMalformedSecret = errors.New("malformed secret: no key:value pair")

// ExtractPassword returns the bare credential from a wrapped secret such as
// {"zabbix_admin":"s3cret"}.
//
// A JSON object yields its "password" member if present, otherwise its first
// member. Anything else is unwrapped by stripping braces and quotes and taking
// the text after the first colon. An empty or null value is malformed.
func ExtractPassword(raw string) (string, error) {
	pass, err := extract(raw)
	if err != nil {
		return "", err
	}
	if pass == "" {
		return "", ErrMalformedSecret
	}
	return pass, nil
}

func extract(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if gjson.Valid(raw) {
		doc := gjson.Parse(raw)
		if doc.IsObject() {
			if pw := doc.Get("password"); pw.Exists() {
				return pw.String(), nil
			}
			var (
				value string
				found bool
			)
			doc.ForEach(func(_, v gjson.Result) bool {
				value, found = v.String(), true
				return false
			})
			if !found {
				return "", ErrMalformedSecret
			}
			return value, nil
		}
	}

	stripped := strings.NewReplacer("{", "", "}", "", `"`, "").Replace(raw)
	parts := strings.Split(stripped, ":")
	if len(parts) < 2 {
		return "", ErrMalformedSecret
	}
	return strings.TrimSpace(parts[1]), nil
}
