package ucsm

import (
	"fmt"
	"strings"
)

// DeriveLocation returns the upper-cased dotted label of host at index label,
// e.g. label 2 of ucs1.compute.otp1.edc.strln.net is OTP1. Negative indexes
// count from the end, so -1 selects the top-level domain.
func DeriveLocation(host string, label int) (string, error) {
	labels := strings.Split(host, ".")
	i := label
	if i < 0 {
		i += len(labels)
	}
	if i < 0 || i >= len(labels) || labels[i] == "" {
		return "", fmt.Errorf("host %q has no label at index %d", host, label)
	}
	return strings.ToUpper(labels[i]), nil
}
